package services

import (
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

// CVContent summarizes an uploaded CV PDF for the candidate profile.
type CVContent struct {
	Text      string
	PageCount int
}

// excerptLimit bounds the stored text excerpt.
const excerptLimit = 2000

type CVParserService interface {
	Parse(filePath string) (*CVContent, error)
}

type cvParserService struct{}

func NewCVParserService() CVParserService {
	return &cvParserService{}
}

// Parse extracts the plain text and page count of a CV PDF. Pages that fail
// to decode are skipped.
func (p *cvParserService) Parse(filePath string) (*CVContent, error) {
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("file does not exist: %s", filePath)
	}

	f, r, err := pdf.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	var textBuilder strings.Builder
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}

		textBuilder.WriteString(text)
		textBuilder.WriteString("\n\n")
	}

	text := cleanText(textBuilder.String())
	if len(text) > excerptLimit {
		text = text[:excerptLimit]
	}

	return &CVContent{
		Text:      text,
		PageCount: totalPage,
	}, nil
}

func cleanText(text string) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	var cleanedLines []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleanedLines = append(cleanedLines, line)
		}
	}
	return strings.Join(cleanedLines, "\n")
}
