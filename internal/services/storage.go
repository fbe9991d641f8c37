package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var videoExtensions = map[string]bool{
	".mp4":  true,
	".webm": true,
	".mov":  true,
	".mkv":  true,
}

// StorageService stores uploaded video and CV files on disk. Videos go under
// a per-user directory; CVs under cvs/.
type StorageService interface {
	SaveVideoFile(file *multipart.FileHeader, userID uuid.UUID) (string, string, error)
	SaveCVFile(file *multipart.FileHeader) (string, string, error)
	GetFilePath(relative string) string
	DeleteFile(relative string) error
	EnsureUploadDir() error
}

type storageService struct {
	uploadPath string
}

func NewStorageService(uploadPath string) StorageService {
	return &storageService{
		uploadPath: uploadPath,
	}
}

func (s *storageService) EnsureUploadDir() error {
	for _, dir := range []string{s.uploadPath, filepath.Join(s.uploadPath, "cvs")} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create upload directory: %w", err)
		}
	}
	return nil
}

// SaveVideoFile stores the upload under videos/<user-id>/ with a fresh uuid
// name, returning the stored relative name and full path.
func (s *storageService) SaveVideoFile(file *multipart.FileHeader, userID uuid.UUID) (string, string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !videoExtensions[ext] {
		return "", "", fmt.Errorf("invalid video file extension: %s", ext)
	}

	dir := filepath.Join(s.uploadPath, "videos", userID.String())
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", "", fmt.Errorf("failed to create video directory: %w", err)
	}

	uniqueFilename := fmt.Sprintf("%s%s", uuid.New().String(), ext)
	filePath := filepath.Join(dir, uniqueFilename)

	if err := s.copyUpload(file, filePath); err != nil {
		return "", "", err
	}
	relative := filepath.Join("videos", userID.String(), uniqueFilename)
	return relative, filePath, nil
}

// SaveCVFile stores a PDF CV under cvs/ with a fresh uuid name.
func (s *storageService) SaveCVFile(file *multipart.FileHeader) (string, string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext != ".pdf" {
		return "", "", fmt.Errorf("invalid CV file extension: %s", ext)
	}

	uniqueFilename := fmt.Sprintf("cv_%s%s", uuid.New().String(), ext)
	filePath := filepath.Join(s.uploadPath, "cvs", uniqueFilename)

	if err := s.copyUpload(file, filePath); err != nil {
		return "", "", err
	}
	relative := filepath.Join("cvs", uniqueFilename)
	return relative, filePath, nil
}

func (s *storageService) copyUpload(file *multipart.FileHeader, dstPath string) error {
	src, err := file.Open()
	if err != nil {
		return fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(dstPath)
	if err != nil {
		return fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("failed to save file: %w", err)
	}
	return nil
}

func (s *storageService) GetFilePath(relative string) string {
	return filepath.Join(s.uploadPath, relative)
}

func (s *storageService) DeleteFile(relative string) error {
	if err := os.Remove(s.GetFilePath(relative)); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
