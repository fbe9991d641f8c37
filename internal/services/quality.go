package services

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"jobgate/video-studio/internal/models"
	"jobgate/video-studio/internal/repositories"
)

// QualityResult carries the outcome of a check upsert back to the handler.
type QualityResult struct {
	Checks       []models.QualityCheck `json:"checks"`
	OverallScore int                   `json:"overall_score"`
	IsReady      bool                  `json:"is_ready"`
}

type QualityService interface {
	UpsertCheck(videoID uuid.UUID, entry models.QualityCheckRequest) (*QualityResult, error)
	BatchUpsert(videoID uuid.UUID, entries map[string]models.QualityCheckEntry) (*QualityResult, error)
	Analyze(entries map[string]models.QualityCheckEntry) (int, bool)
}

type qualityService struct {
	videoRepo repositories.VideoRepository
	checkRepo repositories.QualityCheckRepository
}

func NewQualityService(
	videoRepo repositories.VideoRepository,
	checkRepo repositories.QualityCheckRepository,
) QualityService {
	return &qualityService{
		videoRepo: videoRepo,
		checkRepo: checkRepo,
	}
}

// AggregateScore is the equal-weight mean of the submitted check scores,
// rounded to the nearest integer. Partial sets count: two checks average two
// scores.
func AggregateScore(scores []int) int {
	if len(scores) == 0 {
		return 0
	}
	sum := 0
	for _, s := range scores {
		sum += s
	}
	return int(math.Round(float64(sum) / float64(len(scores))))
}

// UpsertCheck stores one check result and synchronously recomputes the
// owning video's overall quality score.
func (s *qualityService) UpsertCheck(videoID uuid.UUID, entry models.QualityCheckRequest) (*QualityResult, error) {
	video, err := s.videoRepo.FindByID(videoID)
	if err != nil {
		return nil, err
	}

	status := models.CheckStatus(entry.Status)
	if status == "" {
		status = models.CheckStatusChecking
	}

	check := &models.QualityCheck{
		ID:               uuid.New(),
		VideoID:          video.ID,
		UserID:           video.UserID,
		CheckType:        models.CheckType(entry.CheckType),
		Status:           status,
		Score:            entry.Score,
		Message:          entry.Message,
		TechnicalDetails: entry.TechnicalDetails,
	}
	if err := s.checkRepo.Upsert(check); err != nil {
		return nil, err
	}

	return s.recompute(video.ID)
}

// BatchUpsert stores several check results in one call, skipping unknown
// check types, then recomputes the aggregate once.
func (s *qualityService) BatchUpsert(videoID uuid.UUID, entries map[string]models.QualityCheckEntry) (*QualityResult, error) {
	video, err := s.videoRepo.FindByID(videoID)
	if err != nil {
		return nil, err
	}

	for checkType, entry := range entries {
		if !models.ValidCheckType(models.CheckType(checkType)) {
			continue
		}
		status := models.CheckStatus(entry.Status)
		if status == "" {
			status = models.CheckStatusChecking
		}
		check := &models.QualityCheck{
			ID:               uuid.New(),
			VideoID:          video.ID,
			UserID:           video.UserID,
			CheckType:        models.CheckType(checkType),
			Status:           status,
			Score:            entry.Score,
			Message:          entry.Message,
			TechnicalDetails: entry.TechnicalDetails,
		}
		if err := s.checkRepo.Upsert(check); err != nil {
			return nil, err
		}
	}

	return s.recompute(video.ID)
}

// Analyze computes the aggregate for a submitted score map without storing
// anything.
func (s *qualityService) Analyze(entries map[string]models.QualityCheckEntry) (int, bool) {
	var scores []int
	for checkType, entry := range entries {
		if !models.ValidCheckType(models.CheckType(checkType)) {
			continue
		}
		scores = append(scores, entry.Score)
	}
	overall := AggregateScore(scores)
	return overall, overall >= models.ReadyScoreThreshold
}

func (s *qualityService) recompute(videoID uuid.UUID) (*QualityResult, error) {
	checks, err := s.checkRepo.FindByVideo(videoID)
	if err != nil {
		return nil, err
	}

	scores := make([]int, 0, len(checks))
	for _, c := range checks {
		scores = append(scores, c.Score)
	}
	overall := AggregateScore(scores)

	updates := map[string]interface{}{"overall_quality_score": overall}
	if err := s.videoRepo.UpdateFields(videoID, updates); err != nil {
		return nil, fmt.Errorf("failed to store overall score: %w", err)
	}

	return &QualityResult{
		Checks:       checks,
		OverallScore: overall,
		IsReady:      overall >= models.ReadyScoreThreshold,
	}, nil
}
