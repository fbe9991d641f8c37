package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"jobgate/video-studio/internal/models"
)

type QualityCheckRepository interface {
	Upsert(check *models.QualityCheck) error
	FindByVideo(videoID uuid.UUID) ([]models.QualityCheck, error)
	List(videoID *uuid.UUID) ([]models.QualityCheck, error)
}

type qualityCheckRepository struct {
	db *gorm.DB
}

func NewQualityCheckRepository(db *gorm.DB) QualityCheckRepository {
	return &qualityCheckRepository{db: db}
}

// Upsert creates or updates the row keyed by (video_id, check_type). The
// incoming check keeps the existing row's id when one is already stored.
func (r *qualityCheckRepository) Upsert(check *models.QualityCheck) error {
	var existing models.QualityCheck
	err := r.db.
		Where("video_id = ? AND check_type = ?", check.VideoID, check.CheckType).
		First(&existing).Error

	switch {
	case err == nil:
		check.ID = existing.ID
		check.CreatedAt = existing.CreatedAt
		if err := r.db.Save(check).Error; err != nil {
			return fmt.Errorf("failed to update quality check: %w", err)
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := r.db.Create(check).Error; err != nil {
			return fmt.Errorf("failed to create quality check: %w", err)
		}
	default:
		return fmt.Errorf("failed to look up quality check: %w", err)
	}
	return nil
}

func (r *qualityCheckRepository) FindByVideo(videoID uuid.UUID) ([]models.QualityCheck, error) {
	var checks []models.QualityCheck
	if err := r.db.Where("video_id = ?", videoID).Find(&checks).Error; err != nil {
		return nil, fmt.Errorf("failed to find quality checks: %w", err)
	}
	return checks, nil
}

func (r *qualityCheckRepository) List(videoID *uuid.UUID) ([]models.QualityCheck, error) {
	var checks []models.QualityCheck
	query := r.db.Order("created_at DESC")
	if videoID != nil {
		query = query.Where("video_id = ?", *videoID)
	}
	if err := query.Find(&checks).Error; err != nil {
		return nil, fmt.Errorf("failed to list quality checks: %w", err)
	}
	return checks, nil
}
