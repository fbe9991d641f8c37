package repositories

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"jobgate/video-studio/internal/models"
)

type VideoRepository interface {
	Create(video *models.Video) error
	FindByID(id uuid.UUID) (*models.Video, error)
	FindByIDWithChecks(id uuid.UUID) (*models.Video, error)
	List(userID *uuid.UUID) ([]models.Video, error)
	Save(video *models.Video) error
	UpdateFields(id uuid.UUID, updates map[string]interface{}) error
}

type videoRepository struct {
	db *gorm.DB
}

func NewVideoRepository(db *gorm.DB) VideoRepository {
	return &videoRepository{db: db}
}

func (r *videoRepository) Create(video *models.Video) error {
	if err := r.db.Create(video).Error; err != nil {
		return fmt.Errorf("failed to create video: %w", err)
	}
	return nil
}

func (r *videoRepository) FindByID(id uuid.UUID) (*models.Video, error) {
	var video models.Video
	if err := r.db.Where("id = ?", id).First(&video).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("video %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find video: %w", err)
	}
	return &video, nil
}

func (r *videoRepository) FindByIDWithChecks(id uuid.UUID) (*models.Video, error) {
	var video models.Video
	err := r.db.Preload("QualityChecks").Where("id = ?", id).First(&video).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("video %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find video: %w", err)
	}
	return &video, nil
}

func (r *videoRepository) List(userID *uuid.UUID) ([]models.Video, error) {
	var videos []models.Video
	query := r.db.Order("created_at DESC")
	if userID != nil {
		query = query.Where("user_id = ?", *userID)
	}
	if err := query.Find(&videos).Error; err != nil {
		return nil, fmt.Errorf("failed to list videos: %w", err)
	}
	return videos, nil
}

func (r *videoRepository) Save(video *models.Video) error {
	if err := r.db.Save(video).Error; err != nil {
		return fmt.Errorf("failed to save video: %w", err)
	}
	return nil
}

func (r *videoRepository) UpdateFields(id uuid.UUID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()
	result := r.db.Model(&models.Video{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to update video: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("video %s: %w", id, ErrNotFound)
	}
	return nil
}
