package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"jobgate/video-studio/internal/models"
)

type RecordingSessionRepository interface {
	Create(session *models.RecordingSession) error
	FindByVideo(videoID uuid.UUID) (*models.RecordingSession, error)
	Save(session *models.RecordingSession) error
	List(videoID *uuid.UUID) ([]models.RecordingSession, error)
}

type recordingSessionRepository struct {
	db *gorm.DB
}

func NewRecordingSessionRepository(db *gorm.DB) RecordingSessionRepository {
	return &recordingSessionRepository{db: db}
}

func (r *recordingSessionRepository) Create(session *models.RecordingSession) error {
	if err := r.db.Create(session).Error; err != nil {
		return fmt.Errorf("failed to create recording session: %w", err)
	}
	return nil
}

func (r *recordingSessionRepository) FindByVideo(videoID uuid.UUID) (*models.RecordingSession, error) {
	var session models.RecordingSession
	if err := r.db.Where("video_id = ?", videoID).First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("recording session for video %s: %w", videoID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find recording session: %w", err)
	}
	return &session, nil
}

func (r *recordingSessionRepository) Save(session *models.RecordingSession) error {
	if err := r.db.Save(session).Error; err != nil {
		return fmt.Errorf("failed to save recording session: %w", err)
	}
	return nil
}

func (r *recordingSessionRepository) List(videoID *uuid.UUID) ([]models.RecordingSession, error) {
	var sessions []models.RecordingSession
	query := r.db.Order("started_at DESC")
	if videoID != nil {
		query = query.Where("video_id = ?", *videoID)
	}
	if err := query.Find(&sessions).Error; err != nil {
		return nil, fmt.Errorf("failed to list recording sessions: %w", err)
	}
	return sessions, nil
}
