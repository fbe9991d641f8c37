package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"jobgate/video-studio/internal/models"
)

type SyncLogRepository interface {
	Create(entry *models.CVVideoSyncLog) error
	List(candidateID *uuid.UUID, syncNeeded *bool) ([]models.CVVideoSyncLog, error)
	PendingSyncs(candidateID *uuid.UUID) ([]models.CVVideoSyncLog, error)
	HasPendingSync(candidateID uuid.UUID) (bool, error)
}

type syncLogRepository struct {
	db *gorm.DB
}

func NewSyncLogRepository(db *gorm.DB) SyncLogRepository {
	return &syncLogRepository{db: db}
}

func (r *syncLogRepository) Create(entry *models.CVVideoSyncLog) error {
	if err := r.db.Create(entry).Error; err != nil {
		return fmt.Errorf("failed to create sync log: %w", err)
	}
	return nil
}

func (r *syncLogRepository) List(candidateID *uuid.UUID, syncNeeded *bool) ([]models.CVVideoSyncLog, error) {
	var logs []models.CVVideoSyncLog
	query := r.db.Order("created_at DESC")
	if candidateID != nil {
		query = query.Where("candidate_profile_id = ?", *candidateID)
	}
	if syncNeeded != nil {
		query = query.Where("sync_needed = ?", *syncNeeded)
	}
	if err := query.Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("failed to list sync logs: %w", err)
	}
	return logs, nil
}

func (r *syncLogRepository) PendingSyncs(candidateID *uuid.UUID) ([]models.CVVideoSyncLog, error) {
	var logs []models.CVVideoSyncLog
	query := r.db.Where("sync_needed = ? AND sync_completed = ?", true, false).
		Order("created_at DESC")
	if candidateID != nil {
		query = query.Where("candidate_profile_id = ?", *candidateID)
	}
	if err := query.Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("failed to list pending syncs: %w", err)
	}
	return logs, nil
}

func (r *syncLogRepository) HasPendingSync(candidateID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&models.CVVideoSyncLog{}).
		Where("candidate_profile_id = ? AND sync_needed = ? AND sync_completed = ?",
			candidateID, true, false).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check pending syncs: %w", err)
	}
	return count > 0, nil
}
