package repositories

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"jobgate/video-studio/internal/models"
)

// VideoViewStats aggregates a video's view-log rows for the candidate
// dashboard.
type VideoViewStats struct {
	TotalViews     int64    `json:"total_views"`
	UniqueViewers  int64    `json:"unique_viewers"`
	CompletedViews int64    `json:"completed_views"`
	AverageRating  *float64 `json:"average_rating"`
	RecentViews    int64    `json:"recent_views"`
}

type VideoViewLogRepository interface {
	Create(entry *models.VideoViewLog) error
	List(videoID, candidateID, viewerID *uuid.UUID) ([]models.VideoViewLog, error)
	StatsForVideo(videoID uuid.UUID) (*VideoViewStats, error)
	CountByViewerSince(viewerID uuid.UUID, since time.Time) (int64, error)
	CountByCandidate(candidateID uuid.UUID) (int64, error)
	CountUniqueViewersByCandidate(candidateID uuid.UUID) (int64, error)
}

type videoViewLogRepository struct {
	db *gorm.DB
}

func NewVideoViewLogRepository(db *gorm.DB) VideoViewLogRepository {
	return &videoViewLogRepository{db: db}
}

func (r *videoViewLogRepository) Create(entry *models.VideoViewLog) error {
	if err := r.db.Create(entry).Error; err != nil {
		return fmt.Errorf("failed to create video view log: %w", err)
	}
	return nil
}

func (r *videoViewLogRepository) List(videoID, candidateID, viewerID *uuid.UUID) ([]models.VideoViewLog, error) {
	var logs []models.VideoViewLog
	query := r.db.Order("viewed_at DESC")
	if videoID != nil {
		query = query.Where("video_id = ?", *videoID)
	}
	if candidateID != nil {
		query = query.Where("candidate_profile_id = ?", *candidateID)
	}
	if viewerID != nil {
		query = query.Where("viewer_id = ?", *viewerID)
	}
	if err := query.Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("failed to list video view logs: %w", err)
	}
	return logs, nil
}

func (r *videoViewLogRepository) StatsForVideo(videoID uuid.UUID) (*VideoViewStats, error) {
	stats := &VideoViewStats{}
	base := r.db.Model(&models.VideoViewLog{}).Where("video_id = ?", videoID)

	if err := base.Session(&gorm.Session{}).Count(&stats.TotalViews).Error; err != nil {
		return nil, fmt.Errorf("failed to count views: %w", err)
	}
	err := base.Session(&gorm.Session{}).
		Distinct("viewer_id").Count(&stats.UniqueViewers).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count unique viewers: %w", err)
	}
	err = base.Session(&gorm.Session{}).
		Where("completed_viewing = ?", true).Count(&stats.CompletedViews).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count completed views: %w", err)
	}
	err = base.Session(&gorm.Session{}).
		Select("AVG(rating)").Where("rating IS NOT NULL").Scan(&stats.AverageRating).Error
	if err != nil {
		return nil, fmt.Errorf("failed to average ratings: %w", err)
	}
	err = base.Session(&gorm.Session{}).
		Where("viewed_at >= ?", time.Now().AddDate(0, 0, -30)).Count(&stats.RecentViews).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count recent views: %w", err)
	}
	return stats, nil
}

func (r *videoViewLogRepository) CountByViewerSince(viewerID uuid.UUID, since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.VideoViewLog{}).
		Where("viewer_id = ? AND viewed_at >= ?", viewerID, since).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count viewer views: %w", err)
	}
	return count, nil
}

func (r *videoViewLogRepository) CountByCandidate(candidateID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.VideoViewLog{}).
		Where("candidate_profile_id = ?", candidateID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count candidate views: %w", err)
	}
	return count, nil
}

func (r *videoViewLogRepository) CountUniqueViewersByCandidate(candidateID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.VideoViewLog{}).
		Where("candidate_profile_id = ?", candidateID).
		Distinct("viewer_id").
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count unique candidate viewers: %w", err)
	}
	return count, nil
}

type ProfileViewLogRepository interface {
	Create(entry *models.ProfileViewLog) error
	List(candidateID, recruiterID *uuid.UUID) ([]models.ProfileViewLog, error)
	CountByCandidate(candidateID uuid.UUID) (int64, error)
}

type profileViewLogRepository struct {
	db *gorm.DB
}

func NewProfileViewLogRepository(db *gorm.DB) ProfileViewLogRepository {
	return &profileViewLogRepository{db: db}
}

func (r *profileViewLogRepository) Create(entry *models.ProfileViewLog) error {
	if err := r.db.Create(entry).Error; err != nil {
		return fmt.Errorf("failed to create profile view log: %w", err)
	}
	return nil
}

func (r *profileViewLogRepository) List(candidateID, recruiterID *uuid.UUID) ([]models.ProfileViewLog, error) {
	var logs []models.ProfileViewLog
	query := r.db.Order("viewed_at DESC")
	if candidateID != nil {
		query = query.Where("candidate_profile_id = ?", *candidateID)
	}
	if recruiterID != nil {
		query = query.Where("recruiter_id = ?", *recruiterID)
	}
	if err := query.Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("failed to list profile view logs: %w", err)
	}
	return logs, nil
}

func (r *profileViewLogRepository) CountByCandidate(candidateID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.ProfileViewLog{}).
		Where("candidate_profile_id = ?", candidateID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count profile views: %w", err)
	}
	return count, nil
}
