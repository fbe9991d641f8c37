package repositories

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"jobgate/video-studio/internal/models"
)

// NotificationFilters narrows the notification list endpoint. Empty fields
// are not applied.
type NotificationFilters struct {
	IsRead   *bool
	Type     string
	Priority string
}

type TypeCount struct {
	NotificationType string `json:"notification_type"`
	Count            int64  `json:"count"`
}

type PriorityCount struct {
	Priority string `json:"priority"`
	Count    int64  `json:"count"`
}

type NotificationRepository interface {
	Create(notification *models.Notification) error
	FindByID(id uuid.UUID) (*models.Notification, error)
	Save(notification *models.Notification) error
	ListForUser(userID uuid.UUID, filters NotificationFilters) ([]models.Notification, error)
	MarkAllReadForUser(userID uuid.UUID) (int64, error)
	CountUnread(userID uuid.UUID) (int64, error)
	CountForUser(userID uuid.UUID) (int64, error)
	CountSince(userID uuid.UUID, since time.Time) (int64, error)
	CountByType(userID uuid.UUID, since *time.Time) ([]TypeCount, error)
	CountUnreadByPriority(userID uuid.UUID) ([]PriorityCount, error)
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(notification *models.Notification) error {
	if err := r.db.Create(notification).Error; err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

func (r *notificationRepository) FindByID(id uuid.UUID) (*models.Notification, error) {
	var notification models.Notification
	if err := r.db.Where("id = ?", id).First(&notification).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("notification %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find notification: %w", err)
	}
	return &notification, nil
}

func (r *notificationRepository) Save(notification *models.Notification) error {
	if err := r.db.Save(notification).Error; err != nil {
		return fmt.Errorf("failed to save notification: %w", err)
	}
	return nil
}

func (r *notificationRepository) ListForUser(userID uuid.UUID, filters NotificationFilters) ([]models.Notification, error) {
	var notifications []models.Notification
	query := r.db.Where("recipient_id = ?", userID).Order("created_at DESC")
	if filters.IsRead != nil {
		query = query.Where("is_read = ?", *filters.IsRead)
	}
	if filters.Type != "" {
		query = query.Where("notification_type = ?", filters.Type)
	}
	if filters.Priority != "" {
		query = query.Where("priority = ?", filters.Priority)
	}
	if err := query.Find(&notifications).Error; err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, nil
}

func (r *notificationRepository) MarkAllReadForUser(userID uuid.UUID) (int64, error) {
	result := r.db.Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = ?", userID, false).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": time.Now(),
		})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to mark notifications read: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *notificationRepository) CountUnread(userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}

func (r *notificationRepository) CountForUser(userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).
		Where("recipient_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count notifications: %w", err)
	}
	return count, nil
}

func (r *notificationRepository) CountSince(userID uuid.UUID, since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).
		Where("recipient_id = ? AND created_at >= ?", userID, since).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count recent notifications: %w", err)
	}
	return count, nil
}

func (r *notificationRepository) CountByType(userID uuid.UUID, since *time.Time) ([]TypeCount, error) {
	var rows []TypeCount
	query := r.db.Model(&models.Notification{}).
		Select("notification_type, COUNT(*) as count").
		Where("recipient_id = ?", userID)
	if since != nil {
		query = query.Where("created_at >= ?", *since)
	}
	err := query.Group("notification_type").Order("count DESC").Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count notifications by type: %w", err)
	}
	return rows, nil
}

func (r *notificationRepository) CountUnreadByPriority(userID uuid.UUID) ([]PriorityCount, error) {
	var rows []PriorityCount
	err := r.db.Model(&models.Notification{}).
		Select("priority, COUNT(*) as count").
		Where("recipient_id = ? AND is_read = ?", userID, false).
		Group("priority").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count notifications by priority: %w", err)
	}
	return rows, nil
}

type PreferenceRepository interface {
	Create(pref *models.NotificationPreference) error
	FindByUserID(userID uuid.UUID) (*models.NotificationPreference, error)
	Save(pref *models.NotificationPreference) error
}

type preferenceRepository struct {
	db *gorm.DB
}

func NewPreferenceRepository(db *gorm.DB) PreferenceRepository {
	return &preferenceRepository{db: db}
}

func (r *preferenceRepository) Create(pref *models.NotificationPreference) error {
	if err := r.db.Create(pref).Error; err != nil {
		return fmt.Errorf("failed to create notification preference: %w", err)
	}
	return nil
}

func (r *preferenceRepository) FindByUserID(userID uuid.UUID) (*models.NotificationPreference, error) {
	var pref models.NotificationPreference
	if err := r.db.Where("user_id = ?", userID).First(&pref).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("notification preference for user %s: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find notification preference: %w", err)
	}
	return &pref, nil
}

func (r *preferenceRepository) Save(pref *models.NotificationPreference) error {
	if err := r.db.Save(pref).Error; err != nil {
		return fmt.Errorf("failed to save notification preference: %w", err)
	}
	return nil
}

type TemplateRepository interface {
	FindActiveByType(t models.NotificationType) (*models.NotificationTemplate, error)
}

type templateRepository struct {
	db *gorm.DB
}

func NewTemplateRepository(db *gorm.DB) TemplateRepository {
	return &templateRepository{db: db}
}

func (r *templateRepository) FindActiveByType(t models.NotificationType) (*models.NotificationTemplate, error) {
	var template models.NotificationTemplate
	err := r.db.Where("notification_type = ? AND is_active = ?", t, true).
		First(&template).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("template for %s: %w", t, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find notification template: %w", err)
	}
	return &template, nil
}
