package repositories

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"jobgate/video-studio/internal/models"
)

func seedNotification(t *testing.T, db *gorm.DB, recipientID uuid.UUID, notifType models.NotificationType, priority models.NotificationPriority, isRead bool) *models.Notification {
	t.Helper()

	notification := &models.Notification{
		ID:               uuid.New(),
		RecipientID:      recipientID,
		NotificationType: notifType,
		Title:            "title",
		Message:          "message",
		Priority:         priority,
		IsRead:           isRead,
	}
	require.NoError(t, db.Create(notification).Error)
	return notification
}

func TestListForUserFilters(t *testing.T) {
	db := setupTestDB(t)
	repo := NewNotificationRepository(db)
	userID := uuid.New()

	seedNotification(t, db, userID, models.NotificationVideoViewed, models.PriorityNormal, false)
	seedNotification(t, db, userID, models.NotificationSyncNeeded, models.PriorityHigh, true)
	seedNotification(t, db, uuid.New(), models.NotificationVideoViewed, models.PriorityNormal, false)

	all, err := repo.ListForUser(userID, NotificationFilters{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	unread := false
	read, err := repo.ListForUser(userID, NotificationFilters{IsRead: &unread})
	require.NoError(t, err)
	require.Len(t, read, 1)
	assert.Equal(t, models.NotificationVideoViewed, read[0].NotificationType)

	byType, err := repo.ListForUser(userID, NotificationFilters{Type: "sync_needed"})
	require.NoError(t, err)
	assert.Len(t, byType, 1)

	byPriority, err := repo.ListForUser(userID, NotificationFilters{Priority: "high"})
	require.NoError(t, err)
	assert.Len(t, byPriority, 1)
}

func TestMarkAllReadForUser(t *testing.T) {
	db := setupTestDB(t)
	repo := NewNotificationRepository(db)
	userID := uuid.New()

	seedNotification(t, db, userID, models.NotificationVideoViewed, models.PriorityNormal, false)
	seedNotification(t, db, userID, models.NotificationSyncNeeded, models.PriorityNormal, false)
	seedNotification(t, db, userID, models.NotificationWelcome, models.PriorityNormal, true)

	updated, err := repo.MarkAllReadForUser(userID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, updated)

	count, err := repo.CountUnread(userID)
	require.NoError(t, err)
	assert.Zero(t, count)

	// All marked rows carry a read timestamp.
	var withReadAt int64
	require.NoError(t, db.Model(&models.Notification{}).
		Where("recipient_id = ? AND read_at IS NOT NULL", userID).
		Count(&withReadAt).Error)
	assert.EqualValues(t, 2, withReadAt)
}

func TestCountByTypeAndPriority(t *testing.T) {
	db := setupTestDB(t)
	repo := NewNotificationRepository(db)
	userID := uuid.New()

	seedNotification(t, db, userID, models.NotificationVideoViewed, models.PriorityNormal, false)
	seedNotification(t, db, userID, models.NotificationVideoViewed, models.PriorityHigh, false)
	seedNotification(t, db, userID, models.NotificationSyncNeeded, models.PriorityHigh, true)

	byType, err := repo.CountByType(userID, nil)
	require.NoError(t, err)
	require.Len(t, byType, 2)
	assert.Equal(t, "video_viewed", byType[0].NotificationType)
	assert.EqualValues(t, 2, byType[0].Count)

	byPriority, err := repo.CountUnreadByPriority(userID)
	require.NoError(t, err)
	require.Len(t, byPriority, 2)
}

func TestCountSince(t *testing.T) {
	db := setupTestDB(t)
	repo := NewNotificationRepository(db)
	userID := uuid.New()

	old := seedNotification(t, db, userID, models.NotificationWelcome, models.PriorityNormal, true)
	require.NoError(t, db.Model(old).
		Update("created_at", time.Now().AddDate(0, 0, -60)).Error)
	seedNotification(t, db, userID, models.NotificationVideoViewed, models.PriorityNormal, false)

	count, err := repo.CountSince(userID, time.Now().AddDate(0, 0, -30))
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestTemplateLookupIgnoresInactive(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTemplateRepository(db)

	template := &models.NotificationTemplate{
		ID:               uuid.New(),
		NotificationType: models.NotificationVideoLinked,
		TitleTemplate:    "t",
		MessageTemplate:  "m",
		IsActive:         false,
	}
	require.NoError(t, db.Create(template).Error)

	_, err := repo.FindActiveByType(models.NotificationVideoLinked)
	assert.ErrorIs(t, err, ErrNotFound)
}
