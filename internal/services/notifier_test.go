package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobgate/video-studio/internal/models"
)

func TestNotifyEventUsesDefaultMessage(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db)

	notifier := newTestNotifier(db)

	notification, err := notifier.NotifyEvent(EventNotification{
		RecipientID: user.ID,
		Type:        models.NotificationVideoViewed,
		Context: map[string]interface{}{
			"video_title": "My pitch",
		},
	})
	require.NoError(t, err)
	require.NotNil(t, notification)

	assert.Equal(t, "Video viewed", notification.Title)
	assert.Equal(t, `A recruiter viewed your presentation video "My pitch"`, notification.Message)
	assert.Equal(t, models.PriorityNormal, notification.Priority)
}

func TestNotifyEventPrefersActiveTemplate(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db)

	template := &models.NotificationTemplate{
		ID:               uuid.New(),
		NotificationType: models.NotificationVideoLinked,
		TitleTemplate:    "Video linked: {video_title}",
		MessageTemplate:  "Score {quality_score}/100",
		IsActive:         true,
	}
	require.NoError(t, db.Create(template).Error)

	notifier := newTestNotifier(db)

	notification, err := notifier.NotifyEvent(EventNotification{
		RecipientID: user.ID,
		Type:        models.NotificationVideoLinked,
		Context: map[string]interface{}{
			"video_title":   "My pitch",
			"quality_score": 85,
		},
	})
	require.NoError(t, err)
	require.NotNil(t, notification)

	assert.Equal(t, "Video linked: My pitch", notification.Title)
	assert.Equal(t, "Score 85/100", notification.Message)
}

func TestNotifyEventHonorsOptOut(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db)

	pref := &models.NotificationPreference{
		ID:                uuid.New(),
		UserID:            user.ID,
		NotifyVideoViewed: false,
	}
	require.NoError(t, db.Create(pref).Error)

	notifier := newTestNotifier(db)

	notification, err := notifier.NotifyEvent(EventNotification{
		RecipientID: user.ID,
		Type:        models.NotificationVideoViewed,
	})
	require.NoError(t, err)
	assert.Nil(t, notification)

	var count int64
	require.NoError(t, db.Model(&models.Notification{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestNotifyEventUnknownTypeAlwaysSends(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db)

	pref := &models.NotificationPreference{
		ID:                uuid.New(),
		UserID:            user.ID,
		NotifyVideoViewed: false,
	}
	require.NoError(t, db.Create(pref).Error)

	notifier := newTestNotifier(db)

	notification, err := notifier.NotifyEvent(EventNotification{
		RecipientID: user.ID,
		Type:        models.NotificationSystemUpdate,
	})
	require.NoError(t, err)
	require.NotNil(t, notification)
	assert.Equal(t, "JOBGATE", notification.Title)
}

func TestCreateFillsDefaults(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db)

	notifier := newTestNotifier(db)

	notification := &models.Notification{
		RecipientID:      user.ID,
		NotificationType: models.NotificationAccountUpdate,
		Title:            "Account updated",
		Message:          "Your account settings were changed",
	}
	require.NoError(t, notifier.Create(notification))

	assert.NotEqual(t, uuid.Nil, notification.ID)
	assert.Equal(t, models.PriorityNormal, notification.Priority)
}
