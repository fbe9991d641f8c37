package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"jobgate/video-studio/internal/models"
	"jobgate/video-studio/internal/repositories"
)

func newNotificationApp(db *gorm.DB) *fiber.App {
	handler := NewNotificationHandler(
		repositories.NewNotificationRepository(db),
		repositories.NewPreferenceRepository(db),
		newTestNotifier(db),
	)

	app := fiber.New()
	app.Get("/api/notifications/summary", handler.HandleSummary)
	app.Post("/api/notifications/:id/mark-as-read", handler.HandleMarkAsRead)
	app.Post("/api/notifications/:id/mark-as-unread", handler.HandleMarkAsUnread)
	return app
}

func seedNotification(t *testing.T, db *gorm.DB, recipientID uuid.UUID, notifType models.NotificationType) *models.Notification {
	t.Helper()

	notification := &models.Notification{
		ID:               uuid.New(),
		RecipientID:      recipientID,
		NotificationType: notifType,
		Title:            "title",
		Message:          "message",
		Priority:         models.PriorityNormal,
	}
	require.NoError(t, db.Create(notification).Error)
	return notification
}

func TestMarkAsReadThenUnreadRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	app := newNotificationApp(db)
	userID := uuid.New()
	notification := seedNotification(t, db, userID, models.NotificationVideoViewed)

	resp, err := app.Test(jsonRequest(t, http.MethodPost,
		"/api/notifications/"+notification.ID.String()+"/mark-as-read", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var read models.Notification
	require.NoError(t, db.First(&read, "id = ?", notification.ID).Error)
	assert.True(t, read.IsRead)
	require.NotNil(t, read.ReadAt)
	assert.WithinDuration(t, time.Now(), *read.ReadAt, time.Minute)

	resp, err = app.Test(jsonRequest(t, http.MethodPost,
		"/api/notifications/"+notification.ID.String()+"/mark-as-unread", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var unread models.Notification
	require.NoError(t, db.First(&unread, "id = ?", notification.ID).Error)
	assert.False(t, unread.IsRead)
	assert.Nil(t, unread.ReadAt)
}

func TestMarkAsReadKeepsOriginalTimestamp(t *testing.T) {
	db := setupTestDB(t)
	app := newNotificationApp(db)
	userID := uuid.New()
	notification := seedNotification(t, db, userID, models.NotificationSyncNeeded)

	stamp := time.Now().Add(-time.Hour).Round(time.Second)
	require.NoError(t, db.Model(notification).
		Updates(map[string]interface{}{"is_read": true, "read_at": stamp}).Error)

	// Marking an already-read notification again must not re-stamp it.
	resp, err := app.Test(jsonRequest(t, http.MethodPost,
		"/api/notifications/"+notification.ID.String()+"/mark-as-read", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var stored models.Notification
	require.NoError(t, db.First(&stored, "id = ?", notification.ID).Error)
	require.NotNil(t, stored.ReadAt)
	assert.WithinDuration(t, stamp, *stored.ReadAt, time.Second)
}

func TestSummaryCountsToday(t *testing.T) {
	db := setupTestDB(t)
	app := newNotificationApp(db)
	userID := uuid.New()

	seedNotification(t, db, userID, models.NotificationVideoViewed)
	old := seedNotification(t, db, userID, models.NotificationWelcome)
	require.NoError(t, db.Model(old).
		Update("created_at", time.Now().AddDate(0, 0, -2)).Error)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet,
		"/api/notifications/summary?user_id="+userID.String(), nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		UnreadCount   int `json:"unread_count"`
		ReceivedToday int `json:"received_today"`
	}
	decodeBody(t, resp, &body)
	assert.Equal(t, 2, body.UnreadCount)
	assert.Equal(t, 1, body.ReceivedToday)
}

func TestStartOfDayUsesLocalMidnight(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)
	ts := time.Date(2026, time.March, 10, 2, 30, 0, 0, loc)

	midnight := startOfDay(ts)
	assert.Equal(t, time.Date(2026, time.March, 10, 0, 0, 0, 0, loc), midnight)
	assert.True(t, midnight.Before(ts))
	// The UTC-day truncation would land on the previous local day here.
	assert.NotEqual(t, ts.Truncate(24*time.Hour), midnight)
}
