package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"jobgate/video-studio/internal/config"
	"jobgate/video-studio/internal/models"
	"jobgate/video-studio/internal/repositories"
	"jobgate/video-studio/internal/services"
)

// setupTestDB creates an in-memory SQLite database with the full schema.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, config.MigrateModels(db))
	return db
}

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestNotifier(db *gorm.DB) services.NotificationService {
	return services.NewNotificationService(
		repositories.NewNotificationRepository(db),
		repositories.NewPreferenceRepository(db),
		repositories.NewTemplateRepository(db),
	)
}

func createTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	user := &models.User{
		ID:        uuid.New(),
		Username:  "user_" + uuid.NewString()[:8],
		Email:     "test@example.com",
		FirstName: "Jean",
		LastName:  "Dupont",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestVideo(t *testing.T, db *gorm.DB, userID uuid.UUID) *models.Video {
	t.Helper()

	video := &models.Video{
		ID:     uuid.New(),
		UserID: userID,
		Title:  "Presentation video",
		Status: models.VideoStatusDraft,
	}
	require.NoError(t, db.Create(video).Error)
	return video
}

func jsonRequest(t *testing.T, method, target string, payload interface{}) *http.Request {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeBody(t *testing.T, resp *http.Response, target interface{}) {
	t.Helper()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, target))
}
