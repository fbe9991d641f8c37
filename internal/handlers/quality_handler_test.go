package handlers

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"jobgate/video-studio/internal/models"
	"jobgate/video-studio/internal/repositories"
	"jobgate/video-studio/internal/services"
)

func newQualityApp(db *gorm.DB) *fiber.App {
	videoRepo := repositories.NewVideoRepository(db)
	checkRepo := repositories.NewQualityCheckRepository(db)
	handler := NewQualityHandler(services.NewQualityService(videoRepo, checkRepo), checkRepo)

	app := fiber.New()
	app.Post("/api/videos/quality-checks/batch", handler.HandleBatchUpsert)
	return app
}

func TestBatchUpsertRejectsUnknownStatus(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db)
	video := createTestVideo(t, db, user.ID)
	app := newQualityApp(db)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/videos/quality-checks/batch",
		map[string]interface{}{
			"video_id": video.ID.String(),
			"quality_checks": map[string]interface{}{
				"face": map[string]interface{}{"status": "excellent", "score": 90},
			},
		}), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var count int64
	require.NoError(t, db.Model(&models.QualityCheck{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestBatchUpsertAcceptsKnownStatuses(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db)
	video := createTestVideo(t, db, user.ID)
	app := newQualityApp(db)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/videos/quality-checks/batch",
		map[string]interface{}{
			"video_id": video.ID.String(),
			"quality_checks": map[string]interface{}{
				"face":     map[string]interface{}{"status": "success", "score": 90},
				"lighting": map[string]interface{}{"status": "warning", "score": 70},
			},
		}), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var count int64
	require.NoError(t, db.Model(&models.QualityCheck{}).
		Where("video_id = ?", video.ID).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestBatchUpsertRejectsOutOfRangeScore(t *testing.T) {
	db := setupTestDB(t)
	app := newQualityApp(db)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/videos/quality-checks/batch",
		map[string]interface{}{
			"video_id": uuid.NewString(),
			"quality_checks": map[string]interface{}{
				"audio": map[string]interface{}{"status": "success", "score": 140},
			},
		}), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
