package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"jobgate/video-studio/internal/models"
	"jobgate/video-studio/internal/repositories"
	"jobgate/video-studio/internal/services"
)

type VideoHandler struct {
	videoRepo   repositories.VideoRepository
	sessionRepo repositories.RecordingSessionRepository
	storage     services.StorageService
	linkage     services.LinkageService
	notifier    services.NotificationService
}

func NewVideoHandler(
	videoRepo repositories.VideoRepository,
	sessionRepo repositories.RecordingSessionRepository,
	storage services.StorageService,
	linkage services.LinkageService,
	notifier services.NotificationService,
) *VideoHandler {
	return &VideoHandler{
		videoRepo:   videoRepo,
		sessionRepo: sessionRepo,
		storage:     storage,
		linkage:     linkage,
		notifier:    notifier,
	}
}

// HandleCreate handles POST /api/videos
func (h *VideoHandler) HandleCreate(c *fiber.Ctx) error {
	var req models.CreateVideoRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}
	if err := validate.Struct(req); err != nil {
		return validationError(c, err)
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid user_id format",
		})
	}

	video := &models.Video{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Duration:    req.Duration,
		FileSize:    req.FileSize,
		Format:      req.Format,
		Resolution:  req.Resolution,
		Status:      models.VideoStatusDraft,
	}
	if video.Title == "" {
		video.Title = "Presentation video"
	}

	if err := h.videoRepo.Create(video); err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(video)
}

// HandleList handles GET /api/videos
func (h *VideoHandler) HandleList(c *fiber.Ctx) error {
	var userID *uuid.UUID
	if raw := c.Query("user_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid user_id format",
			})
		}
		userID = &id
	}

	videos, err := h.videoRepo.List(userID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"count":  len(videos),
		"videos": videos,
	})
}

// HandleGet handles GET /api/videos/:id
func (h *VideoHandler) HandleGet(c *fiber.Ctx) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}

	video, err := h.videoRepo.FindByIDWithChecks(id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"video":              video,
		"is_ready":           video.IsReady(),
		"duration_formatted": video.DurationFormatted(),
	})
}

// HandleUpdate handles PUT /api/videos/:id. Only descriptive fields are
// writable here; status and approval move through their own endpoints.
func (h *VideoHandler) HandleUpdate(c *fiber.Ctx) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}

	var req struct {
		Title       *string  `json:"title"`
		Description *string  `json:"description"`
		Duration    *float64 `json:"duration"`
		Format      *string  `json:"format"`
		Resolution  *string  `json:"resolution"`
		Thumbnail   *string  `json:"thumbnail"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	video, err := h.videoRepo.FindByID(id)
	if err != nil {
		return respondError(c, err)
	}

	if req.Title != nil {
		video.Title = *req.Title
	}
	if req.Description != nil {
		video.Description = *req.Description
	}
	if req.Duration != nil {
		video.Duration = *req.Duration
	}
	if req.Format != nil {
		video.Format = *req.Format
	}
	if req.Resolution != nil {
		video.Resolution = *req.Resolution
	}
	if req.Thumbnail != nil {
		video.Thumbnail = *req.Thumbnail
	}

	if err := h.videoRepo.Save(video); err != nil {
		return respondError(c, err)
	}
	return c.JSON(video)
}

// HandleListRecordingSessions handles GET /api/videos/:id/recording-sessions
func (h *VideoHandler) HandleListRecordingSessions(c *fiber.Ctx) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}

	sessions, err := h.sessionRepo.List(&id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"count":    len(sessions),
		"sessions": sessions,
	})
}

// HandleUpload handles POST /api/videos/:id/upload
func (h *VideoHandler) HandleUpload(c *fiber.Ctx) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}

	video, err := h.videoRepo.FindByID(id)
	if err != nil {
		return respondError(c, err)
	}

	file, err := c.FormFile("video_file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "video_file is required",
		})
	}

	relative, _, err := h.storage.SaveVideoFile(file, video.UserID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	now := time.Now()
	video.VideoFile = relative
	video.FileSize = file.Size
	video.Status = models.VideoStatusCompleted
	video.RecordedAt = &now
	if err := h.videoRepo.Save(video); err != nil {
		return respondError(c, err)
	}

	return c.JSON(video)
}

// HandleApprove handles POST /api/videos/:id/approve
func (h *VideoHandler) HandleApprove(c *fiber.Ctx) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}

	video, err := h.videoRepo.FindByID(id)
	if err != nil {
		return respondError(c, err)
	}

	if !video.IsApproved {
		video.IsApproved = true
		video.Status = models.VideoStatusCompleted
		if err := h.videoRepo.Save(video); err != nil {
			return respondError(c, err)
		}

		_, _ = h.notifier.NotifyEvent(services.EventNotification{
			RecipientID:       video.UserID,
			Type:              models.NotificationVideoApproved,
			RelatedObjectType: "video",
			RelatedObjectID:   &video.ID,
			Context: map[string]interface{}{
				"video_title":   video.Title,
				"quality_score": video.OverallQualityScore,
			},
		})
	}

	return c.JSON(video)
}

// HandleStartRecording handles POST /api/videos/:id/start-recording
func (h *VideoHandler) HandleStartRecording(c *fiber.Ctx) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}

	var req models.StartRecordingRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid request payload",
			})
		}
	}

	video, err := h.videoRepo.FindByID(id)
	if err != nil {
		return respondError(c, err)
	}

	session, err := h.sessionRepo.FindByVideo(video.ID)
	if err == nil {
		// Re-recording the same video counts as another attempt.
		session.StartedAt = time.Now()
		session.EndedAt = nil
		session.TotalAttempts++
		if len(req.InstructionsShown) > 0 {
			session.InstructionsShown = req.InstructionsShown
		}
		if req.DeviceSettings != nil {
			session.DeviceSettings = req.DeviceSettings
		}
		if err := h.sessionRepo.Save(session); err != nil {
			return respondError(c, err)
		}
	} else {
		session = &models.RecordingSession{
			ID:                uuid.New(),
			VideoID:           video.ID,
			UserID:            video.UserID,
			StartedAt:         time.Now(),
			TotalAttempts:     1,
			InstructionsShown: req.InstructionsShown,
			DeviceSettings:    req.DeviceSettings,
		}
		if err := h.sessionRepo.Create(session); err != nil {
			return respondError(c, err)
		}
	}

	if err := h.videoRepo.UpdateFields(video.ID, map[string]interface{}{
		"status": models.VideoStatusProcessing,
	}); err != nil {
		return respondError(c, err)
	}

	return c.JSON(session)
}

// HandleStopRecording handles POST /api/videos/:id/stop-recording
func (h *VideoHandler) HandleStopRecording(c *fiber.Ctx) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}

	var req models.StopRecordingRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid request payload",
			})
		}
	}

	session, err := h.sessionRepo.FindByVideo(id)
	if err != nil {
		return respondError(c, err)
	}
	if session.IsCompleted() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Recording session already ended",
		})
	}

	now := time.Now()
	session.EndedAt = &now
	session.DurationSeconds = req.DurationSeconds
	if session.DurationSeconds == nil {
		elapsed := int(now.Sub(session.StartedAt).Seconds())
		session.DurationSeconds = &elapsed
	}
	if len(req.InstructionsCompleted) > 0 {
		session.InstructionsCompleted = req.InstructionsCompleted
	}
	if err := h.sessionRepo.Save(session); err != nil {
		return respondError(c, err)
	}

	if err := h.videoRepo.UpdateFields(id, map[string]interface{}{
		"status":      models.VideoStatusCompleted,
		"recorded_at": now,
	}); err != nil {
		return respondError(c, err)
	}

	return c.JSON(session)
}

// HandleLinkToCV handles POST /api/videos/link-to-cv
func (h *VideoHandler) HandleLinkToCV(c *fiber.Ctx) error {
	var req models.QuickVideoLinkRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}
	if err := validate.Struct(req); err != nil {
		return validationError(c, err)
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid user_id format",
		})
	}
	videoID, err := uuid.Parse(req.VideoID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid video_id format",
		})
	}

	profile, err := h.linkage.QuickLink(userID, videoID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Video linked to candidate profile",
		"profile": profile,
	})
}
