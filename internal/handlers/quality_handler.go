package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"jobgate/video-studio/internal/models"
	"jobgate/video-studio/internal/repositories"
	"jobgate/video-studio/internal/services"
)

type QualityHandler struct {
	quality   services.QualityService
	checkRepo repositories.QualityCheckRepository
}

func NewQualityHandler(
	quality services.QualityService,
	checkRepo repositories.QualityCheckRepository,
) *QualityHandler {
	return &QualityHandler{
		quality:   quality,
		checkRepo: checkRepo,
	}
}

// HandleUpsertCheck handles POST /api/videos/quality-checks
func (h *QualityHandler) HandleUpsertCheck(c *fiber.Ctx) error {
	var req models.QualityCheckRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}
	if err := validate.Struct(req); err != nil {
		return validationError(c, err)
	}

	videoID, err := uuid.Parse(req.VideoID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid video_id format",
		})
	}

	result, err := h.quality.UpsertCheck(videoID, req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(result)
}

// HandleBatchUpsert handles POST /api/videos/quality-checks/batch
func (h *QualityHandler) HandleBatchUpsert(c *fiber.Ctx) error {
	var req models.QualityCheckBatchRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}
	if err := validate.Struct(req); err != nil {
		return validationError(c, err)
	}

	videoID, err := uuid.Parse(req.VideoID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid video_id format",
		})
	}

	result, err := h.quality.BatchUpsert(videoID, req.QualityChecks)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(result)
}

// HandleListChecks handles GET /api/videos/:id/quality-checks
func (h *QualityHandler) HandleListChecks(c *fiber.Ctx) error {
	videoID, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}

	checks, err := h.checkRepo.FindByVideo(videoID)
	if err != nil {
		return respondError(c, err)
	}

	scores := make([]int, 0, len(checks))
	for _, check := range checks {
		scores = append(scores, check.Score)
	}
	overall := services.AggregateScore(scores)

	return c.JSON(fiber.Map{
		"checks":        checks,
		"overall_score": overall,
		"is_ready":      overall >= models.ReadyScoreThreshold,
	})
}

// HandleAnalyze handles POST /api/videos/quality-analysis. Computes the
// aggregate for a submitted score map without persisting anything.
func (h *QualityHandler) HandleAnalyze(c *fiber.Ctx) error {
	var req models.QualityAnalysisRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}
	if err := validate.Struct(req); err != nil {
		return validationError(c, err)
	}

	overall, isReady := h.quality.Analyze(req.Analysis)

	return c.JSON(fiber.Map{
		"video_id":      req.VideoID,
		"overall_score": overall,
		"is_ready":      isReady,
	})
}
