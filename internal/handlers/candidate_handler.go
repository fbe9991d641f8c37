package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"jobgate/video-studio/internal/models"
	"jobgate/video-studio/internal/repositories"
	"jobgate/video-studio/internal/services"
)

type CandidateHandler struct {
	userRepo      repositories.UserRepository
	candidateRepo repositories.CandidateRepository
	syncLogRepo   repositories.SyncLogRepository
	videoViewRepo repositories.VideoViewLogRepository
	profViewRepo  repositories.ProfileViewLogRepository
	notifRepo     repositories.NotificationRepository
	storage       services.StorageService
	cvParser      services.CVParserService
	linkage       services.LinkageService
}

func NewCandidateHandler(
	userRepo repositories.UserRepository,
	candidateRepo repositories.CandidateRepository,
	syncLogRepo repositories.SyncLogRepository,
	videoViewRepo repositories.VideoViewLogRepository,
	profViewRepo repositories.ProfileViewLogRepository,
	notifRepo repositories.NotificationRepository,
	storage services.StorageService,
	cvParser services.CVParserService,
	linkage services.LinkageService,
) *CandidateHandler {
	return &CandidateHandler{
		userRepo:      userRepo,
		candidateRepo: candidateRepo,
		syncLogRepo:   syncLogRepo,
		videoViewRepo: videoViewRepo,
		profViewRepo:  profViewRepo,
		notifRepo:     notifRepo,
		storage:       storage,
		cvParser:      cvParser,
		linkage:       linkage,
	}
}

// HandleSaveProfile handles POST /api/candidate/profile. Creates the profile
// on first call, updates it afterwards; one profile per user.
func (h *CandidateHandler) HandleSaveProfile(c *fiber.Ctx) error {
	var req models.CandidateProfileRequest

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

	if _, err := h.userRepo.FindByID(userID); err != nil {
		return respondError(c, err)
	}

	profile, err := h.candidateRepo.FindByUserID(userID)
	created := false
	if errors.Is(err, repositories.ErrNotFound) {
		profile = &models.CandidateProfile{
			ID:     uuid.New(),
			UserID: userID,
			Status: models.CandidateStatusActive,
		}
		created = true
	} else if err != nil {
		return respondError(c, err)
	}

	applyProfileRequest(profile, &req)

	if created {
		if err := h.candidateRepo.Create(profile); err != nil {
			return respondError(c, err)
		}
	} else {
		if err := h.candidateRepo.Save(profile); err != nil {
			return respondError(c, err)
		}
	}

	// A CV change on this route goes through the same workflow as a CV
	// upload: cv_last_updated stamp, sync log row, sync notification.
	if req.CVFile != nil && *req.CVFile != profile.CVFile {
		profile, err = h.linkage.UpdateCV(profile.ID, *req.CVFile, "", 0)
		if err != nil {
			return respondError(c, err)
		}
	}

	completeness, err := h.linkage.RecalculateCompleteness(profile.ID)
	if err != nil {
		return respondError(c, err)
	}
	profile.ProfileCompleteness = completeness

	status := fiber.StatusOK
	if created {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(profile)
}

func applyProfileRequest(profile *models.CandidateProfile, req *models.CandidateProfileRequest) {
	profile.FirstName = req.FirstName
	profile.LastName = req.LastName
	profile.Phone = req.Phone
	profile.Location = req.Location
	profile.EducationLevel = req.EducationLevel
	profile.University = req.University
	profile.Major = req.Major
	profile.GraduationYear = req.GraduationYear
	profile.ExperienceYears = req.ExperienceYears
	profile.PortfolioURL = req.PortfolioURL
	profile.LinkedinURL = req.LinkedinURL
	if req.Status != "" {
		profile.Status = models.CandidateStatus(req.Status)
	}
	if req.IsProfilePublic != nil {
		profile.IsProfilePublic = *req.IsProfilePublic
	}
	if req.AcceptsOffers != nil {
		profile.AcceptsOffers = *req.AcceptsOffers
	}
	profile.PreferredSalaryMin = req.PreferredSalaryMin
	profile.PreferredSalaryMax = req.PreferredSalaryMax
}

// HandleGetProfile handles GET /api/candidate/profile/:id
func (h *CandidateHandler) HandleGetProfile(c *fiber.Ctx) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}

	profile, err := h.candidateRepo.FindByID(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profile)
}

// HandleGetProfileByUser handles GET /api/candidate/profile/by-user/:userID
func (h *CandidateHandler) HandleGetProfileByUser(c *fiber.Ctx) error {
	userID, ok := parseUUIDParam(c, "userID")
	if !ok {
		return nil
	}

	profile, err := h.candidateRepo.FindByUserID(userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profile)
}

// HandleUploadCV handles POST /api/candidate/profile/:id/cv. Stores the PDF,
// extracts its text, and runs the cv_updated sync workflow.
func (h *CandidateHandler) HandleUploadCV(c *fiber.Ctx) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}

	file, err := c.FormFile("cv_file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "cv_file is required",
		})
	}

	relative, fullPath, err := h.storage.SaveCVFile(file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	// A CV that fails text extraction is still stored and linked.
	cvText := ""
	pageCount := 0
	if content, parseErr := h.cvParser.Parse(fullPath); parseErr == nil {
		cvText = content.Text
		pageCount = content.PageCount
	}

	profile, err := h.linkage.UpdateCV(id, relative, cvText, pageCount)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "CV uploaded",
		"profile": profile,
	})
}

// HandleLinkVideo handles POST /api/candidate/profile/:id/link-video
func (h *CandidateHandler) HandleLinkVideo(c *fiber.Ctx) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}

	var req models.LinkVideoRequest
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

	profile, err := h.linkage.LinkVideo(id, videoID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Video linked to candidate profile",
		"profile": profile,
	})
}

// HandleUnlinkVideo handles POST /api/candidate/profile/:id/unlink-video
func (h *CandidateHandler) HandleUnlinkVideo(c *fiber.Ctx) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}

	profile, err := h.linkage.UnlinkVideo(id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Video unlinked from candidate profile",
		"profile": profile,
	})
}

// HandleRecalculateCompleteness handles POST /api/candidate/profile/:id/recalculate-completeness
func (h *CandidateHandler) HandleRecalculateCompleteness(c *fiber.Ctx) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}

	completeness, err := h.linkage.RecalculateCompleteness(id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"profile_completeness": completeness,
	})
}

// HandleVideoStats handles GET /api/candidate/profile/:id/video-stats
func (h *CandidateHandler) HandleVideoStats(c *fiber.Ctx) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}

	profile, err := h.candidateRepo.FindByID(id)
	if err != nil {
		return respondError(c, err)
	}
	if profile.PresentationVideoID == nil {
		return respondError(c, services.ErrNoVideoLinked)
	}

	stats, err := h.videoViewRepo.StatsForVideo(*profile.PresentationVideoID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"video_id": profile.PresentationVideoID,
		"stats":    stats,
	})
}

// HandleVideoViews handles GET /api/candidate/profile/:id/video-views
func (h *CandidateHandler) HandleVideoViews(c *fiber.Ctx) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}

	logs, err := h.videoViewRepo.List(nil, &id, nil)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"count": len(logs),
		"views": logs,
	})
}

// HandleSyncLogs handles GET /api/candidate/profile/:id/sync-logs
func (h *CandidateHandler) HandleSyncLogs(c *fiber.Ctx) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}

	var syncNeeded *bool
	if raw := c.Query("sync_needed"); raw != "" {
		value, err := strconv.ParseBool(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid sync_needed value",
			})
		}
		syncNeeded = &value
	}

	logs, err := h.syncLogRepo.List(&id, syncNeeded)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"count": len(logs),
		"logs":  logs,
	})
}

// HandlePendingSyncs handles GET /api/candidate/profile/:id/pending-syncs
func (h *CandidateHandler) HandlePendingSyncs(c *fiber.Ctx) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}

	logs, err := h.syncLogRepo.PendingSyncs(&id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"count": len(logs),
		"logs":  logs,
	})
}

// HandleDashboard handles GET /api/candidate/profile/:id/dashboard. One
// payload with everything the candidate home screen shows.
func (h *CandidateHandler) HandleDashboard(c *fiber.Ctx) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}

	profile, err := h.candidateRepo.FindByID(id)
	if err != nil {
		return respondError(c, err)
	}

	videoViews, err := h.videoViewRepo.CountByCandidate(profile.ID)
	if err != nil {
		return respondError(c, err)
	}
	uniqueViewers, err := h.videoViewRepo.CountUniqueViewersByCandidate(profile.ID)
	if err != nil {
		return respondError(c, err)
	}
	profileViews, err := h.profViewRepo.CountByCandidate(profile.ID)
	if err != nil {
		return respondError(c, err)
	}
	pendingSync, err := h.syncLogRepo.HasPendingSync(profile.ID)
	if err != nil {
		return respondError(c, err)
	}
	unread, err := h.notifRepo.CountUnread(profile.UserID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"profile_completeness": profile.ProfileCompleteness,
		"has_video":            profile.PresentationVideoID != nil,
		"video_quality_score":  profile.VideoQualityScore,
		"video_views":          videoViews,
		"unique_viewers":       uniqueViewers,
		"profile_views":        profileViews,
		"sync_pending":         pendingSync,
		"unread_notifications": unread,
	})
}
