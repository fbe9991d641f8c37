package handlers

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"jobgate/video-studio/internal/models"
	"jobgate/video-studio/internal/repositories"
	"jobgate/video-studio/internal/services"
)

type RecruiterHandler struct {
	recruiterRepo repositories.RecruiterRepository
	candidateRepo repositories.CandidateRepository
	favoriteRepo  repositories.FavoriteRepository
	videoViewRepo repositories.VideoViewLogRepository
	profViewRepo  repositories.ProfileViewLogRepository
	interactions  services.InteractionService
}

func NewRecruiterHandler(
	recruiterRepo repositories.RecruiterRepository,
	candidateRepo repositories.CandidateRepository,
	favoriteRepo repositories.FavoriteRepository,
	videoViewRepo repositories.VideoViewLogRepository,
	profViewRepo repositories.ProfileViewLogRepository,
	interactions services.InteractionService,
) *RecruiterHandler {
	return &RecruiterHandler{
		recruiterRepo: recruiterRepo,
		candidateRepo: candidateRepo,
		favoriteRepo:  favoriteRepo,
		videoViewRepo: videoViewRepo,
		profViewRepo:  profViewRepo,
		interactions:  interactions,
	}
}

// HandleSaveProfile handles POST /api/recruiter/profile. Creates on first
// call, updates afterwards; one profile per user.
func (h *RecruiterHandler) HandleSaveProfile(c *fiber.Ctx) error {
	var req models.RecruiterProfileRequest
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

	profile, err := h.recruiterRepo.FindByUserID(userID)
	created := false
	if errors.Is(err, repositories.ErrNotFound) {
		profile = &models.RecruiterProfile{
			ID:       uuid.New(),
			UserID:   userID,
			IsActive: true,
		}
		created = true
	} else if err != nil {
		return respondError(c, err)
	}

	profile.CompanyName = req.CompanyName
	profile.Position = req.Position
	profile.Phone = req.Phone
	profile.Department = req.Department
	profile.PreferredEducationLevels = req.PreferredEducationLevels
	profile.PreferredExperienceRange = req.PreferredExperienceRange
	profile.PreferredUniversities = req.PreferredUniversities
	if req.IsActive != nil {
		profile.IsActive = *req.IsActive
	}

	if created {
		err = h.recruiterRepo.Create(profile)
	} else {
		err = h.recruiterRepo.Save(profile)
	}
	if err != nil {
		return respondError(c, err)
	}

	status := fiber.StatusOK
	if created {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(profile)
}

// HandleGetProfileByUser handles GET /api/recruiter/profile/by-user/:userID
func (h *RecruiterHandler) HandleGetProfileByUser(c *fiber.Ctx) error {
	userID, ok := parseUUIDParam(c, "userID")
	if !ok {
		return nil
	}

	profile, err := h.recruiterRepo.FindByUserID(userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profile)
}

// HandleSearch handles GET /api/recruiter/candidates. All filters combine
// with AND; only public profiles are returned.
func (h *RecruiterHandler) HandleSearch(c *fiber.Ctx) error {
	params := repositories.CandidateSearchParams{
		Query:          c.Query("q"),
		Status:         c.Query("status"),
		EducationLevel: c.Query("education_level"),
		University:     c.Query("university"),
		OrderBy:        c.Query("order_by"),
		Limit:          c.QueryInt("limit"),
		Offset:         c.QueryInt("offset"),
	}

	var err error
	if params.HasVideo, err = optionalBoolQuery(c, "has_video"); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid has_video value",
		})
	}
	if params.ExperienceMin, err = optionalIntQuery(c, "experience_min"); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid experience_min value",
		})
	}
	if params.ExperienceMax, err = optionalIntQuery(c, "experience_max"); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid experience_max value",
		})
	}
	if params.MinVideoScore, err = optionalIntQuery(c, "min_video_score"); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid min_video_score value",
		})
	}
	if params.MinCompleteness, err = optionalIntQuery(c, "min_completeness"); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid min_completeness value",
		})
	}

	profiles, total, err := h.candidateRepo.Search(params)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"count":      len(profiles),
		"total":      total,
		"candidates": profiles,
	})
}

// HandleCandidateDetail handles GET /api/recruiter/candidates/:id. Only
// public profiles are visible; private ones read as not found.
func (h *RecruiterHandler) HandleCandidateDetail(c *fiber.Ctx) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}

	profile, err := h.candidateRepo.FindPublicByID(id)
	if err != nil {
		return respondError(c, err)
	}

	response := fiber.Map{
		"profile":   profile,
		"has_video": profile.HasPresentationVideo(),
	}
	if profile.PresentationVideoID != nil {
		if stats, statsErr := h.videoViewRepo.StatsForVideo(*profile.PresentationVideoID); statsErr == nil {
			response["video_stats"] = stats
		}
	}
	return c.JSON(response)
}

// HandleLogVideoView handles POST /api/recruiter/candidates/:id/log-video-view
func (h *RecruiterHandler) HandleLogVideoView(c *fiber.Ctx) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}

	var req models.LogVideoViewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}
	if err := validate.Struct(req); err != nil {
		return validationError(c, err)
	}

	recruiterID, err := uuid.Parse(req.RecruiterID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid recruiter_id format",
		})
	}

	viewLog, err := h.interactions.LogVideoView(id, recruiterID, services.VideoViewInput{
		ViewDuration:     req.ViewDuration,
		CompletedViewing: req.CompletedViewing,
		Rating:           req.Rating,
		Notes:            req.Notes,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(viewLog)
}

// HandleLogProfileView handles POST /api/recruiter/candidates/:id/log-profile-view
func (h *RecruiterHandler) HandleLogProfileView(c *fiber.Ctx) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}

	var req models.LogProfileViewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}
	if err := validate.Struct(req); err != nil {
		return validationError(c, err)
	}

	recruiterID, err := uuid.Parse(req.RecruiterID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid recruiter_id format",
		})
	}

	viewLog, err := h.interactions.LogProfileView(id, recruiterID, services.ProfileViewInput{
		ViewDuration:     req.ViewDuration,
		SectionsViewed:   req.SectionsViewed,
		CVDownloaded:     req.CVDownloaded,
		VideoWatched:     req.VideoWatched,
		ContactAttempted: req.ContactAttempted,
		InterestLevel:    req.InterestLevel,
		Notes:            req.Notes,
		IPAddress:        c.IP(),
		UserAgent:        c.Get(fiber.HeaderUserAgent),
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(viewLog)
}

// HandleDashboard handles GET /api/recruiter/:recruiterID/dashboard
func (h *RecruiterHandler) HandleDashboard(c *fiber.Ctx) error {
	recruiterID, ok := parseUUIDParam(c, "recruiterID")
	if !ok {
		return nil
	}

	totalCandidates, err := h.candidateRepo.CountPublic()
	if err != nil {
		return respondError(c, err)
	}
	byStatus, err := h.candidateRepo.CountPublicByStatus()
	if err != nil {
		return respondError(c, err)
	}
	withVideo, err := h.candidateRepo.CountWithApprovedVideo()
	if err != nil {
		return respondError(c, err)
	}
	avgQuality, err := h.candidateRepo.AverageVideoQuality()
	if err != nil {
		return respondError(c, err)
	}
	favorites, err := h.favoriteRepo.ListByRecruiter(recruiterID)
	if err != nil {
		return respondError(c, err)
	}
	recentViews, err := h.videoViewRepo.CountByViewerSince(recruiterID, time.Now().AddDate(0, 0, -30))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"total_candidates":      totalCandidates,
		"candidates_by_status":  byStatus,
		"candidates_with_video": withVideo,
		"average_video_quality": avgQuality,
		"favorites_count":       len(favorites),
		"recent_video_views":    recentViews,
	})
}

// HandleFilterOptions handles GET /api/recruiter/filter-options. Feeds the
// search form dropdowns from live profile data.
func (h *RecruiterHandler) HandleFilterOptions(c *fiber.Ctx) error {
	educationLevels, err := h.candidateRepo.DistinctValues("education_level", 50)
	if err != nil {
		return respondError(c, err)
	}
	universities, err := h.candidateRepo.DistinctValues("university", 200)
	if err != nil {
		return respondError(c, err)
	}
	majors, err := h.candidateRepo.DistinctValues("major", 200)
	if err != nil {
		return respondError(c, err)
	}
	topUniversities, err := h.candidateRepo.TopUniversities(10)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"education_levels": educationLevels,
		"universities":     universities,
		"majors":           majors,
		"top_universities": topUniversities,
		"statuses": []models.CandidateStatus{
			models.CandidateStatusActive,
			models.CandidateStatusPassive,
			models.CandidateStatusNotAvailable,
		},
	})
}

// HandleListFavorites handles GET /api/recruiter/:recruiterID/favorites
func (h *RecruiterHandler) HandleListFavorites(c *fiber.Ctx) error {
	recruiterID, ok := parseUUIDParam(c, "recruiterID")
	if !ok {
		return nil
	}

	favorites, err := h.favoriteRepo.ListByRecruiter(recruiterID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"count":     len(favorites),
		"favorites": favorites,
	})
}

// HandleAddFavorite handles POST /api/recruiter/favorites
func (h *RecruiterHandler) HandleAddFavorite(c *fiber.Ctx) error {
	var req models.AddFavoriteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}
	if err := validate.Struct(req); err != nil {
		return validationError(c, err)
	}

	recruiterID, err := uuid.Parse(req.RecruiterID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid recruiter_id format",
		})
	}
	candidateID, err := uuid.Parse(req.CandidateID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid candidate_id format",
		})
	}

	favorite, err := h.interactions.AddFavorite(recruiterID, candidateID, req.Priority, req.Notes)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(favorite)
}

// HandleRemoveFavorite handles DELETE /api/recruiter/:recruiterID/favorites/:candidateID
func (h *RecruiterHandler) HandleRemoveFavorite(c *fiber.Ctx) error {
	recruiterID, ok := parseUUIDParam(c, "recruiterID")
	if !ok {
		return nil
	}
	candidateID, ok := parseUUIDParam(c, "candidateID")
	if !ok {
		return nil
	}

	if err := h.interactions.RemoveFavorite(recruiterID, candidateID); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Candidate removed from favorites",
	})
}

func optionalIntQuery(c *fiber.Ctx, name string) (*int, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil, err
	}
	return &value, nil
}

func optionalBoolQuery(c *fiber.Ctx, name string) (*bool, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, err
	}
	return &value, nil
}
