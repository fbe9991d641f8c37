package services

import (
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"jobgate/video-studio/internal/models"
	"jobgate/video-studio/internal/repositories"
)

// VideoViewInput carries the recruiter feedback attached to a video view.
type VideoViewInput struct {
	ViewDuration     int
	CompletedViewing bool
	Rating           *int
	Notes            string
}

// ProfileViewInput carries the details of a profile consultation.
type ProfileViewInput struct {
	ViewDuration     int
	SectionsViewed   []string
	CVDownloaded     bool
	VideoWatched     bool
	ContactAttempted bool
	InterestLevel    *int
	Notes            string
	IPAddress        string
	UserAgent        string
}

// InteractionService appends recruiter action logs and fans each one out to a
// CandidateInteraction row in the same transaction. Side effects are explicit
// calls, not persistence hooks. Notifications ride outside the transaction
// and are swallowed on failure.
type InteractionService interface {
	LogVideoView(profileID, recruiterID uuid.UUID, input VideoViewInput) (*models.VideoViewLog, error)
	LogProfileView(profileID, recruiterID uuid.UUID, input ProfileViewInput) (*models.ProfileViewLog, error)
	AddFavorite(recruiterID, candidateID uuid.UUID, priority int, notes string) (*models.RecruiterFavorite, error)
	RemoveFavorite(recruiterID, candidateID uuid.UUID) error
}

type interactionService struct {
	db       *gorm.DB
	notifier NotificationService
	log      *logrus.Logger
}

func NewInteractionService(db *gorm.DB, notifier NotificationService, log *logrus.Logger) InteractionService {
	return &interactionService{db: db, notifier: notifier, log: log}
}

// LogVideoView appends a view-log row and exactly one video_view interaction
// carrying the same duration/completion/rating, then notifies the candidate.
func (s *interactionService) LogVideoView(profileID, recruiterID uuid.UUID, input VideoViewInput) (*models.VideoViewLog, error) {
	var viewLog *models.VideoViewLog
	var profile *models.CandidateProfile
	var recruiter *models.User

	err := s.db.Transaction(func(tx *gorm.DB) error {
		candidates := repositories.NewCandidateRepository(tx)
		users := repositories.NewUserRepository(tx)
		viewLogs := repositories.NewVideoViewLogRepository(tx)
		interactions := repositories.NewInteractionRepository(tx)

		var err error
		profile, err = candidates.FindPublicByID(profileID)
		if err != nil {
			return err
		}
		if profile.PresentationVideoID == nil {
			return ErrNoVideoLinked
		}
		recruiter, err = users.FindByID(recruiterID)
		if err != nil {
			return err
		}

		viewLog = &models.VideoViewLog{
			ID:                 uuid.New(),
			VideoID:            *profile.PresentationVideoID,
			ViewerID:           recruiter.ID,
			CandidateProfileID: profile.ID,
			ViewedAt:           time.Now(),
			ViewDuration:       input.ViewDuration,
			CompletedViewing:   input.CompletedViewing,
			Rating:             input.Rating,
			Notes:              input.Notes,
		}
		if err := viewLogs.Create(viewLog); err != nil {
			return err
		}

		return interactions.Create(&models.CandidateInteraction{
			ID:              uuid.New(),
			CandidateID:     profile.ID,
			RecruiterID:     recruiter.ID,
			InteractionType: models.InteractionVideoView,
			InteractionDate: viewLog.ViewedAt,
			Details: map[string]interface{}{
				"video_id":      viewLog.VideoID.String(),
				"view_duration": input.ViewDuration,
				"completed":     input.CompletedViewing,
				"rating":        input.Rating,
			},
			Notes: input.Notes,
		})
	})
	if err != nil {
		return nil, err
	}

	videoTitle := ""
	if profile.PresentationVideo != nil {
		videoTitle = profile.PresentationVideo.Title
	}
	_, notifyErr := s.notifier.NotifyEvent(EventNotification{
		RecipientID:       profile.UserID,
		SenderID:          &recruiter.ID,
		Type:              models.NotificationVideoViewed,
		RelatedObjectType: "candidate_profile",
		RelatedObjectID:   &profile.ID,
		Context: map[string]interface{}{
			"video_id":    viewLog.VideoID.String(),
			"video_title": videoTitle,
			"viewer_name": recruiter.FullName(),
		},
	})
	if notifyErr != nil {
		s.log.WithError(notifyErr).Warn("video_viewed notification failed")
	}

	return viewLog, nil
}

// LogProfileView appends a profile-view row and its profile_view interaction.
// No notification is emitted for plain profile views.
func (s *interactionService) LogProfileView(profileID, recruiterID uuid.UUID, input ProfileViewInput) (*models.ProfileViewLog, error) {
	var viewLog *models.ProfileViewLog

	err := s.db.Transaction(func(tx *gorm.DB) error {
		candidates := repositories.NewCandidateRepository(tx)
		users := repositories.NewUserRepository(tx)
		viewLogs := repositories.NewProfileViewLogRepository(tx)
		interactions := repositories.NewInteractionRepository(tx)

		profile, err := candidates.FindPublicByID(profileID)
		if err != nil {
			return err
		}
		recruiter, err := users.FindByID(recruiterID)
		if err != nil {
			return err
		}

		viewLog = &models.ProfileViewLog{
			ID:                 uuid.New(),
			CandidateProfileID: profile.ID,
			RecruiterID:        recruiter.ID,
			ViewedAt:           time.Now(),
			ViewDuration:       input.ViewDuration,
			SectionsViewed:     input.SectionsViewed,
			CVDownloaded:       input.CVDownloaded,
			VideoWatched:       input.VideoWatched,
			ContactAttempted:   input.ContactAttempted,
			InterestLevel:      input.InterestLevel,
			Notes:              input.Notes,
			IPAddress:          input.IPAddress,
			UserAgent:          input.UserAgent,
		}
		if err := viewLogs.Create(viewLog); err != nil {
			return err
		}

		return interactions.Create(&models.CandidateInteraction{
			ID:              uuid.New(),
			CandidateID:     profile.ID,
			RecruiterID:     recruiter.ID,
			InteractionType: models.InteractionProfileView,
			InteractionDate: viewLog.ViewedAt,
			Details: map[string]interface{}{
				"view_duration":   input.ViewDuration,
				"sections_viewed": input.SectionsViewed,
				"cv_downloaded":   input.CVDownloaded,
				"interest_level":  input.InterestLevel,
			},
			Notes: input.Notes,
		})
	})
	if err != nil {
		return nil, err
	}
	return viewLog, nil
}

func (s *interactionService) AddFavorite(recruiterID, candidateID uuid.UUID, priority int, notes string) (*models.RecruiterFavorite, error) {
	if priority == 0 {
		priority = 3
	}

	var favorite *models.RecruiterFavorite
	err := s.db.Transaction(func(tx *gorm.DB) error {
		candidates := repositories.NewCandidateRepository(tx)
		users := repositories.NewUserRepository(tx)
		favorites := repositories.NewFavoriteRepository(tx)
		interactions := repositories.NewInteractionRepository(tx)

		if _, err := users.FindByID(recruiterID); err != nil {
			return err
		}
		if _, err := candidates.FindByID(candidateID); err != nil {
			return err
		}

		favorite = &models.RecruiterFavorite{
			ID:          uuid.New(),
			RecruiterID: recruiterID,
			CandidateID: candidateID,
			Priority:    priority,
			Notes:       notes,
			AddedAt:     time.Now(),
		}
		if err := favorites.Create(favorite); err != nil {
			return err
		}

		return interactions.Create(&models.CandidateInteraction{
			ID:              uuid.New(),
			CandidateID:     candidateID,
			RecruiterID:     recruiterID,
			InteractionType: models.InteractionFavoriteAdded,
			InteractionDate: favorite.AddedAt,
			Details:         map[string]interface{}{"priority": priority},
		})
	})
	if err != nil {
		return nil, err
	}
	return favorite, nil
}

func (s *interactionService) RemoveFavorite(recruiterID, candidateID uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		favorites := repositories.NewFavoriteRepository(tx)
		interactions := repositories.NewInteractionRepository(tx)

		if err := favorites.Delete(recruiterID, candidateID); err != nil {
			return err
		}

		return interactions.Create(&models.CandidateInteraction{
			ID:              uuid.New(),
			CandidateID:     candidateID,
			RecruiterID:     recruiterID,
			InteractionType: models.InteractionFavoriteRemoved,
			InteractionDate: time.Now(),
		})
	})
}
