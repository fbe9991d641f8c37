package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"jobgate/video-studio/internal/models"
	"jobgate/video-studio/internal/repositories"
)

// Business-rule violations surfaced by the linkage workflow. Handlers map
// them onto 400/403 responses.
var (
	ErrVideoNotOwned    = errors.New("video belongs to a different user")
	ErrVideoNotApproved = errors.New("video must be approved before linking")
	ErrNoVideoLinked    = errors.New("no video linked to this profile")
)

// LinkageService runs the CV/video linkage workflow: link, unlink, and the
// CV-update sync signal. Each multi-effect operation runs inside one
// transaction; the event notification is emitted after commit and its failure
// never fails the operation.
type LinkageService interface {
	LinkVideo(profileID, videoID uuid.UUID) (*models.CandidateProfile, error)
	QuickLink(userID, videoID uuid.UUID) (*models.CandidateProfile, error)
	UnlinkVideo(profileID uuid.UUID) (*models.CandidateProfile, error)
	UpdateCV(profileID uuid.UUID, cvFile, cvText string, pageCount int) (*models.CandidateProfile, error)
	RecalculateCompleteness(profileID uuid.UUID) (int, error)
}

type linkageService struct {
	db       *gorm.DB
	notifier NotificationService
	log      *logrus.Logger
}

func NewLinkageService(db *gorm.DB, notifier NotificationService, log *logrus.Logger) LinkageService {
	return &linkageService{db: db, notifier: notifier, log: log}
}

// LinkVideo links an approved video owned by the profile's user. All effects
// (profile fields, video flags, completeness, sync log) commit atomically.
func (s *linkageService) LinkVideo(profileID, videoID uuid.UUID) (*models.CandidateProfile, error) {
	var profile *models.CandidateProfile
	var video *models.Video

	err := s.db.Transaction(func(tx *gorm.DB) error {
		candidates := repositories.NewCandidateRepository(tx)
		videos := repositories.NewVideoRepository(tx)

		var err error
		profile, err = candidates.FindByID(profileID)
		if err != nil {
			return err
		}
		video, err = videos.FindByID(videoID)
		if err != nil {
			return err
		}

		if video.UserID != profile.UserID {
			return ErrVideoNotOwned
		}
		if !video.IsApproved {
			return ErrVideoNotApproved
		}

		return s.applyLink(tx, profile, video)
	})
	if err != nil {
		return nil, err
	}

	s.notifyAfterLink(profile, video)
	return profile, nil
}

// QuickLink is the VideoStudio shortcut: it resolves the user, creates a
// bare profile when none exists, and links the video. The approval
// precondition is the same as LinkVideo's; no path auto-approves.
func (s *linkageService) QuickLink(userID, videoID uuid.UUID) (*models.CandidateProfile, error) {
	var profile *models.CandidateProfile
	var video *models.Video

	err := s.db.Transaction(func(tx *gorm.DB) error {
		users := repositories.NewUserRepository(tx)
		candidates := repositories.NewCandidateRepository(tx)
		videos := repositories.NewVideoRepository(tx)

		user, err := users.FindByID(userID)
		if err != nil {
			return err
		}

		profile, err = candidates.FindByUserID(user.ID)
		if errors.Is(err, repositories.ErrNotFound) {
			profile = &models.CandidateProfile{
				ID:        uuid.New(),
				UserID:    user.ID,
				FirstName: firstNonEmpty(user.FirstName, "Demo"),
				LastName:  firstNonEmpty(user.LastName, "User"),
				Status:    models.CandidateStatusActive,
			}
			if err := candidates.Create(profile); err != nil {
				return err
			}
			profile.User = *user
		} else if err != nil {
			return err
		}

		video, err = videos.FindByID(videoID)
		if err != nil {
			return err
		}
		if video.UserID != user.ID {
			return fmt.Errorf("video %s: %w", videoID, repositories.ErrNotFound)
		}
		if !video.IsApproved {
			return ErrVideoNotApproved
		}

		return s.applyLink(tx, profile, video)
	})
	if err != nil {
		return nil, err
	}

	s.notifyAfterLink(profile, video)
	return profile, nil
}

// applyLink performs the five link effects inside the caller's transaction.
func (s *linkageService) applyLink(tx *gorm.DB, profile *models.CandidateProfile, video *models.Video) error {
	candidates := repositories.NewCandidateRepository(tx)
	videos := repositories.NewVideoRepository(tx)
	syncLogs := repositories.NewSyncLogRepository(tx)

	now := time.Now()

	video.LinkedToCV = true
	video.CVUpdateSuggested = false
	if err := videos.Save(video); err != nil {
		return err
	}

	profile.PresentationVideoID = &video.ID
	profile.PresentationVideo = video
	profile.VideoLinkedAt = &now
	profile.VideoLastUpdated = &now
	profile.VideoQualityScore = video.OverallQualityScore
	profile.ProfileCompleteness = CompletenessScore(profile)
	if err := candidates.Save(profile); err != nil {
		return err
	}

	return syncLogs.Create(&models.CVVideoSyncLog{
		ID:                 uuid.New(),
		CandidateProfileID: profile.ID,
		Action:             models.SyncActionVideoLinked,
		VideoVersion:       fmt.Sprintf("Video-%s", video.ID),
		SyncCompleted:      true,
		SyncDate:           &now,
		Notes:              fmt.Sprintf("Video %q linked to candidate profile", video.Title),
	})
}

func (s *linkageService) notifyAfterLink(profile *models.CandidateProfile, video *models.Video) {
	_, err := s.notifier.NotifyEvent(EventNotification{
		RecipientID:       profile.UserID,
		Type:              models.NotificationVideoLinked,
		RelatedObjectType: "candidate_profile",
		RelatedObjectID:   &profile.ID,
		Context: map[string]interface{}{
			"video_id":      video.ID.String(),
			"video_title":   video.Title,
			"quality_score": video.OverallQualityScore,
		},
	})
	if err != nil {
		s.log.WithError(err).Warn("video_linked notification failed")
	}
}

// UnlinkVideo clears the profile's video fields and the video's linked flag,
// then recomputes completeness.
func (s *linkageService) UnlinkVideo(profileID uuid.UUID) (*models.CandidateProfile, error) {
	var profile *models.CandidateProfile

	err := s.db.Transaction(func(tx *gorm.DB) error {
		candidates := repositories.NewCandidateRepository(tx)
		videos := repositories.NewVideoRepository(tx)
		syncLogs := repositories.NewSyncLogRepository(tx)

		var err error
		profile, err = candidates.FindByID(profileID)
		if err != nil {
			return err
		}
		if profile.PresentationVideoID == nil {
			return ErrNoVideoLinked
		}

		if err := videos.UpdateFields(*profile.PresentationVideoID, map[string]interface{}{
			"linked_to_cv": false,
		}); err != nil {
			return err
		}

		profile.PresentationVideoID = nil
		profile.PresentationVideo = nil
		profile.VideoLastUpdated = nil
		profile.VideoLinkedAt = nil
		profile.VideoQualityScore = 0
		profile.ProfileCompleteness = CompletenessScore(profile)
		if err := candidates.Save(profile); err != nil {
			return err
		}

		now := time.Now()
		return syncLogs.Create(&models.CVVideoSyncLog{
			ID:                 uuid.New(),
			CandidateProfileID: profile.ID,
			Action:             models.SyncActionVideoUnlinked,
			SyncCompleted:      true,
			SyncDate:           &now,
			Notes:              "Video unlinked from candidate profile",
		})
	})
	if err != nil {
		return nil, err
	}

	_, notifyErr := s.notifier.NotifyEvent(EventNotification{
		RecipientID:       profile.UserID,
		Type:              models.NotificationVideoUnlinked,
		RelatedObjectType: "candidate_profile",
		RelatedObjectID:   &profile.ID,
	})
	if notifyErr != nil {
		s.log.WithError(notifyErr).Warn("video_unlinked notification failed")
	}
	return profile, nil
}

// UpdateCV stores a new CV file reference. When the file actually changed it
// stamps cv_last_updated, appends a cv_updated sync-log row (sync_needed only
// if a video is already linked), and recomputes completeness.
func (s *linkageService) UpdateCV(profileID uuid.UUID, cvFile, cvText string, pageCount int) (*models.CandidateProfile, error) {
	var profile *models.CandidateProfile
	syncNeeded := false

	err := s.db.Transaction(func(tx *gorm.DB) error {
		candidates := repositories.NewCandidateRepository(tx)
		syncLogs := repositories.NewSyncLogRepository(tx)

		var err error
		profile, err = candidates.FindByID(profileID)
		if err != nil {
			return err
		}

		if cvFile == profile.CVFile {
			return nil
		}

		now := time.Now()
		profile.CVFile = cvFile
		profile.CVTextExcerpt = cvText
		profile.CVPageCount = pageCount
		profile.CVLastUpdated = &now
		profile.ProfileCompleteness = CompletenessScore(profile)
		if err := candidates.Save(profile); err != nil {
			return err
		}

		syncNeeded = profile.HasPresentationVideo()
		return syncLogs.Create(&models.CVVideoSyncLog{
			ID:                 uuid.New(),
			CandidateProfileID: profile.ID,
			Action:             models.SyncActionCVUpdated,
			CVVersion:          cvFile,
			SyncNeeded:         syncNeeded,
			Notes:              "CV updated, video refresh recommended",
		})
	})
	if err != nil {
		return nil, err
	}

	if syncNeeded {
		_, notifyErr := s.notifier.NotifyEvent(EventNotification{
			RecipientID:       profile.UserID,
			Type:              models.NotificationSyncNeeded,
			RelatedObjectType: "candidate_profile",
			RelatedObjectID:   &profile.ID,
		})
		if notifyErr != nil {
			s.log.WithError(notifyErr).Warn("sync_needed notification failed")
		}
	}
	return profile, nil
}

// RecalculateCompleteness recomputes and stores the completeness percentage.
// Invoked explicitly after profile edits; never triggered on reads.
func (s *linkageService) RecalculateCompleteness(profileID uuid.UUID) (int, error) {
	candidates := repositories.NewCandidateRepository(s.db)

	profile, err := candidates.FindByID(profileID)
	if err != nil {
		return 0, err
	}

	completeness := CompletenessScore(profile)
	err = candidates.UpdateFields(profile.ID, map[string]interface{}{
		"profile_completeness": completeness,
	})
	if err != nil {
		return 0, err
	}
	return completeness, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
