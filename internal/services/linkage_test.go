package services

import (
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"jobgate/video-studio/internal/models"
	"jobgate/video-studio/internal/repositories"
)

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestNotifier(db *gorm.DB) NotificationService {
	return NewNotificationService(
		repositories.NewNotificationRepository(db),
		repositories.NewPreferenceRepository(db),
		repositories.NewTemplateRepository(db),
	)
}

func createTestProfile(t *testing.T, db *gorm.DB, userID uuid.UUID) *models.CandidateProfile {
	t.Helper()

	profile := &models.CandidateProfile{
		ID:              uuid.New(),
		UserID:          userID,
		FirstName:       "Jean",
		LastName:        "Dupont",
		Status:          models.CandidateStatusActive,
		IsProfilePublic: true,
	}
	require.NoError(t, db.Create(profile).Error)
	return profile
}

func createApprovedVideo(t *testing.T, db *gorm.DB, userID uuid.UUID, score int) *models.Video {
	t.Helper()

	video := &models.Video{
		ID:                  uuid.New(),
		UserID:              userID,
		Title:               "Presentation video",
		Status:              models.VideoStatusCompleted,
		OverallQualityScore: score,
		IsApproved:          true,
	}
	require.NoError(t, db.Create(video).Error)
	return video
}

func countNotifications(t *testing.T, db *gorm.DB, userID uuid.UUID, notifType models.NotificationType) int64 {
	t.Helper()

	var count int64
	require.NoError(t, db.Model(&models.Notification{}).
		Where("recipient_id = ? AND notification_type = ?", userID, notifType).
		Count(&count).Error)
	return count
}

func TestLinkVideoAppliesAllEffects(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db)
	profile := createTestProfile(t, db, user.ID)
	video := createApprovedVideo(t, db, user.ID, 85)

	service := NewLinkageService(db, newTestNotifier(db), newTestLogger())

	linked, err := service.LinkVideo(profile.ID, video.ID)
	require.NoError(t, err)

	require.NotNil(t, linked.PresentationVideoID)
	assert.Equal(t, video.ID, *linked.PresentationVideoID)
	assert.Equal(t, 85, linked.VideoQualityScore)
	assert.NotNil(t, linked.VideoLinkedAt)
	assert.NotNil(t, linked.VideoLastUpdated)

	var storedVideo models.Video
	require.NoError(t, db.First(&storedVideo, "id = ?", video.ID).Error)
	assert.True(t, storedVideo.LinkedToCV)
	assert.False(t, storedVideo.CVUpdateSuggested)

	var syncLog models.CVVideoSyncLog
	require.NoError(t, db.First(&syncLog, "candidate_profile_id = ?", profile.ID).Error)
	assert.Equal(t, models.SyncActionVideoLinked, syncLog.Action)
	assert.True(t, syncLog.SyncCompleted)

	assert.EqualValues(t, 1, countNotifications(t, db, user.ID, models.NotificationVideoLinked))
}

func TestLinkVideoRejectsUnapprovedVideo(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db)
	profile := createTestProfile(t, db, user.ID)
	video := createTestVideo(t, db, user.ID)

	service := NewLinkageService(db, newTestNotifier(db), newTestLogger())

	_, err := service.LinkVideo(profile.ID, video.ID)
	assert.ErrorIs(t, err, ErrVideoNotApproved)

	// Nothing committed.
	var count int64
	require.NoError(t, db.Model(&models.CVVideoSyncLog{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestLinkVideoRejectsForeignVideo(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db)
	other := createTestUser(t, db)
	profile := createTestProfile(t, db, owner.ID)
	video := createApprovedVideo(t, db, other.ID, 90)

	service := NewLinkageService(db, newTestNotifier(db), newTestLogger())

	_, err := service.LinkVideo(profile.ID, video.ID)
	assert.ErrorIs(t, err, ErrVideoNotOwned)
}

func TestUnlinkVideoRestoresProfile(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db)
	profile := createTestProfile(t, db, user.ID)
	video := createApprovedVideo(t, db, user.ID, 85)

	service := NewLinkageService(db, newTestNotifier(db), newTestLogger())

	linked, err := service.LinkVideo(profile.ID, video.ID)
	require.NoError(t, err)
	linkedCompleteness := linked.ProfileCompleteness

	unlinked, err := service.UnlinkVideo(profile.ID)
	require.NoError(t, err)

	assert.Nil(t, unlinked.PresentationVideoID)
	assert.Nil(t, unlinked.VideoLinkedAt)
	assert.Zero(t, unlinked.VideoQualityScore)
	assert.Equal(t, linkedCompleteness-20, unlinked.ProfileCompleteness)

	var storedVideo models.Video
	require.NoError(t, db.First(&storedVideo, "id = ?", video.ID).Error)
	assert.False(t, storedVideo.LinkedToCV)

	var unlinkLogs int64
	require.NoError(t, db.Model(&models.CVVideoSyncLog{}).
		Where("candidate_profile_id = ? AND action = ?", profile.ID, models.SyncActionVideoUnlinked).
		Count(&unlinkLogs).Error)
	assert.EqualValues(t, 1, unlinkLogs)

	assert.EqualValues(t, 1, countNotifications(t, db, user.ID, models.NotificationVideoUnlinked))
}

func TestUnlinkVideoWithoutLinkedVideo(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db)
	profile := createTestProfile(t, db, user.ID)

	service := NewLinkageService(db, newTestNotifier(db), newTestLogger())

	_, err := service.UnlinkVideo(profile.ID)
	assert.ErrorIs(t, err, ErrNoVideoLinked)
}

func TestQuickLinkCreatesProfileWhenMissing(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db)
	video := createApprovedVideo(t, db, user.ID, 75)

	service := NewLinkageService(db, newTestNotifier(db), newTestLogger())

	profile, err := service.QuickLink(user.ID, video.ID)
	require.NoError(t, err)

	assert.Equal(t, user.ID, profile.UserID)
	assert.Equal(t, user.FirstName, profile.FirstName)
	require.NotNil(t, profile.PresentationVideoID)
	assert.Equal(t, video.ID, *profile.PresentationVideoID)
	assert.Equal(t, 75, profile.VideoQualityScore)
}

func TestQuickLinkRejectsVideoOfAnotherUser(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db)
	other := createTestUser(t, db)
	video := createApprovedVideo(t, db, other.ID, 75)

	service := NewLinkageService(db, newTestNotifier(db), newTestLogger())

	_, err := service.QuickLink(user.ID, video.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestUpdateCVWithoutVideoNeedsNoSync(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db)
	profile := createTestProfile(t, db, user.ID)

	service := NewLinkageService(db, newTestNotifier(db), newTestLogger())

	updated, err := service.UpdateCV(profile.ID, "cvs/cv_1.pdf", "some text", 2)
	require.NoError(t, err)
	assert.Equal(t, "cvs/cv_1.pdf", updated.CVFile)
	assert.NotNil(t, updated.CVLastUpdated)

	var syncLog models.CVVideoSyncLog
	require.NoError(t, db.First(&syncLog, "candidate_profile_id = ?", profile.ID).Error)
	assert.Equal(t, models.SyncActionCVUpdated, syncLog.Action)
	assert.False(t, syncLog.SyncNeeded)

	assert.Zero(t, countNotifications(t, db, user.ID, models.NotificationSyncNeeded))
}

func TestUpdateCVWithLinkedVideoNeedsSync(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db)
	profile := createTestProfile(t, db, user.ID)
	video := createApprovedVideo(t, db, user.ID, 80)

	service := NewLinkageService(db, newTestNotifier(db), newTestLogger())

	_, err := service.LinkVideo(profile.ID, video.ID)
	require.NoError(t, err)

	_, err = service.UpdateCV(profile.ID, "cvs/cv_2.pdf", "updated text", 3)
	require.NoError(t, err)

	var syncLog models.CVVideoSyncLog
	require.NoError(t, db.
		Where("candidate_profile_id = ? AND action = ?", profile.ID, models.SyncActionCVUpdated).
		First(&syncLog).Error)
	assert.True(t, syncLog.SyncNeeded)
	assert.False(t, syncLog.SyncCompleted)

	assert.EqualValues(t, 1, countNotifications(t, db, user.ID, models.NotificationSyncNeeded))
}

func TestUpdateCVUnchangedFileIsNoop(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db)
	profile := createTestProfile(t, db, user.ID)

	service := NewLinkageService(db, newTestNotifier(db), newTestLogger())

	_, err := service.UpdateCV(profile.ID, "cvs/cv_1.pdf", "text", 1)
	require.NoError(t, err)
	_, err = service.UpdateCV(profile.ID, "cvs/cv_1.pdf", "text", 1)
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.CVVideoSyncLog{}).
		Where("candidate_profile_id = ?", profile.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestRecalculateCompletenessStoresValue(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db)
	profile := createTestProfile(t, db, user.ID)

	service := NewLinkageService(db, newTestNotifier(db), newTestLogger())

	completeness, err := service.RecalculateCompleteness(profile.ID)
	require.NoError(t, err)
	// First and last name plus the user's email.
	assert.Equal(t, 60, completeness)

	var stored models.CandidateProfile
	require.NoError(t, db.First(&stored, "id = ?", profile.ID).Error)
	assert.Equal(t, completeness, stored.ProfileCompleteness)
}
