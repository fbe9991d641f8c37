package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobgate/video-studio/internal/models"
	"jobgate/video-studio/internal/repositories"
)

func TestLogVideoViewFansOutOneInteraction(t *testing.T) {
	db := setupTestDB(t)
	candidate := createTestUser(t, db)
	recruiter := createTestUser(t, db)
	profile := createTestProfile(t, db, candidate.ID)
	video := createApprovedVideo(t, db, candidate.ID, 85)

	linkage := NewLinkageService(db, newTestNotifier(db), newTestLogger())
	_, err := linkage.LinkVideo(profile.ID, video.ID)
	require.NoError(t, err)

	service := NewInteractionService(db, newTestNotifier(db), newTestLogger())

	rating := 4
	viewLog, err := service.LogVideoView(profile.ID, recruiter.ID, VideoViewInput{
		ViewDuration:     95,
		CompletedViewing: true,
		Rating:           &rating,
		Notes:            "strong profile",
	})
	require.NoError(t, err)
	assert.Equal(t, video.ID, viewLog.VideoID)
	assert.Equal(t, 95, viewLog.ViewDuration)

	var interactions []models.CandidateInteraction
	require.NoError(t, db.
		Where("candidate_id = ? AND interaction_type = ?", profile.ID, models.InteractionVideoView).
		Find(&interactions).Error)
	require.Len(t, interactions, 1)
	assert.Equal(t, recruiter.ID, interactions[0].RecruiterID)
	assert.Equal(t, video.ID.String(), interactions[0].Details["video_id"])
	assert.EqualValues(t, 95, interactions[0].Details["view_duration"])

	assert.EqualValues(t, 1, countNotifications(t, db, candidate.ID, models.NotificationVideoViewed))
}

func TestLogVideoViewWithoutLinkedVideo(t *testing.T) {
	db := setupTestDB(t)
	candidate := createTestUser(t, db)
	recruiter := createTestUser(t, db)
	profile := createTestProfile(t, db, candidate.ID)

	service := NewInteractionService(db, newTestNotifier(db), newTestLogger())

	_, err := service.LogVideoView(profile.ID, recruiter.ID, VideoViewInput{ViewDuration: 10})
	assert.ErrorIs(t, err, ErrNoVideoLinked)
}

func TestLogVideoViewPrivateProfile(t *testing.T) {
	db := setupTestDB(t)
	candidate := createTestUser(t, db)
	recruiter := createTestUser(t, db)
	profile := createTestProfile(t, db, candidate.ID)
	require.NoError(t, db.Model(profile).Update("is_profile_public", false).Error)

	service := NewInteractionService(db, newTestNotifier(db), newTestLogger())

	_, err := service.LogVideoView(profile.ID, recruiter.ID, VideoViewInput{ViewDuration: 10})
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestLogProfileViewEmitsNoNotification(t *testing.T) {
	db := setupTestDB(t)
	candidate := createTestUser(t, db)
	recruiter := createTestUser(t, db)
	profile := createTestProfile(t, db, candidate.ID)

	service := NewInteractionService(db, newTestNotifier(db), newTestLogger())

	viewLog, err := service.LogProfileView(profile.ID, recruiter.ID, ProfileViewInput{
		ViewDuration:   30,
		SectionsViewed: []string{"education", "video"},
		CVDownloaded:   true,
	})
	require.NoError(t, err)
	assert.Equal(t, profile.ID, viewLog.CandidateProfileID)

	var interactions int64
	require.NoError(t, db.Model(&models.CandidateInteraction{}).
		Where("candidate_id = ? AND interaction_type = ?", profile.ID, models.InteractionProfileView).
		Count(&interactions).Error)
	assert.EqualValues(t, 1, interactions)

	var notifications int64
	require.NoError(t, db.Model(&models.Notification{}).
		Where("recipient_id = ?", candidate.ID).
		Count(&notifications).Error)
	assert.Zero(t, notifications)
}

func TestAddFavoriteTwiceFails(t *testing.T) {
	db := setupTestDB(t)
	candidate := createTestUser(t, db)
	recruiter := createTestUser(t, db)
	profile := createTestProfile(t, db, candidate.ID)

	service := NewInteractionService(db, newTestNotifier(db), newTestLogger())

	favorite, err := service.AddFavorite(recruiter.ID, profile.ID, 0, "")
	require.NoError(t, err)
	assert.Equal(t, 3, favorite.Priority)

	_, err = service.AddFavorite(recruiter.ID, profile.ID, 5, "again")
	assert.ErrorIs(t, err, repositories.ErrDuplicateFavorite)
}

func TestRemoveFavoriteLogsInteraction(t *testing.T) {
	db := setupTestDB(t)
	candidate := createTestUser(t, db)
	recruiter := createTestUser(t, db)
	profile := createTestProfile(t, db, candidate.ID)

	service := NewInteractionService(db, newTestNotifier(db), newTestLogger())

	_, err := service.AddFavorite(recruiter.ID, profile.ID, 2, "shortlist")
	require.NoError(t, err)
	require.NoError(t, service.RemoveFavorite(recruiter.ID, profile.ID))

	var favorites int64
	require.NoError(t, db.Model(&models.RecruiterFavorite{}).Count(&favorites).Error)
	assert.Zero(t, favorites)

	var removed int64
	require.NoError(t, db.Model(&models.CandidateInteraction{}).
		Where("interaction_type = ?", models.InteractionFavoriteRemoved).
		Count(&removed).Error)
	assert.EqualValues(t, 1, removed)
}

func TestRemoveFavoriteMissing(t *testing.T) {
	db := setupTestDB(t)
	candidate := createTestUser(t, db)
	recruiter := createTestUser(t, db)
	profile := createTestProfile(t, db, candidate.ID)

	service := NewInteractionService(db, newTestNotifier(db), newTestLogger())

	err := service.RemoveFavorite(recruiter.ID, profile.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}
