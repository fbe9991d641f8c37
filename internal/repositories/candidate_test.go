package repositories

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"jobgate/video-studio/internal/config"
	"jobgate/video-studio/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, config.MigrateModels(db))
	return db
}

type seedProfile struct {
	firstName  string
	lastName   string
	email      string
	university string
	experience int
	videoScore int
	hasVideo   bool
	approved   bool
	public     bool
	status     models.CandidateStatus
}

func seedCandidate(t *testing.T, db *gorm.DB, seed seedProfile) *models.CandidateProfile {
	t.Helper()

	user := &models.User{
		ID:       uuid.New(),
		Username: "user_" + uuid.NewString()[:8],
		Email:    seed.email,
	}
	require.NoError(t, db.Create(user).Error)

	status := seed.status
	if status == "" {
		status = models.CandidateStatusActive
	}

	profile := &models.CandidateProfile{
		ID:                uuid.New(),
		UserID:            user.ID,
		FirstName:         seed.firstName,
		LastName:          seed.lastName,
		University:        seed.university,
		ExperienceYears:   seed.experience,
		VideoQualityScore: seed.videoScore,
		Status:            status,
		IsProfilePublic:   seed.public,
	}

	if seed.hasVideo {
		video := &models.Video{
			ID:                  uuid.New(),
			UserID:              user.ID,
			Status:              models.VideoStatusCompleted,
			OverallQualityScore: seed.videoScore,
			IsApproved:          seed.approved,
		}
		require.NoError(t, db.Create(video).Error)
		profile.PresentationVideoID = &video.ID
	}

	require.NoError(t, db.Create(profile).Error)
	return profile
}

func TestSearchOnlyReturnsPublicProfiles(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCandidateRepository(db)

	seedCandidate(t, db, seedProfile{firstName: "Alice", lastName: "Martin", public: true})
	seedCandidate(t, db, seedProfile{firstName: "Bob", lastName: "Durand", public: false})

	profiles, total, err := repo.Search(CandidateSearchParams{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, profiles, 1)
	assert.Equal(t, "Alice", profiles[0].FirstName)
}

func TestSearchFreeTextIsCaseInsensitive(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCandidateRepository(db)

	seedCandidate(t, db, seedProfile{firstName: "Alice", lastName: "Martin", university: "ENSI", public: true})
	seedCandidate(t, db, seedProfile{firstName: "Bob", lastName: "Durand", university: "ENIT", public: true})

	profiles, total, err := repo.Search(CandidateSearchParams{Query: "enit"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, profiles, 1)
	assert.Equal(t, "Bob", profiles[0].FirstName)
}

func TestSearchHasVideoRequiresApproval(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCandidateRepository(db)

	seedCandidate(t, db, seedProfile{firstName: "Approved", lastName: "One", public: true, hasVideo: true, approved: true})
	seedCandidate(t, db, seedProfile{firstName: "Pending", lastName: "Two", public: true, hasVideo: true, approved: false})
	seedCandidate(t, db, seedProfile{firstName: "NoVideo", lastName: "Three", public: true})

	hasVideo := true
	profiles, total, err := repo.Search(CandidateSearchParams{HasVideo: &hasVideo})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, profiles, 1)
	assert.Equal(t, "Approved", profiles[0].FirstName)

	hasVideo = false
	profiles, total, err = repo.Search(CandidateSearchParams{HasVideo: &hasVideo})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, profiles, 1)
	assert.Equal(t, "NoVideo", profiles[0].FirstName)
}

func TestSearchNumericFilters(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCandidateRepository(db)

	seedCandidate(t, db, seedProfile{firstName: "Junior", lastName: "Dev", public: true, experience: 1, videoScore: 60})
	seedCandidate(t, db, seedProfile{firstName: "Senior", lastName: "Dev", public: true, experience: 8, videoScore: 90})

	expMin := 5
	minScore := 80
	profiles, total, err := repo.Search(CandidateSearchParams{
		ExperienceMin: &expMin,
		MinVideoScore: &minScore,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, profiles, 1)
	assert.Equal(t, "Senior", profiles[0].FirstName)
}

func TestSearchClampsLimit(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCandidateRepository(db)

	for i := 0; i < 5; i++ {
		seedCandidate(t, db, seedProfile{firstName: "Candidate", lastName: "X", public: true})
	}

	profiles, total, err := repo.Search(CandidateSearchParams{Limit: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	assert.Len(t, profiles, 2)

	// Absurd limits fall back to the ceiling instead of erroring.
	profiles, _, err = repo.Search(CandidateSearchParams{Limit: 100000})
	require.NoError(t, err)
	assert.Len(t, profiles, 5)
}

func TestSearchOrderByVideoScore(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCandidateRepository(db)

	seedCandidate(t, db, seedProfile{firstName: "Low", lastName: "Score", public: true, videoScore: 40})
	seedCandidate(t, db, seedProfile{firstName: "High", lastName: "Score", public: true, videoScore: 95})

	profiles, _, err := repo.Search(CandidateSearchParams{OrderBy: "-video_quality_score"})
	require.NoError(t, err)
	require.Len(t, profiles, 2)
	assert.Equal(t, "High", profiles[0].FirstName)
}

func TestDistinctValuesRejectsUnknownColumn(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCandidateRepository(db)

	_, err := repo.DistinctValues("password", 10)
	assert.Error(t, err)
}

func TestFindByUserIDNotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCandidateRepository(db)

	_, err := repo.FindByUserID(uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}
