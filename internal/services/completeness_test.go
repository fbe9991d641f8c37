package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"jobgate/video-studio/internal/models"
)

func TestCompletenessScoreEmptyProfile(t *testing.T) {
	profile := &models.CandidateProfile{}
	assert.Equal(t, 0, CompletenessScore(profile))
}

func TestCompletenessScoreNamesOnly(t *testing.T) {
	profile := &models.CandidateProfile{
		FirstName: "Amina",
		LastName:  "Ben Salah",
	}
	assert.Equal(t, 40, CompletenessScore(profile))
}

func TestCompletenessScoreFullProfile(t *testing.T) {
	profile := &models.CandidateProfile{
		FirstName:      "Amina",
		LastName:       "Ben Salah",
		Phone:          "+216 20 000 000",
		EducationLevel: "Master",
		University:     "ENIT",
		CVFile:         "cvs/cv_abc.pdf",
		User:           models.User{Email: "amina@example.com"},
		PresentationVideo: &models.Video{
			IsApproved: true,
		},
	}
	assert.Equal(t, 100, CompletenessScore(profile))
}

func TestCompletenessScoreUnapprovedVideoDoesNotCount(t *testing.T) {
	profile := &models.CandidateProfile{
		FirstName:         "Amina",
		LastName:          "Ben Salah",
		PresentationVideo: &models.Video{IsApproved: false},
	}
	assert.Equal(t, 40, CompletenessScore(profile))
}
