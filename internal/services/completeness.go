package services

import (
	"math"

	"jobgate/video-studio/internal/models"
)

// completenessTotalFields is the declared denominator of the completeness
// checklist.
const completenessTotalFields = 10

// CompletenessScore computes the profile completeness percentage from the
// fixed checklist: six identity/education fields, the CV file, and an
// approved linked video, each worth 2 points over a total of 10, capped at
// 100. The profile's User and PresentationVideo relations must be loaded.
func CompletenessScore(p *models.CandidateProfile) int {
	score := 0
	if p.FirstName != "" {
		score += 2
	}
	if p.LastName != "" {
		score += 2
	}
	if p.User.Email != "" {
		score += 2
	}
	if p.Phone != "" {
		score += 2
	}
	if p.EducationLevel != "" {
		score += 2
	}
	if p.University != "" {
		score += 2
	}
	if p.CVFile != "" {
		score += 2
	}
	if p.HasPresentationVideo() {
		score += 2
	}

	pct := int(math.Round(float64(score) / completenessTotalFields * 100))
	if pct > 100 {
		pct = 100
	}
	return pct
}
