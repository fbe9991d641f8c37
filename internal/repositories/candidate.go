package repositories

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"jobgate/video-studio/internal/models"
)

// CandidateSearchParams composes the recruiter-facing filters. Nil pointer
// fields are not applied.
type CandidateSearchParams struct {
	Query           string
	HasVideo        *bool
	Status          string
	EducationLevel  string
	University      string
	ExperienceMin   *int
	ExperienceMax   *int
	MinVideoScore   *int
	MinCompleteness *int
	OrderBy         string
	Limit           int
	Offset          int
}

// DefaultSearchLimit caps result pages when the caller does not ask for a
// specific page size.
const DefaultSearchLimit = 50

// MaxSearchLimit is the hard ceiling on a single result page.
const MaxSearchLimit = 200

var searchOrderColumns = map[string]string{
	"created_at":           "candidate_profiles.created_at ASC",
	"-created_at":          "candidate_profiles.created_at DESC",
	"updated_at":           "candidate_profiles.updated_at ASC",
	"-updated_at":          "candidate_profiles.updated_at DESC",
	"profile_completeness": "candidate_profiles.profile_completeness ASC",
	"-profile_completeness": "candidate_profiles.profile_completeness DESC",
	"video_quality_score":  "candidate_profiles.video_quality_score ASC",
	"-video_quality_score": "candidate_profiles.video_quality_score DESC",
	"first_name":           "candidate_profiles.first_name ASC",
	"-first_name":          "candidate_profiles.first_name DESC",
	"last_name":            "candidate_profiles.last_name ASC",
	"-last_name":           "candidate_profiles.last_name DESC",
}

type CandidateRepository interface {
	Create(profile *models.CandidateProfile) error
	FindByID(id uuid.UUID) (*models.CandidateProfile, error)
	FindPublicByID(id uuid.UUID) (*models.CandidateProfile, error)
	FindByUserID(userID uuid.UUID) (*models.CandidateProfile, error)
	Save(profile *models.CandidateProfile) error
	UpdateFields(id uuid.UUID, updates map[string]interface{}) error
	Search(params CandidateSearchParams) ([]models.CandidateProfile, int64, error)
	CountPublic() (int64, error)
	CountPublicByStatus() (map[string]int64, error)
	CountWithApprovedVideo() (int64, error)
	AverageVideoQuality() (float64, error)
	DistinctValues(column string, limit int) ([]string, error)
	TopUniversities(limit int) ([]UniversityCount, error)
}

type UniversityCount struct {
	University string `json:"university"`
	Count      int64  `json:"count"`
}

type candidateRepository struct {
	db *gorm.DB
}

func NewCandidateRepository(db *gorm.DB) CandidateRepository {
	return &candidateRepository{db: db}
}

func (r *candidateRepository) Create(profile *models.CandidateProfile) error {
	if err := r.db.Create(profile).Error; err != nil {
		return fmt.Errorf("failed to create candidate profile: %w", err)
	}
	return nil
}

func (r *candidateRepository) FindByID(id uuid.UUID) (*models.CandidateProfile, error) {
	var profile models.CandidateProfile
	err := r.db.Preload("User").Preload("PresentationVideo").
		Where("id = ?", id).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("candidate profile %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find candidate profile: %w", err)
	}
	return &profile, nil
}

func (r *candidateRepository) FindPublicByID(id uuid.UUID) (*models.CandidateProfile, error) {
	var profile models.CandidateProfile
	err := r.db.Preload("User").Preload("PresentationVideo").
		Where("id = ? AND is_profile_public = ?", id, true).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("candidate profile %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find candidate profile: %w", err)
	}
	return &profile, nil
}

func (r *candidateRepository) FindByUserID(userID uuid.UUID) (*models.CandidateProfile, error) {
	var profile models.CandidateProfile
	err := r.db.Preload("User").Preload("PresentationVideo").
		Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("candidate profile for user %s: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find candidate profile: %w", err)
	}
	return &profile, nil
}

func (r *candidateRepository) Save(profile *models.CandidateProfile) error {
	if err := r.db.Save(profile).Error; err != nil {
		return fmt.Errorf("failed to save candidate profile: %w", err)
	}
	return nil
}

func (r *candidateRepository) UpdateFields(id uuid.UUID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()
	result := r.db.Model(&models.CandidateProfile{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to update candidate profile: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("candidate profile %s: %w", id, ErrNotFound)
	}
	return nil
}

// Search composes the recruiter filter set over public profiles. Unrecognized
// sort keys silently fall back to most recently updated.
func (r *candidateRepository) Search(params CandidateSearchParams) ([]models.CandidateProfile, int64, error) {
	query := r.db.Model(&models.CandidateProfile{}).
		Joins("JOIN users ON users.id = candidate_profiles.user_id").
		Where("candidate_profiles.is_profile_public = ?", true)

	if q := strings.TrimSpace(params.Query); q != "" {
		pattern := "%" + strings.ToLower(q) + "%"
		query = query.Where(
			"LOWER(candidate_profiles.first_name) LIKE ? OR LOWER(candidate_profiles.last_name) LIKE ? OR LOWER(candidate_profiles.university) LIKE ? OR LOWER(candidate_profiles.major) LIKE ? OR LOWER(users.email) LIKE ?",
			pattern, pattern, pattern, pattern, pattern,
		)
	}

	if params.HasVideo != nil {
		if *params.HasVideo {
			query = query.Where(
				"candidate_profiles.presentation_video_id IN (SELECT id FROM videos WHERE is_approved = ?)",
				true,
			)
		} else {
			query = query.Where("candidate_profiles.presentation_video_id IS NULL")
		}
	}

	if params.Status != "" {
		query = query.Where("candidate_profiles.status = ?", params.Status)
	}
	if params.EducationLevel != "" {
		query = query.Where("LOWER(candidate_profiles.education_level) LIKE ?",
			"%"+strings.ToLower(params.EducationLevel)+"%")
	}
	if params.University != "" {
		query = query.Where("LOWER(candidate_profiles.university) LIKE ?",
			"%"+strings.ToLower(params.University)+"%")
	}
	if params.ExperienceMin != nil {
		query = query.Where("candidate_profiles.experience_years >= ?", *params.ExperienceMin)
	}
	if params.ExperienceMax != nil {
		query = query.Where("candidate_profiles.experience_years <= ?", *params.ExperienceMax)
	}
	if params.MinVideoScore != nil {
		query = query.Where("candidate_profiles.video_quality_score >= ?", *params.MinVideoScore)
	}
	if params.MinCompleteness != nil {
		query = query.Where("candidate_profiles.profile_completeness >= ?", *params.MinCompleteness)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count candidates: %w", err)
	}

	order, ok := searchOrderColumns[params.OrderBy]
	if !ok {
		order = searchOrderColumns["-updated_at"]
	}

	limit := params.Limit
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	if limit > MaxSearchLimit {
		limit = MaxSearchLimit
	}

	var profiles []models.CandidateProfile
	err := query.Order(order).
		Limit(limit).
		Offset(params.Offset).
		Preload("User").
		Preload("PresentationVideo").
		Find(&profiles).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search candidates: %w", err)
	}
	return profiles, total, nil
}

func (r *candidateRepository) CountPublic() (int64, error) {
	var count int64
	err := r.db.Model(&models.CandidateProfile{}).
		Where("is_profile_public = ?", true).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count candidates: %w", err)
	}
	return count, nil
}

func (r *candidateRepository) CountPublicByStatus() (map[string]int64, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	err := r.db.Model(&models.CandidateProfile{}).
		Select("status, COUNT(*) as count").
		Where("is_profile_public = ?", true).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count candidates by status: %w", err)
	}
	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

func (r *candidateRepository) CountWithApprovedVideo() (int64, error) {
	var count int64
	err := r.db.Model(&models.CandidateProfile{}).
		Where("is_profile_public = ?", true).
		Where("presentation_video_id IN (SELECT id FROM videos WHERE is_approved = ?)", true).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count candidates with video: %w", err)
	}
	return count, nil
}

func (r *candidateRepository) AverageVideoQuality() (float64, error) {
	var avg *float64
	err := r.db.Model(&models.CandidateProfile{}).
		Select("AVG(video_quality_score)").
		Where("is_profile_public = ? AND presentation_video_id IS NOT NULL", true).
		Scan(&avg).Error
	if err != nil {
		return 0, fmt.Errorf("failed to average video quality: %w", err)
	}
	if avg == nil {
		return 0, nil
	}
	return *avg, nil
}

// DistinctValues returns the distinct non-empty values of a whitelisted
// profile column, for the recruiter filter-options endpoint.
func (r *candidateRepository) DistinctValues(column string, limit int) ([]string, error) {
	switch column {
	case "education_level", "university", "major":
	default:
		return nil, fmt.Errorf("column %q not allowed", column)
	}

	var values []string
	err := r.db.Model(&models.CandidateProfile{}).
		Distinct(column).
		Where("is_profile_public = ?", true).
		Where(column+" <> ''").
		Order(column).
		Limit(limit).
		Pluck(column, &values).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch distinct %s: %w", column, err)
	}
	return values, nil
}

func (r *candidateRepository) TopUniversities(limit int) ([]UniversityCount, error) {
	var rows []UniversityCount
	err := r.db.Model(&models.CandidateProfile{}).
		Select("university, COUNT(*) as count").
		Where("is_profile_public = ? AND university <> ''", true).
		Group("university").
		Order("count DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch top universities: %w", err)
	}
	return rows, nil
}
