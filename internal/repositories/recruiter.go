package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"jobgate/video-studio/internal/models"
)

type RecruiterRepository interface {
	Create(profile *models.RecruiterProfile) error
	FindByUserID(userID uuid.UUID) (*models.RecruiterProfile, error)
	Save(profile *models.RecruiterProfile) error
}

type recruiterRepository struct {
	db *gorm.DB
}

func NewRecruiterRepository(db *gorm.DB) RecruiterRepository {
	return &recruiterRepository{db: db}
}

func (r *recruiterRepository) Create(profile *models.RecruiterProfile) error {
	if err := r.db.Create(profile).Error; err != nil {
		return fmt.Errorf("failed to create recruiter profile: %w", err)
	}
	return nil
}

func (r *recruiterRepository) FindByUserID(userID uuid.UUID) (*models.RecruiterProfile, error) {
	var profile models.RecruiterProfile
	err := r.db.Preload("User").Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("recruiter profile for user %s: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find recruiter profile: %w", err)
	}
	return &profile, nil
}

func (r *recruiterRepository) Save(profile *models.RecruiterProfile) error {
	if err := r.db.Save(profile).Error; err != nil {
		return fmt.Errorf("failed to save recruiter profile: %w", err)
	}
	return nil
}
