package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"jobgate/video-studio/internal/models"
)

// ErrDuplicateFavorite is returned when a recruiter favorites the same
// candidate twice.
var ErrDuplicateFavorite = errors.New("candidate already in favorites")

type FavoriteRepository interface {
	Create(favorite *models.RecruiterFavorite) error
	Find(recruiterID, candidateID uuid.UUID) (*models.RecruiterFavorite, error)
	Delete(recruiterID, candidateID uuid.UUID) error
	ListByRecruiter(recruiterID uuid.UUID) ([]models.RecruiterFavorite, error)
}

type favoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

func (r *favoriteRepository) Create(favorite *models.RecruiterFavorite) error {
	var count int64
	err := r.db.Model(&models.RecruiterFavorite{}).
		Where("recruiter_id = ? AND candidate_id = ?", favorite.RecruiterID, favorite.CandidateID).
		Count(&count).Error
	if err != nil {
		return fmt.Errorf("failed to check favorite: %w", err)
	}
	if count > 0 {
		return ErrDuplicateFavorite
	}
	if err := r.db.Create(favorite).Error; err != nil {
		return fmt.Errorf("failed to create favorite: %w", err)
	}
	return nil
}

func (r *favoriteRepository) Find(recruiterID, candidateID uuid.UUID) (*models.RecruiterFavorite, error) {
	var favorite models.RecruiterFavorite
	err := r.db.Where("recruiter_id = ? AND candidate_id = ?", recruiterID, candidateID).
		First(&favorite).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("favorite: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find favorite: %w", err)
	}
	return &favorite, nil
}

func (r *favoriteRepository) Delete(recruiterID, candidateID uuid.UUID) error {
	result := r.db.Where("recruiter_id = ? AND candidate_id = ?", recruiterID, candidateID).
		Delete(&models.RecruiterFavorite{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete favorite: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("favorite: %w", ErrNotFound)
	}
	return nil
}

func (r *favoriteRepository) ListByRecruiter(recruiterID uuid.UUID) ([]models.RecruiterFavorite, error) {
	var favorites []models.RecruiterFavorite
	err := r.db.Preload("Candidate").Preload("Candidate.User").
		Where("recruiter_id = ?", recruiterID).
		Order("added_at DESC").
		Find(&favorites).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	return favorites, nil
}
