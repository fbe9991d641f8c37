package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"jobgate/video-studio/internal/models"
)

type InteractionRepository interface {
	Create(interaction *models.CandidateInteraction) error
	List(candidateID, recruiterID *uuid.UUID, interactionType string) ([]models.CandidateInteraction, error)
}

type interactionRepository struct {
	db *gorm.DB
}

func NewInteractionRepository(db *gorm.DB) InteractionRepository {
	return &interactionRepository{db: db}
}

func (r *interactionRepository) Create(interaction *models.CandidateInteraction) error {
	if err := r.db.Create(interaction).Error; err != nil {
		return fmt.Errorf("failed to create interaction: %w", err)
	}
	return nil
}

func (r *interactionRepository) List(candidateID, recruiterID *uuid.UUID, interactionType string) ([]models.CandidateInteraction, error) {
	var interactions []models.CandidateInteraction
	query := r.db.Order("interaction_date DESC")
	if candidateID != nil {
		query = query.Where("candidate_id = ?", *candidateID)
	}
	if recruiterID != nil {
		query = query.Where("recruiter_id = ?", *recruiterID)
	}
	if interactionType != "" {
		query = query.Where("interaction_type = ?", interactionType)
	}
	if err := query.Find(&interactions).Error; err != nil {
		return nil, fmt.Errorf("failed to list interactions: %w", err)
	}
	return interactions, nil
}
