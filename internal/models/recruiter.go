package models

import (
	"time"

	"github.com/google/uuid"
)

type RecruiterProfile struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`

	CompanyName string `gorm:"type:text;not null" json:"company_name"`
	Position    string `gorm:"type:text" json:"position"`
	Phone       string `gorm:"type:text" json:"phone,omitempty"`
	Department  string `gorm:"type:text" json:"department,omitempty"`

	PreferredEducationLevels []string               `gorm:"serializer:json" json:"preferred_education_levels,omitempty"`
	PreferredExperienceRange map[string]interface{} `gorm:"serializer:json" json:"preferred_experience_range,omitempty"`
	PreferredUniversities    []string               `gorm:"serializer:json" json:"preferred_universities,omitempty"`

	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (RecruiterProfile) TableName() string {
	return "recruiter_profiles"
}

// ProfileViewLog records a recruiter consulting a candidate profile.
// Append-only.
type ProfileViewLog struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CandidateProfileID uuid.UUID `gorm:"type:uuid;not null;index" json:"candidate_profile_id"`
	RecruiterID        uuid.UUID `gorm:"type:uuid;not null;index" json:"recruiter_id"`

	ViewedAt       time.Time `json:"viewed_at"`
	ViewDuration   int       `gorm:"not null;default:0" json:"view_duration"`
	SectionsViewed []string  `gorm:"serializer:json" json:"sections_viewed,omitempty"`

	CVDownloaded     bool `gorm:"column:cv_downloaded;not null;default:false" json:"cv_downloaded"`
	VideoWatched     bool `gorm:"not null;default:false" json:"video_watched"`
	ContactAttempted bool `gorm:"not null;default:false" json:"contact_attempted"`

	InterestLevel *int   `json:"interest_level,omitempty"`
	Notes         string `gorm:"type:text" json:"notes,omitempty"`

	IPAddress string `gorm:"column:ip_address;type:text" json:"ip_address,omitempty"`
	UserAgent string `gorm:"type:text" json:"user_agent,omitempty"`

	CandidateProfile CandidateProfile `gorm:"foreignKey:CandidateProfileID" json:"-"`
	Recruiter        User             `gorm:"foreignKey:RecruiterID" json:"-"`
}

func (ProfileViewLog) TableName() string {
	return "profile_view_logs"
}

type InteractionType string

const (
	InteractionProfileView      InteractionType = "profile_view"
	InteractionVideoView        InteractionType = "video_view"
	InteractionCVDownload       InteractionType = "cv_download"
	InteractionMessageSent      InteractionType = "message_sent"
	InteractionInterviewRequest InteractionType = "interview_request"
	InteractionOfferSent        InteractionType = "offer_sent"
	InteractionFavoriteAdded    InteractionType = "favorite_added"
	InteractionFavoriteRemoved  InteractionType = "favorite_removed"
)

// CandidateInteraction is the denormalized event stream of recruiter actions
// against a candidate. Rows are never mutated after creation.
type CandidateInteraction struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CandidateID uuid.UUID `gorm:"type:uuid;not null;index" json:"candidate_id"`
	RecruiterID uuid.UUID `gorm:"type:uuid;not null;index" json:"recruiter_id"`

	InteractionType InteractionType `gorm:"type:text;not null;index" json:"interaction_type"`
	InteractionDate time.Time       `json:"interaction_date"`

	Details map[string]interface{} `gorm:"serializer:json" json:"details,omitempty"`
	Notes   string                 `gorm:"type:text" json:"notes,omitempty"`

	Candidate CandidateProfile `gorm:"foreignKey:CandidateID" json:"-"`
	Recruiter User             `gorm:"foreignKey:RecruiterID" json:"-"`
}

func (CandidateInteraction) TableName() string {
	return "candidate_interactions"
}

type RecruiterFavorite struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	RecruiterID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_recruiter_candidate" json:"recruiter_id"`
	CandidateID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_recruiter_candidate" json:"candidate_id"`

	Priority int       `gorm:"not null;default:3" json:"priority"`
	Notes    string    `gorm:"type:text" json:"notes,omitempty"`
	AddedAt  time.Time `json:"added_at"`

	Recruiter User             `gorm:"foreignKey:RecruiterID" json:"-"`
	Candidate CandidateProfile `gorm:"foreignKey:CandidateID" json:"-"`
}

func (RecruiterFavorite) TableName() string {
	return "recruiter_favorites"
}
