package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type CandidateStatus string

const (
	CandidateStatusActive       CandidateStatus = "active"
	CandidateStatusPassive      CandidateStatus = "passive"
	CandidateStatusNotAvailable CandidateStatus = "not_available"
)

type CandidateProfile struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`

	FirstName string     `gorm:"type:text;not null" json:"first_name"`
	LastName  string     `gorm:"type:text;not null" json:"last_name"`
	Phone     string     `gorm:"type:text" json:"phone,omitempty"`
	Location  string     `gorm:"type:text" json:"location,omitempty"`
	BirthDate *time.Time `json:"birth_date,omitempty"`

	EducationLevel  string `gorm:"type:text" json:"education_level,omitempty"`
	University      string `gorm:"type:text" json:"university,omitempty"`
	Major           string `gorm:"type:text" json:"major,omitempty"`
	GraduationYear  *int   `json:"graduation_year,omitempty"`
	ExperienceYears int    `gorm:"not null;default:0" json:"experience_years"`

	CVFile        string     `gorm:"column:cv_file;type:text" json:"cv_file,omitempty"`
	CVLastUpdated *time.Time `gorm:"column:cv_last_updated" json:"cv_last_updated,omitempty"`
	CVTextExcerpt string     `gorm:"column:cv_text_excerpt;type:text" json:"cv_text_excerpt,omitempty"`
	CVPageCount   int        `gorm:"column:cv_page_count;not null;default:0" json:"cv_page_count,omitempty"`
	PortfolioURL  string     `gorm:"type:text" json:"portfolio_url,omitempty"`
	LinkedinURL   string     `gorm:"type:text" json:"linkedin_url,omitempty"`

	PresentationVideoID *uuid.UUID `gorm:"type:uuid" json:"presentation_video_id,omitempty"`
	VideoLastUpdated    *time.Time `json:"video_last_updated,omitempty"`
	VideoQualityScore   int        `gorm:"not null;default:0" json:"video_quality_score"`
	VideoLinkedAt       *time.Time `json:"video_linked_at,omitempty"`

	Status             CandidateStatus `gorm:"type:text;not null;default:'active'" json:"status"`
	IsProfilePublic    bool            `gorm:"not null;default:true" json:"is_profile_public"`
	AcceptsOffers      bool            `gorm:"not null;default:true" json:"accepts_offers"`
	PreferredSalaryMin *int            `json:"preferred_salary_min,omitempty"`
	PreferredSalaryMax *int            `json:"preferred_salary_max,omitempty"`

	// Stale between writes: recomputed only by explicit recalculation calls.
	ProfileCompleteness int `gorm:"not null;default:0" json:"profile_completeness"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User              User   `gorm:"foreignKey:UserID" json:"-"`
	PresentationVideo *Video `gorm:"foreignKey:PresentationVideoID" json:"presentation_video,omitempty"`
}

func (CandidateProfile) TableName() string {
	return "candidate_profiles"
}

func (p *CandidateProfile) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// HasPresentationVideo requires the linked video to be loaded and approved.
func (p *CandidateProfile) HasPresentationVideo() bool {
	return p.PresentationVideo != nil && p.PresentationVideo.IsApproved
}

type SyncAction string

const (
	SyncActionCVUpdated     SyncAction = "cv_updated"
	SyncActionVideoLinked   SyncAction = "video_linked"
	SyncActionVideoUnlinked SyncAction = "video_unlinked"
	SyncActionSyncSuggested SyncAction = "sync_suggested"
)

// CVVideoSyncLog is an append-only audit row recording CV/video changes on a
// profile. Callers set sync_needed and sync_completed directly; nothing
// enforces a transition between them.
type CVVideoSyncLog struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CandidateProfileID uuid.UUID `gorm:"type:uuid;not null;index" json:"candidate_profile_id"`

	Action       SyncAction `gorm:"type:text;not null" json:"action"`
	CVVersion    string     `gorm:"column:cv_version;type:text" json:"cv_version,omitempty"`
	VideoVersion string     `gorm:"type:text" json:"video_version,omitempty"`

	SyncNeeded    bool       `gorm:"not null;default:false" json:"sync_needed"`
	SyncCompleted bool       `gorm:"not null;default:false" json:"sync_completed"`
	SyncDate      *time.Time `json:"sync_date,omitempty"`

	Notes     string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`

	CandidateProfile CandidateProfile `gorm:"foreignKey:CandidateProfileID" json:"-"`
}

func (CVVideoSyncLog) TableName() string {
	return "cv_video_sync_logs"
}

// VideoViewLog records a recruiter watching a candidate's video. Append-only.
type VideoViewLog struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	VideoID            uuid.UUID `gorm:"type:uuid;not null;index" json:"video_id"`
	ViewerID           uuid.UUID `gorm:"type:uuid;not null;index" json:"viewer_id"`
	CandidateProfileID uuid.UUID `gorm:"type:uuid;not null;index" json:"candidate_profile_id"`

	ViewedAt         time.Time `json:"viewed_at"`
	ViewDuration     int       `gorm:"not null;default:0" json:"view_duration"`
	CompletedViewing bool      `gorm:"not null;default:false" json:"completed_viewing"`

	Rating *int   `json:"rating,omitempty"`
	Notes  string `gorm:"type:text" json:"notes,omitempty"`

	Video            Video            `gorm:"foreignKey:VideoID" json:"-"`
	Viewer           User             `gorm:"foreignKey:ViewerID" json:"-"`
	CandidateProfile CandidateProfile `gorm:"foreignKey:CandidateProfileID" json:"-"`
}

func (VideoViewLog) TableName() string {
	return "video_view_logs"
}
