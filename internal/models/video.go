package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type VideoStatus string

const (
	VideoStatusDraft      VideoStatus = "draft"
	VideoStatusProcessing VideoStatus = "processing"
	VideoStatusCompleted  VideoStatus = "completed"
	VideoStatusFailed     VideoStatus = "failed"
)

// ReadyScoreThreshold is the minimum overall quality score at which a video
// is considered good enough for recording.
const ReadyScoreThreshold = 80

type Video struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Title       string    `gorm:"type:text;default:'Presentation video'" json:"title"`
	Description string    `gorm:"type:text" json:"description,omitempty"`

	VideoFile string `gorm:"type:text" json:"video_file,omitempty"`
	Thumbnail string `gorm:"type:text" json:"thumbnail,omitempty"`

	Duration   float64 `json:"duration,omitempty"`
	FileSize   int64   `json:"file_size,omitempty"`
	Format     string  `gorm:"type:text" json:"format,omitempty"`
	Resolution string  `gorm:"type:text" json:"resolution,omitempty"`

	Status              VideoStatus `gorm:"type:text;not null;default:'draft'" json:"status"`
	OverallQualityScore int         `gorm:"not null;default:0" json:"overall_quality_score"`
	IsApproved          bool        `gorm:"not null;default:false" json:"is_approved"`

	LinkedToCV        bool `gorm:"column:linked_to_cv;not null;default:false" json:"linked_to_cv"`
	CVUpdateSuggested bool `gorm:"column:cv_update_suggested;not null;default:false" json:"cv_update_suggested"`

	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	RecordedAt *time.Time `json:"recorded_at,omitempty"`

	User          User           `gorm:"foreignKey:UserID" json:"-"`
	QualityChecks []QualityCheck `gorm:"foreignKey:VideoID" json:"quality_checks,omitempty"`
}

func (Video) TableName() string {
	return "videos"
}

// IsReady reports whether the aggregate quality score clears the recording
// threshold. Derived, never stored.
func (v *Video) IsReady() bool {
	return v.OverallQualityScore >= ReadyScoreThreshold
}

// DurationFormatted returns the duration as mm:ss.
func (v *Video) DurationFormatted() string {
	if v.Duration <= 0 {
		return "00:00"
	}
	total := int(v.Duration)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

type CheckType string

const (
	CheckTypeFace        CheckType = "face"
	CheckTypeLighting    CheckType = "lighting"
	CheckTypeAudio       CheckType = "audio"
	CheckTypePositioning CheckType = "positioning"
)

// ValidCheckType reports whether t is one of the four known check types.
func ValidCheckType(t CheckType) bool {
	switch t {
	case CheckTypeFace, CheckTypeLighting, CheckTypeAudio, CheckTypePositioning:
		return true
	}
	return false
}

type CheckStatus string

const (
	CheckStatusChecking CheckStatus = "checking"
	CheckStatusSuccess  CheckStatus = "success"
	CheckStatusWarning  CheckStatus = "warning"
	CheckStatusError    CheckStatus = "error"
)

// QualityCheck holds the result of one technical check for a video. One row
// per (video, check_type) pair, upserted on resubmission.
type QualityCheck struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	VideoID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_video_check_type" json:"video_id"`
	UserID  uuid.UUID `gorm:"type:uuid;not null" json:"user_id"`

	CheckType CheckType   `gorm:"type:text;not null;uniqueIndex:idx_video_check_type" json:"check_type"`
	Status    CheckStatus `gorm:"type:text;not null;default:'checking'" json:"status"`
	Score     int         `gorm:"not null;default:0" json:"score"`
	Message   string      `gorm:"type:text" json:"message,omitempty"`

	TechnicalDetails map[string]interface{} `gorm:"serializer:json" json:"technical_details,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Video Video `gorm:"foreignKey:VideoID" json:"-"`
}

func (QualityCheck) TableName() string {
	return "quality_checks"
}

type RecordingSession struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	VideoID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"video_id"`
	UserID  uuid.UUID `gorm:"type:uuid;not null" json:"user_id"`

	StartedAt time.Time  `json:"started_at"`
	EndedAt   *time.Time `json:"ended_at,omitempty"`

	InstructionsShown     []string `gorm:"serializer:json" json:"instructions_shown,omitempty"`
	InstructionsCompleted []string `gorm:"serializer:json" json:"instructions_completed,omitempty"`

	TotalAttempts   int  `gorm:"not null;default:1" json:"total_attempts"`
	DurationSeconds *int `json:"duration_seconds,omitempty"`

	DeviceSettings map[string]interface{} `gorm:"serializer:json" json:"device_settings,omitempty"`

	Video Video `gorm:"foreignKey:VideoID" json:"-"`
}

func (RecordingSession) TableName() string {
	return "recording_sessions"
}

func (s *RecordingSession) IsCompleted() bool {
	return s.EndedAt != nil
}
