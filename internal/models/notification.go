package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationVideoLinked   NotificationType = "video_linked"
	NotificationVideoUnlinked NotificationType = "video_unlinked"
	NotificationVideoViewed   NotificationType = "video_viewed"
	NotificationVideoApproved NotificationType = "video_approved"
	NotificationSyncNeeded    NotificationType = "sync_needed"

	NotificationProfileComplete NotificationType = "profile_complete"
	NotificationProfileViewed   NotificationType = "profile_viewed"
	NotificationCVUpdated       NotificationType = "cv_updated"

	NotificationJobMatch          NotificationType = "job_match"
	NotificationInterviewRequest  NotificationType = "interview_request"
	NotificationApplicationStatus NotificationType = "application_status"

	NotificationSystemUpdate  NotificationType = "system_update"
	NotificationAccountUpdate NotificationType = "account_update"
	NotificationWelcome       NotificationType = "welcome"
)

type NotificationPriority string

const (
	PriorityLow    NotificationPriority = "low"
	PriorityNormal NotificationPriority = "normal"
	PriorityHigh   NotificationPriority = "high"
	PriorityUrgent NotificationPriority = "urgent"
)

type Notification struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	RecipientID uuid.UUID  `gorm:"type:uuid;not null;index:idx_recipient_created;index:idx_recipient_read" json:"recipient_id"`
	SenderID    *uuid.UUID `gorm:"type:uuid" json:"sender_id,omitempty"`

	NotificationType NotificationType     `gorm:"type:text;not null;index" json:"notification_type"`
	Title            string               `gorm:"type:text;not null" json:"title"`
	Message          string               `gorm:"type:text;not null" json:"message"`
	Priority         NotificationPriority `gorm:"type:text;not null;default:'normal'" json:"priority"`

	RelatedObjectType string     `gorm:"type:text" json:"related_object_type,omitempty"`
	RelatedObjectID   *uuid.UUID `gorm:"type:uuid" json:"related_object_id,omitempty"`

	ExtraData map[string]interface{} `gorm:"serializer:json" json:"extra_data,omitempty"`

	IsRead     bool       `gorm:"not null;default:false;index:idx_recipient_read" json:"is_read"`
	IsArchived bool       `gorm:"not null;default:false" json:"is_archived"`
	ReadAt     *time.Time `json:"read_at,omitempty"`

	ActionURL  string `gorm:"column:action_url;type:text" json:"action_url,omitempty"`
	ActionText string `gorm:"type:text" json:"action_text,omitempty"`

	CreatedAt time.Time  `gorm:"index:idx_recipient_created" json:"created_at"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`

	Recipient User  `gorm:"foreignKey:RecipientID" json:"-"`
	Sender    *User `gorm:"foreignKey:SenderID" json:"-"`
}

func (Notification) TableName() string {
	return "notifications"
}

// IsExpired is computed on read; expired notifications are neither hidden nor
// purged automatically.
func (n *Notification) IsExpired() bool {
	return n.ExpiresAt != nil && time.Now().After(*n.ExpiresAt)
}

type NotificationPreference struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`

	EmailNotifications bool `gorm:"not null;default:true" json:"email_notifications"`
	PushNotifications  bool `gorm:"not null;default:true" json:"push_notifications"`
	SMSNotifications   bool `gorm:"column:sms_notifications;not null;default:false" json:"sms_notifications"`

	NotifyVideoViewed     bool `gorm:"not null;default:true" json:"notify_video_viewed"`
	NotifyVideoApproved   bool `gorm:"not null;default:true" json:"notify_video_approved"`
	NotifySyncNeeded      bool `gorm:"not null;default:true" json:"notify_sync_needed"`
	NotifyProfileComplete bool `gorm:"not null;default:true" json:"notify_profile_complete"`

	DailyDigest   bool `gorm:"not null;default:false" json:"daily_digest"`
	WeeklySummary bool `gorm:"not null;default:true" json:"weekly_summary"`

	QuietHours map[string]interface{} `gorm:"serializer:json" json:"quiet_hours,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (NotificationPreference) TableName() string {
	return "notification_preferences"
}

// ShouldSend reports whether the user opted in to the given event type.
// Unknown types default to true.
func (p *NotificationPreference) ShouldSend(t NotificationType) bool {
	switch t {
	case NotificationVideoViewed:
		return p.NotifyVideoViewed
	case NotificationVideoApproved:
		return p.NotifyVideoApproved
	case NotificationSyncNeeded:
		return p.NotifySyncNeeded
	case NotificationProfileComplete:
		return p.NotifyProfileComplete
	}
	return true
}

type NotificationTemplate struct {
	ID               uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	NotificationType NotificationType `gorm:"type:text;uniqueIndex;not null" json:"notification_type"`

	TitleTemplate   string `gorm:"type:text;not null" json:"title_template"`
	MessageTemplate string `gorm:"type:text;not null" json:"message_template"`

	EmailSubjectTemplate string `gorm:"type:text" json:"email_subject_template,omitempty"`
	EmailBodyTemplate    string `gorm:"type:text" json:"email_body_template,omitempty"`

	AvailableVariables []string `gorm:"serializer:json" json:"available_variables,omitempty"`

	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (NotificationTemplate) TableName() string {
	return "notification_templates"
}

// Render substitutes {key} placeholders in the title and message templates.
func (t *NotificationTemplate) Render(context map[string]interface{}) (title, message string) {
	title = t.TitleTemplate
	message = t.MessageTemplate
	for key, value := range context {
		placeholder := fmt.Sprintf("{%s}", key)
		replacement := fmt.Sprintf("%v", value)
		title = strings.ReplaceAll(title, placeholder, replacement)
		message = strings.ReplaceAll(message, placeholder, replacement)
	}
	return title, message
}
