package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"jobgate/video-studio/internal/models"
	"jobgate/video-studio/internal/repositories"
)

// defaultMessages provides the built-in title/message pairs used when no
// active template row exists for an event type. Placeholders use the same
// {var} form as stored templates.
var defaultMessages = map[models.NotificationType][2]string{
	models.NotificationVideoLinked: {
		"JOBGATE Video Studio",
		"Your presentation video has been linked to your profile.",
	},
	models.NotificationVideoUnlinked: {
		"JOBGATE Video Studio",
		"Your presentation video has been unlinked from your profile.",
	},
	models.NotificationVideoViewed: {
		"Video viewed",
		"A recruiter viewed your presentation video \"{video_title}\"",
	},
	models.NotificationVideoApproved: {
		"JOBGATE Video Studio",
		"Your presentation video has been approved and is now visible to recruiters.",
	},
	models.NotificationSyncNeeded: {
		"JOBGATE Video Studio",
		"Your CV has been updated. Consider refreshing your presentation video.",
	},
	models.NotificationProfileComplete: {
		"JOBGATE Video Studio",
		"Congratulations! Your candidate profile is now complete.",
	},
	models.NotificationWelcome: {
		"Welcome to JOBGATE",
		"Your account is ready. Complete your profile to get noticed by recruiters.",
	},
}

// EventNotification describes one profile-related event to notify about.
type EventNotification struct {
	RecipientID       uuid.UUID
	SenderID          *uuid.UUID
	Type              models.NotificationType
	Priority          models.NotificationPriority
	RelatedObjectType string
	RelatedObjectID   *uuid.UUID
	Context           map[string]interface{}
}

type NotificationService interface {
	Create(notification *models.Notification) error
	NotifyEvent(event EventNotification) (*models.Notification, error)
}

type notificationService struct {
	notifRepo    repositories.NotificationRepository
	prefRepo     repositories.PreferenceRepository
	templateRepo repositories.TemplateRepository
}

func NewNotificationService(
	notifRepo repositories.NotificationRepository,
	prefRepo repositories.PreferenceRepository,
	templateRepo repositories.TemplateRepository,
) NotificationService {
	return &notificationService{
		notifRepo:    notifRepo,
		prefRepo:     prefRepo,
		templateRepo: templateRepo,
	}
}

func (s *notificationService) Create(notification *models.Notification) error {
	if notification.ID == uuid.Nil {
		notification.ID = uuid.New()
	}
	if notification.Priority == "" {
		notification.Priority = models.PriorityNormal
	}
	return s.notifRepo.Create(notification)
}

// NotifyEvent creates a notification for a profile event, honoring the
// recipient's preferences and an active template when one exists. Returns
// (nil, nil) when the recipient opted out of the event type.
func (s *notificationService) NotifyEvent(event EventNotification) (*models.Notification, error) {
	pref, err := s.prefRepo.FindByUserID(event.RecipientID)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}
	if pref != nil && !pref.ShouldSend(event.Type) {
		return nil, nil
	}

	title, message := s.renderFor(event.Type, event.Context)

	priority := event.Priority
	if priority == "" {
		priority = models.PriorityNormal
	}

	notification := &models.Notification{
		ID:                uuid.New(),
		RecipientID:       event.RecipientID,
		SenderID:          event.SenderID,
		NotificationType:  event.Type,
		Title:             title,
		Message:           message,
		Priority:          priority,
		RelatedObjectType: event.RelatedObjectType,
		RelatedObjectID:   event.RelatedObjectID,
		ExtraData:         event.Context,
	}
	if err := s.notifRepo.Create(notification); err != nil {
		return nil, err
	}
	return notification, nil
}

func (s *notificationService) renderFor(t models.NotificationType, context map[string]interface{}) (string, string) {
	if template, err := s.templateRepo.FindActiveByType(t); err == nil {
		return template.Render(context)
	}

	pair, ok := defaultMessages[t]
	if !ok {
		return "JOBGATE", "You have a new notification"
	}
	return renderPlaceholders(pair[0], context), renderPlaceholders(pair[1], context)
}

func renderPlaceholders(text string, context map[string]interface{}) string {
	for key, value := range context {
		text = strings.ReplaceAll(text, fmt.Sprintf("{%s}", key), fmt.Sprintf("%v", value))
	}
	return text
}
