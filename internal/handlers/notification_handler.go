package handlers

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"jobgate/video-studio/internal/models"
	"jobgate/video-studio/internal/repositories"
	"jobgate/video-studio/internal/services"
)

type NotificationHandler struct {
	notifRepo repositories.NotificationRepository
	prefRepo  repositories.PreferenceRepository
	notifier  services.NotificationService
}

func NewNotificationHandler(
	notifRepo repositories.NotificationRepository,
	prefRepo repositories.PreferenceRepository,
	notifier services.NotificationService,
) *NotificationHandler {
	return &NotificationHandler{
		notifRepo: notifRepo,
		prefRepo:  prefRepo,
		notifier:  notifier,
	}
}

// HandleList handles GET /api/notifications
func (h *NotificationHandler) HandleList(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Query("user_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "user_id is required",
		})
	}

	filters := repositories.NotificationFilters{
		Type:     c.Query("type"),
		Priority: c.Query("priority"),
	}
	if raw := c.Query("is_read"); raw != "" {
		value, parseErr := strconv.ParseBool(raw)
		if parseErr != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid is_read value",
			})
		}
		filters.IsRead = &value
	}

	notifications, err := h.notifRepo.ListForUser(userID, filters)
	if err != nil {
		return respondError(c, err)
	}

	items := make([]fiber.Map, 0, len(notifications))
	for i := range notifications {
		n := &notifications[i]
		items = append(items, fiber.Map{
			"notification": n,
			"is_expired":   n.IsExpired(),
		})
	}

	return c.JSON(fiber.Map{
		"count":         len(items),
		"notifications": items,
	})
}

// HandleCreate handles POST /api/notifications
func (h *NotificationHandler) HandleCreate(c *fiber.Ctx) error {
	var req models.CreateNotificationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}
	if err := validate.Struct(req); err != nil {
		return validationError(c, err)
	}

	notification, err := notificationFromRequest(&req)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	if err := h.notifier.Create(notification); err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(notification)
}

// HandleBulkCreate handles POST /api/notifications/bulk. All-or-nothing is
// not promised: each entry is created independently and failures are counted.
func (h *NotificationHandler) HandleBulkCreate(c *fiber.Ctx) error {
	var req models.BulkCreateNotificationsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}
	if err := validate.Struct(req); err != nil {
		return validationError(c, err)
	}

	created := make([]*models.Notification, 0, len(req.Notifications))
	failed := 0
	for i := range req.Notifications {
		notification, err := notificationFromRequest(&req.Notifications[i])
		if err != nil {
			failed++
			continue
		}
		if err := h.notifier.Create(notification); err != nil {
			failed++
			continue
		}
		created = append(created, notification)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"created":       len(created),
		"failed":        failed,
		"notifications": created,
	})
}

func notificationFromRequest(req *models.CreateNotificationRequest) (*models.Notification, error) {
	recipientID, err := uuid.Parse(req.RecipientID)
	if err != nil {
		return nil, errors.New("invalid recipient_id format")
	}

	notification := &models.Notification{
		ID:                uuid.New(),
		RecipientID:       recipientID,
		NotificationType:  models.NotificationType(req.NotificationType),
		Title:             req.Title,
		Message:           req.Message,
		Priority:          models.NotificationPriority(req.Priority),
		RelatedObjectType: req.RelatedObjectType,
		ExtraData:         req.ExtraData,
		ActionURL:         req.ActionURL,
		ActionText:        req.ActionText,
	}
	if req.SenderID != "" {
		senderID, err := uuid.Parse(req.SenderID)
		if err != nil {
			return nil, errors.New("invalid sender_id format")
		}
		notification.SenderID = &senderID
	}
	if req.RelatedObjectID != "" {
		relatedID, err := uuid.Parse(req.RelatedObjectID)
		if err != nil {
			return nil, errors.New("invalid related_object_id format")
		}
		notification.RelatedObjectID = &relatedID
	}
	return notification, nil
}

// HandleMarkAsRead handles POST /api/notifications/:id/mark-as-read
func (h *NotificationHandler) HandleMarkAsRead(c *fiber.Ctx) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}

	notification, err := h.notifRepo.FindByID(id)
	if err != nil {
		return respondError(c, err)
	}

	if !notification.IsRead {
		now := time.Now()
		notification.IsRead = true
		notification.ReadAt = &now
		if err := h.notifRepo.Save(notification); err != nil {
			return respondError(c, err)
		}
	}

	return c.JSON(notification)
}

// HandleMarkAsUnread handles POST /api/notifications/:id/mark-as-unread
func (h *NotificationHandler) HandleMarkAsUnread(c *fiber.Ctx) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}

	notification, err := h.notifRepo.FindByID(id)
	if err != nil {
		return respondError(c, err)
	}

	if notification.IsRead {
		notification.IsRead = false
		notification.ReadAt = nil
		if err := h.notifRepo.Save(notification); err != nil {
			return respondError(c, err)
		}
	}

	return c.JSON(notification)
}

// HandleArchive handles POST /api/notifications/:id/archive. Archiving also
// marks the notification read.
func (h *NotificationHandler) HandleArchive(c *fiber.Ctx) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}

	notification, err := h.notifRepo.FindByID(id)
	if err != nil {
		return respondError(c, err)
	}

	notification.IsArchived = true
	if !notification.IsRead {
		now := time.Now()
		notification.IsRead = true
		notification.ReadAt = &now
	}
	if err := h.notifRepo.Save(notification); err != nil {
		return respondError(c, err)
	}

	return c.JSON(notification)
}

// HandleMarkAllAsRead handles POST /api/notifications/mark-all-as-read
func (h *NotificationHandler) HandleMarkAllAsRead(c *fiber.Ctx) error {
	var req models.MarkAllAsReadRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}
	if err := validate.Struct(req); err != nil {
		return validationError(c, err)
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid user_id format",
		})
	}

	updated, err := h.notifRepo.MarkAllReadForUser(userID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"marked_read": updated,
	})
}

// HandleUnreadCount handles GET /api/notifications/unread-count
func (h *NotificationHandler) HandleUnreadCount(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Query("user_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "user_id is required",
		})
	}

	count, err := h.notifRepo.CountUnread(userID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"unread_count": count,
	})
}

// HandleSummary handles GET /api/notifications/summary. The badge payload:
// unread totals broken down by priority.
func (h *NotificationHandler) HandleSummary(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Query("user_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "user_id is required",
		})
	}

	unread, err := h.notifRepo.CountUnread(userID)
	if err != nil {
		return respondError(c, err)
	}
	byPriority, err := h.notifRepo.CountUnreadByPriority(userID)
	if err != nil {
		return respondError(c, err)
	}
	today, err := h.notifRepo.CountSince(userID, startOfDay(time.Now()))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"unread_count":       unread,
		"unread_by_priority": byPriority,
		"received_today":     today,
	})
}

// startOfDay returns midnight of t's day in t's location. Truncate would
// snap to the UTC day boundary instead.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// HandleStats handles GET /api/notifications/stats
func (h *NotificationHandler) HandleStats(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Query("user_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "user_id is required",
		})
	}

	total, err := h.notifRepo.CountForUser(userID)
	if err != nil {
		return respondError(c, err)
	}
	unread, err := h.notifRepo.CountUnread(userID)
	if err != nil {
		return respondError(c, err)
	}
	since := time.Now().AddDate(0, 0, -30)
	recent, err := h.notifRepo.CountSince(userID, since)
	if err != nil {
		return respondError(c, err)
	}
	byType, err := h.notifRepo.CountByType(userID, &since)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"total":          total,
		"unread":         unread,
		"last_30_days":   recent,
		"by_type":        byType,
		"period_started": since,
	})
}

// HandleGetPreferences handles GET /api/notifications/preferences/:userID.
// Missing rows are created with the defaults so the client always gets a
// full preference set back.
func (h *NotificationHandler) HandleGetPreferences(c *fiber.Ctx) error {
	userID, ok := parseUUIDParam(c, "userID")
	if !ok {
		return nil
	}

	pref, err := h.prefRepo.FindByUserID(userID)
	if errors.Is(err, repositories.ErrNotFound) {
		pref = defaultPreferences(userID)
		if err := h.prefRepo.Create(pref); err != nil {
			return respondError(c, err)
		}
	} else if err != nil {
		return respondError(c, err)
	}

	return c.JSON(pref)
}

// HandleUpdatePreferences handles PUT /api/notifications/preferences/:userID
func (h *NotificationHandler) HandleUpdatePreferences(c *fiber.Ctx) error {
	userID, ok := parseUUIDParam(c, "userID")
	if !ok {
		return nil
	}

	var req models.UpdatePreferencesRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	pref, err := h.prefRepo.FindByUserID(userID)
	created := false
	if errors.Is(err, repositories.ErrNotFound) {
		pref = defaultPreferences(userID)
		created = true
	} else if err != nil {
		return respondError(c, err)
	}

	applyPreferenceFlag(&pref.EmailNotifications, req.EmailNotifications)
	applyPreferenceFlag(&pref.PushNotifications, req.PushNotifications)
	applyPreferenceFlag(&pref.SMSNotifications, req.SMSNotifications)
	applyPreferenceFlag(&pref.NotifyVideoViewed, req.NotifyVideoViewed)
	applyPreferenceFlag(&pref.NotifyVideoApproved, req.NotifyVideoApproved)
	applyPreferenceFlag(&pref.NotifySyncNeeded, req.NotifySyncNeeded)
	applyPreferenceFlag(&pref.NotifyProfileComplete, req.NotifyProfileComplete)
	applyPreferenceFlag(&pref.DailyDigest, req.DailyDigest)
	applyPreferenceFlag(&pref.WeeklySummary, req.WeeklySummary)
	if req.QuietHours != nil {
		pref.QuietHours = req.QuietHours
	}

	if created {
		err = h.prefRepo.Create(pref)
	} else {
		err = h.prefRepo.Save(pref)
	}
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(pref)
}

func applyPreferenceFlag(target *bool, value *bool) {
	if value != nil {
		*target = *value
	}
}

func defaultPreferences(userID uuid.UUID) *models.NotificationPreference {
	return &models.NotificationPreference{
		ID:                    uuid.New(),
		UserID:                userID,
		EmailNotifications:    true,
		PushNotifications:     true,
		SMSNotifications:      false,
		NotifyVideoViewed:     true,
		NotifyVideoApproved:   true,
		NotifySyncNeeded:      true,
		NotifyProfileComplete: true,
		DailyDigest:           false,
		WeeklySummary:         true,
	}
}
