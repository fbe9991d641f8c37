package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"jobgate/video-studio/internal/models"
	"jobgate/video-studio/internal/repositories"
	"jobgate/video-studio/internal/services"
)

type UserHandler struct {
	userRepo repositories.UserRepository
	prefRepo repositories.PreferenceRepository
	notifier services.NotificationService
}

func NewUserHandler(
	userRepo repositories.UserRepository,
	prefRepo repositories.PreferenceRepository,
	notifier services.NotificationService,
) *UserHandler {
	return &UserHandler{
		userRepo: userRepo,
		prefRepo: prefRepo,
		notifier: notifier,
	}
}

// HandleCreate handles POST /api/users. New accounts get a default
// notification preference row and a welcome notification.
func (h *UserHandler) HandleCreate(c *fiber.Ctx) error {
	var req models.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}
	if err := validate.Struct(req); err != nil {
		return validationError(c, err)
	}

	if _, err := h.userRepo.FindByUsername(req.Username); err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Username already taken",
		})
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return respondError(c, err)
	}

	user := &models.User{
		ID:        uuid.New(),
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}
	if err := h.userRepo.Create(user); err != nil {
		return respondError(c, err)
	}

	pref := defaultPreferences(user.ID)
	if err := h.prefRepo.Create(pref); err != nil {
		return respondError(c, err)
	}

	_, _ = h.notifier.NotifyEvent(services.EventNotification{
		RecipientID: user.ID,
		Type:        models.NotificationWelcome,
	})

	return c.Status(fiber.StatusCreated).JSON(user)
}

// HandleGet handles GET /api/users/:id
func (h *UserHandler) HandleGet(c *fiber.Ctx) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}

	user, err := h.userRepo.FindByID(id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"user":      user,
		"full_name": user.FullName(),
	})
}
