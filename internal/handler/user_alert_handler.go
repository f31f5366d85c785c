package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alerting-platform/internal/middleware"
	"alerting-platform/internal/service/alert"
	"alerting-platform/internal/service/preference"
)

// UserAlertHandler serves the user-facing alert feed and the
// read/snooze actions on it.
type UserAlertHandler struct {
	alertService alert.Service
	prefService  preference.Service
}

func NewUserAlertHandler(alertService alert.Service, prefService preference.Service) *UserAlertHandler {
	return &UserAlertHandler{
		alertService: alertService,
		prefService:  prefService,
	}
}

func (h *UserAlertHandler) List(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)
	if userID == uuid.Nil {
		return middleware.Unauthorized("User not authenticated")
	}

	alerts, err := h.alertService.ListForUser(c.Context(), userID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(alerts)
}

func (h *UserAlertHandler) ListSnoozed(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)
	if userID == uuid.Nil {
		return middleware.Unauthorized("User not authenticated")
	}

	snoozed, err := h.prefService.ListSnoozed(c.Context(), userID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(snoozed)
}

type snoozeRequest struct {
	SnoozeUntil *time.Time `json:"snooze_until"`
}

// Snooze suppresses the alert for the caller, through the next
// midnight unless the body names an explicit snooze_until.
func (h *UserAlertHandler) Snooze(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)
	if userID == uuid.Nil {
		return middleware.Unauthorized("User not authenticated")
	}

	alertID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid alert ID")
	}

	var req snoozeRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return middleware.BadRequest("Invalid request body")
		}
	}

	var until time.Time
	if req.SnoozeUntil != nil {
		until = *req.SnoozeUntil
		if err := h.prefService.Snooze(c.Context(), userID, alertID, until); err != nil {
			return err
		}
	} else {
		until, err = h.prefService.SnoozeUntilEndOfDay(c.Context(), userID, alertID)
		if err != nil {
			return err
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":      "Alert snoozed",
		"snooze_until": until,
	})
}

func (h *UserAlertHandler) MarkRead(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)
	if userID == uuid.Nil {
		return middleware.Unauthorized("User not authenticated")
	}

	alertID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid alert ID")
	}

	if err := h.prefService.MarkRead(c.Context(), userID, alertID); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Alert marked as read",
	})
}

func (h *UserAlertHandler) MarkUnread(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)
	if userID == uuid.Nil {
		return middleware.Unauthorized("User not authenticated")
	}

	alertID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid alert ID")
	}

	if err := h.prefService.MarkUnread(c.Context(), userID, alertID); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Alert marked as unread",
	})
}
