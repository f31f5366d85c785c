package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alerting-platform/internal/domain"
	"alerting-platform/internal/middleware"
	"alerting-platform/internal/service/alert"
)

type AlertHandler struct {
	alertService alert.Service
}

func NewAlertHandler(alertService alert.Service) *AlertHandler {
	return &AlertHandler{alertService: alertService}
}

func (h *AlertHandler) Create(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	var input domain.CreateAlertInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	created, err := h.alertService.Create(c.Context(), user.ID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *AlertHandler) List(c *fiber.Ctx) error {
	filter := domain.AlertFilter{
		Severity: domain.Severity(c.Query("severity")),
		Status:   c.Query("status"),
	}

	if audience := c.Query("audience"); audience != "" && audience != "all" {
		filter.Audience = domain.VisibilityType(audience)
		if ids := c.Query("audience_ids"); ids != "" {
			for _, raw := range strings.Split(ids, ",") {
				id, err := uuid.Parse(strings.TrimSpace(raw))
				if err != nil {
					return middleware.BadRequest("Invalid audience ID: " + raw)
				}
				filter.AudienceIDs = append(filter.AudienceIDs, id)
			}
		}
	}

	alerts, err := h.alertService.List(c.Context(), filter)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(alerts)
}

func (h *AlertHandler) Get(c *fiber.Ctx) error {
	alertID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid alert ID")
	}

	found, err := h.alertService.GetByID(c.Context(), alertID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(found)
}

func (h *AlertHandler) Update(c *fiber.Ctx) error {
	alertID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid alert ID")
	}

	var input domain.UpdateAlertInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	updated, err := h.alertService.Update(c.Context(), alertID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(updated)
}

// TriggerReminders runs the reminder sweep on demand, outside its cron
// schedule.
func (h *AlertHandler) TriggerReminders(c *fiber.Ctx) error {
	if err := h.alertService.ProcessReminders(c.Context()); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Reminders processed",
	})
}
