package handler

import (
	"github.com/gofiber/fiber/v2"

	"alerting-platform/internal/service/analytics"
)

type AnalyticsHandler struct {
	analyticsService analytics.Service
}

func NewAnalyticsHandler(analyticsService analytics.Service) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

func (h *AnalyticsHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.analyticsService.GetStats(c.Context())
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(stats)
}
