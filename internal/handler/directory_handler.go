package handler

import (
	"github.com/gofiber/fiber/v2"

	"alerting-platform/internal/service/directory"
)

// DirectoryHandler exposes the user and team lists the admin UI uses
// when building targeting rules.
type DirectoryHandler struct {
	dirService directory.Service
}

func NewDirectoryHandler(dirService directory.Service) *DirectoryHandler {
	return &DirectoryHandler{dirService: dirService}
}

func (h *DirectoryHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.dirService.ListUsers(c.Context())
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(users)
}

func (h *DirectoryHandler) ListTeams(c *fiber.Ctx) error {
	teams, err := h.dirService.ListTeams(c.Context())
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(teams)
}
