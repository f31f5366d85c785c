package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alerting-platform/internal/domain"
	"alerting-platform/internal/repository"
)

const (
	UserContextKey   = "user"
	UserIDContextKey = "user_id"
)

// Identity resolves the acting user. Authentication proper is owned by
// an upstream gateway; requests arrive with an X-User-ID header. For
// local development a request without the header falls back to the
// first admin, then to any user at all.
func Identity(users repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var user *domain.User

		if header := c.Get("X-User-ID"); header != "" {
			id, err := uuid.Parse(header)
			if err != nil {
				return Unauthorized("Invalid X-User-ID header")
			}
			u, err := users.GetByID(c.Context(), id)
			if err != nil {
				return err
			}
			user = u
		}

		if user == nil {
			u, err := users.GetFirstByRole(c.Context(), domain.RoleAdmin)
			if err != nil {
				return err
			}
			user = u
		}
		if user == nil {
			u, err := users.GetAny(c.Context())
			if err != nil {
				return err
			}
			user = u
		}
		if user == nil {
			return Unauthorized("No user could be resolved for this request")
		}

		c.Locals(UserContextKey, user)
		c.Locals(UserIDContextKey, user.ID)

		return c.Next()
	}
}

func GetCurrentUser(c *fiber.Ctx) *domain.User {
	user, ok := c.Locals(UserContextKey).(*domain.User)
	if !ok {
		return nil
	}
	return user
}

func GetCurrentUserID(c *fiber.Ctx) uuid.UUID {
	userID, ok := c.Locals(UserIDContextKey).(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return userID
}

// RequireAdmin guards the admin alert-management routes.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := GetCurrentUser(c)
		if user == nil {
			return Unauthorized("User not found")
		}
		if !user.IsAdmin() {
			return Forbidden("Admin role required for this operation")
		}
		return c.Next()
	}
}
