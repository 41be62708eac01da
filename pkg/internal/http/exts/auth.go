package exts

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/fitsphere/coaching/pkg/internal/models"
	"github.com/fitsphere/coaching/pkg/internal/services"
)

// GuestToken is the reserved credential behind public meeting join links; it
// resolves to an anonymous USER identity instead of a signed principal.
const GuestToken = "guest-token"

func bearerToken(c *fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return c.Query("tk")
	}
	return strings.TrimPrefix(header, "Bearer ")
}

func AuthMiddleware(c *fiber.Ctx) error {
	token := bearerToken(c)
	if token == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "no token provided")
	}

	if token == GuestToken {
		c.Locals("user", models.GuestAccount())
		return c.Next()
	}

	user, err := services.DecodeAccessToken(token)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
	}

	c.Locals("user", user)
	return c.Next()
}

// RoleRequired narrows a route to one role; ADMIN passes everywhere.
func RoleRequired(role models.AccountRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := c.Locals("user").(models.Account)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "no token provided")
		}
		if user.Role != role && !user.IsAdmin() {
			return fiber.NewError(fiber.StatusForbidden, "insufficient permissions")
		}
		return c.Next()
	}
}
