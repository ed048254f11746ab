package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/mycare/internal/security"
)

type sessionInput struct {
	Token string `json:"token"`
}

func (handler *Handler) Health(c *fiber.Ctx) error {
	if handler.healthCheck != nil {
		if err := handler.healthCheck(c.UserContext()); err != nil {
			handler.logger.WithError(err).Warn("health check failed")
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable"})
		}
	}
	return c.JSON(fiber.Map{"status": "ok"})
}

// CreateSession stores a valid session token in an HTTP-only cookie.
func (handler *Handler) CreateSession(c *fiber.Ctx) error {
	input := sessionInput{}
	if !parseBody(c, &input) {
		return invalidBody(c)
	}

	now := handler.now()
	userID, err := security.ParseSessionToken(handler.secretKey, input.Token, now)
	if err != nil {
		return unauthorized(c)
	}
	user, err := handler.users.FindByID(userID)
	if err != nil {
		return unauthorized(c)
	}

	c.Cookie(&fiber.Cookie{
		Name:     sessionCookieName,
		Value:    input.Token,
		Path:     "/",
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: "Lax",
		Expires:  now.Add(security.DefaultSessionTTL),
	})
	return c.JSON(fiber.Map{"id": user.ID, "name": user.Name})
}

func (handler *Handler) DeleteSession(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: "Lax",
		Expires:  handler.now().Add(-time.Hour),
	})
	return c.SendStatus(fiber.StatusNoContent)
}
