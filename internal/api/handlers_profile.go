package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/mycare/internal/services"
)

func (handler *Handler) GetProfile(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return unauthorized(c)
	}
	return c.JSON(user)
}

func (handler *Handler) UpdateProfile(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return unauthorized(c)
	}
	update := services.ProfileUpdate{}
	if !parseBody(c, &update) {
		return invalidBody(c)
	}

	updated, err := handler.settings.UpdateProfile(user.ID, update)
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.JSON(updated)
}
