package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/mycare/internal/insights"
)

func (handler *Handler) ListReminders(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return unauthorized(c)
	}
	configs, err := handler.reminders.ListReminders(user.ID)
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.JSON(configs)
}

// UpdateReminder applies a partial edit; omitted fields keep their stored values.
func (handler *Handler) UpdateReminder(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return unauthorized(c)
	}
	update := insights.ReminderUpdate{}
	if !parseBody(c, &update) {
		return invalidBody(c)
	}

	config, err := handler.reminders.UpdateReminder(user.ID, c.Params("type"), update)
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.JSON(config)
}

func (handler *Handler) DeleteReminder(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return unauthorized(c)
	}
	if err := handler.reminders.DeleteReminder(user.ID, c.Params("type")); err != nil {
		return handler.respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
