package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/mycare/internal/services"
)

func (handler *Handler) ListSymptoms(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return unauthorized(c)
	}
	entries, err := handler.symptoms.ListSymptoms(user.ID, c.Query("from"), c.Query("to"))
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.JSON(entries)
}

// LogSymptoms replaces the entry for the posted date.
func (handler *Handler) LogSymptoms(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return unauthorized(c)
	}
	input := services.SymptomInput{}
	if !parseBody(c, &input) {
		return invalidBody(c)
	}

	entry, err := handler.symptoms.LogSymptoms(user.ID, input)
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(entry)
}

func (handler *Handler) GetSymptomsForDate(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return unauthorized(c)
	}
	entry, err := handler.symptoms.SymptomsForDate(user.ID, c.Params("date"))
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.JSON(entry)
}
