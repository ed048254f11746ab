package api

import (
	"github.com/gofiber/fiber/v2"
)

type waterInput struct {
	Delta *int `json:"delta"`
}

func (handler *Handler) GetWaterIntake(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return unauthorized(c)
	}
	if handler.water == nil {
		return apiError(c, fiber.StatusNotFound, "water tracking is disabled")
	}
	intake, err := handler.water.Today(c.UserContext(), user.ID, handler.now())
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.JSON(intake)
}

// AddWaterIntake adds one cup unless the body carries another delta.
func (handler *Handler) AddWaterIntake(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return unauthorized(c)
	}
	if handler.water == nil {
		return apiError(c, fiber.StatusNotFound, "water tracking is disabled")
	}
	input := waterInput{}
	if !parseBody(c, &input) {
		return invalidBody(c)
	}
	delta := 1
	if input.Delta != nil {
		delta = *input.Delta
	}

	intake, err := handler.water.Add(c.UserContext(), user.ID, delta, handler.now())
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.JSON(intake)
}
