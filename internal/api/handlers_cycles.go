package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/mycare/internal/services"
)

func (handler *Handler) ListCycles(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return unauthorized(c)
	}
	cycles, err := handler.cycles.ListCycles(user.ID)
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.JSON(cycles)
}

func (handler *Handler) CreateCycle(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return unauthorized(c)
	}
	input := services.CycleInput{}
	if !parseBody(c, &input) {
		return invalidBody(c)
	}

	cycle, err := handler.cycles.CreateCycle(user.ID, input)
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(cycle)
}

func (handler *Handler) UpdateCycle(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return unauthorized(c)
	}
	input := services.CycleInput{}
	if !parseBody(c, &input) {
		return invalidBody(c)
	}

	cycle, err := handler.cycles.UpdateCycle(user.ID, c.Params("id"), input)
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.JSON(cycle)
}

func (handler *Handler) DeleteCycle(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return unauthorized(c)
	}
	if err := handler.cycles.DeleteCycle(user.ID, c.Params("id")); err != nil {
		return handler.respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
