package api

import (
	"github.com/gofiber/fiber/v2"
)

// GetPrediction responds with null when the user has no cycles yet.
func (handler *Handler) GetPrediction(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return unauthorized(c)
	}
	snapshot, err := handler.snapshots.Load(user, "", "", handler.now())
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.JSON(snapshot.Prediction)
}

func (handler *Handler) GetCalendarMonth(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return unauthorized(c)
	}
	month, err := handler.calendar.Month(user, c.Query("month"), handler.now())
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.JSON(month)
}

func (handler *Handler) GetCalendarDay(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return unauthorized(c)
	}
	day, err := handler.calendar.Day(user, c.Params("date"), handler.now())
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.JSON(day)
}

func (handler *Handler) GetInsights(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return unauthorized(c)
	}
	report, err := handler.stats.BuildInsights(user, handler.now())
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.JSON(report)
}

func (handler *Handler) GetDashboard(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return unauthorized(c)
	}
	dashboard, err := handler.dashboard.BuildDashboard(c.UserContext(), user, handler.now())
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.JSON(dashboard)
}
