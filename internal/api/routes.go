package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
)

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Use(handler.RequestMetrics)

	app.Get("/healthz", handler.Health)
	if handler.metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(handler.metrics.Handler()))
	}

	api := app.Group("/api")
	api.Post("/session", handler.CreateSession)
	api.Delete("/session", handler.DeleteSession)

	api.Use(handler.SessionRequired)

	api.Get("/profile", handler.GetProfile)
	api.Put("/profile", handler.UpdateProfile)

	cycles := api.Group("/cycles")
	cycles.Get("", handler.ListCycles)
	cycles.Post("", handler.CreateCycle)
	cycles.Put("/:id", handler.UpdateCycle)
	cycles.Delete("/:id", handler.DeleteCycle)

	symptoms := api.Group("/symptoms")
	symptoms.Get("", handler.ListSymptoms)
	symptoms.Post("", handler.LogSymptoms)
	symptoms.Get("/:date", handler.GetSymptomsForDate)

	api.Get("/predictions", handler.GetPrediction)
	api.Get("/calendar", handler.GetCalendarMonth)
	api.Get("/calendar/day/:date", handler.GetCalendarDay)
	api.Get("/insights", handler.GetInsights)
	api.Get("/dashboard", handler.GetDashboard)

	reminders := api.Group("/reminders")
	reminders.Get("", handler.ListReminders)
	reminders.Post("/:type", handler.UpdateReminder)
	reminders.Delete("/:type", handler.DeleteReminder)

	export := api.Group("/export")
	export.Get("/summary", handler.ExportSummary)
	export.Get("/json", handler.ExportJSON)
	export.Get("/csv", handler.ExportCSV)

	water := api.Group("/water")
	water.Get("", handler.GetWaterIntake)
	water.Post("", handler.AddWaterIntake)
}
