package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/mycare/internal/insights"
	"github.com/terraincognita07/mycare/internal/models"
	"github.com/terraincognita07/mycare/internal/services"
)

var badRequestErrors = []error{
	models.ErrMalformedDate,
	models.ErrUnknownReminderType,
	models.ErrMalformedTime,
	insights.ErrInvalidConfiguration,
	services.ErrInvalidMonth,
	services.ErrInvalidCycleRange,
	services.ErrCycleTooLong,
	services.ErrInvalidFlowLevel,
	services.ErrInvalidSeverity,
	services.ErrInvalidMood,
	services.ErrInvalidEnergy,
	services.ErrInvalidSymptomDate,
	services.ErrExportRangeInvalid,
	services.ErrSettingsCycleLengthOutOfRange,
	services.ErrSettingsPeriodLengthOutOfRange,
	services.ErrSettingsPeriodLengthIncompatible,
	services.ErrUnsupportedLanguage,
}

var notFoundErrors = []error{
	services.ErrCycleNotFound,
	services.ErrSymptomNotFound,
}

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

// respondError maps validation failures to 400 and missing records to 404.
// Anything else is logged and reported as a bare 500.
func (handler *Handler) respondError(c *fiber.Ctx, err error) error {
	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			return apiError(c, fiber.StatusBadRequest, err.Error())
		}
	}
	for _, target := range notFoundErrors {
		if errors.Is(err, target) {
			return apiError(c, fiber.StatusNotFound, target.Error())
		}
	}

	handler.logger.WithError(err).WithField("path", c.Path()).Error("request failed")
	return apiError(c, fiber.StatusInternalServerError, "internal error")
}

// parseBody decodes a JSON body into out. An empty body leaves out untouched.
func parseBody(c *fiber.Ctx, out any) bool {
	if len(c.Body()) == 0 {
		return true
	}
	return c.BodyParser(out) == nil
}

func invalidBody(c *fiber.Ctx) error {
	return apiError(c, fiber.StatusBadRequest, "invalid request body")
}

func unauthorized(c *fiber.Ctx) error {
	return apiError(c, fiber.StatusUnauthorized, "unauthorized")
}
