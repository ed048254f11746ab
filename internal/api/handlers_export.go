package api

import (
	"bytes"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/mycare/internal/models"
	"github.com/terraincognita07/mycare/internal/services"
)

type exportRequest struct {
	userID uint
	from   models.CalendarDate
	to     models.CalendarDate
}

func (handler *Handler) ExportSummary(c *fiber.Ctx) error {
	request, ok, err := handler.parseExportRequest(c)
	if !ok {
		return err
	}
	summary, err := handler.export.BuildSummary(request.userID, request.from, request.to)
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.JSON(summary)
}

func (handler *Handler) ExportJSON(c *fiber.Ctx) error {
	request, ok, err := handler.parseExportRequest(c)
	if !ok {
		return err
	}
	entries, err := handler.export.BuildEntries(request.userID, request.from, request.to)
	if err != nil {
		return handler.respondError(c, err)
	}
	setExportAttachmentHeaders(c, handler.exportFilename("json"))
	return c.JSON(entries)
}

func (handler *Handler) ExportCSV(c *fiber.Ctx) error {
	request, ok, err := handler.parseExportRequest(c)
	if !ok {
		return err
	}
	entries, err := handler.export.BuildEntries(request.userID, request.from, request.to)
	if err != nil {
		return handler.respondError(c, err)
	}

	var output bytes.Buffer
	if err := services.WriteExportCSV(&output, entries); err != nil {
		return handler.respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	setExportAttachmentHeaders(c, handler.exportFilename("csv"))
	return c.Send(output.Bytes())
}

// parseExportRequest writes the error response itself when ok is false.
func (handler *Handler) parseExportRequest(c *fiber.Ctx) (exportRequest, bool, error) {
	user, ok := currentUser(c)
	if !ok {
		return exportRequest{}, false, unauthorized(c)
	}
	from, to, err := services.ParseExportRange(c.Query("from"), c.Query("to"))
	if err != nil {
		return exportRequest{}, false, handler.respondError(c, err)
	}
	return exportRequest{userID: user.ID, from: from, to: to}, true, nil
}

func (handler *Handler) exportFilename(extension string) string {
	return fmt.Sprintf("mycare-export-%s.%s", models.DateOf(handler.now()), extension)
}

func setExportAttachmentHeaders(c *fiber.Ctx, filename string) {
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	c.Set(fiber.HeaderCacheControl, "no-store")
}
