package services

import (
	"errors"
	"fmt"

	"github.com/terraincognita07/mycare/internal/models"
)

var ErrExportRangeInvalid = errors.New("export invalid range")

// ParseExportRange reads optional inclusive bounds. Either side may be empty.
func ParseExportRange(rawFrom string, rawTo string) (models.CalendarDate, models.CalendarDate, error) {
	from, err := optionalCalendarDate(rawFrom)
	if err != nil {
		return "", "", fmt.Errorf("from: %w", err)
	}
	to, err := optionalCalendarDate(rawTo)
	if err != nil {
		return "", "", fmt.Errorf("to: %w", err)
	}
	if !from.IsZero() && !to.IsZero() && to.Before(from) {
		return "", "", ErrExportRangeInvalid
	}
	return from, to, nil
}
