package services

import (
	"time"

	"github.com/terraincognita07/mycare/internal/models"
)

func DateAtLocation(value time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	localized := value.In(location)
	year, month, day := localized.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, location)
}

// TodayAt returns the calendar day of now as seen in location.
func TodayAt(now time.Time, location *time.Location) models.CalendarDate {
	return models.DateOf(DateAtLocation(now, location))
}

// ParseMonth parses a YYYY-MM month selector.
func ParseMonth(raw string) (int, time.Month, error) {
	parsed, err := time.Parse("2006-01", raw)
	if err != nil {
		return 0, 0, ErrInvalidMonth
	}
	return parsed.Year(), parsed.Month(), nil
}

func nonEmpty[T any](values []T) []T {
	if values == nil {
		return []T{}
	}
	return values
}
