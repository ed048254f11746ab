package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	CalendarDateLayout = "2006-01-02"

	// MaxCalendarYear is the last year ParseCalendarDate accepts. Projections
	// from any accepted date stay far inside four-digit years.
	MaxCalendarYear = 9000

	firstRepresentableDate CalendarDate = "0001-01-01"
	lastRepresentableDate  CalendarDate = "9999-12-31"
)

var ErrMalformedDate = errors.New("malformed calendar date")

// CalendarDate is a day without a time-of-day component, stored as a
// zero-padded YYYY-MM-DD string with a four-digit year. Within that form
// lexicographic order and chronological order are the same, so dates
// compare as plain strings. Arithmetic never leaves the four-digit range.
type CalendarDate string

// ParseCalendarDate reads a user-supplied date. Years past MaxCalendarYear are rejected.
func ParseCalendarDate(raw string) (CalendarDate, error) {
	return parseCalendarDate(raw, MaxCalendarYear)
}

func parseCalendarDate(raw string, maxYear int) (CalendarDate, error) {
	trimmed := strings.TrimSpace(raw)
	if len(trimmed) != len(CalendarDateLayout) {
		return "", fmt.Errorf("%w: %q", ErrMalformedDate, raw)
	}
	parsed, err := time.Parse(CalendarDateLayout, trimmed)
	if err != nil || parsed.Year() < 1 || parsed.Year() > maxYear {
		return "", fmt.Errorf("%w: %q", ErrMalformedDate, raw)
	}
	return CalendarDate(parsed.Format(CalendarDateLayout)), nil
}

func MustCalendarDate(raw string) CalendarDate {
	date, err := ParseCalendarDate(raw)
	if err != nil {
		panic(err)
	}
	return date
}

// DateOf returns the calendar day of value in its own location, clamped to
// years 0001-9999.
func DateOf(value time.Time) CalendarDate {
	year, month, day := value.Date()
	switch {
	case year < 1:
		return firstRepresentableDate
	case year > 9999:
		return lastRepresentableDate
	}
	return CalendarDate(time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Format(CalendarDateLayout))
}

// Validate reports ErrMalformedDate unless the date is already in canonical
// form. Projected dates may lie past MaxCalendarYear.
func (date CalendarDate) Validate() error {
	parsed, err := parseCalendarDate(string(date), 9999)
	if err != nil {
		return err
	}
	if parsed != date {
		return fmt.Errorf("%w: %q", ErrMalformedDate, string(date))
	}
	return nil
}

func (date CalendarDate) IsZero() bool {
	return date == ""
}

func (date CalendarDate) String() string {
	return string(date)
}

// Time returns midnight UTC of the date, or the zero time for a malformed date.
func (date CalendarDate) Time() time.Time {
	parsed, err := time.Parse(CalendarDateLayout, string(date))
	if err != nil {
		return time.Time{}
	}
	return parsed
}

// AddDays saturates at 0001-01-01 and 9999-12-31.
func (date CalendarDate) AddDays(days int) CalendarDate {
	return DateOf(date.Time().AddDate(0, 0, days))
}

// DaysUntil returns the signed number of days from date to other.
func (date CalendarDate) DaysUntil(other CalendarDate) int {
	return int(other.Time().Sub(date.Time()).Hours() / 24)
}

func (date CalendarDate) Before(other CalendarDate) bool {
	return date < other
}

func (date CalendarDate) After(other CalendarDate) bool {
	return date > other
}

// Between reports whether date lies in [start, end], both bounds inclusive.
func (date CalendarDate) Between(start CalendarDate, end CalendarDate) bool {
	return date >= start && date <= end
}
