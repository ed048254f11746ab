package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

type ReminderType string

const (
	ReminderPeriod        ReminderType = "period"
	ReminderOvulation     ReminderType = "ovulation"
	ReminderContraceptive ReminderType = "contraceptive"
	ReminderLogs          ReminderType = "logs"
)

const (
	DefaultReminderTime       TimeOfDay = "09:00"
	DefaultReminderDaysBefore           = 1
)

var (
	ErrUnknownReminderType = errors.New("unknown reminder type")
	ErrMalformedTime       = errors.New("malformed time of day")
)

// ReminderTypes returns the fixed reminder enumeration in display order.
func ReminderTypes() []ReminderType {
	return []ReminderType{ReminderPeriod, ReminderOvulation, ReminderContraceptive, ReminderLogs}
}

func ParseReminderType(raw string) (ReminderType, error) {
	candidate := ReminderType(strings.ToLower(strings.TrimSpace(raw)))
	if !candidate.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownReminderType, raw)
	}
	return candidate, nil
}

func (reminderType ReminderType) Valid() bool {
	switch reminderType {
	case ReminderPeriod, ReminderOvulation, ReminderContraceptive, ReminderLogs:
		return true
	default:
		return false
	}
}

// UsesDaysBefore reports whether DaysBefore has meaning for the type.
func (reminderType ReminderType) UsesDaysBefore() bool {
	return reminderType == ReminderPeriod || reminderType == ReminderOvulation
}

// TimeOfDay is a local wall-clock time in zero-padded HH:MM form.
type TimeOfDay string

func ParseTimeOfDay(raw string) (TimeOfDay, error) {
	trimmed := strings.TrimSpace(raw)
	if len(trimmed) != len("15:04") {
		return "", fmt.Errorf("%w: %q", ErrMalformedTime, raw)
	}
	parsed, err := time.Parse("15:04", trimmed)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrMalformedTime, raw)
	}
	return TimeOfDay(parsed.Format("15:04")), nil
}

// Minutes returns minutes since midnight; ok is false for a malformed value.
func (value TimeOfDay) Minutes() (int, bool) {
	parsed, err := time.Parse("15:04", string(value))
	if err != nil {
		return 0, false
	}
	return parsed.Hour()*60 + parsed.Minute(), true
}

type ReminderConfig struct {
	ID         uint         `gorm:"primaryKey" json:"-"`
	UserID     uint         `gorm:"not null;uniqueIndex:uidx_reminder_user_type" json:"-"`
	Type       ReminderType `gorm:"not null;uniqueIndex:uidx_reminder_user_type" json:"type"`
	Enabled    bool         `gorm:"not null" json:"enabled"`
	Time       TimeOfDay    `gorm:"not null" json:"time"`
	DaysBefore int          `gorm:"not null" json:"days_before"`
	CreatedAt  time.Time    `json:"-"`
	UpdatedAt  time.Time    `json:"-"`
}

// DefaultReminderConfig is the base a first partial update merges over.
func DefaultReminderConfig(reminderType ReminderType) ReminderConfig {
	return ReminderConfig{
		Type:       reminderType,
		Enabled:    false,
		Time:       DefaultReminderTime,
		DaysBefore: DefaultReminderDaysBefore,
	}
}
