package models

import "time"

const DefaultLanguage = "en"

type User struct {
	ID                  uint      `gorm:"primaryKey" json:"id"`
	Name                string    `gorm:"uniqueIndex;not null" json:"name"`
	Language            string    `gorm:"not null;default:en" json:"language"`
	AverageCycleLength  int       `gorm:"not null;default:28" json:"average_cycle_length"`
	AveragePeriodLength int       `gorm:"not null;default:5" json:"average_period_length"`
	CreatedAt           time.Time `gorm:"not null" json:"created_at"`
}

// BaselineLengths returns the onboarding cycle and period lengths, falling back to defaults.
func (user *User) BaselineLengths() (int, int) {
	cycleLength, periodLength := DefaultCycleLength, DefaultPeriodLength
	if user == nil {
		return cycleLength, periodLength
	}
	if user.AverageCycleLength >= 15 && user.AverageCycleLength <= 90 {
		cycleLength = user.AverageCycleLength
	}
	if user.AveragePeriodLength >= 1 && user.AveragePeriodLength <= 14 {
		periodLength = user.AveragePeriodLength
	}
	return cycleLength, periodLength
}
