package services

import (
	"errors"
	"fmt"
)

var (
	ErrSettingsCycleLengthOutOfRange    = errors.New("settings cycle length out of range")
	ErrSettingsPeriodLengthOutOfRange   = errors.New("settings period length out of range")
	ErrSettingsPeriodLengthIncompatible = errors.New("settings period length incompatible with cycle length")
)

func IsValidCycleLength(value int) bool {
	return value >= 15 && value <= 90
}

func IsValidPeriodLength(value int) bool {
	return value >= 1 && value <= 14
}

// ValidateCycleBaseline checks a cycle/period pair. Ovulation, assumed
// lutealPhaseDays before the next period, must fall after the period ends.
func ValidateCycleBaseline(cycleLength int, periodLength int) error {
	if !IsValidCycleLength(cycleLength) {
		return fmt.Errorf("%w: %d", ErrSettingsCycleLengthOutOfRange, cycleLength)
	}
	if !IsValidPeriodLength(periodLength) {
		return fmt.Errorf("%w: %d", ErrSettingsPeriodLengthOutOfRange, periodLength)
	}
	if cycleLength-lutealPhaseDays <= periodLength {
		return fmt.Errorf("%w: %d/%d", ErrSettingsPeriodLengthIncompatible, cycleLength, periodLength)
	}
	return nil
}
