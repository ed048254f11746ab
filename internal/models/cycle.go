package models

import (
	"sort"
	"time"
)

type FlowLevel string

const (
	FlowSpotting FlowLevel = "spotting"
	FlowLight    FlowLevel = "light"
	FlowMedium   FlowLevel = "medium"
	FlowHeavy    FlowLevel = "heavy"
)

const (
	DefaultCycleLength  = 28
	DefaultPeriodLength = 5
)

func (flow FlowLevel) Valid() bool {
	switch flow {
	case FlowSpotting, FlowLight, FlowMedium, FlowHeavy:
		return true
	default:
		return false
	}
}

// CycleRecord is one logged period. A record without EndDate covers its start day only.
type CycleRecord struct {
	ID        string        `gorm:"primaryKey" json:"id"`
	UserID    uint          `gorm:"not null;index" json:"-"`
	StartDate CalendarDate  `gorm:"type:text;not null;index" json:"start_date"`
	EndDate   *CalendarDate `gorm:"type:text" json:"end_date"`
	FlowLevel FlowLevel     `gorm:"not null;default:medium" json:"flow_level"`
	Notes     string        `json:"notes"`
	CreatedAt time.Time     `json:"created_at"`
}

func (cycle CycleRecord) LastDay() CalendarDate {
	if cycle.EndDate != nil && !cycle.EndDate.IsZero() {
		return *cycle.EndDate
	}
	return cycle.StartDate
}

func (cycle CycleRecord) Contains(date CalendarDate) bool {
	return date.Between(cycle.StartDate, cycle.LastDay())
}

// Duration is the inclusive day count between start and end. Open cycles have none.
func (cycle CycleRecord) Duration() (int, bool) {
	if cycle.EndDate == nil || cycle.EndDate.IsZero() {
		return 0, false
	}
	return cycle.StartDate.DaysUntil(*cycle.EndDate) + 1, true
}

// SortCyclesByStartDesc returns a copy ordered most recent first.
func SortCyclesByStartDesc(cycles []CycleRecord) []CycleRecord {
	sorted := make([]CycleRecord, len(cycles))
	copy(sorted, cycles)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartDate > sorted[j].StartDate
	})
	return sorted
}

func MostRecentCycle(cycles []CycleRecord) (CycleRecord, bool) {
	if len(cycles) == 0 {
		return CycleRecord{}, false
	}
	return SortCyclesByStartDesc(cycles)[0], true
}
