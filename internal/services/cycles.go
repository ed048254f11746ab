package services

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/terraincognita07/mycare/internal/insights"
	"github.com/terraincognita07/mycare/internal/models"
	"gorm.io/gorm"
)

var (
	ErrInvalidCycleRange = errors.New("cycle end date is before start date")
	ErrInvalidFlowLevel  = errors.New("invalid flow level")
	ErrCycleTooLong      = errors.New("cycle spans too many days")
	ErrCycleNotFound     = errors.New("cycle not found")
	ErrInvalidMonth      = errors.New("invalid month")
)

const (
	minCountedPeriodLength = 1
	maxCountedPeriodLength = 14
	minCountedCycleLength  = 15
	maxCountedCycleLength  = 60
	maxNotesLength         = 2000
	maxLoggedCycleDays     = 90
)

// CycleHistory summarizes logged cycles oldest first.
type CycleHistory struct {
	AverageCycleLength  int                     `json:"average_cycle_length"`
	AveragePeriodLength int                     `json:"average_period_length"`
	CycleCount          int                     `json:"cycle_count"`
	History             []insights.CycleSummary `json:"history"`
	// Sample counts behind the averages; zero means the default was used.
	CycleLengthSamples  int `json:"-"`
	PeriodLengthSamples int `json:"-"`
}

// BuildCycleHistory orders cycles by start date and derives each cycle's
// length (gap to the previous start) and duration (inclusive bleeding days).
// Only plausible values count toward the averages: durations of 1-14 days
// and lengths of 15-60 days.
func BuildCycleHistory(cycles []models.CycleRecord) CycleHistory {
	history := CycleHistory{
		AverageCycleLength:  models.DefaultCycleLength,
		AveragePeriodLength: models.DefaultPeriodLength,
		CycleCount:          len(cycles),
		History:             []insights.CycleSummary{},
	}
	if len(cycles) == 0 {
		return history
	}

	sorted := make([]models.CycleRecord, len(cycles))
	copy(sorted, cycles)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartDate < sorted[j].StartDate
	})

	cycleLengths := make([]int, 0, len(sorted))
	periodLengths := make([]int, 0, len(sorted))
	for index, cycle := range sorted {
		summary := insights.CycleSummary{Date: cycle.StartDate}

		if duration, ok := cycle.Duration(); ok {
			summary.Duration = &duration
			if duration >= minCountedPeriodLength && duration <= maxCountedPeriodLength {
				periodLengths = append(periodLengths, duration)
			}
		}
		if index > 0 {
			gap := sorted[index-1].StartDate.DaysUntil(cycle.StartDate)
			summary.Length = &gap
			if gap >= minCountedCycleLength && gap <= maxCountedCycleLength {
				cycleLengths = append(cycleLengths, gap)
			}
		}
		history.History = append(history.History, summary)
	}

	if len(cycleLengths) > 0 {
		history.AverageCycleLength = roundedAverage(cycleLengths)
		history.CycleLengthSamples = len(cycleLengths)
	}
	if len(periodLengths) > 0 {
		history.AveragePeriodLength = roundedAverage(periodLengths)
		history.PeriodLengthSamples = len(periodLengths)
	}
	return history
}

// roundedAverage rounds half to even so 28.5 becomes 28.
func roundedAverage(values []int) int {
	total := 0
	for _, value := range values {
		total += value
	}
	return int(math.RoundToEven(float64(total) / float64(len(values))))
}

type CycleRepository interface {
	ListByUser(userID uint) ([]models.CycleRecord, error)
	FindByIDForUser(cycleID string, userID uint) (models.CycleRecord, error)
	Create(cycle *models.CycleRecord) error
	Save(cycle *models.CycleRecord) error
	Delete(cycle *models.CycleRecord) error
}

type CycleInput struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	FlowLevel string `json:"flow_level"`
	Notes     string `json:"notes"`
}

type CycleService struct {
	cycles CycleRepository
	now    func() time.Time
}

func NewCycleService(cycles CycleRepository) *CycleService {
	return &CycleService{cycles: cycles, now: time.Now}
}

// ListCycles returns the user's cycles most recent first.
func (service *CycleService) ListCycles(userID uint) ([]models.CycleRecord, error) {
	cycles, err := service.cycles.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	return models.SortCyclesByStartDesc(cycles), nil
}

func (service *CycleService) CreateCycle(userID uint, input CycleInput) (models.CycleRecord, error) {
	cycle := models.CycleRecord{
		ID:        uuid.NewString(),
		UserID:    userID,
		CreatedAt: service.now().UTC(),
	}
	if err := applyCycleInput(&cycle, input); err != nil {
		return models.CycleRecord{}, err
	}
	if err := service.cycles.Create(&cycle); err != nil {
		return models.CycleRecord{}, fmt.Errorf("create cycle: %w", err)
	}
	return cycle, nil
}

func (service *CycleService) UpdateCycle(userID uint, cycleID string, input CycleInput) (models.CycleRecord, error) {
	cycle, err := service.cycles.FindByIDForUser(cycleID, userID)
	if err != nil {
		return models.CycleRecord{}, lookupError(err, ErrCycleNotFound, "load cycle")
	}
	if err := applyCycleInput(&cycle, input); err != nil {
		return models.CycleRecord{}, err
	}
	if err := service.cycles.Save(&cycle); err != nil {
		return models.CycleRecord{}, fmt.Errorf("update cycle: %w", err)
	}
	return cycle, nil
}

func (service *CycleService) DeleteCycle(userID uint, cycleID string) error {
	cycle, err := service.cycles.FindByIDForUser(cycleID, userID)
	if err != nil {
		return lookupError(err, ErrCycleNotFound, "load cycle")
	}
	if err := service.cycles.Delete(&cycle); err != nil {
		return fmt.Errorf("delete cycle: %w", err)
	}
	return nil
}

func applyCycleInput(cycle *models.CycleRecord, input CycleInput) error {
	startDate, err := models.ParseCalendarDate(input.StartDate)
	if err != nil {
		return err
	}

	var endDate *models.CalendarDate
	if strings.TrimSpace(input.EndDate) != "" {
		parsed, err := models.ParseCalendarDate(input.EndDate)
		if err != nil {
			return err
		}
		if parsed.Before(startDate) {
			return ErrInvalidCycleRange
		}
		if startDate.DaysUntil(parsed)+1 > maxLoggedCycleDays {
			return fmt.Errorf("%w: more than %d", ErrCycleTooLong, maxLoggedCycleDays)
		}
		endDate = &parsed
	}

	flow := models.FlowLevel(strings.ToLower(strings.TrimSpace(input.FlowLevel)))
	if flow == "" {
		flow = models.FlowMedium
	}
	if !flow.Valid() {
		return ErrInvalidFlowLevel
	}

	cycle.StartDate = startDate
	cycle.EndDate = endDate
	cycle.FlowLevel = flow
	cycle.Notes = truncateNotes(input.Notes)
	return nil
}

// lookupError maps a missing row to notFound and wraps any other failure.
func lookupError(err error, notFound error, operation string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return fmt.Errorf("%s: %w", operation, err)
}

func truncateNotes(notes string) string {
	notes = strings.TrimSpace(notes)
	runes := []rune(notes)
	if len(runes) > maxNotesLength {
		return string(runes[:maxNotesLength])
	}
	return notes
}
