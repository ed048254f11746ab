package insights

import (
	"fmt"
	"time"

	"github.com/terraincognita07/mycare/internal/models"
)

type DayStatus string

const (
	StatusLoggedPeriod    DayStatus = "logged-period"
	StatusPredictedPeriod DayStatus = "predicted-period"
	StatusOvulation       DayStatus = "ovulation"
	StatusNormal          DayStatus = "normal"
)

type DayResolution struct {
	Date        models.CalendarDate `json:"date"`
	Status      DayStatus           `json:"status"`
	HasSymptoms bool                `json:"has_symptoms"`
}

type DayDetails struct {
	Date    models.CalendarDate  `json:"date"`
	Symptom *models.SymptomEntry `json:"symptom"`
	Cycle   *models.CycleRecord  `json:"cycle"`
}

type MonthDay struct {
	DayResolution
	Day     int  `json:"day"`
	IsToday bool `json:"is_today"`
}

// ResolveStatus classifies date against logged cycles and an optional
// prediction snapshot. Logged periods win over predicted periods, which win
// over ovulation days. A nil snapshot never matches.
func ResolveStatus(date models.CalendarDate, cycles []models.CycleRecord, predictions *models.PredictionSnapshot, symptoms []models.SymptomEntry) (DayResolution, error) {
	if err := date.Validate(); err != nil {
		return DayResolution{}, err
	}
	if err := validateResolverInputs(cycles, predictions); err != nil {
		return DayResolution{}, err
	}

	return DayResolution{
		Date:        date,
		Status:      classifyDay(date, cycles, predictions),
		HasSymptoms: hasSymptomsOn(date, symptoms),
	}, nil
}

// DayDetail returns the symptom entry and the logged cycle covering date, if any.
func DayDetail(date models.CalendarDate, cycles []models.CycleRecord, symptoms []models.SymptomEntry) (DayDetails, error) {
	if err := date.Validate(); err != nil {
		return DayDetails{}, err
	}
	if err := validateResolverInputs(cycles, nil); err != nil {
		return DayDetails{}, err
	}

	details := DayDetails{Date: date}
	for index := range symptoms {
		if symptoms[index].Date == date {
			entry := symptoms[index]
			details.Symptom = &entry
			break
		}
	}
	for index := range cycles {
		if cycles[index].Contains(date) {
			cycle := cycles[index]
			details.Cycle = &cycle
			break
		}
	}
	return details, nil
}

// ResolveMonth resolves every day of the given month in order.
func ResolveMonth(year int, month time.Month, today models.CalendarDate, cycles []models.CycleRecord, predictions *models.PredictionSnapshot, symptoms []models.SymptomEntry) ([]MonthDay, error) {
	if err := validateResolverInputs(cycles, predictions); err != nil {
		return nil, err
	}

	symptomDates := make(map[models.CalendarDate]bool, len(symptoms))
	for _, entry := range symptoms {
		symptomDates[entry.Date] = true
	}

	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, -1)

	days := make([]MonthDay, 0, monthEnd.Day())
	for day := monthStart; !day.After(monthEnd); day = day.AddDate(0, 0, 1) {
		date := models.DateOf(day)
		days = append(days, MonthDay{
			DayResolution: DayResolution{
				Date:        date,
				Status:      classifyDay(date, cycles, predictions),
				HasSymptoms: symptomDates[date],
			},
			Day:     day.Day(),
			IsToday: date == today,
		})
	}
	return days, nil
}

func classifyDay(date models.CalendarDate, cycles []models.CycleRecord, predictions *models.PredictionSnapshot) DayStatus {
	for _, cycle := range cycles {
		if cycle.Contains(date) {
			return StatusLoggedPeriod
		}
	}
	if predictions == nil {
		return StatusNormal
	}
	if inPredictedPeriod(date, predictions) {
		return StatusPredictedPeriod
	}
	if isPredictedOvulation(date, predictions) {
		return StatusOvulation
	}
	return StatusNormal
}

func inPredictedPeriod(date models.CalendarDate, predictions *models.PredictionSnapshot) bool {
	for _, predicted := range predictions.FuturePredictions {
		if predicted.StartDate.IsZero() {
			continue
		}
		end := predicted.EndDate
		if end.IsZero() {
			end = predicted.StartDate
		}
		if date.Between(predicted.StartDate, end) {
			return true
		}
	}

	if predictions.NextPeriodDate.IsZero() {
		return false
	}
	return date.Between(predictions.NextPeriodDate, predictedPeriodEnd(predictions))
}

// predictedPeriodEnd is the last day of the scalar next-period interval.
// A non-positive period length falls back to the default length.
func predictedPeriodEnd(predictions *models.PredictionSnapshot) models.CalendarDate {
	periodLength := predictions.AveragePeriodLength
	if periodLength <= 0 {
		periodLength = models.DefaultPeriodLength
	}
	return predictions.NextPeriodDate.AddDays(periodLength - 1)
}

func isPredictedOvulation(date models.CalendarDate, predictions *models.PredictionSnapshot) bool {
	if !predictions.OvulationDate.IsZero() && date == predictions.OvulationDate {
		return true
	}
	for _, predicted := range predictions.FuturePredictions {
		if !predicted.OvulationDate.IsZero() && date == predicted.OvulationDate {
			return true
		}
	}
	return false
}

func hasSymptomsOn(date models.CalendarDate, symptoms []models.SymptomEntry) bool {
	for _, entry := range symptoms {
		if entry.Date == date {
			return true
		}
	}
	return false
}

// validateResolverInputs rejects any non-empty date that is not canonical.
// Comparing a malformed date as a string would misclassify days silently.
func validateResolverInputs(cycles []models.CycleRecord, predictions *models.PredictionSnapshot) error {
	for _, cycle := range cycles {
		if err := cycle.StartDate.Validate(); err != nil {
			return fmt.Errorf("cycle %s start: %w", cycle.ID, err)
		}
		if cycle.EndDate != nil && !cycle.EndDate.IsZero() {
			if err := cycle.EndDate.Validate(); err != nil {
				return fmt.Errorf("cycle %s end: %w", cycle.ID, err)
			}
		}
	}
	if predictions == nil {
		return nil
	}

	optional := []models.CalendarDate{predictions.NextPeriodDate, predictions.OvulationDate}
	for _, predicted := range predictions.FuturePredictions {
		optional = append(optional, predicted.StartDate, predicted.EndDate, predicted.OvulationDate)
	}
	for _, date := range optional {
		if date.IsZero() {
			continue
		}
		if err := date.Validate(); err != nil {
			return fmt.Errorf("prediction: %w", err)
		}
	}
	return nil
}
