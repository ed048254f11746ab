package services

import (
	"time"

	"github.com/terraincognita07/mycare/internal/models"
)

const (
	lutealPhaseDays       = 14
	fertileDaysBefore     = 5
	fertileDaysAfter      = 1
	futurePredictionCount = 6
)

// PredictionSource yields the latest prediction snapshot for a user, or nil
// when nothing can be predicted yet.
type PredictionSource interface {
	LatestPrediction(user *models.User, cycles []models.CycleRecord, now time.Time) (*models.PredictionSnapshot, error)
}

// BaselineForecaster projects the next cycles from the most recent logged
// start and the history averages, falling back to the user's onboarding
// lengths while the history has no usable samples.
type BaselineForecaster struct {
	location *time.Location
}

func NewBaselineForecaster(location *time.Location) *BaselineForecaster {
	if location == nil {
		location = time.UTC
	}
	return &BaselineForecaster{location: location}
}

func (forecaster *BaselineForecaster) LatestPrediction(user *models.User, cycles []models.CycleRecord, now time.Time) (*models.PredictionSnapshot, error) {
	return forecaster.Forecast(user, cycles, now), nil
}

func (forecaster *BaselineForecaster) Forecast(user *models.User, cycles []models.CycleRecord, now time.Time) *models.PredictionSnapshot {
	latest, ok := models.MostRecentCycle(cycles)
	if !ok {
		return nil
	}

	cycleLength, periodLength := ResolveCycleBaseline(user, BuildCycleHistory(cycles))
	today := TodayAt(now, forecaster.location)

	nextPeriod := latest.StartDate.AddDays(cycleLength)
	ovulation := nextPeriod.AddDays(-lutealPhaseDays)
	cycleDay := latest.StartDate.DaysUntil(today) + 1
	phase := PhaseForCycleDay(cycleDay, cycleLength, periodLength)

	snapshot := &models.PredictionSnapshot{
		CurrentPhase:        phase,
		CurrentCycleDay:     cycleDay,
		AverageCycleLength:  cycleLength,
		AveragePeriodLength: periodLength,
		DaysUntilNextPeriod: today.DaysUntil(nextPeriod),
		NextPeriodDate:      nextPeriod,
		OvulationDate:       ovulation,
		FertileWindowStart:  ovulation.AddDays(-fertileDaysBefore),
		FertileWindowEnd:    ovulation.AddDays(fertileDaysAfter),
		HormoneLevels:       HormoneLevels(cycleDay, cycleLength, periodLength),
		FuturePredictions:   make([]models.PredictedCycle, 0, futurePredictionCount),
	}

	start := nextPeriod
	for index := 0; index < futurePredictionCount; index++ {
		snapshot.FuturePredictions = append(snapshot.FuturePredictions, models.PredictedCycle{
			StartDate:     start,
			EndDate:       start.AddDays(periodLength - 1),
			OvulationDate: start.AddDays(cycleLength / 2),
		})
		start = start.AddDays(cycleLength)
	}
	return snapshot
}

// ResolveCycleBaseline prefers history averages backed by samples and uses
// the user's onboarding lengths otherwise.
func ResolveCycleBaseline(user *models.User, history CycleHistory) (int, int) {
	cycleLength, periodLength := user.BaselineLengths()
	if history.CycleLengthSamples > 0 {
		cycleLength = history.AverageCycleLength
	}
	if history.PeriodLengthSamples > 0 {
		periodLength = history.AveragePeriodLength
	}
	return cycleLength, periodLength
}

// PhaseForCycleDay places a 1-based cycle day into a phase. Days past the
// expected length stay luteal. A day before the cycle started is unknown.
func PhaseForCycleDay(cycleDay int, cycleLength int, periodLength int) models.Phase {
	switch {
	case cycleDay < 1:
		return models.PhaseUnknown
	case cycleDay <= periodLength:
		return models.PhaseMenstrual
	case cycleDay <= cycleLength/2-5:
		return models.PhaseFollicular
	case cycleDay <= cycleLength/2+1:
		return models.PhaseOvulation
	default:
		return models.PhaseLuteal
	}
}

func HormoneLevels(cycleDay int, cycleLength int, periodLength int) map[string]string {
	levels := func(estrogen, progesterone, testosterone string) map[string]string {
		return map[string]string{
			"estrogen":     estrogen,
			"progesterone": progesterone,
			"testosterone": testosterone,
		}
	}

	switch PhaseForCycleDay(cycleDay, cycleLength, periodLength) {
	case models.PhaseMenstrual:
		return levels("low", "low", "low")
	case models.PhaseFollicular:
		return levels("rising", "low", "steady")
	case models.PhaseOvulation:
		return levels("high", "low", "peak")
	case models.PhaseLuteal:
		if cycleDay <= cycleLength-1 {
			return levels("steady", "rising", "low")
		}
		return levels("falling", "falling", "low")
	default:
		return map[string]string{}
	}
}
