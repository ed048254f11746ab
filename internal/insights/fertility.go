package insights

import (
	"fmt"

	"github.com/terraincognita07/mycare/internal/models"
)

const (
	FertilityScoreLow    = 20
	FertilityScoreMedium = 60
	FertilityScorePeak   = 100
)

// The journey bar highlights this fixed share of the cycle as the fertile
// band. It is a visual band, not a window derived from the ovulation date.
const (
	FertileBandStart = 0.4
	FertileBandEnd   = 0.6
)

// FertilityScore maps a phase to one of three tiers. It is a deliberately
// coarse heuristic, not a probability: ovulation scores 100, follicular 60
// and every other phase, unknown included, 20.
func FertilityScore(phase models.Phase) int {
	switch phase {
	case models.PhaseOvulation:
		return FertilityScorePeak
	case models.PhaseFollicular:
		return FertilityScoreMedium
	default:
		return FertilityScoreLow
	}
}

// ProgressRatio is currentCycleDay / averageCycleLength clamped to [0, 1],
// so a late cycle stops at 1. A non-positive length yields 0 and
// ErrInvalidConfiguration.
func ProgressRatio(currentCycleDay int, averageCycleLength int) (float64, error) {
	if averageCycleLength <= 0 {
		return 0, fmt.Errorf("%w: average cycle length %d", ErrInvalidConfiguration, averageCycleLength)
	}
	if currentCycleDay <= 0 {
		return 0, nil
	}
	ratio := float64(currentCycleDay) / float64(averageCycleLength)
	if ratio > 1 {
		return 1, nil
	}
	return ratio, nil
}

func InFertileBand(ratio float64) bool {
	return ratio >= FertileBandStart && ratio <= FertileBandEnd
}

type Journey struct {
	Phase               models.Phase `json:"phase"`
	CycleDay            int          `json:"cycle_day"`
	ReferenceLength     int          `json:"reference_length"`
	Progress            float64      `json:"progress"`
	InFertileBand       bool         `json:"in_fertile_band"`
	FertilityScore      int          `json:"fertility_score"`
	Fertile             bool         `json:"fertile"`
	DaysUntilNextPeriod *int         `json:"days_until_next_period"`
}

// BuildJourney derives the cycle journey from a snapshot. Without a snapshot
// the journey sits on day 1 of a default-length cycle in an unknown phase.
func BuildJourney(snapshot *models.PredictionSnapshot) Journey {
	journey := Journey{
		Phase:           models.PhaseUnknown,
		CycleDay:        1,
		ReferenceLength: models.DefaultCycleLength,
	}
	if snapshot != nil {
		if snapshot.CurrentPhase != "" {
			journey.Phase = snapshot.CurrentPhase
		}
		if snapshot.CurrentCycleDay >= 1 {
			journey.CycleDay = snapshot.CurrentCycleDay
		}
		if snapshot.AverageCycleLength > 0 {
			journey.ReferenceLength = snapshot.AverageCycleLength
		}
		daysUntil := snapshot.DaysUntilNextPeriod
		journey.DaysUntilNextPeriod = &daysUntil
	}

	journey.Progress, _ = ProgressRatio(journey.CycleDay, journey.ReferenceLength)
	journey.InFertileBand = InFertileBand(journey.Progress)
	journey.FertilityScore = FertilityScore(journey.Phase)
	journey.Fertile = journey.FertilityScore > 50
	return journey
}
