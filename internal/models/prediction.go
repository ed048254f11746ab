package models

type Phase string

const (
	PhaseMenstrual  Phase = "menstrual"
	PhaseFollicular Phase = "follicular"
	PhaseOvulation  Phase = "ovulation"
	PhaseLuteal     Phase = "luteal"
	PhaseUnknown    Phase = "unknown"
)

type PredictedCycle struct {
	StartDate     CalendarDate `json:"start_date"`
	EndDate       CalendarDate `json:"end_date"`
	OvulationDate CalendarDate `json:"ovulation_date"`
}

// PredictionSnapshot is produced by an external forecaster and consumed read-only.
type PredictionSnapshot struct {
	CurrentPhase        Phase             `json:"current_phase"`
	CurrentCycleDay     int               `json:"current_cycle_day"`
	AverageCycleLength  int               `json:"average_cycle_length"`
	AveragePeriodLength int               `json:"average_period_length"`
	DaysUntilNextPeriod int               `json:"days_until_next_period"`
	NextPeriodDate      CalendarDate      `json:"next_period_date"`
	OvulationDate       CalendarDate      `json:"ovulation_date"`
	FertileWindowStart  CalendarDate      `json:"fertile_window_start,omitempty"`
	FertileWindowEnd    CalendarDate      `json:"fertile_window_end,omitempty"`
	HormoneLevels       map[string]string `json:"hormone_levels"`
	FuturePredictions   []PredictedCycle  `json:"future_predictions"`
}
