package insights

import (
	"fmt"

	"github.com/terraincognita07/mycare/internal/models"
)

// MinTrendHistory is the history size below which trends fall back to the placeholder series.
const MinTrendHistory = 2

var (
	placeholderCycleLengths    = []int{28, 30, 27, 29}
	placeholderPeriodDurations = []int{5, 6, 4, 5}
)

// CycleSummary is one past cycle. Length is the gap to the previous cycle
// start and Duration the bleeding days; either is nil when not logged.
type CycleSummary struct {
	Date     models.CalendarDate `json:"date"`
	Length   *int                `json:"length"`
	Duration *int                `json:"duration"`
}

type TrendPoint struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

type Series []TrendPoint

type Trends struct {
	CycleLengths    Series `json:"cycle_lengths"`
	PeriodDurations Series `json:"period_durations"`
	IsPlaceholder   bool   `json:"is_placeholder"`
}

type Averages struct {
	CycleLength  int `json:"average_cycle_length"`
	PeriodLength int `json:"average_period_length"`
}

// BuildTrends keeps history order and labels lengths C1..Cn and durations
// P1..Pn. With fewer than MinTrendHistory entries both series are the
// illustrative placeholder and IsPlaceholder is set.
func BuildTrends(history []CycleSummary) Trends {
	if len(history) < MinTrendHistory {
		return PlaceholderTrends()
	}

	trends := Trends{
		CycleLengths:    Series{},
		PeriodDurations: Series{},
	}
	for _, summary := range history {
		if summary.Length != nil {
			trends.CycleLengths = append(trends.CycleLengths, TrendPoint{
				Label: fmt.Sprintf("C%d", len(trends.CycleLengths)+1),
				Value: *summary.Length,
			})
		}
		if summary.Duration != nil {
			trends.PeriodDurations = append(trends.PeriodDurations, TrendPoint{
				Label: fmt.Sprintf("P%d", len(trends.PeriodDurations)+1),
				Value: *summary.Duration,
			})
		}
	}
	return trends
}

func PlaceholderTrends() Trends {
	return Trends{
		CycleLengths:    labelledSeries("C", placeholderCycleLengths),
		PeriodDurations: labelledSeries("P", placeholderPeriodDurations),
		IsPlaceholder:   true,
	}
}

// ResolveAverages passes provider averages through unchanged and substitutes
// the fixed defaults (28, 5) only where a value is absent.
func ResolveAverages(cycleLength *int, periodLength *int) Averages {
	averages := Averages{
		CycleLength:  models.DefaultCycleLength,
		PeriodLength: models.DefaultPeriodLength,
	}
	if cycleLength != nil {
		averages.CycleLength = *cycleLength
	}
	if periodLength != nil {
		averages.PeriodLength = *periodLength
	}
	return averages
}

func labelledSeries(prefix string, values []int) Series {
	series := make(Series, 0, len(values))
	for index, value := range values {
		series = append(series, TrendPoint{Label: fmt.Sprintf("%s%d", prefix, index+1), Value: value})
	}
	return series
}
