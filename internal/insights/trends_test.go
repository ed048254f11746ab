package insights

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(value int) *int {
	return &value
}

func TestBuildTrendsPlaceholderForShortHistory(t *testing.T) {
	histories := map[string][]CycleSummary{
		"nil":   nil,
		"empty": {},
		"one":   {{Date: "2024-01-01", Length: intPtr(30), Duration: intPtr(5)}},
	}

	for name, history := range histories {
		t.Run(name, func(t *testing.T) {
			trends := BuildTrends(history)
			assert.True(t, trends.IsPlaceholder)
			require.Len(t, trends.CycleLengths, 4)
			require.Len(t, trends.PeriodDurations, 4)
			assert.Equal(t, TrendPoint{Label: "C1", Value: 28}, trends.CycleLengths[0])
			assert.Equal(t, TrendPoint{Label: "C4", Value: 29}, trends.CycleLengths[3])
			assert.Equal(t, TrendPoint{Label: "P2", Value: 6}, trends.PeriodDurations[1])
		})
	}
}

func TestBuildTrendsFiltersAndLabelsInInputOrder(t *testing.T) {
	history := []CycleSummary{
		{Date: "2024-01-01", Duration: intPtr(5)},
		{Date: "2024-01-29", Length: intPtr(28)},
		{Date: "2024-02-28", Length: intPtr(30), Duration: intPtr(6)},
		{Date: "2024-03-25", Length: intPtr(26), Duration: intPtr(4)},
	}

	trends := BuildTrends(history)
	assert.False(t, trends.IsPlaceholder)
	assert.Equal(t, Series{
		{Label: "C1", Value: 28},
		{Label: "C2", Value: 30},
		{Label: "C3", Value: 26},
	}, trends.CycleLengths)
	assert.Equal(t, Series{
		{Label: "P1", Value: 5},
		{Label: "P2", Value: 6},
		{Label: "P3", Value: 4},
	}, trends.PeriodDurations)
}

func TestBuildTrendsWithoutValuesIsEmptyNotPlaceholder(t *testing.T) {
	trends := BuildTrends([]CycleSummary{{Date: "2024-01-01"}, {Date: "2024-02-01"}})
	assert.False(t, trends.IsPlaceholder)
	assert.Empty(t, trends.CycleLengths)
	assert.Empty(t, trends.PeriodDurations)
	assert.NotNil(t, trends.CycleLengths)
}

func TestPlaceholderTrendsReturnsFreshCopies(t *testing.T) {
	first := PlaceholderTrends()
	first.CycleLengths[0].Value = 99

	second := PlaceholderTrends()
	assert.Equal(t, 28, second.CycleLengths[0].Value)
}

func TestResolveAverages(t *testing.T) {
	assert.Equal(t, Averages{CycleLength: 28, PeriodLength: 5}, ResolveAverages(nil, nil))
	assert.Equal(t, Averages{CycleLength: 31, PeriodLength: 5}, ResolveAverages(intPtr(31), nil))
	assert.Equal(t, Averages{CycleLength: 28, PeriodLength: 7}, ResolveAverages(nil, intPtr(7)))
}
