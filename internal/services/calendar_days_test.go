package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/terraincognita07/mycare/internal/insights"
	"github.com/terraincognita07/mycare/internal/models"
)

func marchCalendarService(prediction *models.PredictionSnapshot) *CalendarService {
	cycles := &stubCycleRepo{cycles: []models.CycleRecord{
		{ID: "c1", UserID: 1, StartDate: "2024-03-01", EndDate: calendarDatePtr("2024-03-05"), FlowLevel: models.FlowMedium},
	}}
	symptoms := &stubSymptomRepo{entries: []models.SymptomEntry{
		{ID: "s1", UserID: 1, Date: "2024-03-03", Cramps: 2},
		{ID: "s2", UserID: 1, Date: "2024-04-03", Cramps: 1},
	}}
	loader := NewSnapshotLoader(cycles, symptoms, fixedPredictionSource{snapshot: prediction})
	return NewCalendarService(loader, time.UTC)
}

func TestCalendarMonthResolvesStatuses(t *testing.T) {
	service := marchCalendarService(&models.PredictionSnapshot{NextPeriodDate: "2024-03-29", AveragePeriodLength: 5})
	now := time.Date(2024, time.March, 10, 9, 0, 0, 0, time.UTC)

	month, err := service.Month(&models.User{ID: 1}, "2024-03", now)
	require.NoError(t, err)
	assert.Equal(t, "2024-03", month.Month)
	assert.True(t, month.HasForecast)
	require.Len(t, month.Days, 31)

	assert.Equal(t, insights.StatusLoggedPeriod, month.Days[2].Status)
	assert.True(t, month.Days[2].HasSymptoms)
	assert.Equal(t, insights.StatusNormal, month.Days[14].Status)
	assert.Equal(t, insights.StatusPredictedPeriod, month.Days[29].Status)
	assert.True(t, month.Days[9].IsToday)
}

func TestCalendarMonthDefaultsToCurrentMonth(t *testing.T) {
	service := marchCalendarService(nil)
	now := time.Date(2024, time.February, 14, 9, 0, 0, 0, time.UTC)

	month, err := service.Month(&models.User{ID: 1}, "", now)
	require.NoError(t, err)
	assert.Equal(t, "2024-02", month.Month)
	assert.False(t, month.HasForecast)
	assert.Len(t, month.Days, 29)
}

func TestCalendarMonthRejectsMalformedSelector(t *testing.T) {
	_, err := marchCalendarService(nil).Month(&models.User{ID: 1}, "2024-13", time.Now())
	require.ErrorIs(t, err, ErrInvalidMonth)
}

func TestCalendarDayIncludesLoggedRecords(t *testing.T) {
	service := marchCalendarService(nil)

	day, err := service.Day(&models.User{ID: 1}, "2024-03-03", time.Now())
	require.NoError(t, err)
	assert.Equal(t, insights.StatusLoggedPeriod, day.Status)
	assert.True(t, day.HasSymptoms)
	require.NotNil(t, day.Cycle)
	require.NotNil(t, day.Symptom)
	assert.Equal(t, "s1", day.Symptom.ID)

	_, err = service.Day(&models.User{ID: 1}, "03-03-2024", time.Now())
	require.ErrorIs(t, err, models.ErrMalformedDate)
}
