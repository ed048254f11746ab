package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/terraincognita07/mycare/internal/models"
)

func TestDateAtLocation(t *testing.T) {
	moscow := time.FixedZone("MSK", 3*60*60)
	value := time.Date(2024, time.March, 31, 22, 30, 0, 0, time.UTC)

	got := DateAtLocation(value, moscow)
	assert.Equal(t, time.Date(2024, time.April, 1, 0, 0, 0, 0, moscow), got)
	assert.Equal(t, models.CalendarDate("2024-04-01"), TodayAt(value, moscow))
	assert.Equal(t, models.CalendarDate("2024-03-31"), TodayAt(value, nil))
}

func TestParseMonth(t *testing.T) {
	year, month, err := ParseMonth("2024-02")
	require.NoError(t, err)
	assert.Equal(t, 2024, year)
	assert.Equal(t, time.February, month)

	for _, raw := range []string{"2024-2", "2024-13", "February", ""} {
		_, _, err := ParseMonth(raw)
		assert.ErrorIs(t, err, ErrInvalidMonth, raw)
	}
}

func TestSnapshotLoaderPropagatesErrors(t *testing.T) {
	user := &models.User{ID: 1}

	_, err := NewSnapshotLoader(&stubCycleRepo{listErr: errors.New("locked")}, &stubSymptomRepo{}, nil).Load(user, "", "", time.Now())
	require.Error(t, err)

	_, err = NewSnapshotLoader(&stubCycleRepo{}, &stubSymptomRepo{}, fixedPredictionSource{err: errors.New("offline")}).Load(user, "", "", time.Now())
	require.Error(t, err)

	_, err = NewSnapshotLoader(&stubCycleRepo{}, &stubSymptomRepo{}, nil).Load(nil, "", "", time.Now())
	require.Error(t, err)
}

func TestSnapshotLoaderReadsThroughScope(t *testing.T) {
	user := &models.User{ID: 1}
	scoped := &stubCycleRepo{cycles: []models.CycleRecord{{ID: "c1", UserID: 1, StartDate: "2024-03-01"}}}
	scopedSymptoms := &stubSymptomRepo{entries: []models.SymptomEntry{{ID: "s1", UserID: 1, Date: "2024-03-02"}}}

	calls := 0
	loader := NewSnapshotLoader(&stubCycleRepo{listErr: errors.New("outside scope")}, &stubSymptomRepo{}, NewBaselineForecaster(time.UTC)).
		WithReadScope(func(read func(CycleReader, SymptomReader) error) error {
			calls++
			return read(scoped, scopedSymptoms)
		})

	snapshot, err := loader.Load(user, "2024-03-01", "2024-03-31", time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	require.Len(t, snapshot.Cycles, 1)
	require.Len(t, snapshot.Symptoms, 1)
	require.NotNil(t, snapshot.Prediction)
	assert.Equal(t, models.CalendarDate("2024-03-29"), snapshot.Prediction.NextPeriodDate)

	scopeErr := errors.New("begin transaction")
	loader.WithReadScope(func(func(CycleReader, SymptomReader) error) error { return scopeErr })
	_, err = loader.Load(user, "", "", time.Now())
	require.ErrorIs(t, err, scopeErr)
}
