package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/terraincognita07/mycare/internal/models"
)

func TestWaterIntakeTrackerCountsAndFloorsAtZero(t *testing.T) {
	ctx := context.Background()
	tracker := NewWaterIntakeTracker(newMemoryKeyValueStore(), time.UTC)
	now := time.Date(2024, time.March, 10, 8, 0, 0, 0, time.UTC)

	intake, err := tracker.Today(ctx, 1, now)
	require.NoError(t, err)
	assert.Equal(t, WaterIntake{Date: "2024-03-10", Cups: 0, Goal: 8}, intake)

	intake, err = tracker.Add(ctx, 1, 2, now)
	require.NoError(t, err)
	assert.Equal(t, 2, intake.Cups)

	intake, err = tracker.Add(ctx, 1, -5, now)
	require.NoError(t, err)
	assert.Equal(t, 0, intake.Cups)
}

func TestWaterIntakeTrackerResetsOnNewDay(t *testing.T) {
	ctx := context.Background()
	store := newMemoryKeyValueStore()
	tracker := NewWaterIntakeTracker(store, time.UTC)

	_, err := tracker.Add(ctx, 1, 4, time.Date(2024, time.March, 10, 22, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	_, err = tracker.Add(ctx, 2, 1, time.Date(2024, time.March, 10, 22, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	intake, err := tracker.Today(ctx, 1, time.Date(2024, time.March, 11, 6, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, models.CalendarDate("2024-03-11"), intake.Date)
	assert.Equal(t, 0, intake.Cups)

	intake, err = tracker.Add(ctx, 1, 1, time.Date(2024, time.March, 11, 6, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 1, intake.Cups)
	assert.Equal(t, "2024-03-10|1", store.values["water:2"])
}

func TestWaterIntakeTrackerIgnoresCorruptValues(t *testing.T) {
	store := newMemoryKeyValueStore()
	store.values["water:1"] = "garbage"
	tracker := NewWaterIntakeTracker(store, time.UTC)

	intake, err := tracker.Today(context.Background(), 1, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 0, intake.Cups)
}
