package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/terraincognita07/mycare/internal/models"
)

const DefaultWaterGoal = 8

// KeyValueStore is a small string store. Get reports false for a missing key.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string) error
}

type WaterIntake struct {
	Date models.CalendarDate `json:"date"`
	Cups int                 `json:"cups"`
	Goal int                 `json:"goal"`
}

// WaterIntakeTracker counts cups per user for the current day. A stored
// count from an earlier day reads as zero.
type WaterIntakeTracker struct {
	store    KeyValueStore
	location *time.Location
	goal     int
	mu       sync.Mutex
}

func NewWaterIntakeTracker(store KeyValueStore, location *time.Location) *WaterIntakeTracker {
	if location == nil {
		location = time.UTC
	}
	return &WaterIntakeTracker{store: store, location: location, goal: DefaultWaterGoal}
}

func (tracker *WaterIntakeTracker) Today(ctx context.Context, userID uint, now time.Time) (WaterIntake, error) {
	today := TodayAt(now, tracker.location)
	cups, err := tracker.read(ctx, userID, today)
	if err != nil {
		return WaterIntake{}, err
	}
	return WaterIntake{Date: today, Cups: cups, Goal: tracker.goal}, nil
}

// Add applies delta to today's count. The count never drops below zero.
func (tracker *WaterIntakeTracker) Add(ctx context.Context, userID uint, delta int, now time.Time) (WaterIntake, error) {
	tracker.mu.Lock()
	defer tracker.mu.Unlock()

	today := TodayAt(now, tracker.location)
	cups, err := tracker.read(ctx, userID, today)
	if err != nil {
		return WaterIntake{}, err
	}
	cups += delta
	if cups < 0 {
		cups = 0
	}

	value := fmt.Sprintf("%s|%d", today, cups)
	if err := tracker.store.Set(ctx, waterKey(userID), value); err != nil {
		return WaterIntake{}, fmt.Errorf("store water intake: %w", err)
	}
	return WaterIntake{Date: today, Cups: cups, Goal: tracker.goal}, nil
}

func (tracker *WaterIntakeTracker) read(ctx context.Context, userID uint, today models.CalendarDate) (int, error) {
	raw, ok, err := tracker.store.Get(ctx, waterKey(userID))
	if err != nil {
		return 0, fmt.Errorf("read water intake: %w", err)
	}
	if !ok {
		return 0, nil
	}

	date, count, found := strings.Cut(raw, "|")
	if !found || models.CalendarDate(date) != today {
		return 0, nil
	}
	cups, err := strconv.Atoi(count)
	if err != nil || cups < 0 {
		return 0, nil
	}
	return cups, nil
}

func waterKey(userID uint) string {
	return fmt.Sprintf("water:%d", userID)
}
