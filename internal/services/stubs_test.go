package services

import (
	"context"
	"sync"
	"time"

	"github.com/terraincognita07/mycare/internal/insights"
	"github.com/terraincognita07/mycare/internal/models"
	"gorm.io/gorm"
)

var errStubNotFound = gorm.ErrRecordNotFound

func calendarDatePtr(raw string) *models.CalendarDate {
	date := models.MustCalendarDate(raw)
	return &date
}

type stubCycleRepo struct {
	cycles  []models.CycleRecord
	listErr error
	findErr error
}

func (stub *stubCycleRepo) ListByUser(userID uint) ([]models.CycleRecord, error) {
	if stub.listErr != nil {
		return nil, stub.listErr
	}
	result := make([]models.CycleRecord, 0, len(stub.cycles))
	for _, cycle := range stub.cycles {
		if cycle.UserID == userID {
			result = append(result, cycle)
		}
	}
	return result, nil
}

func (stub *stubCycleRepo) FindByIDForUser(cycleID string, userID uint) (models.CycleRecord, error) {
	if stub.findErr != nil {
		return models.CycleRecord{}, stub.findErr
	}
	for _, cycle := range stub.cycles {
		if cycle.ID == cycleID && cycle.UserID == userID {
			return cycle, nil
		}
	}
	return models.CycleRecord{}, errStubNotFound
}

func (stub *stubCycleRepo) Create(cycle *models.CycleRecord) error {
	stub.cycles = append(stub.cycles, *cycle)
	return nil
}

func (stub *stubCycleRepo) Save(cycle *models.CycleRecord) error {
	for index := range stub.cycles {
		if stub.cycles[index].ID == cycle.ID {
			stub.cycles[index] = *cycle
			return nil
		}
	}
	return errStubNotFound
}

func (stub *stubCycleRepo) Delete(cycle *models.CycleRecord) error {
	for index := range stub.cycles {
		if stub.cycles[index].ID == cycle.ID {
			stub.cycles = append(stub.cycles[:index], stub.cycles[index+1:]...)
			return nil
		}
	}
	return errStubNotFound
}

type stubSymptomRepo struct {
	entries []models.SymptomEntry
	findErr error
}

func (stub *stubSymptomRepo) ListByUser(userID uint, from models.CalendarDate, to models.CalendarDate) ([]models.SymptomEntry, error) {
	result := make([]models.SymptomEntry, 0)
	for _, entry := range stub.entries {
		if entry.UserID != userID {
			continue
		}
		if !from.IsZero() && entry.Date.Before(from) {
			continue
		}
		if !to.IsZero() && entry.Date.After(to) {
			continue
		}
		result = append(result, entry)
	}
	return result, nil
}

func (stub *stubSymptomRepo) FindByDate(userID uint, date models.CalendarDate) (models.SymptomEntry, error) {
	if stub.findErr != nil {
		return models.SymptomEntry{}, stub.findErr
	}
	for _, entry := range stub.entries {
		if entry.UserID == userID && entry.Date == date {
			return entry, nil
		}
	}
	return models.SymptomEntry{}, errStubNotFound
}

func (stub *stubSymptomRepo) UpsertByDate(entry *models.SymptomEntry) error {
	for index := range stub.entries {
		existing := stub.entries[index]
		if existing.UserID == entry.UserID && existing.Date == entry.Date {
			entry.ID = existing.ID
			entry.CreatedAt = existing.CreatedAt
			stub.entries[index] = *entry
			return nil
		}
	}
	stub.entries = append(stub.entries, *entry)
	return nil
}

type stubReminderRepo struct {
	configs    []models.ReminderConfig
	upserts    int
	nextID     uint
	upsertErr  error
	deletedFor []models.ReminderType
}

func (stub *stubReminderRepo) ListByUser(userID uint) ([]models.ReminderConfig, error) {
	result := make([]models.ReminderConfig, 0)
	for _, config := range stub.configs {
		if config.UserID == userID {
			result = append(result, config)
		}
	}
	return result, nil
}

func (stub *stubReminderRepo) Upsert(userID uint, reminderType models.ReminderType, update insights.ReminderUpdate) (models.ReminderConfig, error) {
	if stub.upsertErr != nil {
		return models.ReminderConfig{}, stub.upsertErr
	}
	stub.upserts++
	for index := range stub.configs {
		if stub.configs[index].UserID == userID && stub.configs[index].Type == reminderType {
			stub.configs[index] = insights.MergeReminderConfig(stub.configs[index], update)
			return stub.configs[index], nil
		}
	}
	stub.nextID++
	base := models.DefaultReminderConfig(reminderType)
	base.ID = stub.nextID
	base.UserID = userID
	created := insights.MergeReminderConfig(base, update)
	stub.configs = append(stub.configs, created)
	return created, nil
}

func (stub *stubReminderRepo) DeleteByType(userID uint, reminderType models.ReminderType) error {
	stub.deletedFor = append(stub.deletedFor, reminderType)
	kept := stub.configs[:0]
	for _, config := range stub.configs {
		if config.UserID == userID && config.Type == reminderType {
			continue
		}
		kept = append(kept, config)
	}
	stub.configs = kept
	return nil
}

type stubUserLister struct {
	users []models.User
}

func (stub *stubUserLister) List() ([]models.User, error) {
	return stub.users, nil
}

type fixedPredictionSource struct {
	snapshot *models.PredictionSnapshot
	err      error
}

func (source fixedPredictionSource) LatestPrediction(*models.User, []models.CycleRecord, time.Time) (*models.PredictionSnapshot, error) {
	return source.snapshot, source.err
}

type memoryKeyValueStore struct {
	mu     sync.Mutex
	values map[string]string
}

func newMemoryKeyValueStore() *memoryKeyValueStore {
	return &memoryKeyValueStore{values: map[string]string{}}
}

func (store *memoryKeyValueStore) Get(_ context.Context, key string) (string, bool, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	value, ok := store.values[key]
	return value, ok, nil
}

func (store *memoryKeyValueStore) Set(_ context.Context, key string, value string) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.values[key] = value
	return nil
}
