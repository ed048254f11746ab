package services

import (
	"fmt"

	"github.com/terraincognita07/mycare/internal/insights"
	"github.com/terraincognita07/mycare/internal/models"
)

type ReminderRepository interface {
	ListByUser(userID uint) ([]models.ReminderConfig, error)
	Upsert(userID uint, reminderType models.ReminderType, update insights.ReminderUpdate) (models.ReminderConfig, error)
	DeleteByType(userID uint, reminderType models.ReminderType) error
}

// ReminderService applies partial reminder edits locally first and then
// persists them. Both sides merge with insights.MergeReminderConfig, so the
// stored row always matches the local result.
type ReminderService struct {
	reminders ReminderRepository
}

func NewReminderService(reminders ReminderRepository) *ReminderService {
	return &ReminderService{reminders: reminders}
}

// ListReminders returns one config per reminder type in enumeration order.
// Types the user never configured are reported with their defaults.
func (service *ReminderService) ListReminders(userID uint) ([]models.ReminderConfig, error) {
	store, err := service.loadStore(userID)
	if err != nil {
		return nil, err
	}

	configs := make([]models.ReminderConfig, 0, len(models.ReminderTypes()))
	for _, reminderType := range models.ReminderTypes() {
		configs = append(configs, store.Effective(reminderType))
	}
	return configs, nil
}

func (service *ReminderService) UpdateReminder(userID uint, rawType string, update insights.ReminderUpdate) (models.ReminderConfig, error) {
	reminderType, err := models.ParseReminderType(rawType)
	if err != nil {
		return models.ReminderConfig{}, err
	}
	update, err = update.Normalize()
	if err != nil {
		return models.ReminderConfig{}, err
	}

	store, err := service.loadStore(userID)
	if err != nil {
		return models.ReminderConfig{}, err
	}
	local, err := store.Upsert(reminderType, update)
	if err != nil {
		return models.ReminderConfig{}, err
	}

	for _, pending := range store.Pending() {
		if pending.Type != reminderType {
			continue
		}
		persisted, err := service.reminders.Upsert(userID, reminderType, update)
		if err != nil {
			return models.ReminderConfig{}, fmt.Errorf("persist reminder %s: %w", reminderType, err)
		}
		store.MarkCommitted(persisted)
		return persisted, nil
	}
	return local, nil
}

func (service *ReminderService) DeleteReminder(userID uint, rawType string) error {
	reminderType, err := models.ParseReminderType(rawType)
	if err != nil {
		return err
	}
	if err := service.reminders.DeleteByType(userID, reminderType); err != nil {
		return fmt.Errorf("delete reminder %s: %w", reminderType, err)
	}
	return nil
}

func (service *ReminderService) loadStore(userID uint) (*insights.ReminderConfigStore, error) {
	existing, err := service.reminders.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("load reminders: %w", err)
	}
	return insights.NewReminderConfigStore(existing...), nil
}
