package insights

import (
	"fmt"

	"github.com/terraincognita07/mycare/internal/models"
)

// ReminderUpdate is a partial reminder edit. Nil fields are left untouched.
type ReminderUpdate struct {
	Enabled    *bool             `json:"enabled,omitempty"`
	Time       *models.TimeOfDay `json:"time,omitempty"`
	DaysBefore *int              `json:"days_before,omitempty"`
}

func (update ReminderUpdate) IsEmpty() bool {
	return update.Enabled == nil && update.Time == nil && update.DaysBefore == nil
}

// Normalize checks only the fields the update carries and returns a copy
// whose Time is in canonical HH:MM form.
func (update ReminderUpdate) Normalize() (ReminderUpdate, error) {
	if update.Time != nil {
		canonical, err := models.ParseTimeOfDay(string(*update.Time))
		if err != nil {
			return ReminderUpdate{}, err
		}
		update.Time = &canonical
	}
	if update.DaysBefore != nil && *update.DaysBefore < 0 {
		return ReminderUpdate{}, fmt.Errorf("%w: days before %d", ErrInvalidConfiguration, *update.DaysBefore)
	}
	return update, nil
}

// MergeReminderConfig overlays update on base field by field: Enabled, Time
// and DaysBefore take the update's value when present and keep base's value
// otherwise. Identity fields (ID, UserID, Type) always come from base.
// update must already be normalized.
// Local and persisted reminders both merge through this function.
func MergeReminderConfig(base models.ReminderConfig, update ReminderUpdate) models.ReminderConfig {
	merged := base
	if update.Enabled != nil {
		merged.Enabled = *update.Enabled
	}
	if update.Time != nil {
		merged.Time = *update.Time
	}
	if update.DaysBefore != nil {
		merged.DaysBefore = *update.DaysBefore
	}
	return merged
}

// ReminderConfigStore keeps at most one config per reminder type for a
// single session, together with the edits not yet committed upstream.
// It is not safe for concurrent use.
type ReminderConfigStore struct {
	configs map[models.ReminderType]models.ReminderConfig
	pending map[models.ReminderType]bool
}

// NewReminderConfigStore seeds the store with already persisted configs.
// Configs with an unknown type are skipped; a repeated type keeps the last one.
func NewReminderConfigStore(existing ...models.ReminderConfig) *ReminderConfigStore {
	store := &ReminderConfigStore{
		configs: make(map[models.ReminderType]models.ReminderConfig, len(models.ReminderTypes())),
		pending: make(map[models.ReminderType]bool),
	}
	for _, config := range existing {
		if !config.Type.Valid() {
			continue
		}
		store.configs[config.Type] = config
	}
	return store
}

// Upsert merges update over the stored config for reminderType, or over the
// default config when none exists, and replaces the stored entry. Applying
// the same update again yields the same config.
func (store *ReminderConfigStore) Upsert(reminderType models.ReminderType, update ReminderUpdate) (models.ReminderConfig, error) {
	if !reminderType.Valid() {
		return models.ReminderConfig{}, fmt.Errorf("%w: %q", models.ErrUnknownReminderType, string(reminderType))
	}
	update, err := update.Normalize()
	if err != nil {
		return models.ReminderConfig{}, err
	}

	base, exists := store.configs[reminderType]
	if !exists {
		base = models.DefaultReminderConfig(reminderType)
	}
	merged := MergeReminderConfig(base, update)

	if !exists || merged != base {
		store.pending[reminderType] = true
	}
	store.configs[reminderType] = merged
	return merged, nil
}

func (store *ReminderConfigStore) Get(reminderType models.ReminderType) (models.ReminderConfig, bool) {
	config, ok := store.configs[reminderType]
	return config, ok
}

// Effective returns the stored config, or the default one for a type never updated.
func (store *ReminderConfigStore) Effective(reminderType models.ReminderType) models.ReminderConfig {
	if config, ok := store.configs[reminderType]; ok {
		return config
	}
	return models.DefaultReminderConfig(reminderType)
}

// List returns stored configs in enumeration order.
func (store *ReminderConfigStore) List() []models.ReminderConfig {
	configs := make([]models.ReminderConfig, 0, len(store.configs))
	for _, reminderType := range models.ReminderTypes() {
		if config, ok := store.configs[reminderType]; ok {
			configs = append(configs, config)
		}
	}
	return configs
}

// Pending returns configs edited since the last commit, in enumeration order.
func (store *ReminderConfigStore) Pending() []models.ReminderConfig {
	configs := make([]models.ReminderConfig, 0, len(store.pending))
	for _, reminderType := range models.ReminderTypes() {
		if store.pending[reminderType] {
			configs = append(configs, store.configs[reminderType])
		}
	}
	return configs
}

// MarkCommitted records that the edit for reminderType reached the remote store.
// The committed config replaces the local one so persisted identity fields are kept.
func (store *ReminderConfigStore) MarkCommitted(committed models.ReminderConfig) {
	if !committed.Type.Valid() {
		return
	}
	store.configs[committed.Type] = committed
	delete(store.pending, committed.Type)
}

func (store *ReminderConfigStore) Remove(reminderType models.ReminderType) {
	delete(store.configs, reminderType)
	delete(store.pending, reminderType)
}
