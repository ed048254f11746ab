package db

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/terraincognita07/mycare/internal/insights"
	"github.com/terraincognita07/mycare/internal/models"
)

func createTestUser(t *testing.T, repos *Repositories, name string) models.User {
	t.Helper()
	user, created, err := repos.Users.FindOrCreate(models.User{Name: name})
	require.NoError(t, err)
	require.True(t, created)
	return user
}

func TestUserRepositoryFindOrCreate(t *testing.T) {
	repos := NewRepositories(openTestDatabase(t))

	user := createTestUser(t, repos, " ann ")
	assert.Equal(t, "ann", user.Name)
	assert.Equal(t, "en", user.Language)
	assert.Equal(t, 28, user.AverageCycleLength)

	again, created, err := repos.Users.FindOrCreate(models.User{Name: "ann", Language: "ru"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, user.ID, again.ID)

	_, _, err = repos.Users.FindOrCreate(models.User{Name: "  "})
	require.Error(t, err)

	custom, created, err := repos.Users.FindOrCreate(models.User{Name: "bea", Language: "ru", AverageCycleLength: 32, AveragePeriodLength: 4})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "ru", custom.Language)
	assert.Equal(t, 32, custom.AverageCycleLength)
	assert.Equal(t, 4, custom.AveragePeriodLength)

	users, err := repos.Users.List()
	require.NoError(t, err)
	assert.Len(t, users, 2)

	found, err := repos.Users.FindByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "ann", found.Name)
}

func TestCycleRepositoryRoundTrip(t *testing.T) {
	repos := NewRepositories(openTestDatabase(t))
	ann := createTestUser(t, repos, "ann")
	bob := createTestUser(t, repos, "bob")

	end := models.MustCalendarDate("2024-03-05")
	require.NoError(t, repos.Cycles.Create(&models.CycleRecord{ID: "c2", UserID: ann.ID, StartDate: "2024-03-01", EndDate: &end, FlowLevel: models.FlowHeavy}))
	require.NoError(t, repos.Cycles.Create(&models.CycleRecord{ID: "c1", UserID: ann.ID, StartDate: "2024-02-01", FlowLevel: models.FlowLight}))
	require.NoError(t, repos.Cycles.Create(&models.CycleRecord{ID: "c3", UserID: bob.ID, StartDate: "2024-02-10", FlowLevel: models.FlowMedium}))

	cycles, err := repos.Cycles.ListByUser(ann.ID)
	require.NoError(t, err)
	require.Len(t, cycles, 2)
	assert.Equal(t, "c1", cycles[0].ID)
	assert.Nil(t, cycles[0].EndDate)
	require.NotNil(t, cycles[1].EndDate)
	assert.Equal(t, models.CalendarDate("2024-03-05"), *cycles[1].EndDate)

	_, err = repos.Cycles.FindByIDForUser("c3", ann.ID)
	require.Error(t, err)

	cycle, err := repos.Cycles.FindByIDForUser("c1", ann.ID)
	require.NoError(t, err)
	cycle.Notes = "updated"
	require.NoError(t, repos.Cycles.Save(&cycle))
	require.NoError(t, repos.Cycles.Delete(&models.CycleRecord{ID: "c2", UserID: ann.ID}))

	cycles, err = repos.Cycles.ListByUser(ann.ID)
	require.NoError(t, err)
	require.Len(t, cycles, 1)
	assert.Equal(t, "updated", cycles[0].Notes)
}

func TestSymptomRepositoryUpsertByDate(t *testing.T) {
	repos := NewRepositories(openTestDatabase(t))
	ann := createTestUser(t, repos, "ann")

	first := models.SymptomEntry{ID: "s1", UserID: ann.ID, Date: "2024-03-01", Cramps: 2, Mood: models.MoodSad, Energy: models.EnergyLow}
	require.NoError(t, repos.Symptoms.UpsertByDate(&first))

	replacement := models.SymptomEntry{ID: "s-new", UserID: ann.ID, Date: "2024-03-01", Headache: 1, Mood: models.MoodNone, Energy: models.EnergyNone}
	require.NoError(t, repos.Symptoms.UpsertByDate(&replacement))
	assert.Equal(t, "s1", replacement.ID)

	second := models.SymptomEntry{ID: "s2", UserID: ann.ID, Date: "2024-03-04", Mood: models.MoodNone, Energy: models.EnergyNone}
	require.NoError(t, repos.Symptoms.UpsertByDate(&second))

	stored, err := repos.Symptoms.FindByDate(ann.ID, "2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, 0, stored.Cramps)
	assert.Equal(t, 1, stored.Headache)

	all, err := repos.Symptoms.ListByUser(ann.ID, "", "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "s2", all[0].ID)

	bounded, err := repos.Symptoms.ListByUser(ann.ID, "2024-03-02", "2024-03-31")
	require.NoError(t, err)
	require.Len(t, bounded, 1)
	assert.Equal(t, models.CalendarDate("2024-03-04"), bounded[0].Date)
}

func TestReminderRepositoryUpsertMergesPartialUpdates(t *testing.T) {
	repos := NewRepositories(openTestDatabase(t))
	ann := createTestUser(t, repos, "ann")

	days := 0
	created, err := repos.Reminders.Upsert(ann.ID, models.ReminderPeriod, insights.ReminderUpdate{DaysBefore: &days})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, 0, created.DaysBefore)
	assert.Equal(t, models.TimeOfDay("09:00"), created.Time)

	enabled := true
	toggled, err := repos.Reminders.Upsert(ann.ID, models.ReminderPeriod, insights.ReminderUpdate{Enabled: &enabled})
	require.NoError(t, err)
	assert.Equal(t, created.ID, toggled.ID)
	assert.True(t, toggled.Enabled)
	assert.Equal(t, 0, toggled.DaysBefore)

	configs, err := repos.Reminders.ListByUser(ann.ID)
	require.NoError(t, err)
	require.Len(t, configs, 1)
	assert.Equal(t, 0, configs[0].DaysBefore)
	assert.True(t, configs[0].Enabled)

	require.NoError(t, repos.Reminders.DeleteByType(ann.ID, models.ReminderPeriod))
	configs, err = repos.Reminders.ListByUser(ann.ID)
	require.NoError(t, err)
	assert.Empty(t, configs)
}

func TestReminderRepositoryUpsertStoresCanonicalTime(t *testing.T) {
	repos := NewRepositories(openTestDatabase(t))
	ann := createTestUser(t, repos, "ann")

	padded := models.TimeOfDay(" 07:30 ")
	stored, err := repos.Reminders.Upsert(ann.ID, models.ReminderLogs, insights.ReminderUpdate{Time: &padded})
	require.NoError(t, err)
	assert.Equal(t, models.TimeOfDay("07:30"), stored.Time)

	configs, err := repos.Reminders.ListByUser(ann.ID)
	require.NoError(t, err)
	require.Len(t, configs, 1)
	assert.Equal(t, models.TimeOfDay("07:30"), configs[0].Time)

	malformed := models.TimeOfDay("7:3")
	_, err = repos.Reminders.Upsert(ann.ID, models.ReminderLogs, insights.ReminderUpdate{Time: &malformed})
	require.ErrorIs(t, err, models.ErrMalformedTime)
}

func TestReadTransactionBindsRepositoriesToOneTransaction(t *testing.T) {
	repos := NewRepositories(openTestDatabase(t))
	ann := createTestUser(t, repos, "ann")

	rollback := errors.New("rollback")
	err := repos.ReadTransaction(func(tx *Repositories) error {
		cycle := models.CycleRecord{ID: "c1", UserID: ann.ID, StartDate: "2024-03-01", FlowLevel: models.FlowMedium}
		require.NoError(t, tx.Cycles.Create(&cycle))

		inside, err := tx.Cycles.ListByUser(ann.ID)
		require.NoError(t, err)
		assert.Len(t, inside, 1)
		return rollback
	})
	require.ErrorIs(t, err, rollback)

	outside, err := repos.Cycles.ListByUser(ann.ID)
	require.NoError(t, err)
	assert.Empty(t, outside)
}

func TestKeyValueRepositorySetOverwrites(t *testing.T) {
	repos := NewRepositories(openTestDatabase(t))
	ctx := context.Background()

	_, ok, err := repos.KeyValues.Get(ctx, "water:1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repos.KeyValues.Set(ctx, "water:1", "2024-03-01|1"))
	require.NoError(t, repos.KeyValues.Set(ctx, "water:1", "2024-03-01|2"))

	value, ok, err := repos.KeyValues.Get(ctx, "water:1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "2024-03-01|2", value)
}
