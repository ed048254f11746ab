package main

import (
	"bytes"
	"context"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/terraincognita07/mycare/internal/cache"
	"github.com/terraincognita07/mycare/internal/config"
	"github.com/terraincognita07/mycare/internal/db"
	"github.com/terraincognita07/mycare/internal/models"
	"github.com/terraincognita07/mycare/internal/security"
	"github.com/terraincognita07/mycare/internal/services"
)

const validSecret = "0123456789abcdef0123456789abcdef"

func testConfig(t *testing.T, values map[string]string) *config.AppConfig {
	t.Helper()
	if values == nil {
		values = map[string]string{}
	}
	if _, ok := values["DB_PATH"]; !ok {
		values["DB_PATH"] = filepath.Join(t.TempDir(), "mycare.db")
	}
	cfg, err := config.FromLookup(func(key string) (string, bool) {
		value, ok := values[key]
		return value, ok
	})
	require.NoError(t, err)
	return cfg
}

func TestRunRejectsUnknownCommand(t *testing.T) {
	t.Setenv("DB_PATH", filepath.Join(t.TempDir(), "mycare.db"))
	t.Setenv("SECRET_KEY", validSecret)

	err := run([]string{"migrate"}, &bytes.Buffer{}, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "usage: mycare")
}

func TestRunTokenIssuesVerifiableToken(t *testing.T) {
	t.Setenv("DB_PATH", filepath.Join(t.TempDir(), "mycare.db"))
	t.Setenv("SECRET_KEY", validSecret)
	t.Setenv("DEFAULT_LANGUAGE", "ru")

	var stdout bytes.Buffer
	require.NoError(t, run([]string{"token", "-ttl", "1h", "ann"}, &stdout, &bytes.Buffer{}))

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	userID, err := security.ParseSessionToken([]byte(validSecret), lines[len(lines)-1], time.Now())
	require.NoError(t, err)
	assert.NotZero(t, userID)
}

func TestIssueTokenRequiresConfiguredSecret(t *testing.T) {
	cfg := testConfig(t, nil)
	require.True(t, cfg.EphemeralSecret)

	logger, _ := test.NewNullLogger()
	err := issueToken(cfg, logger, []string{"ann"}, &bytes.Buffer{}, &bytes.Buffer{})
	require.ErrorContains(t, err, "SECRET_KEY")
}

func TestTokenDefaultsFollowConfig(t *testing.T) {
	cfg := testConfig(t, map[string]string{"DEFAULT_LANGUAGE": "ru", "DEFAULT_CYCLE_LENGTH": "31", "DEFAULT_PERIOD_LENGTH": "6"})

	defaults := tokenDefaults(cfg)
	assert.Equal(t, "ru", defaults.Language)
	assert.Equal(t, 31, defaults.AverageCycleLength)
	assert.Equal(t, 6, defaults.AveragePeriodLength)
	assert.Equal(t, security.DefaultSessionTTL, defaults.TTL)
}

func TestOpenKeyValueStoreSelectsBackend(t *testing.T) {
	logger, _ := test.NewNullLogger()
	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "mycare.db"), logger)
	require.NoError(t, err)
	defer closeDatabase(database, logger)
	repos := db.NewRepositories(database)

	store, ping, closeStore, err := openKeyValueStore(context.Background(), testConfig(t, nil), repos, logger)
	require.NoError(t, err)
	assert.Same(t, repos.KeyValues, store)
	assert.Nil(t, ping)
	closeStore()

	server := miniredis.RunT(t)
	store, ping, closeStore, err = openKeyValueStore(context.Background(), testConfig(t, map[string]string{"REDIS_URL": "redis://" + server.Addr()}), repos, logger)
	require.NoError(t, err)
	defer closeStore()
	assert.IsType(t, &cache.RedisStore{}, store)
	require.NoError(t, ping(context.Background()))

	_, _, _, err = openKeyValueStore(context.Background(), testConfig(t, map[string]string{"REDIS_URL": "redis://127.0.0.1:1"}), repos, logger)
	require.Error(t, err)
}

func TestHealthCheckReportsKeyValueFailures(t *testing.T) {
	logger, _ := test.NewNullLogger()
	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "mycare.db"), logger)
	require.NoError(t, err)
	defer closeDatabase(database, logger)

	require.NoError(t, healthCheck(database, nil)(context.Background()))

	server := miniredis.RunT(t)
	store, err := cache.Connect(context.Background(), "redis://"+server.Addr(), 0)
	require.NoError(t, err)
	defer store.Close()

	check := healthCheck(database, store.Ping)
	require.NoError(t, check(context.Background()))
	server.Close()
	require.ErrorContains(t, check(context.Background()), "key-value store")
}

func TestNewAppServesHealth(t *testing.T) {
	cfg := testConfig(t, map[string]string{"SECRET_KEY": validSecret})
	logger, _ := test.NewNullLogger()
	database, err := db.OpenSQLite(cfg.DBPath, logger)
	require.NoError(t, err)
	defer closeDatabase(database, logger)

	handler, scheduler, err := wire(cfg, database, db.NewKeyValueRepository(database), nil, logger)
	require.NoError(t, err)
	require.NotNil(t, scheduler)
	assert.Zero(t, scheduler.RunOnce(context.Background(), time.Now()))
	app := newApp(handler, logger)

	response, err := app.Test(httptest.NewRequest("GET", "/healthz", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, 200, response.StatusCode)

	response, err = app.Test(httptest.NewRequest("GET", "/api/dashboard", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, 401, response.StatusCode)
}

func TestSnapshotReadScopeLoadsFromDatabase(t *testing.T) {
	logger, _ := test.NewNullLogger()
	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "mycare.db"), logger)
	require.NoError(t, err)
	defer closeDatabase(database, logger)

	repos := db.NewRepositories(database)
	user, _, err := repos.Users.FindOrCreate(models.User{Name: "ann"})
	require.NoError(t, err)
	cycle := models.CycleRecord{ID: "c1", UserID: user.ID, StartDate: "2024-03-01", FlowLevel: models.FlowMedium}
	require.NoError(t, repos.Cycles.Create(&cycle))

	loader := services.NewSnapshotLoader(nil, nil, nil).WithReadScope(snapshotReadScope(repos))
	snapshot, err := loader.Load(&user, "2024-03-01", "2024-03-31", time.Now())
	require.NoError(t, err)
	require.Len(t, snapshot.Cycles, 1)
	assert.Equal(t, "c1", snapshot.Cycles[0].ID)
	assert.Empty(t, snapshot.Symptoms)
}
