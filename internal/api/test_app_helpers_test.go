package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"github.com/terraincognita07/mycare/internal/db"
	"github.com/terraincognita07/mycare/internal/i18n"
	"github.com/terraincognita07/mycare/internal/metrics"
	"github.com/terraincognita07/mycare/internal/models"
	"github.com/terraincognita07/mycare/internal/security"
	"github.com/terraincognita07/mycare/internal/services"
)

var (
	testSecret = []byte(strings.Repeat("m", security.MinSecretLength))
	testNow    = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
)

type testApp struct {
	app     *fiber.App
	handler *Handler
	repos   *db.Repositories
	user    models.User
	token   string
	logs    *test.Hook
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "mycare.db"), logger)
	require.NoError(t, err)
	sqlDB, err := database.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	repos := db.NewRepositories(database)
	user, _, err := repos.Users.FindOrCreate(models.User{Name: "ann"})
	require.NoError(t, err)

	snapshots := services.NewSnapshotLoader(repos.Cycles, repos.Symptoms, services.NewBaselineForecaster(time.UTC)).
		WithReadScope(func(read func(services.CycleReader, services.SymptomReader) error) error {
			return repos.ReadTransaction(func(tx *db.Repositories) error {
				return read(tx.Cycles, tx.Symptoms)
			})
		})
	water := services.NewWaterIntakeTracker(repos.KeyValues, time.UTC)
	handler, err := NewHandler(Dependencies{
		Users:     repos.Users,
		Cycles:    services.NewCycleService(repos.Cycles),
		Symptoms:  services.NewSymptomService(repos.Symptoms),
		Calendar:  services.NewCalendarService(snapshots, time.UTC),
		Stats:     services.NewStatsService(snapshots),
		Dashboard: services.NewDashboardService(snapshots, water, time.UTC),
		Reminders: services.NewReminderService(repos.Reminders),
		Settings:  services.NewSettingsService(repos.Users, i18nManager(t)),
		Export:    services.NewExportService(repos.Cycles, repos.Symptoms),
		Water:     water,
		Snapshots: snapshots,
		Metrics:   metrics.New(),
		Logger:    logger,
		SecretKey: testSecret,
	})
	require.NoError(t, err)
	handler.now = func() time.Time { return testNow }

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	RegisterRoutes(app, handler)

	token, err := security.IssueSessionToken(testSecret, user.ID, time.Hour, testNow)
	require.NoError(t, err)

	return &testApp{app: app, handler: handler, repos: repos, user: user, token: token, logs: hook}
}

func i18nManager(t *testing.T) *i18n.Manager {
	t.Helper()
	manager, err := i18n.NewManager("en", i18n.Locales())
	require.NoError(t, err)
	return manager
}

func (ta *testApp) do(t *testing.T, method string, path string, body any, expectedStatus int) []byte {
	t.Helper()
	return ta.doWithHeaders(t, method, path, body, map[string]string{"Authorization": "Bearer " + ta.token}, expectedStatus)
}

func (ta *testApp) doWithHeaders(t *testing.T, method string, path string, body any, headers map[string]string, expectedStatus int) []byte {
	t.Helper()

	var reader io.Reader
	switch value := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(value)
	default:
		encoded, err := json.Marshal(value)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	request := httptest.NewRequest(method, path, reader)
	if reader != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	for key, value := range headers {
		request.Header.Set(key, value)
	}

	response, err := ta.app.Test(request, -1)
	require.NoError(t, err, "%s %s", method, path)
	defer response.Body.Close()

	payload, err := io.ReadAll(response.Body)
	require.NoError(t, err)
	require.Equal(t, expectedStatus, response.StatusCode, "%s %s: %s", method, path, payload)
	return payload
}

func decodeJSON[T any](t *testing.T, payload []byte) T {
	t.Helper()
	var value T
	require.NoError(t, json.Unmarshal(payload, &value), string(payload))
	return value
}

func errorMessage(t *testing.T, payload []byte) string {
	t.Helper()
	return decodeJSON[map[string]string](t, payload)["error"]
}

func sessionCookieFrom(t *testing.T, response *http.Response) *http.Cookie {
	t.Helper()
	for _, cookie := range response.Cookies() {
		if cookie.Name == sessionCookieName {
			return cookie
		}
	}
	t.Fatalf("response has no %s cookie", sessionCookieName)
	return nil
}
