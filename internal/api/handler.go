package api

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/terraincognita07/mycare/internal/metrics"
	"github.com/terraincognita07/mycare/internal/models"
	"github.com/terraincognita07/mycare/internal/services"
)

const (
	sessionCookieName = "mycare_session"
	contextUserKey    = "user"
)

type UserFinder interface {
	FindByID(userID uint) (models.User, error)
}

// Dependencies are the collaborators a Handler serves requests with.
// Water, Metrics and HealthCheck are optional.
type Dependencies struct {
	Users        UserFinder
	Cycles       *services.CycleService
	Symptoms     *services.SymptomService
	Calendar     *services.CalendarService
	Stats        *services.StatsService
	Dashboard    *services.DashboardService
	Reminders    *services.ReminderService
	Settings     *services.SettingsService
	Export       *services.ExportService
	Water        *services.WaterIntakeTracker
	Snapshots    *services.SnapshotLoader
	Metrics      *metrics.Collector
	HealthCheck  func(ctx context.Context) error
	Logger       logrus.FieldLogger
	SecretKey    []byte
	CookieSecure bool
}

type Handler struct {
	users        UserFinder
	cycles       *services.CycleService
	symptoms     *services.SymptomService
	calendar     *services.CalendarService
	stats        *services.StatsService
	dashboard    *services.DashboardService
	reminders    *services.ReminderService
	settings     *services.SettingsService
	export       *services.ExportService
	water        *services.WaterIntakeTracker
	snapshots    *services.SnapshotLoader
	metrics      *metrics.Collector
	healthCheck  func(ctx context.Context) error
	logger       logrus.FieldLogger
	secretKey    []byte
	cookieSecure bool
	now          func() time.Time
}

func NewHandler(deps Dependencies) (*Handler, error) {
	switch {
	case deps.Users == nil:
		return nil, errors.New("user finder is required")
	case deps.Cycles == nil || deps.Symptoms == nil || deps.Reminders == nil || deps.Settings == nil:
		return nil, errors.New("write services are required")
	case deps.Calendar == nil || deps.Stats == nil || deps.Dashboard == nil || deps.Snapshots == nil || deps.Export == nil:
		return nil, errors.New("read services are required")
	case len(deps.SecretKey) == 0:
		return nil, errors.New("secret key is required")
	}

	logger := deps.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &Handler{
		users:        deps.Users,
		cycles:       deps.Cycles,
		symptoms:     deps.Symptoms,
		calendar:     deps.Calendar,
		stats:        deps.Stats,
		dashboard:    deps.Dashboard,
		reminders:    deps.Reminders,
		settings:     deps.Settings,
		export:       deps.Export,
		water:        deps.Water,
		snapshots:    deps.Snapshots,
		metrics:      deps.Metrics,
		healthCheck:  deps.HealthCheck,
		logger:       logger.WithField("component", "api"),
		secretKey:    deps.SecretKey,
		cookieSecure: deps.CookieSecure,
		now:          time.Now,
	}, nil
}
