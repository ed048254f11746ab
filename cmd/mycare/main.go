package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"
	"github.com/terraincognita07/mycare/internal/api"
	"github.com/terraincognita07/mycare/internal/cache"
	"github.com/terraincognita07/mycare/internal/cli"
	"github.com/terraincognita07/mycare/internal/config"
	"github.com/terraincognita07/mycare/internal/db"
	"github.com/terraincognita07/mycare/internal/i18n"
	"github.com/terraincognita07/mycare/internal/logger"
	"github.com/terraincognita07/mycare/internal/metrics"
	"github.com/terraincognita07/mycare/internal/security"
	"github.com/terraincognita07/mycare/internal/services"
	"gorm.io/gorm"
)

const usage = "usage: mycare [serve | token [-name NAME] [-lang LANG] [-cycle-length N] [-period-length N] [-ttl DURATION]]"

// waterKeyTTL keeps two days of water counters in redis; older ones read as zero anyway.
const waterKeyTTL = 48 * time.Hour

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer, stderr io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	log := logger.New(cfg.LogLevel, cfg.Environment, stderr)

	command := "serve"
	if len(args) > 0 {
		command, args = args[0], args[1:]
	}

	switch command {
	case "serve":
		return serve(cfg, log)
	case "token":
		return issueToken(cfg, log, args, stdout, stderr)
	default:
		return fmt.Errorf("unknown command %q\n%s", command, usage)
	}
}

func issueToken(cfg *config.AppConfig, log *logrus.Logger, args []string, stdout io.Writer, stderr io.Writer) error {
	if cfg.EphemeralSecret {
		return errors.New("SECRET_KEY must be set to issue tokens the server will accept")
	}

	options, err := cli.ParseTokenArgs(args, tokenDefaults(cfg), stderr)
	if err != nil {
		return err
	}

	database, err := db.OpenSQLite(cfg.DBPath, log)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	defer closeDatabase(database, log)

	return cli.RunTokenCommand(db.NewUserRepository(database), cfg.SecretKey, options, time.Now(), stdout)
}

func tokenDefaults(cfg *config.AppConfig) cli.TokenOptions {
	return cli.TokenOptions{
		Language:            cfg.DefaultLanguage,
		AverageCycleLength:  cfg.DefaultCycleLength,
		AveragePeriodLength: cfg.DefaultPeriodLength,
		TTL:                 security.DefaultSessionTTL,
	}
}

func serve(cfg *config.AppConfig, log *logrus.Logger) error {
	if cfg.EphemeralSecret {
		log.Warn("SECRET_KEY is not set, using an ephemeral key; sessions will not survive a restart")
	}

	database, err := db.OpenSQLite(cfg.DBPath, log)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	defer closeDatabase(database, log)
	repos := db.NewRepositories(database)

	lifecycleCtx, cancelLifecycle := context.WithCancel(context.Background())
	defer cancelLifecycle()

	keyValues, pingKeyValues, closeKeyValues, err := openKeyValueStore(lifecycleCtx, cfg, repos, log)
	if err != nil {
		return err
	}
	defer closeKeyValues()

	handler, scheduler, err := wire(cfg, database, keyValues, pingKeyValues, log)
	if err != nil {
		return err
	}
	if err := scheduler.Start(cfg.ReminderCron); err != nil {
		return err
	}
	defer scheduler.Stop()

	app := newApp(handler, log)

	sigCtx, stopSignals := signal.NotifyContext(lifecycleCtx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.WithError(err).Error("server shutdown failed")
		}
	}()

	log.WithFields(logrus.Fields{
		"addr":     cfg.ListenAddress(),
		"db":       cfg.DBPath,
		"tz":       cfg.Location.String(),
		"redis":    cfg.RedisURL != "",
		"reminder": cfg.ReminderCron,
	}).Info("mycare listening")
	if err := app.Listen(cfg.ListenAddress()); err != nil {
		return fmt.Errorf("server exited: %w", err)
	}
	return nil
}

// wire builds the services shared by the HTTP handler and the reminder scheduler.
func wire(cfg *config.AppConfig, database *gorm.DB, keyValues services.KeyValueStore, pingKeyValues func(context.Context) error, log *logrus.Logger) (*api.Handler, *services.ReminderScheduler, error) {
	repos := db.NewRepositories(database)
	messages, err := i18n.NewManager(cfg.DefaultLanguage, i18n.Locales())
	if err != nil {
		return nil, nil, fmt.Errorf("i18n init failed: %w", err)
	}

	collector := metrics.New()
	forecaster := services.NewBaselineForecaster(cfg.Location)
	snapshots := services.NewSnapshotLoader(repos.Cycles, repos.Symptoms, forecaster).
		WithReadScope(snapshotReadScope(repos))
	water := services.NewWaterIntakeTracker(keyValues, cfg.Location)

	scheduler := services.NewReminderScheduler(services.ReminderSchedulerDeps{
		Users:       repos.Users,
		Reminders:   repos.Reminders,
		Cycles:      repos.Cycles,
		Predictions: forecaster,
		Notifier:    services.NewLogNotifier(log),
		Messages:    messages,
		Metrics:     collector,
		Logger:      log,
		Location:    cfg.Location,
	})

	handler, err := api.NewHandler(api.Dependencies{
		Users:        repos.Users,
		Cycles:       services.NewCycleService(repos.Cycles),
		Symptoms:     services.NewSymptomService(repos.Symptoms),
		Calendar:     services.NewCalendarService(snapshots, cfg.Location),
		Stats:        services.NewStatsService(snapshots),
		Dashboard:    services.NewDashboardService(snapshots, water, cfg.Location),
		Reminders:    services.NewReminderService(repos.Reminders),
		Settings:     services.NewSettingsService(repos.Users, messages),
		Export:       services.NewExportService(repos.Cycles, repos.Symptoms),
		Water:        water,
		Snapshots:    snapshots,
		Metrics:      collector,
		HealthCheck:  healthCheck(database, pingKeyValues),
		Logger:       log,
		SecretKey:    cfg.SecretKey,
		CookieSecure: cfg.Environment == "production",
	})
	if err != nil {
		return nil, nil, fmt.Errorf("handler init failed: %w", err)
	}
	return handler, scheduler, nil
}

func snapshotReadScope(repos *db.Repositories) services.ReadScope {
	return func(read func(services.CycleReader, services.SymptomReader) error) error {
		return repos.ReadTransaction(func(tx *db.Repositories) error {
			return read(tx.Cycles, tx.Symptoms)
		})
	}
}

func newApp(handler *api.Handler, log *logrus.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "MyCare",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Output: log.WriterLevel(logrus.InfoLevel),
		Format: "${status} ${method} ${path} ${latency}\n",
	}))
	app.Use(compress.New())
	api.RegisterRoutes(app, handler)
	return app
}

// openKeyValueStore picks redis when REDIS_URL is set and the sqlite table otherwise.
func openKeyValueStore(ctx context.Context, cfg *config.AppConfig, repos *db.Repositories, log logrus.FieldLogger) (services.KeyValueStore, func(context.Context) error, func(), error) {
	if cfg.RedisURL == "" {
		return repos.KeyValues, nil, func() {}, nil
	}

	store, err := cache.Connect(ctx, cfg.RedisURL, waterKeyTTL)
	if err != nil {
		return nil, nil, nil, err
	}
	log.Info("using redis key-value store")
	return store, store.Ping, func() {
		if err := store.Close(); err != nil {
			log.WithError(err).Warn("close redis client")
		}
	}, nil
}

func healthCheck(database *gorm.DB, pingKeyValues func(context.Context) error) func(context.Context) error {
	return func(ctx context.Context) error {
		sqlDB, err := database.DB()
		if err != nil {
			return err
		}
		if err := sqlDB.PingContext(ctx); err != nil {
			return fmt.Errorf("database: %w", err)
		}
		if pingKeyValues != nil {
			if err := pingKeyValues(ctx); err != nil {
				return fmt.Errorf("key-value store: %w", err)
			}
		}
		return nil
	}
}

func closeDatabase(database *gorm.DB, log logrus.FieldLogger) {
	sqlDB, err := database.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.WithError(err).Warn("close database")
	}
}
