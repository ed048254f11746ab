package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/terraincognita07/mycare/internal/models"
	"github.com/terraincognita07/mycare/internal/security"
)

var placeholderSecrets = map[string]bool{
	"change_me_in_production":                    true,
	"replace_with_at_least_32_random_characters": true,
}

type AppConfig struct {
	Port                string
	DBPath              string
	Location            *time.Location
	SecretKey           []byte
	EphemeralSecret     bool
	LogLevel            string
	Environment         string
	DefaultLanguage     string
	RedisURL            string
	ReminderCron        string
	DefaultCycleLength  int
	DefaultPeriodLength int
}

// Load reads configuration from the environment after merging an optional .env file.
// Variables already set in the environment win over the file.
func Load() (*AppConfig, error) {
	_ = godotenv.Load()
	return FromLookup(os.LookupEnv)
}

// FromLookup builds the config from an arbitrary variable source.
func FromLookup(lookup func(string) (string, bool)) (*AppConfig, error) {
	getEnv := func(key string, fallback string) string {
		if value, ok := lookup(key); ok && strings.TrimSpace(value) != "" {
			return strings.TrimSpace(value)
		}
		return fallback
	}

	cfg := &AppConfig{
		Port:            getEnv("PORT", "8080"),
		DBPath:          getEnv("DB_PATH", filepath.Join("data", "mycare.db")),
		LogLevel:        strings.ToLower(getEnv("LOG_LEVEL", "info")),
		Environment:     strings.ToLower(getEnv("ENVIRONMENT", "development")),
		DefaultLanguage: strings.ToLower(getEnv("DEFAULT_LANGUAGE", models.DefaultLanguage)),
		RedisURL:        getEnv("REDIS_URL", ""),
		ReminderCron:    getEnv("REMINDER_CRON", "*/15 * * * *"),
	}

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		return nil, fmt.Errorf("invalid PORT %q", cfg.Port)
	}

	location, err := time.LoadLocation(getEnv("TZ", "UTC"))
	if err != nil {
		return nil, fmt.Errorf("invalid TZ: %w", err)
	}
	cfg.Location = location

	if _, err := cron.ParseStandard(cfg.ReminderCron); err != nil {
		return nil, fmt.Errorf("invalid REMINDER_CRON: %w", err)
	}

	cfg.DefaultCycleLength, err = intInRange(getEnv("DEFAULT_CYCLE_LENGTH", "28"), "DEFAULT_CYCLE_LENGTH", 15, 90)
	if err != nil {
		return nil, err
	}
	cfg.DefaultPeriodLength, err = intInRange(getEnv("DEFAULT_PERIOD_LENGTH", "5"), "DEFAULT_PERIOD_LENGTH", 1, 14)
	if err != nil {
		return nil, err
	}

	secret := getEnv("SECRET_KEY", "")
	if secret == "" {
		generated, err := security.GenerateSecret()
		if err != nil {
			return nil, fmt.Errorf("generate secret key: %w", err)
		}
		secret = string(generated)
		cfg.EphemeralSecret = true
	}
	if placeholderSecrets[secret] {
		return nil, fmt.Errorf("SECRET_KEY uses a placeholder value")
	}
	if len(secret) < security.MinSecretLength {
		return nil, fmt.Errorf("SECRET_KEY: %w", security.ErrWeakSecret)
	}
	cfg.SecretKey = []byte(secret)

	return cfg, nil
}

func (cfg *AppConfig) ListenAddress() string {
	return ":" + cfg.Port
}

func intInRange(raw string, key string, low int, high int) (int, error) {
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if value < low || value > high {
		return 0, fmt.Errorf("%s must be within %d..%d, got %d", key, low, high, value)
	}
	return value, nil
}
