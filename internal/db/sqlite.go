package db

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// OpenSQLite opens the database at dbPath, creating its directory, and
// applies pending embedded migrations. SQL warnings go through logger.
func OpenSQLite(dbPath string, logger logrus.FieldLogger) (*gorm.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	dsn := fmt.Sprintf("%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", dbPath)
	database, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.New(
			logger.WithField("component", "gorm"),
			gormlogger.Config{
				SlowThreshold:             time.Second,
				LogLevel:                  gormlogger.Warn,
				IgnoreRecordNotFoundError: true,
				Colorful:                  false,
			},
		),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	applied, err := applyEmbeddedMigrations(database, logger)
	if err != nil {
		return nil, fmt.Errorf("apply embedded migrations: %w", err)
	}
	if applied > 0 {
		logger.WithField("count", applied).Info("database schema migrated")
	}

	return database, nil
}
