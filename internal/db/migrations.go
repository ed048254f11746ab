package db

import (
	"errors"
	"fmt"
	"io/fs"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	embeddedmigrations "github.com/terraincognita07/mycare/migrations"
	"gorm.io/gorm"
)

var (
	migrationFilePattern      = regexp.MustCompile(`^(\d+)_.*\.sql$`)
	addColumnStatementPattern = regexp.MustCompile(`(?i)^ALTER\s+TABLE\s+([^\s]+)\s+ADD\s+COLUMN\s+([^\s]+)\b`)
)

type migrationFile struct {
	Version int
	Name    string
	SQL     string
}

// migrator applies forward-only SQL files from source in version order and
// records each one in schema_migrations.
type migrator struct {
	database *gorm.DB
	source   fs.FS
	logger   logrus.FieldLogger
}

func applyEmbeddedMigrations(database *gorm.DB, logger logrus.FieldLogger) (int, error) {
	return (&migrator{database: database, source: embeddedmigrations.Files, logger: logger}).apply()
}

func (m *migrator) apply() (int, error) {
	if err := m.database.Exec(`
CREATE TABLE IF NOT EXISTS schema_migrations (
  version TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
)`).Error; err != nil {
		return 0, fmt.Errorf("create schema_migrations table: %w", err)
	}

	files, err := readMigrationFiles(m.source)
	if err != nil {
		return 0, err
	}
	applied, err := m.appliedVersions()
	if err != nil {
		return 0, err
	}

	count := 0
	for _, file := range files {
		if applied[strconv.Itoa(file.Version)] {
			continue
		}
		if err := m.applyFile(file); err != nil {
			return count, err
		}
		m.logger.WithField("migration", file.Name).Info("migration applied")
		count++
	}
	return count, nil
}

func readMigrationFiles(source fs.FS) ([]migrationFile, error) {
	entries, err := fs.ReadDir(source, ".")
	if err != nil {
		return nil, fmt.Errorf("read migrations: %w", err)
	}

	files := make([]migrationFile, 0, len(entries))
	byVersion := make(map[int]string, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		matches := migrationFilePattern.FindStringSubmatch(entry.Name())
		if len(matches) != 2 {
			continue
		}

		version, err := strconv.Atoi(matches[1])
		if err != nil {
			return nil, fmt.Errorf("parse migration version from %s: %w", entry.Name(), err)
		}
		if existing, exists := byVersion[version]; exists {
			return nil, fmt.Errorf("duplicate migration version %d in %s and %s", version, existing, entry.Name())
		}
		byVersion[version] = entry.Name()

		content, err := fs.ReadFile(source, entry.Name())
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", entry.Name(), err)
		}
		files = append(files, migrationFile{Version: version, Name: entry.Name(), SQL: string(content)})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Version < files[j].Version
	})
	return files, nil
}

func (m *migrator) appliedVersions() (map[string]bool, error) {
	versions := make([]string, 0)
	if err := m.database.Raw(`SELECT version FROM schema_migrations`).Scan(&versions).Error; err != nil {
		return nil, fmt.Errorf("load applied migration versions: %w", err)
	}

	applied := make(map[string]bool, len(versions))
	for _, version := range versions {
		applied[version] = true
	}
	return applied, nil
}

func (m *migrator) applyFile(file migrationFile) error {
	statements := splitSQLStatements(file.SQL)
	if len(statements) == 0 {
		return fmt.Errorf("migration %s: %w", file.Name, errors.New("no SQL statements"))
	}

	return m.database.Transaction(func(tx *gorm.DB) error {
		for _, statement := range statements {
			skip, err := columnAlreadyAdded(tx, statement)
			if err != nil {
				return fmt.Errorf("inspect migration %s: %w", file.Name, err)
			}
			if skip {
				continue
			}
			if err := tx.Exec(statement).Error; err != nil {
				return fmt.Errorf("execute migration %s statement %q: %w", file.Name, statement, err)
			}
		}

		if err := tx.Exec(
			`INSERT INTO schema_migrations(version, name) VALUES (?, ?)`,
			strconv.Itoa(file.Version),
			file.Name,
		).Error; err != nil {
			return fmt.Errorf("record migration %s: %w", file.Name, err)
		}
		return nil
	})
}

func splitSQLStatements(sqlText string) []string {
	statements := make([]string, 0)
	for _, part := range strings.Split(sqlText, ";") {
		if statement := strings.TrimSpace(part); statement != "" {
			statements = append(statements, statement)
		}
	}
	return statements
}

// columnAlreadyAdded makes ALTER TABLE ... ADD COLUMN idempotent, since
// SQLite has no ADD COLUMN IF NOT EXISTS.
func columnAlreadyAdded(database *gorm.DB, statement string) (bool, error) {
	matches := addColumnStatementPattern.FindStringSubmatch(strings.TrimSpace(statement))
	if len(matches) != 3 {
		return false, nil
	}
	return tableHasColumn(database, unquoteIdentifier(matches[1]), unquoteIdentifier(matches[2]))
}

func tableHasColumn(database *gorm.DB, tableName string, columnName string) (bool, error) {
	columns := make([]struct {
		Name string `gorm:"column:name"`
	}, 0)
	query := fmt.Sprintf(`PRAGMA table_info("%s")`, strings.ReplaceAll(tableName, `"`, `""`))
	if err := database.Raw(query).Scan(&columns).Error; err != nil {
		return false, fmt.Errorf("load table_info for %s: %w", tableName, err)
	}
	for _, column := range columns {
		if strings.EqualFold(strings.TrimSpace(column.Name), columnName) {
			return true, nil
		}
	}
	return false, nil
}

func unquoteIdentifier(identifier string) string {
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(identifier), "\"`[]"))
}
