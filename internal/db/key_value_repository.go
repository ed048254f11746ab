package db

import (
	"context"
	"errors"
	"time"

	"github.com/terraincognita07/mycare/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KeyValueRepository is the sqlite-backed key-value store used when no
// redis URL is configured.
type KeyValueRepository struct {
	database *gorm.DB
}

func NewKeyValueRepository(database *gorm.DB) *KeyValueRepository {
	return &KeyValueRepository{database: database}
}

func (repo *KeyValueRepository) Get(ctx context.Context, key string) (string, bool, error) {
	row := models.KeyValue{}
	err := repo.database.WithContext(ctx).Where("key = ?", key).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return row.Value, true, nil
}

func (repo *KeyValueRepository) Set(ctx context.Context, key string, value string) error {
	row := models.KeyValue{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	return repo.database.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&row).Error
}
