package db

import (
	"errors"

	"github.com/terraincognita07/mycare/internal/insights"
	"github.com/terraincognita07/mycare/internal/models"
	"gorm.io/gorm"
)

type ReminderRepository struct {
	database *gorm.DB
}

func NewReminderRepository(database *gorm.DB) *ReminderRepository {
	return &ReminderRepository{database: database}
}

func (repo *ReminderRepository) ListByUser(userID uint) ([]models.ReminderConfig, error) {
	configs := make([]models.ReminderConfig, 0)
	if err := repo.database.Where("user_id = ?", userID).Order("id ASC").Find(&configs).Error; err != nil {
		return nil, err
	}
	return configs, nil
}

// Upsert merges update over the stored row for (userID, reminderType), or
// over the default config when there is none, inside one transaction.
func (repo *ReminderRepository) Upsert(userID uint, reminderType models.ReminderType, update insights.ReminderUpdate) (models.ReminderConfig, error) {
	update, err := update.Normalize()
	if err != nil {
		return models.ReminderConfig{}, err
	}

	var merged models.ReminderConfig
	err = repo.database.Transaction(func(tx *gorm.DB) error {
		base := models.ReminderConfig{}
		err := tx.Where("user_id = ? AND type = ?", userID, reminderType).First(&base).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			base = models.DefaultReminderConfig(reminderType)
			base.UserID = userID
		} else if err != nil {
			return err
		}

		merged = insights.MergeReminderConfig(base, update)
		return tx.Save(&merged).Error
	})
	if err != nil {
		return models.ReminderConfig{}, err
	}
	return merged, nil
}

func (repo *ReminderRepository) DeleteByType(userID uint, reminderType models.ReminderType) error {
	return repo.database.Where("user_id = ? AND type = ?", userID, reminderType).
		Delete(&models.ReminderConfig{}).Error
}
