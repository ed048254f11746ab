package db

import (
	"errors"

	"github.com/terraincognita07/mycare/internal/models"
	"gorm.io/gorm"
)

type SymptomRepository struct {
	database *gorm.DB
}

func NewSymptomRepository(database *gorm.DB) *SymptomRepository {
	return &SymptomRepository{database: database}
}

// ListByUser returns entries in [from, to]; an empty bound is open.
func (repo *SymptomRepository) ListByUser(userID uint, from models.CalendarDate, to models.CalendarDate) ([]models.SymptomEntry, error) {
	query := repo.database.Where("user_id = ?", userID)
	if !from.IsZero() {
		query = query.Where("date >= ?", from)
	}
	if !to.IsZero() {
		query = query.Where("date <= ?", to)
	}

	entries := make([]models.SymptomEntry, 0)
	if err := query.Order("date DESC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (repo *SymptomRepository) FindByDate(userID uint, date models.CalendarDate) (models.SymptomEntry, error) {
	entry := models.SymptomEntry{}
	if err := repo.database.Where("user_id = ? AND date = ?", userID, date).First(&entry).Error; err != nil {
		return models.SymptomEntry{}, err
	}
	return entry, nil
}

// UpsertByDate replaces the user's entry for entry.Date, keeping the stored
// ID and creation time, or inserts entry when there is none.
func (repo *SymptomRepository) UpsertByDate(entry *models.SymptomEntry) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		existing := models.SymptomEntry{}
		err := tx.Where("user_id = ? AND date = ?", entry.UserID, entry.Date).First(&existing).Error
		switch {
		case err == nil:
			entry.ID = existing.ID
			entry.CreatedAt = existing.CreatedAt
			return tx.Save(entry).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			return tx.Create(entry).Error
		default:
			return err
		}
	})
}
