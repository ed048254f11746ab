package db

import (
	"github.com/terraincognita07/mycare/internal/models"
	"gorm.io/gorm"
)

type CycleRepository struct {
	database *gorm.DB
}

func NewCycleRepository(database *gorm.DB) *CycleRepository {
	return &CycleRepository{database: database}
}

func (repo *CycleRepository) ListByUser(userID uint) ([]models.CycleRecord, error) {
	cycles := make([]models.CycleRecord, 0)
	if err := repo.database.Where("user_id = ?", userID).
		Order("start_date ASC, id ASC").
		Find(&cycles).Error; err != nil {
		return nil, err
	}
	return cycles, nil
}

func (repo *CycleRepository) FindByIDForUser(cycleID string, userID uint) (models.CycleRecord, error) {
	cycle := models.CycleRecord{}
	if err := repo.database.Where("id = ? AND user_id = ?", cycleID, userID).First(&cycle).Error; err != nil {
		return models.CycleRecord{}, err
	}
	return cycle, nil
}

func (repo *CycleRepository) Create(cycle *models.CycleRecord) error {
	return repo.database.Create(cycle).Error
}

func (repo *CycleRepository) Save(cycle *models.CycleRecord) error {
	return repo.database.Save(cycle).Error
}

func (repo *CycleRepository) Delete(cycle *models.CycleRecord) error {
	return repo.database.Where("user_id = ?", cycle.UserID).Delete(cycle).Error
}
