package db

import (
	"errors"
	"strings"
	"time"

	"github.com/terraincognita07/mycare/internal/models"
	"gorm.io/gorm"
)

type UserRepository struct {
	database *gorm.DB
}

func NewUserRepository(database *gorm.DB) *UserRepository {
	return &UserRepository{database: database}
}

func (repo *UserRepository) FindByID(userID uint) (models.User, error) {
	var user models.User
	if err := repo.database.First(&user, userID).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (repo *UserRepository) FindByName(name string) (models.User, error) {
	var user models.User
	if err := repo.database.Where("name = ?", strings.TrimSpace(name)).First(&user).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

// FindOrCreate returns the user named like profile, creating it from profile when none exists.
// Missing language and out-of-range baseline lengths fall back to defaults.
func (repo *UserRepository) FindOrCreate(profile models.User) (models.User, bool, error) {
	name := strings.TrimSpace(profile.Name)
	if name == "" {
		return models.User{}, false, errors.New("user name is required")
	}

	var user models.User
	created := false
	err := repo.database.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("name = ?", name).First(&user).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		cycleLength, periodLength := profile.BaselineLengths()
		user = models.User{
			Name:                name,
			Language:            strings.TrimSpace(profile.Language),
			AverageCycleLength:  cycleLength,
			AveragePeriodLength: periodLength,
			CreatedAt:           time.Now().UTC(),
		}
		if user.Language == "" {
			user.Language = models.DefaultLanguage
		}
		created = true
		return tx.Create(&user).Error
	})
	if err != nil {
		return models.User{}, false, err
	}
	return user, created, nil
}

func (repo *UserRepository) List() ([]models.User, error) {
	users := make([]models.User, 0)
	if err := repo.database.Order("id ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (repo *UserRepository) Save(user *models.User) error {
	return repo.database.Save(user).Error
}
