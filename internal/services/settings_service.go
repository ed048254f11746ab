package services

import (
	"fmt"

	"github.com/terraincognita07/mycare/internal/models"
)

type ProfileRepository interface {
	FindByID(userID uint) (models.User, error)
	Save(user *models.User) error
}

// ProfileUpdate is a partial profile edit. Nil fields are left untouched.
type ProfileUpdate struct {
	Language            *string `json:"language,omitempty"`
	AverageCycleLength  *int    `json:"average_cycle_length,omitempty"`
	AveragePeriodLength *int    `json:"average_period_length,omitempty"`
}

// SettingsService edits the onboarding profile: language and the baseline
// lengths used until the cycle history has its own samples.
type SettingsService struct {
	users     ProfileRepository
	languages LanguageCatalog
}

func NewSettingsService(users ProfileRepository, languages LanguageCatalog) *SettingsService {
	return &SettingsService{users: users, languages: languages}
}

func (service *SettingsService) UpdateProfile(userID uint, update ProfileUpdate) (models.User, error) {
	user, err := service.users.FindByID(userID)
	if err != nil {
		return models.User{}, fmt.Errorf("load user: %w", err)
	}

	if update.Language != nil {
		language, err := normalizeProfileLanguage(*update.Language, service.languages)
		if err != nil {
			return models.User{}, err
		}
		user.Language = language
	}

	cycleLength, periodLength := user.BaselineLengths()
	if update.AverageCycleLength != nil {
		cycleLength = *update.AverageCycleLength
	}
	if update.AveragePeriodLength != nil {
		periodLength = *update.AveragePeriodLength
	}
	if err := ValidateCycleBaseline(cycleLength, periodLength); err != nil {
		return models.User{}, err
	}
	user.AverageCycleLength = cycleLength
	user.AveragePeriodLength = periodLength

	if err := service.users.Save(&user); err != nil {
		return models.User{}, fmt.Errorf("save profile: %w", err)
	}
	return user, nil
}
