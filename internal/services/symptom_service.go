package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/terraincognita07/mycare/internal/models"
)

var (
	ErrInvalidSeverity    = errors.New("invalid symptom severity")
	ErrInvalidMood        = errors.New("invalid mood")
	ErrInvalidEnergy      = errors.New("invalid energy")
	ErrInvalidSymptomDate = errors.New("invalid symptom date range")
	ErrSymptomNotFound    = errors.New("symptom entry not found")
)

const recentSymptomDays = 7

type SymptomRepository interface {
	ListByUser(userID uint, from models.CalendarDate, to models.CalendarDate) ([]models.SymptomEntry, error)
	FindByDate(userID uint, date models.CalendarDate) (models.SymptomEntry, error)
	UpsertByDate(entry *models.SymptomEntry) error
}

type SymptomInput struct {
	Date     string `json:"date"`
	Cramps   int    `json:"cramps"`
	Bloating int    `json:"bloating"`
	Headache int    `json:"headache"`
	Mood     string `json:"mood"`
	Energy   string `json:"energy"`
	Notes    string `json:"notes"`
}

type SymptomService struct {
	symptoms SymptomRepository
	now      func() time.Time
}

func NewSymptomService(symptoms SymptomRepository) *SymptomService {
	return &SymptomService{symptoms: symptoms, now: time.Now}
}

// LogSymptoms stores the entry for input.Date, replacing any entry the user
// already has for that day.
func (service *SymptomService) LogSymptoms(userID uint, input SymptomInput) (models.SymptomEntry, error) {
	entry, err := buildSymptomEntry(userID, input)
	if err != nil {
		return models.SymptomEntry{}, err
	}
	entry.ID = uuid.NewString()
	entry.CreatedAt = service.now().UTC()
	entry.UpdatedAt = entry.CreatedAt

	if err := service.symptoms.UpsertByDate(&entry); err != nil {
		return models.SymptomEntry{}, fmt.Errorf("upsert symptom entry: %w", err)
	}
	return entry, nil
}

// ListSymptoms returns entries within the optional inclusive bounds, most recent first.
func (service *SymptomService) ListSymptoms(userID uint, rawFrom string, rawTo string) ([]models.SymptomEntry, error) {
	from, err := optionalCalendarDate(rawFrom)
	if err != nil {
		return nil, err
	}
	to, err := optionalCalendarDate(rawTo)
	if err != nil {
		return nil, err
	}
	if !from.IsZero() && !to.IsZero() && to.Before(from) {
		return nil, ErrInvalidSymptomDate
	}

	entries, err := service.symptoms.ListByUser(userID, from, to)
	if err != nil {
		return nil, err
	}
	sortSymptomsByDateDesc(entries)
	return nonEmpty(entries), nil
}

func (service *SymptomService) SymptomsForDate(userID uint, rawDate string) (models.SymptomEntry, error) {
	date, err := models.ParseCalendarDate(rawDate)
	if err != nil {
		return models.SymptomEntry{}, err
	}
	entry, err := service.symptoms.FindByDate(userID, date)
	if err != nil {
		return models.SymptomEntry{}, lookupError(err, ErrSymptomNotFound, "load symptom entry")
	}
	return entry, nil
}

// RecentSymptoms returns up to a week of entries ending today, most recent first.
func (service *SymptomService) RecentSymptoms(userID uint, today models.CalendarDate) ([]models.SymptomEntry, error) {
	entries, err := service.symptoms.ListByUser(userID, today.AddDays(-recentSymptomDays), today)
	if err != nil {
		return nil, err
	}
	sortSymptomsByDateDesc(entries)
	if len(entries) > recentSymptomDays {
		entries = entries[:recentSymptomDays]
	}
	return nonEmpty(entries), nil
}

func buildSymptomEntry(userID uint, input SymptomInput) (models.SymptomEntry, error) {
	date, err := models.ParseCalendarDate(input.Date)
	if err != nil {
		return models.SymptomEntry{}, err
	}
	for _, severity := range []int{input.Cramps, input.Bloating, input.Headache} {
		if !models.ValidSeverity(severity) {
			return models.SymptomEntry{}, fmt.Errorf("%w: %d", ErrInvalidSeverity, severity)
		}
	}

	mood := models.Mood(strings.ToLower(strings.TrimSpace(input.Mood)))
	if mood == "" {
		mood = models.MoodNone
	}
	if !mood.Valid() {
		return models.SymptomEntry{}, ErrInvalidMood
	}

	energy := models.Energy(strings.ToLower(strings.TrimSpace(input.Energy)))
	if energy == "" {
		energy = models.EnergyNone
	}
	if !energy.Valid() {
		return models.SymptomEntry{}, ErrInvalidEnergy
	}

	return models.SymptomEntry{
		UserID:   userID,
		Date:     date,
		Cramps:   input.Cramps,
		Bloating: input.Bloating,
		Headache: input.Headache,
		Mood:     mood,
		Energy:   energy,
		Notes:    truncateNotes(input.Notes),
	}, nil
}

func optionalCalendarDate(raw string) (models.CalendarDate, error) {
	if strings.TrimSpace(raw) == "" {
		return "", nil
	}
	return models.ParseCalendarDate(raw)
}

func sortSymptomsByDateDesc(entries []models.SymptomEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date > entries[j].Date
	})
}
