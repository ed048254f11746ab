package models

import "time"

type Mood string

const (
	MoodHappy     Mood = "happy"
	MoodSad       Mood = "sad"
	MoodAnxious   Mood = "anxious"
	MoodIrritable Mood = "irritable"
	MoodCalm      Mood = "calm"
	MoodFine      Mood = "fine"
	MoodNone      Mood = "none"
)

type Energy string

const (
	EnergyHigh      Energy = "high"
	EnergyMedium    Energy = "medium"
	EnergyLow       Energy = "low"
	EnergyExhausted Energy = "exhausted"
	EnergyNone      Energy = "none"
)

const MaxSymptomSeverity = 3

func (mood Mood) Valid() bool {
	switch mood {
	case MoodHappy, MoodSad, MoodAnxious, MoodIrritable, MoodCalm, MoodFine, MoodNone:
		return true
	default:
		return false
	}
}

func (energy Energy) Valid() bool {
	switch energy {
	case EnergyHigh, EnergyMedium, EnergyLow, EnergyExhausted, EnergyNone:
		return true
	default:
		return false
	}
}

func ValidSeverity(value int) bool {
	return value >= 0 && value <= MaxSymptomSeverity
}

// SymptomEntry holds at most one entry per user and date.
type SymptomEntry struct {
	ID        string       `gorm:"primaryKey" json:"id"`
	UserID    uint         `gorm:"not null;uniqueIndex:uidx_symptom_user_date" json:"-"`
	Date      CalendarDate `gorm:"type:text;not null;uniqueIndex:uidx_symptom_user_date" json:"date"`
	Cramps    int          `gorm:"not null;default:0" json:"cramps"`
	Bloating  int          `gorm:"not null;default:0" json:"bloating"`
	Headache  int          `gorm:"not null;default:0" json:"headache"`
	Mood      Mood         `gorm:"not null;default:none" json:"mood"`
	Energy    Energy       `gorm:"not null;default:none" json:"energy"`
	Notes     string       `json:"notes"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// ActiveSeverities maps each physical symptom with a non-zero severity to its value.
func (entry SymptomEntry) ActiveSeverities() map[string]int {
	active := make(map[string]int, 3)
	if entry.Cramps > 0 {
		active["cramps"] = entry.Cramps
	}
	if entry.Bloating > 0 {
		active["bloating"] = entry.Bloating
	}
	if entry.Headache > 0 {
		active["headache"] = entry.Headache
	}
	return active
}
