package services

import (
	"fmt"
	"time"

	"github.com/terraincognita07/mycare/internal/models"
)

type CycleReader interface {
	ListByUser(userID uint) ([]models.CycleRecord, error)
}

type SymptomReader interface {
	ListByUser(userID uint, from models.CalendarDate, to models.CalendarDate) ([]models.SymptomEntry, error)
}

// Snapshot is everything the derivation functions need for one request.
type Snapshot struct {
	Cycles     []models.CycleRecord
	Symptoms   []models.SymptomEntry
	Prediction *models.PredictionSnapshot
	History    CycleHistory
}

// ReadScope runs fn against readers that all observe one database snapshot.
type ReadScope func(fn func(cycles CycleReader, symptoms SymptomReader) error) error

type SnapshotLoader struct {
	cycles      CycleReader
	symptoms    SymptomReader
	predictions PredictionSource
	readScope   ReadScope
}

func NewSnapshotLoader(cycles CycleReader, symptoms SymptomReader, predictions PredictionSource) *SnapshotLoader {
	return &SnapshotLoader{
		cycles:      cycles,
		symptoms:    symptoms,
		predictions: predictions,
	}
}

// WithReadScope makes Load read cycles and symptoms through scope instead of
// the loader's own readers.
func (loader *SnapshotLoader) WithReadScope(scope ReadScope) *SnapshotLoader {
	loader.readScope = scope
	return loader
}

// Load reads all cycles, the symptoms within [from, to] and the latest
// prediction. Empty bounds skip the symptom read. The prediction is derived
// from the cycles read here.
func (loader *SnapshotLoader) Load(user *models.User, from models.CalendarDate, to models.CalendarDate, now time.Time) (Snapshot, error) {
	if user == nil {
		return Snapshot{}, fmt.Errorf("load snapshot: missing user")
	}

	snapshot := Snapshot{Symptoms: []models.SymptomEntry{}}
	read := func(cycles CycleReader, symptoms SymptomReader) error {
		loaded, err := cycles.ListByUser(user.ID)
		if err != nil {
			return fmt.Errorf("load cycles: %w", err)
		}
		snapshot.Cycles = loaded

		if !from.IsZero() && !to.IsZero() {
			entries, err := symptoms.ListByUser(user.ID, from, to)
			if err != nil {
				return fmt.Errorf("load symptoms: %w", err)
			}
			snapshot.Symptoms = nonEmpty(entries)
		}
		return nil
	}

	var err error
	if loader.readScope != nil {
		err = loader.readScope(read)
	} else {
		err = read(loader.cycles, loader.symptoms)
	}
	if err != nil {
		return Snapshot{}, err
	}
	snapshot.History = BuildCycleHistory(snapshot.Cycles)

	if loader.predictions != nil {
		prediction, err := loader.predictions.LatestPrediction(user, snapshot.Cycles, now)
		if err != nil {
			return Snapshot{}, fmt.Errorf("load prediction: %w", err)
		}
		snapshot.Prediction = prediction
	}
	return snapshot, nil
}
