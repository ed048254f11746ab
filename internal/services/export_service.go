package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/terraincognita07/mycare/internal/models"
)

var ExportCSVHeaders = []string{
	"Date",
	"Period",
	"Flow",
	"Cramps",
	"Bloating",
	"Headache",
	"Mood",
	"Energy",
	"Notes",
}

// ExportEntry is one day that has a logged period, a symptom entry, or both.
type ExportEntry struct {
	Date     models.CalendarDate `json:"date"`
	Period   bool                `json:"period"`
	Flow     models.FlowLevel    `json:"flow,omitempty"`
	Cramps   int                 `json:"cramps"`
	Bloating int                 `json:"bloating"`
	Headache int                 `json:"headache"`
	Mood     models.Mood         `json:"mood,omitempty"`
	Energy   models.Energy       `json:"energy,omitempty"`
	Notes    string              `json:"notes"`
}

type ExportSummary struct {
	TotalEntries int                 `json:"total_entries"`
	HasData      bool                `json:"has_data"`
	DateFrom     models.CalendarDate `json:"date_from,omitempty"`
	DateTo       models.CalendarDate `json:"date_to,omitempty"`
}

type ExportService struct {
	cycles   CycleReader
	symptoms SymptomReader
}

func NewExportService(cycles CycleReader, symptoms SymptomReader) *ExportService {
	return &ExportService{cycles: cycles, symptoms: symptoms}
}

// BuildEntries returns one entry per day within the optional bounds, oldest first.
func (service *ExportService) BuildEntries(userID uint, from models.CalendarDate, to models.CalendarDate) ([]ExportEntry, error) {
	cycles, err := service.cycles.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("load cycles: %w", err)
	}
	symptoms, err := service.symptoms.ListByUser(userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("load symptoms: %w", err)
	}

	byDate := make(map[models.CalendarDate]*ExportEntry)
	entryFor := func(date models.CalendarDate) *ExportEntry {
		entry, ok := byDate[date]
		if !ok {
			entry = &ExportEntry{Date: date}
			byDate[date] = entry
		}
		return entry
	}

	for _, cycle := range cycles {
		for day := cycle.StartDate; !day.After(cycle.LastDay()); day = day.AddDays(1) {
			if !withinRange(day, from, to) {
				continue
			}
			entry := entryFor(day)
			entry.Period = true
			entry.Flow = cycle.FlowLevel
			if day == cycle.StartDate && entry.Notes == "" {
				entry.Notes = cycle.Notes
			}
		}
	}
	for _, symptom := range symptoms {
		if !withinRange(symptom.Date, from, to) {
			continue
		}
		entry := entryFor(symptom.Date)
		entry.Cramps = symptom.Cramps
		entry.Bloating = symptom.Bloating
		entry.Headache = symptom.Headache
		entry.Mood = symptom.Mood
		entry.Energy = symptom.Energy
		if symptom.Notes != "" {
			entry.Notes = symptom.Notes
		}
	}

	entries := make([]ExportEntry, 0, len(byDate))
	for _, entry := range byDate {
		entries = append(entries, *entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Date < entries[j].Date
	})
	return entries, nil
}

func (service *ExportService) BuildSummary(userID uint, from models.CalendarDate, to models.CalendarDate) (ExportSummary, error) {
	entries, err := service.BuildEntries(userID, from, to)
	if err != nil {
		return ExportSummary{}, err
	}
	if len(entries) == 0 {
		return ExportSummary{}, nil
	}
	return ExportSummary{
		TotalEntries: len(entries),
		HasData:      true,
		DateFrom:     entries[0].Date,
		DateTo:       entries[len(entries)-1].Date,
	}, nil
}

// WriteExportCSV writes the header row followed by one row per entry.
func WriteExportCSV(out io.Writer, entries []ExportEntry) error {
	writer := csv.NewWriter(out)
	if err := writer.Write(ExportCSVHeaders); err != nil {
		return err
	}
	for _, entry := range entries {
		period := "no"
		if entry.Period {
			period = "yes"
		}
		row := []string{
			entry.Date.String(),
			period,
			string(entry.Flow),
			strconv.Itoa(entry.Cramps),
			strconv.Itoa(entry.Bloating),
			strconv.Itoa(entry.Headache),
			string(entry.Mood),
			string(entry.Energy),
			entry.Notes,
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func withinRange(date models.CalendarDate, from models.CalendarDate, to models.CalendarDate) bool {
	if !from.IsZero() && date.Before(from) {
		return false
	}
	if !to.IsZero() && date.After(to) {
		return false
	}
	return true
}
