package services

import (
	"time"

	"github.com/terraincognita07/mycare/internal/insights"
	"github.com/terraincognita07/mycare/internal/models"
)

type CalendarMonth struct {
	Month       string              `json:"month"`
	Today       models.CalendarDate `json:"today"`
	Days        []insights.MonthDay `json:"days"`
	HasForecast bool                `json:"has_forecast"`
}

type CalendarService struct {
	snapshots *SnapshotLoader
	location  *time.Location
}

func NewCalendarService(snapshots *SnapshotLoader, location *time.Location) *CalendarService {
	if location == nil {
		location = time.UTC
	}
	return &CalendarService{snapshots: snapshots, location: location}
}

// Month resolves every day of the YYYY-MM month for user. An empty selector
// means the current month.
func (service *CalendarService) Month(user *models.User, rawMonth string, now time.Time) (CalendarMonth, error) {
	today := TodayAt(now, service.location)
	year, month := today.Time().Year(), today.Time().Month()
	if rawMonth != "" {
		var err error
		year, month, err = ParseMonth(rawMonth)
		if err != nil {
			return CalendarMonth{}, err
		}
	}

	monthStart := models.DateOf(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC))
	monthEnd := models.DateOf(time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC))
	snapshot, err := service.snapshots.Load(user, monthStart, monthEnd, now)
	if err != nil {
		return CalendarMonth{}, err
	}

	days, err := insights.ResolveMonth(year, month, today, snapshot.Cycles, snapshot.Prediction, snapshot.Symptoms)
	if err != nil {
		return CalendarMonth{}, err
	}
	return CalendarMonth{
		Month:       time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Format("2006-01"),
		Today:       today,
		Days:        days,
		HasForecast: snapshot.Prediction != nil,
	}, nil
}

type CalendarDay struct {
	insights.DayResolution
	Symptom *models.SymptomEntry `json:"symptom"`
	Cycle   *models.CycleRecord  `json:"cycle"`
}

// Day returns the status of a single date together with what was logged on it.
func (service *CalendarService) Day(user *models.User, rawDate string, now time.Time) (CalendarDay, error) {
	date, err := models.ParseCalendarDate(rawDate)
	if err != nil {
		return CalendarDay{}, err
	}

	snapshot, err := service.snapshots.Load(user, date, date, now)
	if err != nil {
		return CalendarDay{}, err
	}

	resolution, err := insights.ResolveStatus(date, snapshot.Cycles, snapshot.Prediction, snapshot.Symptoms)
	if err != nil {
		return CalendarDay{}, err
	}
	details, err := insights.DayDetail(date, snapshot.Cycles, snapshot.Symptoms)
	if err != nil {
		return CalendarDay{}, err
	}
	return CalendarDay{
		DayResolution: resolution,
		Symptom:       details.Symptom,
		Cycle:         details.Cycle,
	}, nil
}
