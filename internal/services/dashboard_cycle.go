package services

import (
	"context"
	"time"

	"github.com/terraincognita07/mycare/internal/insights"
	"github.com/terraincognita07/mycare/internal/models"
)

type DashboardUser struct {
	Name     string `json:"name"`
	Language string `json:"language"`
}

type Dashboard struct {
	User           DashboardUser              `json:"user"`
	Today          models.CalendarDate        `json:"today"`
	Prediction     *models.PredictionSnapshot `json:"prediction"`
	Journey        insights.Journey           `json:"journey"`
	RecentSymptoms []models.SymptomEntry      `json:"recent_symptoms"`
	Stats          CycleHistory               `json:"stats"`
	Water          *WaterIntake               `json:"water,omitempty"`
}

type DashboardService struct {
	snapshots *SnapshotLoader
	water     *WaterIntakeTracker
	location  *time.Location
}

// NewDashboardService accepts a nil water tracker; the dashboard then omits water intake.
func NewDashboardService(snapshots *SnapshotLoader, water *WaterIntakeTracker, location *time.Location) *DashboardService {
	if location == nil {
		location = time.UTC
	}
	return &DashboardService{snapshots: snapshots, water: water, location: location}
}

func (service *DashboardService) BuildDashboard(ctx context.Context, user *models.User, now time.Time) (Dashboard, error) {
	today := TodayAt(now, service.location)
	snapshot, err := service.snapshots.Load(user, today.AddDays(-recentSymptomDays), today, now)
	if err != nil {
		return Dashboard{}, err
	}

	recent := snapshot.Symptoms
	sortSymptomsByDateDesc(recent)
	if len(recent) > recentSymptomDays {
		recent = recent[:recentSymptomDays]
	}

	dashboard := Dashboard{
		User:           DashboardUser{Name: user.Name, Language: user.Language},
		Today:          today,
		Prediction:     snapshot.Prediction,
		Journey:        insights.BuildJourney(snapshot.Prediction),
		RecentSymptoms: recent,
		Stats:          snapshot.History,
	}

	if service.water != nil {
		intake, err := service.water.Today(ctx, user.ID, now)
		if err != nil {
			return Dashboard{}, err
		}
		dashboard.Water = &intake
	}
	return dashboard, nil
}
