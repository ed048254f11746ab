package services

import (
	"time"

	"github.com/terraincognita07/mycare/internal/insights"
	"github.com/terraincognita07/mycare/internal/models"
)

type InsightsReport struct {
	Trends     insights.Trends         `json:"trends"`
	Averages   insights.Averages       `json:"averages"`
	CycleCount int                     `json:"cycle_count"`
	History    []insights.CycleSummary `json:"history"`
}

type StatsService struct {
	snapshots *SnapshotLoader
}

func NewStatsService(snapshots *SnapshotLoader) *StatsService {
	return &StatsService{snapshots: snapshots}
}

// BuildInsights derives trend series from the cycle history and reports the
// averages of the current prediction, or the defaults without one.
func (service *StatsService) BuildInsights(user *models.User, now time.Time) (InsightsReport, error) {
	snapshot, err := service.snapshots.Load(user, "", "", now)
	if err != nil {
		return InsightsReport{}, err
	}

	var cycleLength, periodLength *int
	if snapshot.Prediction != nil {
		cycleLength = &snapshot.Prediction.AverageCycleLength
		periodLength = &snapshot.Prediction.AveragePeriodLength
	}

	return InsightsReport{
		Trends:     insights.BuildTrends(snapshot.History.History),
		Averages:   insights.ResolveAverages(cycleLength, periodLength),
		CycleCount: snapshot.History.CycleCount,
		History:    snapshot.History.History,
	}, nil
}
