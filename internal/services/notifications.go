package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"github.com/terraincognita07/mycare/internal/models"
)

const DefaultReminderCronSpec = "*/15 * * * *"

type UserLister interface {
	List() ([]models.User, error)
}

type ReminderLister interface {
	ListByUser(userID uint) ([]models.ReminderConfig, error)
}

type MessageCatalog interface {
	Translatef(language string, key string, args ...any) string
}

// Notifier delivers a reminder message to a user.
type Notifier interface {
	Notify(ctx context.Context, user models.User, reminderType models.ReminderType, message string) error
}

type ReminderMetrics interface {
	ReminderDelivered(reminderType string)
	ReminderFailed(reminderType string)
}

// DueReminders returns the reminder types that should fire on the local
// day of localNow. A reminder is due once its time of day has passed.
// Period and ovulation reminders fire DaysBefore days ahead of the predicted
// date and need a prediction; contraceptive and log reminders fire daily.
func DueReminders(configs []models.ReminderConfig, prediction *models.PredictionSnapshot, localNow time.Time) []models.ReminderType {
	today := models.DateOf(localNow)
	nowMinutes := localNow.Hour()*60 + localNow.Minute()

	due := make([]models.ReminderType, 0, len(configs))
	for _, config := range configs {
		if !config.Enabled || !config.Type.Valid() {
			continue
		}
		minutes, ok := config.Time.Minutes()
		if !ok || nowMinutes < minutes {
			continue
		}

		switch config.Type {
		case models.ReminderPeriod:
			if prediction == nil || prediction.NextPeriodDate.IsZero() {
				continue
			}
			if prediction.NextPeriodDate.AddDays(-config.DaysBefore) != today {
				continue
			}
		case models.ReminderOvulation:
			if prediction == nil || prediction.OvulationDate.IsZero() {
				continue
			}
			if prediction.OvulationDate.AddDays(-config.DaysBefore) != today {
				continue
			}
		}
		due = append(due, config.Type)
	}
	return due
}

type ReminderScheduler struct {
	users       UserLister
	reminders   ReminderLister
	cycles      CycleReader
	predictions PredictionSource
	notifier    Notifier
	messages    MessageCatalog
	metrics     ReminderMetrics
	logger      logrus.FieldLogger
	location    *time.Location
	engine      *cron.Cron

	mu            sync.Mutex
	sentReminders map[string]models.CalendarDate
}

type ReminderSchedulerDeps struct {
	Users       UserLister
	Reminders   ReminderLister
	Cycles      CycleReader
	Predictions PredictionSource
	Notifier    Notifier
	Messages    MessageCatalog
	Metrics     ReminderMetrics
	Logger      logrus.FieldLogger
	Location    *time.Location
}

func NewReminderScheduler(deps ReminderSchedulerDeps) *ReminderScheduler {
	location := deps.Location
	if location == nil {
		location = time.UTC
	}
	logger := deps.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &ReminderScheduler{
		users:         deps.Users,
		reminders:     deps.Reminders,
		cycles:        deps.Cycles,
		predictions:   deps.Predictions,
		notifier:      deps.Notifier,
		messages:      deps.Messages,
		metrics:       deps.Metrics,
		logger:        logger.WithField("component", "reminder_scheduler"),
		location:      location,
		engine:        cron.New(cron.WithLocation(location)),
		sentReminders: make(map[string]models.CalendarDate),
	}
}

// Start registers the reminder check under spec and starts the cron engine.
func (scheduler *ReminderScheduler) Start(spec string) error {
	if spec == "" {
		spec = DefaultReminderCronSpec
	}
	_, err := scheduler.engine.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		scheduler.RunOnce(ctx, time.Now())
	})
	if err != nil {
		return fmt.Errorf("add reminder cron job %q: %w", spec, err)
	}

	scheduler.engine.Start()
	scheduler.logger.WithField("spec", spec).Info("reminder scheduler started")
	return nil
}

// Stop waits for a running check to finish.
func (scheduler *ReminderScheduler) Stop() {
	<-scheduler.engine.Stop().Done()
	scheduler.logger.Info("reminder scheduler stopped")
}

// RunOnce evaluates every user's reminders at now and returns how many were delivered.
func (scheduler *ReminderScheduler) RunOnce(ctx context.Context, now time.Time) int {
	users, err := scheduler.users.List()
	if err != nil {
		scheduler.logger.WithError(err).Error("list users failed")
		return 0
	}

	localNow := now.In(scheduler.location)
	today := models.DateOf(localNow)
	delivered := 0
	for _, user := range users {
		if ctx.Err() != nil {
			return delivered
		}
		delivered += scheduler.runForUser(ctx, user, localNow, today)
	}
	return delivered
}

func (scheduler *ReminderScheduler) runForUser(ctx context.Context, user models.User, localNow time.Time, today models.CalendarDate) int {
	logger := scheduler.logger.WithField("user_id", user.ID)

	configs, err := scheduler.reminders.ListByUser(user.ID)
	if err != nil {
		logger.WithError(err).Error("list reminders failed")
		return 0
	}
	if !anyReminderEnabled(configs) {
		return 0
	}

	cycles, err := scheduler.cycles.ListByUser(user.ID)
	if err != nil {
		logger.WithError(err).Error("list cycles failed")
		return 0
	}
	var prediction *models.PredictionSnapshot
	if scheduler.predictions != nil {
		prediction, err = scheduler.predictions.LatestPrediction(&user, cycles, localNow)
		if err != nil {
			logger.WithError(err).Warn("prediction failed; only daily reminders are evaluated")
			prediction = nil
		}
	}

	delivered := 0
	for _, reminderType := range DueReminders(configs, prediction, localNow) {
		key := fmt.Sprintf("%s:%d", reminderType, user.ID)
		if !scheduler.shouldSend(key, today) {
			continue
		}

		message := scheduler.reminderMessage(user.Language, reminderType, prediction)
		if err := scheduler.notifier.Notify(ctx, user, reminderType, message); err != nil {
			scheduler.forget(key)
			logger.WithError(err).WithField("type", reminderType).Error("send reminder failed")
			if scheduler.metrics != nil {
				scheduler.metrics.ReminderFailed(string(reminderType))
			}
			continue
		}
		delivered++
		if scheduler.metrics != nil {
			scheduler.metrics.ReminderDelivered(string(reminderType))
		}
	}
	return delivered
}

func (scheduler *ReminderScheduler) reminderMessage(language string, reminderType models.ReminderType, prediction *models.PredictionSnapshot) string {
	key := "reminder." + string(reminderType)
	if scheduler.messages == nil {
		return key
	}
	switch reminderType {
	case models.ReminderPeriod:
		return scheduler.messages.Translatef(language, key, prediction.NextPeriodDate.String())
	case models.ReminderOvulation:
		return scheduler.messages.Translatef(language, key, prediction.OvulationDate.String())
	default:
		return scheduler.messages.Translatef(language, key)
	}
}

// shouldSend allows each key once per local day.
func (scheduler *ReminderScheduler) shouldSend(key string, today models.CalendarDate) bool {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()

	if sentOn, ok := scheduler.sentReminders[key]; ok && sentOn == today {
		return false
	}
	scheduler.sentReminders[key] = today
	if len(scheduler.sentReminders) > 500 {
		for existing, sentOn := range scheduler.sentReminders {
			if sentOn != today {
				delete(scheduler.sentReminders, existing)
			}
		}
	}
	return true
}

func (scheduler *ReminderScheduler) forget(key string) {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	delete(scheduler.sentReminders, key)
}

func anyReminderEnabled(configs []models.ReminderConfig) bool {
	for _, config := range configs {
		if config.Enabled {
			return true
		}
	}
	return false
}

// LogNotifier writes reminders to the log instead of delivering them.
type LogNotifier struct {
	logger logrus.FieldLogger
}

func NewLogNotifier(logger logrus.FieldLogger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (notifier *LogNotifier) Notify(_ context.Context, user models.User, reminderType models.ReminderType, message string) error {
	notifier.logger.WithFields(logrus.Fields{
		"user_id": user.ID,
		"type":    reminderType,
	}).Info(message)
	return nil
}
