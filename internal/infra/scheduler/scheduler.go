package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

const (
	ritualReminderTimeout = 5 * time.Minute
	ageRefreshTimeout     = 5 * time.Minute
)

// Jobs is the work the scheduler triggers.
type Jobs interface {
	SendRitualReminders(ctx context.Context) error
	RefreshProfileAges(ctx context.Context, now time.Time) (int, error)
}

type ReminderScheduler struct {
	cronEngine             *cron.Cron
	jobs                   Jobs
	logger                 *logrus.Entry
	location               *time.Location
	cronSpecRitualReminder string
	cronSpecAgeRefresh     string
}

func NewReminderScheduler(
	jobs Jobs,
	logger *logrus.Entry,
	location *time.Location,
	cronSpecRitualReminder string, // e.g. "0 9 * * *" (09:00 daily)
	cronSpecAgeRefresh string, // e.g. "5 0 1 1 *" (00:05 on 1 January)
) *ReminderScheduler {
	if location == nil {
		location = time.Local
	}
	return &ReminderScheduler{
		cronEngine:             cron.New(cron.WithLocation(location)),
		jobs:                   jobs,
		logger:                 logger,
		location:               location,
		cronSpecRitualReminder: cronSpecRitualReminder,
		cronSpecAgeRefresh:     cronSpecAgeRefresh,
	}
}

// Start registers the jobs and starts the cron engine. An invalid cron spec
// is returned as an error and nothing is started.
func (s *ReminderScheduler) Start() error {
	s.logger.Info("Starting reminder scheduler...")

	if _, err := s.cronEngine.AddFunc(s.cronSpecRitualReminder, s.runRitualReminders); err != nil {
		return fmt.Errorf("could not add ritual reminder job %q: %w", s.cronSpecRitualReminder, err)
	}
	if _, err := s.cronEngine.AddFunc(s.cronSpecAgeRefresh, s.runAgeRefresh); err != nil {
		return fmt.Errorf("could not add age refresh job %q: %w", s.cronSpecAgeRefresh, err)
	}

	s.cronEngine.Start()
	s.logger.WithFields(logrus.Fields{
		"ritual_reminder": s.cronSpecRitualReminder,
		"age_refresh":     s.cronSpecAgeRefresh,
		"location":        s.location.String(),
	}).Info("Reminder scheduler started with jobs")
	return nil
}

func (s *ReminderScheduler) runRitualReminders() {
	log := s.logger.WithField("job", "ritual_reminder")
	log.Info("Cron job triggered")

	ctx, cancel := context.WithTimeout(context.Background(), ritualReminderTimeout)
	defer cancel()
	if err := s.jobs.SendRitualReminders(ctx); err != nil {
		log.WithError(err).Error("Ritual reminder job failed")
	}
}

func (s *ReminderScheduler) runAgeRefresh() {
	log := s.logger.WithField("job", "age_refresh")
	log.Info("Cron job triggered")

	ctx, cancel := context.WithTimeout(context.Background(), ageRefreshTimeout)
	defer cancel()
	updated, err := s.jobs.RefreshProfileAges(ctx, time.Now().In(s.location))
	if err != nil {
		log.WithError(err).Error("Age refresh job failed")
		return
	}
	log.WithField("updated", updated).Info("Age refresh job finished")
}

// Stop stops scheduling and waits for running jobs to finish.
func (s *ReminderScheduler) Stop() {
	s.logger.Info("Stopping reminder scheduler...")
	ctx := s.cronEngine.Stop()
	<-ctx.Done()
	s.logger.Info("Reminder scheduler gracefully stopped")
}
