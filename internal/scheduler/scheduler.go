package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/example/codereps/internal/logger"
	"github.com/example/codereps/pkg/models"
)

// Notifier delivers a reminder about due reviews to a linked chat.
type Notifier interface {
	SendReminder(chatID int64, dueCount int) error
}

// Store is the slice of the database the reminder job reads.
type Store interface {
	NotificationsForHour(ctx context.Context, hour int) ([]models.NotificationSettings, error)
	DueReviewCount(ctx context.Context, userID string, cutoff time.Time) (int, error)
}

// Scheduler runs the hourly due-review reminder job.
type Scheduler struct {
	scheduler *gocron.Scheduler
	store     Store
	notifier  Notifier
	log       *logger.Logger
}

func New(store Store, notifier Notifier, log *logger.Logger) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		store:     store,
		notifier:  notifier,
		log:       log.With("component", "scheduler"),
	}
}

// Start schedules the hourly check and runs it in the background.
func (s *Scheduler) Start() error {
	if _, err := s.scheduler.Every(1).Hour().Do(s.checkAndSendReminders); err != nil {
		return err
	}
	s.scheduler.StartAsync()
	return nil
}

// Stop terminates all scheduled tasks.
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// checkAndSendReminders notifies every user whose preferred hour matches
// the current UTC hour and who has at least one review due today. Failures
// are logged and skipped; nothing retries in-process.
func (s *Scheduler) checkAndSendReminders() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	now := time.Now().UTC()
	settings, err := s.store.NotificationsForHour(ctx, now.Hour())
	if err != nil {
		s.log.Error("failed to load notification settings", "error", err)
		return
	}

	endOfDay := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, time.UTC)
	for _, ns := range settings {
		count, err := s.store.DueReviewCount(ctx, ns.UserID, endOfDay)
		if err != nil {
			s.log.Error("failed to count due reviews", "user_id", ns.UserID, "error", err)
			continue
		}
		if count == 0 {
			continue
		}
		if err := s.notifier.SendReminder(ns.TelegramChatID, count); err != nil {
			s.log.Error("failed to send reminder", "user_id", ns.UserID, "error", err)
		}
	}
}
