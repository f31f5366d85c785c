package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"alerting-platform/internal/config"
	"alerting-platform/internal/service/alert"
	"alerting-platform/internal/service/preference"
)

const jobTimeout = 5 * time.Minute

// Scheduler owns the two recurring sweeps: the reminder sweep and the
// expired-snooze reset. Both run independently of request-driven work
// and of each other; a failed run logs and waits for the next tick.
type Scheduler struct {
	engine      *cron.Cron
	alertSvc    alert.Service
	prefSvc     preference.Service
	reminder    string
	snoozeReset string
	logger      *zap.Logger
}

func New(cfg *config.Config, alertSvc alert.Service, prefSvc preference.Service, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		engine:      cron.New(),
		alertSvc:    alertSvc,
		prefSvc:     prefSvc,
		reminder:    cfg.ReminderCron,
		snoozeReset: cfg.SnoozeResetCron,
		logger:      logger.Named("scheduler"),
	}
}

func (s *Scheduler) RegisterJobs() error {
	if _, err := s.engine.AddFunc(s.reminder, s.runReminderSweep); err != nil {
		return err
	}
	if _, err := s.engine.AddFunc(s.snoozeReset, s.runSnoozeReset); err != nil {
		return err
	}
	return nil
}

func (s *Scheduler) Start() {
	s.logger.Info("scheduler starting",
		zap.String("reminder_cron", s.reminder),
		zap.String("snooze_reset_cron", s.snoozeReset),
	)
	s.engine.Start()
}

// Stop halts scheduling and waits for any in-flight job to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("scheduler stopping")
	<-s.engine.Stop().Done()
}

func (s *Scheduler) runReminderSweep() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	s.logger.Info("processing reminders")
	if err := s.alertSvc.ProcessReminders(ctx); err != nil {
		s.logger.Error("reminder sweep failed", zap.Error(err))
		return
	}
	s.logger.Info("reminders processed")
}

func (s *Scheduler) runSnoozeReset() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	s.logger.Info("resetting expired snoozes")
	if err := s.prefSvc.ResetExpiredSnoozes(ctx); err != nil {
		s.logger.Error("snooze reset failed", zap.Error(err))
	}
}
