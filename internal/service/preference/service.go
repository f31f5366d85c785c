package preference

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"alerting-platform/internal/clock"
	"alerting-platform/internal/domain"
	"alerting-platform/internal/repository"
)

// Service owns user actions on per-(user, alert) state and the
// recurring suppression reset sweep. All writes are merge-upserts; a
// missing row is created with the default state first.
type Service interface {
	MarkRead(ctx context.Context, userID, alertID uuid.UUID) error
	MarkUnread(ctx context.Context, userID, alertID uuid.UUID) error
	Snooze(ctx context.Context, userID, alertID uuid.UUID, until time.Time) error
	ListSnoozed(ctx context.Context, userID uuid.UUID) ([]domain.SnoozedAlert, error)

	// ResetExpiredSnoozes clears every snooze whose expiry has passed.
	// Idempotent: running it early or late only changes when the
	// clearing becomes visible, never the end state.
	ResetExpiredSnoozes(ctx context.Context) error

	// SnoozeUntilEndOfDay snoozes through the next midnight, the
	// default when a user snoozes without an explicit expiry.
	SnoozeUntilEndOfDay(ctx context.Context, userID, alertID uuid.UUID) (time.Time, error)
}

type service struct {
	prefRepo repository.PreferenceRepository
	clk      clock.Clock
	logger   *zap.Logger
}

func NewService(prefRepo repository.PreferenceRepository, clk clock.Clock, logger *zap.Logger) Service {
	return &service{
		prefRepo: prefRepo,
		clk:      clk,
		logger:   logger.Named("preference"),
	}
}

func (s *service) MarkRead(ctx context.Context, userID, alertID uuid.UUID) error {
	return s.prefRepo.SetRead(ctx, userID, alertID, true)
}

func (s *service) MarkUnread(ctx context.Context, userID, alertID uuid.UUID) error {
	return s.prefRepo.SetRead(ctx, userID, alertID, false)
}

func (s *service) Snooze(ctx context.Context, userID, alertID uuid.UUID, until time.Time) error {
	return s.prefRepo.Snooze(ctx, userID, alertID, until)
}

func (s *service) SnoozeUntilEndOfDay(ctx context.Context, userID, alertID uuid.UUID) (time.Time, error) {
	now := s.clk.Now()
	until := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)

	if err := s.prefRepo.Snooze(ctx, userID, alertID, until); err != nil {
		return time.Time{}, err
	}
	return until, nil
}

func (s *service) ListSnoozed(ctx context.Context, userID uuid.UUID) ([]domain.SnoozedAlert, error) {
	return s.prefRepo.ListSnoozedAlerts(ctx, userID)
}

func (s *service) ResetExpiredSnoozes(ctx context.Context) error {
	cleared, err := s.prefRepo.ResetExpiredSnoozes(ctx, s.clk.Now())
	if err != nil {
		return err
	}
	if cleared > 0 {
		s.logger.Info("cleared expired snoozes", zap.Int64("count", cleared))
	}
	return nil
}
