package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"alerting-platform/internal/domain"
)

type PreferenceService struct {
	mock.Mock
}

func (m *PreferenceService) MarkRead(ctx context.Context, userID, alertID uuid.UUID) error {
	args := m.Called(ctx, userID, alertID)
	return args.Error(0)
}

func (m *PreferenceService) MarkUnread(ctx context.Context, userID, alertID uuid.UUID) error {
	args := m.Called(ctx, userID, alertID)
	return args.Error(0)
}

func (m *PreferenceService) Snooze(ctx context.Context, userID, alertID uuid.UUID, until time.Time) error {
	args := m.Called(ctx, userID, alertID, until)
	return args.Error(0)
}

func (m *PreferenceService) SnoozeUntilEndOfDay(ctx context.Context, userID, alertID uuid.UUID) (time.Time, error) {
	args := m.Called(ctx, userID, alertID)
	return args.Get(0).(time.Time), args.Error(1)
}

func (m *PreferenceService) ListSnoozed(ctx context.Context, userID uuid.UUID) ([]domain.SnoozedAlert, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SnoozedAlert), args.Error(1)
}

func (m *PreferenceService) ResetExpiredSnoozes(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
