package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"alerting-platform/internal/domain"
)

type PreferenceRepository struct {
	mock.Mock
}

func (m *PreferenceRepository) Get(ctx context.Context, userID, alertID uuid.UUID) (*domain.UserAlertPreference, error) {
	args := m.Called(ctx, userID, alertID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserAlertPreference), args.Error(1)
}

func (m *PreferenceRepository) ListByAlert(ctx context.Context, alertID uuid.UUID) ([]domain.UserAlertPreference, error) {
	args := m.Called(ctx, alertID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UserAlertPreference), args.Error(1)
}

func (m *PreferenceRepository) ListStale(ctx context.Context, alertID uuid.UUID, cutoff time.Time) ([]domain.UserAlertPreference, error) {
	args := m.Called(ctx, alertID, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UserAlertPreference), args.Error(1)
}

func (m *PreferenceRepository) SetRead(ctx context.Context, userID, alertID uuid.UUID, read bool) error {
	args := m.Called(ctx, userID, alertID, read)
	return args.Error(0)
}

func (m *PreferenceRepository) Snooze(ctx context.Context, userID, alertID uuid.UUID, until time.Time) error {
	args := m.Called(ctx, userID, alertID, until)
	return args.Error(0)
}

func (m *PreferenceRepository) TouchDelivered(ctx context.Context, userID, alertID uuid.UUID, at time.Time) error {
	args := m.Called(ctx, userID, alertID, at)
	return args.Error(0)
}

func (m *PreferenceRepository) ListSnoozedAlerts(ctx context.Context, userID uuid.UUID) ([]domain.SnoozedAlert, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SnoozedAlert), args.Error(1)
}

func (m *PreferenceRepository) ResetExpiredSnoozes(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

func (m *PreferenceRepository) CountSnoozedAlerts(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
