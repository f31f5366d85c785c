package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"alerting-platform/internal/domain"
)

type AlertService struct {
	mock.Mock
}

func (m *AlertService) Create(ctx context.Context, creatorID uuid.UUID, input domain.CreateAlertInput) (*domain.Alert, error) {
	args := m.Called(ctx, creatorID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Alert), args.Error(1)
}

func (m *AlertService) Update(ctx context.Context, id uuid.UUID, input domain.UpdateAlertInput) (*domain.Alert, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Alert), args.Error(1)
}

func (m *AlertService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Alert, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Alert), args.Error(1)
}

func (m *AlertService) List(ctx context.Context, filter domain.AlertFilter) ([]domain.Alert, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Alert), args.Error(1)
}

func (m *AlertService) ListForUser(ctx context.Context, userID uuid.UUID) ([]domain.UserAlert, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UserAlert), args.Error(1)
}

func (m *AlertService) Deliver(ctx context.Context, alert *domain.Alert) ([]domain.PerUserOutcome, error) {
	args := m.Called(ctx, alert)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PerUserOutcome), args.Error(1)
}

func (m *AlertService) ProcessReminders(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
