package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"alerting-platform/internal/domain"
)

type NotificationService struct {
	mock.Mock
}

func (m *NotificationService) EligibleRecipients(ctx context.Context, alert *domain.Alert) ([]domain.User, error) {
	args := m.Called(ctx, alert)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *NotificationService) Dispatch(ctx context.Context, alert *domain.Alert, users []domain.User) []domain.PerUserOutcome {
	args := m.Called(ctx, alert, users)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]domain.PerUserOutcome)
}

func (m *NotificationService) SupportsChannel(ch domain.Channel) bool {
	args := m.Called(ch)
	return args.Bool(0)
}
