package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"alerting-platform/internal/domain"
)

type DeliveryRepository struct {
	mock.Mock
}

func (m *DeliveryRepository) Create(ctx context.Context, delivery *domain.NotificationDelivery) error {
	args := m.Called(ctx, delivery)
	return args.Error(0)
}

func (m *DeliveryRepository) CountByStatus(ctx context.Context) (map[domain.DeliveryStatus]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.DeliveryStatus]int64), args.Error(1)
}
