package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"alerting-platform/internal/domain"
)

type Transport struct {
	mock.Mock
}

func (m *Transport) Send(ctx context.Context, alert *domain.Alert, user *domain.User) error {
	args := m.Called(ctx, alert, user)
	return args.Error(0)
}
