package channel_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"alerting-platform/internal/clock"
	"alerting-platform/internal/domain"
	"alerting-platform/internal/mocks"
	"alerting-platform/internal/service/channel"
)

func TestNotifier_Deliver(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	alert := &domain.Alert{ID: uuid.New(), Title: "Disk pressure", Channel: domain.ChannelInApp}
	user := &domain.User{ID: uuid.New(), Name: "Ana", Email: "ana@example.com"}

	t.Run("Success", func(t *testing.T) {
		transport := new(mocks.Transport)
		deliveries := new(mocks.DeliveryRepository)
		prefs := new(mocks.PreferenceRepository)
		n := channel.NewNotifier(domain.ChannelInApp, transport, deliveries, prefs, clock.NewFakeClock(now), zap.NewNop())

		transport.On("Send", ctx, alert, user).Return(nil).Once()
		deliveries.On("Create", ctx, mock.MatchedBy(func(d *domain.NotificationDelivery) bool {
			return d.AlertID == alert.ID &&
				d.UserID == user.ID &&
				d.Channel == domain.ChannelInApp &&
				d.Status == domain.DeliveryDelivered &&
				d.DeliveredAt != nil && d.DeliveredAt.Equal(now)
		})).Return(nil).Once()
		prefs.On("TouchDelivered", ctx, user.ID, alert.ID, now).Return(nil).Once()

		outcome := n.Deliver(ctx, alert, user)

		assert.True(t, outcome.Success)
		assert.Equal(t, domain.ChannelInApp, outcome.Channel)
		assert.Empty(t, outcome.Error)
		transport.AssertExpectations(t)
		deliveries.AssertExpectations(t)
		prefs.AssertExpectations(t)
	})

	t.Run("Transport Failure", func(t *testing.T) {
		transport := new(mocks.Transport)
		deliveries := new(mocks.DeliveryRepository)
		prefs := new(mocks.PreferenceRepository)
		n := channel.NewNotifier(domain.ChannelEmail, transport, deliveries, prefs, clock.NewFakeClock(now), zap.NewNop())

		transport.On("Send", ctx, alert, user).Return(errors.New("provider unavailable")).Once()
		deliveries.On("Create", ctx, mock.MatchedBy(func(d *domain.NotificationDelivery) bool {
			return d.Status == domain.DeliveryFailed && d.DeliveredAt == nil
		})).Return(nil).Once()

		outcome := n.Deliver(ctx, alert, user)

		assert.False(t, outcome.Success)
		assert.Equal(t, "provider unavailable", outcome.Error)
		deliveries.AssertExpectations(t)
		prefs.AssertNotCalled(t, "TouchDelivered", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Record Persist Failure", func(t *testing.T) {
		transport := new(mocks.Transport)
		deliveries := new(mocks.DeliveryRepository)
		prefs := new(mocks.PreferenceRepository)
		n := channel.NewNotifier(domain.ChannelInApp, transport, deliveries, prefs, clock.NewFakeClock(now), zap.NewNop())

		transport.On("Send", ctx, alert, user).Return(nil).Once()
		deliveries.On("Create", ctx, mock.Anything).Return(errors.New("db down")).Once()

		outcome := n.Deliver(ctx, alert, user)

		assert.False(t, outcome.Success)
		assert.Contains(t, outcome.Error, "db down")
		prefs.AssertNotCalled(t, "TouchDelivered", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestRegistry(t *testing.T) {
	deliveries := new(mocks.DeliveryRepository)
	prefs := new(mocks.PreferenceRepository)
	clk := clock.NewFakeClock(time.Now())

	inApp := channel.NewNotifier(domain.ChannelInApp, channel.NewInAppTransport(), deliveries, prefs, clk, zap.NewNop())
	registry := channel.NewRegistry(inApp)

	assert.True(t, registry.Supports(domain.ChannelInApp))
	assert.False(t, registry.Supports(domain.ChannelSMS))

	got, ok := registry.Get(domain.ChannelInApp)
	assert.True(t, ok)
	assert.Equal(t, domain.ChannelInApp, got.Channel())

	_, ok = registry.Get(domain.ChannelEmail)
	assert.False(t, ok)
}
