package channel

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"alerting-platform/internal/clock"
	"alerting-platform/internal/domain"
	"alerting-platform/internal/repository"
)

// Transport hands one (alert, user) pair off to an external provider.
// Transports only report success or failure; all bookkeeping lives in
// Notifier.
type Transport interface {
	Send(ctx context.Context, alert *domain.Alert, user *domain.User) error
}

// Notifier is one delivery channel adapter: a Transport plus the
// bookkeeping shared by every channel. Each attempt persists exactly
// one NotificationDelivery row, and a successful attempt stamps the
// recipient's last-delivered preference. Transport and storage errors
// are captured in the returned outcome, never propagated, so one
// recipient's failure cannot abort delivery to the rest.
type Notifier struct {
	channel    domain.Channel
	transport  Transport
	deliveries repository.DeliveryRepository
	prefs      repository.PreferenceRepository
	clk        clock.Clock
	logger     *zap.Logger
}

func NewNotifier(
	ch domain.Channel,
	transport Transport,
	deliveries repository.DeliveryRepository,
	prefs repository.PreferenceRepository,
	clk clock.Clock,
	logger *zap.Logger,
) *Notifier {
	return &Notifier{
		channel:    ch,
		transport:  transport,
		deliveries: deliveries,
		prefs:      prefs,
		clk:        clk,
		logger:     logger.Named("channel").With(zap.String("channel", string(ch))),
	}
}

func (n *Notifier) Channel() domain.Channel {
	return n.channel
}

func (n *Notifier) Deliver(ctx context.Context, alert *domain.Alert, user *domain.User) domain.DeliveryOutcome {
	now := n.clk.Now()
	sendErr := n.transport.Send(ctx, alert, user)

	delivery := &domain.NotificationDelivery{
		ID:      uuid.New(),
		AlertID: alert.ID,
		UserID:  user.ID,
		Channel: n.channel,
	}
	if sendErr != nil {
		delivery.Status = domain.DeliveryFailed
	} else {
		delivery.Status = domain.DeliveryDelivered
		delivery.DeliveredAt = &now
	}

	if err := n.deliveries.Create(ctx, delivery); err != nil {
		n.logger.Error("failed to persist delivery record",
			zap.String("alert_id", alert.ID.String()),
			zap.String("user_id", user.ID.String()),
			zap.Error(err),
		)
		return n.failure(err.Error())
	}

	if sendErr != nil {
		n.logger.Warn("delivery failed",
			zap.String("alert_id", alert.ID.String()),
			zap.String("user_id", user.ID.String()),
			zap.Error(sendErr),
		)
		return n.failure(sendErr.Error())
	}

	if err := n.prefs.TouchDelivered(ctx, user.ID, alert.ID, now); err != nil {
		n.logger.Error("failed to update last-delivered",
			zap.String("alert_id", alert.ID.String()),
			zap.String("user_id", user.ID.String()),
			zap.Error(err),
		)
		return n.failure(err.Error())
	}

	return domain.DeliveryOutcome{Success: true, Channel: n.channel}
}

func (n *Notifier) failure(reason string) domain.DeliveryOutcome {
	return domain.DeliveryOutcome{Success: false, Channel: n.channel, Error: reason}
}

// Registry maps each channel tag to its adapter. The set of channels is
// closed; alert creation validates against it so a missing adapter is a
// startup configuration error, not a silent no-op at dispatch time.
type Registry struct {
	notifiers map[domain.Channel]*Notifier
}

func NewRegistry(notifiers ...*Notifier) *Registry {
	m := make(map[domain.Channel]*Notifier, len(notifiers))
	for _, n := range notifiers {
		m[n.Channel()] = n
	}
	return &Registry{notifiers: m}
}

func (r *Registry) Get(ch domain.Channel) (*Notifier, bool) {
	n, ok := r.notifiers[ch]
	return n, ok
}

func (r *Registry) Supports(ch domain.Channel) bool {
	_, ok := r.notifiers[ch]
	return ok
}
