package notification

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"alerting-platform/internal/clock"
	"alerting-platform/internal/domain"
	"alerting-platform/internal/repository"
	"alerting-platform/internal/service/channel"
)

// Service resolves who should receive an alert and fans deliveries out
// through the channel adapter matching the alert's channel tag.
type Service interface {
	// EligibleRecipients computes the alert's candidate set from its
	// targeting rule and drops users with an active snooze. A snooze
	// whose expiry has passed no longer excludes, even before the reset
	// sweep has cleared it. Pure read; no ordering guarantee.
	EligibleRecipients(ctx context.Context, alert *domain.Alert) ([]domain.User, error)

	// Dispatch delivers the alert to each user independently and
	// returns per-user outcomes. A failed recipient never blocks the
	// remaining ones.
	Dispatch(ctx context.Context, alert *domain.Alert, users []domain.User) []domain.PerUserOutcome

	SupportsChannel(ch domain.Channel) bool
}

type service struct {
	userRepo repository.UserRepository
	prefRepo repository.PreferenceRepository
	registry *channel.Registry
	clk      clock.Clock
	logger   *zap.Logger
}

func NewService(
	userRepo repository.UserRepository,
	prefRepo repository.PreferenceRepository,
	registry *channel.Registry,
	clk clock.Clock,
	logger *zap.Logger,
) Service {
	return &service{
		userRepo: userRepo,
		prefRepo: prefRepo,
		registry: registry,
		clk:      clk,
		logger:   logger.Named("notification"),
	}
}

func (s *service) EligibleRecipients(ctx context.Context, alert *domain.Alert) ([]domain.User, error) {
	candidates, err := s.candidates(ctx, alert)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	prefs, err := s.prefRepo.ListByAlert(ctx, alert.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load preferences for alert %s: %w", alert.ID, err)
	}

	byUser := make(map[uuid.UUID]*domain.UserAlertPreference, len(prefs))
	for i := range prefs {
		byUser[prefs[i].UserID] = &prefs[i]
	}

	now := s.clk.Now()
	eligible := make([]domain.User, 0, len(candidates))
	for _, user := range candidates {
		if pref, ok := byUser[user.ID]; ok && pref.SnoozeActive(now) {
			continue
		}
		eligible = append(eligible, user)
	}
	return eligible, nil
}

// candidates resolves the raw recipient set from the targeting rule.
// A team or user variant with an empty target set yields zero
// candidates, never "all users".
func (s *service) candidates(ctx context.Context, alert *domain.Alert) ([]domain.User, error) {
	switch alert.Visibility.Type {
	case domain.VisibilityOrganization:
		return s.userRepo.GetAll(ctx)
	case domain.VisibilityTeam:
		return s.userRepo.GetByTeamIDs(ctx, alert.Visibility.TargetIDs)
	case domain.VisibilityUser:
		return s.userRepo.GetByIDs(ctx, alert.Visibility.TargetIDs)
	default:
		return nil, fmt.Errorf("unknown visibility type %q", alert.Visibility.Type)
	}
}

func (s *service) Dispatch(ctx context.Context, alert *domain.Alert, users []domain.User) []domain.PerUserOutcome {
	notifier, ok := s.registry.Get(alert.Channel)
	if !ok {
		// Guarded against at alert creation; reaching this means the
		// registry changed underneath a stored alert.
		s.logger.Warn("no notifier registered for channel",
			zap.String("alert_id", alert.ID.String()),
			zap.String("channel", string(alert.Channel)),
		)
		return nil
	}

	outcomes := make([]domain.PerUserOutcome, 0, len(users))
	for i := range users {
		outcome := notifier.Deliver(ctx, alert, &users[i])
		outcomes = append(outcomes, domain.PerUserOutcome{
			UserID:          users[i].ID,
			DeliveryOutcome: outcome,
		})
	}
	return outcomes
}

func (s *service) SupportsChannel(ch domain.Channel) bool {
	return s.registry.Supports(ch)
}
