package alert

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"alerting-platform/internal/clock"
	"alerting-platform/internal/domain"
	"alerting-platform/internal/repository"
	"alerting-platform/internal/service/notification"
)

const defaultReminderFrequency = 2

// Service owns the alert lifecycle: creation and update rules, the
// initial delivery cycle on activation, and the recurring reminder
// sweep.
type Service interface {
	Create(ctx context.Context, creatorID uuid.UUID, input domain.CreateAlertInput) (*domain.Alert, error)
	Update(ctx context.Context, id uuid.UUID, input domain.UpdateAlertInput) (*domain.Alert, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Alert, error)
	List(ctx context.Context, filter domain.AlertFilter) ([]domain.Alert, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]domain.UserAlert, error)

	// Deliver runs one delivery cycle: resolve eligible recipients,
	// then dispatch through the alert's channel.
	Deliver(ctx context.Context, alert *domain.Alert) ([]domain.PerUserOutcome, error)

	// ProcessReminders re-delivers every live, reminder-enabled alert
	// to recipients whose preference row has no last-delivered stamp or
	// one older than the lookback window. Storage errors abort the
	// remainder of the sweep; the next scheduled run starts over.
	ProcessReminders(ctx context.Context) error
}

type service struct {
	alertRepo repository.AlertRepository
	userRepo  repository.UserRepository
	prefRepo  repository.PreferenceRepository
	notifSvc  notification.Service
	clk       clock.Clock
	lookback  time.Duration
	logger    *zap.Logger
}

func NewService(
	alertRepo repository.AlertRepository,
	userRepo repository.UserRepository,
	prefRepo repository.PreferenceRepository,
	notifSvc notification.Service,
	clk clock.Clock,
	lookback time.Duration,
	logger *zap.Logger,
) Service {
	return &service{
		alertRepo: alertRepo,
		userRepo:  userRepo,
		prefRepo:  prefRepo,
		notifSvc:  notifSvc,
		clk:       clk,
		lookback:  lookback,
		logger:    logger.Named("alert"),
	}
}

func (s *service) Create(ctx context.Context, creatorID uuid.UUID, input domain.CreateAlertInput) (*domain.Alert, error) {
	now := s.clk.Now()

	alert := &domain.Alert{
		ID:                uuid.New(),
		Title:             input.Title,
		Message:           input.Message,
		Severity:          domain.SeverityInfo,
		Channel:           domain.ChannelInApp,
		ReminderFrequency: defaultReminderFrequency,
		ReminderEnabled:   true,
		Visibility:        input.Visibility,
		StartTime:         now,
		ExpiryTime:        input.ExpiryTime,
		IsActive:          true,
		CreatedBy:         creatorID,
	}
	if input.Severity != "" {
		alert.Severity = input.Severity
	}
	if input.Channel != "" {
		alert.Channel = input.Channel
	}
	if input.ReminderFrequency != 0 {
		alert.ReminderFrequency = input.ReminderFrequency
	}
	if input.ReminderEnabled != nil {
		alert.ReminderEnabled = *input.ReminderEnabled
	}
	if input.StartTime != nil {
		alert.StartTime = *input.StartTime
	}
	if input.IsActive != nil {
		alert.IsActive = *input.IsActive
	}

	if err := s.validate(alert); err != nil {
		return nil, err
	}

	if err := s.alertRepo.Create(ctx, alert); err != nil {
		return nil, fmt.Errorf("failed to create alert: %w", err)
	}

	if alert.IsLive(now) {
		outcomes, err := s.Deliver(ctx, alert)
		if err != nil {
			s.logger.Error("initial delivery failed",
				zap.String("alert_id", alert.ID.String()),
				zap.Error(err),
			)
		} else {
			s.logDispatch(alert, outcomes)
		}
	}

	return alert, nil
}

func (s *service) validate(alert *domain.Alert) error {
	if alert.Title == "" {
		return domain.NewValidationError("title", "is required")
	}
	if alert.Message == "" {
		return domain.NewValidationError("message", "is required")
	}
	if !alert.Severity.IsValid() {
		return domain.NewValidationError("severity", fmt.Sprintf("unknown severity %q", alert.Severity))
	}
	if !alert.Channel.IsValid() {
		return domain.NewValidationError("channel", fmt.Sprintf("unknown channel %q", alert.Channel))
	}
	if !s.notifSvc.SupportsChannel(alert.Channel) {
		return domain.NewValidationError("channel", fmt.Sprintf("no notifier registered for channel %q", alert.Channel))
	}
	if !alert.Visibility.Type.IsValid() {
		return domain.NewValidationError("visibility.type", fmt.Sprintf("unknown visibility type %q", alert.Visibility.Type))
	}
	if alert.ReminderFrequency < 0 {
		return domain.NewValidationError("reminder_frequency", "must not be negative")
	}
	if alert.ExpiryTime != nil && !alert.ExpiryTime.After(alert.StartTime) {
		return domain.NewValidationError("expiry_time", "must be after start_time")
	}
	return nil
}

// Update applies a partial patch and returns the updated alert. It
// performs no re-delivery; changed severity, channel, or targeting take
// effect for all future deliveries including the next reminder sweep.
func (s *service) Update(ctx context.Context, id uuid.UUID, input domain.UpdateAlertInput) (*domain.Alert, error) {
	alert, err := s.alertRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load alert %s: %w", id, err)
	}
	if alert == nil {
		return nil, domain.ErrAlertNotFound
	}

	if input.Title != nil {
		alert.Title = *input.Title
	}
	if input.Message != nil {
		alert.Message = *input.Message
	}
	if input.Severity != nil {
		alert.Severity = *input.Severity
	}
	if input.Channel != nil {
		alert.Channel = *input.Channel
	}
	if input.ReminderFrequency != nil {
		alert.ReminderFrequency = *input.ReminderFrequency
	}
	if input.ReminderEnabled != nil {
		alert.ReminderEnabled = *input.ReminderEnabled
	}
	if input.Visibility != nil {
		alert.Visibility = *input.Visibility
	}
	if input.StartTime != nil {
		alert.StartTime = *input.StartTime
	}
	if input.ExpiryTime.Set {
		alert.ExpiryTime = input.ExpiryTime.Value
	}
	if input.IsActive != nil {
		alert.IsActive = *input.IsActive
	}

	if err := s.validate(alert); err != nil {
		return nil, err
	}

	if err := s.alertRepo.Update(ctx, alert); err != nil {
		return nil, fmt.Errorf("failed to update alert %s: %w", id, err)
	}
	return alert, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*domain.Alert, error) {
	alert, err := s.alertRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if alert == nil {
		return nil, domain.ErrAlertNotFound
	}
	return alert, nil
}

func (s *service) List(ctx context.Context, filter domain.AlertFilter) ([]domain.Alert, error) {
	return s.alertRepo.List(ctx, filter)
}

func (s *service) ListForUser(ctx context.Context, userID uuid.UUID) ([]domain.UserAlert, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	alerts, err := s.alertRepo.ListVisibleToUser(ctx, s.clk.Now(), userID, user.TeamID)
	if err != nil {
		return nil, err
	}

	result := make([]domain.UserAlert, 0, len(alerts))
	for _, a := range alerts {
		ua := domain.UserAlert{Alert: a}

		pref, err := s.prefRepo.Get(ctx, userID, a.ID)
		if err != nil {
			return nil, err
		}
		if pref != nil {
			ua.IsRead = pref.IsRead
			ua.IsSnoozed = pref.IsSnoozed
			ua.SnoozeUntil = pref.SnoozeUntil
		}
		result = append(result, ua)
	}
	return result, nil
}

func (s *service) Deliver(ctx context.Context, alert *domain.Alert) ([]domain.PerUserOutcome, error) {
	users, err := s.notifSvc.EligibleRecipients(ctx, alert)
	if err != nil {
		return nil, err
	}
	return s.notifSvc.Dispatch(ctx, alert, users), nil
}

func (s *service) ProcessReminders(ctx context.Context) error {
	now := s.clk.Now()
	cutoff := now.Add(-s.lookback)

	alerts, err := s.alertRepo.ListReminderDue(ctx, now)
	if err != nil {
		return fmt.Errorf("failed to list reminder-due alerts: %w", err)
	}

	for i := range alerts {
		alert := &alerts[i]

		// Reminders go to users who already have a preference row
		// (created by a prior delivery or interaction) and have not
		// been delivered to since the cutoff. The snooze filter of the
		// eligibility resolver is not applied on this path.
		prefs, err := s.prefRepo.ListStale(ctx, alert.ID, cutoff)
		if err != nil {
			return fmt.Errorf("failed to list stale preferences for alert %s: %w", alert.ID, err)
		}
		if len(prefs) == 0 {
			continue
		}

		userIDs := make([]uuid.UUID, 0, len(prefs))
		for _, p := range prefs {
			userIDs = append(userIDs, p.UserID)
		}

		users, err := s.userRepo.GetByIDs(ctx, userIDs)
		if err != nil {
			return fmt.Errorf("failed to load reminder recipients for alert %s: %w", alert.ID, err)
		}
		if len(users) == 0 {
			continue
		}

		outcomes := s.notifSvc.Dispatch(ctx, alert, users)
		s.logDispatch(alert, outcomes)
	}
	return nil
}

func (s *service) logDispatch(alert *domain.Alert, outcomes []domain.PerUserOutcome) {
	delivered, failed := 0, 0
	for _, o := range outcomes {
		if o.Success {
			delivered++
		} else {
			failed++
		}
	}
	s.logger.Info("dispatched alert",
		zap.String("alert_id", alert.ID.String()),
		zap.String("channel", string(alert.Channel)),
		zap.Int("delivered", delivered),
		zap.Int("failed", failed),
	)
}
