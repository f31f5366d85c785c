package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"alerting-platform/internal/domain"
)

// PreferenceRepository owns the per-(user, alert) state rows. All
// mutations are merge-upserts keyed by the (user_id, alert_id) unique
// constraint: each operation creates the row if absent and otherwise
// patches only the fields it owns, so a concurrent snooze and a
// concurrent delivery never clobber each other.
type PreferenceRepository interface {
	Get(ctx context.Context, userID, alertID uuid.UUID) (*domain.UserAlertPreference, error)
	ListByAlert(ctx context.Context, alertID uuid.UUID) ([]domain.UserAlertPreference, error)
	ListStale(ctx context.Context, alertID uuid.UUID, cutoff time.Time) ([]domain.UserAlertPreference, error)
	SetRead(ctx context.Context, userID, alertID uuid.UUID, read bool) error
	Snooze(ctx context.Context, userID, alertID uuid.UUID, until time.Time) error
	TouchDelivered(ctx context.Context, userID, alertID uuid.UUID, at time.Time) error
	ListSnoozedAlerts(ctx context.Context, userID uuid.UUID) ([]domain.SnoozedAlert, error)
	ResetExpiredSnoozes(ctx context.Context, now time.Time) (int64, error)
	CountSnoozedAlerts(ctx context.Context) (int64, error)
}

type preferenceRepository struct {
	db *sqlx.DB
}

func NewPreferenceRepository(db *sqlx.DB) PreferenceRepository {
	return &preferenceRepository{db: db}
}

func (r *preferenceRepository) Get(ctx context.Context, userID, alertID uuid.UUID) (*domain.UserAlertPreference, error) {
	var pref domain.UserAlertPreference
	query := `SELECT * FROM user_alert_preferences WHERE user_id = $1 AND alert_id = $2`

	err := r.db.GetContext(ctx, &pref, query, userID, alertID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &pref, nil
}

func (r *preferenceRepository) ListByAlert(ctx context.Context, alertID uuid.UUID) ([]domain.UserAlertPreference, error) {
	var prefs []domain.UserAlertPreference
	query := `SELECT * FROM user_alert_preferences WHERE alert_id = $1`
	err := r.db.SelectContext(ctx, &prefs, query, alertID)
	return prefs, err
}

func (r *preferenceRepository) ListStale(ctx context.Context, alertID uuid.UUID, cutoff time.Time) ([]domain.UserAlertPreference, error) {
	var prefs []domain.UserAlertPreference
	query := `
		SELECT * FROM user_alert_preferences
		WHERE alert_id = $1
			AND (last_delivered IS NULL OR last_delivered <= $2)`
	err := r.db.SelectContext(ctx, &prefs, query, alertID, cutoff)
	return prefs, err
}

func (r *preferenceRepository) SetRead(ctx context.Context, userID, alertID uuid.UUID, read bool) error {
	query := `
		INSERT INTO user_alert_preferences (user_id, alert_id, is_read, is_snoozed)
		VALUES ($1, $2, $3, false)
		ON CONFLICT (user_id, alert_id) DO UPDATE SET is_read = EXCLUDED.is_read`

	_, err := r.db.ExecContext(ctx, query, userID, alertID, read)
	return err
}

func (r *preferenceRepository) Snooze(ctx context.Context, userID, alertID uuid.UUID, until time.Time) error {
	query := `
		INSERT INTO user_alert_preferences (user_id, alert_id, is_read, is_snoozed, snooze_until)
		VALUES ($1, $2, false, true, $3)
		ON CONFLICT (user_id, alert_id) DO UPDATE
			SET is_snoozed = true, snooze_until = EXCLUDED.snooze_until`

	_, err := r.db.ExecContext(ctx, query, userID, alertID, until)
	return err
}

func (r *preferenceRepository) TouchDelivered(ctx context.Context, userID, alertID uuid.UUID, at time.Time) error {
	query := `
		INSERT INTO user_alert_preferences (user_id, alert_id, is_read, is_snoozed, last_delivered)
		VALUES ($1, $2, false, false, $3)
		ON CONFLICT (user_id, alert_id) DO UPDATE SET last_delivered = EXCLUDED.last_delivered`

	_, err := r.db.ExecContext(ctx, query, userID, alertID, at)
	return err
}

func (r *preferenceRepository) ListSnoozedAlerts(ctx context.Context, userID uuid.UUID) ([]domain.SnoozedAlert, error) {
	query := `
		SELECT a.alert_id, a.title, a.message, a.severity, a.visibility_type, a.target_ids, p.snooze_until
		FROM user_alert_preferences p
		JOIN alerts a ON a.alert_id = p.alert_id
		WHERE p.user_id = $1 AND p.is_snoozed = true
		ORDER BY p.snooze_until`

	rows, err := r.db.QueryxContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snoozed []domain.SnoozedAlert
	for rows.Next() {
		var s domain.SnoozedAlert
		err := rows.Scan(&s.ID, &s.Title, &s.Message, &s.Severity,
			&s.Visibility.Type, pq.Array(&s.Visibility.TargetIDs), &s.SnoozeUntil)
		if err != nil {
			return nil, err
		}
		snoozed = append(snoozed, s)
	}
	return snoozed, rows.Err()
}

func (r *preferenceRepository) ResetExpiredSnoozes(ctx context.Context, now time.Time) (int64, error) {
	query := `
		UPDATE user_alert_preferences
		SET is_snoozed = false, snooze_until = NULL
		WHERE is_snoozed = true AND snooze_until IS NOT NULL AND snooze_until <= $1`

	res, err := r.db.ExecContext(ctx, query, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *preferenceRepository) CountSnoozedAlerts(ctx context.Context) (int64, error) {
	var count int64
	query := `SELECT COUNT(DISTINCT alert_id) FROM user_alert_preferences WHERE is_snoozed = true`
	err := r.db.GetContext(ctx, &count, query)
	return count, err
}
