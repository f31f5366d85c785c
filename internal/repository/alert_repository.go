package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"alerting-platform/internal/domain"
)

type AlertRepository interface {
	Create(ctx context.Context, alert *domain.Alert) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Alert, error)
	Update(ctx context.Context, alert *domain.Alert) error
	List(ctx context.Context, filter domain.AlertFilter) ([]domain.Alert, error)
	ListReminderDue(ctx context.Context, now time.Time) ([]domain.Alert, error)
	ListVisibleToUser(ctx context.Context, now time.Time, userID uuid.UUID, teamID *uuid.UUID) ([]domain.Alert, error)
	CountAll(ctx context.Context) (int64, error)
	CountActive(ctx context.Context) (int64, error)
	CountBySeverity(ctx context.Context) (map[domain.Severity]int64, error)
}

type alertRepository struct {
	db *sqlx.DB
}

func NewAlertRepository(db *sqlx.DB) AlertRepository {
	return &alertRepository{db: db}
}

const alertColumns = `alert_id, title, message, severity, channel, reminder_frequency,
	reminder_enabled, visibility_type, target_ids, start_time, expiry_time,
	is_active, created_by, created_at`

func scanAlert(row sqlx.ColScanner) (*domain.Alert, error) {
	var a domain.Alert
	err := row.Scan(
		&a.ID, &a.Title, &a.Message, &a.Severity, &a.Channel, &a.ReminderFrequency,
		&a.ReminderEnabled, &a.Visibility.Type, pq.Array(&a.Visibility.TargetIDs),
		&a.StartTime, &a.ExpiryTime, &a.IsActive, &a.CreatedBy, &a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *alertRepository) collect(rows *sqlx.Rows) ([]domain.Alert, error) {
	defer rows.Close()

	var alerts []domain.Alert
	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			return nil, err
		}
		alerts = append(alerts, *a)
	}
	return alerts, rows.Err()
}

func (r *alertRepository) Create(ctx context.Context, alert *domain.Alert) error {
	query := `
		INSERT INTO alerts (alert_id, title, message, severity, channel, reminder_frequency,
			reminder_enabled, visibility_type, target_ids, start_time, expiry_time, is_active, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING created_at`

	return r.db.QueryRowxContext(ctx, query,
		alert.ID, alert.Title, alert.Message, alert.Severity, alert.Channel,
		alert.ReminderFrequency, alert.ReminderEnabled, alert.Visibility.Type,
		pq.Array(alert.Visibility.TargetIDs), alert.StartTime, alert.ExpiryTime,
		alert.IsActive, alert.CreatedBy,
	).Scan(&alert.CreatedAt)
}

func (r *alertRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Alert, error) {
	query := `SELECT ` + alertColumns + ` FROM alerts WHERE alert_id = $1`

	alert, err := scanAlert(r.db.QueryRowxContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return alert, nil
}

func (r *alertRepository) Update(ctx context.Context, alert *domain.Alert) error {
	query := `
		UPDATE alerts
		SET title = $2, message = $3, severity = $4, channel = $5,
			reminder_frequency = $6, reminder_enabled = $7, visibility_type = $8,
			target_ids = $9, start_time = $10, expiry_time = $11, is_active = $12
		WHERE alert_id = $1`

	res, err := r.db.ExecContext(ctx, query,
		alert.ID, alert.Title, alert.Message, alert.Severity, alert.Channel,
		alert.ReminderFrequency, alert.ReminderEnabled, alert.Visibility.Type,
		pq.Array(alert.Visibility.TargetIDs), alert.StartTime, alert.ExpiryTime,
		alert.IsActive,
	)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrAlertNotFound
	}
	return nil
}

func (r *alertRepository) List(ctx context.Context, filter domain.AlertFilter) ([]domain.Alert, error) {
	conditions := []string{}
	args := []interface{}{}

	if filter.Severity != "" {
		args = append(args, filter.Severity)
		conditions = append(conditions, fmt.Sprintf("severity = $%d", len(args)))
	}
	switch filter.Status {
	case "active":
		conditions = append(conditions, "is_active = true")
	case "expired":
		conditions = append(conditions, "expiry_time IS NOT NULL AND expiry_time < NOW()")
	}
	if filter.Audience != "" {
		args = append(args, filter.Audience)
		conditions = append(conditions, fmt.Sprintf("visibility_type = $%d", len(args)))

		if len(filter.AudienceIDs) > 0 &&
			(filter.Audience == domain.VisibilityTeam || filter.Audience == domain.VisibilityUser) {
			args = append(args, pq.Array(filter.AudienceIDs))
			conditions = append(conditions, fmt.Sprintf("target_ids && $%d", len(args)))
		}
	}

	query := `SELECT ` + alertColumns + ` FROM alerts`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return r.collect(rows)
}

func (r *alertRepository) ListReminderDue(ctx context.Context, now time.Time) ([]domain.Alert, error) {
	query := `
		SELECT ` + alertColumns + ` FROM alerts
		WHERE is_active = true
			AND reminder_enabled = true
			AND start_time <= $1
			AND (expiry_time IS NULL OR expiry_time > $1)`

	rows, err := r.db.QueryxContext(ctx, query, now)
	if err != nil {
		return nil, err
	}
	return r.collect(rows)
}

func (r *alertRepository) ListVisibleToUser(ctx context.Context, now time.Time, userID uuid.UUID, teamID *uuid.UUID) ([]domain.Alert, error) {
	query := `
		SELECT ` + alertColumns + ` FROM alerts
		WHERE is_active = true
			AND start_time <= $1
			AND (expiry_time IS NULL OR expiry_time > $1)
			AND (visibility_type = 'organization'
				OR (visibility_type = 'team' AND $3::uuid IS NOT NULL AND $3 = ANY(target_ids))
				OR (visibility_type = 'user' AND $2 = ANY(target_ids)))
		ORDER BY created_at DESC`

	rows, err := r.db.QueryxContext(ctx, query, now, userID, teamID)
	if err != nil {
		return nil, err
	}
	return r.collect(rows)
}

func (r *alertRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM alerts`)
	return count, err
}

func (r *alertRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM alerts WHERE is_active = true`)
	return count, err
}

func (r *alertRepository) CountBySeverity(ctx context.Context) (map[domain.Severity]int64, error) {
	rows, err := r.db.QueryxContext(ctx, `SELECT severity, COUNT(*) FROM alerts GROUP BY severity`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	breakdown := make(map[domain.Severity]int64)
	for rows.Next() {
		var severity domain.Severity
		var count int64
		if err := rows.Scan(&severity, &count); err != nil {
			return nil, err
		}
		breakdown[severity] = count
	}
	return breakdown, rows.Err()
}
