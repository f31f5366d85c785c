package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alerting-platform/internal/domain"
)

var alertTestColumns = []string{
	"alert_id", "title", "message", "severity", "channel", "reminder_frequency",
	"reminder_enabled", "visibility_type", "target_ids", "start_time", "expiry_time",
	"is_active", "created_by", "created_at",
}

func TestAlertRepository_GetByID(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		db, mock := setupMockDB(t)
		defer db.Close()
		repo := NewAlertRepository(db)

		id := uuid.New()
		creator := uuid.New()
		now := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)

		rows := sqlmock.NewRows(alertTestColumns).AddRow(
			id.String(), "Disk pressure", "Volume almost full", "warning", "in_app", 2,
			true, "organization", []byte("{}"), now, nil,
			true, creator.String(), now,
		)

		mock.ExpectQuery(`SELECT .+ FROM alerts WHERE alert_id = \$1`).
			WithArgs(id).
			WillReturnRows(rows)

		alert, err := repo.GetByID(context.Background(), id)

		require.NoError(t, err)
		require.NotNil(t, alert)
		assert.Equal(t, id, alert.ID)
		assert.Equal(t, domain.SeverityWarning, alert.Severity)
		assert.Equal(t, domain.VisibilityOrganization, alert.Visibility.Type)
		assert.Empty(t, alert.Visibility.TargetIDs)
		assert.Nil(t, alert.ExpiryTime)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Absent Row Is Not An Error", func(t *testing.T) {
		db, mock := setupMockDB(t)
		defer db.Close()
		repo := NewAlertRepository(db)

		id := uuid.New()

		mock.ExpectQuery(`SELECT .+ FROM alerts WHERE alert_id = \$1`).
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows(alertTestColumns))

		alert, err := repo.GetByID(context.Background(), id)

		require.NoError(t, err)
		assert.Nil(t, alert)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAlertRepository_Update_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()
	repo := NewAlertRepository(db)

	alert := &domain.Alert{
		ID:         uuid.New(),
		Title:      "t",
		Message:    "m",
		Severity:   domain.SeverityInfo,
		Channel:    domain.ChannelInApp,
		Visibility: domain.Visibility{Type: domain.VisibilityOrganization},
	}

	mock.ExpectExec(`UPDATE alerts`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), alert)

	assert.ErrorIs(t, err, domain.ErrAlertNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAlertRepository_ListReminderDue(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()
	repo := NewAlertRepository(db)

	now := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	id := uuid.New()
	creator := uuid.New()

	rows := sqlmock.NewRows(alertTestColumns).AddRow(
		id.String(), "Recurring", "body", "info", "in_app", 2,
		true, "organization", []byte("{}"), now.Add(-24*time.Hour), nil,
		true, creator.String(), now.Add(-24*time.Hour),
	)

	mock.ExpectQuery(`reminder_enabled = true`).
		WithArgs(now).
		WillReturnRows(rows)

	alerts, err := repo.ListReminderDue(context.Background(), now)

	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, id, alerts[0].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}
