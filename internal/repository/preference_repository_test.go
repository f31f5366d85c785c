package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	return sqlx.NewDb(db, "sqlmock"), mock
}

var prefColumns = []string{
	"user_id", "alert_id", "is_read", "is_snoozed", "snooze_until", "last_delivered", "created_at",
}

func TestPreferenceRepository_Get_NoRow(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()
	repo := NewPreferenceRepository(db)

	userID, alertID := uuid.New(), uuid.New()

	mock.ExpectQuery(`SELECT \* FROM user_alert_preferences`).
		WithArgs(userID, alertID).
		WillReturnRows(sqlmock.NewRows(prefColumns))

	pref, err := repo.Get(context.Background(), userID, alertID)

	require.NoError(t, err)
	assert.Nil(t, pref)
	require.NoError(t, mock.ExpectationsWereMet())
}

// The merge-upserts each own a disjoint slice of the row: the ON
// CONFLICT SET clause may name only the fields that operation owns, so
// a concurrent snooze, read action, and delivery can never clobber
// each other. The expectations below pin the full SET clause of each
// statement.

func TestPreferenceRepository_SetRead_UpdatesOnlyReadFlag(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()
	repo := NewPreferenceRepository(db)

	userID, alertID := uuid.New(), uuid.New()

	mock.ExpectExec(regexp.QuoteMeta(
		`ON CONFLICT (user_id, alert_id) DO UPDATE SET is_read = EXCLUDED.is_read`,
	)).
		WithArgs(userID, alertID, true).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.SetRead(context.Background(), userID, alertID, true))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPreferenceRepository_Snooze_UpdatesOnlySnoozeFields(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()
	repo := NewPreferenceRepository(db)

	userID, alertID := uuid.New(), uuid.New()
	until := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta(
		`ON CONFLICT (user_id, alert_id) DO UPDATE SET is_snoozed = true, snooze_until = EXCLUDED.snooze_until`,
	)).
		WithArgs(userID, alertID, until).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Snooze(context.Background(), userID, alertID, until))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPreferenceRepository_TouchDelivered_UpdatesOnlyLastDelivered(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()
	repo := NewPreferenceRepository(db)

	userID, alertID := uuid.New(), uuid.New()
	at := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta(
		`ON CONFLICT (user_id, alert_id) DO UPDATE SET last_delivered = EXCLUDED.last_delivered`,
	)).
		WithArgs(userID, alertID, at).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.TouchDelivered(context.Background(), userID, alertID, at))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPreferenceRepository_ListStale(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()
	repo := NewPreferenceRepository(db)

	alertID := uuid.New()
	neverDelivered := uuid.New()
	staleDelivered := uuid.New()
	cutoff := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	old := cutoff.Add(-time.Hour)

	rows := sqlmock.NewRows(prefColumns).
		AddRow(neverDelivered.String(), alertID.String(), false, false, nil, nil, old).
		AddRow(staleDelivered.String(), alertID.String(), true, false, nil, old, old)

	mock.ExpectQuery(regexp.QuoteMeta(
		`WHERE alert_id = $1 AND (last_delivered IS NULL OR last_delivered <= $2)`,
	)).
		WithArgs(alertID, cutoff).
		WillReturnRows(rows)

	prefs, err := repo.ListStale(context.Background(), alertID, cutoff)

	require.NoError(t, err)
	require.Len(t, prefs, 2)
	assert.Equal(t, neverDelivered, prefs[0].UserID)
	assert.Nil(t, prefs[0].LastDelivered)
	assert.Equal(t, staleDelivered, prefs[1].UserID)
	require.NotNil(t, prefs[1].LastDelivered)
	assert.True(t, prefs[1].LastDelivered.Equal(old))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPreferenceRepository_ResetExpiredSnoozes(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()
	repo := NewPreferenceRepository(db)

	now := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	query := regexp.QuoteMeta(
		`UPDATE user_alert_preferences SET is_snoozed = false, snooze_until = NULL ` +
			`WHERE is_snoozed = true AND snooze_until IS NOT NULL AND snooze_until <= $1`,
	)

	// First run clears the expired rows; an immediate second run finds
	// nothing left to clear. Same end state either way.
	mock.ExpectExec(query).WithArgs(now).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(query).WithArgs(now).WillReturnResult(sqlmock.NewResult(0, 0))

	cleared, err := repo.ResetExpiredSnoozes(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, int64(2), cleared)

	cleared, err = repo.ResetExpiredSnoozes(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, int64(0), cleared)

	require.NoError(t, mock.ExpectationsWereMet())
}
