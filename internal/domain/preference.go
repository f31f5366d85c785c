package domain

import (
	"time"

	"github.com/google/uuid"
)

// UserAlertPreference is the per-(user, alert) read/snooze/delivery
// state. Rows are created lazily on first interaction or first
// delivery; absence of a row is equivalent to the zero state below.
// Uniqueness of (UserID, AlertID) is enforced at the storage layer.
type UserAlertPreference struct {
	UserID        uuid.UUID  `json:"user_id" db:"user_id"`
	AlertID       uuid.UUID  `json:"alert_id" db:"alert_id"`
	IsRead        bool       `json:"is_read" db:"is_read"`
	IsSnoozed     bool       `json:"is_snoozed" db:"is_snoozed"`
	SnoozeUntil   *time.Time `json:"snooze_until,omitempty" db:"snooze_until"`
	LastDelivered *time.Time `json:"last_delivered,omitempty" db:"last_delivered"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
}

// SnoozeActive reports whether the snooze still suppresses delivery at
// the given time. An elapsed snooze_until counts as not snoozed even
// before the reset sweep has cleared the row.
func (p *UserAlertPreference) SnoozeActive(now time.Time) bool {
	if !p.IsSnoozed {
		return false
	}
	return p.SnoozeUntil == nil || p.SnoozeUntil.After(now)
}

// SnoozedAlert is a snoozed alert as shown in the user's snoozed list.
type SnoozedAlert struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Message     string     `json:"message"`
	Severity    Severity   `json:"severity"`
	Visibility  Visibility `json:"visibility"`
	SnoozeUntil *time.Time `json:"snooze_until,omitempty"`
}
