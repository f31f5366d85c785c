package domain

import (
	"time"

	"github.com/google/uuid"
)

type DeliveryStatus string

const (
	DeliveryPending   DeliveryStatus = "pending"
	DeliveryDelivered DeliveryStatus = "delivered"
	DeliveryFailed    DeliveryStatus = "failed"
)

// NotificationDelivery records one delivery attempt. Rows are
// insert-only; a retry creates a new row, never an update.
type NotificationDelivery struct {
	ID          uuid.UUID      `json:"id" db:"delivery_id"`
	AlertID     uuid.UUID      `json:"alert_id" db:"alert_id"`
	UserID      uuid.UUID      `json:"user_id" db:"user_id"`
	Channel     Channel        `json:"channel" db:"channel"`
	Status      DeliveryStatus `json:"status" db:"status"`
	DeliveredAt *time.Time     `json:"delivered_at,omitempty" db:"delivered_at"`
	CreatedAt   time.Time      `json:"created_at" db:"created_at"`
}

// DeliveryOutcome is the result of one adapter delivery attempt.
// Adapter errors are captured here rather than returned, so one
// recipient's failure never aborts delivery to the rest.
type DeliveryOutcome struct {
	Success bool    `json:"success"`
	Channel Channel `json:"channel"`
	Error   string  `json:"error,omitempty"`
}

// PerUserOutcome tags a delivery outcome with its recipient.
type PerUserOutcome struct {
	UserID uuid.UUID `json:"user_id"`
	DeliveryOutcome
}
