package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

func (s Severity) IsValid() bool {
	switch s {
	case SeverityInfo, SeverityWarning, SeverityCritical:
		return true
	}
	return false
}

type Channel string

const (
	ChannelInApp Channel = "in_app"
	ChannelEmail Channel = "email"
	ChannelSMS   Channel = "sms"
)

func (c Channel) IsValid() bool {
	switch c {
	case ChannelInApp, ChannelEmail, ChannelSMS:
		return true
	}
	return false
}

type VisibilityType string

const (
	VisibilityOrganization VisibilityType = "organization"
	VisibilityTeam         VisibilityType = "team"
	VisibilityUser         VisibilityType = "user"
)

func (v VisibilityType) IsValid() bool {
	switch v {
	case VisibilityOrganization, VisibilityTeam, VisibilityUser:
		return true
	}
	return false
}

// Visibility is an alert's targeting rule. TargetIDs is ignored for the
// organization variant and names teams or users for the other two. An
// empty target set targets nobody.
type Visibility struct {
	Type      VisibilityType `json:"type"`
	TargetIDs []uuid.UUID    `json:"target_ids,omitempty"`
}

// Alert is an admin-authored notification with a visibility window and
// a targeting rule. ReminderFrequency is in hours and is informational
// for clients; the sweep interval itself is scheduler configuration.
type Alert struct {
	ID                uuid.UUID  `json:"id"`
	Title             string     `json:"title"`
	Message           string     `json:"message"`
	Severity          Severity   `json:"severity"`
	Channel           Channel    `json:"channel"`
	ReminderFrequency int        `json:"reminder_frequency"`
	ReminderEnabled   bool       `json:"reminder_enabled"`
	Visibility        Visibility `json:"visibility"`
	StartTime         time.Time  `json:"start_time"`
	ExpiryTime        *time.Time `json:"expiry_time,omitempty"`
	IsActive          bool       `json:"is_active"`
	CreatedBy         uuid.UUID  `json:"created_by"`
	CreatedAt         time.Time  `json:"created_at"`
}

// IsLive reports whether the alert is deliverable at the given time:
// active, started, and not yet expired. Start is inclusive, expiry
// exclusive.
func (a *Alert) IsLive(now time.Time) bool {
	if !a.IsActive {
		return false
	}
	if now.Before(a.StartTime) {
		return false
	}
	if a.ExpiryTime != nil && !now.Before(*a.ExpiryTime) {
		return false
	}
	return true
}

// CreateAlertInput carries the client-supplied fields for a new alert.
// Zero values fall back to defaults at the service layer.
type CreateAlertInput struct {
	Title             string     `json:"title"`
	Message           string     `json:"message"`
	Severity          Severity   `json:"severity"`
	Channel           Channel    `json:"channel"`
	ReminderFrequency int        `json:"reminder_frequency"`
	ReminderEnabled   *bool      `json:"reminder_enabled"`
	Visibility        Visibility `json:"visibility"`
	StartTime         *time.Time `json:"start_time"`
	ExpiryTime        *time.Time `json:"expiry_time"`
	IsActive          *bool      `json:"is_active"`
}

// NullableTime is a patch field that distinguishes an absent key from
// an explicit JSON null. A plain *time.Time cannot: encoding/json
// leaves the pointer nil in both cases. Set is true whenever the key
// was present; Value is nil when it held null.
type NullableTime struct {
	Set   bool
	Value *time.Time
}

func (n *NullableTime) UnmarshalJSON(data []byte) error {
	n.Set = true
	if string(data) == "null" {
		n.Value = nil
		return nil
	}
	return json.Unmarshal(data, &n.Value)
}

// UpdateAlertInput is a partial patch; untouched fields are left as
// they are. ExpiryTime is nullable so a client can distinguish "leave
// as is" (absent) from "clear the expiry" (explicit null).
type UpdateAlertInput struct {
	Title             *string      `json:"title"`
	Message           *string      `json:"message"`
	Severity          *Severity    `json:"severity"`
	Channel           *Channel     `json:"channel"`
	ReminderFrequency *int         `json:"reminder_frequency"`
	ReminderEnabled   *bool        `json:"reminder_enabled"`
	Visibility        *Visibility  `json:"visibility"`
	StartTime         *time.Time   `json:"start_time"`
	ExpiryTime        NullableTime `json:"expiry_time"`
	IsActive          *bool        `json:"is_active"`
}

// AlertFilter narrows the admin alert listing. Zero fields do not
// filter. AudienceIDs applies only with a team or user audience.
type AlertFilter struct {
	Severity    Severity
	Status      string
	Audience    VisibilityType
	AudienceIDs []uuid.UUID
}

// UserAlert is an alert as seen by one recipient, with that user's
// read/snooze state folded in.
type UserAlert struct {
	Alert
	IsRead      bool       `json:"is_read"`
	IsSnoozed   bool       `json:"is_snoozed"`
	SnoozeUntil *time.Time `json:"snooze_until,omitempty"`
}
