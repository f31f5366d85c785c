package domain_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"alerting-platform/internal/domain"
)

func TestAlert_IsLive(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	expiry := now.Add(time.Hour)

	cases := []struct {
		name  string
		alert domain.Alert
		want  bool
	}{
		{
			name:  "Active Within Window",
			alert: domain.Alert{IsActive: true, StartTime: now.Add(-time.Hour), ExpiryTime: &expiry},
			want:  true,
		},
		{
			name:  "Inactive",
			alert: domain.Alert{IsActive: false, StartTime: now.Add(-time.Hour)},
			want:  false,
		},
		{
			name:  "Not Started Yet",
			alert: domain.Alert{IsActive: true, StartTime: now.Add(time.Minute)},
			want:  false,
		},
		{
			name:  "Starts Exactly Now",
			alert: domain.Alert{IsActive: true, StartTime: now},
			want:  true,
		},
		{
			name:  "No Expiry",
			alert: domain.Alert{IsActive: true, StartTime: now.Add(-24 * time.Hour)},
			want:  true,
		},
		{
			name: "Expires Exactly Now",
			alert: domain.Alert{
				IsActive: true, StartTime: now.Add(-time.Hour), ExpiryTime: &now,
			},
			want: false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.alert.IsLive(now))
		})
	}
}

func TestUserAlertPreference_SnoozeActive(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	future := now.Add(time.Hour)
	past := now.Add(-time.Hour)

	cases := []struct {
		name string
		pref domain.UserAlertPreference
		want bool
	}{
		{"Not Snoozed", domain.UserAlertPreference{IsSnoozed: false}, false},
		{"Snoozed Open Ended", domain.UserAlertPreference{IsSnoozed: true}, true},
		{"Snoozed Until Future", domain.UserAlertPreference{IsSnoozed: true, SnoozeUntil: &future}, true},
		{"Snooze Elapsed", domain.UserAlertPreference{IsSnoozed: true, SnoozeUntil: &past}, false},
		{"Snooze Expires Exactly Now", domain.UserAlertPreference{IsSnoozed: true, SnoozeUntil: &now}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.pref.SnoozeActive(now))
		})
	}
}

func TestUpdateAlertInput_ExpiryTimeDecoding(t *testing.T) {
	t.Run("Absent Key", func(t *testing.T) {
		var input domain.UpdateAlertInput
		assert.NoError(t, json.Unmarshal([]byte(`{}`), &input))
		assert.False(t, input.ExpiryTime.Set)
	})

	t.Run("Explicit Null Clears", func(t *testing.T) {
		var input domain.UpdateAlertInput
		assert.NoError(t, json.Unmarshal([]byte(`{"expiry_time": null}`), &input))
		assert.True(t, input.ExpiryTime.Set)
		assert.Nil(t, input.ExpiryTime.Value)
	})

	t.Run("Timestamp", func(t *testing.T) {
		var input domain.UpdateAlertInput
		assert.NoError(t, json.Unmarshal([]byte(`{"expiry_time": "2026-09-01T00:00:00Z"}`), &input))
		assert.True(t, input.ExpiryTime.Set)
		assert.NotNil(t, input.ExpiryTime.Value)
		assert.True(t, input.ExpiryTime.Value.Equal(time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)))
	})
}

func TestEnumValidity(t *testing.T) {
	assert.True(t, domain.SeverityCritical.IsValid())
	assert.False(t, domain.Severity("fatal").IsValid())

	assert.True(t, domain.ChannelEmail.IsValid())
	assert.False(t, domain.Channel("pager").IsValid())

	assert.True(t, domain.VisibilityTeam.IsValid())
	assert.False(t, domain.VisibilityType("").IsValid())
}
