package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusForDaysLeft(t *testing.T) {
	tests := []struct {
		daysLeft int
		want     Status
	}{
		{-30, StatusExpired},
		{-1, StatusExpired},
		{0, StatusExpiring},
		{4, StatusExpiring},
		{5, StatusActive},
		{365, StatusActive},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, StatusForDaysLeft(tt.daysLeft), "days_left=%d", tt.daysLeft)
	}
}

func TestStatusNeedsNotification(t *testing.T) {
	assert.True(t, StatusExpired.NeedsNotification())
	assert.True(t, StatusExpiring.NeedsNotification())
	assert.False(t, StatusActive.NeedsNotification())
}

func TestParseExpirationDate(t *testing.T) {
	got, err := ParseExpirationDate("2026-09-15")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC), got)

	got, err = ParseExpirationDate("2026-09-15T00:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC), got)

	_, err = ParseExpirationDate("15/09/2026")
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = ParseExpirationDate("not-a-date")
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestDaysUntilExpiration(t *testing.T) {
	now := time.Date(2026, 8, 28, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		expiration time.Time
		want       int
	}{
		{time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC), 0},
		{time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC), 1},
		{time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC), 5},
		{time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC), -1},
		{time.Date(2025, 8, 28, 0, 0, 0, 0, time.UTC), -365},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, DaysUntilExpiration(tt.expiration, now))
	}
}
