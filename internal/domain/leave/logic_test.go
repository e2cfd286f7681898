package leave

import (
	"testing"
	"time"

	"github.com/golang-sql/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y, m, d int) civil.Date {
	return civil.Date{Year: y, Month: time.Month(m), Day: d}
}

func TestCalculateDays(t *testing.T) {
	cases := []struct {
		name       string
		start, end civil.Date
		days       int
		duration   string
	}{
		{"single day", day(2023, 6, 25), day(2023, 6, 25), 1, "1 day"},
		{"one week", day(2023, 6, 15), day(2023, 6, 22), 8, "8 days"},
		{"month boundary", day(2023, 6, 30), day(2023, 7, 2), 3, "3 days"},
		{"leap day", day(2024, 2, 28), day(2024, 3, 1), 3, "3 days"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			days, err := CalculateDays(tc.start, tc.end)
			require.NoError(t, err)
			assert.Equal(t, tc.days, days)
			assert.Equal(t, tc.duration, FormatDuration(days))
		})
	}
}

func TestCalculateDaysInvalid(t *testing.T) {
	_, err := CalculateDays(day(2025, 2, 10), day(2025, 2, 9))
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestCanTransition(t *testing.T) {
	assert.True(t, StatusPending.CanTransition(StatusApproved))
	assert.True(t, StatusPending.CanTransition(StatusRejected))
	assert.False(t, StatusPending.CanTransition(StatusPending))
	for _, from := range []Status{StatusApproved, StatusRejected} {
		for _, to := range Statuses {
			assert.False(t, from.CanTransition(to), "%s -> %s", from, to)
		}
	}
}

func TestOverlaps(t *testing.T) {
	from, to := day(2023, 6, 1), day(2023, 6, 30)
	assert.True(t, Overlaps(day(2023, 5, 30), day(2023, 6, 1), from, to))
	assert.True(t, Overlaps(day(2023, 6, 30), day(2023, 7, 4), from, to))
	assert.False(t, Overlaps(day(2023, 7, 1), day(2023, 7, 7), from, to))
	assert.False(t, Overlaps(day(2023, 5, 1), day(2023, 5, 31), from, to))
}
