package review

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrentStreak(t *testing.T) {
	today := time.Date(2024, 3, 10, 15, 30, 0, 0, time.UTC)
	day := func(daysAgo int) time.Time { return today.AddDate(0, 0, -daysAgo) }

	tests := []struct {
		name   string
		solved []time.Time
		want   int
	}{
		{"empty input", nil, 0},
		{"solved today only", []time.Time{day(0)}, 1},
		{"three consecutive days", []time.Time{day(0), day(1), day(2)}, 3},
		{"gap breaks the streak", []time.Time{day(0), day(2)}, 1},
		{"nothing today", []time.Time{day(1), day(2)}, 0},
		{"several solves on one day count once", []time.Time{day(0), day(0).Add(-2 * time.Hour), day(1)}, 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, currentStreakOn(tc.solved, today))
		})
	}
}

func TestCurrentStreak_DayBoundary(t *testing.T) {
	// 00:30 UTC today and 23:30 UTC yesterday are adjacent instants but
	// distinct calendar days.
	today := time.Date(2024, 3, 10, 0, 30, 0, 0, time.UTC)
	yesterdayLate := time.Date(2024, 3, 9, 23, 30, 0, 0, time.UTC)

	assert.Equal(t, 2, currentStreakOn([]time.Time{today, yesterdayLate}, today))
}

func TestParseSolvedDates(t *testing.T) {
	parsed, err := ParseSolvedDates([]string{"2024-03-10T15:30:00Z", "2024-03-09T08:00:00Z"})
	require.NoError(t, err)
	require.Len(t, parsed, 2)
	assert.Equal(t, time.Date(2024, 3, 10, 15, 30, 0, 0, time.UTC), parsed[0])
}

func TestParseSolvedDates_Invalid(t *testing.T) {
	_, err := ParseSolvedDates([]string{"2024-03-10T15:30:00Z", "not-a-date"})
	assert.ErrorIs(t, err, ErrInvalidDateFormat)
}
