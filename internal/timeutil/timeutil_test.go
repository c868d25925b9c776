package timeutil

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Reference moment for parsing tests: 25 Jan 2026, 10:00 IST.
func refTime(t *testing.T) (time.Time, *time.Location) {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)
	return time.Date(2026, 1, 25, 10, 0, 0, 0, loc), loc
}

func TestParsePostTime(t *testing.T) {
	t.Parallel()

	now, loc := refTime(t)

	t.Run("now keyword", func(t *testing.T) {
		t.Parallel()

		s, err := ParsePostTime("  NOW ", now, loc)
		require.NoError(t, err)
		assert.True(t, s.Immediate)
		assert.Equal(t, "now", s.Display)
		assert.Equal(t, now.UTC(), s.Time)
	})

	t.Run("clock time later today", func(t *testing.T) {
		t.Parallel()

		s, err := ParsePostTime("14:30", now, loc)
		require.NoError(t, err)
		assert.False(t, s.Immediate)
		assert.Equal(t, time.Date(2026, 1, 25, 14, 30, 0, 0, loc).UTC(), s.Time)
		assert.Equal(t, "14:30 IST", s.Display)
	})

	t.Run("clock time already passed rolls to tomorrow", func(t *testing.T) {
		t.Parallel()

		s, err := ParsePostTime("09:00", now, loc)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 1, 26, 9, 0, 0, 0, loc).UTC(), s.Time)
		assert.Equal(t, "26/01 09:00 IST", s.Display)
	})

	t.Run("date and time in current year", func(t *testing.T) {
		t.Parallel()

		s, err := ParsePostTime("26/01 14:30", now, loc)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 1, 26, 14, 30, 0, 0, loc).UTC(), s.Time)
	})

	t.Run("full date and time", func(t *testing.T) {
		t.Parallel()

		s, err := ParsePostTime("01/03/2027 08:15", now, loc)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2027, 3, 1, 8, 15, 0, 0, loc).UTC(), s.Time)
	})

	t.Run("explicit past date is rejected", func(t *testing.T) {
		t.Parallel()

		_, err := ParsePostTime("24/01 14:30", now, loc)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrPastTime))
	})

	t.Run("nonexistent calendar date is rejected", func(t *testing.T) {
		t.Parallel()

		_, err := ParsePostTime("31/02 10:00", now, loc)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidDate))
	})

	t.Run("unrecognized input", func(t *testing.T) {
		t.Parallel()

		for _, input := range []string{"", "soon", "25:00", "14.30", "2026-01-25 14:30"} {
			_, err := ParsePostTime(input, now, loc)
			assert.True(t, errors.Is(err, ErrInvalidFormat), "input %q", input)
		}
	})
}

func TestFormatClock(t *testing.T) {
	t.Parallel()

	_, loc := refTime(t)
	// 09:00 UTC is 14:30 IST.
	utc := time.Date(2026, 1, 25, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, "14:30 IST", FormatClock(utc, loc))
	assert.Equal(t, "25/01 14:30 IST", FormatDayClock(utc, loc))
}

func TestUntil(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 1, 25, 10, 0, 0, 0, time.UTC)

	testCases := []struct {
		name     string
		target   time.Time
		expected string
	}{
		{"minutes only", now.Add(12 * time.Minute), "12m"},
		{"hours and minutes", now.Add(2*time.Hour + 5*time.Minute), "2h 5m"},
		{"exactly one hour", now.Add(time.Hour), "1h 0m"},
		{"past target clamps to zero", now.Add(-30 * time.Minute), "0m"},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, Until(now, tc.target))
		})
	}
}
