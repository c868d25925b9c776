package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNextAvailable(t *testing.T) {
	t.Parallel()

	last := time.Date(2026, 1, 25, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, last.Add(30*time.Minute), NextAvailable(last, 30))
	assert.Equal(t, last, NextAvailable(last, 0))
}

func TestRemainingWait(t *testing.T) {
	t.Parallel()

	last := time.Date(2026, 1, 25, 10, 0, 0, 0, time.UTC)

	testCases := []struct {
		name       string
		now        time.Time
		gapMinutes int
		allowed    bool
		remaining  int
	}{
		{"gap fully elapsed", last.Add(30 * time.Minute), 30, true, 0},
		{"gap exceeded", last.Add(time.Hour), 30, true, 0},
		{"mid gap", last.Add(10 * time.Minute), 30, false, 20},
		{"just posted", last, 30, false, 30},
		{"zero gap always allows", last, 0, true, 0},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			allowed, remaining := RemainingWait(last, tc.gapMinutes, tc.now)
			assert.Equal(t, tc.allowed, allowed)
			assert.Equal(t, tc.remaining, remaining)
		})
	}
}

func TestFindConflict(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, 1, 25, 12, 0, 0, 0, time.UTC)

	t.Run("no existing posts", func(t *testing.T) {
		t.Parallel()

		_, conflict := FindConflict(base, 30, nil)
		assert.False(t, conflict)
	})

	t.Run("far enough from all posts", func(t *testing.T) {
		t.Parallel()

		existing := []time.Time{base.Add(-time.Hour), base.Add(time.Hour)}
		_, conflict := FindConflict(base, 30, existing)
		assert.False(t, conflict)
	})

	t.Run("too close after an existing post", func(t *testing.T) {
		t.Parallel()

		prior := base.Add(-10 * time.Minute)
		next, conflict := FindConflict(base, 30, []time.Time{prior})
		assert.True(t, conflict)
		assert.Equal(t, prior.Add(30*time.Minute), next)
	})

	t.Run("too close before an existing post", func(t *testing.T) {
		t.Parallel()

		later := base.Add(15 * time.Minute)
		next, conflict := FindConflict(base, 30, []time.Time{later})
		assert.True(t, conflict)
		assert.Equal(t, later.Add(30*time.Minute), next)
	})

	t.Run("exact gap boundary is allowed", func(t *testing.T) {
		t.Parallel()

		_, conflict := FindConflict(base, 30, []time.Time{base.Add(-30 * time.Minute)})
		assert.False(t, conflict)
	})
}
