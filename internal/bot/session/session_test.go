package session

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestManager(t *testing.T) {
	t.Parallel()

	t.Run("unknown user has zero state", func(t *testing.T) {
		t.Parallel()

		m := NewManager()
		assert.Equal(t, State{}, m.Get(42))
		assert.Equal(t, StepNone, m.Step(42))
	})

	t.Run("set and get round trip", func(t *testing.T) {
		t.Parallel()

		m := NewManager()
		m.Set(42, State{Step: StepAwaitingTime, PostServerID: 2})

		got := m.Get(42)
		assert.Equal(t, StepAwaitingTime, got.Step)
		assert.Equal(t, 2, got.PostServerID)
		assert.Equal(t, StepAwaitingTime, m.Step(42))
	})

	t.Run("get returns a copy", func(t *testing.T) {
		t.Parallel()

		m := NewManager()
		m.Set(42, State{Step: StepAwaitingContent})

		got := m.Get(42)
		got.Step = StepConfirmingPost
		got.TextContent = "mutated"

		assert.Equal(t, StepAwaitingContent, m.Get(42).Step)
		assert.Empty(t, m.Get(42).TextContent)
	})

	t.Run("update creates state when missing", func(t *testing.T) {
		t.Parallel()

		m := NewManager()
		m.Update(42, func(s *State) {
			s.Step = StepAwaitingPassword
			s.PasswordRetries = 1
		})

		got := m.Get(42)
		assert.Equal(t, StepAwaitingPassword, got.Step)
		assert.Equal(t, 1, got.PasswordRetries)
	})

	t.Run("update mutates existing state in place", func(t *testing.T) {
		t.Parallel()

		m := NewManager()
		m.Set(42, State{Step: StepAwaitingButtonText, ConfigServerID: 3, ButtonNum: 1})
		m.Update(42, func(s *State) {
			s.ButtonText = "Join"
			s.Step = StepAwaitingButtonURL
		})

		got := m.Get(42)
		assert.Equal(t, StepAwaitingButtonURL, got.Step)
		assert.Equal(t, 3, got.ConfigServerID)
		assert.Equal(t, "Join", got.ButtonText)
	})

	t.Run("clear ends the flow", func(t *testing.T) {
		t.Parallel()

		m := NewManager()
		m.Set(42, State{Step: StepAwaitingBroadcast})
		m.Clear(42)

		assert.Equal(t, State{}, m.Get(42))
	})

	t.Run("users are isolated", func(t *testing.T) {
		t.Parallel()

		m := NewManager()
		m.Set(1, State{Step: StepAwaitingTime})
		m.Set(2, State{Step: StepAwaitingFooter})

		assert.Equal(t, StepAwaitingTime, m.Step(1))
		assert.Equal(t, StepAwaitingFooter, m.Step(2))
	})

	t.Run("concurrent updates", func(t *testing.T) {
		t.Parallel()

		m := NewManager()
		var wg sync.WaitGroup
		for i := 0; i < 100; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				m.Update(7, func(s *State) { s.PasswordRetries++ })
			}()
		}
		wg.Wait()

		assert.Equal(t, 100, m.Get(7).PasswordRetries)
	})
}
