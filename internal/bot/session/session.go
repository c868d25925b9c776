// Package session tracks per-user conversational state across updates, so
// multi-step flows such as post creation and admin configuration can carry
// context from one message to the next.
package session

import (
	"sync"
	"time"
)

// Step identifies where a user is within a multi-step flow.
type Step int

const (
	// StepNone means no flow is in progress.
	StepNone Step = iota

	// StepAwaitingPassword waits for a manager's login password.
	StepAwaitingPassword

	// StepChoosingServer waits for the manager to pick a posting target.
	StepChoosingServer

	// StepAwaitingTime waits for the scheduled posting time.
	StepAwaitingTime

	// StepAwaitingContent waits for the post text or photo.
	StepAwaitingContent

	// StepConfirmingPost waits for the final confirmation tap.
	StepConfirmingPost

	// StepAwaitingFooter waits for a server's new footer text.
	StepAwaitingFooter

	// StepAwaitingButtonText waits for a button's label.
	StepAwaitingButtonText

	// StepAwaitingButtonURL waits for a button's URL.
	StepAwaitingButtonURL

	// StepAwaitingTimeGap waits for a server's new minimum gap in minutes.
	StepAwaitingTimeGap

	// StepAwaitingManagerID waits for a Telegram ID in a manager-management flow.
	StepAwaitingManagerID

	// StepAwaitingManagerPassword waits for a manager's new password.
	StepAwaitingManagerPassword

	// StepAwaitingBroadcast waits for the announcement text.
	StepAwaitingBroadcast
)

// State carries the data accumulated during a flow.
type State struct {
	Step Step

	// Login flow.
	PasswordRetries int

	// Post creation flow.
	PostServerID     int
	ScheduledTime    time.Time
	ScheduledDisplay string
	Immediate        bool
	PhotoID          string
	TextContent      string

	// Admin configuration flows.
	ConfigServerID  int
	ButtonNum       int
	ButtonText      string
	AdminAction     string
	TargetManagerID int64
}

// Manager holds session state for all users. Safe for concurrent use.
type Manager struct {
	mu       sync.Mutex
	sessions map[int64]*State
}

// NewManager creates an empty session manager.
func NewManager() *Manager {
	return &Manager{sessions: make(map[int64]*State)}
}

// Get returns a copy of the user's state, or a zero state when none exists.
func (m *Manager) Get(userID int64) State {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[userID]; ok {
		return *s
	}
	return State{}
}

// Update applies fn to the user's state, creating it if needed.
func (m *Manager) Update(userID int64, fn func(*State)) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[userID]
	if !ok {
		s = &State{}
		m.sessions[userID] = s
	}
	fn(s)
}

// Set replaces the user's state.
func (m *Manager) Set(userID int64, state State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[userID] = &state
}

// Clear removes the user's state, ending any flow in progress.
func (m *Manager) Clear(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, userID)
}

// Step returns the user's current step without copying the whole state.
func (m *Manager) Step(userID int64) Step {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[userID]; ok {
		return s.Step
	}
	return StepNone
}
