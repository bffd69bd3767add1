// Package session tracks per-user dialogue state between Telegram updates.
package session

import (
	"sync"

	"github.com/m3rciful/taskbot/internal/tasks"
)

// Step identifies where a user currently is in the conversation.
type Step string

const (
	// StepMainMenu is the resting state with no flow in progress.
	StepMainMenu Step = "main_menu"

	StepAddingName        Step = "adding_name"
	StepAddingDescription Step = "adding_description"
	StepAddingDeadline    Step = "adding_deadline"

	StepEditingName        Step = "editing_name"
	StepEditingDescription Step = "editing_description"
	StepEditingDeadline    Step = "editing_deadline"
)

// Session is the typed dialogue state of one user. Draft is non-nil only
// while an add flow is collecting fields; EditingTaskID is non-zero only
// while an edit flow awaits input.
type Session struct {
	Step          Step
	Draft         *tasks.Draft
	EditingTaskID int64
}

// Store keeps sessions keyed by Telegram user id. Implementations must be
// safe for concurrent use.
type Store interface {
	Get(userID int64) Session
	Put(userID int64, sess Session)
	Remove(userID int64)
	// InProgress reports whether the user is mid-flow, i.e. anywhere other
	// than the main menu.
	InProgress(userID int64) bool
	// Count returns the number of users with a stored session.
	Count() int
}

type memoryStore struct {
	mu       sync.RWMutex
	sessions map[int64]Session
}

// NewMemoryStore constructs an in-memory Store.
func NewMemoryStore() Store {
	return &memoryStore{sessions: make(map[int64]Session)}
}

// Get returns the stored session or a fresh main-menu session.
func (m *memoryStore) Get(userID int64) Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if sess, ok := m.sessions[userID]; ok {
		return sess
	}
	return Session{Step: StepMainMenu}
}

func (m *memoryStore) Put(userID int64, sess Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[userID] = sess
}

func (m *memoryStore) Remove(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, userID)
}

func (m *memoryStore) InProgress(userID int64) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sess, ok := m.sessions[userID]
	return ok && sess.Step != StepMainMenu
}

func (m *memoryStore) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
