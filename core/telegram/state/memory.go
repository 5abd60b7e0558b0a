package state

import "sync"

type memoryManager struct {
	mu       sync.RWMutex
	sessions map[int64]State
}

// NewMemoryManager constructs an in-memory Manager.
func NewMemoryManager() Manager {
	return &memoryManager{
		sessions: make(map[int64]State),
	}
}

// GetState returns the user's state, or StateIdle for unknown users.
func (m *memoryManager) GetState(userID int64) State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if st, ok := m.sessions[userID]; ok {
		return st
	}
	return StateIdle
}

// SetState stores st for the user, creating the session if necessary.
func (m *memoryManager) SetState(userID int64, st State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[userID] = normalize(st)
}

func (m *memoryManager) Transition(userID int64, fn func(State) State) State {
	m.mu.Lock()
	defer m.mu.Unlock()
	prev, ok := m.sessions[userID]
	if !ok {
		prev = StateIdle
	}
	if fn != nil {
		m.sessions[userID] = normalize(fn(prev))
	}
	return prev
}

// Clear removes the session for a user and returns the state it held.
func (m *memoryManager) Clear(userID int64) State {
	m.mu.Lock()
	defer m.mu.Unlock()
	prev, ok := m.sessions[userID]
	if !ok {
		return StateIdle
	}
	delete(m.sessions, userID)
	return prev
}

func (m *memoryManager) Count() map[State]int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[State]int)
	for _, st := range m.sessions {
		out[st]++
	}
	return out
}

func normalize(st State) State {
	if st == "" {
		return StateIdle
	}
	return st
}
