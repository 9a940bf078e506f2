package usecase

import "sync"

// SessionFactory builds a session wired for one identity. The identity
// decides which cache namespace the session reads and writes.
type SessionFactory func(identity string) *SearchSession

// Manager hands out one SearchSession per identity, creating them lazily.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*SearchSession
	factory  SessionFactory
}

func NewManager(factory SessionFactory) *Manager {
	return &Manager{
		sessions: make(map[string]*SearchSession),
		factory:  factory,
	}
}

// Session returns the session for identity, creating it on first use.
func (m *Manager) Session(identity string) *SearchSession {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[identity]; ok {
		return s
	}
	s := m.factory(identity)
	m.sessions[identity] = s
	return s
}

// Close shuts down every session. Used on service shutdown.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.sessions {
		s.Close()
	}
	m.sessions = make(map[string]*SearchSession)
}
