package feed

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrSessionNotFound = errors.New("feed session not found")

// sessionTTL bounds a mounted session's lifetime. A session nobody
// touches for this long counts as unmounted and is swept, so its
// in-flight guard and viewed-key set die with it.
const sessionTTL = 30 * time.Minute

// Session is one mounted feed viewer. The mutex stands in for the
// single UI thread of the reference clients: every gesture or callback
// for a session runs alone.
type Session struct {
	Id     string
	mu     sync.Mutex
	viewer *Viewer
	seen   time.Time
}

// Do runs fn against the session's viewer, serialized per session.
func (s *Session) Do(fn func(v *Viewer)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seen = time.Now()
	fn(s.viewer)
}

// Manager tracks mounted feed sessions by id.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewManager() *Manager {
	return &Manager{sessions: map[string]*Session{}}
}

// Open registers a freshly mounted viewer and returns its session.
func (m *Manager) Open(v *Viewer) *Session {
	session := &Session{
		Id:     uuid.NewString(),
		viewer: v,
		seen:   time.Now(),
	}
	m.mu.Lock()
	m.sessions[session.Id] = session
	m.mu.Unlock()
	return session
}

// Get looks up a mounted session.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// Close unmounts a session. Reopening the same posts afterwards starts
// a fresh viewed-key set.
func (m *Manager) Close(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

// Sweep drops sessions idle past their TTL and reports how many went.
func (m *Manager) Sweep() int {
	cutoff := time.Now().Add(-sessionTTL)
	m.mu.Lock()
	defer m.mu.Unlock()
	swept := 0
	for id, session := range m.sessions {
		session.mu.Lock()
		idle := session.seen.Before(cutoff)
		session.mu.Unlock()
		if idle {
			delete(m.sessions, id)
			swept++
		}
	}
	return swept
}
