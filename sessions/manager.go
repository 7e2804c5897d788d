package sessions

import (
	"sync"
	"time"

	"gym-management-api/models"
)

// Manager keeps live sessions in memory. Sessions older than the TTL are
// treated as gone and pruned on lookup and whenever a new session opens.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
	now      func() time.Time
}

func NewManager(ttl time.Duration) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Create opens a new session for user.
func (m *Manager) Create(user models.User) *Session {
	sess := New(user)
	sess.CreatedAt = m.now()

	m.mu.Lock()
	m.pruneLocked(sess.CreatedAt)
	m.sessions[sess.ID] = sess
	m.mu.Unlock()
	return sess
}

// pruneLocked drops expired sessions. Caller holds m.mu.
func (m *Manager) pruneLocked(now time.Time) {
	if m.ttl <= 0 {
		return
	}
	for id, sess := range m.sessions {
		if now.Sub(sess.CreatedAt) > m.ttl {
			delete(m.sessions, id)
		}
	}
}

func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	sess, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if m.ttl > 0 && m.now().Sub(sess.CreatedAt) > m.ttl {
		m.Revoke(id)
		return nil, false
	}
	return sess, true
}

// Revoke drops the session and any uncommitted selection it carried.
func (m *Manager) Revoke(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

// RevokeUser drops every session opened by the given user.
func (m *Manager) RevokeUser(userID uint) {
	m.mu.Lock()
	for id, sess := range m.sessions {
		if sess.User.ID == userID {
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
