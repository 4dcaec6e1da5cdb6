package bot

import (
	"sync"
	"time"
)

// SessionManager owns every live session, keyed by Telegram user id. Handlers
// run one at a time off the update loop, so a session is only ever mutated by
// the handler processing that user's message; the mutex guards the map itself
// against the periodic expiry sweep.
type SessionManager struct {
	mu       sync.Mutex
	sessions map[int64]*Session
	ttl      time.Duration
}

func NewSessionManager(ttl time.Duration) *SessionManager {
	return &SessionManager{
		sessions: make(map[int64]*Session),
		ttl:      ttl,
	}
}

// Get returns the session for the user, lazily creating an idle one.
func (m *SessionManager) Get(userID int64) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, ok := m.sessions[userID]
	if !ok {
		sess = &Session{State: StateIdle}
		m.sessions[userID] = sess
	}
	sess.UpdatedAt = time.Now()

	return sess
}

// Clear resets the user's flow back to idle, discarding scratch data.
// Registration lockout bookkeeping survives the reset.
func (m *SessionManager) Clear(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, ok := m.sessions[userID]
	if !ok {
		return
	}

	m.sessions[userID] = &Session{
		State:        StateIdle,
		CodeAttempts: sess.CodeAttempts,
		LockedUntil:  sess.LockedUntil,
		UpdatedAt:    time.Now(),
	}
}

// ExpireIdle drops sessions untouched for longer than the TTL and returns how
// many were removed. Abandoned flows would otherwise live forever.
func (m *SessionManager) ExpireIdle(now time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	var removed int
	for id, sess := range m.sessions {
		if now.Sub(sess.UpdatedAt) > m.ttl {
			delete(m.sessions, id)
			removed++
		}
	}

	return removed
}
