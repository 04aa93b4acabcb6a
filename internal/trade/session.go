package trade

import "sync"

// Session is the per-user, in-memory conversation state.
type Session struct {
	UserID int64
	Phase  Phase
	// PhotoRefs are the collected screenshot references in upload order.
	PhotoRefs []string
	// Images are the downloaded screenshot bytes, same order as PhotoRefs.
	Images [][]byte
}

// SessionStore holds one session per user. The lock guards only the map:
// the front end serializes events per user, so a session itself is mutated
// by at most one handler at a time.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[int64]*Session
}

// NewSessionStore creates an empty session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[int64]*Session)}
}

// Get returns the user's session, creating an idle one when absent.
func (s *SessionStore) Get(userID int64) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[userID]; ok {
		return sess
	}
	sess := &Session{UserID: userID, Phase: PhaseIdle}
	s.sessions[userID] = sess
	return sess
}

// Reset replaces the user's session with a fresh one and returns it.
func (s *SessionStore) Reset(userID int64) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := &Session{UserID: userID, Phase: PhaseIdle}
	s.sessions[userID] = sess
	return sess
}

// Clear drops the user's session entirely.
func (s *SessionStore) Clear(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
}
