package handlers

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Ayash-Bera/propsearch/internal/services"
	"github.com/Ayash-Bera/propsearch/pkg/utils"
)

const SessionHeader = "X-Session-ID"

type sessionEntry struct {
	session *services.Session
	touched time.Time
}

// SessionStore keeps assistant sessions in memory. Sessions idle longer than
// ttl are replaced on next access and removed by Sweep.
type SessionStore struct {
	mu         sync.Mutex
	sessions   map[string]*sessionEntry
	ttl        time.Duration
	maxHistory int
	now        func() time.Time
}

func NewSessionStore(ttl time.Duration, maxHistory int) *SessionStore {
	return &SessionStore{
		sessions:   make(map[string]*sessionEntry),
		ttl:        ttl,
		maxHistory: maxHistory,
		now:        time.Now,
	}
}

// Get returns the live session for id, starting a fresh one if needed.
func (s *SessionStore) Get(id string) *services.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if e, ok := s.sessions[id]; ok && now.Sub(e.touched) < s.ttl {
		e.touched = now
		return e.session
	}

	sess := services.NewSession(id, s.maxHistory)
	s.sessions[id] = &sessionEntry{session: sess, touched: now}
	return sess
}

// Sweep drops expired sessions and returns how many were removed.
func (s *SessionStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, e := range s.sessions {
		if now.Sub(e.touched) >= s.ttl {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// sessionID prefers a well-formed X-Session-ID header and otherwise
// fingerprints the client.
func sessionID(c *gin.Context) string {
	if id := c.GetHeader(SessionHeader); utils.ValidateSessionID(id) {
		return id
	}
	return utils.FingerprintSessionID(c.ClientIP(), c.GetHeader("User-Agent"))
}
