package session

import (
	"sync"

	"github.com/linkki-framework/linkki-sub003/pkg/logutil"
)

var logger = logutil.GetLogger("[session] ")

// Hub keeps track of the live sessions.
type Hub struct {
	mu       sync.Mutex
	sessions map[int64]*Session
}

// NewHub returns an empty Hub.
func NewHub() *Hub {
	return &Hub{sessions: make(map[int64]*Session)}
}

// Add adds a session.
func (h *Hub) Add(s *Session) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sessions[s.ID()] = s
}

// Remove removes a session.
func (h *Hub) Remove(s *Session) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.sessions, s.ID())
}

// Len returns the number of sessions.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.sessions)
}

// RefreshAll refreshes every session. Failures are logged.
func (h *Hub) RefreshAll() {
	h.mu.Lock()
	sessions := make([]*Session, 0, len(h.sessions))
	for _, s := range h.sessions {
		sessions = append(sessions, s)
	}
	h.mu.Unlock()

	for _, s := range sessions {
		if err := s.Refresh(); err != nil {
			logger.Printf("refresh session %d: %v", s.ID(), err)
		}
	}
}
