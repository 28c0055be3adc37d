package session

import (
	"sync"

	"github.com/veslo-ai/scribe/logger"
)

// Hub is the connection lifecycle manager. It tracks live sessions for
// bookkeeping only; sessions never share state through it. The registry
// supports iteration so broadcast-style extensions can be added without
// touching the session type.
type Hub struct {
	mu       sync.Mutex
	sessions map[string]*Session
	log      *logger.Logger
}

// NewHub creates an empty hub.
func NewHub(log *logger.Logger) *Hub {
	if log == nil {
		log = logger.NewDefault("scribe")
	}
	return &Hub{
		sessions: make(map[string]*Session),
		log:      log.WithComponent("hub"),
	}
}

// Register adds a session to the active set and returns its id.
func (h *Hub) Register(s *Session) string {
	h.mu.Lock()
	h.sessions[s.ID()] = s
	active := len(h.sessions)
	h.mu.Unlock()

	h.log.Info("session registered", map[string]interface{}{
		logger.FieldSessionID: s.ID(),
		"active_sessions":     active,
	})
	return s.ID()
}

// Release removes a session and closes its connection. Idempotent:
// disconnect can be triggered from multiple failure paths, so releasing
// an unknown or already-released id is a no-op.
func (h *Hub) Release(id string) {
	h.mu.Lock()
	s, ok := h.sessions[id]
	if ok {
		delete(h.sessions, id)
	}
	active := len(h.sessions)
	h.mu.Unlock()

	if !ok {
		return
	}
	_ = s.Close()
	h.log.Info("session released", map[string]interface{}{
		logger.FieldSessionID: id,
		"active_sessions":     active,
	})
}

// Count returns the number of active sessions.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.sessions)
}

// Each calls fn for every active session. The hub lock is not held
// during the calls; fn must not assume the session is still registered.
func (h *Hub) Each(fn func(*Session)) {
	h.mu.Lock()
	snapshot := make([]*Session, 0, len(h.sessions))
	for _, s := range h.sessions {
		snapshot = append(snapshot, s)
	}
	h.mu.Unlock()

	for _, s := range snapshot {
		fn(s)
	}
}
