package api

import (
	"github.com/gin-gonic/gin"

	"github.com/veslo-ai/scribe/session"
)

// Stream handles GET /ws/transcription: it upgrades the connection and
// hands it to a streaming session. The handler blocks for the lifetime of
// the session; Gin runs each connection on its own goroutine so sessions
// proceed independently.
func (h *Handler) Stream(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already wrote an HTTP error to the client.
		h.log.WithError(err).Warn("websocket upgrade failed")
		return
	}

	s := session.New(conn, session.Options{
		Settings: h.defaults,
		Engine:   h.engine,
		Bulkhead: h.bulkhead,
		Logger:   h.log,
	})
	id := h.hub.Register(s)
	defer h.hub.Release(id)

	// Run owns the connection from here; errors are terminal and already
	// logged by the session.
	_ = s.Run(c.Request.Context())
}
