// Package api exposes the service's HTTP surface: the streaming
// transcription websocket plus the one-shot transcription, summarization,
// and journal note endpoints.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/veslo-ai/scribe/llm"
	"github.com/veslo-ai/scribe/logger"
	"github.com/veslo-ai/scribe/prompts"
	"github.com/veslo-ai/scribe/resilience"
	"github.com/veslo-ai/scribe/session"
	"github.com/veslo-ai/scribe/transcription"
)

// Options carries the handler's collaborators.
type Options struct {
	Engine   transcription.Provider
	LLM      llm.Provider
	Prompts  prompts.Resolver
	Hub      *session.Hub
	Bulkhead *resilience.Bulkhead
	// Defaults is the configuration new streaming sessions start with.
	Defaults session.Settings
	Logger   *logger.Logger
}

// Handler holds the route handlers and their dependencies.
type Handler struct {
	engine   transcription.Provider
	llm      llm.Provider
	prompts  prompts.Resolver
	hub      *session.Hub
	bulkhead *resilience.Bulkhead
	defaults session.Settings
	log      *logger.Logger
	upgrader websocket.Upgrader
}

// NewHandler creates the API handler.
func NewHandler(opts Options) *Handler {
	if opts.Logger == nil {
		opts.Logger = logger.NewDefault("scribe")
	}
	if opts.Defaults == (session.Settings{}) {
		opts.Defaults = session.DefaultSettings()
	}
	return &Handler{
		engine:   opts.Engine,
		llm:      opts.LLM,
		prompts:  opts.Prompts,
		hub:      opts.Hub,
		bulkhead: opts.Bulkhead,
		defaults: opts.Defaults,
		log:      opts.Logger.WithComponent("api"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  32 * 1024,
			WriteBufferSize: 4 * 1024,
			// Browser clients connect from arbitrary origins; access
			// control is handled upstream of this service.
			CheckOrigin: func(_ *http.Request) bool { return true },
		},
	}
}

// Register mounts all routes on the Gin engine.
func (h *Handler) Register(r *gin.Engine) {
	v1 := r.Group("/api/v1")
	v1.POST("/transcription", h.Transcribe)
	v1.POST("/summarize", h.Summarize)
	v1.POST("/soap/subjective", h.SoapSubjective)

	r.GET("/ws/transcription", h.Stream)
}
