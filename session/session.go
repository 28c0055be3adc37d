package session

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/veslo-ai/scribe/audio"
	"github.com/veslo-ai/scribe/errors"
	"github.com/veslo-ai/scribe/logger"
	"github.com/veslo-ai/scribe/resilience"
	"github.com/veslo-ai/scribe/transcription"
	"github.com/veslo-ai/scribe/validation"
)

// Conn is the transport endpoint a session owns exclusively. It is
// shaped after *websocket.Conn so the gorilla connection satisfies it
// directly and tests can substitute a fake.
type Conn interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteJSON(v any) error
	Close() error
}

// Options configures a new session.
type Options struct {
	// Settings is the starting configuration. Zero value means defaults.
	Settings Settings
	// Engine is the transcription backend. Required.
	Engine transcription.Provider
	// Bulkhead bounds concurrent engine calls across sessions. Optional;
	// nil runs engine calls unguarded.
	Bulkhead *resilience.Bulkhead
	// Logger is the parent logger. Optional.
	Logger *logger.Logger
}

// Session is the per-connection protocol state machine. Messages are
// processed strictly sequentially by Run; the next read does not happen
// until the current message's response has been written.
type Session struct {
	id       string
	conn     Conn
	engine   transcription.Provider
	bulkhead *resilience.Bulkhead
	log      *logger.Logger

	mu       sync.Mutex
	settings Settings
	closed   bool
}

// New creates a session over an accepted connection.
func New(conn Conn, opts Options) *Session {
	if opts.Settings == (Settings{}) {
		opts.Settings = DefaultSettings()
	}
	if opts.Logger == nil {
		opts.Logger = logger.NewDefault("scribe")
	}
	id := uuid.NewString()
	return &Session{
		id:       id,
		conn:     conn,
		engine:   opts.Engine,
		bulkhead: opts.Bulkhead,
		log: opts.Logger.WithComponent("session").WithFields(map[string]interface{}{
			logger.FieldSessionID: id,
		}),
		settings: opts.Settings,
	}
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Settings returns a snapshot of the current configuration.
func (s *Session) Settings() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// Run reads and handles messages until the client disconnects or a
// message fails. The connection is closed on return in every case.
func (s *Session) Run(ctx context.Context) error {
	defer s.Close() //nolint:errcheck // Close error is irrelevant on the way out

	s.log.Info("session started")
	for {
		_, raw, err := s.conn.ReadMessage()
		if err != nil {
			if s.isClosed() || isExpectedClose(err) {
				s.log.Info("client disconnected")
				return nil
			}
			s.log.WithError(err).Warn("transport failure")
			return errors.Transport(err)
		}

		if err := s.handle(ctx, raw); err != nil {
			s.log.WithError(err).Error("closing session after failure")
			return err
		}
	}
}

// Close releases the connection. Safe to call from any failure path;
// closing an already-closed session is a no-op.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.conn.Close()
}

func (s *Session) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// handle routes one inbound frame.
func (s *Session) handle(ctx context.Context, raw []byte) error {
	msg, err := ParseInbound(raw)
	if err != nil {
		return err
	}

	switch msg.Type {
	case MessageTypeConfig:
		return s.handleConfig(msg.Data)
	case MessageTypeAudio:
		return s.handleAudio(ctx, msg)
	default:
		return errors.MalformedMessage("unknown frame type: " + msg.Type)
	}
}

// handleConfig merges a partial configuration update. Unspecified fields
// keep their previous values.
func (s *Session) handleConfig(data json.RawMessage) error {
	var payload ConfigPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return errors.MalformedMessage("config data must be an object").WithCause(err)
	}
	if err := validation.Validate(&payload); err != nil {
		return err
	}

	s.mu.Lock()
	s.settings = s.settings.Merge(payload)
	merged := s.settings
	s.mu.Unlock()

	s.log.Debug("configuration updated", map[string]interface{}{
		logger.FieldLanguage: merged.Language,
		"chunk_length_ms":    merged.ChunkLengthMS,
	})
	return nil
}

// handleAudio assembles the fragments, runs the engine, and emits at most
// one outbound frame. Settings are snapshotted up front so a concurrent
// update cannot change the rules for a message already in flight.
func (s *Session) handleAudio(ctx context.Context, msg *InboundMessage) error {
	snapshot := s.Settings()

	var fragments []string
	if err := json.Unmarshal(msg.Data, &fragments); err != nil {
		return errors.MalformedMessage("audio data must be an array of encoded fragments").WithCause(err)
	}

	buf, err := audio.Assemble(fragments)
	if err != nil {
		return err
	}

	result, err := s.transcribe(ctx, buf, snapshot.Language)
	if err != nil {
		return engineError(err)
	}

	if snapshot.AutoDetect() {
		decision := EvaluateLock(snapshot, result)
		if !decision.Lock {
			s.log.Debug("language not locked yet", map[string]interface{}{
				logger.FieldLanguage: result.Language.Language,
				"probability":        result.Language.Probability,
			})
			return nil
		}

		s.setLanguage(decision.Language)
		s.log.Info("language locked", map[string]interface{}{
			logger.FieldLanguage: decision.Language,
		})
		if err := s.conn.WriteJSON(NewLanguageFrame(decision.Language)); err != nil {
			return errors.Transport(err)
		}
		return nil
	}

	words := Reconcile(result.Words(), snapshot.ChunkLengthMS, msg.Timestamp, msg.ChunkStartNo)
	if err := s.conn.WriteJSON(NewWordFrame(words)); err != nil {
		return errors.Transport(err)
	}
	return nil
}

// transcribe invokes the engine, through the bulkhead when one is set.
func (s *Session) transcribe(ctx context.Context, buf []byte, language string) (*transcription.Result, error) {
	req := transcription.Request{Audio: buf, Language: language}
	req.ApplyDefaults()

	if s.bulkhead == nil {
		return s.engine.Transcribe(ctx, req)
	}
	return resilience.ExecuteWithResult(s.bulkhead, ctx, func() (*transcription.Result, error) {
		return s.engine.Transcribe(ctx, req)
	})
}

// engineError maps an engine invocation failure. Bulkhead rejections are
// load conditions, not engine faults, and report as such.
func engineError(err error) *errors.AppError {
	switch {
	case stderrors.Is(err, resilience.ErrBulkheadFull):
		return errors.ServiceUnavailable("transcription engine")
	case stderrors.Is(err, resilience.ErrBulkheadTimeout):
		return errors.Timeout("transcribe")
	}
	return errors.EngineFailure(err)
}

func (s *Session) setLanguage(language string) {
	s.mu.Lock()
	s.settings.Language = language
	s.mu.Unlock()
}

// isExpectedClose reports whether a read error is a normal client
// disconnect rather than a transport fault.
func isExpectedClose(err error) bool {
	return websocket.IsCloseError(err,
		websocket.CloseNormalClosure,
		websocket.CloseGoingAway,
		websocket.CloseNoStatusReceived,
	)
}
