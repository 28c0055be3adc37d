package api

import (
	stderrors "errors"

	"github.com/gin-gonic/gin"

	"github.com/veslo-ai/scribe/audio"
	"github.com/veslo-ai/scribe/errors"
	"github.com/veslo-ai/scribe/resilience"
	"github.com/veslo-ai/scribe/server"
	"github.com/veslo-ai/scribe/transcription"
	"github.com/veslo-ai/scribe/validation"
)

// TranscriptionConfig overrides engine defaults for a one-shot request.
type TranscriptionConfig struct {
	Language string `json:"language"`
}

// TranscriptionRequest is a one-shot transcription of a full recording.
type TranscriptionRequest struct {
	Blob   string              `json:"blob" validate:"required,base64"`
	Config TranscriptionConfig `json:"config"`
}

// TranscriptionWord is one word with millisecond offsets into the recording.
type TranscriptionWord struct {
	Word      string   `json:"word"`
	Timestamp [2]int64 `json:"timestamp"`
}

// Transcribe handles POST /api/v1/transcription. It is a stateless
// pass-through over the engine adapter: no chunk bookkeeping, timestamps
// stay relative to the uploaded recording.
func (h *Handler) Transcribe(c *gin.Context) {
	var req TranscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		server.RespondWithError(c, errors.InvalidInput("body", "must be valid JSON").WithCause(err))
		return
	}
	if err := validation.Validate(&req); err != nil {
		server.RespondWithError(c, err)
		return
	}

	blob, err := audio.DecodeFragment(req.Blob)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	language := req.Config.Language
	if language == "" {
		language = h.defaults.Language
	}

	engineReq := transcription.Request{Audio: blob, Language: language}
	engineReq.ApplyDefaults()

	result, err := h.runEngine(c, engineReq)
	if err != nil {
		server.RespondWithError(c, engineCallError(err))
		return
	}

	words := make([]TranscriptionWord, 0)
	for _, w := range result.Words() {
		words = append(words, TranscriptionWord{
			Word:      w.Text,
			Timestamp: [2]int64{w.StartMS, w.EndMS},
		})
	}
	server.RespondOK(c, words)
}

// engineCallError maps an engine invocation failure to an HTTP error.
// Bulkhead rejections surface as overload, not as an engine fault.
func engineCallError(err error) *errors.AppError {
	switch {
	case stderrors.Is(err, resilience.ErrBulkheadFull):
		return errors.ServiceUnavailable("transcription engine")
	case stderrors.Is(err, resilience.ErrBulkheadTimeout):
		return errors.Timeout("transcribe")
	}
	return errors.EngineFailure(err)
}

// runEngine invokes the engine through the shared bulkhead when one is set.
func (h *Handler) runEngine(c *gin.Context, req transcription.Request) (*transcription.Result, error) {
	ctx := c.Request.Context()
	if h.bulkhead == nil {
		return h.engine.Transcribe(ctx, req)
	}
	return resilience.ExecuteWithResult(h.bulkhead, ctx, func() (*transcription.Result, error) {
		return h.engine.Transcribe(ctx, req)
	})
}
