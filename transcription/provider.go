package transcription

import (
	"context"

	"github.com/veslo-ai/scribe/provider"
)

// Provider is the interface that transcription backends must implement.
// Implementations are responsible for applying the no-speech filter before
// returning, so callers only ever see retained segments.
type Provider interface {
	provider.Provider // embeds Name() and IsAvailable()

	// Transcribe sends audio for transcription and returns the result.
	Transcribe(ctx context.Context, req Request) (*Result, error)
}
