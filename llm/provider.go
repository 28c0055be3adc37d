package llm

import (
	"context"

	"github.com/veslo-ai/scribe/provider"
)

// Provider is the interface that LLM backends must implement.
type Provider interface {
	provider.Provider // embeds Name() and IsAvailable()

	// Complete sends a completion request and returns the full response.
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)

	// Stream sends a completion request and returns a channel of streamed chunks.
	Stream(ctx context.Context, req CompletionRequest) (<-chan StreamChunk, error)
}
