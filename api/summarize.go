package api

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/veslo-ai/scribe/errors"
	"github.com/veslo-ai/scribe/llm"
	"github.com/veslo-ai/scribe/server"
	"github.com/veslo-ai/scribe/validation"
)

// defaultSummarizationPrompt is the prompt library entry used when the
// client does not name one.
const defaultSummarizationPrompt = "norsk-summarization-prompt"

// SummarizeRequest asks for a summary of a finished transcription.
type SummarizeRequest struct {
	Transcription string `json:"transcription" validate:"required"`
	PromptName    string `json:"prompt_name,omitempty"`
	PromptVersion int    `json:"prompt_version,omitempty" validate:"omitempty,gte=0"`
	// Stream switches the response to newline-delimited JSON chunks
	// written while the model generates.
	Stream bool `json:"stream,omitempty"`
}

// SummarizeResponse carries the generated summary.
type SummarizeResponse struct {
	Summary string `json:"summary"`
}

// SummaryChunk is one line of a streamed summary response.
type SummaryChunk struct {
	Content string `json:"content"`
	Done    bool   `json:"done"`
}

// Summarize handles POST /api/v1/summarize.
func (h *Handler) Summarize(c *gin.Context) {
	var req SummarizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		server.RespondWithError(c, errors.InvalidInput("body", "must be valid JSON").WithCause(err))
		return
	}
	if err := validation.Validate(&req); err != nil {
		server.RespondWithError(c, err)
		return
	}

	name := req.PromptName
	if name == "" {
		name = defaultSummarizationPrompt
	}

	if req.Stream {
		h.streamSummary(c, name, req.PromptVersion, req.Transcription)
		return
	}

	summary, err := h.generate(c, name, req.PromptVersion, req.Transcription)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, SummarizeResponse{Summary: summary})
}

// streamSummary writes the summary as it is generated, one SummaryChunk
// per line. Failures after the first chunk can only cut the stream short;
// the status line is already on the wire.
func (h *Handler) streamSummary(c *gin.Context, promptName string, promptVersion int, content string) {
	tmpl, err := h.prompts.Resolve(promptName, promptVersion)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	compiled := tmpl.Compile(map[string]string{"content": content})

	chunks, err := h.llm.Stream(c.Request.Context(), llm.CompletionRequest{
		Messages: []llm.Message{{Role: "user", Content: compiled}},
	})
	if err != nil {
		server.RespondWithError(c, errors.ExternalServiceError(h.llm.Name(), err))
		return
	}

	c.Header("Content-Type", "application/x-ndjson")
	c.Status(http.StatusOK)
	enc := json.NewEncoder(c.Writer)
	for chunk := range chunks {
		if chunk.Err != nil {
			h.log.WithError(chunk.Err).Warn("summary stream cut short")
			return
		}
		if err := enc.Encode(SummaryChunk{Content: chunk.Content, Done: chunk.Done}); err != nil {
			return
		}
		c.Writer.Flush()
	}
}

// generate resolves a prompt, compiles it with the transcription, and runs
// the text generation provider. Shared by the summarize and journal note
// endpoints.
func (h *Handler) generate(c *gin.Context, promptName string, promptVersion int, content string) (string, error) {
	tmpl, err := h.prompts.Resolve(promptName, promptVersion)
	if err != nil {
		return "", err
	}
	compiled := tmpl.Compile(map[string]string{"content": content})

	resp, err := h.llm.Complete(c.Request.Context(), llm.CompletionRequest{
		Messages: []llm.Message{{Role: "user", Content: compiled}},
	})
	if err != nil {
		return "", errors.ExternalServiceError(h.llm.Name(), err)
	}

	h.log.Debug("text generated", map[string]interface{}{
		"prompt":       tmpl.Name,
		"model":        resp.Model,
		"total_tokens": resp.Usage.TotalTokens,
	})
	return resp.Content, nil
}
