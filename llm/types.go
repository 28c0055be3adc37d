package llm

// Message is one turn of a chat conversation. Role is "system", "user"
// or "assistant".
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionRequest is what the summarization endpoints hand a provider.
type CompletionRequest struct {
	// Model overrides the provider's configured model when set.
	Model string `json:"model,omitempty"`
	// Messages is the conversation, usually a single user message
	// holding the compiled prompt.
	Messages []Message `json:"messages"`
	// SystemPrompt, when set, is prepended as a system message.
	SystemPrompt string `json:"system_prompt,omitempty"`
	// Temperature overrides the provider's configured sampling
	// temperature when non-zero.
	Temperature float64 `json:"temperature,omitempty"`
}

// CompletionResponse is a fully buffered completion.
type CompletionResponse struct {
	// Content is the generated text.
	Content string `json:"content"`
	// Model is the model that produced the response.
	Model string `json:"model"`
	// Usage reports token consumption.
	Usage Usage `json:"usage"`
}

// StreamChunk is one piece of a streamed completion.
type StreamChunk struct {
	// Content is the text fragment.
	Content string `json:"content"`
	// Done marks the final chunk.
	Done bool `json:"done"`
	// Err is set when the stream fails mid-way; no further chunks follow.
	Err error `json:"-"`
}

// Usage reports token consumption for one completion.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}
