package ollama

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/veslo-ai/scribe/llm"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestProvider_Complete_Success(t *testing.T) {
	var got ollamaChatRequest
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" {
			t.Errorf("path = %q, want /api/chat", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		resp := ollamaChatResponse{
			Model:           "llama3",
			Message:         ollamaChatMessage{Role: "assistant", Content: "hello there"},
			Done:            true,
			PromptEvalCount: 10,
			EvalCount:       5,
		}
		_ = json.NewEncoder(w).Encode(resp)
	})

	p := NewProvider(Config{BaseURL: srv.URL})
	resp, err := p.Complete(context.Background(), llm.CompletionRequest{
		SystemPrompt: "be brief",
		Messages:     []llm.Message{{Role: "user", Content: "hi"}},
	})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}

	if resp.Content != "hello there" {
		t.Errorf("Content = %q, want %q", resp.Content, "hello there")
	}
	if resp.Usage.TotalTokens != 15 {
		t.Errorf("TotalTokens = %d, want 15", resp.Usage.TotalTokens)
	}
	if got.Stream {
		t.Error("Stream = true, want false for Complete")
	}
	if len(got.Messages) != 2 || got.Messages[0].Role != "system" {
		t.Errorf("messages = %+v, want system prompt prepended", got.Messages)
	}
}

func TestProvider_Complete_ModelOverride(t *testing.T) {
	var got ollamaChatRequest
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		_ = json.NewEncoder(w).Encode(ollamaChatResponse{Done: true})
	})

	p := NewProvider(Config{BaseURL: srv.URL, Model: "llama3"})
	_, err := p.Complete(context.Background(), llm.CompletionRequest{
		Model:    "qwen2.5:1.5b",
		Messages: []llm.Message{{Role: "user", Content: "hi"}},
	})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if got.Model != "qwen2.5:1.5b" {
		t.Errorf("model = %q, want request override", got.Model)
	}
}

func TestProvider_Complete_ServerError(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	})

	p := NewProvider(Config{BaseURL: srv.URL})
	_, err := p.Complete(context.Background(), llm.CompletionRequest{
		Messages: []llm.Message{{Role: "user", Content: "hi"}},
	})
	if err == nil {
		t.Fatal("expected error for non-200 response")
	}
}

func TestProvider_Stream_Chunks(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		parts := []string{"The ", "quick ", "fox"}
		enc := json.NewEncoder(w)
		for i, part := range parts {
			_ = enc.Encode(ollamaChatResponse{
				Message: ollamaChatMessage{Role: "assistant", Content: part},
				Done:    i == len(parts)-1,
			})
		}
	})

	p := NewProvider(Config{BaseURL: srv.URL})
	ch, err := p.Stream(context.Background(), llm.CompletionRequest{
		Messages: []llm.Message{{Role: "user", Content: "go"}},
	})
	if err != nil {
		t.Fatalf("Stream: %v", err)
	}

	var content string
	var sawDone bool
	for chunk := range ch {
		if chunk.Err != nil {
			t.Fatalf("chunk error: %v", chunk.Err)
		}
		content += chunk.Content
		if chunk.Done {
			sawDone = true
		}
	}

	if content != "The quick fox" {
		t.Errorf("content = %q, want %q", content, "The quick fox")
	}
	if !sawDone {
		t.Error("never received a Done chunk")
	}
}

func TestProvider_Stream_MalformedChunk(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "{not json")
	})

	p := NewProvider(Config{BaseURL: srv.URL})
	ch, err := p.Stream(context.Background(), llm.CompletionRequest{
		Messages: []llm.Message{{Role: "user", Content: "go"}},
	})
	if err != nil {
		t.Fatalf("Stream: %v", err)
	}

	var sawErr bool
	for chunk := range ch {
		if chunk.Err != nil {
			sawErr = true
		}
	}
	if !sawErr {
		t.Error("expected an error chunk for malformed stream data")
	}
}

func TestProvider_IsAvailable(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tags" {
			http.NotFound(w, r)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	p := NewProvider(Config{BaseURL: srv.URL})
	if !p.IsAvailable(context.Background()) {
		t.Error("IsAvailable = false against healthy server")
	}

	down := NewProvider(Config{BaseURL: "http://127.0.0.1:1", Timeout: time.Second})
	if down.IsAvailable(context.Background()) {
		t.Error("IsAvailable = true against unreachable server")
	}
}

func TestFactory_BuildsFromConfigMap(t *testing.T) {
	factory := Factory()
	p, err := factory(map[string]any{
		"base_url":    "http://example.test:11434",
		"model":       "llama3",
		"temperature": 0.2,
	})
	if err != nil {
		t.Fatalf("factory: %v", err)
	}
	if p.Name() != ProviderName {
		t.Errorf("Name = %q, want %q", p.Name(), ProviderName)
	}
}
