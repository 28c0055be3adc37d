// Package llm defines the provider-agnostic interface for large language
// model backends used by the summarization endpoints.
//
// The package declares universal request/response types ([CompletionRequest],
// [CompletionResponse], [StreamChunk]) and the [Provider] interface that
// concrete backends implement. Backends register themselves through the
// generic provider registry:
//
//	reg := llm.NewRegistry()
//	reg.RegisterFactory(ollama.ProviderName, ollama.Factory())
//
//	p, err := reg.Create(ollama.ProviderName, map[string]any{
//	    "base_url": "http://localhost:11434",
//	    "model":    "llama3",
//	})
//
//	resp, err := p.Complete(ctx, llm.CompletionRequest{
//	    Messages: []llm.Message{{Role: "user", Content: "Summarize this visit."}},
//	})
package llm
