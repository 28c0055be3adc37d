// Package provider holds the registry the service picks its pluggable
// backends from at startup. The transcription and llm packages instantiate
// typed registries on top of it; the configured provider name selects
// which factory builds the backend.
package provider
