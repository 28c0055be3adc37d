// Package transcription defines the provider interface and common types
// for interacting with speech-to-text engines.
//
// It follows the provider pattern with a pluggable registry for
// construction-time backend selection.
//
// # Backends
//
//   - transcription/whisper: faster-whisper HTTP sidecar
//
// # Usage
//
//	reg := transcription.NewRegistry()
//	reg.Set("whisper", whisperProvider)
//	engine, _ := reg.Get("whisper")
//	result, err := engine.Transcribe(ctx, req)
package transcription
