package session

import (
	"github.com/veslo-ai/scribe/transcription"
	"github.com/veslo-ai/scribe/validation"
)

// Settings default values. They match the engine sidecar's expectations
// for short streaming chunks.
const (
	DefaultLanguage                     = "en"
	DefaultChunkLengthMS                = 500
	DefaultLanguageProbabilityThreshold = 0.65
)

// Settings is the per-session configuration. It is mutated by config
// messages and by the language lock; audio processing works on a value
// snapshot taken when the message arrives, so a concurrent config update
// never changes the rules mid-message.
type Settings struct {
	Language                     string  `json:"language"`
	ChunkLengthMS                int64   `json:"chunk_length_ms"`
	LanguageProbabilityThreshold float64 `json:"language_probability_threshold"`
}

// DefaultSettings returns the settings a new session starts with.
func DefaultSettings() Settings {
	return Settings{
		Language:                     DefaultLanguage,
		ChunkLengthMS:                DefaultChunkLengthMS,
		LanguageProbabilityThreshold: DefaultLanguageProbabilityThreshold,
	}
}

// Merge applies a partial config payload and returns the updated settings.
// Fields absent from the payload keep their previous value.
func (s Settings) Merge(p ConfigPayload) Settings {
	if p.Language != nil {
		s.Language = *p.Language
	}
	if p.ChunkLengthMS != nil {
		s.ChunkLengthMS = *p.ChunkLengthMS
	}
	if p.LanguageProbabilityThreshold != nil {
		s.LanguageProbabilityThreshold = *p.LanguageProbabilityThreshold
	}
	return s
}

// Validate checks range constraints on the settings.
func (s Settings) Validate() error {
	v := validation.New()
	v.Required("language", s.Language)
	v.Custom(s.ChunkLengthMS > 0, "chunk_length_ms", "must be greater than zero")
	v.UnitInterval("language_probability_threshold", s.LanguageProbabilityThreshold)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

// AutoDetect reports whether the session is still waiting for a language lock.
func (s Settings) AutoDetect() bool {
	return s.Language == transcription.LanguageAuto
}
