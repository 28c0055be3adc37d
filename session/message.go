package session

import (
	"encoding/json"

	"github.com/veslo-ai/scribe/errors"
)

// Frame types on the wire.
const (
	MessageTypeConfig   = "config"
	MessageTypeAudio    = "audio"
	MessageTypeLanguage = "language"
	MessageTypeWord     = "word"
)

// InboundMessage is the envelope of every client frame. Timestamp and
// ChunkStartNo are only meaningful for audio frames.
type InboundMessage struct {
	Type         string          `json:"type"`
	Data         json.RawMessage `json:"data"`
	Timestamp    int64           `json:"timestamp"`
	ChunkStartNo int64           `json:"chunk_start_no"`
}

// ParseInbound decodes a raw client frame.
func ParseInbound(raw []byte) (*InboundMessage, error) {
	var msg InboundMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		return nil, errors.MalformedMessage("frame is not valid JSON").WithCause(err)
	}
	if msg.Type == "" {
		return nil, errors.MalformedMessage("frame is missing type")
	}
	return &msg, nil
}

// ConfigPayload is the partial-update body of a config frame. Nil fields
// leave the current setting untouched.
type ConfigPayload struct {
	Language                     *string  `json:"language,omitempty" validate:"omitempty,min=2"`
	ChunkLengthMS                *int64   `json:"chunk_length_ms,omitempty" validate:"omitempty,gt=0"`
	LanguageProbabilityThreshold *float64 `json:"language_probability_threshold,omitempty" validate:"omitempty,gte=0,lte=1"`
}

// EmittedWord is one stream-absolute word in a word frame.
type EmittedWord struct {
	Word      string   `json:"word"`
	Timestamp [2]int64 `json:"timestamp"`
	IsEdge    bool     `json:"is_edge"`
	ChunkNum  int64    `json:"chunk_num"`
}

// LanguageFrame announces the locked language to the client.
type LanguageFrame struct {
	Type string `json:"type"`
	Data string `json:"data"`
}

// WordFrame carries reconciled words for one audio message.
type WordFrame struct {
	Type string        `json:"type"`
	Data []EmittedWord `json:"data"`
}

// NewLanguageFrame builds the outbound frame for a fresh language lock.
func NewLanguageFrame(language string) LanguageFrame {
	return LanguageFrame{Type: MessageTypeLanguage, Data: language}
}

// NewWordFrame builds the outbound frame for a batch of emitted words.
// Data is never nil so an empty batch marshals as [].
func NewWordFrame(words []EmittedWord) WordFrame {
	if words == nil {
		words = []EmittedWord{}
	}
	return WordFrame{Type: MessageTypeWord, Data: words}
}
