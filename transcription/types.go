package transcription

// LanguageAuto requests language auto-detection from the engine.
const LanguageAuto = "auto"

// Engine option defaults, matching the faster-whisper sidecar defaults.
const (
	DefaultBeamSize            = 5
	DefaultNoSpeechProbCeiling = 0.5
)

// Request holds parameters for a transcription call.
type Request struct {
	// Audio is the assembled audio buffer (WAV bytes).
	Audio []byte `json:"-"`
	// Language is the expected language of the audio (e.g. "en"), or
	// LanguageAuto to let the engine detect it.
	Language string `json:"language,omitempty"`
	// Model overrides the provider's default model.
	Model string `json:"model,omitempty"`
	// BeamSize is the decoder beam size. 0 means DefaultBeamSize.
	BeamSize int `json:"beam_size,omitempty"`
	// DisableWordTimestamps turns off per-word time spans. The zero value
	// keeps them on; without word spans the engine returns nothing the
	// reconciler can place.
	DisableWordTimestamps bool `json:"disable_word_timestamps,omitempty"`
	// DisableVAD turns off the engine's voice-activity pre-filter.
	DisableVAD bool `json:"disable_vad,omitempty"`
	// NoSpeechProbCeiling drops segments whose no-speech probability
	// exceeds it. 0 means DefaultNoSpeechProbCeiling.
	NoSpeechProbCeiling float64 `json:"no_speech_prob,omitempty"`
}

// ApplyDefaults fills unset engine options.
func (r *Request) ApplyDefaults() {
	if r.BeamSize == 0 {
		r.BeamSize = DefaultBeamSize
	}
	if r.NoSpeechProbCeiling == 0 {
		r.NoSpeechProbCeiling = DefaultNoSpeechProbCeiling
	}
}

// Word is a single transcribed word with chunk-relative millisecond offsets.
type Word struct {
	// Text is the transcribed word.
	Text string `json:"word"`
	// StartMS is the word start offset relative to the transcribed buffer.
	StartMS int64 `json:"start_ms"`
	// EndMS is the word end offset relative to the transcribed buffer.
	EndMS int64 `json:"end_ms"`
}

// Segment is a time-aligned portion of a transcript.
type Segment struct {
	// Words contains the segment's words in spoken order.
	Words []Word `json:"words"`
	// NoSpeechProb is the engine's probability that the segment is not speech.
	NoSpeechProb float64 `json:"no_speech_prob"`
}

// LanguageDecision is the engine's language guess for one invocation.
type LanguageDecision struct {
	// Language is the detected language code.
	Language string `json:"language"`
	// Probability is the engine's confidence in the detection.
	Probability float64 `json:"language_probability"`
}

// Result holds the outcome of a transcription call. Segments have already
// passed the no-speech filter; callers never see discarded segments.
type Result struct {
	Segments []Segment        `json:"segments"`
	Language LanguageDecision `json:"language"`
}

// Words flattens the retained segments into engine order.
func (r *Result) Words() []Word {
	var n int
	for _, seg := range r.Segments {
		n += len(seg.Words)
	}
	words := make([]Word, 0, n)
	for _, seg := range r.Segments {
		words = append(words, seg.Words...)
	}
	return words
}

// HasWords reports whether any retained segment produced a word.
func (r *Result) HasWords() bool {
	for _, seg := range r.Segments {
		if len(seg.Words) > 0 {
			return true
		}
	}
	return false
}

// FilterSegments drops segments whose no-speech probability exceeds the
// ceiling. A ceiling of 0 applies the default.
func FilterSegments(segments []Segment, ceiling float64) []Segment {
	if ceiling == 0 {
		ceiling = DefaultNoSpeechProbCeiling
	}
	retained := make([]Segment, 0, len(segments))
	for _, seg := range segments {
		if seg.NoSpeechProb <= ceiling {
			retained = append(retained, seg)
		}
	}
	return retained
}
