package whisper

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/veslo-ai/scribe/provider"
	"github.com/veslo-ai/scribe/transcription"
)

const (
	// ProviderName is the registered name for the Whisper provider.
	ProviderName = "whisper"

	defaultWhisperURL     = "http://localhost:8387"
	defaultWhisperModel   = "large-v3"
	defaultWhisperTimeout = 120 * time.Second
)

// Config holds configuration for the Whisper transcription provider.
type Config struct {
	URL         string        `json:"url" yaml:"url" mapstructure:"url"`
	Model       string        `json:"model" yaml:"model" mapstructure:"model"`
	Device      string        `json:"device,omitempty" yaml:"device" mapstructure:"device"`
	ComputeType string        `json:"compute_type,omitempty" yaml:"compute_type" mapstructure:"compute_type"`
	Timeout     time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`
}

// ApplyDefaults fills unset fields with sidecar defaults.
func (c *Config) ApplyDefaults() {
	if c.URL == "" {
		c.URL = defaultWhisperURL
	}
	if c.Model == "" {
		c.Model = defaultWhisperModel
	}
	if c.Timeout == 0 {
		c.Timeout = defaultWhisperTimeout
	}
}

// Provider implements transcription.Provider using a faster-whisper HTTP sidecar.
type Provider struct {
	cfg    Config
	client *http.Client
}

// NewProvider creates a new Whisper transcription provider.
func NewProvider(cfg Config) *Provider {
	cfg.ApplyDefaults()
	return &Provider{
		cfg: cfg,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// Factory returns a provider.Factory that creates Whisper Provider
// instances from a generic config map.
func Factory() provider.Factory[transcription.Provider] {
	return func(cfg map[string]any) (transcription.Provider, error) {
		wc := Config{}
		if v, ok := cfg["url"].(string); ok {
			wc.URL = v
		}
		if v, ok := cfg["model"].(string); ok {
			wc.Model = v
		}
		if v, ok := cfg["device"].(string); ok {
			wc.Device = v
		}
		if v, ok := cfg["compute_type"].(string); ok {
			wc.ComputeType = v
		}
		if v, ok := cfg["timeout"].(time.Duration); ok {
			wc.Timeout = v
		}
		return NewProvider(wc), nil
	}
}

// Name returns the provider name.
func (p *Provider) Name() string { return ProviderName }

// IsAvailable checks if the Whisper sidecar is reachable.
func (p *Provider) IsAvailable(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.cfg.URL+"/health", nil)
	if err != nil {
		return false
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// Transcribe sends an audio buffer to the Whisper sidecar and returns the
// retained, word-aligned result. The language field is omitted from the
// request when auto-detection is wanted, mirroring how the sidecar treats
// a missing language as "detect".
func (p *Provider) Transcribe(ctx context.Context, req transcription.Request) (*transcription.Result, error) {
	req.ApplyDefaults()

	model := p.cfg.Model
	if req.Model != "" {
		model = req.Model
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("audio", "audio.wav")
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(req.Audio); err != nil {
		return nil, fmt.Errorf("write audio data: %w", err)
	}

	_ = writer.WriteField("model", model)
	_ = writer.WriteField("beam_size", strconv.Itoa(req.BeamSize))
	_ = writer.WriteField("word_timestamps", strconv.FormatBool(!req.DisableWordTimestamps))
	_ = writer.WriteField("vad_filter", strconv.FormatBool(!req.DisableVAD))
	if req.Language != "" && req.Language != transcription.LanguageAuto {
		_ = writer.WriteField("language", req.Language)
	}
	writer.Close()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.cfg.URL+"/transcribe", &buf)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("whisper request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("whisper error (status %d): %s", resp.StatusCode, string(body))
	}

	var result whisperResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode whisper response: %w", err)
	}

	return toResult(&result, req.NoSpeechProbCeiling), nil
}

// --- internal Whisper API response types ---

type whisperResponse struct {
	Segments            []whisperSegment `json:"segments"`
	Language            string           `json:"language"`
	LanguageProbability float64          `json:"language_probability"`
}

type whisperSegment struct {
	Start        float64       `json:"start"`
	End          float64       `json:"end"`
	Text         string        `json:"text"`
	NoSpeechProb float64       `json:"no_speech_prob"`
	Words        []whisperWord `json:"words"`
}

type whisperWord struct {
	Word  string  `json:"word"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

func toResult(resp *whisperResponse, ceiling float64) *transcription.Result {
	segments := make([]transcription.Segment, len(resp.Segments))
	for i, seg := range resp.Segments {
		words := make([]transcription.Word, len(seg.Words))
		for j, w := range seg.Words {
			words[j] = transcription.Word{
				Text:    w.Word,
				StartMS: toMillis(w.Start),
				EndMS:   toMillis(w.End),
			}
		}
		segments[i] = transcription.Segment{
			Words:        words,
			NoSpeechProb: seg.NoSpeechProb,
		}
	}

	return &transcription.Result{
		Segments: transcription.FilterSegments(segments, ceiling),
		Language: transcription.LanguageDecision{
			Language:    resp.Language,
			Probability: resp.LanguageProbability,
		},
	}
}

// toMillis converts engine seconds to whole milliseconds.
func toMillis(seconds float64) int64 {
	return int64(math.Round(seconds * 1000))
}
