package whisper

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/veslo-ai/scribe/transcription"
)

func newSidecar(t *testing.T, resp whisperResponse, capture *map[string]string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/health":
			w.WriteHeader(http.StatusOK)
		case "/transcribe":
			if err := r.ParseMultipartForm(32 << 20); err != nil {
				t.Errorf("parse multipart: %v", err)
			}
			if capture != nil {
				fields := make(map[string]string)
				for k, vs := range r.MultipartForm.Value {
					if len(vs) > 0 {
						fields[k] = vs[0]
					}
				}
				*capture = fields
			}
			_ = json.NewEncoder(w).Encode(resp)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestProvider_Transcribe_ConvertsToMillis(t *testing.T) {
	srv := newSidecar(t, whisperResponse{
		Segments: []whisperSegment{{
			Start:        0,
			End:          1.4,
			NoSpeechProb: 0.1,
			Words: []whisperWord{
				{Word: "hello", Start: 0.12, End: 0.48},
				{Word: "world", Start: 0.5, End: 1.4},
			},
		}},
		Language:            "en",
		LanguageProbability: 0.97,
	}, nil)
	defer srv.Close()

	p := NewProvider(Config{URL: srv.URL})
	result, err := p.Transcribe(context.Background(), transcription.Request{
		Audio:    []byte("fake-wav"),
		Language: "en",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	words := result.Words()
	if len(words) != 2 {
		t.Fatalf("expected 2 words, got %d", len(words))
	}
	if words[0].StartMS != 120 || words[0].EndMS != 480 {
		t.Errorf("expected [120,480], got [%d,%d]", words[0].StartMS, words[0].EndMS)
	}
	if result.Language.Language != "en" || result.Language.Probability != 0.97 {
		t.Errorf("unexpected language decision: %+v", result.Language)
	}
}

func TestProvider_Transcribe_OmitsLanguageWhenAuto(t *testing.T) {
	var fields map[string]string
	srv := newSidecar(t, whisperResponse{Language: "no", LanguageProbability: 0.4}, &fields)
	defer srv.Close()

	p := NewProvider(Config{URL: srv.URL})
	_, err := p.Transcribe(context.Background(), transcription.Request{
		Audio:    []byte("fake-wav"),
		Language: transcription.LanguageAuto,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := fields["language"]; ok {
		t.Error("language field must be omitted when auto-detection is requested")
	}
	if fields["beam_size"] != "5" {
		t.Errorf("expected default beam_size 5, got %q", fields["beam_size"])
	}
}

func TestProvider_Transcribe_DefaultRequestKeepsWordTimestampsAndVAD(t *testing.T) {
	var fields map[string]string
	srv := newSidecar(t, whisperResponse{Language: "en"}, &fields)
	defer srv.Close()

	p := NewProvider(Config{URL: srv.URL})
	// The minimal request every caller builds: audio plus language.
	_, err := p.Transcribe(context.Background(), transcription.Request{
		Audio:    []byte("fake-wav"),
		Language: "en",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if fields["word_timestamps"] != "true" {
		t.Errorf("word_timestamps = %q, want true", fields["word_timestamps"])
	}
	if fields["vad_filter"] != "true" {
		t.Errorf("vad_filter = %q, want true", fields["vad_filter"])
	}
}

func TestProvider_Transcribe_DisableFlagsTurnOptionsOff(t *testing.T) {
	var fields map[string]string
	srv := newSidecar(t, whisperResponse{Language: "en"}, &fields)
	defer srv.Close()

	p := NewProvider(Config{URL: srv.URL})
	_, err := p.Transcribe(context.Background(), transcription.Request{
		Audio:                 []byte("fake-wav"),
		Language:              "en",
		DisableWordTimestamps: true,
		DisableVAD:            true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if fields["word_timestamps"] != "false" {
		t.Errorf("word_timestamps = %q, want false", fields["word_timestamps"])
	}
	if fields["vad_filter"] != "false" {
		t.Errorf("vad_filter = %q, want false", fields["vad_filter"])
	}
}

func TestProvider_Transcribe_SendsExplicitLanguage(t *testing.T) {
	var fields map[string]string
	srv := newSidecar(t, whisperResponse{Language: "en"}, &fields)
	defer srv.Close()

	p := NewProvider(Config{URL: srv.URL})
	_, err := p.Transcribe(context.Background(), transcription.Request{
		Audio:    []byte("fake-wav"),
		Language: "no",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fields["language"] != "no" {
		t.Errorf("expected language=no, got %q", fields["language"])
	}
}

func TestProvider_Transcribe_FiltersNoSpeechSegments(t *testing.T) {
	srv := newSidecar(t, whisperResponse{
		Segments: []whisperSegment{
			{NoSpeechProb: 0.9, Words: []whisperWord{{Word: "static"}}},
			{NoSpeechProb: 0.2, Words: []whisperWord{{Word: "speech"}}},
		},
	}, nil)
	defer srv.Close()

	p := NewProvider(Config{URL: srv.URL})
	result, err := p.Transcribe(context.Background(), transcription.Request{Audio: []byte("w")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Segments) != 1 {
		t.Fatalf("expected 1 retained segment, got %d", len(result.Segments))
	}
	if result.Segments[0].Words[0].Text != "speech" {
		t.Errorf("wrong segment retained: %+v", result.Segments[0])
	}
}

func TestProvider_Transcribe_SidecarError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	p := NewProvider(Config{URL: srv.URL})
	if _, err := p.Transcribe(context.Background(), transcription.Request{Audio: []byte("w")}); err == nil {
		t.Error("expected error from failing sidecar")
	}
}

func TestProvider_IsAvailable(t *testing.T) {
	srv := newSidecar(t, whisperResponse{}, nil)
	p := NewProvider(Config{URL: srv.URL})
	if !p.IsAvailable(context.Background()) {
		t.Error("expected sidecar to be available")
	}
	srv.Close()
	if p.IsAvailable(context.Background()) {
		t.Error("expected closed sidecar to be unavailable")
	}
}

func TestFactory_BuildsFromMap(t *testing.T) {
	factory := Factory()
	p, err := factory(map[string]any{"url": "http://example:9000", "model": "base"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name() != ProviderName {
		t.Errorf("expected name %q, got %q", ProviderName, p.Name())
	}
}
