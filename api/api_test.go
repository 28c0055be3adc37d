package api

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/veslo-ai/scribe/audio"
	"github.com/veslo-ai/scribe/llm"
	"github.com/veslo-ai/scribe/prompts"
	"github.com/veslo-ai/scribe/resilience"
	"github.com/veslo-ai/scribe/session"
	"github.com/veslo-ai/scribe/transcription"
)

type stubEngine struct {
	result *transcription.Result
	err    error
	gotReq transcription.Request
}

func (e *stubEngine) Name() string                       { return "stub" }
func (e *stubEngine) IsAvailable(_ context.Context) bool { return true }

func (e *stubEngine) Transcribe(_ context.Context, req transcription.Request) (*transcription.Result, error) {
	e.gotReq = req
	if e.err != nil {
		return nil, e.err
	}
	if e.result == nil {
		return &transcription.Result{}, nil
	}
	return e.result, nil
}

type stubLLM struct {
	content string
	chunks  []llm.StreamChunk
	err     error
	gotReq  llm.CompletionRequest
}

func (l *stubLLM) Name() string                       { return "stub-llm" }
func (l *stubLLM) IsAvailable(_ context.Context) bool { return true }

func (l *stubLLM) Complete(_ context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	l.gotReq = req
	if l.err != nil {
		return nil, l.err
	}
	return &llm.CompletionResponse{Content: l.content, Model: "stub"}, nil
}

func (l *stubLLM) Stream(_ context.Context, req llm.CompletionRequest) (<-chan llm.StreamChunk, error) {
	l.gotReq = req
	if l.err != nil {
		return nil, l.err
	}
	ch := make(chan llm.StreamChunk, len(l.chunks))
	for _, chunk := range l.chunks {
		ch <- chunk
	}
	close(ch)
	return ch, nil
}

func newTestRouter(t *testing.T, engine *stubEngine, gen *stubLLM) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()

	store := prompts.NewStore()
	if err := store.Load([]byte("prompts:\n  - name: norsk-summarization-prompt\n    text: \"Oppsummer: {content}\"\n")); err != nil {
		t.Fatalf("load prompts: %v", err)
	}

	h := NewHandler(Options{
		Engine:  engine,
		LLM:     gen,
		Prompts: store,
		Hub:     session.NewHub(nil),
	})
	h.Register(r)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestTranscribe_ReturnsWordList(t *testing.T) {
	engine := &stubEngine{result: &transcription.Result{
		Segments: []transcription.Segment{{Words: []transcription.Word{
			{Text: "hello", StartMS: 0, EndMS: 400},
			{Text: "world", StartMS: 450, EndMS: 900},
		}}},
	}}
	r := newTestRouter(t, engine, &stubLLM{})

	blob := base64.StdEncoding.EncodeToString([]byte("fake audio"))
	w := postJSON(t, r, "/api/v1/transcription", map[string]any{
		"blob":   blob,
		"config": map[string]any{"language": "en"},
	})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp struct {
		Data []TranscriptionWord `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Data) != 2 || resp.Data[0].Word != "hello" || resp.Data[1].Timestamp != [2]int64{450, 900} {
		t.Errorf("unexpected payload: %+v", resp.Data)
	}
	if engine.gotReq.Language != "en" {
		t.Errorf("engine language = %q, want en", engine.gotReq.Language)
	}
}

func TestTranscribe_MissingBlobRejected(t *testing.T) {
	r := newTestRouter(t, &stubEngine{}, &stubLLM{})

	w := postJSON(t, r, "/api/v1/transcription", map[string]any{"config": map[string]any{}})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestEngineCallError_BulkheadRejections(t *testing.T) {
	if got := engineCallError(resilience.ErrBulkheadFull); got.HTTPStatus != http.StatusServiceUnavailable {
		t.Errorf("full bulkhead status = %d, want 503", got.HTTPStatus)
	}
	if got := engineCallError(resilience.ErrBulkheadTimeout); got.HTTPStatus != http.StatusGatewayTimeout {
		t.Errorf("bulkhead timeout status = %d, want 504", got.HTTPStatus)
	}
	if got := engineCallError(stderrors.New("boom")); got.HTTPStatus != http.StatusBadGateway {
		t.Errorf("engine fault status = %d, want 502", got.HTTPStatus)
	}
}

func TestSummarize_CompilesPromptWithTranscription(t *testing.T) {
	gen := &stubLLM{content: "kort oppsummering"}
	r := newTestRouter(t, &stubEngine{}, gen)

	w := postJSON(t, r, "/api/v1/summarize", map[string]any{
		"transcription": "pasienten har hodepine",
	})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp struct {
		Data SummarizeResponse `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Data.Summary != "kort oppsummering" {
		t.Errorf("Summary = %q", resp.Data.Summary)
	}

	sent := gen.gotReq.Messages[0].Content
	if !strings.Contains(sent, "pasienten har hodepine") || !strings.HasPrefix(sent, "Oppsummer:") {
		t.Errorf("prompt not compiled from library template: %q", sent)
	}
}

func TestSummarize_StreamsChunks(t *testing.T) {
	gen := &stubLLM{chunks: []llm.StreamChunk{
		{Content: "En "},
		{Content: "kort oppsummering."},
		{Done: true},
	}}
	r := newTestRouter(t, &stubEngine{}, gen)

	w := postJSON(t, r, "/api/v1/summarize", map[string]any{
		"transcription": "pasienten har hodepine",
		"stream":        true,
	})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/x-ndjson" {
		t.Errorf("Content-Type = %q, want application/x-ndjson", ct)
	}

	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 chunk lines, got %d: %q", len(lines), w.Body.String())
	}
	var got SummaryChunk
	if err := json.Unmarshal([]byte(lines[1]), &got); err != nil {
		t.Fatalf("decode chunk line: %v", err)
	}
	if got.Content != "kort oppsummering." || got.Done {
		t.Errorf("chunk = %+v", got)
	}
	if err := json.Unmarshal([]byte(lines[2]), &got); err != nil {
		t.Fatalf("decode final line: %v", err)
	}
	if !got.Done {
		t.Error("final chunk must carry done=true")
	}

	if !strings.HasPrefix(gen.gotReq.Messages[0].Content, "Oppsummer:") {
		t.Errorf("streamed prompt not compiled from library template: %q", gen.gotReq.Messages[0].Content)
	}
}

func TestSummarize_EmptyTranscriptionRejected(t *testing.T) {
	r := newTestRouter(t, &stubEngine{}, &stubLLM{})

	w := postJSON(t, r, "/api/v1/summarize", map[string]any{"transcription": ""})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestSoapSubjective_FallsBackToDefaultPrompt(t *testing.T) {
	gen := &stubLLM{content: "subjektivt notat"}
	r := newTestRouter(t, &stubEngine{}, gen)

	w := postJSON(t, r, "/api/v1/soap/subjective", map[string]any{
		"transcription": "vondt i ryggen",
		"prompt_name":   "does-not-exist",
	})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp struct {
		Data SoapResponse `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Data.Note != "subjektivt notat" {
		t.Errorf("Note = %q", resp.Data.Note)
	}
	// Unknown prompt names resolve to the built-in default template.
	if !strings.Contains(gen.gotReq.Messages[0].Content, "vondt i ryggen") {
		t.Errorf("content missing from compiled default prompt: %q", gen.gotReq.Messages[0].Content)
	}
}

func wavBlob(t *testing.T) string {
	t.Helper()
	payload := []byte{0, 1, 0, 1}
	header := audio.WAVHeader{
		ChunkID:       [4]byte{'R', 'I', 'F', 'F'},
		ChunkSize:     36 + uint32(len(payload)),
		Format:        [4]byte{'W', 'A', 'V', 'E'},
		Subchunk1ID:   [4]byte{'f', 'm', 't', ' '},
		Subchunk1Size: 16,
		AudioFormat:   1,
		NumChannels:   1,
		SampleRate:    16000,
		ByteRate:      32000,
		BlockAlign:    2,
		BitsPerSample: 16,
		Subchunk2ID:   [4]byte{'d', 'a', 't', 'a'},
		Subchunk2Size: uint32(len(payload)),
	}
	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.LittleEndian, header); err != nil {
		t.Fatalf("write header: %v", err)
	}
	buf.Write(payload)
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestStream_WebsocketRoundTrip(t *testing.T) {
	engine := &stubEngine{result: &transcription.Result{
		Segments: []transcription.Segment{{Words: []transcription.Word{
			{Text: "hei", StartMS: 1000, EndMS: 1400},
		}}},
		Language: transcription.LanguageDecision{Language: "en", Probability: 0.99},
	}}
	r := newTestRouter(t, engine, &stubLLM{})

	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/transcription"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	frame := map[string]any{
		"type":           "audio",
		"data":           []string{wavBlob(t)},
		"timestamp":      5000,
		"chunk_start_no": 2,
	}
	if err := conn.WriteJSON(frame); err != nil {
		t.Fatalf("write frame: %v", err)
	}

	var out session.WordFrame
	if err := conn.ReadJSON(&out); err != nil {
		t.Fatalf("read frame: %v", err)
	}
	if out.Type != session.MessageTypeWord {
		t.Fatalf("frame type = %q, want word", out.Type)
	}
	want := session.EmittedWord{Word: "hei", Timestamp: [2]int64{6000, 6400}, IsEdge: true, ChunkNum: 4}
	if len(out.Data) != 1 || out.Data[0] != want {
		t.Errorf("got %+v, want [%+v]", out.Data, want)
	}
}
