package transcription

import "testing"

func TestFilterSegments_DropsAboveCeiling(t *testing.T) {
	segments := []Segment{
		{NoSpeechProb: 0.1, Words: []Word{{Text: "hello"}}},
		{NoSpeechProb: 0.8, Words: []Word{{Text: "noise"}}},
		{NoSpeechProb: 0.5, Words: []Word{{Text: "world"}}},
	}

	retained := FilterSegments(segments, 0.5)
	if len(retained) != 2 {
		t.Fatalf("expected 2 retained segments, got %d", len(retained))
	}
	if retained[0].Words[0].Text != "hello" || retained[1].Words[0].Text != "world" {
		t.Errorf("unexpected retained segments: %v", retained)
	}
}

func TestFilterSegments_CeilingIsInclusive(t *testing.T) {
	segments := []Segment{{NoSpeechProb: 0.5}}
	if got := FilterSegments(segments, 0.5); len(got) != 1 {
		t.Error("segment with no_speech_prob equal to the ceiling should be retained")
	}
}

func TestFilterSegments_ZeroCeilingUsesDefault(t *testing.T) {
	segments := []Segment{
		{NoSpeechProb: 0.4},
		{NoSpeechProb: 0.6},
	}
	retained := FilterSegments(segments, 0)
	if len(retained) != 1 {
		t.Fatalf("expected default ceiling %v to retain 1 segment, got %d",
			DefaultNoSpeechProbCeiling, len(retained))
	}
}

func TestResult_Words_FlattensInOrder(t *testing.T) {
	r := Result{Segments: []Segment{
		{Words: []Word{{Text: "a", StartMS: 0, EndMS: 100}, {Text: "b", StartMS: 100, EndMS: 200}}},
		{Words: []Word{{Text: "c", StartMS: 200, EndMS: 300}}},
	}}

	words := r.Words()
	if len(words) != 3 {
		t.Fatalf("expected 3 words, got %d", len(words))
	}
	for i, want := range []string{"a", "b", "c"} {
		if words[i].Text != want {
			t.Errorf("word %d: expected %q, got %q", i, want, words[i].Text)
		}
	}
}

func TestResult_HasWords(t *testing.T) {
	empty := Result{Segments: []Segment{{NoSpeechProb: 0.2}}}
	if empty.HasWords() {
		t.Error("expected HasWords to be false for wordless segments")
	}

	full := Result{Segments: []Segment{{Words: []Word{{Text: "hi"}}}}}
	if !full.HasWords() {
		t.Error("expected HasWords to be true")
	}
}

func TestRequest_ApplyDefaults(t *testing.T) {
	req := Request{}
	req.ApplyDefaults()
	if req.BeamSize != DefaultBeamSize {
		t.Errorf("expected beam size %d, got %d", DefaultBeamSize, req.BeamSize)
	}
	if req.NoSpeechProbCeiling != DefaultNoSpeechProbCeiling {
		t.Errorf("expected ceiling %v, got %v", DefaultNoSpeechProbCeiling, req.NoSpeechProbCeiling)
	}
	if req.DisableWordTimestamps || req.DisableVAD {
		t.Error("zero-value request must keep word timestamps and VAD on")
	}

	req = Request{BeamSize: 3, NoSpeechProbCeiling: 0.8}
	req.ApplyDefaults()
	if req.BeamSize != 3 || req.NoSpeechProbCeiling != 0.8 {
		t.Error("explicit options must not be overridden")
	}
}
