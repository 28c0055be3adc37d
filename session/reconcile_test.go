package session

import (
	"reflect"
	"testing"

	"github.com/veslo-ai/scribe/transcription"
)

func TestReconcile_EdgeWordAbsoluteCoordinates(t *testing.T) {
	words := []transcription.Word{{Text: "hei", StartMS: 1000, EndMS: 1400}}

	got := Reconcile(words, 500, 5000, 2)
	if len(got) != 1 {
		t.Fatalf("expected 1 word, got %d", len(got))
	}

	want := EmittedWord{
		Word:      "hei",
		Timestamp: [2]int64{6000, 6400},
		IsEdge:    true,
		ChunkNum:  4,
	}
	if got[0] != want {
		t.Errorf("got %+v, want %+v", got[0], want)
	}
}

func TestReconcile_NonEdgeWord(t *testing.T) {
	words := []transcription.Word{{Text: "ja", StartMS: 100, EndMS: 300}}

	got := Reconcile(words, 500, 0, 0)
	if got[0].IsEdge {
		t.Error("word inside a single chunk flagged as edge")
	}
	if got[0].ChunkNum != 0 {
		t.Errorf("ChunkNum = %d, want 0", got[0].ChunkNum)
	}
}

func TestReconcile_BoundaryTouchIsEdge(t *testing.T) {
	// End exactly on the boundary instant counts as inclusive.
	words := []transcription.Word{{Text: "ok", StartMS: 400, EndMS: 500}}

	got := Reconcile(words, 500, 0, 0)
	if !got[0].IsEdge {
		t.Error("word ending exactly on a chunk boundary should be edge")
	}
	if got[0].ChunkNum != 1 {
		t.Errorf("ChunkNum = %d, want 1 (derived from end time)", got[0].ChunkNum)
	}
}

func TestReconcile_PreservesEngineOrder(t *testing.T) {
	words := []transcription.Word{
		{Text: "a", StartMS: 0, EndMS: 100},
		{Text: "b", StartMS: 120, EndMS: 250},
		{Text: "c", StartMS: 260, EndMS: 400},
	}

	got := Reconcile(words, 500, 1000, 3)
	var texts []string
	for _, w := range got {
		texts = append(texts, w.Word)
	}
	if !reflect.DeepEqual(texts, []string{"a", "b", "c"}) {
		t.Errorf("order changed: %v", texts)
	}
}

func TestReconcile_EmptyInput(t *testing.T) {
	got := Reconcile(nil, 500, 0, 0)
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", got)
	}
}
