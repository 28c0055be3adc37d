package session

import "github.com/veslo-ai/scribe/transcription"

// Reconcile maps chunk-relative word spans onto the stream's absolute
// timeline. chunkLengthMS is the session's current chunk length,
// streamOffsetMS and chunkStartNo come from the owning audio message.
//
// For each word the chunk index is derived from the word's end time
// within the message's own clock. A word is flagged as an edge word when
// the chunk boundary instant falls inside its span, inclusive on both
// ends: the client uses the flag to de-duplicate words split across
// adjacent chunks. Words are emitted in engine order, no re-sorting.
func Reconcile(words []transcription.Word, chunkLengthMS, streamOffsetMS, chunkStartNo int64) []EmittedWord {
	out := make([]EmittedWord, 0, len(words))
	for _, w := range words {
		chunkNumber := w.EndMS / chunkLengthMS
		boundary := chunkNumber * chunkLengthMS
		out = append(out, EmittedWord{
			Word:      w.Text,
			Timestamp: [2]int64{w.StartMS + streamOffsetMS, w.EndMS + streamOffsetMS},
			IsEdge:    boundary >= w.StartMS && boundary <= w.EndMS,
			ChunkNum:  chunkStartNo + chunkNumber,
		})
	}
	return out
}
