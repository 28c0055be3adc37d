// Package session implements the streaming transcription session: the
// per-connection protocol state machine, the language auto-detect lock,
// the timestamp reconciler that maps chunk-relative word spans onto the
// stream's absolute timeline, and the hub that tracks live sessions.
//
// A session owns its connection and its settings exclusively. Messages on
// one connection are processed strictly sequentially; distinct sessions
// run on independent goroutines and share nothing but the hub registry.
//
// Wire protocol, client to server:
//
//	{"type": "config", "data": {"language": "auto", "chunk_length_ms": 500}}
//	{"type": "audio", "data": ["<base64 wav>", ...], "timestamp": 5000, "chunk_start_no": 2}
//
// Server to client:
//
//	{"type": "language", "data": "en"}
//	{"type": "word", "data": [{"word": "hei", "timestamp": [6000, 6400], "is_edge": true, "chunk_num": 4}]}
//
// Any processing failure closes the session without notifying the client.
package session
