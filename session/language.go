package session

import "github.com/veslo-ai/scribe/transcription"

// LockDecision is the outcome of evaluating one engine result while the
// session language is still auto.
type LockDecision struct {
	Lock     bool
	Language string
}

// EvaluateLock decides whether an engine result qualifies to lock the
// session language. The lock fires when detection confidence clears the
// session threshold and the engine retained at least one word; the
// message that fires it is consumed entirely by the lock, its words are
// never emitted. Anything below threshold produces no output at all and
// the session keeps listening on later messages. Once locked the
// language never reverts.
func EvaluateLock(settings Settings, result *transcription.Result) LockDecision {
	if !settings.AutoDetect() {
		return LockDecision{}
	}
	if result.Language.Probability >= settings.LanguageProbabilityThreshold && result.HasWords() {
		return LockDecision{Lock: true, Language: result.Language.Language}
	}
	return LockDecision{}
}
