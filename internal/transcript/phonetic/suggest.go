package phonetic

// Suggestion is a single phonetic fallback candidate, as returned by
// [Matcher.Suggest].
type Suggestion struct {
	// Name is the candidate entity name.
	Name string

	// Confidence is the Jaro-Winkler score that produced the match.
	Confidence float64
}

// Suggest adapts [Matcher.Match] for callers that want a structured result
// rather than the (corrected, confidence, matched) tuple — used by the entity
// search service as a best-effort fallback when the q-gram index returns no
// candidates for a prefix (e.g. a mis-transcribed name).
//
// An empty candidates slice or blank word yields a zero Suggestion and false.
func (m *Matcher) Suggest(word string, candidates []string) (Suggestion, bool) {
	corrected, confidence, matched := m.Match(word, candidates)
	if !matched {
		return Suggestion{}, false
	}
	return Suggestion{Name: corrected, Confidence: confidence}, true
}
