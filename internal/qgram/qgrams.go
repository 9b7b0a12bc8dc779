package qgram

// QGrams returns the ordered sequence of length-q character windows over a
// left-padded copy of word. word must already be normalized (see
// [Normalize]); behavior is undefined otherwise.
//
// The padded form is (q-1) copies of padRune followed by word. QGrams emits
// exactly len(word) windows, including windows that are pure padding — this
// is what lets a short prefix still produce matchable q-grams for names that
// start the same way. QGrams panics if q < 1.
func QGrams(word string, q int) []string {
	if q < 1 {
		panic("qgram: q must be >= 1")
	}
	if len(word) == 0 {
		return nil
	}

	padded := make([]byte, q-1+len(word))
	for i := 0; i < q-1; i++ {
		padded[i] = padRune
	}
	copy(padded[q-1:], word)

	out := make([]string, len(word))
	for i := range word {
		out[i] = string(padded[i : i+q])
	}
	return out
}
