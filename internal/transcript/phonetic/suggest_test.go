package phonetic_test

import (
	"testing"

	"github.com/MrWong99/glyphoxa/internal/transcript/phonetic"
)

func TestMatcher_SuggestWrapsMatch(t *testing.T) {
	t.Parallel()

	m := phonetic.New()
	entities := []string{"Eldrinax", "Grimjaw"}

	sugg, ok := m.Suggest("elder nacks", entities)
	if !ok {
		t.Fatal("expected a suggestion")
	}
	if sugg.Name != "Eldrinax" {
		t.Errorf("Name = %q, want Eldrinax", sugg.Name)
	}
	if sugg.Confidence <= 0 {
		t.Errorf("Confidence = %v, want > 0", sugg.Confidence)
	}
}

func TestMatcher_SuggestNoMatch(t *testing.T) {
	t.Parallel()

	m := phonetic.New()
	sugg, ok := m.Suggest("zzzzzqqqq", []string{"Eldrinax"})
	if ok {
		t.Fatalf("expected no suggestion, got %+v", sugg)
	}
	if sugg != (phonetic.Suggestion{}) {
		t.Errorf("expected zero Suggestion on no-match, got %+v", sugg)
	}
}
