package qgram_test

import (
	"testing"

	"github.com/MrWong99/glyphoxa/internal/qgram"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"already normalized", "freiburg", "freiburg"},
		{"mixed case and punctuation", "Frei, burG !?!", "freiburg"},
		{"digits kept", "Area 51", "area51"},
		{"empty string", "", ""},
		{"only punctuation", "!?!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := qgram.Normalize(tt.in)
			if got != tt.want {
				t.Fatalf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{"Frei, burG !?!", "Área 51", "", "already-normal123"}
	for _, in := range inputs {
		once := qgram.Normalize(in)
		twice := qgram.Normalize(once)
		if once != twice {
			t.Fatalf("Normalize not idempotent for %q: once=%q twice=%q", in, once, twice)
		}
	}
}
