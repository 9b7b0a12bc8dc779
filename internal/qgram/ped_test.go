package qgram_test

import (
	"testing"

	"github.com/MrWong99/glyphoxa/internal/qgram"
)

func TestPED(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		x, y  string
		delta int
		want  int
	}{
		{"exact prefix", "frei", "freiburg", 0, 0},
		{"x equals y", "frei", "frei", 0, 0},
		{"one substitution within budget", "frei", "brei", 2, 1},
		{"one substitution exceeds budget", "frei", "brei", 0, 1}, // delta+1 sentinel
		{"x longer than y by two", "freibu", "frei", 2, 2},
		{"empty x matches empty prefix", "", "anything", 0, 0},
		{"empty y only matches empty x", "a", "", 0, 1},
		// x is a non-prefix substring of y: the leading "f" of y must still
		// be paid for, it is not a free starting point.
		{"non-prefix substring requires leading insertion", "rei", "frei", 5, 1},
		{"non-prefix substring exceeds tiny budget", "rei", "frei", 0, 1}, // delta+1 sentinel
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := qgram.PED(tt.x, tt.y, tt.delta)
			if tt.name == "one substitution exceeds budget" || tt.name == "non-prefix substring exceeds tiny budget" {
				if got <= tt.delta {
					t.Fatalf("PED(%q, %q, %d) = %d, want > %d", tt.x, tt.y, tt.delta, got, tt.delta)
				}
				return
			}
			if got != tt.want {
				t.Fatalf("PED(%q, %q, %d) = %d, want %d", tt.x, tt.y, tt.delta, got, tt.want)
			}
		})
	}
}

func TestPEDSentinelExceedsDelta(t *testing.T) {
	t.Parallel()

	// "completely different" should fail a tiny delta; PED only guarantees
	// a value > delta, not the exact distance.
	got := qgram.PED("zzzzzzzzzz", "aaaaaaaaaa", 1)
	if got <= 1 {
		t.Fatalf("PED = %d, want > 1", got)
	}
}

func TestPEDBandingDoesNotUnderestimate(t *testing.T) {
	t.Parallel()

	// "burg" only resembles the tail of "freiburg", not any prefix of it
	// (true prefix edit distance is 3); a banded early exit must not let that
	// collapse to a falsely small value at the tiny delta used for matching.
	got := qgram.PED("burg", "freiburg", 1)
	if got <= 1 {
		t.Fatalf("PED(%q, %q, 1) = %d, want > 1", "burg", "freiburg", got)
	}
}

func TestPEDAgreesWithBruteForceLevenshteinPrefix(t *testing.T) {
	t.Parallel()

	// Brute-force reference: minimum edit distance between x and any
	// prefix of y, computed with a full unbanded DP and a generous delta.
	bruteForce := func(x, y string) int {
		best := len(x)
		for j := 0; j <= len(y); j++ {
			d := levenshtein(x, y[:j])
			if d < best {
				best = d
			}
		}
		return best
	}

	words := []string{"frei", "brei", "freiburg", "", "a", "ab", "freibu", "abcdefgh", "rei", "burg"}
	for _, x := range words {
		for _, y := range words {
			want := bruteForce(x, y)
			got := qgram.PED(x, y, len(x)+len(y)) // delta large enough to never early-exit
			if got != want {
				t.Fatalf("PED(%q, %q, large) = %d, want %d (brute force)", x, y, got, want)
			}
		}
	}
}

func levenshtein(a, b string) int {
	n, m := len(a), len(b)
	prev := make([]int, m+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= n; i++ {
		cur := make([]int, m+1)
		cur[0] = i
		for j := 1; j <= m; j++ {
			cost := 0
			if a[i-1] != b[j-1] {
				cost = 1
			}
			del := prev[j] + 1
			ins := cur[j-1] + 1
			sub := prev[j-1] + cost
			best := del
			if ins < best {
				best = ins
			}
			if sub < best {
				best = sub
			}
			cur[j] = best
		}
		prev = cur
	}
	return prev[m]
}
