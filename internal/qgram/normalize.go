// Package qgram implements approximate prefix search over a corpus of named
// entities using an inverted q-gram index and a bounded prefix edit distance
// (PED) verification pass.
//
// The index is build-once, read-only: [Index.Build] consumes a stream of
// entity records and populates the inverted lists and name/entity tables;
// [Index.FindMatches] then serves concurrent, allocation-local queries
// against that immutable structure. There is no incremental mutation, no
// on-disk persistence, and no sharding — see the package-level Non-goals in
// SPEC_FULL.md.
package qgram

import "strings"

// padRune is prepended (q-1 times) to a normalized name before q-gram
// extraction so that a prefix of any length is represented by at least one
// q-gram. It cannot appear in a normalized name because Normalize only ever
// emits ASCII letters and digits.
const padRune = '$'

// Normalize maps an arbitrary string to its canonical lowercase alphanumeric
// form: s is lowercased, then every rune that is not an ASCII letter or
// digit is dropped.
//
// Normalize is deterministic, total, and idempotent: Normalize(Normalize(s))
// == Normalize(s) for all s. It never fails.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= 'A' && r <= 'Z' {
			r += 'a' - 'A'
		}
		if isASCIIAlnum(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isASCIIAlnum(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z')
}
