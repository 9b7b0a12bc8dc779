package qgram

import "errors"

// ErrInvalidQ is returned by [NewIndex] when q < 1.
var ErrInvalidQ = errors.New("qgram: q must be >= 1")

// ErrInvalidDelta is returned by [Index.FindMatches] when delta < 0.
var ErrInvalidDelta = errors.New("qgram: delta must be >= 0")

// EntityRecord is the shape an ingestion adaptor (see internal/ingest)
// produces for each line of its source. The core treats it as opaque data:
// it never parses Score or Extra itself.
type EntityRecord struct {
	// DisplayName is the entity's canonical surface-form name.
	DisplayName string

	// Score is an opaque popularity value used only to break ties during
	// ranking.
	Score int

	// Description is free-text for display by the caller; it is not part of
	// a [Match] and is read back through [Index.Entity].
	Description string

	// Synonyms are additional names for the same entity. Only indexed when
	// the index was built with UseSynonyms set.
	Synonyms []string

	// Extra preserves any adaptor-specific fields verbatim (e.g. extra TSV
	// columns) for downstream display. The core never reads it.
	Extra []string
}

// Config configures an [Index].
type Config struct {
	// Q is the q-gram length. Must be >= 1; 3 is typical.
	Q int

	// UseSynonyms controls whether synonym names are indexed in addition to
	// the display name.
	UseSynonyms bool
}

// entity is the index's internal record for one EntityRecord, keyed by its
// 1-based ent_id (entities[entID-1]).
type entity struct {
	displayName string
	score       int
	description string
	extra       []string
}

// nameRecord is the index's internal record for one name (display name or
// synonym), keyed by its 1-based name_id (names[nameID-1]).
type nameRecord struct {
	surface string
	norm    string
	entID   int
}

// Match is one result row from [Index.FindMatches]: the 4-tuple
// (EntID, PED, Score, NameID) spec.md resolves as authoritative.
type Match struct {
	// EntID is the 1-based id of the matched entity.
	EntID int

	// PED is the prefix edit distance between the query and the name that
	// produced this match (the minimum across the entity's names that
	// passed the filter).
	PED int

	// Score is the matched entity's opaque popularity value.
	Score int

	// NameID identifies which of the entity's names (display name or
	// synonym) yielded the minimum PED, so callers can display "via
	// '<name>'".
	NameID int
}

// MatchResult is the return value of [Index.FindMatches]: the ranked-ready
// match list plus the query's [Stats].
type MatchResult struct {
	Matches []Match
	Stats   Stats
}

// Stats are the per-query counters from spec.md §4.H, returned by value so
// concurrent queries never share mutable state.
type Stats struct {
	ListsMerged    int
	ElementsMerged int
	MergeDuration  int64 // nanoseconds

	PEDCalcs      int
	PEDCandidates int
	PEDDuration   int64 // nanoseconds
}
