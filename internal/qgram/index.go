package qgram

import (
	"context"
	"fmt"
	"iter"
)

// Index is a q-gram inverted index over a corpus of entities and their
// names. An Index is built once via [Index.Build] and is read-only and safe
// for concurrent [Index.FindMatches] calls afterward; see SPEC_FULL.md §5.
//
// The zero value is not ready to use — construct with [NewIndex].
type Index struct {
	q           int
	useSynonyms bool

	entities []entity
	names    []nameRecord

	invertedLists map[string]PostingList
}

// NewIndex returns an empty [Index] ready for [Index.Build].
func NewIndex(cfg Config) (*Index, error) {
	if cfg.Q < 1 {
		return nil, ErrInvalidQ
	}
	return &Index{
		q:             cfg.Q,
		useSynonyms:   cfg.UseSynonyms,
		invertedLists: make(map[string]PostingList),
	}, nil
}

// Q returns the index's configured q-gram length.
func (ix *Index) Q() int { return ix.q }

// NumEntities returns the number of entities currently in the index (E).
func (ix *Index) NumEntities() int { return len(ix.entities) }

// NumNames returns the number of names currently in the index (N).
func (ix *Index) NumNames() int { return len(ix.names) }

// Build consumes records in order, assigning 1-based ent_id and name_id
// values as spec.md §4.D describes. Build is not safe to call concurrently
// with itself or with [Index.FindMatches], and must be called exactly once
// per Index before any query is served.
//
// Build stops and returns the first error yielded by records, or ctx's
// error if ctx is cancelled between records. Malformed records are the
// adaptor's concern: Build never rejects a record on its own.
func (ix *Index) Build(ctx context.Context, records iter.Seq2[EntityRecord, error]) error {
	for rec, err := range records {
		if err != nil {
			return fmt.Errorf("qgram: build: %w", err)
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("qgram: build: %w", ctxErr)
		}
		ix.addEntity(rec)
	}
	return nil
}

// BuildSlice is a convenience wrapper around [Index.Build] for callers that
// already hold the full record set in memory (tests, small corpora).
func (ix *Index) BuildSlice(records []EntityRecord) error {
	return ix.Build(context.Background(), func(yield func(EntityRecord, error) bool) {
		for _, r := range records {
			if !yield(r, nil) {
				return
			}
		}
	})
}

// addEntity assigns the next ent_id to rec, then assigns name_ids to its
// display name and (when enabled) its synonyms, in order.
func (ix *Index) addEntity(rec EntityRecord) {
	entID := len(ix.entities) + 1
	ix.entities = append(ix.entities, entity{
		displayName: rec.DisplayName,
		score:       rec.Score,
		description: rec.Description,
		extra:       rec.Extra,
	})

	names := []string{rec.DisplayName}
	if ix.useSynonyms {
		names = append(names, rec.Synonyms...)
	}

	for _, n := range names {
		ix.addName(entID, n)
	}
}

// addName assigns the next name_id to surface, normalizes it, extracts its
// q-gram sequence, and updates the inverted lists per the update rule in
// spec.md §4.D. It allocates a name_id even for an empty-after-normalization
// name, which contributes zero q-grams.
func (ix *Index) addName(entID int, surface string) {
	nameID := len(ix.names) + 1
	norm := Normalize(surface)
	ix.names = append(ix.names, nameRecord{surface: surface, norm: norm, entID: entID})

	for _, g := range QGrams(norm, ix.q) {
		list := ix.invertedLists[g]
		if n := len(list); n > 0 && list[n-1].NameID == nameID {
			list[n-1].Frequency++
		} else {
			list = append(list, Posting{NameID: nameID, Frequency: 1})
		}
		ix.invertedLists[g] = list
	}
}

// InvertedList returns a copy of the posting list for q-gram g, or nil if g
// was never seen during Build. Intended for tests and diagnostics; the
// query path uses the internal lookup directly to avoid the copy.
func (ix *Index) InvertedList(g string) PostingList {
	list, ok := ix.invertedLists[g]
	if !ok {
		return nil
	}
	out := make(PostingList, len(list))
	copy(out, list)
	return out
}

// Name returns the surface form and owning ent_id for the 1-based name id.
// Panics if nameID is out of range, the same way slice indexing would.
func (ix *Index) Name(nameID int) (surface string, entID int) {
	n := ix.names[nameID-1]
	return n.surface, n.entID
}

// Entity returns the display name, score, description, and extra fields for
// the 1-based ent_id. Panics if entID is out of range.
func (ix *Index) Entity(entID int) (displayName string, score int, description string, extra []string) {
	e := ix.entities[entID-1]
	return e.displayName, e.score, e.description, e.extra
}
