// Package searchsvc wraps a [qgram.Index] with the concerns a live caller
// needs that the index itself deliberately does not provide: concurrent
// batch lookups, an optional phonetic fallback for queries the index
// returns nothing for, and metrics/logging around every query.
//
// A Service is built once from a fully-populated [qgram.Index] and is
// read-only and safe for concurrent use afterward — the same contract the
// underlying Index already guarantees.
package searchsvc

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/MrWong99/glyphoxa/internal/health"
	"github.com/MrWong99/glyphoxa/internal/observe"
	"github.com/MrWong99/glyphoxa/internal/qgram"
	"github.com/MrWong99/glyphoxa/internal/transcript/phonetic"
)

// PhoneticFallback resolves a query that the q-gram index matched nothing
// for into a best-effort suggestion. [*phonetic.Matcher] satisfies this via
// its Suggest method.
type PhoneticFallback interface {
	Suggest(word string, candidates []string) (phonetic.Suggestion, bool)
}

// Result is the outcome of one [Service.Lookup] call.
type Result struct {
	// Query is the original query string, echoed back for convenience when
	// results are gathered from [Service.LookupBatch].
	Query string

	// Matches are the ranked q-gram matches, empty when none were found.
	Matches []qgram.Match

	// Suggestion is set only when Matches is empty and the phonetic fallback
	// (if configured) found a candidate.
	Suggestion *phonetic.Suggestion

	Stats qgram.Stats
}

// Option configures a [Service].
type Option func(*Service)

// WithPhoneticFallback enables a best-effort phonetic suggestion for queries
// that the q-gram index returns zero matches for. fallback is consulted with
// the display names of every entity in the index as candidates.
func WithPhoneticFallback(fallback PhoneticFallback) Option {
	return func(s *Service) { s.fallback = fallback }
}

// WithMetrics attaches an [observe.Metrics] instance that records one
// RecordSearchQuery call per [Service.Lookup]. Default: [observe.DefaultMetrics].
func WithMetrics(m *observe.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithLogger overrides the logger used for query-level diagnostics. Default:
// [slog.Default].
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithDelta sets the default edit-distance budget used by [Service.Lookup]
// when the caller does not specify one explicitly via [Service.LookupDelta].
// Default: 1.
func WithDelta(delta int) Option {
	return func(s *Service) { s.defaultDelta = delta }
}

// Service serves entity-lookup queries against an in-memory [qgram.Index].
type Service struct {
	index        *qgram.Index
	fallback     PhoneticFallback
	metrics      *observe.Metrics
	logger       *slog.Logger
	defaultDelta int

	candidateNames []string
}

// New returns a [Service] backed by the already-built index. idx must not be
// mutated further — [qgram.Index.Build] must have already completed.
func New(idx *qgram.Index, opts ...Option) *Service {
	s := &Service{
		index:        idx,
		metrics:      observe.DefaultMetrics(),
		logger:       slog.Default(),
		defaultDelta: 1,
	}
	for _, o := range opts {
		o(s)
	}
	s.candidateNames = make([]string, 0, idx.NumEntities())
	for entID := 1; entID <= idx.NumEntities(); entID++ {
		name, _, _, _ := idx.Entity(entID)
		s.candidateNames = append(s.candidateNames, name)
	}
	return s
}

// Lookup runs a single prefix query using the service's default edit-distance
// budget. See [Service.LookupDelta] for the full contract.
func (s *Service) Lookup(ctx context.Context, query string) (Result, error) {
	return s.LookupDelta(ctx, query, s.defaultDelta)
}

// LookupDelta runs a single prefix query against the index with an explicit
// edit-distance budget delta, records metrics, and — when the index matches
// nothing — consults the phonetic fallback if one is configured.
func (s *Service) LookupDelta(ctx context.Context, query string, delta int) (Result, error) {
	start := time.Now()

	mr, err := s.index.FindMatches(query, delta)
	if err != nil {
		s.metrics.RecordSearchQuery(ctx, "error", 0, time.Since(start).Seconds())
		return Result{}, fmt.Errorf("searchsvc: lookup %q: %w", query, err)
	}

	res := Result{Query: query, Matches: qgram.Rank(mr.Matches), Stats: mr.Stats}
	status := "matched"
	if len(mr.Matches) == 0 {
		status = "empty"
		if s.fallback != nil {
			if sugg, ok := s.fallback.Suggest(query, s.candidateNames); ok {
				res.Suggestion = &sugg
				status = "suggested"
			}
		}
	}

	s.metrics.RecordSearchQuery(ctx, status, int64(mr.Stats.PEDCalcs), time.Since(start).Seconds())
	s.logger.DebugContext(ctx, "entity lookup",
		"query", query, "delta", delta, "status", status, "matches", len(mr.Matches))

	return res, nil
}

// LookupBatch runs LookupDelta for every query concurrently, using the
// service's default edit-distance budget for all of them, and returns the
// results in the same order as queries. If any single lookup errors, the
// whole batch is aborted and that error is returned.
func (s *Service) LookupBatch(ctx context.Context, queries []string) ([]Result, error) {
	results := make([]Result, len(queries))

	eg, egCtx := errgroup.WithContext(ctx)
	for i, q := range queries {
		i, q := i, q
		eg.Go(func() error {
			r, err := s.Lookup(egCtx, q)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("searchsvc: lookup batch: %w", err)
	}
	return results, nil
}

// NumEntities returns the number of entities backing this service.
func (s *Service) NumEntities() int { return s.index.NumEntities() }

// NumNames returns the number of indexed name surface forms backing this
// service.
func (s *Service) NumNames() int { return s.index.NumNames() }

// Entity returns the display name, score, description, and extra fields for
// the 1-based ent_id, as reported by a prior [Service.Lookup]. Panics if
// entID is out of range.
func (s *Service) Entity(entID int) (displayName string, score int, description string, extra []string) {
	return s.index.Entity(entID)
}

// HealthCheck returns a [health.Checker] that fails when the backing index
// holds no entities — a sign the search engine was never built, or was built
// from an empty source.
func (s *Service) HealthCheck() health.Checker {
	return health.Checker{
		Name: "entity_search_index",
		Check: func(_ context.Context) error {
			if s.index.NumEntities() == 0 {
				return fmt.Errorf("entity search index is empty")
			}
			return nil
		},
	}
}
