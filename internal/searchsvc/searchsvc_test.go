package searchsvc_test

import (
	"context"
	"testing"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/MrWong99/glyphoxa/internal/observe"
	"github.com/MrWong99/glyphoxa/internal/qgram"
	"github.com/MrWong99/glyphoxa/internal/searchsvc"
	"github.com/MrWong99/glyphoxa/internal/transcript/phonetic"
)

func testMetrics(t *testing.T) *observe.Metrics {
	t.Helper()
	mp := sdkmetric.NewMeterProvider()
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })
	m, err := observe.NewMetrics(mp)
	if err != nil {
		t.Fatalf("NewMetrics: %v", err)
	}
	return m
}

func testIndex(t *testing.T) *qgram.Index {
	t.Helper()
	ix, err := qgram.NewIndex(qgram.Config{Q: 3})
	if err != nil {
		t.Fatalf("NewIndex: %v", err)
	}
	err = ix.BuildSlice([]qgram.EntityRecord{
		{DisplayName: "frei", Score: 3},
		{DisplayName: "brei", Score: 2},
		{DisplayName: "Eldrinax", Score: 9},
	})
	if err != nil {
		t.Fatalf("BuildSlice: %v", err)
	}
	return ix
}

func TestLookupRanksByPEDThenScore(t *testing.T) {
	t.Parallel()

	svc := searchsvc.New(testIndex(t), searchsvc.WithMetrics(testMetrics(t)))
	res, err := svc.Lookup(context.Background(), "frei")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if len(res.Matches) == 0 || res.Matches[0].PED != 0 {
		t.Fatalf("Matches = %v, want exact match first", res.Matches)
	}
}

func TestLookupEmptyWithoutFallback(t *testing.T) {
	t.Parallel()

	svc := searchsvc.New(testIndex(t), searchsvc.WithMetrics(testMetrics(t)))
	res, err := svc.Lookup(context.Background(), "zzzzz")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if len(res.Matches) != 0 {
		t.Fatalf("Matches = %v, want none", res.Matches)
	}
	if res.Suggestion != nil {
		t.Fatalf("Suggestion = %+v, want nil without a fallback configured", res.Suggestion)
	}
}

type stubFallback struct {
	name string
	conf float64
	ok   bool
}

func (f stubFallback) Suggest(word string, candidates []string) (phonetic.Suggestion, bool) {
	return phonetic.Suggestion{Name: f.name, Confidence: f.conf}, f.ok
}

func TestLookupFallsBackOnEmptyResult(t *testing.T) {
	t.Parallel()

	fb := stubFallback{name: "Eldrinax", conf: 0.9, ok: true}
	svc := searchsvc.New(testIndex(t), searchsvc.WithMetrics(testMetrics(t)), searchsvc.WithPhoneticFallback(fb))

	res, err := svc.Lookup(context.Background(), "zzzzz")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if len(res.Matches) != 0 {
		t.Fatalf("Matches = %v, want none", res.Matches)
	}
	if res.Suggestion == nil || res.Suggestion.Name != "Eldrinax" {
		t.Fatalf("Suggestion = %+v, want Eldrinax", res.Suggestion)
	}
}

func TestLookupBatchPreservesOrder(t *testing.T) {
	t.Parallel()

	svc := searchsvc.New(testIndex(t), searchsvc.WithMetrics(testMetrics(t)))
	queries := []string{"frei", "brei", "eldrinax"}
	results, err := svc.LookupBatch(context.Background(), queries)
	if err != nil {
		t.Fatalf("LookupBatch: %v", err)
	}
	if len(results) != len(queries) {
		t.Fatalf("got %d results, want %d", len(results), len(queries))
	}
	for i, q := range queries {
		if results[i].Query != q {
			t.Fatalf("results[%d].Query = %q, want %q", i, results[i].Query, q)
		}
	}
}

func TestHealthCheckFailsOnEmptyIndex(t *testing.T) {
	t.Parallel()

	ix, err := qgram.NewIndex(qgram.Config{Q: 3})
	if err != nil {
		t.Fatalf("NewIndex: %v", err)
	}
	svc := searchsvc.New(ix, searchsvc.WithMetrics(testMetrics(t)))
	if err := svc.HealthCheck().Check(context.Background()); err == nil {
		t.Fatal("expected HealthCheck to fail for an empty index")
	}
}

func TestHealthCheckPassesWithEntities(t *testing.T) {
	t.Parallel()

	svc := searchsvc.New(testIndex(t), searchsvc.WithMetrics(testMetrics(t)))
	if err := svc.HealthCheck().Check(context.Background()); err != nil {
		t.Fatalf("HealthCheck: %v", err)
	}
}

func TestNumEntitiesAndNames(t *testing.T) {
	t.Parallel()

	svc := searchsvc.New(testIndex(t), searchsvc.WithMetrics(testMetrics(t)))
	if svc.NumEntities() != 3 {
		t.Fatalf("NumEntities = %d, want 3", svc.NumEntities())
	}
	if svc.NumNames() != 3 {
		t.Fatalf("NumNames = %d, want 3", svc.NumNames())
	}
}
