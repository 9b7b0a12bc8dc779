package entitylookup_test

import (
	"context"
	"encoding/json"
	"testing"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/MrWong99/glyphoxa/internal/mcp/tools/entitylookup"
	"github.com/MrWong99/glyphoxa/internal/observe"
	"github.com/MrWong99/glyphoxa/internal/qgram"
	"github.com/MrWong99/glyphoxa/internal/searchsvc"
)

func testService(t *testing.T) *searchsvc.Service {
	t.Helper()
	ix, err := qgram.NewIndex(qgram.Config{Q: 3})
	if err != nil {
		t.Fatalf("NewIndex: %v", err)
	}
	if err := ix.BuildSlice([]qgram.EntityRecord{
		{DisplayName: "Grimjaw", Score: 10},
		{DisplayName: "Eldrinax", Score: 7},
	}); err != nil {
		t.Fatalf("BuildSlice: %v", err)
	}

	mp := sdkmetric.NewMeterProvider()
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })
	m, err := observe.NewMetrics(mp)
	if err != nil {
		t.Fatalf("NewMetrics: %v", err)
	}
	return searchsvc.New(ix, searchsvc.WithMetrics(m))
}

func TestEntityLookupTool(t *testing.T) {
	t.Parallel()

	svc := testService(t)
	toolset := entitylookup.NewTools(svc)
	if len(toolset) != 1 {
		t.Fatalf("NewTools returned %d tools, want 1", len(toolset))
	}
	tool := toolset[0]
	if tool.Definition.Name != "entity_lookup" {
		t.Fatalf("tool name = %q, want entity_lookup", tool.Definition.Name)
	}

	out, err := tool.Handler(context.Background(), `{"prefix":"Grimjaw","delta":0}`)
	if err != nil {
		t.Fatalf("Handler: %v", err)
	}

	var decoded struct {
		Matches []struct {
			DisplayName string `json:"display_name"`
			PED         int    `json:"ped"`
			Score       int    `json:"score"`
		} `json:"matches"`
	}
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("unmarshal result: %v", err)
	}
	if len(decoded.Matches) != 1 || decoded.Matches[0].DisplayName != "Grimjaw" {
		t.Fatalf("Matches = %+v, want a single Grimjaw match", decoded.Matches)
	}
}

func TestEntityLookupToolRejectsEmptyPrefix(t *testing.T) {
	t.Parallel()

	svc := testService(t)
	tool := entitylookup.NewTools(svc)[0]
	if _, err := tool.Handler(context.Background(), `{"prefix":""}`); err == nil {
		t.Fatal("expected an error for an empty prefix")
	}
}

func TestEntityLookupToolMalformedArgs(t *testing.T) {
	t.Parallel()

	svc := testService(t)
	tool := entitylookup.NewTools(svc)[0]
	if _, err := tool.Handler(context.Background(), `not json`); err == nil {
		t.Fatal("expected an error for malformed JSON arguments")
	}
}
