// Package entitylookup provides a built-in MCP tool that exposes the
// q-gram/PED approximate prefix search engine ([searchsvc.Service]) to NPC
// agents, so a partially- or mis-transcribed name spoken at the table can
// still be resolved to the correct game entity.
//
// One tool is exported via [NewTools]:
//   - "entity_lookup" — approximate prefix search over the campaign's
//     entity roster, with an optional phonetic fallback suggestion.
//
// The handler is safe for concurrent use.
package entitylookup

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/MrWong99/glyphoxa/internal/mcp/tools"
	"github.com/MrWong99/glyphoxa/internal/qgram"
	"github.com/MrWong99/glyphoxa/internal/searchsvc"
	"github.com/MrWong99/glyphoxa/pkg/provider/llm"
)

// defaultDelta is used when args.Delta is not supplied (≤ 0).
const defaultDelta = 1

// entityLookupArgs is the JSON-decoded input for the "entity_lookup" tool.
type entityLookupArgs struct {
	// Prefix is the (possibly truncated or mis-transcribed) entity name
	// prefix to resolve.
	Prefix string `json:"prefix"`

	// Delta is the maximum prefix edit distance tolerated. Defaults to 1
	// when omitted or ≤ 0.
	Delta int `json:"delta,omitempty"`
}

// entityLookupResult is the JSON-encoded response for the "entity_lookup"
// tool.
type entityLookupResult struct {
	Matches    []matchView `json:"matches"`
	Suggestion *suggestion `json:"suggestion,omitempty"`
}

// matchView flattens a [qgram.Match] with its resolved entity fields for a
// self-contained tool response — the caller should not need a second lookup
// to learn the display name behind an ent_id.
type matchView struct {
	DisplayName string `json:"display_name"`
	PED         int    `json:"ped"`
	Score       int    `json:"score"`
}

type suggestion struct {
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
}

// makeEntityLookupHandler returns a handler for the "entity_lookup" tool
// that delegates to svc.LookupDelta.
func makeEntityLookupHandler(svc *searchsvc.Service) func(context.Context, string) (string, error) {
	return func(ctx context.Context, args string) (string, error) {
		var a entityLookupArgs
		if err := json.Unmarshal([]byte(args), &a); err != nil {
			return "", fmt.Errorf("entity lookup: failed to parse arguments: %w", err)
		}
		if a.Prefix == "" {
			return "", fmt.Errorf("entity lookup: prefix must not be empty")
		}

		delta := a.Delta
		if delta <= 0 {
			delta = defaultDelta
		}

		normalized := qgram.Normalize(a.Prefix)
		res, err := svc.LookupDelta(ctx, normalized, delta)
		if err != nil {
			return "", fmt.Errorf("entity lookup: %w", err)
		}

		out := entityLookupResult{Matches: make([]matchView, 0, len(res.Matches))}
		for _, m := range res.Matches {
			displayName, score, _, _ := resolveEntity(svc, m.EntID)
			out.Matches = append(out.Matches, matchView{
				DisplayName: displayName,
				PED:         m.PED,
				Score:       score,
			})
		}
		if res.Suggestion != nil {
			out.Suggestion = &suggestion{Name: res.Suggestion.Name, Confidence: res.Suggestion.Confidence}
		}

		encoded, err := json.Marshal(out)
		if err != nil {
			return "", fmt.Errorf("entity lookup: failed to encode result: %w", err)
		}
		return string(encoded), nil
	}
}

// resolveEntity is a small seam so the handler doesn't reach into the
// service's backing index directly; it mirrors [searchsvc.Service]'s own
// read-only entity accessor.
func resolveEntity(svc *searchsvc.Service, entID int) (displayName string, score int, description string, extra []string) {
	return svc.Entity(entID)
}

// NewTools constructs the entity_lookup tool, wired to the provided entity
// search service.
func NewTools(svc *searchsvc.Service) []tools.Tool {
	return []tools.Tool{
		{
			Definition: llm.ToolDefinition{
				Name:        "entity_lookup",
				Description: "Resolve a partial or possibly mis-transcribed entity name to the closest matching entities in the campaign roster, using approximate prefix search. Returns all entities within the edit-distance budget, ranked by closeness then by entity score. When nothing matches, may include a phonetic best-guess suggestion.",
				Parameters: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"prefix": map[string]any{
							"type":        "string",
							"description": "The entity name prefix to resolve, as heard or typed (case and punctuation are normalized automatically).",
						},
						"delta": map[string]any{
							"type":        "integer",
							"description": "Maximum prefix edit distance to tolerate. Defaults to 1 when omitted or 0.",
							"minimum":     0,
							"maximum":     4,
						},
					},
					"required": []string{"prefix"},
				},
				EstimatedDurationMs: 20,
				MaxDurationMs:       150,
				Idempotent:          true,
				CacheableSeconds:    10,
			},
			Handler:     makeEntityLookupHandler(svc),
			DeclaredP50: 20,
			DeclaredMax: 150,
		},
	}
}
