// Command entsearch builds an entity_lookup q-gram index from a configured
// source and resolves one or more name prefixes against it, printing ranked
// matches. It is a diagnostic and batch-lookup tool, not a server or a
// REPL: it builds the index once, answers the queries given on the command
// line, and exits.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/MrWong99/glyphoxa/internal/config"
	"github.com/MrWong99/glyphoxa/internal/ingest/postgres"
	"github.com/MrWong99/glyphoxa/internal/ingest/tsv"
	"github.com/MrWong99/glyphoxa/internal/qgram"
	"github.com/MrWong99/glyphoxa/internal/searchsvc"
	"github.com/MrWong99/glyphoxa/internal/transcript/phonetic"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "config.yaml", "path to the YAML configuration file")
	delta := flag.Int("delta", 0, "override search.delta for this run (0 keeps the configured value)")
	flag.Parse()

	queries := flag.Args()
	if len(queries) == 0 {
		fmt.Fprintln(os.Stderr, "entsearch: usage: entsearch [-config path] [-delta N] <prefix> [prefix ...]")
		return 2
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "entsearch: %v\n", err)
		return 1
	}
	if cfg.Search.Source == "" {
		fmt.Fprintln(os.Stderr, "entsearch: search.source is not configured")
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	svc, closeSvc, err := buildService(ctx, cfg)
	if err != nil {
		slog.Error("failed to build search service", "err", err)
		return 1
	}
	defer closeSvc()

	normalized := normalizeAll(queries)
	var results []searchsvc.Result
	if *delta > 0 {
		results = make([]searchsvc.Result, len(normalized))
		for i, q := range normalized {
			r, err := svc.LookupDelta(ctx, q, *delta)
			if err != nil {
				slog.Error("lookup failed", "query", queries[i], "err", err)
				return 1
			}
			results[i] = r
		}
	} else {
		results, err = svc.LookupBatch(ctx, normalized)
		if err != nil {
			slog.Error("lookup batch failed", "err", err)
			return 1
		}
	}

	return printResults(svc, results)
}

// buildService constructs the [searchsvc.Service] for the configured
// source, returning a close function that releases any resources it opened
// (database pools).
func buildService(ctx context.Context, cfg *config.Config) (*searchsvc.Service, func(), error) {
	ix, err := qgram.NewIndex(qgram.Config{
		Q:           cfg.Search.Q,
		UseSynonyms: cfg.Search.UseSynonyms,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("build index: %w", err)
	}

	noop := func() {}

	switch cfg.Search.Source {
	case "tsv":
		records, closeFile, err := tsv.LoadFile(cfg.Search.TSVPath, cfg.Search.UseSynonyms)
		if err != nil {
			return nil, nil, fmt.Errorf("load tsv source %q: %w", cfg.Search.TSVPath, err)
		}
		defer closeFile()
		if err := ix.Build(ctx, records); err != nil {
			return nil, nil, fmt.Errorf("build index from tsv: %w", err)
		}

	case "postgres":
		dsn := cfg.Search.PostgresDSN
		if dsn == "" {
			dsn = cfg.Memory.PostgresDSN
		}
		var opts []postgres.Option
		if cfg.Search.PostgresTable != "" {
			opts = append(opts, postgres.WithTable(cfg.Search.PostgresTable))
		}
		opts = append(opts, postgres.WithSynonyms(cfg.Search.UseSynonyms))

		src, err := postgres.NewSource(ctx, dsn, opts...)
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres source: %w", err)
		}
		records, err := src.Load(ctx)
		if err != nil {
			src.Close()
			return nil, nil, fmt.Errorf("load postgres source: %w", err)
		}
		if err := ix.BuildSlice(records); err != nil {
			src.Close()
			return nil, nil, fmt.Errorf("build index from postgres: %w", err)
		}
		noop = src.Close

	default:
		return nil, nil, fmt.Errorf("unsupported search.source %q", cfg.Search.Source)
	}

	svcOpts := []searchsvc.Option{}
	if cfg.Search.Delta > 0 {
		svcOpts = append(svcOpts, searchsvc.WithDelta(cfg.Search.Delta))
	}
	if cfg.Search.PhoneticFallback {
		svcOpts = append(svcOpts, searchsvc.WithPhoneticFallback(phonetic.New()))
	}

	return searchsvc.New(ix, svcOpts...), noop, nil
}

// normalizeAll normalizes every query the same way the index normalizes
// stored names, since [qgram.Index.FindMatches] expects an already-normalized
// prefix.
func normalizeAll(queries []string) []string {
	out := make([]string, len(queries))
	for i, q := range queries {
		out[i] = qgram.Normalize(q)
	}
	return out
}

// resultView is the JSON shape printed for a single query's results.
type resultView struct {
	Query      string      `json:"query"`
	Matches    []matchView `json:"matches"`
	Suggestion *sugView    `json:"suggestion,omitempty"`
}

type matchView struct {
	DisplayName string `json:"display_name"`
	PED         int    `json:"ped"`
	Score       int    `json:"score"`
}

type sugView struct {
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
}

func printResults(svc *searchsvc.Service, results []searchsvc.Result) int {
	views := make([]resultView, 0, len(results))
	exitCode := 0
	for _, r := range results {
		v := resultView{Query: r.Query, Matches: make([]matchView, 0, len(r.Matches))}
		for _, m := range r.Matches {
			name, score, _, _ := svc.Entity(m.EntID)
			v.Matches = append(v.Matches, matchView{DisplayName: name, PED: m.PED, Score: score})
		}
		if r.Suggestion != nil {
			v.Suggestion = &sugView{Name: r.Suggestion.Name, Confidence: r.Suggestion.Confidence}
		}
		if len(v.Matches) == 0 && v.Suggestion == nil {
			exitCode = 1
		}
		views = append(views, v)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(views); err != nil {
		slog.Error("encode results", "err", err)
		return 1
	}
	return exitCode
}
