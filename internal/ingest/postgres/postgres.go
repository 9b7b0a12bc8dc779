// Package postgres reads entity records from a PostgreSQL table instead of a
// flat TSV file, so a campaign's entity roster can live alongside Glyphoxa's
// session memory in the same database.
//
// Like [github.com/MrWong99/glyphoxa/internal/ingest/tsv], this is purely an
// input adaptor: it produces [qgram.EntityRecord] values in a fixed row
// order (by ascending id) and has no knowledge of q-grams, PED, or ranking.
// Reading from Postgres is not index persistence — the resulting
// [qgram.Index] is still built fresh, in memory, on every process start.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/MrWong99/glyphoxa/internal/qgram"
)

// defaultTable is used by [Source] when no table name is configured.
const defaultTable = "search_entities"

// Source reads [qgram.EntityRecord] rows from a Postgres table. The table is
// expected to carry at least the columns id (used only for row order),
// display_name (text), score (integer), description (text); synonyms
// (text[]) is read when synonyms are enabled via [WithSynonyms].
//
// All methods are safe for concurrent use.
type Source struct {
	pool        *pgxpool.Pool
	table       string
	useSynonyms bool
}

// Option configures a [Source].
type Option func(*Source)

// WithTable overrides the table name read by [Source.Load]. Default:
// "search_entities".
func WithTable(name string) Option {
	return func(s *Source) { s.table = name }
}

// WithSynonyms enables reading the synonyms column. Default: disabled.
func WithSynonyms(enabled bool) Option {
	return func(s *Source) { s.useSynonyms = enabled }
}

// NewSource establishes a connection pool to the PostgreSQL database at dsn
// and returns a [Source] ready for [Source.Load].
func NewSource(ctx context.Context, dsn string, opts ...Option) (*Source, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("ingest/postgres: create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ingest/postgres: ping: %w", err)
	}

	s := &Source{pool: pool, table: defaultTable}
	for _, o := range opts {
		o(s)
	}
	return s, nil
}

// Close releases the underlying connection pool.
func (s *Source) Close() {
	s.pool.Close()
}

// Load returns every row of the configured table as [qgram.EntityRecord]
// values, ordered by ascending id — the fixed order that becomes ent_id
// assignment in [qgram.Index.Build]. The synonyms column, when read, is
// parsed as a Postgres text[].
func (s *Source) Load(ctx context.Context) ([]qgram.EntityRecord, error) {
	query := fmt.Sprintf(
		"SELECT display_name, score, description%s FROM %s ORDER BY id ASC",
		synonymsSelectClause(s.useSynonyms), pgx.Identifier{s.table}.Sanitize(),
	)

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ingest/postgres: query %q: %w", s.table, err)
	}
	defer rows.Close()

	var records []qgram.EntityRecord
	for rows.Next() {
		rec, err := scanRow(rows, s.useSynonyms)
		if err != nil {
			return nil, fmt.Errorf("ingest/postgres: scan row: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ingest/postgres: read rows: %w", err)
	}
	return records, nil
}

func synonymsSelectClause(useSynonyms bool) string {
	if !useSynonyms {
		return ""
	}
	return ", synonyms"
}

func scanRow(rows pgx.Rows, useSynonyms bool) (qgram.EntityRecord, error) {
	var rec qgram.EntityRecord
	if useSynonyms {
		if err := rows.Scan(&rec.DisplayName, &rec.Score, &rec.Description, &rec.Synonyms); err != nil {
			return qgram.EntityRecord{}, err
		}
		return rec, nil
	}
	if err := rows.Scan(&rec.DisplayName, &rec.Score, &rec.Description); err != nil {
		return qgram.EntityRecord{}, err
	}
	return rec, nil
}
