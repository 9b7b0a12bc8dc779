// Package tsv reads entity records from the tab-separated corpus format the
// q-gram search engine was originally built against: a header line followed
// by one record per line, field 0 the display name, field 1 the integer
// score, field 2 the description, and (optionally) field 5 a
// semicolon-separated synonym list.
//
// This is purely an input adaptor — it knows nothing about q-grams, PED, or
// ranking. It produces [qgram.EntityRecord] values for [qgram.Index.Build].
package tsv

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"os"
	"strconv"
	"strings"

	"github.com/MrWong99/glyphoxa/internal/qgram"
)

// synonymColumn is the 0-based TSV field index holding the ';'-separated
// synonym list, when present and enabled.
const synonymColumn = 5

// LoadFile opens path and returns an [iter.Seq2] of [qgram.EntityRecord]
// suitable for [qgram.Index.Build]. The file is read lazily: records are
// parsed one line at a time as the sequence is ranged over.
//
// useSynonyms controls whether field 5 is parsed as a synonym list; it is
// ignored (and synonyms are left empty) for lines that don't carry that
// field.
func LoadFile(path string, useSynonyms bool) (iter.Seq2[qgram.EntityRecord, error], func() error, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("tsv: open %q: %w", path, err)
	}
	return LoadReader(f, useSynonyms), f.Close, nil
}

// LoadReader returns an [iter.Seq2] of [qgram.EntityRecord] parsed from r.
// The first line is always treated as a header and skipped, per the TSV
// ingestor contract. The caller owns r and is responsible for closing it
// after the sequence has been fully consumed (or abandoned).
func LoadReader(r io.Reader, useSynonyms bool) iter.Seq2[qgram.EntityRecord, error] {
	return func(yield func(qgram.EntityRecord, error) bool) {
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

		lineNo := 0
		if scanner.Scan() {
			lineNo++ // header consumed, not yielded
		}

		for scanner.Scan() {
			lineNo++
			rec, err := parseLine(scanner.Text(), useSynonyms)
			if err != nil {
				yield(qgram.EntityRecord{}, fmt.Errorf("tsv: line %d: %w", lineNo, err))
				return
			}
			if !yield(rec, nil) {
				return
			}
		}
		if err := scanner.Err(); err != nil {
			yield(qgram.EntityRecord{}, fmt.Errorf("tsv: read: %w", err))
		}
	}
}

// parseLine parses one TSV data line (not the header) into an EntityRecord.
func parseLine(line string, useSynonyms bool) (qgram.EntityRecord, error) {
	fields := strings.Split(line, "\t")
	if len(fields) < 3 {
		return qgram.EntityRecord{}, fmt.Errorf("expected at least 3 tab-separated fields, got %d", len(fields))
	}

	score, err := strconv.Atoi(strings.TrimSpace(fields[1]))
	if err != nil {
		return qgram.EntityRecord{}, fmt.Errorf("field 1 (score) %q is not an integer: %w", fields[1], err)
	}

	rec := qgram.EntityRecord{
		DisplayName: fields[0],
		Score:       score,
		Description: fields[2],
	}
	if len(fields) > 3 {
		rec.Extra = append([]string(nil), fields[3:]...)
	}
	if useSynonyms && len(fields) > synonymColumn {
		for _, s := range strings.Split(fields[synonymColumn], ";") {
			if s != "" {
				rec.Synonyms = append(rec.Synonyms, s)
			}
		}
	}
	return rec, nil
}
