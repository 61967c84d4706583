// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/pdiddy/roots-import/pkg/types"
)

// QueryOptions filters stored records. Empty fields do not filter.
type QueryOptions struct {
	Word    string
	Root    string
	Quality string

	// MaxResults limits result count. Zero uses the store default;
	// a negative value returns every match.
	MaxResults int
}

// Record is a stored Root with the quality tag of the run that wrote it.
type Record struct {
	types.Root `yaml:",inline"`
	Quality    string `json:"quality" yaml:"quality"`
}

// Query returns stored records matching opts ordered by word, root, index.
func (s *Store) Query(ctx context.Context, opts QueryOptions) ([]Record, error) {
	var (
		qb   strings.Builder
		args []any
	)

	qb.WriteString(`SELECT word, root, "index", quality FROM roots WHERE 1=1`)

	if opts.Word != "" {
		qb.WriteString(` AND word = ?`)
		args = append(args, opts.Word)
	}
	if opts.Root != "" {
		qb.WriteString(` AND root = ?`)
		args = append(args, opts.Root)
	}
	if opts.Quality != "" {
		qb.WriteString(` AND quality = ?`)
		args = append(args, opts.Quality)
	}

	qb.WriteString(` ORDER BY word, root, "index"`)

	limit := opts.MaxResults
	if limit == 0 {
		limit = s.maxResults
	}
	if limit > 0 {
		qb.WriteString(` LIMIT ?`)
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying roots: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.Root.Word, &r.Root.Root, &r.Root.Index, &r.Quality); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// Stats holds row counts for the roots table.
type Stats struct {
	Total     int            `json:"total" yaml:"total"`
	ByQuality map[string]int `json:"by_quality" yaml:"by_quality"`
}

// Stats counts stored records overall and per quality tag.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT quality, count(*) FROM roots GROUP BY quality ORDER BY quality`)
	if err != nil {
		return Stats{}, fmt.Errorf("counting roots: %w", err)
	}
	defer rows.Close()

	stats := Stats{ByQuality: map[string]int{}}
	for rows.Next() {
		var (
			quality string
			n       int
		)
		if err := rows.Scan(&quality, &n); err != nil {
			return Stats{}, fmt.Errorf("scanning row: %w", err)
		}
		stats.ByQuality[quality] = n
		stats.Total += n
	}
	return stats, rows.Err()
}
