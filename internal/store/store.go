// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists Root records in a SQLite database.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-sqlite3"

	"github.com/pdiddy/roots-import/pkg/types"
)

// ErrDuplicate is wrapped by Insert when the (word, root, index) key is
// already stored.
var ErrDuplicate = errors.New("duplicate key")

// Sink receives decoded records. Insert returns nil, an error wrapping
// ErrDuplicate, or any other error, which callers treat as fatal.
type Sink interface {
	Insert(ctx context.Context, root types.Root, quality string) error
}

const defaultMaxResults = 50

// Store manages the roots SQLite database.
type Store struct {
	db         *sql.DB
	insert     *sql.Stmt
	maxResults int
}

var _ Sink = (*Store)(nil)

// Open opens or creates the database at cfg.Database and creates the
// roots table if it does not exist.
func Open(cfg types.StoreConfig) (*Store, error) {
	if dir := filepath.Dir(cfg.Database); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", cfg.Database+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	s := &Store{db: db, maxResults: maxResults}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	s.insert, err = db.Prepare(`INSERT INTO roots (word, root, "index", quality) VALUES (?, ?, ?, ?)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("preparing insert: %w", err)
	}

	return s, nil
}

// Close releases the prepared statement and the database connection.
func (s *Store) Close() error {
	if s.insert != nil {
		s.insert.Close()
	}
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS roots (
			word TEXT NOT NULL,
			root TEXT NOT NULL,
			"index" INTEGER NOT NULL,
			quality TEXT NOT NULL,
			PRIMARY KEY (word, root, "index")
		)`,
		`CREATE INDEX IF NOT EXISTS idx_roots_root ON roots(root)`,
		`CREATE INDEX IF NOT EXISTS idx_roots_quality ON roots(quality)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Insert stores one record tagged with quality.
func (s *Store) Insert(ctx context.Context, root types.Root, quality string) error {
	_, err := s.insert.ExecContext(ctx, root.Word, root.Root, root.Index, quality)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("inserting %s: %w: %w", root, ErrDuplicate, err)
		}
		return fmt.Errorf("inserting %s: %w", root, err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey ||
		sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
}
