// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog keeps a local SQLite record of archive listings and
// extraction runs, so versions can be listed offline and earlier extractions
// looked up.
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/tsasn1/internal/listing"
	"github.com/pdiddy/tsasn1/pkg/types"
)

// ErrNoListing is returned when no listing has been cached for a spec.
var ErrNoListing = errors.New("no cached listing")

// Store manages the catalog database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the catalog at cfg.Path and creates the schema if
// needed.
func Open(cfg types.CatalogConfig) (*Store, error) {
	if cfg.Path == "" {
		return nil, errors.New("catalog path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return nil, fmt.Errorf("creating catalog directory: %w", err)
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening catalog: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS listings (
			spec TEXT NOT NULL,
			version TEXT NOT NULL,
			token TEXT NOT NULL,
			date TEXT NOT NULL,
			fetched_at TEXT NOT NULL,
			PRIMARY KEY (spec, version)
		)`,
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			spec TEXT NOT NULL,
			version TEXT NOT NULL,
			token TEXT NOT NULL,
			document TEXT,
			extracted_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_spec ON runs(spec)`,
		`CREATE TABLE IF NOT EXISTS artifacts (
			run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			seq INTEGER NOT NULL,
			title TEXT NOT NULL,
			path TEXT NOT NULL,
			start_line INTEGER,
			lines INTEGER,
			overwrote INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (run_id, seq)
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// SaveListing replaces the cached listing for spec.
func (s *Store) SaveListing(ctx context.Context, spec string, versions types.VersionMap, fetchedAt time.Time) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM listings WHERE spec = ?`, spec); err != nil {
		return fmt.Errorf("clearing listing: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO listings (spec, version, token, date, fetched_at) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	ts := fetchedAt.UTC().Format(time.RFC3339)
	for _, v := range listing.Versions(versions) {
		rel := versions[v]
		if _, err := stmt.ExecContext(ctx, spec, v, rel.Token, rel.Date, ts); err != nil {
			return fmt.Errorf("inserting %s %s: %w", spec, v, err)
		}
	}
	return tx.Commit()
}

// Listing returns the cached listing for spec and when it was fetched.
func (s *Store) Listing(ctx context.Context, spec string) (types.VersionMap, time.Time, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT version, token, date, fetched_at FROM listings WHERE spec = ?`, spec)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("querying listing: %w", err)
	}
	defer rows.Close()

	versions := types.VersionMap{}
	var fetchedAt time.Time
	for rows.Next() {
		var v, ts string
		var rel types.Release
		if err := rows.Scan(&v, &rel.Token, &rel.Date, &ts); err != nil {
			return nil, time.Time{}, fmt.Errorf("scanning listing: %w", err)
		}
		versions[v] = rel
		if t, err := time.Parse(time.RFC3339, ts); err == nil {
			fetchedAt = t
		}
	}
	if err := rows.Err(); err != nil {
		return nil, time.Time{}, err
	}
	if len(versions) == 0 {
		return nil, time.Time{}, fmt.Errorf("%w for %s", ErrNoListing, spec)
	}
	return versions, fetchedAt, nil
}

// Specs returns every spec with a cached listing, in ascending order.
func (s *Store) Specs(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT spec FROM listings ORDER BY spec`)
	if err != nil {
		return nil, fmt.Errorf("querying specs: %w", err)
	}
	defer rows.Close()

	var specs []string
	for rows.Next() {
		var spec string
		if err := rows.Scan(&spec); err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	return specs, rows.Err()
}
