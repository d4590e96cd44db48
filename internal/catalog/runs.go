// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/pdiddy/tsasn1/pkg/types"
)

// RecordExtraction stores one extraction run with its artifacts and returns
// the run id.
func (s *Store) RecordExtraction(ctx context.Context, m types.Manifest) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (spec, version, token, document, extracted_at) VALUES (?, ?, ?, ?, ?)`,
		m.Spec, m.Version, m.Token, m.Document, m.ExtractedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading run id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO artifacts (run_id, seq, title, path, start_line, lines, overwrote)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, a := range m.Artifacts {
		if _, err := stmt.ExecContext(ctx, runID, i, a.Title, a.Path, a.StartLine, a.Lines, a.Overwrote); err != nil {
			return 0, fmt.Errorf("inserting artifact %s: %w", a.Title, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing run: %w", err)
	}
	return runID, nil
}

// Extractions returns recorded runs, newest first. An empty spec returns
// runs for every spec.
func (s *Store) Extractions(ctx context.Context, spec string) ([]types.Manifest, error) {
	query := `SELECT id, spec, version, token, document, extracted_at FROM runs`
	var args []any
	if spec != "" {
		query += ` WHERE spec = ?`
		args = append(args, spec)
	}
	query += ` ORDER BY id DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}

	var (
		ids  []int64
		runs []types.Manifest
	)
	for rows.Next() {
		var (
			id  int64
			m   types.Manifest
			doc *string
			ts  string
		)
		if err := rows.Scan(&id, &m.Spec, &m.Version, &m.Token, &doc, &ts); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		if doc != nil {
			m.Document = *doc
		}
		if t, err := time.Parse(time.RFC3339Nano, ts); err == nil {
			m.ExtractedAt = t
		}
		ids = append(ids, id)
		runs = append(runs, m)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i, id := range ids {
		artifacts, err := s.artifacts(ctx, id)
		if err != nil {
			return nil, err
		}
		runs[i].Artifacts = artifacts
	}
	return runs, nil
}

func (s *Store) artifacts(ctx context.Context, runID int64) ([]types.Artifact, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT title, path, start_line, lines, overwrote FROM artifacts WHERE run_id = ? ORDER BY seq`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying artifacts: %w", err)
	}
	defer rows.Close()

	var out []types.Artifact
	for rows.Next() {
		var a types.Artifact
		if err := rows.Scan(&a.Title, &a.Path, &a.StartLine, &a.Lines, &a.Overwrote); err != nil {
			return nil, fmt.Errorf("scanning artifact: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
