package report

import (
	"context"
	"fmt"
)

// ListRuns returns all recorded runs, most recently inserted last.
func (s *Store) ListRuns(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, manifest_hash, language_level, file_count, decl_count
		FROM runs
		ORDER BY rowid
	`)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.ManifestHash, &r.LanguageLevel, &r.FileCount, &r.DeclCount); err != nil {
			return nil, fmt.Errorf("list runs: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// ListRewrites returns every declaration outcome for a run, in insertion
// order.
func (s *Store) ListRewrites(ctx context.Context, runID string) ([]Rewrite, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT run_id, path, declaration, outcome, before_hash, after_hash, detail
		FROM rewrites
		WHERE run_id = ?
		ORDER BY rowid
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("list rewrites: %w", err)
	}
	defer rows.Close()

	var rewrites []Rewrite
	for rows.Next() {
		var rw Rewrite
		if err := rows.Scan(&rw.RunID, &rw.Path, &rw.Declaration, &rw.Outcome, &rw.BeforeHash, &rw.AfterHash, &rw.Detail); err != nil {
			return nil, fmt.Errorf("list rewrites: %w", err)
		}
		rewrites = append(rewrites, rw)
	}
	return rewrites, rows.Err()
}
