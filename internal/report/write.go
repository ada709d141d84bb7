package report

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Run is one recorded rewrite run.
type Run struct {
	ID            string `json:"id"`
	ManifestHash  string `json:"manifest_hash"`
	LanguageLevel int    `json:"language_level"`
	FileCount     int    `json:"file_count"`
	DeclCount     int    `json:"decl_count"`
}

// Rewrite is one recorded declaration outcome.
type Rewrite struct {
	RunID       string `json:"run_id"`
	Path        string `json:"path"`
	Declaration string `json:"declaration"`
	Outcome     string `json:"outcome"`
	BeforeHash  string `json:"before_hash"`
	AfterHash   string `json:"after_hash"`
	Detail      string `json:"detail,omitempty"`
}

// NewRunID generates a fresh run identifier.
func NewRunID() string {
	return uuid.NewString()
}

// WriteRun inserts a run record. Duplicate IDs are silently ignored so a
// retried command does not fail on its own earlier partial write.
func (s *Store) WriteRun(ctx context.Context, run Run) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, manifest_hash, language_level, file_count, decl_count)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`, run.ID, run.ManifestHash, run.LanguageLevel, run.FileCount, run.DeclCount)
	if err != nil {
		return fmt.Errorf("write run: %w", err)
	}
	return nil
}

// WriteRewrite inserts one declaration outcome. Idempotent on the
// (run, path, declaration) key.
func (s *Store) WriteRewrite(ctx context.Context, rw Rewrite) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO rewrites (run_id, path, declaration, outcome, before_hash, after_hash, detail)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(run_id, path, declaration) DO NOTHING
	`, rw.RunID, rw.Path, rw.Declaration, rw.Outcome, rw.BeforeHash, rw.AfterHash, rw.Detail)
	if err != nil {
		return fmt.Errorf("write rewrite: %w", err)
	}
	return nil
}
