package report

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "report.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.db")

	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	store, err = Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Close())
}

func TestWriteAndListRuns(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	run := Run{
		ID:            NewRunID(),
		ManifestHash:  ManifestHash([]byte("run: {}")),
		LanguageLevel: 17,
		FileCount:     3,
		DeclCount:     5,
	}
	require.NoError(t, store.WriteRun(ctx, run))

	// Duplicate writes are idempotent.
	require.NoError(t, store.WriteRun(ctx, run))

	runs, err := store.ListRuns(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, run, runs[0])
}

func TestWriteAndListRewrites(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	run := Run{ID: NewRunID(), ManifestHash: "m", LanguageLevel: 17}
	require.NoError(t, store.WriteRun(ctx, run))

	first := Rewrite{
		RunID:       run.ID,
		Path:        "src/Vehicle.java",
		Declaration: "Vehicle",
		Outcome:     "rewritten",
		BeforeHash:  SourceHash("record Vehicle(String model, int power) {}"),
		AfterHash:   SourceHash("public final class Vehicle { }"),
	}
	second := Rewrite{
		RunID:       run.ID,
		Path:        "src/Pair.java",
		Declaration: "Pair",
		Outcome:     "skipped_generic",
		BeforeHash:  SourceHash("record Pair<K, V>(K key, V value) {}"),
		AfterHash:   SourceHash("record Pair<K, V>(K key, V value) {}"),
	}
	require.NoError(t, store.WriteRewrite(ctx, first))
	require.NoError(t, store.WriteRewrite(ctx, second))
	require.NoError(t, store.WriteRewrite(ctx, first)) // idempotent

	rewrites, err := store.ListRewrites(ctx, run.ID)
	require.NoError(t, err)
	require.Len(t, rewrites, 2)
	assert.Equal(t, first, rewrites[0])
	assert.Equal(t, second, rewrites[1])

	none, err := store.ListRewrites(ctx, "missing-run")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSourceHashStableAcrossNormalization(t *testing.T) {
	// U+00E9 composed vs e + U+0301 combining acute: same logical text.
	composed := "caf\u00e9"
	decomposed := "cafe\u0301"
	assert.Equal(t, SourceHash(composed), SourceHash(decomposed))
	assert.NotEqual(t, SourceHash(composed), SourceHash("cafe"))
}

func TestHashDomainsAreSeparated(t *testing.T) {
	assert.NotEqual(t, SourceHash("x"), ManifestHash([]byte("x")))
}
