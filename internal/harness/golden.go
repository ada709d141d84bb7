package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"

	"github.com/derecord/derecord/internal/jast"
	"github.com/derecord/derecord/internal/parser"
	"github.com/derecord/derecord/internal/printer"
	"github.com/derecord/derecord/internal/rewrite"
)

// RunWithGolden executes a scenario and compares the rewritten target source
// against the golden file testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, s *Scenario) {
	t.Helper()

	units := make(map[string]*jast.CompilationUnit, len(s.Sources))
	ordered := make([]*jast.CompilationUnit, 0, len(s.Sources))
	for _, rel := range s.Sources {
		path := filepath.Join(s.baseDir, rel)
		data, err := os.ReadFile(path)
		require.NoError(t, err, "scenario %s: source %s", s.Name, rel)
		unit, err := parser.Parse(string(data), path)
		require.NoError(t, err, "scenario %s: parse %s", s.Name, rel)
		units[rel] = unit
		ordered = append(ordered, unit)
	}

	engine := rewrite.New(s.LanguageLevel, ordered...)
	out, result := engine.RewriteUnit(units[s.Target])
	require.NoError(t, result.FirstError(), "scenario %s", s.Name)

	assertOutcomes(t, s, result)

	// A second application must be a no-op: everything is class-shaped now.
	again, secondResult := engine.RewriteUnit(out)
	require.False(t, secondResult.Changed, "scenario %s: rewrite is not idempotent", s.Name)
	require.Equal(t, printer.Print(out), printer.Print(again), "scenario %s", s.Name)

	g := goldie.New(t, goldie.WithFixtureDir(filepath.Join(s.baseDir, "..", "golden")))
	g.Assert(t, s.Name, []byte(printer.Print(out)))
}

func assertOutcomes(t *testing.T, s *Scenario, result rewrite.UnitResult) {
	t.Helper()

	got := make(map[string]rewrite.Outcome, len(result.Decls))
	for _, d := range result.Decls {
		got[d.Name] = d.Outcome
	}
	for _, name := range s.Expect.Rewritten {
		require.Equal(t, rewrite.OutcomeRewritten, got[name],
			"scenario %s: expected %s to be rewritten", s.Name, name)
	}
	for _, name := range s.Expect.Skipped {
		require.Equal(t, rewrite.OutcomeSkippedGeneric, got[name],
			"scenario %s: expected %s to be skipped", s.Name, name)
	}
}
