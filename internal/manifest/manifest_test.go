package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseString(t *testing.T, src string) (*RunSpec, error) {
	t.Helper()
	ctx := cuecontext.New()
	v := ctx.CompileString(src)
	require.NoError(t, v.Err())
	return Parse(v.LookupPath(cue.ParsePath("run")))
}

func TestParseBasic(t *testing.T) {
	spec, err := parseString(t, `
		run: {
			language_level: 17
			include: ["src/main/java", "extra/Vehicle.java"]
			report: "derecord.db"
		}
	`)
	require.NoError(t, err)

	assert.Equal(t, 17, spec.LanguageLevel)
	assert.Equal(t, []string{"src/main/java", "extra/Vehicle.java"}, spec.Include)
	assert.Equal(t, "derecord.db", spec.Report)
}

func TestParseReportOptional(t *testing.T) {
	spec, err := parseString(t, `
		run: {
			language_level: 14
			include: ["."]
		}
	`)
	require.NoError(t, err)
	assert.Empty(t, spec.Report)
}

func TestParseMissingLanguageLevel(t *testing.T) {
	_, err := parseString(t, `
		run: {
			include: ["."]
		}
	`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "language_level")
}

func TestParseMissingInclude(t *testing.T) {
	_, err := parseString(t, `
		run: {
			language_level: 17
		}
	`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "include")
}

func TestParseEmptyInclude(t *testing.T) {
	_, err := parseString(t, `
		run: {
			language_level: 17
			include: []
		}
	`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one include path")
}

func TestParseNegativeLevel(t *testing.T) {
	_, err := parseString(t, `
		run: {
			language_level: -1
			include: ["."]
		}
	`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "positive")
}

func TestParseMissingRunBlock(t *testing.T) {
	_, err := parseString(t, `other: {}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "run block is required")
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "derecord.cue")
	require.NoError(t, os.WriteFile(path, []byte(`
run: {
	language_level: 17
	include: ["src"]
}
`), 0o644))

	spec, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 17, spec.LanguageLevel)
	assert.Equal(t, []string{"src"}, spec.Include)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.cue"))
	require.Error(t, err)
}
