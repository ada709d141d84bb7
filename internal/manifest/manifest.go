// Package manifest loads a derecord run manifest written in CUE.
//
// A manifest names the sources to rewrite and the feature level they target:
//
//	run: {
//		language_level: 17
//		include: ["src/main/java"]
//		report: "derecord.db"
//	}
package manifest

import (
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
)

// RunSpec is the parsed manifest.
type RunSpec struct {
	// LanguageLevel is the Java feature level of the sources. Records need
	// level 14 or higher; lower levels make the whole run a no-op.
	LanguageLevel int

	// Include lists files or directories to rewrite, relative to the
	// manifest location. Directories are walked for .java files.
	Include []string

	// Report is the SQLite report path, "" to skip reporting.
	Report string
}

// LoadFile reads and parses a manifest file.
func LoadFile(path string) (*RunSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	ctx := cuecontext.New()
	v := ctx.CompileBytes(data, cue.Filename(path))
	return Parse(v.LookupPath(cue.ParsePath("run")))
}

// Parse reads a RunSpec from a CUE value. The value should be the run
// struct itself.
func Parse(v cue.Value) (*RunSpec, error) {
	if !v.Exists() {
		return nil, &ParseError{Field: "run", Message: "run block is required"}
	}
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	spec := &RunSpec{}

	levelVal := v.LookupPath(cue.ParsePath("language_level"))
	if !levelVal.Exists() {
		return nil, &ParseError{
			Field:   "language_level",
			Message: "language_level is required",
			Pos:     v.Pos(),
		}
	}
	level, err := levelVal.Int64()
	if err != nil {
		return nil, formatCUEError(err)
	}
	if level < 1 {
		return nil, &ParseError{
			Field:   "language_level",
			Message: fmt.Sprintf("language_level must be positive, got %d", level),
			Pos:     levelVal.Pos(),
		}
	}
	spec.LanguageLevel = int(level)

	includeVal := v.LookupPath(cue.ParsePath("include"))
	if !includeVal.Exists() {
		return nil, &ParseError{
			Field:   "include",
			Message: "include is required",
			Pos:     v.Pos(),
		}
	}
	iter, err := includeVal.List()
	if err != nil {
		return nil, formatCUEError(err)
	}
	for iter.Next() {
		path, err := iter.Value().String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		spec.Include = append(spec.Include, path)
	}
	if len(spec.Include) == 0 {
		return nil, &ParseError{
			Field:   "include",
			Message: "at least one include path is required",
			Pos:     includeVal.Pos(),
		}
	}

	reportVal := v.LookupPath(cue.ParsePath("report"))
	if reportVal.Exists() {
		report, err := reportVal.String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		spec.Report = report
	}

	return spec, nil
}

// ParseError represents a manifest error with a source position.
type ParseError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *ParseError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}
	firstErr := errs[0]
	positions := errors.Positions(firstErr)
	if len(positions) > 0 {
		return &ParseError{
			Field:   "cue",
			Message: firstErr.Error(),
			Pos:     positions[0],
		}
	}
	return err
}
