// Package rewrite walks parsed compilation units and applies the record
// lowering to every record declaration, handling the feature-level
// precondition, import management for generated code, and per-declaration
// outcome reporting.
package rewrite

import (
	"strings"

	"github.com/derecord/derecord/internal/jast"
	"github.com/derecord/derecord/internal/lower"
	"github.com/derecord/derecord/internal/typeindex"
)

// MinRecordLevel is the lowest Java language level that has records at all.
// Units compiled for older levels cannot contain one, so the engine never
// runs the lowering for them.
const MinRecordLevel = 14

// objectsImport is the helper class generated equals/hashCode bodies call.
const objectsImport = "java.util.Objects"

// Outcome describes what happened to one declaration.
type Outcome string

const (
	OutcomeRewritten      Outcome = "rewritten"
	OutcomeSkippedGeneric Outcome = "skipped_generic"
	OutcomeUnchanged      Outcome = "unchanged"
	OutcomeFailed         Outcome = "failed"
)

// DeclResult is the outcome for a single declaration.
type DeclResult struct {
	Name    string  `json:"name"`
	Outcome Outcome `json:"outcome"`
	Err     error   `json:"-"`
}

// UnitResult is the outcome for a whole compilation unit.
type UnitResult struct {
	Decls   []DeclResult `json:"decls"`
	Changed bool         `json:"changed"`
}

// Rewritten reports how many declarations were lowered.
func (r UnitResult) Rewritten() int {
	n := 0
	for _, d := range r.Decls {
		if d.Outcome == OutcomeRewritten {
			n++
		}
	}
	return n
}

// FirstError returns the first per-declaration failure, if any.
func (r UnitResult) FirstError() error {
	for _, d := range r.Decls {
		if d.Err != nil {
			return d.Err
		}
	}
	return nil
}

// Engine applies the lowering across compilation units.
type Engine struct {
	// LanguageLevel is the Java feature level the sources target.
	LanguageLevel int

	resolver *typeindex.Index
}

// New creates an engine for the given language level. The index is built
// over every unit the run will touch, so override detection sees interfaces
// declared in sibling files.
func New(languageLevel int, units ...*jast.CompilationUnit) *Engine {
	return &Engine{
		LanguageLevel: languageLevel,
		resolver:      typeindex.New(units...),
	}
}

// RewriteUnit lowers every record declaration in the unit. The input unit is
// not modified; when nothing changes the returned unit is the input itself.
//
// A declaration that fails its invariants is reported in the result and
// suppresses the whole unit's rewrite. Siblings that lowered cleanly are
// then reported unchanged, since their rewrite never reaches the output.
func (e *Engine) RewriteUnit(unit *jast.CompilationUnit) (*jast.CompilationUnit, UnitResult) {
	var result UnitResult

	if e.LanguageLevel < MinRecordLevel {
		return unit, result
	}

	out := &jast.CompilationUnit{
		Package: unit.Package,
		Imports: append([]string(nil), unit.Imports...),
		Decls:   make([]*jast.Declaration, len(unit.Decls)),
	}
	copy(out.Decls, unit.Decls)

	for i, decl := range unit.Decls {
		if decl.Kind != jast.KindRecord {
			continue
		}
		lowered, err := lower.Lower(decl, e.resolver)
		switch {
		case err != nil:
			result.Decls = append(result.Decls, DeclResult{Name: decl.Name, Outcome: OutcomeFailed, Err: err})
		case lowered == decl:
			result.Decls = append(result.Decls, DeclResult{Name: decl.Name, Outcome: OutcomeSkippedGeneric})
		default:
			result.Decls = append(result.Decls, DeclResult{Name: decl.Name, Outcome: OutcomeRewritten})
			out.Decls[i] = lowered
			result.Changed = true
		}
	}

	if result.FirstError() != nil {
		for i := range result.Decls {
			if result.Decls[i].Outcome == OutcomeRewritten {
				result.Decls[i].Outcome = OutcomeUnchanged
			}
		}
		result.Changed = false
		return unit, result
	}
	if !result.Changed {
		return unit, result
	}

	ensureImports(out)
	return out, result
}

// ensureImports adds the java.util.Objects import when any member body in
// the unit calls an Objects helper. Covers both generated contract methods
// and hand-written ones the author relied on the record form to compile.
func ensureImports(unit *jast.CompilationUnit) {
	if unit.HasImport(objectsImport) {
		return
	}
	for _, decl := range unit.Decls {
		for _, member := range decl.Members {
			var body []string
			switch m := member.(type) {
			case *jast.Constructor:
				body = m.Body
			case *jast.Method:
				body = m.Body
			}
			for _, stmt := range body {
				if strings.Contains(stmt, "Objects.") {
					unit.AddImport(objectsImport)
					return
				}
			}
		}
	}
}
