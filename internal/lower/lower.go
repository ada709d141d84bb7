package lower

import (
	"github.com/derecord/derecord/internal/jast"
)

// CapabilityResolver answers whether an ancestor interface of a declaration
// declares a zero-argument method with a given name. Implementations must be
// safe for concurrent reads; the lowering itself holds no shared state.
type CapabilityResolver interface {
	DeclaresNoArgMethod(decl *jast.Declaration, name string) bool
}

// Lower rewrites a record declaration into an equivalent final class:
// explicit private final fields, a canonical constructor, accessors, and the
// equals/hashCode/toString contract, while preserving every member the
// author wrote by hand.
//
// Non-record declarations and generic records are returned unchanged, same
// pointer. Everything else returns a fresh declaration; the input is never
// mutated. A nil resolver disables override detection.
func Lower(decl *jast.Declaration, caps CapabilityResolver) (*jast.Declaration, error) {
	if decl.Kind != jast.KindRecord {
		return decl, nil
	}
	// Generic records are not supported: returning the input unchanged beats
	// producing a half-lowered class.
	if len(decl.TypeParams) > 0 {
		return decl, nil
	}
	if len(decl.Components) == 0 {
		return nil, &Error{Decl: decl.Name, Err: ErrNoComponents}
	}

	out := decl.Clone()
	comps := out.Components

	if err := upgradeCompactConstructors(out.Members, comps); err != nil {
		return nil, &Error{Decl: decl.Name, Err: err}
	}

	cls := classify(out.Members)
	out.Members, cls = synthesizeCanonicalConstructor(out.Members, cls, out.Name, comps)
	out.Members = synthesizeFields(out.Members, cls, comps)
	out.Members = synthesizeAccessors(out.Members, cls, out, comps, caps)
	out.Members = synthesizeObjectContract(out.Members, out.Name, comps)

	out.Kind = jast.KindClass
	out.Components = nil
	if !out.HasModifier("final") {
		out.Modifiers = append(out.Modifiers, "final")
	}
	return out, nil
}
