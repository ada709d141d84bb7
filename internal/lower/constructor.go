package lower

import (
	"fmt"

	"github.com/derecord/derecord/internal/jast"
)

// upgradeCompactConstructors gives every compact constructor an explicit
// parameter list equal to the component list and appends one field
// assignment per component after the author's statements. Validation the
// author wrote therefore always runs before assignment. The compact tag is
// cleared exactly once.
func upgradeCompactConstructors(members []jast.Member, comps []jast.Component) error {
	for _, m := range members {
		ctor, ok := m.(*jast.Constructor)
		if !ok || !ctor.IsCompact {
			continue
		}
		if len(ctor.Params) != 0 {
			return ErrCompactMismatch
		}
		ctor.IsCompact = false
		ctor.Params = componentParams(comps)
		for _, c := range comps {
			ctor.Body = append(ctor.Body, fieldAssignment(c))
		}
	}
	return nil
}

// synthesizeCanonicalConstructor adds an all-args constructor when no
// constructor with the exact component type signature exists. Insertion
// priority: before the first existing constructor, else before the first
// method, else at the end. Returns the updated member list and anchors; the
// new constructor becomes the first constructor, and the last as well if
// none existed before.
func synthesizeCanonicalConstructor(members []jast.Member, cls classification, name string, comps []jast.Component) ([]jast.Member, classification) {
	types := make([]string, len(comps))
	for i, c := range comps {
		types[i] = c.Type.Name
	}
	if hasConstructor(members, types) {
		return members, cls
	}

	body := make([]string, len(comps))
	for i, c := range comps {
		body[i] = fieldAssignment(c)
	}
	ctor := &jast.Constructor{
		Modifiers: []string{"public"},
		Name:      name,
		Params:    componentParams(comps),
		Body:      body,
	}

	switch {
	case cls.firstConstructor != nil:
		members = insertBefore(members, cls.firstConstructor, ctor)
	case cls.firstMethod != nil:
		members = insertBefore(members, cls.firstMethod, ctor)
	default:
		members = append(members, ctor)
	}

	cls.firstConstructor = ctor
	if cls.lastConstructor == nil {
		cls.lastConstructor = ctor
	}
	return members, cls
}

func componentParams(comps []jast.Component) []jast.Param {
	params := make([]jast.Param, len(comps))
	for i, c := range comps {
		params[i] = jast.Param{Type: c.Type, Name: c.Name}
	}
	return params
}

func fieldAssignment(c jast.Component) string {
	return fmt.Sprintf("this.%s = %s;", c.Name, c.Name)
}
