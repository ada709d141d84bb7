package lower

import (
	"github.com/derecord/derecord/internal/jast"
)

// synthesizeFields inserts one private final field per component, in
// component order, immediately before the first constructor. A record cannot
// declare instance fields of its own, so no per-field existence check is
// needed; the synthesizer runs once per component.
func synthesizeFields(members []jast.Member, cls classification, comps []jast.Component) []jast.Member {
	fields := make([]jast.Member, len(comps))
	for i, c := range comps {
		fields[i] = &jast.Field{
			Modifiers: []string{"private", "final"},
			Type:      c.Type,
			Name:      c.Name,
		}
	}
	return insertBefore(members, cls.firstConstructor, fields...)
}

// synthesizeAccessors inserts one zero-argument accessor per component,
// anchored immediately after the last constructor. Components are processed
// in reverse order so the accessors end up in forward component order. A
// hand-written accessor (any zero-argument method named after the component)
// is preserved verbatim. When an ancestor interface declares a matching
// zero-argument method the accessor is marked @Override.
func synthesizeAccessors(members []jast.Member, cls classification, decl *jast.Declaration, comps []jast.Component, caps CapabilityResolver) []jast.Member {
	for i := len(comps) - 1; i >= 0; i-- {
		c := comps[i]
		if hasMethod(members, c.Name, nil) {
			continue
		}
		accessor := &jast.Method{
			Modifiers:  []string{"public"},
			ReturnType: c.Type,
			Name:       c.Name,
			Body:       []string{"return " + c.Name + ";"},
			HasBody:    true,
		}
		if caps != nil && caps.DeclaresNoArgMethod(decl, c.Name) {
			accessor.Annotations = []string{"@Override"}
		}
		members = insertAfter(members, cls.lastConstructor, accessor)
	}
	return members
}
