package lower

import (
	"github.com/derecord/derecord/internal/jast"
)

// classification holds the anchor members the synthesizers insert around.
// Anchors are member references; they stay valid across insertions.
type classification struct {
	firstConstructor *jast.Constructor
	lastConstructor  *jast.Constructor
	firstMethod      *jast.Method
}

// classify scans the member list for the anchor members: the first and last
// constructors and the first non-constructor method.
func classify(members []jast.Member) classification {
	var c classification
	for _, m := range members {
		switch m := m.(type) {
		case *jast.Constructor:
			if c.firstConstructor == nil {
				c.firstConstructor = m
			}
			c.lastConstructor = m
		case *jast.Method:
			if c.firstMethod == nil {
				c.firstMethod = m
			}
		}
	}
	return c
}

// hasConstructor reports whether a constructor with exactly the given
// parameter type list exists. Types match by declared name exactly as
// written, type arguments included, not resolved identity.
func hasConstructor(members []jast.Member, paramTypes []string) bool {
	for _, m := range members {
		ctor, ok := m.(*jast.Constructor)
		if !ok || ctor.IsCompact {
			continue
		}
		if paramTypesEqual(ctor.Params, paramTypes) {
			return true
		}
	}
	return false
}

// hasMethod reports whether a method with the given name and parameter type
// list exists, matching by name, arity and declared parameter type names.
func hasMethod(members []jast.Member, name string, paramTypes []string) bool {
	for _, m := range members {
		meth, ok := m.(*jast.Method)
		if !ok || meth.Name != name {
			continue
		}
		if paramTypesEqual(meth.Params, paramTypes) {
			return true
		}
	}
	return false
}

func paramTypesEqual(params []jast.Param, types []string) bool {
	if len(params) != len(types) {
		return false
	}
	for i, p := range params {
		if p.Type.Name != types[i] {
			return false
		}
	}
	return true
}

// insertBefore inserts items immediately before the anchor member. The
// anchor is located by identity; a missing anchor appends at the end.
func insertBefore(members []jast.Member, anchor jast.Member, items ...jast.Member) []jast.Member {
	at := len(members)
	for i, m := range members {
		if m == anchor {
			at = i
			break
		}
	}
	return spliceMembers(members, at, items)
}

// insertAfter inserts items immediately after the anchor member.
func insertAfter(members []jast.Member, anchor jast.Member, items ...jast.Member) []jast.Member {
	at := len(members)
	for i, m := range members {
		if m == anchor {
			at = i + 1
			break
		}
	}
	return spliceMembers(members, at, items)
}

func spliceMembers(members []jast.Member, at int, items []jast.Member) []jast.Member {
	out := make([]jast.Member, 0, len(members)+len(items))
	out = append(out, members[:at]...)
	out = append(out, items...)
	out = append(out, members[at:]...)
	return out
}
