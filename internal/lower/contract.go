package lower

import (
	"fmt"
	"strings"

	"github.com/derecord/derecord/internal/jast"
)

// synthesizeObjectContract appends equals, hashCode and toString, in that
// order, each skipped when a member with the matching signature already
// exists. The generated pair uses the java.util.Objects helpers for both the
// null-safe comparisons and the order-sensitive hash, so the hash/equality
// contract holds by construction.
func synthesizeObjectContract(members []jast.Member, name string, comps []jast.Component) []jast.Member {
	if !hasMethod(members, "equals", []string{"Object"}) {
		members = append(members, equalsMethod(name, comps))
	}
	if !hasMethod(members, "hashCode", nil) {
		members = append(members, hashCodeMethod(comps))
	}
	if !hasMethod(members, "toString", nil) {
		members = append(members, toStringMethod(name, comps))
	}
	return members
}

func equalsMethod(name string, comps []jast.Component) *jast.Method {
	comparisons := make([]string, len(comps))
	for i, c := range comps {
		if c.IsPrimitive() {
			comparisons[i] = fmt.Sprintf("%s == other.%s", c.Name, c.Name)
		} else {
			comparisons[i] = fmt.Sprintf("Objects.equals(%s, other.%s)", c.Name, c.Name)
		}
	}
	return &jast.Method{
		Annotations: []string{"@Override"},
		Modifiers:   []string{"public"},
		ReturnType:  jast.TypeRef{Name: "boolean"},
		Name:        "equals",
		Params:      []jast.Param{{Type: jast.TypeRef{Name: "Object"}, Name: "obj"}},
		Body: []string{
			"if (this == obj) { return true; }",
			"if (obj == null || getClass() != obj.getClass()) { return false; }",
			fmt.Sprintf("%s other = (%s) obj;", name, name),
			fmt.Sprintf("return %s;", strings.Join(comparisons, " && ")),
		},
		HasBody: true,
	}
}

func hashCodeMethod(comps []jast.Component) *jast.Method {
	names := make([]string, len(comps))
	for i, c := range comps {
		names[i] = c.Name
	}
	return &jast.Method{
		Annotations: []string{"@Override"},
		Modifiers:   []string{"public"},
		ReturnType:  jast.TypeRef{Name: "int"},
		Name:        "hashCode",
		Body: []string{
			fmt.Sprintf("return Objects.hash(%s);", strings.Join(names, ", ")),
		},
		HasBody: true,
	}
}

func toStringMethod(name string, comps []jast.Component) *jast.Method {
	parts := make([]string, len(comps))
	for i, c := range comps {
		parts[i] = fmt.Sprintf("%s=\" + %s + \"", c.Name, c.Name)
	}
	return &jast.Method{
		Annotations: []string{"@Override"},
		Modifiers:   []string{"public"},
		ReturnType:  jast.TypeRef{Name: "String"},
		Name:        "toString",
		Body: []string{
			fmt.Sprintf("return \"%s[%s]\";", name, strings.Join(parts, ", ")),
		},
		HasBody: true,
	}
}
