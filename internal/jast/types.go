package jast

// DeclKind identifies the shape of a type declaration.
type DeclKind int

const (
	KindClass DeclKind = iota
	KindRecord
	KindInterface
)

// String returns the Java keyword for the kind.
func (k DeclKind) String() string {
	switch k {
	case KindRecord:
		return "record"
	case KindInterface:
		return "interface"
	default:
		return "class"
	}
}

// primitives is the set of Java primitive type names.
var primitives = map[string]bool{
	"boolean": true,
	"byte":    true,
	"char":    true,
	"short":   true,
	"int":     true,
	"long":    true,
	"float":   true,
	"double":  true,
}

// TypeRef is a declared type as written in source, e.g. "String", "int",
// "List<String>". Types are compared by declared name, not resolved identity.
type TypeRef struct {
	Name string
}

// IsPrimitive reports whether the type is a Java primitive.
func (t TypeRef) IsPrimitive() bool {
	return primitives[t.Name]
}

// Component is one record header component. Order in the component list is
// load-bearing: it drives constructor parameter order, equality/hash field
// order and toString field order.
type Component struct {
	Name string
	Type TypeRef
}

// IsPrimitive reports whether the component's declared type is primitive.
func (c Component) IsPrimitive() bool {
	return c.Type.IsPrimitive()
}

// Param is a single declared parameter.
type Param struct {
	Type TypeRef
	Name string
}

// Declaration is a nominal type declaration.
type Declaration struct {
	Annotations []string
	Kind        DeclKind
	Name        string
	TypeParams  []string    // raw type parameter names; non-empty blocks lowering
	Components  []Component // record header; nil once lowered
	Implements  []string    // implemented interface names, declaration order
	Extends     []string    // extended interface names (interface kinds only)
	Modifiers   []string    // "public", "final", ... in source order
	Members     []Member
}

// HasModifier reports whether the declaration carries the given modifier.
func (d *Declaration) HasModifier(mod string) bool {
	for _, m := range d.Modifiers {
		if m == mod {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the declaration. Members are copied so the
// clone can be mutated without the caller observing changes.
func (d *Declaration) Clone() *Declaration {
	out := *d
	out.Annotations = append([]string(nil), d.Annotations...)
	out.TypeParams = append([]string(nil), d.TypeParams...)
	out.Components = append([]Component(nil), d.Components...)
	out.Implements = append([]string(nil), d.Implements...)
	out.Extends = append([]string(nil), d.Extends...)
	out.Modifiers = append([]string(nil), d.Modifiers...)
	out.Members = make([]Member, len(d.Members))
	for i, m := range d.Members {
		out.Members[i] = m.clone()
	}
	return &out
}

// CompilationUnit is one parsed source file.
type CompilationUnit struct {
	Package string   // package name, "" for the default package
	Imports []string // fully qualified imports, source order
	Decls   []*Declaration
}

// HasImport reports whether the unit already imports the given name.
func (u *CompilationUnit) HasImport(name string) bool {
	for _, imp := range u.Imports {
		if imp == name {
			return true
		}
	}
	return false
}

// AddImport appends an import, keeping the list sorted and duplicate-free.
func (u *CompilationUnit) AddImport(name string) {
	if u.HasImport(name) {
		return
	}
	at := len(u.Imports)
	for i, imp := range u.Imports {
		if name < imp {
			at = i
			break
		}
	}
	u.Imports = append(u.Imports, "")
	copy(u.Imports[at+1:], u.Imports[at:])
	u.Imports[at] = name
}
