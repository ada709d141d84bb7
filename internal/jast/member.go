package jast

// Member is one body-level member of a declaration: a field, a constructor
// or a method. Members are referenced by pointer identity, which is what
// makes them usable as insertion anchors.
type Member interface {
	clone() Member
	member()
}

// Field is a field declaration.
type Field struct {
	Annotations []string
	Modifiers   []string
	Type        TypeRef
	Name        string
	Init        string // raw initializer expression, "" if none
}

func (f *Field) member() {}

func (f *Field) clone() Member {
	out := *f
	out.Annotations = append([]string(nil), f.Annotations...)
	out.Modifiers = append([]string(nil), f.Modifiers...)
	return &out
}

// IsStatic reports whether the field is type-level.
func (f *Field) IsStatic() bool {
	return hasMod(f.Modifiers, "static")
}

// Constructor is a constructor declaration. A compact constructor (Java's
// record validation form) has IsCompact set and an empty parameter list;
// the lowering gives it an explicit list and clears the tag exactly once.
type Constructor struct {
	Annotations []string
	Modifiers   []string
	Name        string // always the enclosing type's name
	Params      []Param
	Throws      string   // raw throws clause without the keyword, "" if none
	Body        []string // verbatim top-level statements
	IsCompact   bool
}

func (c *Constructor) member() {}

func (c *Constructor) clone() Member {
	out := *c
	out.Annotations = append([]string(nil), c.Annotations...)
	out.Modifiers = append([]string(nil), c.Modifiers...)
	out.Params = append([]Param(nil), c.Params...)
	out.Body = append([]string(nil), c.Body...)
	return &out
}

// Method is a method declaration. Abstract methods (interface members
// without a body) have a nil Body and HasBody false.
type Method struct {
	Annotations []string // "@Override", ... one per entry
	Modifiers   []string
	ReturnType  TypeRef
	Name        string
	Params      []Param
	Throws      string   // raw throws clause without the keyword, "" if none
	Body        []string // verbatim top-level statements
	HasBody     bool
}

func (m *Method) member() {}

func (m *Method) clone() Member {
	out := *m
	out.Annotations = append([]string(nil), m.Annotations...)
	out.Modifiers = append([]string(nil), m.Modifiers...)
	out.Params = append([]Param(nil), m.Params...)
	out.Body = append([]string(nil), m.Body...)
	return &out
}

func hasMod(mods []string, want string) bool {
	for _, m := range mods {
		if m == want {
			return true
		}
	}
	return false
}
