package parser

import (
	"strings"

	"github.com/derecord/derecord/internal/jast"
)

// modifiers the subset accepts on declarations and members.
var modifierWords = map[string]bool{
	"public":    true,
	"protected": true,
	"private":   true,
	"static":    true,
	"final":     true,
	"abstract":  true,
	"default":   true,
	"sealed":    true,
	"transient": true,
	"volatile":  true,
	"native":    true,
}

// Parse reads one source file into a compilation unit. The path is used for
// error positions only.
func Parse(src, path string) (*jast.CompilationUnit, error) {
	p := &parser{lex: newLexer(src, path), src: src}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p.parseUnit()
}

type parser struct {
	lex *lexer
	src string
	cur token
}

func (p *parser) advance() error {
	tok, err := p.lex.next()
	if err != nil {
		return err
	}
	p.cur = tok
	return nil
}

func (p *parser) errorf(format string, args ...any) *Error {
	return p.lex.errorf(p.cur.Line, p.cur.Col, format, args...)
}

func (p *parser) isPunct(s string) bool {
	return p.cur.Kind == tokPunct && p.cur.Text == s
}

func (p *parser) isIdent(s string) bool {
	return p.cur.Kind == tokIdent && p.cur.Text == s
}

func (p *parser) expectPunct(s string) error {
	if !p.isPunct(s) {
		return p.errorf("expected %q, found %q", s, p.cur.Text)
	}
	return p.advance()
}

func (p *parser) expectIdent() (string, error) {
	if p.cur.Kind != tokIdent {
		return "", p.errorf("expected identifier, found %q", p.cur.Text)
	}
	name := p.cur.Text
	return name, p.advance()
}

func (p *parser) parseUnit() (*jast.CompilationUnit, error) {
	unit := &jast.CompilationUnit{}

	if p.isIdent("package") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		name, err := p.parseQualifiedName()
		if err != nil {
			return nil, err
		}
		unit.Package = name
		if err := p.expectPunct(";"); err != nil {
			return nil, err
		}
	}

	for p.isIdent("import") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		name, err := p.parseQualifiedName()
		if err != nil {
			return nil, err
		}
		unit.Imports = append(unit.Imports, name)
		if err := p.expectPunct(";"); err != nil {
			return nil, err
		}
	}

	for p.cur.Kind != tokEOF {
		decl, err := p.parseDeclaration()
		if err != nil {
			return nil, err
		}
		unit.Decls = append(unit.Decls, decl)
	}
	return unit, nil
}

// parseQualifiedName reads Ident { '.' Ident } with an optional trailing
// '.*' (import wildcards).
func (p *parser) parseQualifiedName() (string, error) {
	var sb strings.Builder
	name, err := p.expectIdent()
	if err != nil {
		return "", err
	}
	sb.WriteString(name)
	for p.isPunct(".") {
		if err := p.advance(); err != nil {
			return "", err
		}
		if p.isPunct("*") {
			sb.WriteString(".*")
			return sb.String(), p.advance()
		}
		part, err := p.expectIdent()
		if err != nil {
			return "", err
		}
		sb.WriteString(".")
		sb.WriteString(part)
	}
	return sb.String(), nil
}

func (p *parser) parseDeclaration() (*jast.Declaration, error) {
	decl := &jast.Declaration{}

	var err error
	decl.Annotations, err = p.parseAnnotations()
	if err != nil {
		return nil, err
	}
	decl.Modifiers, err = p.parseModifiers()
	if err != nil {
		return nil, err
	}

	switch {
	case p.isIdent("class"):
		decl.Kind = jast.KindClass
	case p.isIdent("interface"):
		decl.Kind = jast.KindInterface
	case p.isIdent("record"):
		decl.Kind = jast.KindRecord
	default:
		return nil, p.errorf("expected class, interface or record, found %q", p.cur.Text)
	}
	if err := p.advance(); err != nil {
		return nil, err
	}

	if decl.Name, err = p.expectIdent(); err != nil {
		return nil, err
	}

	if p.isPunct("<") {
		if decl.TypeParams, err = p.parseTypeParams(); err != nil {
			return nil, err
		}
	}

	if decl.Kind == jast.KindRecord {
		if decl.Components, err = p.parseComponents(); err != nil {
			return nil, err
		}
	}

	if p.isIdent("extends") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		if decl.Extends, err = p.parseTypeNameList(); err != nil {
			return nil, err
		}
	}
	if p.isIdent("implements") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		if decl.Implements, err = p.parseTypeNameList(); err != nil {
			return nil, err
		}
	}

	if err := p.expectPunct("{"); err != nil {
		return nil, err
	}
	for !p.isPunct("}") {
		if p.cur.Kind == tokEOF {
			return nil, p.errorf("unexpected end of input in %s body", decl.Name)
		}
		member, err := p.parseMember(decl)
		if err != nil {
			return nil, err
		}
		decl.Members = append(decl.Members, member)
	}
	return decl, p.advance()
}

// parseTypeParams captures '<...>' and splits the top-level comma list.
func (p *parser) parseTypeParams() ([]string, error) {
	raw, err := p.captureBalanced("<", ">")
	if err != nil {
		return nil, err
	}
	inner := strings.TrimSpace(raw[1 : len(raw)-1])
	var params []string
	depth := 0
	start := 0
	for i := 0; i < len(inner); i++ {
		switch inner[i] {
		case '<':
			depth++
		case '>':
			depth--
		case ',':
			if depth == 0 {
				params = append(params, strings.TrimSpace(inner[start:i]))
				start = i + 1
			}
		}
	}
	if part := strings.TrimSpace(inner[start:]); part != "" {
		params = append(params, part)
	}
	return params, nil
}

// parseComponents reads the record header parameter list.
func (p *parser) parseComponents() ([]jast.Component, error) {
	if err := p.expectPunct("("); err != nil {
		return nil, err
	}
	var comps []jast.Component
	for !p.isPunct(")") {
		typ, err := p.parseTypeRef()
		if err != nil {
			return nil, err
		}
		name, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		comps = append(comps, jast.Component{Name: name, Type: typ})
		if p.isPunct(",") {
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
	}
	return comps, p.advance()
}

func (p *parser) parseTypeNameList() ([]string, error) {
	var names []string
	for {
		typ, err := p.parseTypeRef()
		if err != nil {
			return nil, err
		}
		names = append(names, typ.Name)
		if !p.isPunct(",") {
			return names, nil
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
}

// parseTypeRef reads a type: qualified name, optional type arguments,
// optional array suffixes. The declared spelling is preserved.
func (p *parser) parseTypeRef() (jast.TypeRef, error) {
	var sb strings.Builder
	name, err := p.expectIdent()
	if err != nil {
		return jast.TypeRef{}, err
	}
	sb.WriteString(name)
	for p.isPunct(".") {
		if err := p.advance(); err != nil {
			return jast.TypeRef{}, err
		}
		part, err := p.expectIdent()
		if err != nil {
			return jast.TypeRef{}, err
		}
		sb.WriteString(".")
		sb.WriteString(part)
	}
	if p.isPunct("<") {
		raw, err := p.captureBalanced("<", ">")
		if err != nil {
			return jast.TypeRef{}, err
		}
		sb.WriteString(raw)
	}
	for p.isPunct("[") {
		if err := p.advance(); err != nil {
			return jast.TypeRef{}, err
		}
		if err := p.expectPunct("]"); err != nil {
			return jast.TypeRef{}, err
		}
		sb.WriteString("[]")
	}
	return jast.TypeRef{Name: sb.String()}, nil
}

// captureBalanced captures a balanced open...close span verbatim, starting
// at the current token (which must be the opener). Delimiters are counted at
// the token level, so literals containing them are safe.
func (p *parser) captureBalanced(open, close string) (string, error) {
	if !p.isPunct(open) {
		return "", p.errorf("expected %q, found %q", open, p.cur.Text)
	}
	start := p.cur.Off
	depth := 0
	for {
		if p.cur.Kind == tokEOF {
			return "", p.errorf("unterminated %q", open)
		}
		if p.cur.Kind == tokPunct {
			switch p.cur.Text {
			case open:
				depth++
			case close:
				depth--
				if depth == 0 {
					end := p.cur.End
					return p.src[start:end], p.advance()
				}
			}
		}
		if err := p.advance(); err != nil {
			return "", err
		}
	}
}

// parseAnnotations reads leading annotations, keeping any argument list
// verbatim.
func (p *parser) parseAnnotations() ([]string, error) {
	var annots []string
	for p.cur.Kind == tokAnnot {
		annot := p.cur.Text
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.isPunct("(") {
			raw, err := p.captureBalanced("(", ")")
			if err != nil {
				return nil, err
			}
			annot += raw
		}
		annots = append(annots, annot)
	}
	return annots, nil
}

func (p *parser) parseModifiers() ([]string, error) {
	var mods []string
	for p.cur.Kind == tokIdent && modifierWords[p.cur.Text] {
		mods = append(mods, p.cur.Text)
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	return mods, nil
}

// parseMember reads one body member of the enclosing declaration.
func (p *parser) parseMember(decl *jast.Declaration) (jast.Member, error) {
	annots, err := p.parseAnnotations()
	if err != nil {
		return nil, err
	}
	mods, err := p.parseModifiers()
	if err != nil {
		return nil, err
	}

	typ, err := p.parseTypeRef()
	if err != nil {
		return nil, err
	}

	// A member that opens with the enclosing type's name and goes straight
	// to '(' or '{' is a constructor; '{' means the compact form.
	if typ.Name == decl.Name {
		if p.isPunct("(") {
			return p.parseConstructor(annots, mods, decl.Name, false)
		}
		if p.isPunct("{") {
			return p.parseConstructor(annots, mods, decl.Name, true)
		}
	}

	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}

	if p.isPunct("(") {
		return p.parseMethod(annots, mods, typ, name)
	}
	return p.parseField(annots, mods, typ, name)
}

func (p *parser) parseConstructor(annots, mods []string, name string, compact bool) (jast.Member, error) {
	ctor := &jast.Constructor{
		Annotations: annots,
		Modifiers:   mods,
		Name:        name,
		IsCompact:   compact,
	}
	var err error
	if !compact {
		if ctor.Params, err = p.parseParams(); err != nil {
			return nil, err
		}
		if ctor.Throws, err = p.parseThrows(); err != nil {
			return nil, err
		}
	}
	if ctor.Body, err = p.parseBody(); err != nil {
		return nil, err
	}
	return ctor, nil
}

func (p *parser) parseMethod(annots, mods []string, ret jast.TypeRef, name string) (jast.Member, error) {
	method := &jast.Method{
		Annotations: annots,
		Modifiers:   mods,
		ReturnType:  ret,
		Name:        name,
	}
	var err error
	if method.Params, err = p.parseParams(); err != nil {
		return nil, err
	}
	if method.Throws, err = p.parseThrows(); err != nil {
		return nil, err
	}
	if p.isPunct(";") {
		return method, p.advance()
	}
	method.HasBody = true
	if method.Body, err = p.parseBody(); err != nil {
		return nil, err
	}
	return method, nil
}

func (p *parser) parseField(annots, mods []string, typ jast.TypeRef, name string) (jast.Member, error) {
	field := &jast.Field{Annotations: annots, Modifiers: mods, Type: typ, Name: name}
	if p.isPunct(",") {
		return nil, p.errorf("multiple declarators in one field declaration are not supported")
	}
	if p.isPunct("=") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		start := p.cur.Off
		end := start
		depth := 0
		for {
			if p.cur.Kind == tokEOF {
				return nil, p.errorf("unexpected end of input in field initializer")
			}
			if p.cur.Kind == tokPunct {
				switch p.cur.Text {
				case "{", "(", "[":
					depth++
				case "}", ")", "]":
					depth--
				case ";":
					if depth == 0 {
						field.Init = strings.TrimSpace(p.src[start:end])
						return field, p.advance()
					}
				}
			}
			end = p.cur.End
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
	}
	if err := p.expectPunct(";"); err != nil {
		return nil, err
	}
	return field, nil
}

func (p *parser) parseParams() ([]jast.Param, error) {
	if err := p.expectPunct("("); err != nil {
		return nil, err
	}
	var params []jast.Param
	for !p.isPunct(")") {
		typ, err := p.parseTypeRef()
		if err != nil {
			return nil, err
		}
		name, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		params = append(params, jast.Param{Type: typ, Name: name})
		if p.isPunct(",") {
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
	}
	return params, p.advance()
}

func (p *parser) parseThrows() (string, error) {
	if !p.isIdent("throws") {
		return "", nil
	}
	if err := p.advance(); err != nil {
		return "", err
	}
	names, err := p.parseTypeNameList()
	if err != nil {
		return "", err
	}
	return strings.Join(names, ", "), nil
}

// parseBody reads a '{...}' block, capturing each top-level statement
// verbatim from the source.
func (p *parser) parseBody() ([]string, error) {
	if err := p.expectPunct("{"); err != nil {
		return nil, err
	}
	var stmts []string
	for !p.isPunct("}") {
		if p.cur.Kind == tokEOF {
			return nil, p.errorf("unexpected end of input in body")
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	return stmts, p.advance()
}

// parseStatement captures one statement's verbatim text. A statement ends at
// a ';' outside any braces, or at the close of a top-level block. A block
// close does not end the statement when else/catch/finally follows, when the
// statement began with do (its while clause is still pending), or when a ';'
// follows directly (brace initializers such as int[] a = {1, 2};).
func (p *parser) parseStatement() (string, error) {
	start := p.cur.Off
	end := start
	isDo := p.isIdent("do")
	depth := 0  // brace nesting
	parens := 0 // paren/bracket nesting; ';' and '}' inside it never terminate
	for {
		if p.cur.Kind == tokEOF {
			return "", p.errorf("unexpected end of input in statement")
		}
		if p.cur.Kind == tokPunct {
			switch p.cur.Text {
			case "(", "[":
				parens++
			case ")", "]":
				parens--
			case "{":
				depth++
			case "}":
				if depth == 0 {
					return "", p.errorf("unexpected %q in statement", "}")
				}
				depth--
				if depth == 0 && parens == 0 {
					end = p.cur.End
					if err := p.advance(); err != nil {
						return "", err
					}
					if p.isIdent("else") || p.isIdent("catch") || p.isIdent("finally") || p.isPunct(";") || isDo {
						continue
					}
					return strings.TrimSpace(p.src[start:end]), nil
				}
			case ";":
				if depth == 0 && parens == 0 {
					end = p.cur.End
					if err := p.advance(); err != nil {
						return "", err
					}
					return strings.TrimSpace(p.src[start:end]), nil
				}
			}
		}
		end = p.cur.End
		if err := p.advance(); err != nil {
			return "", err
		}
	}
}
