// Package printer renders a compilation unit back to Java source with
// deterministic layout: 4-space indentation, one blank line between members,
// and verbatim member bodies re-indented to their nesting level.
package printer

import (
	"strings"

	"github.com/derecord/derecord/internal/jast"
)

const indent = "    "

// Print renders the unit as source text. Output is deterministic: the same
// tree always prints to identical bytes.
func Print(unit *jast.CompilationUnit) string {
	var sb strings.Builder

	if unit.Package != "" {
		sb.WriteString("package " + unit.Package + ";\n\n")
	}
	if len(unit.Imports) > 0 {
		for _, imp := range unit.Imports {
			sb.WriteString("import " + imp + ";\n")
		}
		sb.WriteString("\n")
	}
	for i, decl := range unit.Decls {
		if i > 0 {
			sb.WriteString("\n")
		}
		printDeclaration(&sb, decl)
	}
	return sb.String()
}

func printDeclaration(sb *strings.Builder, decl *jast.Declaration) {
	for _, a := range decl.Annotations {
		sb.WriteString(a + "\n")
	}

	var header []string
	header = append(header, decl.Modifiers...)
	header = append(header, decl.Kind.String())

	name := decl.Name
	if len(decl.TypeParams) > 0 {
		name += "<" + strings.Join(decl.TypeParams, ", ") + ">"
	}
	if decl.Kind == jast.KindRecord {
		name += "(" + joinParams(componentParams(decl.Components)) + ")"
	}
	header = append(header, name)

	if len(decl.Extends) > 0 {
		header = append(header, "extends", strings.Join(decl.Extends, ", "))
	}
	if len(decl.Implements) > 0 {
		header = append(header, "implements", strings.Join(decl.Implements, ", "))
	}

	sb.WriteString(strings.Join(header, " ") + " {\n")
	for i, m := range decl.Members {
		if i > 0 {
			sb.WriteString("\n")
		}
		printMember(sb, m, decl)
	}
	sb.WriteString("}\n")
}

func printMember(sb *strings.Builder, member jast.Member, decl *jast.Declaration) {
	switch m := member.(type) {
	case *jast.Field:
		for _, a := range m.Annotations {
			sb.WriteString(indent + a + "\n")
		}
		line := indent + joinWords(m.Modifiers, m.Type.Name, m.Name)
		if m.Init != "" {
			line += " = " + m.Init
		}
		sb.WriteString(line + ";\n")

	case *jast.Constructor:
		for _, a := range m.Annotations {
			sb.WriteString(indent + a + "\n")
		}
		head := indent + joinWords(m.Modifiers, m.Name)
		if !m.IsCompact {
			head += "(" + joinParams(m.Params) + ")"
		}
		if m.Throws != "" {
			head += " throws " + m.Throws
		}
		sb.WriteString(head + " {\n")
		printBody(sb, m.Body)
		sb.WriteString(indent + "}\n")

	case *jast.Method:
		for _, a := range m.Annotations {
			sb.WriteString(indent + a + "\n")
		}
		head := indent + joinWords(m.Modifiers, m.ReturnType.Name, m.Name)
		head += "(" + joinParams(m.Params) + ")"
		if m.Throws != "" {
			head += " throws " + m.Throws
		}
		if !m.HasBody {
			sb.WriteString(head + ";\n")
			return
		}
		sb.WriteString(head + " {\n")
		printBody(sb, m.Body)
		sb.WriteString(indent + "}\n")
	}
}

// printBody writes verbatim statements at body depth. Statements that span
// lines keep their internal line structure; each line is re-anchored to the
// body indent with its original relative indentation stripped.
func printBody(sb *strings.Builder, stmts []string) {
	for _, stmt := range stmts {
		lines := strings.Split(stmt, "\n")

		// Common leading whitespace of the continuation lines; stripping it
		// re-anchors the statement while keeping its internal nesting.
		base := -1
		for _, line := range lines[1:] {
			trimmed := strings.TrimLeft(line, " \t")
			if trimmed == "" {
				continue
			}
			lead := len(line) - len(trimmed)
			if base < 0 || lead < base {
				base = lead
			}
		}

		for i, line := range lines {
			if i == 0 {
				sb.WriteString(indent + indent + strings.TrimSpace(line) + "\n")
				continue
			}
			if strings.TrimLeft(line, " \t") == "" {
				sb.WriteString("\n")
				continue
			}
			sb.WriteString(indent + indent + line[base:] + "\n")
		}
	}
}

func joinWords(mods []string, rest ...string) string {
	words := append(append([]string{}, mods...), rest...)
	var nonEmpty []string
	for _, w := range words {
		if w != "" {
			nonEmpty = append(nonEmpty, w)
		}
	}
	return strings.Join(nonEmpty, " ")
}

func joinParams(params []jast.Param) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.Type.Name + " " + p.Name
	}
	return strings.Join(parts, ", ")
}

func componentParams(comps []jast.Component) []jast.Param {
	params := make([]jast.Param, len(comps))
	for i, c := range comps {
		params[i] = jast.Param{Type: c.Type, Name: c.Name}
	}
	return params
}
