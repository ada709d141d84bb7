package parser

import (
	"fmt"
)

// tokenKind classifies scanner output.
type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokNumber
	tokString // string or char literal, quotes included
	tokPunct  // single punctuation rune
	tokAnnot  // '@' immediately followed by an identifier, e.g. "@Override"
)

// token is one lexeme. Off/End index into the original source so callers
// can recover verbatim text spans.
type token struct {
	Kind tokenKind
	Text string
	Off  int
	End  int
	Line int
	Col  int
}

// Error is a parse error with a source position.
type Error struct {
	Path    string
	Line    int
	Col     int
	Message string
}

func (e *Error) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s:%d:%d: %s", e.Path, e.Line, e.Col, e.Message)
	}
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Col, e.Message)
}

// lexer scans Java source into tokens, skipping whitespace and comments.
type lexer struct {
	src  string
	path string
	pos  int
	line int
	col  int
}

func newLexer(src, path string) *lexer {
	return &lexer{src: src, path: path, line: 1, col: 1}
}

func (l *lexer) errorf(line, col int, format string, args ...any) *Error {
	return &Error{Path: l.path, Line: line, Col: col, Message: fmt.Sprintf(format, args...)}
}

func (l *lexer) advance() byte {
	c := l.src[l.pos]
	l.pos++
	if c == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return c
}

func (l *lexer) skipSpaceAndComments() error {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			l.advance()
		case c == '/' && l.pos+1 < len(l.src) && l.src[l.pos+1] == '/':
			for l.pos < len(l.src) && l.src[l.pos] != '\n' {
				l.advance()
			}
		case c == '/' && l.pos+1 < len(l.src) && l.src[l.pos+1] == '*':
			line, col := l.line, l.col
			l.advance()
			l.advance()
			closed := false
			for l.pos+1 < len(l.src) {
				if l.src[l.pos] == '*' && l.src[l.pos+1] == '/' {
					l.advance()
					l.advance()
					closed = true
					break
				}
				l.advance()
			}
			if !closed {
				return l.errorf(line, col, "unterminated block comment")
			}
		default:
			return nil
		}
	}
	return nil
}

// next scans the following token. At end of input it returns a tokEOF token.
func (l *lexer) next() (token, error) {
	if err := l.skipSpaceAndComments(); err != nil {
		return token{}, err
	}
	if l.pos >= len(l.src) {
		return token{Kind: tokEOF, Off: l.pos, End: l.pos, Line: l.line, Col: l.col}, nil
	}

	start, line, col := l.pos, l.line, l.col
	c := l.src[l.pos]

	switch {
	case isIdentStart(c):
		for l.pos < len(l.src) && isIdentPart(l.src[l.pos]) {
			l.advance()
		}
		return token{Kind: tokIdent, Text: l.src[start:l.pos], Off: start, End: l.pos, Line: line, Col: col}, nil

	case c >= '0' && c <= '9':
		for l.pos < len(l.src) && (isIdentPart(l.src[l.pos]) || l.src[l.pos] == '.') {
			l.advance()
		}
		return token{Kind: tokNumber, Text: l.src[start:l.pos], Off: start, End: l.pos, Line: line, Col: col}, nil

	case c == '"' || c == '\'':
		quote := c
		l.advance()
		for l.pos < len(l.src) {
			if l.src[l.pos] == '\\' && l.pos+1 < len(l.src) {
				l.advance()
				l.advance()
				continue
			}
			if l.src[l.pos] == quote {
				l.advance()
				return token{Kind: tokString, Text: l.src[start:l.pos], Off: start, End: l.pos, Line: line, Col: col}, nil
			}
			if l.src[l.pos] == '\n' {
				break
			}
			l.advance()
		}
		return token{}, l.errorf(line, col, "unterminated literal")

	case c == '@':
		l.advance()
		if l.pos < len(l.src) && isIdentStart(l.src[l.pos]) {
			for l.pos < len(l.src) && isIdentPart(l.src[l.pos]) {
				l.advance()
			}
			return token{Kind: tokAnnot, Text: l.src[start:l.pos], Off: start, End: l.pos, Line: line, Col: col}, nil
		}
		return token{Kind: tokPunct, Text: "@", Off: start, End: l.pos, Line: line, Col: col}, nil

	default:
		l.advance()
		return token{Kind: tokPunct, Text: string(c), Off: start, End: l.pos, Line: line, Col: col}, nil
	}
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}
