// Package lexer turns one line of source text at a time into a flat
// sequence of token.Node values via the catalog's greedy longest-match
// (spec.md §4.1). It never builds structure: brackets, commas, and
// colons come out as Punct markers for internal/parser's tree builder
// to act on.
package lexer

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/tibasic/pb/internal/errors"
	"github.com/tibasic/pb/internal/token"
)

// Punct is a structural delimiter the tree builder switches on to open
// or close a bracket/tuple frame, or to split colon-separated
// statements: one of ( ) { } [ ] , :
type Punct struct{ Ch byte }

func (p Punct) Priority() token.Priority { return token.Invalid }
func (p Punct) Token() string            { return string(p.Ch) }

// Tokenize scans the full source into one token slice per physical
// source line. A colon-separated statement is not split here; it stays
// in the same row as a Punct{':'} marker, and the tree builder divides
// the row into the program's columns (spec.md §3 "Program").
func Tokenize(source string) (lines [][]token.Node, rawLines []string, err error) {
	rawLines = strings.Split(source, "\n")
	lines = make([][]token.Node, len(rawLines))
	for i, raw := range rawLines {
		toks, lerr := tokenizeLine(raw)
		if lerr != nil {
			if pe, ok := lerr.(*errors.ParseError); ok {
				pe.Pos.Line = i + 1
			}
			return nil, nil, lerr
		}
		lines[i] = toks
	}
	return lines, rawLines, nil
}

type lineScanner struct {
	input   string
	pos     int
	readPos int
	ch      rune
	col     int
}

func newLineScanner(line string) *lineScanner {
	s := &lineScanner{input: line}
	s.readChar()
	return s
}

func (s *lineScanner) readChar() {
	if s.readPos >= len(s.input) {
		s.ch = 0
		s.pos = s.readPos
	} else {
		r, size := utf8.DecodeRuneInString(s.input[s.readPos:])
		s.ch = r
		s.pos = s.readPos
		s.readPos += size
	}
	s.col++
}

func (s *lineScanner) peekRune() rune {
	if s.readPos >= len(s.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(s.input[s.readPos:])
	return r
}

func (s *lineScanner) remaining() string { return s.input[s.pos:] }

func tokenizeLine(line string) ([]token.Node, error) {
	s := newLineScanner(line)
	var out []token.Node
	for {
		s.skipSpace()
		if s.ch == 0 {
			break
		}
		switch {
		case s.ch == '"':
			out = append(out, s.scanString())
		case s.ch == '∟' || (s.ch == 'l' && (isDigit(s.peekRune()) || unicode.IsUpper(s.peekRune()))):
			out = append(out, s.scanListName())
		case strings.HasPrefix(s.remaining(), "prgm"):
			out = append(out, s.scanProgramCall())
		case isDigit(s.ch) || (s.ch == '.' && isDigit(s.peekRune())):
			lit, err := s.scanNumber()
			if err != nil {
				return nil, err
			}
			out = append(out, lit)
		default:
			if n, width, ok := token.MatchLongest(s.remaining()); ok {
				out = append(out, n)
				for i := 0; i < width; i++ {
					s.readChar()
				}
				continue
			}
			if strings.ContainsRune("(){}[],:", s.ch) {
				out = append(out, Punct{Ch: byte(s.ch)})
				s.readChar()
				continue
			}
			return nil, &errors.ParseError{
				Msg: "unexpected character " + string(s.ch),
				Pos: errors.Pos{Column: s.col},
			}
		}
	}
	return out, nil
}

func (s *lineScanner) skipSpace() {
	for s.ch == ' ' || s.ch == '\t' || s.ch == '\r' {
		s.readChar()
	}
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isIdentRune(r rune) bool { return unicode.IsLetter(r) || unicode.IsDigit(r) }

// scanNumber reads digits with an optional decimal point. A trailing
// '.' with no following digits is a valid number (e.g. "3."), and a
// leading '.' with no integer part is too (e.g. ".5").
func (s *lineScanner) scanNumber() (token.Node, error) {
	start := s.pos
	hasDigits := false
	for isDigit(s.ch) {
		hasDigits = true
		s.readChar()
	}
	if s.ch == '.' {
		s.readChar()
		for isDigit(s.ch) {
			hasDigits = true
			s.readChar()
		}
	}
	if !hasDigits {
		return nil, &errors.ParseError{Msg: "malformed number", Pos: errors.Pos{Column: s.col}}
	}

	text := s.input[start:s.pos]
	if !strings.Contains(text, ".") {
		if n, err := strconv.ParseInt(text, 10, 64); err == nil {
			return token.NewLiteral(n), nil
		}
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil, &errors.ParseError{Msg: "malformed number " + text, Pos: errors.Pos{Column: s.col}}
	}
	return token.NewLiteral(f), nil
}

// scanString reads a quoted string literal. An unterminated string
// (quote missing before end of line) is accepted, matching the
// calculator's own lenient behavior.
func (s *lineScanner) scanString() token.Node {
	s.readChar() // opening quote
	var sb strings.Builder
	for s.ch != '"' && s.ch != 0 {
		sb.WriteRune(s.ch)
		s.readChar()
	}
	if s.ch == '"' {
		s.readChar()
	}
	return token.NewLiteral(sb.String())
}

// scanListName reads a user-named list reference: ∟ (or a lowercase l
// directly followed by an uppercase letter or digit) followed by one or
// more letters/digits. The fixed L1..L6 lists are catalog entries
// instead (internal/token/collections.go); this path only handles
// user-chosen names, which the catalog cannot enumerate in advance.
func (s *lineScanner) scanListName() token.Node {
	s.readChar() // ∟
	start := s.pos
	for isIdentRune(s.ch) {
		s.readChar()
	}
	return token.NewListVar(s.input[start:s.pos])
}

// scanProgramCall reads prgm<NAME>: the "prgm" prefix is matched
// already, so only the following identifier characters are the
// program's name, the same contiguous-reference shape scanListName
// handles for ∟NAME.
func (s *lineScanner) scanProgramCall() token.Node {
	for range "prgm" {
		s.readChar()
	}
	start := s.pos
	for isIdentRune(s.ch) {
		s.readChar()
	}
	return token.NewProgramCall(s.input[start:s.pos])
}
