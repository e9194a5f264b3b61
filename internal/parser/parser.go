package parser

import (
	"github.com/tibasic/pb/internal/ast"
	"github.com/tibasic/pb/internal/errors"
	"github.com/tibasic/pb/internal/lexer"
	"github.com/tibasic/pb/internal/token"
)

// BuildProgram splits the lexer's line-at-a-time token stream into
// colon-separated columns, builds each into one executable node, and
// wraps the result in the cursor-addressable grid internal/interp
// walks. A trailing EOF row closes the program.
func BuildProgram(lines [][]token.Node, source []string) (*ast.Program, error) {
	rows := make([][]token.Node, len(lines))
	for i, lineToks := range lines {
		row, err := BuildLine(lineToks)
		if err != nil {
			if pe, ok := err.(*errors.ParseError); ok {
				pe.Pos.Line = i + 1
			}
			return nil, err
		}
		rows[i] = row
	}
	rows = append(rows, []token.Node{token.EOF{}})
	src := append(append([]string(nil), source...), "")
	return ast.NewProgram(rows, src), nil
}

// BuildLine splits one line's raw tokens on ':' and builds each
// resulting column independently, since a colon-separated statement
// never shares structure (brackets, absorbed arguments) with its
// neighbors (spec.md §3).
func BuildLine(lineToks []token.Node) ([]token.Node, error) {
	var row []token.Node
	var col []token.Node

	flush := func() error {
		n, err := BuildColumn(col)
		if err != nil {
			return err
		}
		if n != nil {
			row = append(row, n)
		}
		col = nil
		return nil
	}

	for _, tok := range lineToks {
		if p, ok := tok.(lexer.Punct); ok && p.Ch == ':' {
			if err := flush(); err != nil {
				return nil, err
			}
			continue
		}
		col = append(col, tok)
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return row, nil
}

// BuildColumn builds one colon-separated statement's raw token run
// into a single executable node. A column that opens with a
// LabelTaker (Lbl, Goto) takes the rest of the column's text as its
// label name. A column that opens with an Absorbable token wanting bare
// trailing arguments rather than a parenthesized group (Disp, If,
// While, Prompt, ...) absorbs the rest of the column as one unit;
// anything else is built as an expression.
func BuildColumn(toks []token.Node) (token.Node, error) {
	if len(toks) == 0 {
		return nil, nil
	}
	if lt, ok := toks[0].(token.LabelTaker); ok && len(toks) > 1 {
		var name string
		for _, t := range toks[1:] {
			name += t.Token()
		}
		lt.TakeLabel(name)
		return toks[0], nil
	}
	if abs, ok := toks[0].(token.Absorbable); ok && !ast.WantsArguments(abs) && len(toks) > 1 {
		rest, err := BuildColumn(toks[1:])
		if err != nil {
			return nil, err
		}
		abs.Absorb(rest)
		return toks[0], nil
	}
	return buildExpression(toks)
}

// buildExpression runs the bracket/tuple stack over a flat token run,
// closing each frame against its matching delimiter and resolving
// absorb attachment explicitly at the point a frame closes (spec.md
// §4.2): a just-closed function argument list always absorbs into the
// function token that opened it; a just-closed plain group or literal
// absorbs into whatever Absorbable token precedes it in the enclosing
// frame (a list/matrix index); anything else is a plain append, which
// falls through to Expression.Append's implicit multiplication.
func buildExpression(toks []token.Node) (token.Node, error) {
	stack := []*frame{newRootFrame()}
	top := func() *frame { return stack[len(stack)-1] }

	pushArgFrame := func(forFunc token.Absorbable) {
		stack = append(stack, &frame{expr: ast.NewExpression(), endCh: ')', kind: ast.ArgFunction, forFunc: forFunc})
	}

	for _, tok := range toks {
		p, isPunct := tok.(lexer.Punct)
		if !isPunct {
			top().append(tok)
			if abs, ok := tok.(token.Absorbable); ok && ast.WantsArguments(abs) {
				pushArgFrame(abs)
			}
			continue
		}

		switch p.Ch {
		case '(':
			stack = append(stack, &frame{expr: ast.NewExpression(), endCh: ')', kind: ast.ArgTuple})
		case '{':
			stack = append(stack, &frame{tup: ast.NewTuple('}', ast.ArgList), endCh: '}'})
		case '[':
			stack = append(stack, &frame{tup: ast.NewTuple(']', ast.ArgMatrix), endCh: ']'})
		case ')', '}', ']':
			if len(stack) < 2 || top().endCh != p.Ch {
				return nil, &errors.ParseError{Msg: "unmatched " + string(p.Ch)}
			}
			closing := top()
			stack = stack[:len(stack)-1]
			result, err := closing.flatten()
			if err != nil {
				return nil, err
			}
			if closing.forFunc != nil {
				closing.forFunc.Absorb(result)
				continue
			}
			if last := top().peekLast(); last != nil {
				if abs, ok := last.(token.Absorbable); ok && ast.KindMatches(abs, result) {
					abs.Absorb(result)
					continue
				}
			}
			top().append(result)
		case ',':
			top().comma()
		default:
			return nil, &errors.ParseError{Msg: "unexpected '" + string(p.Ch) + "'"}
		}
	}

	if len(stack) != 1 {
		return nil, &errors.ParseError{Msg: "unterminated bracket"}
	}
	return stack[0].flatten()
}
