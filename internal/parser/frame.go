// Package parser is the tree builder: it turns the lexer's flat,
// line-at-a-time token stream into the cursor-addressable ast.Program
// the executor walks, applying the bracket/tuple stack discipline and
// absorb attachment described in spec.md §4.1-§4.2.
package parser

import (
	"github.com/tibasic/pb/internal/ast"
	"github.com/tibasic/pb/internal/errors"
	"github.com/tibasic/pb/internal/token"
)

// frame is one level of the builder's open-bracket stack: either a
// plain expression (default, until a comma forces promotion) or,
// once promoted, a comma-separated Tuple. forFunc is set when this
// frame exists solely to collect a function token's own "(...)"
// argument list (the function's catalog key already consumed its
// opening paren, so the builder pushes this frame proactively rather
// than reacting to a '(' marker).
type frame struct {
	expr    *ast.Expression
	tup     *ast.Tuple
	endCh   byte
	kind    ast.ArgKind
	forFunc token.Absorbable
}

func newRootFrame() *frame {
	return &frame{expr: ast.NewExpression(), kind: ast.ArgTuple}
}

func (f *frame) peekLast() token.Node {
	if f.tup != nil {
		return f.tup.Pending().Last()
	}
	return f.expr.Last()
}

func (f *frame) append(n token.Node) {
	if f.tup != nil {
		f.tup.Append(n)
		return
	}
	f.expr.Append(n)
}

// comma promotes a still-bare expression frame to a Tuple the first
// time a comma is seen in it, seeding the tuple's first element with
// whatever had already accumulated.
func (f *frame) comma() {
	if f.tup != nil {
		f.tup.Comma()
		return
	}
	first := f.expr.Flatten()
	f.tup = ast.NewTuple(f.endCh, f.kind)
	f.tup.Append(first)
	f.tup.Comma()
	f.expr = nil
}

func (f *frame) flatten() (token.Node, error) {
	if f.tup != nil {
		f.tup.Close()
		return f.tup, nil
	}
	if f.expr.Len() == 0 {
		return nil, &errors.ParseError{Msg: "empty expression"}
	}
	return f.expr.Flatten(), nil
}
