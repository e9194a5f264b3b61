package ast

import (
	"strings"

	"github.com/tibasic/pb/internal/errors"
	"github.com/tibasic/pb/internal/token"
)

// ArgKind distinguishes the four comma-list shapes the tree builder
// produces. They share one implementation because pitybas itself
// unifies them (Arguments extends Tuple and Bracketed; ListExpr and
// MatrixExpr extend Arguments) — only Priority and Get differ.
type ArgKind int

const (
	// ArgTuple is a bare comma list with no enclosing bracket (Disp
	// A,B) or a parenthesized index pair (a matrix's (row,col)). It is
	// never itself a value; it only supplies elements to whatever
	// absorbed it.
	ArgTuple ArgKind = iota
	// ArgFunction is a function call's "(...)" argument list.
	ArgFunction
	// ArgList is a "{...}" literal that evaluates to a []float64.
	ArgList
	// ArgMatrix is a "[[...]...]" literal that evaluates to [][]float64.
	ArgMatrix
)

// Tuple is a comma-separated sequence of elements, each itself a
// flattened sub-expression. The tree builder feeds it raw tokens via
// Append and calls Comma at each ',' to close off the element under
// construction, then Close when the frame's bracket (if any) arrives.
type Tuple struct {
	elems   []token.Node
	pending *Expression
	EndChar byte
	Kind    ArgKind
}

// NewTuple starts a new comma-list frame. end is 0 for a bare tuple.
func NewTuple(end byte, kind ArgKind) *Tuple {
	return &Tuple{pending: NewExpression(), EndChar: end, Kind: kind}
}

func (t *Tuple) Priority() token.Priority {
	if t.Kind == ArgList || t.Kind == ArgMatrix {
		return token.None
	}
	return token.Invalid
}

func (t *Tuple) Token() string {
	parts := make([]string, len(t.elems))
	for i, n := range t.elems {
		parts[i] = n.Token()
	}
	open, close := "(", ")"
	switch t.Kind {
	case ArgList:
		open, close = "{", "}"
	case ArgMatrix:
		open, close = "[", "]"
	}
	return open + strings.Join(parts, ",") + close
}

// Append feeds one raw token into the element currently under
// construction.
func (t *Tuple) Append(n token.Node) { t.pending.Append(n) }

// Pending exposes the in-progress element, so the tree builder can
// check whether anything has been appended since the last comma (an
// empty element between two commas is a parse error).
func (t *Tuple) Pending() *Expression { return t.pending }

// Comma finalizes the element under construction and starts the next.
func (t *Tuple) Comma() {
	t.elems = append(t.elems, t.pending.Flatten())
	t.pending = NewExpression()
}

// Close finalizes the final element once the tuple's closing bracket
// (or, for a bare tuple, line end) is reached.
func (t *Tuple) Close() {
	if t.pending.Len() > 0 {
		t.elems = append(t.elems, t.pending.Flatten())
	}
}

// Elems implements token.TupleLike: the flattened element list, in
// order, for FuncBase.RawArgs, MatrixVar's (row,col) pair, and dim(.
func (t *Tuple) Elems() []token.Node { return t.elems }

// Get resolves ArgList/ArgMatrix literals to their runtime Value; an
// ArgTuple or ArgFunction tuple was only ever meant to be absorbed, not
// evaluated directly, and doing so is a malformed-expression error.
func (t *Tuple) Get(vm token.VM) (any, error) {
	switch t.Kind {
	case ArgList:
		out := make([]float64, len(t.elems))
		for i, el := range t.elems {
			v, err := vm.Eval(el)
			if err != nil {
				return nil, err
			}
			f, ok := token.ToFloat(v)
			if !ok {
				return nil, &errors.ExecutionError{Msg: "list element must be numeric"}
			}
			out[i] = f
		}
		return out, nil
	case ArgMatrix:
		out := make([][]float64, len(t.elems))
		for i, el := range t.elems {
			v, err := vm.Eval(el)
			if err != nil {
				return nil, err
			}
			row, ok := v.([]float64)
			if !ok {
				return nil, &errors.ExecutionError{Msg: "matrix row must be a list"}
			}
			out[i] = row
		}
		return out, nil
	default:
		return nil, &errors.ExpressionError{Msg: "tuple cannot be used as a value: " + t.Token()}
	}
}
