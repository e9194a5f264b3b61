// Package ast holds the tree-builder's output types: Expression (an
// operand/operator sequence awaiting reduction), Tuple (a comma list,
// bracketed or bare), and Program/Line (the cursor-addressable grid the
// executor walks). These types are the concrete Gettable/Absorbable
// nodes that internal/token's capability interfaces describe in the
// abstract.
package ast

import (
	"strings"

	"github.com/tibasic/pb/internal/errors"
	"github.com/tibasic/pb/internal/token"
)

// Expression is an ordered sequence of tokens awaiting reduction: a
// strict operand/operator alternation once filled, folded tightest-
// operator-first down to a single value (spec.md §4.3). A bracketed
// sub-expression (a parenthesized group) is just an Expression with
// EndChar set; the tree builder pops it off its frame stack when the
// matching close bracket arrives.
type Expression struct {
	contents []token.Node
	EndChar  byte
}

// NewExpression starts a bare (unbracketed) expression frame.
func NewExpression() *Expression { return &Expression{} }

// NewBracketed starts an expression frame that closes on end (')', ']').
func NewBracketed(end byte) *Expression { return &Expression{EndChar: end} }

func (e *Expression) Priority() token.Priority { return token.None }

func (e *Expression) Token() string {
	parts := make([]string, len(e.contents))
	for i, n := range e.contents {
		parts[i] = n.Token()
	}
	return strings.Join(parts, " ")
}

// Len reports how many raw nodes have been appended so far; used by the
// tree builder to detect an empty bracketed group.
func (e *Expression) Len() int { return len(e.contents) }

// Flatten collapses a single-content expression down to its sole node,
// mirroring pitybas's expression.Base.flatten: a parenthesized "(A)"
// becomes bare A, so e.g. a function argument of exactly one variable
// absorbs as that variable, not as a wrapping expression.
func (e *Expression) Flatten() token.Node {
	if len(e.contents) == 1 {
		return e.contents[0]
	}
	return e
}

// Append adds n to the expression under construction, applying the two
// tree-building rules from spec.md §4.2 that apply to a bare token
// straight from the lexer: the leading-minus rewrite (a '-' landing in
// an operand slot means negation, not subtraction, so it expands to
// "-1 *") and implicit multiplication between two adjacent operands.
// Absorb attachment is a parser-level decision (internal/parser), made
// only when a just-closed bracket group is appended, never for two
// bare adjacent tokens (which must always be implicit multiplication).
func (e *Expression) Append(n token.Node) {
	if isLeadingMinus(n) {
		last := len(e.contents) - 1
		if last < 0 || e.contents[last].Priority() != token.None {
			e.contents = append(e.contents, token.NewLiteral(int64(-1)), mustOp("*"))
			return
		}
	}

	if len(e.contents) > 0 {
		prev := e.contents[len(e.contents)-1]
		if prev.Priority() == token.None && n.Priority() == token.None {
			e.contents = append(e.contents, mustOp("*"))
		}
	}

	e.contents = append(e.contents, n)
}

// Last returns the most recently appended content, or nil, letting the
// tree builder decide whether a node about to be appended should
// instead be absorbed by what's already here.
func (e *Expression) Last() token.Node {
	if len(e.contents) == 0 {
		return nil
	}
	return e.contents[len(e.contents)-1]
}

// Get runs the reduction pipeline (fill, validate, fold) and resolves
// the final single operand through vm.Eval, matching pitybas's
// expression.Expression.get.
func (e *Expression) Get(vm token.VM) (any, error) {
	filled, err := e.fill()
	if err != nil {
		return nil, err
	}
	if err := validate(filled); err != nil {
		return nil, err
	}
	return e.fold(vm, filled)
}

// fill inserts synthesized operands wherever an operator has no operand
// on one side: a missing left operand (leading prefix operator) or a
// missing right operand (trailing postfix operator, or two operators
// adjacent), per spec.md §4.3 step 1.
func (e *Expression) fill() ([]token.Node, error) {
	if len(e.contents) == 0 {
		return nil, &errors.ExpressionError{Msg: "empty expression"}
	}
	isOperator := func(n token.Node) bool { return n.Priority() != token.None }

	out := make([]token.Node, 0, len(e.contents)*2)
	for i, n := range e.contents {
		if isOperator(n) {
			prevIsOperand := len(out) > 0 && !isOperator(out[len(out)-1])
			if !prevIsOperand {
				lf, ok := n.(token.LeftFiller)
				if !ok {
					return nil, &errors.ExpressionError{Msg: n.Token() + " requires a left operand"}
				}
				out = append(out, lf.FillLeft())
			}
		}
		out = append(out, n)

		isLast := i == len(e.contents)-1
		nextIsOperator := !isLast && isOperator(e.contents[i+1])
		if isOperator(n) && (isLast || nextIsOperator) {
			rf, ok := n.(token.RightFiller)
			if !ok {
				return nil, &errors.ExpressionError{Msg: n.Token() + " requires a right operand"}
			}
			out = append(out, rf.FillRight())
		}
	}
	return out, nil
}

// validate enforces the strict operand/operator alternation spec.md
// §4.3 step 2 requires before folding begins.
func validate(filled []token.Node) error {
	if len(filled) == 0 || len(filled)%2 == 0 {
		return &errors.ExpressionError{Msg: "malformed expression"}
	}
	for i, n := range filled {
		operator := i%2 == 1
		if operator == (n.Priority() == token.None) {
			return &errors.ExpressionError{Msg: "malformed expression near " + n.Token()}
		}
	}
	return nil
}

// fold repeatedly applies the tightest-binding remaining operator
// (lowest Priority value), folding left-to-right on ties, until a
// single operand remains, then resolves it (spec.md §4.3 steps 3-4).
func (e *Expression) fold(vm token.VM, filled []token.Node) (any, error) {
	contents := append([]token.Node(nil), filled...)

	for len(contents) > 1 {
		idx := -1
		best := token.Invalid
		for i := 1; i < len(contents); i += 2 {
			p := contents[i].Priority()
			if idx == -1 || p < best {
				idx, best = i, p
			}
		}
		op, ok := contents[idx].(token.BinaryOp)
		if !ok {
			return nil, &errors.ExpressionError{Msg: "operator cannot be applied: " + contents[idx].Token()}
		}
		result, err := op.Apply(vm, contents[idx-1], contents[idx+1])
		if err != nil {
			return nil, err
		}
		rest := append([]token.Node{token.NewLiteral(result)}, contents[idx+2:]...)
		contents = append(contents[:idx-1], rest...)
	}

	g, ok := contents[0].(token.Gettable)
	if !ok {
		return nil, &errors.ExpressionError{Msg: "expression does not resolve to a value: " + contents[0].Token()}
	}
	return vm.Eval(g)
}

func isLeadingMinus(n token.Node) bool {
	return n.Token() == "-" && n.Priority() == token.AddSub
}

func mustOp(key string) token.Node {
	n, ok := token.New(key)
	if !ok {
		panic("ast: operator " + key + " is not registered")
	}
	return n
}

// KindOf reports the attachment Kind a built node represents, so the
// tree builder can decide whether a preceding Absorbable token's
// Absorbs() list accepts it.
func KindOf(n token.Node) (token.Kind, bool) {
	switch n.(type) {
	case *Expression:
		return token.KindExpression, true
	case *token.Literal:
		return token.KindValue, true
	case *Tuple:
		if n.(*Tuple).Kind == ArgFunction {
			return token.KindArguments, true
		}
		return token.KindTuple, true
	}
	if _, ok := n.(token.VariableNode); ok {
		return token.KindVariable, true
	}
	return 0, false
}

// KindMatches reports whether abs is willing to absorb n.
func KindMatches(abs token.Absorbable, n token.Node) bool {
	kind, ok := KindOf(n)
	if !ok {
		return false
	}
	for _, k := range abs.Absorbs() {
		if k == kind {
			return true
		}
	}
	return false
}

// WantsArguments reports whether abs's argument is a parenthesized
// "(...)" group attached directly to its own catalog token (every
// function, including dim and the control-flow tokens built the same
// way), as opposed to a bare trailing operand or comma list.
func WantsArguments(abs token.Absorbable) bool {
	for _, k := range abs.Absorbs() {
		if k == token.KindArguments {
			return true
		}
	}
	return false
}
