package token

// TupleLike is implemented by the tree builder's Tuple/Arguments nodes
// (internal/ast), letting this package and internal/interp/builtins
// walk a function's argument list without importing internal/ast,
// which would create an import cycle (ast already imports token).
type TupleLike interface {
	Node
	Elems() []Node
}

// FuncBase is embedded by every function-token implementation (sqrt,
// sin, nPr, dim, For, ...). It stores the Arguments absorbed by the
// tree builder (spec.md §4.2: "Function absorbs Arguments") and offers
// both an evaluated and a raw view of the argument list.
type FuncBase struct {
	Name string
	arg  Node
}

func (f *FuncBase) Priority() Priority { return None }
func (f *FuncBase) Token() string      { return f.Name }
func (f *FuncBase) Absorbs() []Kind    { return []Kind{KindArguments} }
func (f *FuncBase) Absorb(n Node)      { f.arg = n }
func (f *FuncBase) Arg() Node          { return f.arg }

// RawArgs returns the unevaluated argument nodes, positionally. Needed
// by functions whose arguments include an assignment target (For's
// loop variable, dim's list/matrix reference).
func (f *FuncBase) RawArgs() []Node {
	if f.arg == nil {
		return nil
	}
	if tl, ok := f.arg.(TupleLike); ok {
		return tl.Elems()
	}
	return []Node{f.arg}
}

// Args evaluates every argument node through vm.Eval and returns the
// resulting values, positionally.
func (f *FuncBase) Args(vm VM) ([]any, error) {
	raw := f.RawArgs()
	out := make([]any, len(raw))
	for i, n := range raw {
		v, err := vm.Eval(n)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
