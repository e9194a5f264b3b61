package token

import (
	"strconv"

	"github.com/tibasic/pb/internal/errors"
)

// ListVar is a reference to a named list (∟NAME or lNAME, spec.md
// §4.5). With no absorbed index it gets/sets the whole list; with an
// absorbed parenthesized index expression it gets/sets a single
// 1-based element.
type ListVar struct {
	Name  string
	index Node
}

func NewListVar(name string) *ListVar { return &ListVar{Name: name} }

func (l *ListVar) Priority() Priority { return None }
func (l *ListVar) Token() string      { return "∟" + l.Name }
func (l *ListVar) Absorbs() []Kind    { return []Kind{KindExpression, KindValue, KindVariable} }
func (l *ListVar) Absorb(n Node)      { l.index = n }
func (l *ListVar) Arg() Node          { return l.index }

func (l *ListVar) Get(vm VM) (any, error) {
	if l.index == nil {
		n := vm.ListLen(l.Name)
		out := make([]float64, n)
		for i := 0; i < n; i++ {
			out[i], _ = vm.GetListElem(l.Name, i+1)
		}
		return out, nil
	}
	iv, err := vm.Eval(l.index)
	if err != nil {
		return nil, err
	}
	idx, ok := ToFloat(iv)
	if !ok {
		return nil, &errors.ExecutionError{Msg: "list index must be numeric"}
	}
	return vm.GetListElem(l.Name, int(idx))
}

func (l *ListVar) Set(vm VM, value any) error {
	if l.index == nil {
		list, ok := value.([]float64)
		if !ok {
			return &errors.ExecutionError{Msg: "cannot store non-list value into " + l.Token()}
		}
		if err := vm.ResizeList(l.Name, len(list)); err != nil {
			return err
		}
		for i, f := range list {
			if err := vm.SetListElem(l.Name, i+1, f); err != nil {
				return err
			}
		}
		return nil
	}
	iv, err := vm.Eval(l.index)
	if err != nil {
		return err
	}
	idx, ok := ToFloat(iv)
	if !ok {
		return &errors.ExecutionError{Msg: "list index must be numeric"}
	}
	f, ok := ToFloat(value)
	if !ok {
		return &errors.ExecutionError{Msg: "cannot store non-numeric value into list element"}
	}
	return vm.SetListElem(l.Name, int(idx), f)
}

// MatrixVar is a reference to a named matrix ([NAME], spec.md §4.5).
// With no absorbed index it gets/sets the whole matrix; with an
// absorbed (row,col) pair it gets/sets a single 1-based element.
type MatrixVar struct {
	Name  string
	index Node
}

func NewMatrixVar(name string) *MatrixVar { return &MatrixVar{Name: name} }

func (m *MatrixVar) Priority() Priority { return None }
func (m *MatrixVar) Token() string      { return "[" + m.Name + "]" }
func (m *MatrixVar) Absorbs() []Kind    { return []Kind{KindExpression, KindTuple} }
func (m *MatrixVar) Absorb(n Node)      { m.index = n }
func (m *MatrixVar) Arg() Node          { return m.index }

func (m *MatrixVar) rowCol(vm VM) (int, int, error) {
	tl, ok := m.index.(TupleLike)
	if !ok {
		return 0, 0, &errors.ExecutionError{Msg: m.Token() + " requires a (row,col) index"}
	}
	elems := tl.Elems()
	if len(elems) != 2 {
		return 0, 0, &errors.ExecutionError{Msg: m.Token() + " requires exactly two indices"}
	}
	rv, err := vm.Eval(elems[0])
	if err != nil {
		return 0, 0, err
	}
	cv, err := vm.Eval(elems[1])
	if err != nil {
		return 0, 0, err
	}
	rf, ok1 := ToFloat(rv)
	cf, ok2 := ToFloat(cv)
	if !ok1 || !ok2 {
		return 0, 0, &errors.ExecutionError{Msg: "matrix index must be numeric"}
	}
	return int(rf), int(cf), nil
}

func (m *MatrixVar) Get(vm VM) (any, error) {
	if m.index == nil {
		rows, cols := vm.MatrixDims(m.Name)
		out := make([][]float64, rows)
		for r := 0; r < rows; r++ {
			out[r] = make([]float64, cols)
			for c := 0; c < cols; c++ {
				out[r][c], _ = vm.GetMatrixElem(m.Name, r+1, c+1)
			}
		}
		return out, nil
	}
	r, c, err := m.rowCol(vm)
	if err != nil {
		return nil, err
	}
	return vm.GetMatrixElem(m.Name, r, c)
}

func (m *MatrixVar) Set(vm VM, value any) error {
	if m.index == nil {
		mat, ok := value.([][]float64)
		if !ok {
			return &errors.ExecutionError{Msg: "cannot store non-matrix value into " + m.Token()}
		}
		rows := len(mat)
		cols := 0
		if rows > 0 {
			cols = len(mat[0])
		}
		if err := vm.ResizeMatrix(m.Name, rows, cols); err != nil {
			return err
		}
		for r, row := range mat {
			for c, f := range row {
				if err := vm.SetMatrixElem(m.Name, r+1, c+1, f); err != nil {
					return err
				}
			}
		}
		return nil
	}
	r, c, err := m.rowCol(vm)
	if err != nil {
		return err
	}
	f, ok := ToFloat(value)
	if !ok {
		return &errors.ExecutionError{Msg: "cannot store non-numeric value into matrix element"}
	}
	return vm.SetMatrixElem(m.Name, r, c, f)
}

// Dim implements dim(list) / dim(matrix), both as a getter (returns
// length, or [rows, cols]) and, via in-expression store, as a resize:
// dim(list)→n zero-fills or truncates; dim(matrix)→{r,c} reshapes.
type Dim struct {
	FuncBase
}

func NewDim() Node { return &Dim{FuncBase: FuncBase{Name: "dim"}} }

func (d *Dim) Get(vm VM) (any, error) {
	raw := d.RawArgs()
	if len(raw) != 1 {
		return nil, &errors.ExecutionError{Msg: "dim( expects exactly one argument"}
	}
	switch ref := raw[0].(type) {
	case *ListVar:
		return int64(vm.ListLen(ref.Name)), nil
	case *MatrixVar:
		rows, cols := vm.MatrixDims(ref.Name)
		return []float64{float64(rows), float64(cols)}, nil
	default:
		return nil, &errors.ExecutionError{Msg: "dim( expects a list or matrix reference"}
	}
}

func (d *Dim) Set(vm VM, value any) error {
	raw := d.RawArgs()
	if len(raw) != 1 {
		return &errors.ExecutionError{Msg: "dim( expects exactly one argument"}
	}
	switch ref := raw[0].(type) {
	case *ListVar:
		n, ok := ToFloat(value)
		if !ok {
			return &errors.ExecutionError{Msg: "dim(list)→n requires a numeric size"}
		}
		return vm.ResizeList(ref.Name, int(n))
	case *MatrixVar:
		dims, ok := value.([]float64)
		if !ok || len(dims) != 2 {
			return &errors.ExecutionError{Msg: "dim(matrix)→{rows,cols} requires a 2-element list"}
		}
		return vm.ResizeMatrix(ref.Name, int(dims[0]), int(dims[1]))
	default:
		return &errors.ExecutionError{Msg: "dim( expects a list or matrix reference"}
	}
}

func init() {
	RegisterFunction("dim", NewDim)

	// Matrices are a fixed named set, [A] through [J]; the bracket and
	// letter together form one token, so the catalog key carries both.
	for r := 'A'; r <= 'J'; r++ {
		name := string(r)
		key := "[" + name + "]"
		RegisterVariable(key, func() Factory {
			n := name
			return func() Node { return NewMatrixVar(n) }
		}())
	}

	// Built-in lists are a fixed named set, L1 through L6; a user
	// program can also name its own lists with a leading ∟, which the
	// lexer recognizes directly rather than through the catalog.
	for i := 1; i <= 6; i++ {
		name := "L" + strconv.Itoa(i)
		RegisterVariable(name, func() Factory {
			n := name
			return func() Node { return NewListVar(n) }
		}())
	}
}
