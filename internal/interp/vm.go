// Package interp is the execution engine: a cursor-based VM that walks
// an ast.Program one column at a time, dispatching each column's built
// node through Runnable.Run or (for a bare value-producing expression)
// through Gettable.Get followed by an Ans update (spec.md §5).
package interp

import (
	"strconv"

	"github.com/tibasic/pb/internal/ast"
	"github.com/tibasic/pb/internal/errors"
	"github.com/tibasic/pb/internal/token"
)

const historySize = 6

type blockFrame struct {
	pos token.Pos
	tok token.Node
}

// VM is the concrete implementation of token.VM: the single piece of
// mutable state every token's Get/Set/Run/Apply method closes over.
type VM struct {
	prog   *ast.Program
	source string
	file   string

	vars  map[string]any
	lists map[string][]float64
	mats  map[string][][]float64

	ans   any
	fixed int // -1 means floating (default); 0-9 is a Fix n setting

	pos    token.Pos
	blocks []blockFrame
	hist   []token.HistEntry

	io token.IO

	// interactive and replLine support REPL error recovery (spec.md §9:
	// "In REPL mode, ParseError and any other exception are caught,
	// reported, and the loop continues"). replLine is the index of the
	// most recently spliced line, so a failing statement can skip
	// straight to the sentinel line appended right after it.
	interactive bool
	replLine    int
	onError     func(error)
}

// New creates a VM over prog, ready to run from line 0.
func New(prog *ast.Program, source, file string, io token.IO) *VM {
	return &VM{
		prog:   prog,
		source: source,
		file:   file,
		vars:   map[string]any{},
		lists:  map[string][]float64{},
		mats:   map[string][][]float64{},
		fixed:  -1,
		io:     io,
	}
}

// EnableREPLRecovery puts the VM in interactive mode: a failing
// statement is reported via onErr instead of aborting Run, and
// execution resumes at the next REPL-spliced line (spec.md §9).
func (vm *VM) EnableREPLRecovery(onErr func(error)) {
	vm.interactive = true
	vm.onError = onErr
}

func (vm *VM) GetVar(name string) (any, error) {
	if v, ok := vm.vars[name]; ok {
		return v, nil
	}
	if len(name) >= 3 && name[:3] == "Str" {
		return "", nil
	}
	return int64(0), nil
}

func (vm *VM) SetVar(name string, value any) error {
	vm.vars[name] = value
	return nil
}

func (vm *VM) ListLen(name string) int { return len(vm.lists[name]) }

func (vm *VM) GetListElem(name string, index int) (float64, error) {
	list := vm.lists[name]
	if index < 1 || index > len(list) {
		return 0, &errors.ExecutionError{Msg: name + "(" + strconv.Itoa(index) + ") is out of range"}
	}
	return list[index-1], nil
}

func (vm *VM) SetListElem(name string, index int, value float64) error {
	if index < 1 {
		return &errors.ExecutionError{Msg: name + "(" + strconv.Itoa(index) + ") is out of range"}
	}
	list := vm.lists[name]
	if index > len(list) {
		grown := make([]float64, index)
		copy(grown, list)
		list = grown
	}
	list[index-1] = value
	vm.lists[name] = list
	return nil
}

func (vm *VM) ResizeList(name string, n int) error {
	if n < 0 {
		return &errors.ExecutionError{Msg: "list size must be non-negative"}
	}
	list := vm.lists[name]
	grown := make([]float64, n)
	copy(grown, list)
	vm.lists[name] = grown
	return nil
}

func (vm *VM) MatrixDims(name string) (rows, cols int) {
	m := vm.mats[name]
	rows = len(m)
	if rows > 0 {
		cols = len(m[0])
	}
	return
}

func (vm *VM) GetMatrixElem(name string, row, col int) (float64, error) {
	m := vm.mats[name]
	if row < 1 || row > len(m) || col < 1 || col > len(m[row-1]) {
		return 0, &errors.ExecutionError{Msg: name + " index out of range"}
	}
	return m[row-1][col-1], nil
}

func (vm *VM) SetMatrixElem(name string, row, col int, value float64) error {
	m := vm.mats[name]
	if row < 1 || row > len(m) || col < 1 || col > len(m[row-1]) {
		return &errors.ExecutionError{Msg: name + " index out of range"}
	}
	m[row-1][col-1] = value
	return nil
}

func (vm *VM) ResizeMatrix(name string, rows, cols int) error {
	if rows < 0 || cols < 0 {
		return &errors.ExecutionError{Msg: "matrix dimensions must be non-negative"}
	}
	out := make([][]float64, rows)
	old := vm.mats[name]
	for r := 0; r < rows; r++ {
		out[r] = make([]float64, cols)
		if r < len(old) {
			copy(out[r], old[r])
		}
	}
	vm.mats[name] = out
	return nil
}

func (vm *VM) Ans() any          { return vm.ans }
func (vm *VM) SetAns(value any)  { vm.ans = value }

func (vm *VM) Pos() token.Pos { return vm.pos }
func (vm *VM) Cur() token.Node {
	return vm.prog.At(vm.pos)
}

// Inc advances to the next column, wrapping to the next line's first
// column when the current line is exhausted, and returns the node now
// under the cursor.
func (vm *VM) Inc() token.Node {
	if vm.pos.Col+1 < vm.prog.RowLen(vm.pos.Line) {
		vm.pos.Col++
	} else {
		vm.pos = token.Pos{Line: vm.pos.Line + 1, Col: 0}
	}
	return vm.Cur()
}

func (vm *VM) Goto(p token.Pos) error {
	vm.pos = p
	return nil
}

func (vm *VM) PeekAt(p token.Pos) token.Node {
	if p.Line < 0 || p.Line >= vm.prog.NumLines() {
		return nil
	}
	return vm.prog.At(p)
}

func (vm *VM) RowLen(line int) int { return vm.prog.RowLen(line) }

func (vm *VM) PushBlock(tok token.Node) {
	vm.blocks = append(vm.blocks, blockFrame{pos: vm.pos, tok: tok})
}

func (vm *VM) PopBlock() (token.Pos, token.Node, error) {
	if len(vm.blocks) == 0 {
		return token.Pos{}, nil, &errors.ExecutionError{Msg: "End with no matching block"}
	}
	top := vm.blocks[len(vm.blocks)-1]
	vm.blocks = vm.blocks[:len(vm.blocks)-1]
	return top.pos, top.tok, nil
}

// FindForward scans every line from the current one to EOF, then (if
// wrap) from line 0 back to the current line, returning the first
// whose leading column's token satisfies match. Used by Goto/label
// resolution, which is always a forward-biased linear search rather
// than a precomputed label table, matching how little bookkeeping the
// calculator itself keeps.
func (vm *VM) FindForward(wrap bool, match func(token.Node) bool) (token.Pos, token.Node, bool) {
	n := vm.prog.NumLines()
	try := func(line int) (token.Pos, token.Node, bool) {
		if vm.prog.RowLen(line) == 0 {
			return token.Pos{}, nil, false
		}
		p := token.Pos{Line: line, Col: 0}
		tok := vm.prog.At(p)
		if match(tok) {
			return p, tok, true
		}
		return token.Pos{}, nil, false
	}
	for line := vm.pos.Line; line < n; line++ {
		if p, tok, ok := try(line); ok {
			return p, tok, true
		}
	}
	if wrap {
		for line := 0; line < vm.pos.Line; line++ {
			if p, tok, ok := try(line); ok {
				return p, tok, true
			}
		}
	}
	return token.Pos{}, nil, false
}

func (vm *VM) Fixed() int      { return vm.fixed }
func (vm *VM) SetFixed(n int)  { vm.fixed = n }

func (vm *VM) PushHistory(p token.Pos, tok token.Node) {
	vm.hist = append(vm.hist, token.HistEntry{Pos: p, Token: tok})
	if len(vm.hist) > historySize {
		vm.hist = vm.hist[len(vm.hist)-historySize:]
	}
}

func (vm *VM) History() []token.HistEntry {
	out := make([]token.HistEntry, len(vm.hist))
	copy(out, vm.hist)
	return out
}

func (vm *VM) IO() token.IO { return vm.io }

func (vm *VM) Stop(msg string) error   { return &errors.StopError{Msg: msg} }
func (vm *VM) Return() error           { return &errors.ReturnError{} }

// Eval resolves n through Get (if Gettable) and applies the final
// numeric projection; a non-Gettable node (a bare statement used as a
// value) yields an ExecutionError.
func (vm *VM) Eval(n token.Node) (any, error) {
	g, ok := n.(token.Gettable)
	if !ok {
		return nil, &errors.ExecutionError{Msg: n.Token() + " does not produce a value"}
	}
	v, err := g.Get(vm)
	if err != nil {
		return nil, err
	}
	return token.Simplify(v), nil
}
