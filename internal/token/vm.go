package token

// Pos is a cursor position: a line index and a column index into that
// line's token slice.
type Pos struct {
	Line int
	Col  int
}

// HistEntry is one entry of the VM's execution history ring, used to
// render a truncated trace when a fatal error reaches the driver.
type HistEntry struct {
	Pos   Pos
	Token Node
}

// MenuEntry is one (name, label) pair of a Menu statement.
type MenuEntry struct {
	Name  string
	Label string
}

// IO is the external capability the interpreter core consumes for all
// screen and keyboard interaction. Concrete backends (line-oriented
// "simple", full-screen "vt100") live in internal/ioterm; the core only
// ever depends on this interface, never on a backend directly.
type IO interface {
	Clear()
	Disp(item any)
	Output(row, col int, item any)
	Input(prompt string, isStr bool) (any, error)
	GetKey() int
	Pause(msg string) error
	Menu(title string, entries []MenuEntry) (string, error)
	Close() error
}

// VM is the capability surface concrete tokens need from the execution
// engine: variable/list/matrix storage, cursor movement, the block
// stack, label search, history, and the IO capability. internal/interp
// provides the concrete implementation; this package and
// internal/interp/builtins depend only on this interface, which keeps
// the dependency arrow pointing one way (interp -> token), even though
// tokens are themselves little interpreters of their own subtree.
type VM interface {
	GetVar(name string) (any, error)
	SetVar(name string, value any) error

	ListLen(name string) int
	GetListElem(name string, index int) (float64, error)
	SetListElem(name string, index int, value float64) error
	ResizeList(name string, n int) error

	MatrixDims(name string) (rows, cols int)
	GetMatrixElem(name string, row, col int) (float64, error)
	SetMatrixElem(name string, row, col int, value float64) error
	ResizeMatrix(name string, rows, cols int) error

	Ans() any
	SetAns(value any)

	Pos() Pos
	Cur() Node
	Inc() Node
	Goto(p Pos) error

	// PeekAt returns the node at p without moving the cursor, or nil if
	// p is past the end of the program; used by the block-scanning
	// helpers that locate a matching Else/End ahead of the cursor.
	PeekAt(p Pos) Node
	// RowLen reports how many columns line p has, used alongside PeekAt
	// to step forward one column at a time without a cursor move.
	RowLen(line int) int

	PushBlock(tok Node)
	PopBlock() (Pos, Node, error)

	// FindForward scans lines starting at the current line to EOF, then
	// (if wrap) from line 0 to the current line, returning the first
	// line whose leading token satisfies match.
	FindForward(wrap bool, match func(Node) bool) (Pos, Node, bool)

	Fixed() int
	SetFixed(n int)

	PushHistory(p Pos, tok Node)
	History() []HistEntry

	InvokeProgram(name string) error

	// Eval resolves a Node to a runtime value via Get (for Gettable
	// nodes) and applies the final projection: complex-with-zero-
	// imaginary collapses to real, and float collapses to int when
	// exactly integral.
	Eval(n Node) (any, error)

	IO() IO

	Stop(msg string) error
	Return() error
}
