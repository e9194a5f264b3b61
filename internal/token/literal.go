package token

import "github.com/tibasic/pb/internal/errors"

// Literal wraps an already-computed runtime value so it can stand in
// as an operand Node, exactly as pitybas's tokens.Value does: the
// expression reducer replaces a folded operator triple with a single
// Literal carrying the result.
type Literal struct {
	Value any
}

func NewLiteral(v any) *Literal { return &Literal{Value: v} }

func (l *Literal) Priority() Priority  { return None }
func (l *Literal) Token() string       { return FormatValue(l.Value) }
func (l *Literal) Get(VM) (any, error) { return l.Value, nil }
func (l *Literal) Set(VM, any) error   { return &errors.InvalidOperation{Name: l.Token()} }

// EOF is the sentinel appended to the end of every program; the VM's
// main loop stops when it reaches this token.
type EOF struct{}

func (EOF) Priority() Priority { return Invalid }
func (EOF) Token() string      { return "<eof>" }
func (e EOF) Run(vm VM) error  { return vm.Stop("") }

// ReplSentinel is the last row of a REPL program; reaching it causes
// the VM to call Read for another source line and splice it in.
type ReplSentinel struct {
	Read func() (string, bool)
}

func (ReplSentinel) Priority() Priority { return Invalid }
func (ReplSentinel) Token() string      { return "<repl>" }
