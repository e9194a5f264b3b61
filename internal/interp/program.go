package interp

import (
	"os"

	"github.com/tibasic/pb/internal/ast"
	"github.com/tibasic/pb/internal/errors"
	"github.com/tibasic/pb/internal/lexer"
	"github.com/tibasic/pb/internal/parser"
	"github.com/tibasic/pb/internal/program"
	"github.com/tibasic/pb/internal/token"
)

// Compile lexes and tree-builds source into a runnable program.
func Compile(source string) (*ast.Program, error) {
	lines, raw, err := lexer.Tokenize(source)
	if err != nil {
		return nil, err
	}
	return parser.BuildProgram(lines, raw)
}

// Run drives the VM's cursor one column at a time until EOF, Stop, or
// a fatal error. A top-level bare expression (one that is Gettable but
// not Runnable) resolves and stores into Ans, matching every line of a
// calculator session that isn't itself a statement.
func (vm *VM) Run() error {
	for {
		cur := vm.Cur()
		if cur == nil {
			return nil
		}
		vm.PushHistory(vm.pos, cur)
		at := vm.pos

		if sentinel, ok := cur.(token.ReplSentinel); ok {
			line, more := sentinel.Read()
			if !more {
				return nil
			}
			if err := vm.splice(line, sentinel); err != nil {
				if vm.interactive {
					vm.onError(err)
					continue
				}
				return err
			}
			continue
		}

		if r, ok := cur.(token.Runnable); ok {
			if err := r.Run(vm); err != nil {
				if _, ok := err.(*errors.StopError); ok {
					return nil
				}
				if _, ok := err.(*errors.Interrupted); ok {
					return err
				}
				if vm.recover(err) {
					continue
				}
				if ee, ok := err.(*errors.ExecutionError); ok && ee.Line == 0 {
					ee.Line = at.Line + 1
				}
				return err
			}
			continue
		}

		if g, ok := cur.(token.Gettable); ok {
			v, err := vm.Eval(g)
			if err != nil {
				if vm.recover(err) {
					continue
				}
				if ee, ok := err.(*errors.ExecutionError); ok && ee.Line == 0 {
					ee.Line = at.Line + 1
				}
				return err
			}
			vm.SetAns(v)
			vm.Inc()
			continue
		}

		err := &errors.ExecutionError{Msg: cur.Token() + " cannot appear as a statement", Line: at.Line + 1}
		if vm.recover(err) {
			continue
		}
		return err
	}
}

// recover reports err via onError and rewinds to the next REPL line
// when the VM is interactive, returning false (propagate) otherwise.
// The failing line's remaining columns and any open block are
// abandoned; the sentinel line appended right after replLine is always
// one line further down, per splice's layout.
func (vm *VM) recover(err error) bool {
	if !vm.interactive {
		return false
	}
	vm.onError(err)
	vm.blocks = nil
	vm.pos = token.Pos{Line: vm.replLine + 1, Col: 0}
	return true
}

// splice tree-builds one more REPL line in place of the sentinel that
// triggered the read, appends a fresh copy of that same sentinel right
// after it so the cursor finds another one waiting once this line's
// statements are exhausted, and backs the cursor up onto the newly
// built line.
func (vm *VM) splice(line string, sentinel token.ReplSentinel) error {
	toks, _, err := lexer.Tokenize(line)
	if err != nil {
		return err
	}
	row, err := parser.BuildLine(toks[0])
	if err != nil {
		return err
	}
	at := vm.pos.Line
	vm.prog.Lines[at] = row
	vm.prog.Source[at] = line
	vm.prog.AppendLine([]token.Node{sentinel}, "")
	vm.replLine = at
	vm.pos = token.Pos{Line: at, Col: 0}
	return nil
}

// InvokeProgram runs prgm<name> (spec.md §6): name is resolved against
// ./*.bas case-insensitively, parsed, and executed in a fresh
// sub-interpreter that shares this VM's variable, list and matrix
// stores and IO but keeps its own cursor and block stack, so a nested
// program cannot disturb the caller's control flow.
func (vm *VM) InvokeProgram(name string) error {
	path, err := program.Resolve(name)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return &errors.ExecutionError{Msg: "cannot read " + path + ": " + err.Error()}
	}
	prog, err := Compile(string(data))
	if err != nil {
		return err
	}
	sub := New(prog, string(data), path, vm.io)
	sub.vars, sub.lists, sub.mats = vm.vars, vm.lists, vm.mats
	sub.fixed = vm.fixed
	if err := sub.Run(); err != nil {
		if _, ok := err.(*errors.ReturnError); ok {
			return nil
		}
		return err
	}
	return nil
}
