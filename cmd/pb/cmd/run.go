package cmd

import (
	"fmt"
	"os"

	"github.com/tibasic/pb/internal/ast"
	tierrors "github.com/tibasic/pb/internal/errors"
	"github.com/tibasic/pb/internal/interp"
	"github.com/tibasic/pb/internal/ioterm"
	"github.com/tibasic/pb/internal/lexer"
	"github.com/tibasic/pb/internal/token"
)

// runFile reads, compiles and runs one .bas program, matching "pb
// file.bas" (spec.md §6).
func runFile(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("cannot read %s: %w", filename, err)
	}
	source := string(data)

	if verbose {
		fmt.Fprintf(os.Stderr, "compiling %s (%d bytes)\n", filename, len(source))
	}

	if dumpTokens {
		return dumpTokenStream(source)
	}

	prog, err := interp.Compile(source)
	if err != nil {
		return reportError(err, nil, source, filename)
	}

	if showAST {
		dumpAST(prog)
	}

	io, err := ioterm.New(ioKind)
	if err != nil {
		return err
	}
	defer io.Close()

	vm := interp.New(prog, source, filename, io)
	if err := vm.Run(); err != nil {
		return reportError(err, vm.History(), source, filename)
	}
	return nil
}

// dumpTokenStream prints the raw lexer output, grounded on the
// teacher's "lex" command (cmd/dwscript/cmd/lex.go): one line per
// source row, one token per column, with no tree-building performed.
func dumpTokenStream(source string) error {
	lines, _, err := lexer.Tokenize(source)
	if err != nil {
		return err
	}
	for i, row := range lines {
		fmt.Printf("%4d:", i+1)
		for _, tok := range row {
			fmt.Printf(" %q", tok.Token())
		}
		fmt.Println()
	}
	return nil
}

// dumpAST prints the built token tree: one line per program row, one
// built column node per entry, rendered via Token() since pb's nodes
// have no separate String() tree-printer (spec.md §6's -a/--ast).
func dumpAST(prog *ast.Program) {
	fmt.Println("AST:")
	for i, row := range prog.Lines {
		if len(row) == 0 {
			continue
		}
		fmt.Printf("%4d:", i+1)
		for _, node := range row {
			fmt.Printf(" %q", node.Token())
		}
		fmt.Println()
	}
}

// reportError renders a fatal error with source context via
// errors.SourceError.Format, falling back to a zero position for
// errors that carry none, and prints the execution history ring when
// -s/--stacktrace is set.
func reportError(err error, history []token.HistEntry, source, filename string) error {
	pos := tierrors.Pos{}
	switch e := err.(type) {
	case *tierrors.ParseError:
		pos = e.Pos
	case *tierrors.ExecutionError:
		pos = tierrors.Pos{Line: e.Line}
	}

	se := &tierrors.SourceError{Err: err, Pos: pos, Source: source, File: filename}
	fmt.Fprintln(os.Stderr, se.Format(false))

	if stackTrace && len(history) > 0 {
		fmt.Fprintln(os.Stderr, "\nExecution history:")
		fmt.Fprintln(os.Stderr, historyString(history))
	}

	return fmt.Errorf("%s failed", filename)
}

// historyString renders the VM's history ring newest-first, matching
// tierrors.History.String's format without needing the two types to
// share a representation.
func historyString(history []token.HistEntry) string {
	frames := make(tierrors.History, len(history))
	for i, h := range history {
		frames[i] = tierrors.HistFrame{
			Pos:      &tierrors.Pos{Line: h.Pos.Line + 1, Column: h.Pos.Col + 1},
			TokenStr: h.Token.Token(),
		}
	}
	return frames.String()
}
