package cmd

import (
	"bufio"
	"fmt"
	"os"

	"github.com/tibasic/pb/internal/ast"
	tierrors "github.com/tibasic/pb/internal/errors"
	"github.com/tibasic/pb/internal/interp"
	"github.com/tibasic/pb/internal/ioterm"
	"github.com/tibasic/pb/internal/token"
)

// runREPL starts an interactive session: a one-line program holding
// only a REPL sentinel, which interp.VM.Run splices new lines into as
// they're typed (spec.md §9). Every reported error is non-fatal here,
// matching "ParseError and any other exception are caught, reported,
// and the loop continues".
func runREPL() error {
	io, err := ioterm.New(ioKind)
	if err != nil {
		return err
	}
	defer io.Close()

	in := bufio.NewReader(os.Stdin)
	sentinel := token.ReplSentinel{Read: func() (string, bool) {
		fmt.Print("> ")
		line, err := in.ReadString('\n')
		if err != nil {
			return "", false
		}
		return trimNewline(line), true
	}}

	prog := ast.NewProgram([][]token.Node{{sentinel}}, []string{""})
	vm := interp.New(prog, "", "<repl>", io)
	vm.EnableREPLRecovery(func(err error) {
		if se, ok := err.(*tierrors.SourceError); ok {
			fmt.Fprintln(os.Stderr, se.Format(false))
			return
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
	})

	return vm.Run()
}

func trimNewline(s string) string {
	for len(s) > 0 && (s[len(s)-1] == '\n' || s[len(s)-1] == '\r') {
		s = s[:len(s)-1]
	}
	return s
}
