// Command pb runs TI-BASIC programs: "pb file.bas" executes a program,
// "pb" with no filename starts an interactive session (spec.md §6).
package main

import (
	"fmt"
	"os"

	"github.com/tibasic/pb/cmd/pb/cmd"

	// builtins registers every arithmetic, trig, probability, list,
	// matrix, control-flow and IO token with internal/token's catalog
	// via its package init(); nothing in cmd or interp calls it
	// directly, so it must be imported here purely for that effect.
	_ "github.com/tibasic/pb/internal/interp/builtins"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
