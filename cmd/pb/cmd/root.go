// Package cmd wires pb's cobra command tree, grounded on the teacher's
// cmd/dwscript/cmd/{root,run}.go: a single root command carrying the
// flags and version info, with no subcommands; runMain picks the file
// runner or the REPL from the argument count.
package cmd

import (
	"github.com/spf13/cobra"
)

var (
	Version = "0.1.0-dev"

	verbose    bool
	showAST    bool
	stackTrace bool
	dumpTokens bool
	ioKind     string
)

var rootCmd = &cobra.Command{
	Use:     "pb [file]",
	Short:   "A TI-BASIC interpreter",
	Version: Version,
	Long: `pb is a tree-walking interpreter for TI-BASIC programs.

Given a filename it runs that program; given none it starts an
interactive session that behaves like the calculator's home screen,
evaluating one line at a time and carrying Ans and variables forward.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMain,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.Flags().BoolVarP(&showAST, "ast", "a", false, "dump the built token tree before running")
	rootCmd.Flags().BoolVarP(&stackTrace, "stacktrace", "s", false, "print the execution history on a fatal error")
	rootCmd.Flags().BoolVarP(&dumpTokens, "dump", "d", false, "dump the raw lexer token stream and exit")
	rootCmd.Flags().StringVarP(&ioKind, "io", "i", "simple", `IO backend: "simple" or "vt100"`)
}

// runMain is pb's single entry point: a filename argument runs that
// program, no argument starts the REPL. This mirrors "pb [options]
// [filename]" rather than the teacher's run/lex/parse subcommand
// tree, since TI-BASIC has no separate compile step to expose.
func runMain(_ *cobra.Command, args []string) error {
	if len(args) == 1 {
		return runFile(args[0])
	}
	return runREPL()
}
