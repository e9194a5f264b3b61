// Package program resolves prgm<NAME> references (spec.md §4.4,
// §6) against the set of .bas files in the current directory: a TI
// calculator has no concept of a path, only a flat list of named
// programs, so resolution is a case-insensitive scan rather than a
// lookup table built ahead of time.
package program

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/tibasic/pb/internal/errors"
)

// Resolve finds the .bas file whose base name matches name case-
// insensitively, scanning the current directory. It returns an
// ExecutionError shaped like the calculator's own "ERR:UNDEFINED" when
// nothing matches, since prgmFOO invoked from within a running program
// is a runtime event, not a parse-time one.
func Resolve(name string) (string, error) {
	matches, err := filepath.Glob("*.bas")
	if err != nil {
		return "", &errors.ExecutionError{Msg: err.Error()}
	}
	target := strings.ToLower(name)
	for _, m := range matches {
		base := strings.ToLower(strings.TrimSuffix(filepath.Base(m), filepath.Ext(m)))
		if base == target {
			return m, nil
		}
	}
	return "", &errors.ExecutionError{Msg: fmt.Sprintf("prgm%s not found", name)}
}
