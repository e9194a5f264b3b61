// Package ioterm provides the two token.IO backends the driver can
// select between (spec.md §6's -i/--io flag): "simple", a line-
// oriented backend suitable for piped input and snapshot tests, and
// "vt100", a full-screen backend for interactive use.
package ioterm

import (
	"fmt"

	"github.com/tibasic/pb/internal/token"
)

// New constructs the IO backend named by kind ("simple" or "vt100").
func New(kind string) (token.IO, error) {
	switch kind {
	case "", "simple":
		return NewSimple(), nil
	case "vt100":
		return NewVT100()
	default:
		return nil, fmt.Errorf("unknown io backend %q", kind)
	}
}
