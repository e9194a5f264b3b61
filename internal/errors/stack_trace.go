package errors

import (
	"fmt"
	"strings"
)

// HistFrame is one frame of the execution history (spec.md §3's
// `history` ring). It names the token that ran and the position it
// ran at.
type HistFrame struct {
	Pos      *Pos
	TokenStr string
}

// String renders a single frame as "Token [line: N, column: M]",
// matching the teacher's StackFrame.String format.
func (f HistFrame) String() string {
	if f.Pos == nil {
		return f.TokenStr
	}
	return fmt.Sprintf("%s [line: %d, column: %d]", f.TokenStr, f.Pos.Line, f.Pos.Column)
}

// History is a truncated, oldest-first sequence of HistFrame, printed
// newest-first when a fatal error reaches the top-level driver
// (spec.md §7: "a truncated history of the last N (≈6) executed
// tokens").
type History []HistFrame

// String renders the history newest-first, one frame per line.
func (h History) String() string {
	if len(h) == 0 {
		return ""
	}
	var sb strings.Builder
	for i := len(h) - 1; i >= 0; i-- {
		sb.WriteString(h[i].String())
		if i > 0 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
