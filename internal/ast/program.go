package ast

import "github.com/tibasic/pb/internal/token"

// Program is the cursor-addressable grid the executor walks: one row
// per source line, one column per colon-separated statement within
// that line (spec.md §3). A trailing token.EOF{} closes the last row.
type Program struct {
	Lines [][]token.Node
	// Source holds the original line text; Source[i] corresponds to
	// Lines[i].
	Source []string
}

// NewProgram wraps a tree-built line grid.
func NewProgram(lines [][]token.Node, source []string) *Program {
	return &Program{Lines: lines, Source: source}
}

// At returns the node addressed by pos, or token.EOF{} past the end of
// the program (both past the last column of a line and past the last
// line), matching the executor's "run off the end stops the VM" rule.
func (p *Program) At(pos token.Pos) token.Node {
	if pos.Line < 0 || pos.Line >= len(p.Lines) {
		return token.EOF{}
	}
	row := p.Lines[pos.Line]
	if pos.Col < 0 || pos.Col >= len(row) {
		return token.EOF{}
	}
	return row[pos.Col]
}

// RowLen reports how many colon-separated statements line occupies.
func (p *Program) RowLen(line int) int {
	if line < 0 || line >= len(p.Lines) {
		return 0
	}
	return len(p.Lines[line])
}

// NumLines reports the total row count.
func (p *Program) NumLines() int { return len(p.Lines) }

// LineText returns the original source text for line, or "" if out of
// range.
func (p *Program) LineText(line int) string {
	if line < 0 || line >= len(p.Source) {
		return ""
	}
	return p.Source[line]
}

// AppendLine appends one more row, used by the REPL to splice newly
// parsed input onto a running program.
func (p *Program) AppendLine(row []token.Node, source string) {
	p.Lines = append(p.Lines, row)
	p.Source = append(p.Source, source)
}
