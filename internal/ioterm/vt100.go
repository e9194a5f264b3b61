package ioterm

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/tibasic/pb/internal/errors"
	"github.com/tibasic/pb/internal/token"
)

// screenRows/screenCols mimic the TI-84's 8-line by 16-column text
// display; Output(row,col,item) addresses cells within this grid.
const (
	screenRows = 8
	screenCols = 16
)

// VT100 is the full-screen IO backend: it owns a tcell.Screen and
// repaints the whole grid on every Disp/Output, giving Input/Menu/
// Pause a real interactive prompt instead of a scrolling log.
type VT100 struct {
	screen tcell.Screen
	grid   [screenRows]string
	row    int
}

func NewVT100() (token.IO, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.SetStyle(tcell.StyleDefault)
	v := &VT100{screen: screen}
	v.redraw()
	return v, nil
}

func (v *VT100) redraw() {
	v.screen.Clear()
	for r, line := range v.grid {
		v.putLine(r, 0, line)
	}
	v.screen.Show()
}

func (v *VT100) putLine(row, col int, s string) {
	for i, ch := range s {
		if col+i >= screenCols {
			break
		}
		v.screen.SetContent(col+i, row, ch, nil, tcell.StyleDefault)
	}
}

func (v *VT100) scroll(line string) {
	if v.row >= screenRows {
		copy(v.grid[:], v.grid[1:])
		v.grid[screenRows-1] = line
	} else {
		v.grid[v.row] = line
		v.row++
	}
}

func (v *VT100) Clear() {
	v.grid = [screenRows]string{}
	v.row = 0
	v.redraw()
}

func (v *VT100) Disp(item any) {
	if item == nil {
		v.scroll("")
	} else {
		v.scroll(token.FormatValue(item))
	}
	v.redraw()
}

func (v *VT100) Output(row, col int, item any) {
	if row < 0 || row >= screenRows {
		return
	}
	line := v.grid[row]
	if len(line) < col {
		line += strings.Repeat(" ", col-len(line))
	}
	text := token.FormatValue(item)
	if col+len(text) > screenCols {
		text = text[:max(0, screenCols-col)]
	}
	runes := []rune(line)
	for len(runes) < col+len(text) {
		runes = append(runes, ' ')
	}
	copy(runes[col:], []rune(text))
	v.grid[row] = string(runes)
	v.redraw()
}

func (v *VT100) readLine(prompt string) (string, error) {
	v.scroll(prompt)
	v.redraw()
	var buf []rune
	for {
		v.grid[min(v.row, screenRows-1)] = prompt + string(buf)
		v.redraw()
		ev := v.screen.PollEvent()
		key, ok := ev.(*tcell.EventKey)
		if !ok {
			continue
		}
		switch key.Key() {
		case tcell.KeyCtrlC:
			return "", &errors.Interrupted{}
		case tcell.KeyEnter:
			return string(buf), nil
		case tcell.KeyBackspace, tcell.KeyBackspace2:
			if len(buf) > 0 {
				buf = buf[:len(buf)-1]
			}
		case tcell.KeyRune:
			buf = append(buf, key.Rune())
		}
	}
}

func (v *VT100) Input(prompt string, isStr bool) (any, error) {
	line, err := v.readLine(prompt + "?")
	if err != nil {
		return nil, err
	}
	if isStr {
		return line, nil
	}
	if n, err := strconv.ParseInt(line, 10, 64); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(line, 64)
	if err != nil {
		return nil, fmt.Errorf("input: %q is not numeric", line)
	}
	return f, nil
}

func (v *VT100) GetKey() int {
	if !v.screen.HasPendingEvent() {
		return 0
	}
	ev := v.screen.PollEvent()
	key, ok := ev.(*tcell.EventKey)
	if !ok {
		return 0
	}
	if key.Key() == tcell.KeyRune {
		r := key.Rune()
		if r >= '0' && r <= '9' {
			return int(r - '0')
		}
		return int(r)
	}
	return int(key.Key())
}

func (v *VT100) Pause(msg string) error {
	if msg != "" {
		v.scroll(msg)
	}
	v.scroll("[enter]")
	v.redraw()
	for {
		ev := v.screen.PollEvent()
		key, ok := ev.(*tcell.EventKey)
		if !ok {
			continue
		}
		switch key.Key() {
		case tcell.KeyCtrlC:
			return &errors.Interrupted{}
		case tcell.KeyEnter:
			return nil
		}
	}
}

func (v *VT100) Menu(title string, entries []token.MenuEntry) (string, error) {
	sel := 0
	for {
		v.screen.Clear()
		v.putLine(0, 0, title)
		for i, e := range entries {
			line := strconv.Itoa(i+1) + ":" + e.Label
			if i == sel {
				line = ">" + line
			}
			v.putLine(i+1, 0, line)
		}
		v.screen.Show()
		ev := v.screen.PollEvent()
		key, ok := ev.(*tcell.EventKey)
		if !ok {
			continue
		}
		switch key.Key() {
		case tcell.KeyCtrlC:
			return "", &errors.Interrupted{}
		case tcell.KeyUp:
			if sel > 0 {
				sel--
			}
		case tcell.KeyDown:
			if sel < len(entries)-1 {
				sel++
			}
		case tcell.KeyEnter:
			return entries[sel].Label, nil
		}
	}
}

func (v *VT100) Close() error {
	v.screen.Fini()
	return nil
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
