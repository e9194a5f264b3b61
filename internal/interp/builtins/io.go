package builtins

import (
	"github.com/tibasic/pb/internal/errors"
	"github.com/tibasic/pb/internal/token"
)

// dispTok prints each of its bare comma-separated arguments, matching
// the calculator's Disp statement (spec.md §4.7). Disp alone (no
// argument) just advances the screen a line.
type dispTok struct{ bareArg }

func newDisp() token.Node { return &dispTok{bareArg{name: "Disp"}} }

func (d *dispTok) Run(vm token.VM) error {
	for _, item := range argList(d.arg) {
		v, err := vm.Eval(item)
		if err != nil {
			return err
		}
		vm.IO().Disp(token.FormatFixed(v, vm.Fixed()))
	}
	if d.arg == nil {
		vm.IO().Disp(nil)
	}
	vm.Inc()
	return nil
}

// outputTok is Output(row,col,item): a function-style token (its own
// parenthesized argument list), unlike Disp's bare comma list.
type outputTok struct{ token.FuncBase }

func newOutput() token.Node { return &outputTok{token.FuncBase{Name: "Output("}} }

func (o *outputTok) Run(vm token.VM) error {
	raw := o.RawArgs()
	if len(raw) != 3 {
		return &errors.ExecutionError{Msg: "Output( expects row, column and an item"}
	}
	rv, err := vm.Eval(raw[0])
	if err != nil {
		return err
	}
	cv, err := vm.Eval(raw[1])
	if err != nil {
		return err
	}
	item, err := vm.Eval(raw[2])
	if err != nil {
		return err
	}
	row, ok1 := token.ToFloat(rv)
	col, ok2 := token.ToFloat(cv)
	if !ok1 || !ok2 {
		return &errors.ExecutionError{Msg: "Output( row/column must be numeric"}
	}
	vm.IO().Output(int(row), int(col), token.FormatFixed(item, vm.Fixed()))
	vm.Inc()
	return nil
}

// promptTok is Prompt VAR[,VAR...]: reads one value per variable from
// the keyboard, echoing "VAR=?" for each (spec.md §4.7).
type promptTok struct{ bareArg }

func newPrompt() token.Node { return &promptTok{bareArg{name: "Prompt"}} }

func (p *promptTok) Run(vm token.VM) error {
	for _, item := range argList(p.arg) {
		settable, ok := item.(token.Settable)
		if !ok {
			return &errors.ExecutionError{Msg: "Prompt requires a variable"}
		}
		v, err := vm.IO().Input(item.Token()+"=?", isStrTarget(item))
		if err != nil {
			return err
		}
		if err := settable.Set(vm, v); err != nil {
			return err
		}
	}
	vm.Inc()
	return nil
}

// inputTok is Input ["prompt",]VAR: an optional literal prompt string
// followed by the variable to store the read value into.
type inputTok struct{ bareArg }

func newInput() token.Node { return &inputTok{bareArg{name: "Input"}} }

func (i *inputTok) Run(vm token.VM) error {
	items := argList(i.arg)
	if len(items) == 0 {
		return &errors.ExecutionError{Msg: "Input requires a variable"}
	}
	var label string
	target := items[0]
	if len(items) == 2 {
		if lit, ok := items[0].(*token.Literal); ok {
			if s, ok := lit.Value.(string); ok {
				label = s
			}
		}
		target = items[1]
	} else if label == "" {
		label = target.Token() + "=?"
	}
	settable, ok := target.(token.Settable)
	if !ok {
		return &errors.ExecutionError{Msg: "Input requires a variable"}
	}
	v, err := vm.IO().Input(label, isStrTarget(target))
	if err != nil {
		return err
	}
	if err := settable.Set(vm, v); err != nil {
		return err
	}
	vm.Inc()
	return nil
}

func isStrTarget(n token.Node) bool {
	v, ok := n.(*token.SimpleVar)
	return ok && len(v.Name) >= 3 && v.Name[:3] == "Str"
}

// argList flattens an absorbed bare argument back into its positional
// element nodes: nil (no argument), a single node, or a Tuple's Elems.
func argList(arg token.Node) []token.Node {
	if arg == nil {
		return nil
	}
	if tl, ok := arg.(token.TupleLike); ok {
		return tl.Elems()
	}
	return []token.Node{arg}
}

type clrHomeTok struct{}

func (clrHomeTok) Priority() token.Priority { return token.Invalid }
func (clrHomeTok) Token() string            { return "ClrHome" }
func (clrHomeTok) Run(vm token.VM) error {
	vm.IO().Clear()
	vm.Inc()
	return nil
}

type pauseTok struct{ bareArg }

func newPause() token.Node { return &pauseTok{bareArg{name: "Pause"}} }

func (p *pauseTok) Run(vm token.VM) error {
	msg := ""
	if p.arg != nil {
		v, err := evalArg(vm, p.arg, "Pause")
		if err != nil {
			return err
		}
		msg = token.FormatValue(v)
	}
	if err := vm.IO().Pause(msg); err != nil {
		return err
	}
	vm.Inc()
	return nil
}

// menuTok is Menu("title","label1",dest1,"label2",dest2,...): a
// parenthesized argument list like any function, but the destination
// elements are label names rather than expressions to evaluate.
type menuTok struct{ token.FuncBase }

func newMenu() token.Node { return &menuTok{token.FuncBase{Name: "Menu("}} }

func (m *menuTok) Run(vm token.VM) error {
	items := m.RawArgs()
	if len(items) < 3 || len(items)%2 == 0 {
		return &errors.ExecutionError{Msg: "Menu( expects a title and label/destination pairs"}
	}
	titleV, err := evalArg(vm, items[0], "Menu(")
	if err != nil {
		return err
	}
	title := token.FormatValue(titleV)

	var entries []token.MenuEntry
	dests := map[string]string{}
	for i := 1; i+1 < len(items); i += 2 {
		labelV, err := evalArg(vm, items[i], "Menu(")
		if err != nil {
			return err
		}
		label := token.FormatValue(labelV)
		dest := items[i+1].Token()
		entries = append(entries, token.MenuEntry{Name: dest, Label: label})
		dests[label] = dest
	}
	chosen, err := vm.IO().Menu(title, entries)
	if err != nil {
		return err
	}
	dest, ok := dests[chosen]
	if !ok {
		return &errors.ExecutionError{Msg: "Menu( selection has no destination"}
	}
	pos, _, found := vm.FindForward(true, func(n token.Node) bool {
		lbl, ok := n.(*lblTok)
		return ok && lbl.Name == dest
	})
	if !found {
		return &errors.ExecutionError{Msg: "Lbl " + dest + " not found"}
	}
	vm.Goto(pos)
	return nil
}

// fixTok and floatTok set/clear the display's fixed-decimal mode.
type fixTok struct{ bareArg }

func newFix() token.Node { return &fixTok{bareArg{name: "Fix"}} }

func (f *fixTok) Run(vm token.VM) error {
	v, err := evalArg(vm, f.arg, "Fix")
	if err != nil {
		return err
	}
	n, ok := token.ToFloat(v)
	if !ok {
		return &errors.ExecutionError{Msg: "Fix requires a numeric argument"}
	}
	vm.SetFixed(int(n))
	vm.Inc()
	return nil
}

type floatTok struct{}

func (floatTok) Priority() token.Priority { return token.Invalid }
func (floatTok) Token() string            { return "Float" }
func (floatTok) Run(vm token.VM) error {
	vm.SetFixed(-1)
	vm.Inc()
	return nil
}

// getKeyTok is the bare getKey token: reading it polls the keyboard
// non-blockingly and returns a TI key code, or 0 if nothing is pressed.
type getKeyTok struct{}

func (getKeyTok) Priority() token.Priority    { return token.None }
func (getKeyTok) Token() string               { return "getKey" }
func (getKeyTok) Get(vm token.VM) (any, error) { return int64(vm.IO().GetKey()), nil }

func registerIO() {
	token.Register("Disp", newDisp)
	token.RegisterFunction("Output", newOutput)
	token.Register("Prompt", newPrompt)
	token.Register("Input", newInput)
	token.Register("ClrHome", func() token.Node { return clrHomeTok{} })
	token.Register("Pause", newPause)
	token.RegisterFunction("Menu", newMenu)
	token.Register("Fix", newFix)
	token.Register("Float", func() token.Node { return floatTok{} })
	token.RegisterVariable("getKey", func() token.Node { return getKeyTok{} })
}
