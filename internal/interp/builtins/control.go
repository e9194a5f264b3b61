package builtins

import (
	"github.com/tibasic/pb/internal/errors"
	"github.com/tibasic/pb/internal/token"
)

// bareArg is embedded by every statement whose argument is a bare
// trailing expression rather than a parenthesized Arguments list
// (If, While, Repeat, Disp, Prompt, Pause, ...): FuncBase always declares
// KindArguments, which would make the tree builder wait for a "(" that
// never comes, so these roll their own minimal Absorbable.
type bareArg struct {
	name string
	arg  token.Node
}

func (b *bareArg) Priority() token.Priority { return token.Invalid }
func (b *bareArg) Token() string            { return b.name }
func (b *bareArg) Absorbs() []token.Kind {
	return []token.Kind{token.KindExpression, token.KindValue, token.KindVariable, token.KindTuple}
}
func (b *bareArg) Absorb(n token.Node) { b.arg = n }
func (b *bareArg) Arg() token.Node     { return b.arg }

func evalArg(vm token.VM, arg token.Node, stmt string) (any, error) {
	g, ok := arg.(token.Gettable)
	if !ok {
		return nil, &errors.ExecutionError{Msg: stmt + " requires a value"}
	}
	return vm.Eval(g)
}

// ifMarker is the block-stack payload If pushes; End recognizes it and
// falls straight through rather than looping back.
type ifMarker struct{}

func (ifMarker) Priority() token.Priority { return token.Invalid }
func (ifMarker) Token() string            { return "<if>" }

type ifTok struct{ bareArg }

func newIf() token.Node { return &ifTok{bareArg{name: "If"}} }

func (i *ifTok) Run(vm token.VM) error {
	cond, err := evalArg(vm, i.arg, "If")
	if err != nil {
		return err
	}
	next := vm.Inc()
	if _, isThen := next.(thenTok); !isThen {
		if !token.Truthy(cond) {
			vm.Inc()
		}
		return nil
	}
	thenPos := vm.Pos()
	vm.Inc()
	vm.PushBlock(ifMarker{})
	if token.Truthy(cond) {
		return nil
	}
	target, isElse, err := scanToElseOrEnd(vm, thenPos)
	if err != nil {
		return err
	}
	vm.Goto(target)
	if isElse {
		vm.Inc()
	}
	return nil
}

type thenTok struct{}

func (thenTok) Priority() token.Priority { return token.Invalid }
func (thenTok) Token() string            { return "Then" }
func (t thenTok) Run(vm token.VM) error  { vm.Inc(); return nil }

type elseTok struct{}

func (elseTok) Priority() token.Priority { return token.Invalid }
func (elseTok) Token() string            { return "Else" }
func (elseTok) Run(vm token.VM) error {
	target, err := scanToEnd(vm, vm.Pos())
	if err != nil {
		return err
	}
	vm.Goto(target)
	return nil
}

type endTok struct{}

func (endTok) Priority() token.Priority { return token.Invalid }
func (endTok) Token() string            { return "End" }
func (endTok) Run(vm token.VM) error {
	pos, tok, err := vm.PopBlock()
	if err != nil {
		return err
	}
	switch t := tok.(type) {
	case ifMarker:
		vm.Inc()
	case *repeatTok:
		cond, err := evalArg(vm, t.arg, "Repeat")
		if err != nil {
			return err
		}
		if token.Truthy(cond) {
			vm.Inc()
		} else {
			vm.Goto(pos)
		}
	default:
		vm.Goto(pos)
	}
	return nil
}

type whileTok struct{ bareArg }

func newWhile() token.Node { return &whileTok{bareArg{name: "While"}} }

func (w *whileTok) Run(vm token.VM) error {
	cond, err := evalArg(vm, w.arg, "While")
	if err != nil {
		return err
	}
	if token.Truthy(cond) {
		vm.PushBlock(w)
		vm.Inc()
		return nil
	}
	target, err := scanToEnd(vm, vm.Pos())
	if err != nil {
		return err
	}
	vm.Goto(target)
	vm.Inc()
	return nil
}

type repeatTok struct{ bareArg }

func newRepeat() token.Node { return &repeatTok{bareArg{name: "Repeat"}} }

func (r *repeatTok) Run(vm token.VM) error {
	vm.PushBlock(r)
	vm.Inc()
	return nil
}

// forTok is the only control-flow statement shaped like a parenthesized
// function call (For(var,start,end[,step])), so it embeds FuncBase
// like any other function and absorbs through the ordinary Arguments
// path rather than bareArg.
type forTok struct {
	token.FuncBase
	started bool
	end     float64
	step    float64
}

func newFor() token.Node { return &forTok{FuncBase: token.FuncBase{Name: "For("}} }

func (f *forTok) Run(vm token.VM) error {
	raw := f.RawArgs()
	if len(raw) < 3 {
		return &errors.ExecutionError{Msg: "For( requires at least variable, start and end"}
	}
	settable, ok := raw[0].(token.Settable)
	if !ok {
		return &errors.ExecutionError{Msg: "For( requires a variable as its first argument"}
	}
	gettable, _ := raw[0].(token.Gettable)

	if !f.started {
		startV, err := vm.Eval(raw[1])
		if err != nil {
			return err
		}
		endV, err := vm.Eval(raw[2])
		if err != nil {
			return err
		}
		f.step = 1
		if len(raw) == 4 {
			stepV, err := vm.Eval(raw[3])
			if err != nil {
				return err
			}
			sf, ok := token.ToFloat(stepV)
			if !ok {
				return &errors.ExecutionError{Msg: "For( step must be numeric"}
			}
			f.step = sf
		}
		ef, ok := token.ToFloat(endV)
		if !ok {
			return &errors.ExecutionError{Msg: "For( end must be numeric"}
		}
		f.end = ef
		if err := settable.Set(vm, startV); err != nil {
			return err
		}
		f.started = true
	} else {
		curV, err := vm.Eval(gettable)
		if err != nil {
			return err
		}
		cur, ok := token.ToFloat(curV)
		if !ok {
			return &errors.ExecutionError{Msg: "For( variable must be numeric"}
		}
		if err := settable.Set(vm, token.Simplify(cur+f.step)); err != nil {
			return err
		}
	}

	curV, err := vm.Eval(gettable)
	if err != nil {
		return err
	}
	cur, _ := token.ToFloat(curV)
	within := cur <= f.end
	if f.step < 0 {
		within = cur >= f.end
	}
	if within {
		vm.PushBlock(f)
		vm.Inc()
		return nil
	}
	f.started = false
	target, err := scanToEnd(vm, vm.Pos())
	if err != nil {
		return err
	}
	vm.Goto(target)
	vm.Inc()
	return nil
}

type lblTok struct{ Name string }

func newLbl() token.Node                   { return &lblTok{} }
func (l *lblTok) Priority() token.Priority  { return token.Invalid }
func (l *lblTok) Token() string             { return "Lbl " + l.Name }
func (l *lblTok) TakeLabel(name string)     { l.Name = name }
func (l *lblTok) Run(vm token.VM) error     { vm.Inc(); return nil }

type gotoTok struct{ Name string }

func newGoto() token.Node                  { return &gotoTok{} }
func (g *gotoTok) Priority() token.Priority { return token.Invalid }
func (g *gotoTok) Token() string            { return "Goto " + g.Name }
func (g *gotoTok) TakeLabel(name string)    { g.Name = name }
func (g *gotoTok) Run(vm token.VM) error {
	pos, _, found := vm.FindForward(true, func(n token.Node) bool {
		lbl, ok := n.(*lblTok)
		return ok && lbl.Name == g.Name
	})
	if !found {
		return &errors.ExecutionError{Msg: "Lbl " + g.Name + " not found"}
	}
	vm.Goto(pos)
	return nil
}

type stopTok struct{}

func (stopTok) Priority() token.Priority { return token.Invalid }
func (stopTok) Token() string            { return "Stop" }
func (stopTok) Run(vm token.VM) error    { return vm.Stop("") }

type returnTok struct{}

func (returnTok) Priority() token.Priority { return token.Invalid }
func (returnTok) Token() string            { return "Return" }
func (returnTok) Run(vm token.VM) error    { return vm.Return() }

// breakTok exits the innermost loop by jumping past its matching End;
// it only makes sense inside While/For/Repeat, so it walks the block
// stack to find the nearest loop frame (discarding any If frames above
// it, which never loop) and scans forward from there. Unlike Continue,
// Break never lets that End run, so its loop frame (and any If frames
// above it) must be popped for good here rather than restored.
type breakTok struct{}

func (breakTok) Priority() token.Priority { return token.Invalid }
func (breakTok) Token() string            { return "Break" }
func (breakTok) Run(vm token.VM) error {
	pos, ok := popInnermostLoop(vm)
	if !ok {
		return &errors.ExecutionError{Msg: "Break outside a loop"}
	}
	target, err := scanToEnd(vm, pos)
	if err != nil {
		return err
	}
	vm.Goto(target)
	vm.Inc()
	return nil
}

// continueTok jumps to the innermost loop's matching End so the usual
// end-of-iteration condition check and jump-back run normally.
type continueTok struct{}

func (continueTok) Priority() token.Priority { return token.Invalid }
func (continueTok) Token() string            { return "Continue" }
func (continueTok) Run(vm token.VM) error {
	pos, ok := innermostLoopPos(vm)
	if !ok {
		return &errors.ExecutionError{Msg: "Continue outside a loop"}
	}
	target, err := scanToEnd(vm, pos)
	if err != nil {
		return err
	}
	vm.Goto(target)
	return nil
}

// innermostLoopPos reports the position of the nearest enclosing loop
// opener (While/For/Repeat), discarding any If frames above it on the
// block stack along the way. Those If frames belong to their own
// (skipped) End, which Continue's jump past them means will now never
// run, so they cannot be restored; only the loop frame itself is put
// back, for the loop's own End — which Continue's jump always lands
// on — to pop normally.
func innermostLoopPos(vm token.VM) (token.Pos, bool) {
	for {
		pos, tok, err := vm.PopBlock()
		if err != nil {
			return token.Pos{}, false
		}
		if _, isIf := tok.(ifMarker); isIf {
			continue
		}
		cur := vm.Pos()
		vm.Goto(pos)
		vm.PushBlock(tok)
		vm.Goto(cur)
		return pos, true
	}
}

// popInnermostLoop is innermostLoopPos's counterpart for Break: since
// Break's target End is never executed, nothing else will ever pop the
// loop frame (or any If frames skipped over to reach it), so they are
// discarded here instead of restored.
func popInnermostLoop(vm token.VM) (token.Pos, bool) {
	for {
		pos, tok, err := vm.PopBlock()
		if err != nil {
			return token.Pos{}, false
		}
		if _, isIf := tok.(ifMarker); isIf {
			continue
		}
		return pos, true
	}
}

func registerControl() {
	token.Register("If", newIf)
	token.Register("Then", func() token.Node { return thenTok{} })
	token.Register("Else", func() token.Node { return elseTok{} })
	token.Register("End", func() token.Node { return endTok{} })
	token.Register("While", newWhile)
	token.Register("Repeat", newRepeat)
	token.RegisterFunction("For", newFor)
	token.Register("Lbl", newLbl)
	token.Register("Goto", newGoto)
	token.Register("Stop", func() token.Node { return stopTok{} })
	token.Register("Return", func() token.Node { return returnTok{} })
	token.Register("Break", func() token.Node { return breakTok{} })
	token.Register("Continue", func() token.Node { return continueTok{} })
}

// scanToEnd finds the End matching the block opener at or after from,
// counting nested openers (While, Repeat, For, and an If's Then) so an
// inner block's End isn't mistaken for the outer one's.
func scanToEnd(vm token.VM, from token.Pos) (token.Pos, error) {
	return scanBlock(vm, from, false)
}

// scanToElseOrEnd is scanToEnd's variant that also stops at an Else
// belonging to the same If, used only for an If's false branch.
func scanToElseOrEnd(vm token.VM, from token.Pos) (token.Pos, bool, error) {
	depth := 0
	pos := from
	for {
		pos = nextPos(vm, pos)
		cur := vm.PeekAt(pos)
		if cur == nil {
			return token.Pos{}, false, &errors.ExecutionError{Msg: "missing End"}
		}
		switch cur.(type) {
		case thenTok, *whileTok, *repeatTok, *forTok:
			depth++
		case elseTok:
			if depth == 0 {
				return pos, true, nil
			}
		case endTok:
			if depth == 0 {
				return pos, false, nil
			}
			depth--
		}
	}
}

func scanBlock(vm token.VM, from token.Pos, _ bool) (token.Pos, error) {
	depth := 0
	pos := from
	for {
		pos = nextPos(vm, pos)
		cur := vm.PeekAt(pos)
		if cur == nil {
			return token.Pos{}, &errors.ExecutionError{Msg: "missing End"}
		}
		switch cur.(type) {
		case thenTok, *whileTok, *repeatTok, *forTok:
			depth++
		case endTok:
			if depth == 0 {
				return pos, nil
			}
			depth--
		}
	}
}

func nextPos(vm token.VM, p token.Pos) token.Pos {
	if p.Col+1 < vm.RowLen(p.Line) {
		return token.Pos{Line: p.Line, Col: p.Col + 1}
	}
	return token.Pos{Line: p.Line + 1, Col: 0}
}
