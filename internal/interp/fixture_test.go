package interp

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tibasic/pb/internal/errors"
	_ "github.com/tibasic/pb/internal/interp/builtins"
	"github.com/tibasic/pb/internal/token"

	"github.com/gkampitakis/go-snaps/snaps"
)

// bufIO is a minimal token.IO that records Disp/Output calls into a
// transcript, the same buffering shape the teacher's fixture tests use
// in place of a real terminal backend.
type bufIO struct {
	lines []string
}

func (b *bufIO) Clear()                 { b.lines = append(b.lines, "<clear>") }
func (b *bufIO) Disp(item any)          { b.lines = append(b.lines, token.FormatValue(item)) }
func (b *bufIO) Output(row, col int, item any) {
	b.lines = append(b.lines, fmt.Sprintf("@(%d,%d) %s", row, col, token.FormatValue(item)))
}
func (b *bufIO) Input(prompt string, isStr bool) (any, error) { return nil, fmt.Errorf("no input available") }
func (b *bufIO) GetKey() int                                  { return 0 }
func (b *bufIO) Pause(msg string) error {
	b.lines = append(b.lines, "<pause:"+msg+">")
	return nil
}
func (b *bufIO) Menu(title string, entries []token.MenuEntry) (string, error) {
	return "", fmt.Errorf("menu not available in tests")
}
func (b *bufIO) Close() error { return nil }

func (b *bufIO) transcript() string { return strings.Join(b.lines, "\n") }

func runProgram(t *testing.T, source string) string {
	t.Helper()
	prog, err := Compile(source)
	if err != nil {
		t.Fatalf("Compile(%q): %v", source, err)
	}
	io := &bufIO{}
	vm := New(prog, source, "<test>", io)
	if err := vm.Run(); err != nil {
		t.Fatalf("Run(%q): %v", source, err)
	}
	return io.transcript()
}

// TestEndToEndScenarios runs every numbered scenario from the
// interpreter's testable-properties section through a real Compile+Run
// and snapshots the IO transcript, the same pattern the teacher uses
// for its DWScript fixtures (internal/interp/fixture_test.go there),
// scaled down to this interpreter's much smaller domain.
func TestEndToEndScenarios(t *testing.T) {
	cases := []struct {
		name   string
		source string
	}{
		{"StoreAndDisp", `5→A: A*2→B: Disp B`},
		{"ForLoop", "For(I,1,5): Disp I: End"},
		{"IfThenElse", `If 3>2: Then: Disp "Y": Else: Disp "N": End`},
		{"ListDim", `{1,2,3}→L1: Disp dim(L1)`},
		{"ForAccumulate", "0→S: For(I,1,10): S+I→S: End: Disp S"},
		{"LblGotoStop", `Lbl A: Disp "hi": Stop: Goto A`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			out := runProgram(t, c.source)
			snaps.MatchSnapshot(t, out)
		})
	}
}

func TestBlockStackBalancedAfterRun(t *testing.T) {
	vm := newVMFor(t, "For(I,1,3): Disp I: End")
	if err := vm.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(vm.blocks) != 0 {
		t.Fatalf("block stack not empty after a successful run: %v", vm.blocks)
	}
}

func newVMFor(t *testing.T, source string) *VM {
	t.Helper()
	prog, err := Compile(source)
	if err != nil {
		t.Fatalf("Compile(%q): %v", source, err)
	}
	return New(prog, source, "<test>", &bufIO{})
}

func TestAnsCarriesBareExpressionResult(t *testing.T) {
	vm := newVMFor(t, "3+4\nAns*2")
	if err := vm.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if vm.Ans() != int64(14) {
		t.Fatalf("Ans = %v, want 14", vm.Ans())
	}
}

func TestAssignToConstantIsInvalidOperation(t *testing.T) {
	vm := newVMFor(t, "5→π")
	err := vm.Run()
	if err == nil {
		t.Fatal("expected an error assigning to π")
	}
	if _, ok := err.(*errors.InvalidOperation); !ok {
		t.Fatalf("got %T (%v), want *errors.InvalidOperation", err, err)
	}
}

func TestBreakExitsInnermostLoopOnly(t *testing.T) {
	out := runProgram(t, `For(I,1,3): If I=2: Then: Break: End: Disp I: End`)
	if out != "1" {
		t.Fatalf("transcript = %q, want %q (loop must not reach I=3 after Break)", out, "1")
	}
}

func TestContinueSkipsRestOfIteration(t *testing.T) {
	out := runProgram(t, `For(I,1,3): If I=2: Then: Continue: End: Disp I: End`)
	if out != "1\n3" {
		t.Fatalf("transcript = %q, want %q", out, "1\n3")
	}
}

func TestNestedForLoopsRunInnerFullyPerOuterIteration(t *testing.T) {
	out := runProgram(t, `For(I,1,2): For(J,1,2): Disp I*10+J: End: End`)
	if out != "11\n12\n21\n22" {
		t.Fatalf("transcript = %q, want %q", out, "11\n12\n21\n22")
	}
}

func TestBreakOutsideLoopIsExecutionError(t *testing.T) {
	vm := newVMFor(t, "Break")
	if err := vm.Run(); err == nil {
		t.Fatal("expected an error for Break outside a loop")
	}
}

func TestBreakInsideIfLeavesBlockStackBalanced(t *testing.T) {
	vm := newVMFor(t, `For(I,1,3): If I=2: Then: Break: End: Disp I: End`)
	if err := vm.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(vm.blocks) != 0 {
		t.Fatalf("block stack not empty after Break inside an If: %v", vm.blocks)
	}
}

func TestFixRoundsDisplayedDecimals(t *testing.T) {
	out := runProgram(t, `Fix 2: Disp 1/3`)
	if out != "0.33" {
		t.Fatalf("transcript = %q, want %q", out, "0.33")
	}
}

func TestFloatRestoresUnroundedDisplay(t *testing.T) {
	out := runProgram(t, `Fix 2: Float: Disp 1/4`)
	if out != "0.25" {
		t.Fatalf("transcript = %q, want %q", out, "0.25")
	}
}

func TestClrHomeEmitsClearMarker(t *testing.T) {
	out := runProgram(t, `Disp 1: ClrHome: Disp 2`)
	if out != "1\n<clear>\n2" {
		t.Fatalf("transcript = %q, want %q", out, "1\n<clear>\n2")
	}
}

func TestGetKeyWithNoPendingKeyReturnsZero(t *testing.T) {
	out := runProgram(t, `Disp getKey`)
	if out != "0" {
		t.Fatalf("transcript = %q, want %q", out, "0")
	}
}

func TestNPrAndNCr(t *testing.T) {
	out := runProgram(t, `Disp nPr(5,2): Disp nCr(5,2)`)
	if out != "20\n10" {
		t.Fatalf("transcript = %q, want %q", out, "20\n10")
	}
}

func TestNCrRejectsOutOfRangeR(t *testing.T) {
	vm := newVMFor(t, "Disp nCr(2,5)")
	if err := vm.Run(); err == nil {
		t.Fatal("expected an error for nCr(2,5)")
	}
}

func TestRandBinAndRandMAreUnimplemented(t *testing.T) {
	for _, src := range []string{"Disp randBin(5,.5)", "Disp randM(2,2)"} {
		vm := newVMFor(t, src)
		if err := vm.Run(); err == nil {
			t.Fatalf("%q: expected an unimplemented error", src)
		}
	}
}

func TestPromptRequiresAVariable(t *testing.T) {
	vm := newVMFor(t, "Prompt 5")
	if err := vm.Run(); err == nil {
		t.Fatal("expected an error prompting into a non-variable")
	}
}

func TestMenuErrorsWithoutAnInteractiveBackend(t *testing.T) {
	vm := newVMFor(t, `Menu("T","one",X,"two",Y): Lbl X: Disp 1: Stop: Lbl Y: Disp 2`)
	if err := vm.Run(); err == nil {
		t.Fatal("expected an error from Menu when the IO backend can't prompt")
	}
}

func TestNotInverts(t *testing.T) {
	out := runProgram(t, `If not(0): Then: Disp "yes": End`)
	if out != "yes" {
		t.Fatalf("transcript = %q, want %q", out, "yes")
	}
}

func TestPrgmInvokesAnotherProgram(t *testing.T) {
	dir := t.TempDir()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	t.Cleanup(func() { os.Chdir(prev) })

	if err := os.WriteFile(filepath.Join(dir, "HELPER.bas"), []byte(`Disp "in helper"`), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	out := runProgram(t, `Disp "before": prgmHELPER: Disp "after"`)
	if out != "before\nin helper\nafter" {
		t.Fatalf("transcript = %q, want %q", out, "before\nin helper\nafter")
	}
}

func TestPrgmMissingProgramIsExecutionError(t *testing.T) {
	dir := t.TempDir()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	t.Cleanup(func() { os.Chdir(prev) })

	vm := newVMFor(t, "prgmMISSING")
	if err := vm.Run(); err == nil {
		t.Fatal("expected an error invoking a program that does not exist")
	}
}

// interruptingIO is a bufIO whose Input/Pause simulate a keyboard
// interrupt arriving mid-prompt, the same way Simple/VT100 do when a
// SIGINT or Ctrl+C reaches a blocking call (spec.md §5).
type interruptingIO struct{ bufIO }

func (interruptingIO) Input(prompt string, isStr bool) (any, error) { return nil, &errors.Interrupted{} }
func (interruptingIO) Pause(msg string) error                       { return &errors.Interrupted{} }

func TestInterruptedDuringInputUnwindsToCaller(t *testing.T) {
	prog, err := Compile(`Input A`)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	vm := New(prog, `Input A`, "<test>", &interruptingIO{})
	err = vm.Run()
	if _, ok := err.(*errors.Interrupted); !ok {
		t.Fatalf("Run() error = %T (%v), want *errors.Interrupted", err, err)
	}
}

func TestInterruptedDuringPauseUnwindsToCaller(t *testing.T) {
	prog, err := Compile(`Pause "wait"`)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	vm := New(prog, `Pause "wait"`, "<test>", &interruptingIO{})
	err = vm.Run()
	if _, ok := err.(*errors.Interrupted); !ok {
		t.Fatalf("Run() error = %T (%v), want *errors.Interrupted", err, err)
	}
}

func TestContinueInsideIfLeavesBlockStackBalanced(t *testing.T) {
	vm := newVMFor(t, `For(I,1,3): If I=2: Then: Continue: End: Disp I: End`)
	if err := vm.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(vm.blocks) != 0 {
		t.Fatalf("block stack not empty after Continue inside an If: %v", vm.blocks)
	}
}
