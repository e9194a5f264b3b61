package token

// ProgramCall is prgm<NAME> (spec.md §4.4/§4.6): a contiguous
// lexer-recognized reference to another .bas program, constructed
// straight from the scanned text the same way NewListVar is for
// ∟NAME, rather than through the catalog. Running it invokes the named
// program in a fresh sub-interpreter via VM.InvokeProgram and resumes
// the caller's next statement once it returns.
type ProgramCall struct{ Name string }

func NewProgramCall(name string) *ProgramCall { return &ProgramCall{Name: name} }

func (p *ProgramCall) Priority() Priority { return Invalid }
func (p *ProgramCall) Token() string      { return "prgm" + p.Name }
func (p *ProgramCall) Run(vm VM) error {
	if err := vm.InvokeProgram(p.Name); err != nil {
		return err
	}
	vm.Inc()
	return nil
}
