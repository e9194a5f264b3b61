package token

import (
	"math"
	"strconv"

	"github.com/tibasic/pb/internal/errors"
)

// SimpleVar is a scalar variable slot: A..Z, θ, or Str0..Str9. Reading
// and writing go straight through to the VM's variable store, keyed by
// the token's own textual name.
type SimpleVar struct {
	Name string
}

func (v *SimpleVar) Priority() Priority { return None }
func (v *SimpleVar) Token() string      { return v.Name }
func (v *SimpleVar) Get(vm VM) (any, error) {
	val, err := vm.GetVar(v.Name)
	if err != nil {
		return nil, err
	}
	return val, nil
}
func (v *SimpleVar) Set(vm VM, value any) error { return vm.SetVar(v.Name, value) }

// Const is an immutable constant slot: π, e, or Ans. Assignment always
// fails with InvalidOperation, except Ans which the VM itself rewrites
// after every top-level value-producing statement (never through Set).
type Const struct {
	Name  string
	Value func(vm VM) any
}

func (c *Const) Priority() Priority { return None }
func (c *Const) Token() string      { return c.Name }
func (c *Const) Get(vm VM) (any, error) {
	return c.Value(vm), nil
}

// Set always fails: π, e and Ans are immutable (spec.md §7's
// InvalidOperation, raised the moment a store targets a constant by
// name rather than falling through to a generic "not assignable").
func (c *Const) Set(VM, any) error { return &errors.InvalidOperation{Name: c.Name} }

func init() {
	for r := 'A'; r <= 'Z'; r++ {
		name := string(r)
		RegisterVariable(name, func() Factory {
			n := name
			return func() Node { return &SimpleVar{Name: n} }
		}())
	}
	RegisterVariable("θ", func() Node { return &SimpleVar{Name: "θ"} })
	for i := 0; i < 10; i++ {
		name := "Str" + strconv.Itoa(i)
		RegisterVariable(name, func() Factory {
			n := name
			return func() Node { return &SimpleVar{Name: n} }
		}())
	}

	RegisterVariable("π", func() Node {
		return &Const{Name: "π", Value: func(VM) any { return math.Pi }}
	})
	RegisterVariable("e", func() Node {
		return &Const{Name: "e", Value: func(VM) any { return math.E }}
	})
	RegisterVariable("Ans", func() Node {
		return &Const{Name: "Ans", Value: func(vm VM) any { return vm.Ans() }}
	})
}
