package interpreter

import (
	"fmt"

	"spool/interpreter-go/pkg/ast"
	"spool/interpreter-go/pkg/runtime"
)

// InputTapeName is the pre-declared tape variable holding external input.
const InputTapeName = "input"

// Outcome is the terminal state of an evaluation step. Halts are absorbing:
// once reached, no further statement executes.
type Outcome int

const (
	Continuing Outcome = iota
	HaltAccept
	HaltReject
)

func (o Outcome) String() string {
	switch o {
	case Continuing:
		return "continuing"
	case HaltAccept:
		return "accept"
	case HaltReject:
		return "reject"
	default:
		return fmt.Sprintf("unknown_outcome_%d", int(o))
	}
}

// Halted reports whether the outcome is an absorbing terminal state.
func (o Outcome) Halted() bool { return o != Continuing }

// Interpreter drives evaluation of Spool statements against a single Config.
// Every evaluation step returns (Outcome, error); an error anywhere aborts
// the entire remaining computation, a halt aborts only the statements still
// to be composed. Printed output is appended eagerly, so output produced
// before an error or halt survives it.
type Interpreter struct {
	config *runtime.Config
	output []string
}

// New creates an interpreter whose Config is seeded with the input tape,
// head at position 0, backed by the default free-address pool.
func New(input string) *Interpreter {
	interp, err := NewSized(input, runtime.DefaultHeapSlots)
	if err != nil {
		panic(err)
	}
	return interp
}

// NewSized is New with an explicit free-address pool size. It fails when the
// pool cannot hold the input tape.
func NewSized(input string, heapSlots int) (*Interpreter, error) {
	config := runtime.NewConfig(heapSlots)
	addr, err := config.Allocate(runtime.NewTape(input))
	if err != nil {
		return nil, err
	}
	config.BindTop(InputTapeName, runtime.AddressValue{Addr: addr})
	return &Interpreter{config: config}, nil
}

// Config exposes the runtime state, for hosts and tests.
func (i *Interpreter) Config() *runtime.Config { return i.config }

// Output returns the ordered log of printed items accumulated so far.
func (i *Interpreter) Output() []string { return i.output }

// Run executes a program whose imports have already been resolved and
// merged by the driver layer.
func (i *Interpreter) Run(program *ast.Program) (Outcome, error) {
	if len(program.Imports) > 0 {
		return Continuing, fmt.Errorf("unresolved import %q: programs must be import-merged before execution", program.Imports[0].Path)
	}
	return i.evaluateBlock(program.Body)
}

// evaluateBlock sequences statements: a halt or error produced by any
// statement aborts the remainder and propagates out unchanged, whatever the
// nesting depth it came from.
func (i *Interpreter) evaluateBlock(body []ast.Statement) (Outcome, error) {
	for _, stmt := range body {
		outcome, err := i.evaluateStatement(stmt)
		if err != nil {
			return Continuing, err
		}
		if outcome.Halted() {
			return outcome, nil
		}
	}
	return Continuing, nil
}

func (i *Interpreter) print(item string) {
	i.output = append(i.output, item)
}
