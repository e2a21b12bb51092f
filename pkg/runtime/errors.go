package runtime

import "fmt"

// All runtime errors are fatal: the core surfaces exactly one and stops.
// Output accumulated before the error remains valid.

type UndefinedVariableError struct {
	Path string
}

func (e *UndefinedVariableError) Error() string {
	return fmt.Sprintf("undefined variable '%s'", e.Path)
}

type UndefinedTapeError struct {
	Name string
}

func (e *UndefinedTapeError) Error() string {
	return fmt.Sprintf("'%s' is not bound to a tape", e.Name)
}

type UndefinedFunctionError struct {
	Name string
}

func (e *UndefinedFunctionError) Error() string {
	return fmt.Sprintf("call to undeclared function '%s'", e.Name)
}

type UndefinedStructError struct {
	Name string
}

func (e *UndefinedStructError) Error() string {
	return fmt.Sprintf("undeclared struct '%s'", e.Name)
}

type WrongNumArgsError struct {
	Name     string
	Expected int
	Actual   int
}

func (e *WrongNumArgsError) Error() string {
	return fmt.Sprintf("'%s' expects %d argument(s), got %d", e.Name, e.Expected, e.Actual)
}

type MismatchedTypesError struct {
	Param    string
	Callee   string
	Expected string
	Actual   string
}

func (e *MismatchedTypesError) Error() string {
	if e.Callee == "" {
		return fmt.Sprintf("'%s' expects %s, got %s", e.Param, e.Expected, e.Actual)
	}
	return fmt.Sprintf("parameter '%s' of '%s' expects %s, got %s", e.Param, e.Callee, e.Expected, e.Actual)
}

type HeapExhaustedError struct{}

func (e *HeapExhaustedError) Error() string {
	return "heap exhausted: no free address available"
}
