package interpreter

import (
	"fmt"

	"spool/interpreter-go/pkg/ast"
	"spool/interpreter-go/pkg/runtime"
)

// evaluateValue reduces a value expression to a Symbol. Variable lookups
// enforce the tag fixed at declaration: an address-kind binding used where a
// symbol is required is a runtime error, never a coercion.
func (i *Interpreter) evaluateValue(node ast.ValueExpr) (runtime.Symbol, error) {
	switch n := node.(type) {
	case *ast.SymbolLit:
		return runtime.Symbol(n.Value), nil
	case *ast.Read:
		_, tape, err := i.config.ResolveTape(n.Tape)
		if err != nil {
			return 0, err
		}
		return tape.Read(), nil
	case *ast.Path:
		value, err := i.config.LookupPath(n)
		if err != nil {
			return 0, err
		}
		sym, ok := value.(runtime.SymbolValue)
		if !ok {
			return 0, &runtime.MismatchedTypesError{
				Param:    n.String(),
				Expected: "symbol",
				Actual:   value.Kind().String(),
			}
		}
		return sym.Sym, nil
	default:
		return 0, fmt.Errorf("unsupported value expression: %s", n.NodeType())
	}
}

// evaluateGuard reduces a guard to a boolean. And/Or are strict: both sides
// are evaluated before combining.
func (i *Interpreter) evaluateGuard(node ast.GuardExpr) (bool, error) {
	switch n := node.(type) {
	case *ast.BoolLit:
		return n.Value, nil
	case *ast.Not:
		inner, err := i.evaluateGuard(n.Operand)
		if err != nil {
			return false, err
		}
		return !inner, nil
	case *ast.And:
		left, err := i.evaluateGuard(n.Left)
		if err != nil {
			return false, err
		}
		right, err := i.evaluateGuard(n.Right)
		if err != nil {
			return false, err
		}
		return left && right, nil
	case *ast.Or:
		left, err := i.evaluateGuard(n.Left)
		if err != nil {
			return false, err
		}
		right, err := i.evaluateGuard(n.Right)
		if err != nil {
			return false, err
		}
		return left || right, nil
	case *ast.Eq:
		left, right, err := i.evaluatePair(n.Left, n.Right)
		if err != nil {
			return false, err
		}
		return left == right, nil
	case *ast.Le:
		left, right, err := i.evaluatePair(n.Left, n.Right)
		if err != nil {
			return false, err
		}
		return left <= right, nil
	default:
		return false, fmt.Errorf("unsupported guard expression: %s", n.NodeType())
	}
}

func (i *Interpreter) evaluatePair(left, right ast.ValueExpr) (runtime.Symbol, runtime.Symbol, error) {
	l, err := i.evaluateValue(left)
	if err != nil {
		return 0, 0, err
	}
	r, err := i.evaluateValue(right)
	if err != nil {
		return 0, 0, err
	}
	return l, r, nil
}
