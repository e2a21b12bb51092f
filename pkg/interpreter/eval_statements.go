package interpreter

import (
	"errors"
	"fmt"

	"spool/interpreter-go/pkg/ast"
	"spool/interpreter-go/pkg/runtime"
)

func (i *Interpreter) evaluateStatement(node ast.Statement) (Outcome, error) {
	switch n := node.(type) {
	case *ast.Block:
		return i.evaluateBlock(n.Body)
	case *ast.MoveLeft:
		return i.evaluateTapeOp(n.Tape, (*runtime.Tape).MoveLeft)
	case *ast.MoveRight:
		return i.evaluateTapeOp(n.Tape, (*runtime.Tape).MoveRight)
	case *ast.Write:
		return i.evaluateWrite(n)
	case *ast.WriteString:
		return i.evaluateWriteString(n)
	case *ast.VarDecl:
		return i.evaluateVarDecl(n)
	case *ast.TapeDecl:
		return i.evaluateTapeDecl(n)
	case *ast.StructDecl:
		return i.evaluateStructDecl(n)
	case *ast.ObjDecl:
		return i.evaluateObjDecl(n)
	case *ast.FuncDecl:
		return i.evaluateFuncDecl(n)
	case *ast.Call:
		return i.evaluateCall(n)
	case *ast.If:
		return i.evaluateIf(n)
	case *ast.While:
		return i.evaluateWhile(n)
	case *ast.Accept:
		return HaltAccept, nil
	case *ast.Reject:
		return HaltReject, nil
	case *ast.PrintRead:
		return i.evaluatePrintRead(n)
	case *ast.PrintString:
		i.print(n.Value)
		return Continuing, nil
	case *ast.DumpTape:
		return i.evaluateDumpTape(n)
	default:
		return Continuing, fmt.Errorf("unsupported statement type: %s", n.NodeType())
	}
}

func (i *Interpreter) evaluateTapeOp(path *ast.Path, op func(*runtime.Tape)) (Outcome, error) {
	addr, _, err := i.config.ResolveTape(path)
	if err != nil {
		return Continuing, err
	}
	if err := i.config.MutateTape(addr, op); err != nil {
		return Continuing, err
	}
	return Continuing, nil
}

func (i *Interpreter) evaluateWrite(stmt *ast.Write) (Outcome, error) {
	addr, _, err := i.config.ResolveTape(stmt.Tape)
	if err != nil {
		return Continuing, err
	}
	sym, err := i.evaluateValue(stmt.Value)
	if err != nil {
		return Continuing, err
	}
	if err := i.config.MutateTape(addr, func(t *runtime.Tape) { t.Write(sym) }); err != nil {
		return Continuing, err
	}
	return Continuing, nil
}

func (i *Interpreter) evaluateWriteString(stmt *ast.WriteString) (Outcome, error) {
	addr, _, err := i.config.ResolveTape(stmt.Tape)
	if err != nil {
		return Continuing, err
	}
	symbols := []rune(stmt.Value)
	err = i.config.MutateTape(addr, func(t *runtime.Tape) {
		for idx, r := range symbols {
			t.Write(runtime.Symbol(r))
			if idx < len(symbols)-1 {
				t.MoveRight()
			}
		}
	})
	if err != nil {
		return Continuing, err
	}
	return Continuing, nil
}

func (i *Interpreter) evaluateVarDecl(stmt *ast.VarDecl) (Outcome, error) {
	sym, err := i.evaluateValue(stmt.Value)
	if err != nil {
		return Continuing, err
	}
	i.config.BindTop(stmt.Name, runtime.SymbolValue{Sym: sym})
	return Continuing, nil
}

func (i *Interpreter) evaluateTapeDecl(stmt *ast.TapeDecl) (Outcome, error) {
	addr, err := i.config.Allocate(runtime.NewTape(stmt.Content))
	if err != nil {
		return Continuing, err
	}
	i.config.BindTop(stmt.Name, runtime.AddressValue{Addr: addr})
	return Continuing, nil
}

func (i *Interpreter) evaluateStructDecl(stmt *ast.StructDecl) (Outcome, error) {
	i.config.DefineStruct(&runtime.StructLayout{Name: stmt.Name, Fields: stmt.Fields})
	return Continuing, nil
}

func (i *Interpreter) evaluateObjDecl(stmt *ast.ObjDecl) (Outcome, error) {
	layout, ok := i.config.Struct(stmt.Struct)
	if !ok {
		return Continuing, &runtime.UndefinedStructError{Name: stmt.Struct}
	}
	if len(stmt.Args) != len(layout.Fields) {
		return Continuing, &runtime.WrongNumArgsError{
			Name:     stmt.Struct,
			Expected: len(layout.Fields),
			Actual:   len(stmt.Args),
		}
	}

	fields := make([]runtime.ObjectField, 0, len(layout.Fields))
	for idx, field := range layout.Fields {
		value, err := i.bindArgument(field.Name, stmt.Struct, field.Kind, stmt.Args[idx])
		if err != nil {
			return Continuing, err
		}
		fields = append(fields, runtime.ObjectField{Name: field.Name, Value: value})
	}

	addr, err := i.config.Allocate(&runtime.Object{Layout: layout, Fields: fields})
	if err != nil {
		return Continuing, err
	}
	i.config.BindTop(stmt.Name, runtime.AddressValue{Addr: addr})
	return Continuing, nil
}

func (i *Interpreter) evaluateFuncDecl(stmt *ast.FuncDecl) (Outcome, error) {
	i.config.DefineFunction(&runtime.FunctionDef{
		Name:   stmt.Name,
		Params: stmt.Params,
		Body:   stmt.Body,
	})
	return Continuing, nil
}

// evaluateCall binds actuals per the matching formal's declared kind,
// executes the body under the extended scope, then reverts to the pre-call
// frame. A symbol-kind formal binds the evaluated value; a tape-kind formal
// bound to an existing tape variable aliases the caller's address, so callee
// writes stay visible after the revert; a tape-kind formal given a literal
// gets a private tape, allocated inside the frame so the revert reclaims it.
func (i *Interpreter) evaluateCall(stmt *ast.Call) (Outcome, error) {
	def, ok := i.config.Function(stmt.Name)
	if !ok {
		return Continuing, &runtime.UndefinedFunctionError{Name: stmt.Name}
	}
	if len(stmt.Args) != len(def.Params) {
		return Continuing, &runtime.WrongNumArgsError{
			Name:     stmt.Name,
			Expected: len(def.Params),
			Actual:   len(stmt.Args),
		}
	}

	// Arguments are resolved in the caller's scope before the snapshot;
	// private-tape allocations are deferred until after it.
	type pending struct {
		name    string
		value   runtime.Value
		content *string
	}
	bindings := make([]pending, 0, len(def.Params))
	for idx, param := range def.Params {
		arg := stmt.Args[idx]
		switch param.Kind {
		case ast.ParamTape:
			if lit, ok := arg.(*ast.StringLit); ok {
				content := lit.Value
				bindings = append(bindings, pending{name: param.Name, content: &content})
				continue
			}
			path, ok := arg.(*ast.Path)
			if !ok {
				return Continuing, &runtime.MismatchedTypesError{
					Param:    param.Name,
					Callee:   stmt.Name,
					Expected: "tape",
					Actual:   string(arg.NodeType()),
				}
			}
			addr, err := i.resolveTapeArgument(param.Name, stmt.Name, path)
			if err != nil {
				return Continuing, err
			}
			bindings = append(bindings, pending{name: param.Name, value: runtime.AddressValue{Addr: addr}})
		default:
			value, err := i.bindArgument(param.Name, stmt.Name, param.Kind, arg)
			if err != nil {
				return Continuing, err
			}
			bindings = append(bindings, pending{name: param.Name, value: value})
		}
	}

	pre := i.config.SnapshotFrame()
	for _, b := range bindings {
		if b.content != nil {
			addr, err := i.config.Allocate(runtime.NewTape(*b.content))
			if err != nil {
				i.config.RevertFrame(pre)
				return Continuing, err
			}
			i.config.BindTop(b.name, runtime.AddressValue{Addr: addr})
			continue
		}
		i.config.BindTop(b.name, b.value)
	}

	outcome, err := i.evaluateBlock(def.Body.Body)
	if err != nil {
		i.config.RevertFrame(pre)
		return Continuing, err
	}
	// The callee frame never escapes, halted or not: aliased tape writes
	// live in the heap and survive the revert, and output is already
	// appended.
	i.config.RevertFrame(pre)
	return outcome, nil
}

// bindArgument applies the parameter-binding rule for one formal. A
// symbol-kind formal always binds by value; there is no aliasing analog for
// symbols. A tape-kind formal accepts a path (alias) or a literal (fresh
// private tape allocated in the current frame).
func (i *Interpreter) bindArgument(paramName, calleeName string, kind ast.ParamKind, arg ast.Argument) (runtime.Value, error) {
	switch kind {
	case ast.ParamSymbol:
		value, ok := arg.(ast.ValueExpr)
		if !ok {
			return nil, &runtime.MismatchedTypesError{
				Param:    paramName,
				Callee:   calleeName,
				Expected: "symbol",
				Actual:   string(arg.NodeType()),
			}
		}
		sym, err := i.evaluateValue(value)
		if err != nil {
			return nil, err
		}
		return runtime.SymbolValue{Sym: sym}, nil
	case ast.ParamTape:
		switch a := arg.(type) {
		case *ast.StringLit:
			addr, err := i.config.Allocate(runtime.NewTape(a.Value))
			if err != nil {
				return nil, err
			}
			return runtime.AddressValue{Addr: addr}, nil
		case *ast.Path:
			addr, err := i.resolveTapeArgument(paramName, calleeName, a)
			if err != nil {
				return nil, err
			}
			return runtime.AddressValue{Addr: addr}, nil
		default:
			return nil, &runtime.MismatchedTypesError{
				Param:    paramName,
				Callee:   calleeName,
				Expected: "tape",
				Actual:   string(arg.NodeType()),
			}
		}
	default:
		return nil, fmt.Errorf("unknown parameter kind %q", kind)
	}
}

// resolveTapeArgument resolves a path-form tape argument to its address. An
// undeclared base variable stays an UndefinedVariableError, matching
// symbol-kind arguments; a binding that exists but is not tape-kind is a
// parameter mismatch.
func (i *Interpreter) resolveTapeArgument(paramName, calleeName string, path *ast.Path) (runtime.Address, error) {
	addr, _, err := i.config.ResolveTape(path)
	if err == nil {
		return addr, nil
	}
	if _, lookupErr := i.config.LookupPath(path); lookupErr != nil {
		var undef *runtime.UndefinedVariableError
		if errors.As(lookupErr, &undef) {
			return 0, lookupErr
		}
	}
	return 0, &runtime.MismatchedTypesError{
		Param:    paramName,
		Callee:   calleeName,
		Expected: "tape",
		Actual:   path.String(),
	}
}

func (i *Interpreter) evaluateIf(stmt *ast.If) (Outcome, error) {
	for _, branch := range stmt.Branches {
		matched, err := i.evaluateGuard(branch.Guard)
		if err != nil {
			return Continuing, err
		}
		if matched {
			return i.evaluateBlock(branch.Body.Body)
		}
	}
	if stmt.Else != nil {
		return i.evaluateBlock(stmt.Else.Body)
	}
	return Continuing, nil
}

func (i *Interpreter) evaluateWhile(stmt *ast.While) (Outcome, error) {
	for {
		keep, err := i.evaluateGuard(stmt.Guard)
		if err != nil {
			return Continuing, err
		}
		if !keep {
			return Continuing, nil
		}
		outcome, err := i.evaluateBlock(stmt.Body.Body)
		if err != nil {
			return Continuing, err
		}
		if outcome.Halted() {
			return outcome, nil
		}
	}
}

func (i *Interpreter) evaluatePrintRead(stmt *ast.PrintRead) (Outcome, error) {
	_, tape, err := i.config.ResolveTape(stmt.Tape)
	if err != nil {
		return Continuing, err
	}
	i.print(string(rune(tape.Read())))
	return Continuing, nil
}

func (i *Interpreter) evaluateDumpTape(stmt *ast.DumpTape) (Outcome, error) {
	_, tape, err := i.config.ResolveTape(stmt.Tape)
	if err != nil {
		return Continuing, err
	}
	i.print(tape.Render())
	return Continuing, nil
}
