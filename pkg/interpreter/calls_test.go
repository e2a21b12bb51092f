package interpreter

import (
	"errors"
	"testing"

	"spool/interpreter-go/pkg/ast"
	"spool/interpreter-go/pkg/runtime"
)

func TestCallUndeclaredFunction(t *testing.T) {
	interp := New("")
	_, err := interp.Run(ast.Prog(ast.CallN("ghost")))
	var undef *runtime.UndefinedFunctionError
	if !errors.As(err, &undef) {
		t.Fatalf("expected UndefinedFunctionError, got %v", err)
	}
	if undef.Name != "ghost" {
		t.Fatalf("unexpected function name %q", undef.Name)
	}
}

func TestCallArityMismatch(t *testing.T) {
	interp := New("")
	_, err := interp.Run(ast.Prog(
		ast.Fn("f", []*ast.Param{ast.Prm("a", ast.ParamSymbol), ast.Prm("b", ast.ParamSymbol)}),
		ast.CallN("f", ast.Sym('x')),
	))
	var wrong *runtime.WrongNumArgsError
	if !errors.As(err, &wrong) {
		t.Fatalf("expected WrongNumArgsError, got %v", err)
	}
	if wrong.Expected != 2 || wrong.Actual != 1 {
		t.Fatalf("expected (2, 1), got (%d, %d)", wrong.Expected, wrong.Actual)
	}
}

func TestFunctionCalledTwiceMovesHeadTwice(t *testing.T) {
	interp := New("abc")
	mustContinue(t, interp, ast.Prog(
		ast.Fn("step", []*ast.Param{ast.Prm("t", ast.ParamTape)},
			ast.Right("t"),
		),
		ast.CallN("step", ast.P("input")),
		ast.CallN("step", ast.P("input")),
	))
	if got := inputTape(t, interp).Head(); got != 2 {
		t.Fatalf("expected head 2 after two calls, got %d", got)
	}
}

func TestTapeParameterAliasesExistingVariable(t *testing.T) {
	interp := New("abc")
	mustContinue(t, interp, ast.Prog(
		ast.Fn("mark", []*ast.Param{ast.Prm("t", ast.ParamTape)},
			ast.Wr(ast.P("t"), ast.Sym('!')),
		),
		ast.CallN("mark", ast.P("input")),
	))
	if got := inputTape(t, interp).Render(); got != "!bc" {
		t.Fatalf("callee writes must be visible through the alias, got %q", got)
	}
}

func TestTapeParameterFromLiteralDoesNotAlias(t *testing.T) {
	interp := New("abc")
	mustContinue(t, interp, ast.Prog(
		ast.Fn("mark", []*ast.Param{ast.Prm("t", ast.ParamTape)},
			ast.Wr(ast.P("t"), ast.Sym('!')),
		),
		ast.CallN("mark", ast.Str("xyz")),
	))
	if got := inputTape(t, interp).Render(); got != "abc" {
		t.Fatalf("a private tape must not affect the caller, got %q", got)
	}
}

func TestSymbolParameterBindsByValue(t *testing.T) {
	interp := New("a")
	mustContinue(t, interp, ast.Prog(
		ast.Var("x", ast.Sym('a')),
		ast.Fn("shadow", []*ast.Param{ast.Prm("x", ast.ParamSymbol)},
			ast.Var("x", ast.Sym('z')),
			ast.Wr(ast.P("input"), ast.P("x")),
		),
		ast.CallN("shadow", ast.P("x")),
	))
	value, ok := interp.Config().Lookup("x")
	if !ok {
		t.Fatal("caller binding for x is gone")
	}
	if value.(runtime.SymbolValue).Sym != 'a' {
		t.Fatalf("caller binding must be untouched, got %#v", value)
	}
	if got := inputTape(t, interp).Render(); got != "z" {
		t.Fatalf("callee must see its own binding, got %q", got)
	}
}

func TestCallKindMismatch(t *testing.T) {
	interp := New("abc")
	_, err := interp.Run(ast.Prog(
		ast.Fn("f", []*ast.Param{ast.Prm("t", ast.ParamTape)}),
		ast.CallN("f", ast.Sym('x')),
	))
	var mismatch *runtime.MismatchedTypesError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected MismatchedTypesError, got %v", err)
	}
	if mismatch.Param != "t" || mismatch.Callee != "f" {
		t.Fatalf("unexpected error context %#v", mismatch)
	}
}

func TestSymbolParameterRejectsTapeVariable(t *testing.T) {
	interp := New("abc")
	_, err := interp.Run(ast.Prog(
		ast.Fn("f", []*ast.Param{ast.Prm("s", ast.ParamSymbol)}),
		ast.CallN("f", ast.P("input")),
	))
	var mismatch *runtime.MismatchedTypesError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected MismatchedTypesError, got %v", err)
	}
}

func TestCallRevertsScopeAndReclaimsHeap(t *testing.T) {
	interp := New("abc")
	mustContinue(t, interp, ast.Prog(
		ast.Fn("noisy", []*ast.Param{ast.Prm("t", ast.ParamTape)},
			ast.Tape("scratch", "tmp"),
			ast.Var("local", ast.Sym('q')),
		),
	))
	freeBefore := interp.Config().Heap().FreeCount()

	mustContinue(t, interp, ast.Prog(
		ast.CallN("noisy", ast.Str("lit")),
	))
	if got := interp.Config().Heap().FreeCount(); got != freeBefore {
		t.Fatalf("private allocations must be reclaimed: %d free before, %d after", freeBefore, got)
	}
	if _, ok := interp.Config().Lookup("scratch"); ok {
		t.Fatalf("callee-scope tape binding leaked into the caller")
	}
	if _, ok := interp.Config().Lookup("local"); ok {
		t.Fatalf("callee-scope symbol binding leaked into the caller")
	}
}

func TestHaltedCallLeavesNoFrameBehind(t *testing.T) {
	interp := New("abc")
	mustContinue(t, interp, ast.Prog(
		ast.Fn("finish", []*ast.Param{ast.Prm("t", ast.ParamTape)},
			ast.PrintS("done"),
			ast.Acc(),
		),
	))
	freeBefore := interp.Config().Heap().FreeCount()

	outcome, err := interp.Run(ast.Prog(ast.CallN("finish", ast.Str("xyz"))))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome != HaltAccept {
		t.Fatalf("expected HaltAccept, got %v", outcome)
	}
	if _, ok := interp.Config().Lookup("t"); ok {
		t.Fatalf("callee-frame binding escaped the halted call")
	}
	if got := interp.Config().Heap().FreeCount(); got != freeBefore {
		t.Fatalf("private tape not reclaimed after halted call: %d free before, %d after", freeBefore, got)
	}
	if len(interp.Output()) != 1 || interp.Output()[0] != "done" {
		t.Fatalf("output emitted before the halt must survive the revert, got %v", interp.Output())
	}
}

func TestHaltedCallKeepsAliasedWrites(t *testing.T) {
	interp := New("abc")
	outcome, err := interp.Run(ast.Prog(
		ast.Fn("finish", []*ast.Param{ast.Prm("t", ast.ParamTape)},
			ast.Wr(ast.P("t"), ast.Sym('!')),
			ast.Rej(),
		),
		ast.CallN("finish", ast.P("input")),
	))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome != HaltReject {
		t.Fatalf("expected HaltReject, got %v", outcome)
	}
	if got := inputTape(t, interp).Render(); got != "!bc" {
		t.Fatalf("aliased writes must survive the halted call, got %q", got)
	}
	if _, ok := interp.Config().Lookup("t"); ok {
		t.Fatalf("callee-frame binding escaped the halted call")
	}
}

func TestTapeArgumentFromUndeclaredVariable(t *testing.T) {
	interp := New("")
	_, err := interp.Run(ast.Prog(
		ast.Fn("f", []*ast.Param{ast.Prm("t", ast.ParamTape)}),
		ast.CallN("f", ast.P("ghost")),
	))
	var undef *runtime.UndefinedVariableError
	if !errors.As(err, &undef) {
		t.Fatalf("expected UndefinedVariableError, got %v", err)
	}
	if undef.Path != "ghost" {
		t.Fatalf("unexpected path %q", undef.Path)
	}
}

func TestTapeArgumentFromSymbolVariableIsMismatch(t *testing.T) {
	interp := New("")
	_, err := interp.Run(ast.Prog(
		ast.Var("x", ast.Sym('a')),
		ast.Fn("f", []*ast.Param{ast.Prm("t", ast.ParamTape)}),
		ast.CallN("f", ast.P("x")),
	))
	var mismatch *runtime.MismatchedTypesError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected MismatchedTypesError, got %v", err)
	}
	if mismatch.Param != "t" || mismatch.Callee != "f" {
		t.Fatalf("unexpected error context %#v", mismatch)
	}
}

func TestFunctionRedeclarationOverwrites(t *testing.T) {
	interp := New("")
	mustContinue(t, interp, ast.Prog(
		ast.Fn("f", nil, ast.PrintS("first")),
		ast.Fn("f", nil, ast.PrintS("second")),
		ast.CallN("f"),
	))
	if len(interp.Output()) != 1 || interp.Output()[0] != "second" {
		t.Fatalf("last declaration must win, got %v", interp.Output())
	}
}

func TestRecursiveScanUntilMarkerAccepts(t *testing.T) {
	interp := New("ab#")
	scan := ast.Fn("scan", []*ast.Param{ast.Prm("t", ast.ParamTape)},
		ast.IfElse(
			ast.Blk(
				ast.Right("t"),
				ast.CallN("scan", ast.P("t")),
			),
			ast.Branch(ast.EqV(ast.Rd("t"), ast.Sym('#')), ast.Acc()),
		),
	)
	outcome, err := interp.Run(ast.Prog(
		scan,
		ast.CallN("scan", ast.P("input")),
	))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome != HaltAccept {
		t.Fatalf("expected HaltAccept, got %v", outcome)
	}
	if got := inputTape(t, interp).Head(); got != 2 {
		t.Fatalf("expected head 2 at the marker, got %d", got)
	}
}
