package runtime

import (
	"errors"
	"testing"

	"spool/interpreter-go/pkg/ast"
)

func TestAllocateThenDerefReturnsReference(t *testing.T) {
	config := NewConfig(8)
	tape := NewTape("abc")
	addr, err := config.Allocate(tape)
	if err != nil {
		t.Fatalf("allocate failed: %v", err)
	}
	ref, ok := config.Deref(addr)
	if !ok {
		t.Fatalf("deref missed address %d", addr)
	}
	if ref != Reference(tape) {
		t.Fatalf("deref returned a different reference")
	}
}

func TestAllocateExhaustsPool(t *testing.T) {
	config := NewConfig(2)
	for i := 0; i < 2; i++ {
		if _, err := config.Allocate(NewTape("")); err != nil {
			t.Fatalf("allocation %d failed: %v", i, err)
		}
	}
	_, err := config.Allocate(NewTape(""))
	var exhausted *HeapExhaustedError
	if !errors.As(err, &exhausted) {
		t.Fatalf("expected HeapExhaustedError, got %v", err)
	}
}

func TestRevertFrameFreesExactlyFreshAddresses(t *testing.T) {
	config := NewConfig(8)
	oldAddr, err := config.Allocate(NewTape("old"))
	if err != nil {
		t.Fatalf("allocate failed: %v", err)
	}
	pre := config.SnapshotFrame()

	freshA, _ := config.Allocate(NewTape("a"))
	freshB, _ := config.Allocate(NewTape("b"))
	config.RevertFrame(pre)

	if _, ok := config.Deref(oldAddr); !ok {
		t.Fatalf("pre-call address %d must survive the revert", oldAddr)
	}
	if _, ok := config.Deref(freshA); ok {
		t.Fatalf("fresh address %d must be reclaimed", freshA)
	}
	if _, ok := config.Deref(freshB); ok {
		t.Fatalf("fresh address %d must be reclaimed", freshB)
	}
	if got := config.Heap().FreeCount(); got != 7 {
		t.Fatalf("expected 7 free slots after revert, got %d", got)
	}
}

func TestRevertFrameRestoresBindingTables(t *testing.T) {
	config := NewConfig(8)
	config.BindTop("x", SymbolValue{Sym: 'a'})
	config.DefineFunction(&FunctionDef{Name: "f"})
	pre := config.SnapshotFrame()

	config.BindTop("x", SymbolValue{Sym: 'z'})
	config.BindTop("y", SymbolValue{Sym: 'q'})
	config.DefineFunction(&FunctionDef{Name: "g"})
	config.RevertFrame(pre)

	if v, _ := config.Lookup("x"); v.(SymbolValue).Sym != 'a' {
		t.Fatalf("binding 'x' not restored: %#v", v)
	}
	if _, ok := config.Lookup("y"); ok {
		t.Fatalf("frame-local binding 'y' must disappear on revert")
	}
	if _, ok := config.Function("g"); ok {
		t.Fatalf("frame-local function 'g' must disappear on revert")
	}
	if _, ok := config.Function("f"); !ok {
		t.Fatalf("pre-call function 'f' must survive the revert")
	}
}

func TestLookupPathThroughObjectFields(t *testing.T) {
	config := NewConfig(8)
	tapeAddr, _ := config.Allocate(NewTape("123"))
	objAddr, _ := config.Allocate(&Object{
		Fields: []ObjectField{
			{Name: "digits", Value: AddressValue{Addr: tapeAddr}},
			{Name: "sign", Value: SymbolValue{Sym: '+'}},
		},
	})
	config.BindTop("c", AddressValue{Addr: objAddr})

	value, err := config.LookupPath(ast.NewPath("c", "sign"))
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if value.(SymbolValue).Sym != '+' {
		t.Fatalf("unexpected field value %#v", value)
	}

	_, tape, err := config.ResolveTape(ast.NewPath("c", "digits"))
	if err != nil {
		t.Fatalf("tape field lookup failed: %v", err)
	}
	if tape.Render() != "123" {
		t.Fatalf("unexpected tape contents %q", tape.Render())
	}
}

func TestLookupPathMissingSegment(t *testing.T) {
	config := NewConfig(8)
	_, err := config.LookupPath(ast.NewPath("nope"))
	var undef *UndefinedVariableError
	if !errors.As(err, &undef) {
		t.Fatalf("expected UndefinedVariableError, got %v", err)
	}
	if undef.Path != "nope" {
		t.Fatalf("unexpected path in error: %q", undef.Path)
	}
}

func TestLookupPathThroughSymbolIsKindMismatch(t *testing.T) {
	config := NewConfig(8)
	config.BindTop("x", SymbolValue{Sym: 'a'})
	_, err := config.LookupPath(ast.NewPath("x", "field"))
	var mismatch *MismatchedTypesError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected MismatchedTypesError, got %v", err)
	}
}

func TestResolveTapeRejectsObjects(t *testing.T) {
	config := NewConfig(8)
	objAddr, _ := config.Allocate(&Object{})
	config.BindTop("o", AddressValue{Addr: objAddr})
	_, _, err := config.ResolveTape(ast.NewPath("o"))
	var undef *UndefinedTapeError
	if !errors.As(err, &undef) {
		t.Fatalf("expected UndefinedTapeError, got %v", err)
	}
}

func TestMutateTapeAppliesInPlace(t *testing.T) {
	config := NewConfig(8)
	addr, _ := config.Allocate(NewTape("abc"))
	if err := config.MutateTape(addr, func(tp *Tape) { tp.Write('z') }); err != nil {
		t.Fatalf("mutate failed: %v", err)
	}
	ref, _ := config.Deref(addr)
	if got := ref.(*Tape).Render(); got != "zbc" {
		t.Fatalf("expected in-place mutation, got %q", got)
	}
}
