package runtime

import (
	"fmt"

	"spool/interpreter-go/pkg/ast"
)

// Symbol is an atomic tape-cell value.
type Symbol rune

// Address identifies a heap slot. Addresses are unique among
// currently-allocated slots and may be reused after reclamation.
type Address int

// Kind identifies the tag of a Variable: the value it holds directly.
type Kind int

const (
	KindSymbol Kind = iota
	KindAddress
)

func (k Kind) String() string {
	switch k {
	case KindSymbol:
		return "symbol"
	case KindAddress:
		return "address"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Value is the contents of a variable binding: a Symbol or an Address. The
// tag is fixed at declaration and checked on every later use.
type Value interface {
	Kind() Kind
}

type SymbolValue struct {
	Sym Symbol
}

func (v SymbolValue) Kind() Kind { return KindSymbol }

type AddressValue struct {
	Addr Address
}

func (v AddressValue) Kind() Kind { return KindAddress }

// RefKind identifies the category of a heap-resident reference.
type RefKind int

const (
	RefTape RefKind = iota
	RefObject
)

func (k RefKind) String() string {
	switch k {
	case RefTape:
		return "tape"
	case RefObject:
		return "object"
	default:
		return fmt.Sprintf("unknown_ref_%d", int(k))
	}
}

// Reference is a heap cell's contents: a Tape or an Object. A slot's kind is
// fixed for the lifetime of the allocation.
type Reference interface {
	refKind() RefKind
}

// RefKindOf reports the category of a reference.
func RefKindOf(ref Reference) RefKind { return ref.refKind() }

// ObjectField is one named slot of a struct instance.
type ObjectField struct {
	Name  string
	Value Value
}

// Object is a struct instance: an ordered field-name-to-value mapping.
// Objects are write-once; fields are bound at construction and never
// reassigned.
type Object struct {
	Layout *StructLayout
	Fields []ObjectField
}

func (o *Object) refKind() RefKind { return RefObject }

// Field returns the named field's value.
func (o *Object) Field(name string) (Value, bool) {
	for _, f := range o.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// StructLayout records a declared struct's ordered fields. Field kinds are
// carried from the front end so construction can apply the tape-vs-symbol
// binding rule.
type StructLayout struct {
	Name   string
	Fields []*ast.FieldDecl
}

// FunctionDef is a function-table entry. Redeclaration overwrites.
type FunctionDef struct {
	Name   string
	Params []*ast.Param
	Body   *ast.Block
}
