package runtime

import (
	"spool/interpreter-go/pkg/ast"
)

// DefaultHeapSlots is the free-address pool size for a fresh Config.
const DefaultHeapSlots = 4096

// Heap is a slot arena with an explicit free list. A nil cell is free;
// exhaustion of the free list is a fallible-allocation error, not a crash.
type Heap struct {
	cells []Reference
	free  []Address
}

// NewHeap creates an arena with the given number of slots.
func NewHeap(slots int) *Heap {
	h := &Heap{
		cells: make([]Reference, slots),
		free:  make([]Address, 0, slots),
	}
	for i := slots - 1; i >= 0; i-- {
		h.free = append(h.free, Address(i))
	}
	return h
}

// Allocate stores ref in a free slot and returns its address.
func (h *Heap) Allocate(ref Reference) (Address, error) {
	if len(h.free) == 0 {
		return 0, &HeapExhaustedError{}
	}
	addr := h.free[len(h.free)-1]
	h.free = h.free[:len(h.free)-1]
	h.cells[addr] = ref
	return addr, nil
}

// Deref returns the reference stored at addr.
func (h *Heap) Deref(addr Address) (Reference, bool) {
	if int(addr) < 0 || int(addr) >= len(h.cells) || h.cells[addr] == nil {
		return nil, false
	}
	return h.cells[addr], true
}

// Release returns addr to the free pool.
func (h *Heap) Release(addr Address) {
	if int(addr) < 0 || int(addr) >= len(h.cells) || h.cells[addr] == nil {
		return
	}
	h.cells[addr] = nil
	h.free = append(h.free, addr)
}

// Live returns the set of currently-allocated addresses.
func (h *Heap) Live() map[Address]struct{} {
	live := make(map[Address]struct{})
	for i, cell := range h.cells {
		if cell != nil {
			live[Address(i)] = struct{}{}
		}
	}
	return live
}

// FreeCount reports how many addresses remain in the pool.
func (h *Heap) FreeCount() int { return len(h.free) }

// Config is the full runtime state: variable bindings, function table,
// struct layouts, the heap, and its free-address pool. Heap cells mutate in
// place behind stable addresses; the binding tables are snapshot/restored
// per call frame.
type Config struct {
	vars    map[string]Value
	funcs   map[string]*FunctionDef
	structs map[string]*StructLayout
	heap    *Heap
}

// NewConfig creates an empty Config backed by a heap with the given number
// of slots.
func NewConfig(heapSlots int) *Config {
	return &Config{
		vars:    make(map[string]Value),
		funcs:   make(map[string]*FunctionDef),
		structs: make(map[string]*StructLayout),
		heap:    NewHeap(heapSlots),
	}
}

// Heap exposes the underlying arena.
func (c *Config) Heap() *Heap { return c.heap }

// BindTop inserts or overwrites a top-level binding. Nested member
// assignment is not supported; objects are write-once at construction.
func (c *Config) BindTop(name string, value Value) {
	c.vars[name] = value
}

// Lookup returns the top-level binding for name.
func (c *Config) Lookup(name string) (Value, bool) {
	v, ok := c.vars[name]
	return v, ok
}

// DefineFunction registers or overwrites a function-table entry.
func (c *Config) DefineFunction(def *FunctionDef) {
	c.funcs[def.Name] = def
}

// Function returns the function-table entry for name.
func (c *Config) Function(name string) (*FunctionDef, bool) {
	def, ok := c.funcs[name]
	return def, ok
}

// DefineStruct registers or overwrites a struct layout.
func (c *Config) DefineStruct(layout *StructLayout) {
	c.structs[layout.Name] = layout
}

// Struct returns the layout declared under name.
func (c *Config) Struct(name string) (*StructLayout, bool) {
	layout, ok := c.structs[name]
	return layout, ok
}

// Allocate stores a reference on the heap.
func (c *Config) Allocate(ref Reference) (Address, error) {
	return c.heap.Allocate(ref)
}

// Deref returns the reference behind addr.
func (c *Config) Deref(addr Address) (Reference, bool) {
	return c.heap.Deref(addr)
}

// LookupPath resolves a (possibly multi-segment) variable path: the first
// segment against the variable table, each subsequent segment by
// dereferencing the previous address into an object and looking up the next
// field.
func (c *Config) LookupPath(path *ast.Path) (Value, error) {
	if len(path.Segments) == 0 {
		return nil, &UndefinedVariableError{Path: path.String()}
	}
	value, ok := c.vars[path.Segments[0]]
	if !ok {
		return nil, &UndefinedVariableError{Path: path.Segments[0]}
	}
	for _, seg := range path.Segments[1:] {
		addr, ok := value.(AddressValue)
		if !ok {
			return nil, &MismatchedTypesError{
				Param:    seg,
				Callee:   path.String(),
				Expected: "object",
				Actual:   value.Kind().String(),
			}
		}
		ref, ok := c.heap.Deref(addr.Addr)
		if !ok {
			return nil, &UndefinedVariableError{Path: path.String()}
		}
		obj, ok := ref.(*Object)
		if !ok {
			return nil, &MismatchedTypesError{
				Param:    seg,
				Callee:   path.String(),
				Expected: "object",
				Actual:   RefKindOf(ref).String(),
			}
		}
		value, ok = obj.Field(seg)
		if !ok {
			return nil, &UndefinedVariableError{Path: path.String()}
		}
	}
	return value, nil
}

// ResolveTape resolves path to a tape-kind heap reference. Any failure —
// a missing binding, a symbol-kind variable, or an object-kind slot —
// surfaces as UndefinedTape.
func (c *Config) ResolveTape(path *ast.Path) (Address, *Tape, error) {
	value, err := c.LookupPath(path)
	if err != nil {
		return 0, nil, &UndefinedTapeError{Name: path.String()}
	}
	addr, ok := value.(AddressValue)
	if !ok {
		return 0, nil, &UndefinedTapeError{Name: path.String()}
	}
	ref, ok := c.heap.Deref(addr.Addr)
	if !ok {
		return 0, nil, &UndefinedTapeError{Name: path.String()}
	}
	tape, ok := ref.(*Tape)
	if !ok {
		return 0, nil, &UndefinedTapeError{Name: path.String()}
	}
	return addr.Addr, tape, nil
}

// MutateTape applies f to the tape stored at addr.
func (c *Config) MutateTape(addr Address, f func(*Tape)) error {
	ref, ok := c.heap.Deref(addr)
	if !ok {
		return &UndefinedTapeError{Name: "unallocated address"}
	}
	tape, ok := ref.(*Tape)
	if !ok {
		return &UndefinedTapeError{Name: "non-tape reference"}
	}
	f(tape)
	return nil
}

// Frame is a pre-call snapshot of the scope portion of a Config plus the
// set of addresses live at snapshot time.
type Frame struct {
	vars    map[string]Value
	funcs   map[string]*FunctionDef
	structs map[string]*StructLayout
	live    map[Address]struct{}
}

// SnapshotFrame copies the binding tables and the live-address set.
func (c *Config) SnapshotFrame() *Frame {
	f := &Frame{
		vars:    make(map[string]Value, len(c.vars)),
		funcs:   make(map[string]*FunctionDef, len(c.funcs)),
		structs: make(map[string]*StructLayout, len(c.structs)),
		live:    c.heap.Live(),
	}
	for k, v := range c.vars {
		f.vars[k] = v
	}
	for k, v := range c.funcs {
		f.funcs[k] = v
	}
	for k, v := range c.structs {
		f.structs[k] = v
	}
	return f
}

// RevertFrame restores the binding tables from pre and returns to the free
// pool every address allocated since the snapshot. The language disallows
// smuggling a fresh address out of a call except through a reference-kind
// parameter alias, so the set difference reclaims exactly the frame's
// private allocations.
func (c *Config) RevertFrame(pre *Frame) {
	for addr := range c.heap.Live() {
		if _, ok := pre.live[addr]; !ok {
			c.heap.Release(addr)
		}
	}
	c.vars = pre.vars
	c.funcs = pre.funcs
	c.structs = pre.structs
}
