package runtime

import "strings"

// Blank is the symbol read from any cell that has never been written.
const Blank Symbol = '_'

// Tape is a symbol sequence with a movable head. The sequence is unbounded
// to the right; the head clamps at position 0 on the left. Cells beyond the
// materialized sequence read as Blank.
type Tape struct {
	cells []Symbol
	head  int
}

// NewTape builds a tape from the given contents with the head at position 0.
func NewTape(contents string) *Tape {
	runes := []rune(contents)
	cells := make([]Symbol, len(runes))
	for i, r := range runes {
		cells[i] = Symbol(r)
	}
	return &Tape{cells: cells}
}

func (t *Tape) refKind() RefKind { return RefTape }

// Head reports the current head position.
func (t *Tape) Head() int { return t.head }

// MoveLeft moves the head one cell left; at position 0 it is a no-op.
func (t *Tape) MoveLeft() {
	if t.head > 0 {
		t.head--
	}
}

// MoveRight moves the head one cell right.
func (t *Tape) MoveRight() {
	t.head++
}

// Read returns the symbol under the head.
func (t *Tape) Read() Symbol {
	if t.head >= len(t.cells) {
		return Blank
	}
	return t.cells[t.head]
}

// Write replaces the symbol under the head; the head does not move.
func (t *Tape) Write(sym Symbol) {
	for t.head >= len(t.cells) {
		t.cells = append(t.cells, Blank)
	}
	t.cells[t.head] = sym
}

// Render returns the materialized cell contents for diagnostics, with
// trailing blanks trimmed.
func (t *Tape) Render() string {
	var b strings.Builder
	end := len(t.cells)
	for end > 0 && t.cells[end-1] == Blank && end-1 > t.head {
		end--
	}
	for _, sym := range t.cells[:end] {
		b.WriteRune(rune(sym))
	}
	return b.String()
}
