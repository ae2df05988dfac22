// Package word implements the in-memory representation of a single machine
// word and the ordered lists of them that make up an instruction or a data
// declaration. A word carries its value as an integer and is rendered to
// base-4 text only by pkg/emit, at the boundary where an artifact is
// actually written.
package word

// Kind distinguishes a word holding instruction/operand content from one
// holding plain data, matching the original's data/instruction split.
type Kind int

const (
	Data Kind = iota
	Instruction
)

// ARE are the two low-order relocation bits stored in every operand word
// that is not a register-pair or plain-data word.
type ARE uint16

const (
	Absolute    ARE = 0 // 00
	External    ARE = 1 // 01
	Relocatable ARE = 2 // 10
)

// Word is one 10-bit memory cell, either fully resolved at the point it was
// created or left as a placeholder for a symbol address patched in by the
// second pass.
type Word struct {
	Value      uint16
	Address    int
	Kind       Kind
	Unresolved bool   // true until a placeholder is patched
	SymbolName string // non-empty only while Unresolved
	Line       int    // source line of the referencing instruction, while Unresolved
}

// List is an ordered, append-only sequence of words, the equivalent of the
// original's singly linked Word list but addressable by index so the second
// pass can patch a specific placeholder directly instead of re-scanning for
// its bit pattern.
type List struct {
	words []*Word
}

func NewList() *List { return &List{} }

// Append adds w to the end of the list, assigning it the next address
// relative to base (base + len(list) before the append).
func (l *List) Append(w *Word, base int) *Word {
	w.Address = base + len(l.words)
	l.words = append(l.words, w)
	return w
}

func (l *List) Len() int { return len(l.words) }

func (l *List) At(i int) *Word { return l.words[i] }

func (l *List) All() []*Word { return l.words }

// Shift adds delta to the address of every word in the list, the equivalent
// of the original's update_data, used once between passes to relocate data
// words past the final instruction count.
func (l *List) Shift(delta int) {
	for _, w := range l.words {
		w.Address += delta
	}
}

// NewPlaceholder creates an unresolved word awaiting a symbol address,
// recording which symbol it is waiting on and the source line of the
// instruction that referenced it, so an unresolved reference can still be
// diagnosed against its origin if the symbol never turns up.
func NewPlaceholder(symbolName string, line int) *Word {
	return &Word{Kind: Instruction, Unresolved: true, SymbolName: symbolName, Line: line}
}

// Resolve patches a placeholder word with its final value and clears the
// unresolved marker.
func (w *Word) Resolve(value uint16) {
	w.Value = value
	w.Unresolved = false
	w.SymbolName = ""
}
