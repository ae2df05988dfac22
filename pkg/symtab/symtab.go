// Package symtab implements the assembler's symbol table: an
// insertion-ordered set of named addresses, each tagged with the kind of
// definition it came from.
package symtab

// Kind mirrors the original's four symbol types.
type Kind int

const (
	Unbound Kind = iota
	Data
	Code
	Entry
	Extern
)

// Symbol is one entry: a label's name, its resolved address, and how it was
// declared.
type Symbol struct {
	Name  string
	Value int
	Kind  Kind
}

// Table is an insertion-ordered symbol table. Ordering is preserved because
// some diagnostics and the .ent emitter report symbols in declaration
// order, not lookup order.
type Table struct {
	order []*Symbol
	byName map[string]*Symbol
}

func New() *Table {
	return &Table{byName: make(map[string]*Symbol)}
}

// Insert adds a new symbol with the given name, value 0, kind Unbound, and
// returns it. The caller is responsible for checking Find first; Insert
// does not deduplicate.
func (t *Table) Insert(name string) *Symbol {
	s := &Symbol{Name: name}
	t.order = append(t.order, s)
	t.byName[name] = s
	return s
}

// Find returns the symbol named name, or nil if it has not been declared.
func (t *Table) Find(name string) *Symbol {
	return t.byName[name]
}

func (t *Table) SetKind(s *Symbol, k Kind) { s.Kind = k }

func (t *Table) SetValue(s *Symbol, v int) { s.Value = v }

// All returns every symbol in declaration order.
func (t *Table) All() []*Symbol { return t.order }

// ShiftDataSymbols adds icf to the value of every Data symbol, relocating
// data addresses past the final instruction count once the first pass has
// finished counting instruction words. Called exactly once, between passes.
func (t *Table) ShiftDataSymbols(icf int) {
	for _, s := range t.order {
		if s.Kind == Data {
			s.Value += icf
		}
	}
}
