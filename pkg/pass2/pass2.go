// Package pass2 implements the assembler's second pass: it records
// `.entry` symbols and patches every placeholder word pass1 left behind
// with its symbol's final address. Placeholders are found by the Unresolved
// tag pass1 set on each such word, not by matching word content against a
// sentinel pattern.
package pass2

import (
	"github.com/hadarhalfon/assembler/pkg/classify"
	"github.com/hadarhalfon/assembler/pkg/diag"
	"github.com/hadarhalfon/assembler/pkg/encoding"
	"github.com/hadarhalfon/assembler/pkg/pass1"
	"github.com/hadarhalfon/assembler/pkg/symtab"
	"github.com/hadarhalfon/assembler/pkg/word"
)

const maxLineLength = 80

// ExternalUse is one instance of an external symbol being referenced by an
// instruction, emitted into the .ext file.
type ExternalUse struct {
	Name    string
	Address int
}

// Result is everything pass2 produces beyond what it mutates in place on
// pass1's Result (symbol kinds, word values).
type Result struct {
	Externals   []ExternalUse
	EntrySeen   bool
}

// Run executes the second pass: entry-symbol recording followed by operand
// address resolution.
func Run(lines []string, p1 *pass1.Result, diags *diag.List) *Result {
	res := &Result{}

	for lineNo, raw := range lines {
		ln := lineNo + 1
		line := []rune(raw)
		if len(line) > maxLineLength {
			continue // already reported by pass1
		}

		i := classify.SkipSpaces(line, 0)
		if isEOL(line, i) || at(line, i) == ';' {
			continue
		}
		if end, ok := classify.IsSymbolDefinition(line, i); ok {
			i = end + 1
		}
		dir := classify.IsDirective(line, i, true)
		if dir == classify.DirectiveEntry {
			res.EntrySeen = true
			j := classify.SkipSpaces(line, i+6)
			end, ok := classify.IsSymbol(line, j)
			if !ok {
				diags.Errorf(diag.Structural, ln, j+1, 1, ".entry expects exactly one symbol argument")
				continue
			}
			name := string(line[j:end])
			s := p1.Symbols.Find(name)
			if s == nil {
				diags.Errorf(diag.Semantic, ln, j+1, len(name), "symbol %q does not exist", name)
				continue
			}
			p1.Symbols.SetKind(s, symtab.Entry)
		}
	}

	resolveOperands(p1, res, diags)
	return res
}

func resolveOperands(p1 *pass1.Result, res *Result, diags *diag.List) {
	for _, rec := range p1.Records {
		for _, w := range rec.Words.All() {
			if !w.Unresolved {
				continue
			}
			s := p1.Symbols.Find(w.SymbolName)
			if s == nil {
				diags.Errorf(diag.Semantic, w.Line, 0, 0, "undefined symbol %q", w.SymbolName)
				continue
			}
			if s.Kind == symtab.Extern {
				w.Resolve(encoding.EncodeImmediate10(0, uint16(word.External)))
				res.Externals = append(res.Externals, ExternalUse{Name: s.Name, Address: w.Address})
			} else {
				w.Resolve(encoding.EncodeN(s.Value, 8)<<2 | uint16(word.Relocatable))
			}
		}
	}
}

func at(line []rune, i int) rune {
	if i < 0 || i >= len(line) {
		return 0
	}
	return line[i]
}

func isEOL(line []rune, i int) bool {
	r := at(line, i)
	return r == 0 || r == '\n' || r == '\r'
}
