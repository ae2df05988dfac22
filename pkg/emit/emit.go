// Package emit renders the assembler's three output artifacts: the base-4
// object file, the entry-symbol file, and the external-reference file.
package emit

import (
	"fmt"
	"io"

	"github.com/hadarhalfon/assembler/pkg/encoding"
	"github.com/hadarhalfon/assembler/pkg/pass1"
	"github.com/hadarhalfon/assembler/pkg/pass2"
	"github.com/hadarhalfon/assembler/pkg/symtab"
	"github.com/hadarhalfon/assembler/pkg/word"
)

// WriteExternals writes one "name<TAB>address" line per external-symbol
// use, in the order the second pass discovered them.
func WriteExternals(w io.Writer, uses []pass2.ExternalUse) {
	for _, u := range uses {
		fmt.Fprintf(w, "%s\t%s\n", u.Name, encoding.AddressToBase4(u.Address))
	}
}

// WriteEntries writes one "name<TAB>address" line per symbol declared
// .entry, in symbol-table declaration order.
func WriteEntries(w io.Writer, symbols []*symtab.Symbol) {
	for _, s := range symbols {
		if s.Kind == symtab.Entry {
			fmt.Fprintf(w, "%s\t%s\n", s.Name, encoding.AddressToBase4(s.Value))
		}
	}
}

// WriteObject writes the header line ("\t<ICF-100 base4>\t<DCF base4>") followed
// by one "address<TAB>word" line per instruction word and then per data
// word, both in ascending address order.
func WriteObject(w io.Writer, p1 *pass1.Result) {
	fmt.Fprintf(w, "\t%s\t%s\n", encoding.HeaderAddressToBase4(p1.ICF-100), encoding.HeaderCodeToBase4(p1.DCF))

	for _, rec := range p1.Records {
		for _, wd := range rec.Words.All() {
			writeWordLine(w, wd)
		}
	}
	for _, wd := range p1.DataWords.All() {
		writeWordLine(w, wd)
	}
}

func writeWordLine(w io.Writer, wd *word.Word) {
	fmt.Fprintf(w, "%s\t%s\n", encoding.AddressToBase4(wd.Address), encoding.WordToBase4(wd.Value))
}
