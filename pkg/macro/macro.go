// Package macro implements the line-based macro preprocessor: it expands
// `mcro name ... mcroend` blocks inline before the two-pass assembler ever
// sees the source, producing the macro-expanded ".am" text.
package macro

import (
	"strings"

	"github.com/hadarhalfon/assembler/pkg/diag"
)

var reservedNames = map[string]bool{
	"mov": true, "cmp": true, "add": true, "sub": true, "lea": true,
	"clr": true, "not": true, "inc": true, "dec": true,
	"jmp": true, "bne": true, "jsr": true, "red": true, "prn": true,
	"rts": true, "stop": true,
	".data": true, ".string": true, ".mat": true, ".extern": true, ".entry": true,
}

// IsValidName reports whether name can be used as a macro name: non-empty
// and not one of the sixteen opcodes or five directives.
func IsValidName(name string) bool {
	return name != "" && !reservedNames[name]
}

type macro struct {
	lines []string
}

type state int

const (
	outside state = iota
	capturing
)

// Expand runs the macro preprocessor over a full source file's lines,
// returning the expanded lines ready for the two-pass assembler. Errors are
// recorded on diags; Expand always returns its best-effort expansion so the
// caller can keep reporting unrelated diagnostics, but the driver must
// refuse to assemble further once diags.HasErrors() is true.
func Expand(lines []string, diags *diag.List) []string {
	macros := make(map[string]*macro)
	var order []string
	var out []string

	st := outside
	var current string

	for lineNo, raw := range lines {
		ln := lineNo + 1
		trimmed := strings.TrimRight(raw, "\r\n")

		switch {
		case st == outside && isMacroStart(trimmed):
			name, rest, ok := extractMacroStartName(trimmed)
			if !ok {
				diags.Errorf(diag.Structural, ln, 1, len(trimmed), "malformed macro definition")
				continue
			}
			if strings.TrimSpace(rest) != "" {
				diags.Errorf(diag.Structural, ln, 1, len(trimmed), "unexpected characters after macro name %q", name)
			}
			if !IsValidName(name) {
				diags.Errorf(diag.Semantic, ln, 1, len(trimmed), "macro name %q conflicts with a reserved opcode or directive", name)
			}
			if _, exists := macros[name]; !exists {
				order = append(order, name)
			}
			macros[name] = &macro{}
			current = name
			st = capturing

		case st == capturing && isMacroEnd(trimmed):
			rest := strings.TrimPrefix(trimmed, "mcroend")
			if strings.TrimSpace(rest) != "" {
				diags.Errorf(diag.Structural, ln, 1, len(trimmed), "unexpected characters after mcroend")
			}
			st = outside
			current = ""

		case st == capturing:
			macros[current].lines = append(macros[current].lines, raw)

		default:
			if name, ok := macroCallName(trimmed, macros); ok {
				out = append(out, macros[name].lines...)
			} else {
				out = append(out, raw)
			}
		}
	}

	return out
}

func isMacroStart(line string) bool {
	return strings.HasPrefix(line, "mcro ") || strings.HasPrefix(line, "mcro\t")
}

func isMacroEnd(line string) bool {
	return strings.HasPrefix(line, "mcroend")
}

// extractMacroStartName pulls the macro name out of a "mcro <name>" line and
// returns whatever trailed it for extra-characters validation.
func extractMacroStartName(line string) (name, rest string, ok bool) {
	body := strings.TrimPrefix(line, "mcro")
	body = strings.TrimLeft(body, " \t")
	fields := strings.Fields(body)
	if len(fields) == 0 {
		return "", "", false
	}
	name = fields[0]
	idx := strings.Index(body, name) + len(name)
	return name, body[idx:], true
}

// macroCallName extracts the first whitespace-delimited token of line and
// reports whether it names a currently defined macro.
func macroCallName(line string, macros map[string]*macro) (string, bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", false
	}
	name := fields[0]
	_, ok := macros[name]
	return name, ok
}
