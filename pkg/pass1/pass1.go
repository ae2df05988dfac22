// Package pass1 implements the assembler's first pass: it walks the
// macro-expanded source once, building the symbol table, counting data and
// instruction words, and emitting every instruction's words with
// placeholders standing in for any symbol operand whose address isn't known
// yet.
package pass1

import (
	"github.com/hadarhalfon/assembler/pkg/classify"
	"github.com/hadarhalfon/assembler/pkg/config"
	"github.com/hadarhalfon/assembler/pkg/diag"
	"github.com/hadarhalfon/assembler/pkg/encoding"
	"github.com/hadarhalfon/assembler/pkg/order"
	"github.com/hadarhalfon/assembler/pkg/symtab"
	"github.com/hadarhalfon/assembler/pkg/word"
)

const (
	startIC       = 100
	maxLineLength = 80
)

// Record is one decoded instruction, its words (some still unresolved
// placeholders), and its position for pass2.
type Record struct {
	Order *order.Order
	Words *word.List
}

// Result is everything pass1 produces for pass2 and the emitters to
// consume.
type Result struct {
	Symbols   *symtab.Table
	Records   []*Record
	DataWords *word.List
	ICF       int // final instruction counter: 100 + total instruction words
	DCF       int // final data counter: total data words
}

// Run executes the first pass over the macro-expanded source lines.
func Run(lines []string, cfg *config.Config, diags *diag.List) *Result {
	sym := symtab.New()
	dataWords := word.NewList()
	var records []*Record
	ic := startIC
	dc := 0

	for lineNo, raw := range lines {
		ln := lineNo + 1
		line := []rune(raw)

		if len(line) > maxLineLength {
			diags.Errorf(diag.Lexical, ln, maxLineLength+1, 1, "line exceeds %d characters", maxLineLength)
			if cfg.IsWarningEnabled(config.WarnLongLine) {
				diags.Warnf("long-line", ln, maxLineLength+1, 1, "line exceeds %d characters", maxLineLength)
			}
		}

		i := classify.SkipSpaces(line, 0)
		if isEOL(line, i) || at(line, i) == ';' {
			continue
		}

		var labelName string
		hasLabel := false
		if end, ok := classify.IsSymbolDefinition(line, i); ok {
			labelName = string(line[i:end])
			hasLabel = true
			i = classify.SkipSpaces(line, end+1)
		}

		dir := classify.IsDirective(line, i, cfg.IsFeatureEnabled(config.FeatStrictDirectiveMatch))

		switch dir {
		case classify.DirectiveData, classify.DirectiveString, classify.DirectiveMat:
			if hasLabel {
				if sym.Find(labelName) != nil {
					diags.Errorf(diag.Semantic, ln, i+1, len(labelName), "symbol %q already defined", labelName)
					continue
				}
				s := sym.Insert(labelName)
				sym.SetKind(s, symtab.Data)
				sym.SetValue(s, dc)
			}
			newDC, ok := decodeData(line, i, dir, dataWords, dc, ln, cfg, diags)
			if ok {
				dc = newDC
			}
			continue

		case classify.DirectiveEntry:
			if hasLabel && cfg.IsWarningEnabled(config.WarnExternLabelDiscarded) {
				diags.Warnf("extern-label-discarded", ln, 1, len(labelName), "label before .entry is ignored")
			}
			j := classify.SkipSpaces(line, i+6)
			if _, ok := classify.IsSymbol(line, j); !ok {
				diags.Errorf(diag.Structural, ln, j+1, 1, ".entry expects a symbol argument")
			}
			continue

		case classify.DirectiveExtern:
			if hasLabel && cfg.IsWarningEnabled(config.WarnExternLabelDiscarded) {
				diags.Warnf("extern-label-discarded", ln, 1, len(labelName), "label before .extern is ignored")
			}
			j := classify.SkipSpaces(line, i+7)
			end, ok := classify.IsSymbol(line, j)
			if !ok {
				diags.Errorf(diag.Structural, ln, j+1, 1, ".extern expects a symbol argument")
				continue
			}
			name := string(line[j:end])
			declareExtern(sym, name, ln, j, cfg, diags)
			continue
		}

		if hasLabel {
			if sym.Find(labelName) != nil {
				diags.Errorf(diag.Semantic, ln, 1, len(labelName), "symbol %q already defined", labelName)
				continue
			}
			s := sym.Insert(labelName)
			sym.SetKind(s, symtab.Code)
			sym.SetValue(s, ic)
		}

		opcode, ok := order.OpcodeByName(line, i, cfg.IsFeatureEnabled(config.FeatStrictOpcodeMatch))
		if !ok {
			diags.Errorf(diag.Semantic, ln, i+1, 3, "invalid opcode")
			continue
		}

		rec, newIC, ok := decodeOrder(line, i, opcode, ic, ln, diags)
		if ok {
			records = append(records, rec)
			ic = newIC
		}
	}

	sym.ShiftDataSymbols(ic)
	dataWords.Shift(ic)

	return &Result{Symbols: sym, Records: records, DataWords: dataWords, ICF: ic, DCF: dc}
}

func declareExtern(sym *symtab.Table, name string, ln, col int, cfg *config.Config, diags *diag.List) {
	existing := sym.Find(name)
	if existing == nil {
		s := sym.Insert(name)
		sym.SetKind(s, symtab.Extern)
		return
	}
	if existing.Kind == symtab.Extern {
		if cfg.IsWarningEnabled(config.WarnDuplicateExternDecl) {
			diags.Warnf("duplicate-extern-decl", ln, col+1, len(name), "redundant .extern declaration of %q", name)
		}
		return
	}
	if cfg.IsFeatureEnabled(config.FeatExternRedefinitionError) {
		diags.Errorf(diag.Semantic, ln, col+1, len(name), "%q is already defined and cannot be redeclared extern", name)
	}
}

// decodeOrder decodes one instruction line starting at the opcode mnemonic,
// returning its Record and the instruction counter after it.
func decodeOrder(line []rune, i, opcode, ic, ln int, diags *diag.List) (*Record, int, bool) {
	o := &order.Order{IC: ic, Opcode: opcode}
	words := word.NewList()
	n := order.NumberOfOperands(opcode)

	if n == 0 {
		if !isEOL(line, classify.SkipSpaces(line, i+mnemonicLen(opcode))) {
			diags.Errorf(diag.Structural, ln, i+1, 1, "%q expects no operands", order.Mnemonics[opcode])
			return nil, ic, false
		}
		appendFirstWord(words, o, classify.NoOperand, classify.NoOperand)
		return &Record{Order: o, Words: words}, ic + 1, true
	}

	opStart := classify.SkipSpaces(line, i+mnemonicLen(opcode))

	if n == 1 {
		mode := classify.AddressingMethod(line, opStart)
		if !checkNoTrailingGarbage(line, opStart, ln, diags) {
			return nil, ic, false
		}
		o.Operand2 = &order.Operand{Mode: mode}
		if !order.ValidateOperands(opcode, classify.NoOperand, mode) {
			diags.Errorf(diag.Semantic, ln, opStart+1, 1, "operand addressing mode not legal for %q", order.Mnemonics[opcode])
			return nil, ic, false
		}
		appendFirstWord(words, o, classify.NoOperand, mode)
		appendOperandWords(words, o.Operand2, line, opStart, ln, diags)
		return &Record{Order: o, Words: words}, ic + words.Len(), true
	}

	// n == 2
	mode1 := classify.AddressingMethod(line, opStart)
	commaIdx := findCommaOrEnd(line, opStart)
	if isEOL(line, commaIdx) || at(line, commaIdx) != ',' {
		diags.Errorf(diag.Structural, ln, opStart+1, 1, "missing comma between operands")
		return nil, ic, false
	}
	op2Start := classify.SkipSpaces(line, commaIdx+1)
	mode2 := classify.AddressingMethod(line, op2Start)
	if !checkNoTrailingGarbage(line, op2Start, ln, diags) {
		return nil, ic, false
	}

	o.Operand1 = &order.Operand{Mode: mode1}
	o.Operand2 = &order.Operand{Mode: mode2}
	if !order.ValidateOperands(opcode, mode1, mode2) {
		diags.Errorf(diag.Semantic, ln, opStart+1, 1, "operand addressing modes not legal for %q", order.Mnemonics[opcode])
		return nil, ic, false
	}
	appendFirstWord(words, o, mode1, mode2)

	if mode1 == classify.Register && mode2 == classify.Register {
		reg1, _ := classify.IsRegister(line, opStart)
		reg2, _ := classify.IsRegister(line, op2Start)
		o.Operand1.Register, o.Operand2.Register = reg1, reg2
		words.Append(&word.Word{Value: encoding.EncodeRegisterPair10(reg1, reg2), Kind: word.Instruction}, ic)
	} else {
		appendOperandWords(words, o.Operand1, line, opStart, ln, diags)
		appendOperandWords(words, o.Operand2, line, op2Start, ln, diags)
	}

	return &Record{Order: o, Words: words}, ic + words.Len(), true
}

func mnemonicLen(opcode int) int { return len(order.Mnemonics[opcode]) }

func appendFirstWord(words *word.List, o *order.Order, mode1, mode2 classify.AddressingMode) {
	m1, m2 := mode1, mode2
	if m1 == classify.NoOperand {
		m1 = 0
	}
	if m2 == classify.NoOperand {
		m2 = 0
	}
	w := &word.Word{Value: encoding.EncodeWord10(o.Opcode, int(m1), int(m2)), Kind: word.Instruction}
	words.Append(w, o.IC)
}

// appendOperandWords decodes one operand's data word(s): immediate value,
// a single register, or a placeholder awaiting a symbol address (plus, for
// matrix operands, the packed register-index word that follows it).
func appendOperandWords(words *word.List, operand *order.Operand, line []rune, i, ln int, diags *diag.List) {
	base := words.At(0).Address // the instruction's first word sits at its IC
	switch operand.Mode {
	case classify.Immediate:
		n := classify.StrToInt(line[i+1 : skipNumber(line, i+1)])
		words.Append(&word.Word{Value: encoding.EncodeImmediate10(n, 0), Kind: word.Instruction}, base)
	case classify.Register:
		reg, ctx := classify.IsRegister(line, i)
		operand.Register = reg
		if ctx == classify.RegisterSource {
			words.Append(&word.Word{Value: encoding.EncodeRegisterSrc10(reg), Kind: word.Instruction}, base)
		} else {
			words.Append(&word.Word{Value: encoding.EncodeRegisterDst10(reg), Kind: word.Instruction}, base)
		}
	case classify.Direct:
		end, _ := classify.IsSymbol(line, i)
		name := string(line[i:end])
		operand.SymbolName = name
		words.Append(word.NewPlaceholder(name, ln), base)
	case classify.Matrix:
		end, _ := classify.IsSymbol(line, i)
		name := string(line[i:end])
		operand.SymbolName = name
		reg1, reg2 := readMatrixRegisters(line, end)
		operand.MatrixRow, operand.MatrixCol = reg1, reg2
		words.Append(word.NewPlaceholder(name, ln), base)
		words.Append(&word.Word{Value: encoding.EncodeRegisterPair10(reg1, reg2), Kind: word.Instruction}, base)
	}
}

func readMatrixRegisters(line []rune, i int) (int, int) {
	var regs [2]int
	for k := 0; k < 2; k++ {
		for at(line, i) != '[' {
			i++
		}
		i++
		reg, _ := classify.IsRegister(line, i)
		regs[k] = reg
		for at(line, i) != ']' {
			i++
		}
		i++
	}
	return regs[0], regs[1]
}

func skipNumber(line []rune, i int) int {
	j := i
	if at(line, j) == '+' || at(line, j) == '-' {
		j++
	}
	for isDigit(at(line, j)) {
		j++
	}
	return j
}

func findCommaOrEnd(line []rune, i int) int {
	for !isEOL(line, i) && at(line, i) != ',' {
		i++
	}
	return i
}

func checkNoTrailingGarbage(line []rune, i, ln int, diags *diag.List) bool {
	j := i
	for !isSep(line, j) {
		j++
	}
	j = classify.SkipSpaces(line, j)
	if !isEOL(line, j) {
		diags.Errorf(diag.Structural, ln, j+1, 1, "unexpected characters after operand")
		return false
	}
	return true
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

func isSep(line []rune, i int) bool {
	r := at(line, i)
	return isEOL(line, i) || r == ' ' || r == '\t'
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }
