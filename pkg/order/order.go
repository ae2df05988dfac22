// Package order implements the opcode table and the Order type: one decoded
// machine instruction together with its operands and the words it expands
// to.
package order

import "github.com/hadarhalfon/assembler/pkg/classify"

// Mnemonics lists the sixteen supported opcodes, index == opcode value.
var Mnemonics = [16]string{
	"mov", "cmp", "add", "sub", "lea",
	"clr", "not", "inc", "dec", "jmp",
	"bne", "jsr", "red", "prn", "rts", "stop",
}

// legalSrcModes[opcode][mode] and legalDstModes[opcode][mode] are true when
// that addressing mode is legal in that position for that opcode. Modes are indexed Immediate=0, Direct=1,
// Matrix=2, Register=3.
var legalSrcModes = [16][4]bool{
	{true, true, true, true},   // mov
	{true, true, true, true},   // cmp
	{true, true, true, true},   // add
	{true, true, true, true},   // sub
	{false, true, true, false}, // lea
	{}, {}, {}, {}, {}, {}, {}, {}, {}, {}, {}, // clr..stop: no source operand
}

var legalDstModes = [16][4]bool{
	{false, true, true, true}, // mov
	{true, true, true, true},  // cmp
	{false, true, true, true}, // add
	{false, true, true, true}, // sub
	{false, true, true, true}, // lea
	{false, true, true, true}, // clr
	{false, true, true, true}, // not
	{false, true, true, true}, // inc
	{false, true, true, true}, // dec
	{false, true, true, true}, // jmp
	{false, true, true, true}, // bne
	{false, true, true, true}, // jsr
	{false, true, true, true}, // red
	{true, true, true, true},  // prn
	{}, // rts: no destination
	{}, // stop: no destination
}

// LegalSrcMode reports whether mode is a legal source addressing mode for
// opcode.
func LegalSrcMode(opcode int, mode classify.AddressingMode) bool {
	if mode < 0 || mode > 3 {
		return false
	}
	return legalSrcModes[opcode][mode]
}

// LegalDstMode reports whether mode is a legal destination addressing mode
// for opcode.
func LegalDstMode(opcode int, mode classify.AddressingMode) bool {
	if mode < 0 || mode > 3 {
		return false
	}
	return legalDstModes[opcode][mode]
}

// OpcodeByName matches the mnemonic starting at i against Mnemonics. Under
// strict matching the mnemonic must be followed by whitespace or
// end-of-line, fixing the original table scan's prefix ambiguity (e.g. "lea"
// being accepted as a match inside a longer identifier).
func OpcodeByName(line []rune, i int, strict bool) (opcode int, ok bool) {
	for op, name := range Mnemonics {
		n := len(name)
		matched := true
		for k := 0; k < n; k++ {
			r := rune(0)
			if i+k < len(line) {
				r = line[i+k]
			}
			if byte(r) != name[k] {
				matched = false
				break
			}
		}
		if !matched {
			continue
		}
		if !strict {
			return op, true
		}
		follow := rune(0)
		if i+n < len(line) {
			follow = line[i+n]
		}
		if follow == ' ' || follow == '\t' || follow == 0 || follow == '\n' || follow == '\r' {
			return op, true
		}
	}
	return -1, false
}

// NumberOfOperands returns how many operands opcode expects: 2 for
// mov/cmp/add/sub/lea, 1 for clr..red/prn, 0 for rts/stop.
func NumberOfOperands(opcode int) int {
	switch {
	case opcode >= 0 && opcode < 5:
		return 2
	case opcode >= 5 && opcode < 14:
		return 1
	default:
		return 0
	}
}

// NumberOfWords computes how many words an instruction occupies given its
// operand addressing modes (classify.NoOperand for an absent operand). Two
// register operands share a single word.
func NumberOfWords(op1, op2 classify.AddressingMode) int {
	words := 1
	switch op1 {
	case classify.Immediate, classify.Direct:
		words++
	case classify.Matrix:
		words += 2
	case classify.Register:
		words++
		if op2 == classify.Register {
			return words
		}
	}
	switch op2 {
	case classify.Immediate, classify.Direct, classify.Register:
		words++
	case classify.Matrix:
		words += 2
	}
	return words
}

// Operand is one decoded instruction operand.
type Operand struct {
	Mode        classify.AddressingMode
	Immediate   int
	SymbolName  string // Direct and Matrix
	Register    int    // Register mode only
	MatrixRow   int    // Matrix mode only
	MatrixCol   int    // Matrix mode only
}

// Order is one decoded instruction: its opcode, its operands, and the
// instruction-counter address of its first word.
type Order struct {
	IC       int
	Opcode   int
	Operand1 *Operand // nil if opcode takes fewer than 2 operands
	Operand2 *Operand
}

// Operands returns the order's operands as a 0, 1, or 2 element slice in
// source order, skipping the unused Operand1 when the opcode is unary.
func (o *Order) Operands() []*Operand {
	var ops []*Operand
	if o.Operand1 != nil {
		ops = append(ops, o.Operand1)
	}
	if o.Operand2 != nil {
		ops = append(ops, o.Operand2)
	}
	return ops
}

// ValidateOperands reports whether op1/op2 (classify.NoOperand for an
// absent operand) are legal for opcode, given how many operands it expects.
func ValidateOperands(opcode int, op1, op2 classify.AddressingMode) bool {
	switch NumberOfOperands(opcode) {
	case 0:
		return op1 == classify.NoOperand && op2 == classify.NoOperand
	case 1:
		return op1 == classify.NoOperand && LegalDstMode(opcode, op2)
	case 2:
		return LegalSrcMode(opcode, op1) && LegalDstMode(opcode, op2)
	default:
		return false
	}
}
