package pass1

import (
	"testing"

	"github.com/hadarhalfon/assembler/pkg/config"
	"github.com/hadarhalfon/assembler/pkg/diag"
	"github.com/hadarhalfon/assembler/pkg/symtab"
)

func run(t *testing.T, lines []string) (*Result, *diag.List) {
	t.Helper()
	cfg := config.New()
	diags := diag.NewList(nil)
	res := Run(lines, cfg, diags)
	return res, diags
}

func TestRunCountsInstructionWords(t *testing.T) {
	res, diags := run(t, []string{
		"MAIN: mov r1, r2",
		"stop",
	})
	if diags.HasErrors() {
		t.Fatalf("unexpected errors: %v", diags.Items())
	}
	if res.ICF != 103 {
		t.Errorf("ICF = %d; want 103 (mov's register pair shares one word, plus stop's word)", res.ICF)
	}
	if len(res.Records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(res.Records))
	}
	main := res.Symbols.Find("MAIN")
	if main == nil || main.Kind != symtab.Code || main.Value != 100 {
		t.Errorf("MAIN symbol = %+v; want Code at 100", main)
	}
}

func TestRunDataDirectiveDeclaresSymbolAndShifts(t *testing.T) {
	res, diags := run(t, []string{
		"NUM: .data 1, 2, 3",
		"mov r1, r2",
	})
	if diags.HasErrors() {
		t.Fatalf("unexpected errors: %v", diags.Items())
	}
	num := res.Symbols.Find("NUM")
	if num == nil || num.Kind != symtab.Data {
		t.Fatalf("NUM symbol = %+v; want Data kind", num)
	}
	if num.Value != res.ICF {
		t.Errorf("NUM.Value = %d; want shifted to ICF (%d)", num.Value, res.ICF)
	}
	if res.DCF != 3 {
		t.Errorf("DCF = %d; want 3", res.DCF)
	}
}

func TestRunDuplicateLabelIsError(t *testing.T) {
	_, diags := run(t, []string{
		"L: mov r1, r2",
		"L: stop",
	})
	if !diags.HasErrors() {
		t.Error("redefining a label should be reported as an error")
	}
}

func TestRunExternRedefinitionError(t *testing.T) {
	_, diags := run(t, []string{
		"L: mov r1, r2",
		".extern L",
	})
	if !diags.HasErrors() {
		t.Error("redeclaring an existing non-extern symbol extern should be an error by default")
	}
}

func TestRunInvalidOpcodeReportsError(t *testing.T) {
	_, diags := run(t, []string{"frobnicate r1, r2"})
	if !diags.HasErrors() {
		t.Error("an unknown mnemonic should be reported as an error")
	}
}

func TestRunStringDirectiveAddsTerminatingNull(t *testing.T) {
	res, diags := run(t, []string{`S: .string "hi"`})
	if diags.HasErrors() {
		t.Fatalf("unexpected errors: %v", diags.Items())
	}
	if res.DCF != 3 { // 'h', 'i', and the terminating null
		t.Errorf("DCF = %d; want 3", res.DCF)
	}
}

func TestRunMatrixZeroFillsByDefault(t *testing.T) {
	res, diags := run(t, []string{"M: .mat [2][2] 1,2"})
	if diags.HasErrors() {
		t.Fatalf("unexpected errors: %v", diags.Items())
	}
	if res.DCF != 4 {
		t.Errorf("DCF = %d; want 4 (zero-filled 2x2 matrix)", res.DCF)
	}
}
