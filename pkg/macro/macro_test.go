package macro

import (
	"testing"

	"github.com/hadarhalfon/assembler/pkg/diag"
)

func TestIsValidName(t *testing.T) {
	if IsValidName("mov") {
		t.Error("IsValidName should reject an opcode mnemonic")
	}
	if IsValidName(".data") {
		t.Error("IsValidName should reject a directive keyword")
	}
	if !IsValidName("MY_MACRO") {
		t.Error("IsValidName should accept an ordinary identifier")
	}
	if IsValidName("") {
		t.Error("IsValidName should reject an empty name")
	}
}

func TestExpandInlinesCallsInOrder(t *testing.T) {
	lines := []string{
		"mcro m1",
		"add r1, r2",
		"mcroend",
		"m1",
		"stop",
	}
	diags := diag.NewList(nil)
	got := Expand(lines, diags)
	want := []string{"add r1, r2", "stop"}
	if diags.HasErrors() {
		t.Fatalf("Expand reported unexpected errors: %v", diags.Items())
	}
	if len(got) != len(want) {
		t.Fatalf("Expand() = %v; want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Expand()[%d] = %q; want %q", i, got[i], want[i])
		}
	}
}

func TestExpandRejectsReservedMacroName(t *testing.T) {
	lines := []string{"mcro mov", "stop", "mcroend"}
	diags := diag.NewList(nil)
	Expand(lines, diags)
	if !diags.HasErrors() {
		t.Error("Expand should error when a macro is named after a reserved opcode")
	}
}

func TestExpandPassesThroughNonMacroLines(t *testing.T) {
	lines := []string{"MAIN: mov r1, r2", "stop"}
	diags := diag.NewList(nil)
	got := Expand(lines, diags)
	if len(got) != 2 || got[0] != lines[0] || got[1] != lines[1] {
		t.Errorf("Expand() = %v; want lines unchanged", got)
	}
}
