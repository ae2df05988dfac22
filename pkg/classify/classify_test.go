package classify

import "testing"

func TestIsSymbol(t *testing.T) {
	tests := []struct {
		line string
		ok   bool
	}{
		{"LOOP:", true},
		{"LOOP ", true},
		{"9LOOP", false},
		{"", false},
		{"thisNameIsWayTooLongToBeALegalSymbol", false},
	}
	for _, tc := range tests {
		_, ok := IsSymbol([]rune(tc.line), 0)
		if ok != tc.ok {
			t.Errorf("IsSymbol(%q) ok = %v; want %v", tc.line, ok, tc.ok)
		}
	}
}

func TestIsSymbolDefinition(t *testing.T) {
	end, ok := IsSymbolDefinition([]rune("LOOP: mov r1, r2"), 0)
	if !ok || end != 4 {
		t.Errorf("IsSymbolDefinition = (%d, %v); want (4, true)", end, ok)
	}
	if _, ok := IsSymbolDefinition([]rune("LOOP mov r1, r2"), 0); ok {
		t.Error("IsSymbolDefinition should reject a name with no colon")
	}
}

func TestIsNumber(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"5", true},
		{"-5", true},
		{"+5", true},
		{"-", false},
		{"12345", false}, // exceeds MaxNumberLength
		{"5a", false},
	}
	for _, tc := range tests {
		if got := IsNumber([]rune(tc.line), 0); got != tc.want {
			t.Errorf("IsNumber(%q) = %v; want %v", tc.line, got, tc.want)
		}
	}
}

func TestIsDirectiveStrict(t *testing.T) {
	if got := IsDirective([]rune(".data 1,2,3"), 0, true); got != DirectiveData {
		t.Errorf("IsDirective(.data) = %v; want DirectiveData", got)
	}
	if got := IsDirective([]rune(".dataXtra"), 0, true); got != DirectiveNone {
		t.Errorf("IsDirective(.dataXtra) strict = %v; want DirectiveNone", got)
	}
	if got := IsDirective([]rune(".dataXtra"), 0, false); got != DirectiveData {
		t.Errorf("IsDirective(.dataXtra) non-strict = %v; want DirectiveData", got)
	}
}

func TestIsRegister(t *testing.T) {
	tests := []struct {
		line string
		reg  int
		ctx  RegisterContext
	}{
		{"r0,", 0, RegisterSource},
		{"r7", 7, RegisterTerminal},
		{"r3]", 3, RegisterMatrix},
		{"r8", 0, RegisterNone},
		{"robot", 0, RegisterNone},
	}
	for _, tc := range tests {
		reg, ctx := IsRegister([]rune(tc.line), 0)
		if reg != tc.reg || ctx != tc.ctx {
			t.Errorf("IsRegister(%q) = (%d, %v); want (%d, %v)", tc.line, reg, ctx, tc.reg, tc.ctx)
		}
	}
}

func TestIsMatOperand(t *testing.T) {
	if !IsMatOperand([]rune("M1[r1][r2]"), 0) {
		t.Error("IsMatOperand should accept M1[r1][r2]")
	}
	if IsMatOperand([]rune("M1[r1]"), 0) {
		t.Error("IsMatOperand should reject a single-bracket matrix reference")
	}
}

func TestAddressingMethod(t *testing.T) {
	tests := []struct {
		line string
		want AddressingMode
	}{
		{"#5", Immediate},
		{"r2", Register},
		{"M1[r1][r2]", Matrix},
		{"LABEL", Direct},
		{"", NoOperand},
	}
	for _, tc := range tests {
		if got := AddressingMethod([]rune(tc.line), 0); got != tc.want {
			t.Errorf("AddressingMethod(%q) = %v; want %v", tc.line, got, tc.want)
		}
	}
}

func TestGetCommaErrorKind(t *testing.T) {
	tests := []struct {
		line string
		want CommaError
	}{
		{"1,2,3", CommaOK},
		{",1,2", CommaLeading},
		{"1,2,", CommaTrailing},
		{"1,,2", CommaDouble},
		{"1 2", CommaMissing},
	}
	for _, tc := range tests {
		if got := GetCommaErrorKind([]rune(tc.line), 0); got != tc.want {
			t.Errorf("GetCommaErrorKind(%q) = %v; want %v", tc.line, got, tc.want)
		}
	}
}

func TestIsLegalNumberList(t *testing.T) {
	if !IsLegalNumberList([]rune("1, 2, -3"), 0) {
		t.Error("IsLegalNumberList should accept '1, 2, -3'")
	}
	if IsLegalNumberList([]rune("1, ,3"), 0) {
		t.Error("IsLegalNumberList should reject a missing value between commas")
	}
}

func TestIsLegalString(t *testing.T) {
	if !IsLegalString([]rune(`"hello"`), 0) {
		t.Error(`IsLegalString should accept "hello"`)
	}
	if IsLegalString([]rune(`"hello`), 0) {
		t.Error("IsLegalString should reject an unterminated string")
	}
	if IsLegalString([]rune(`"hello" extra`), 0) {
		t.Error("IsLegalString should reject trailing garbage after the closing quote")
	}
}

func TestIsLegalMat(t *testing.T) {
	if !IsLegalMat([]rune("[2][2] 1,2,3,4"), 0) {
		t.Error("IsLegalMat should accept a fully populated 2x2 matrix")
	}
	if !IsLegalMat([]rune("[2][2]"), 0) {
		t.Error("IsLegalMat should accept a matrix declaration with no initializer values")
	}
	if IsLegalMat([]rune("[0][2] 1,2"), 0) {
		t.Error("IsLegalMat should reject a zero dimension")
	}
}

func TestStrToInt(t *testing.T) {
	tests := []struct {
		s    string
		want int
	}{
		{"5", 5},
		{"-5", -5},
		{"+5", 5},
		{"0", 0},
	}
	for _, tc := range tests {
		if got := StrToInt([]rune(tc.s)); got != tc.want {
			t.Errorf("StrToInt(%q) = %d; want %d", tc.s, got, tc.want)
		}
	}
}
