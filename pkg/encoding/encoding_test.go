package encoding

import "testing"

func TestEncodeWord10(t *testing.T) {
	tests := []struct {
		opcode, src, dst int
		want              uint16
	}{
		{0, 0, 0, 0},
		{1, 1, 2, 0b0001_01_10_00},
		{15, 3, 3, 0b1111_11_11_00},
	}
	for _, tc := range tests {
		if got := EncodeWord10(tc.opcode, tc.src, tc.dst); got != tc.want {
			t.Errorf("EncodeWord10(%d,%d,%d) = %#b; want %#b", tc.opcode, tc.src, tc.dst, got, tc.want)
		}
	}
}

func TestEncodeImmediateRoundTrip(t *testing.T) {
	for _, v := range []int{0, 1, -1, 127, -128, 5} {
		word := EncodeImmediate10(v, 0)
		// The immediate occupies an 8-bit field above the ARE bits, so it is
		// sign-extended from 8 bits, not 10.
		if got := int(int8(word >> 2)); got != v {
			t.Errorf("round trip of %d through EncodeImmediate10 and its 8-bit field = %d", v, got)
		}
	}
}

func TestEncodeRegisterPair10(t *testing.T) {
	got := EncodeRegisterPair10(3, 5)
	want := uint16(3)<<6 | uint16(5)<<2
	if got != want {
		t.Errorf("EncodeRegisterPair10(3,5) = %#b; want %#b", got, want)
	}
}

func TestWordToBase4(t *testing.T) {
	tests := []struct {
		word uint16
		want string
	}{
		{0, "aaaaa"},
		{0x3FF, "ddddd"},
	}
	for _, tc := range tests {
		if got := WordToBase4(tc.word); got != tc.want {
			t.Errorf("WordToBase4(%#x) = %q; want %q", tc.word, got, tc.want)
		}
	}
}

func TestAddressToBase4(t *testing.T) {
	if got := AddressToBase4(0); got != "aaaa" {
		t.Errorf("AddressToBase4(0) = %q; want %q", got, "aaaa")
	}
	if got := AddressToBase4(0xFF); got != "dddd" {
		t.Errorf("AddressToBase4(0xFF) = %q; want %q", got, "dddd")
	}
}

func TestHeaderAddressAndCodeToBase4(t *testing.T) {
	if got := HeaderAddressToBase4(0); got != "aaa" {
		t.Errorf("HeaderAddressToBase4(0) = %q; want %q", got, "aaa")
	}
	if got := HeaderCodeToBase4(0); got != "aa" {
		t.Errorf("HeaderCodeToBase4(0) = %q; want %q", got, "aa")
	}
}

func TestDecodeTwosComplement10(t *testing.T) {
	tests := []struct {
		word uint16
		want int
	}{
		{0, 0},
		{1, 1},
		{0x3FF, -1},
		{0x200, -512},
		{0x1FF, 511},
	}
	for _, tc := range tests {
		if got := DecodeTwosComplement10(tc.word); got != tc.want {
			t.Errorf("DecodeTwosComplement10(%#x) = %d; want %d", tc.word, got, tc.want)
		}
	}
}
