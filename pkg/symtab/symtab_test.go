package symtab

import "testing"

func TestInsertAndFind(t *testing.T) {
	tab := New()
	tab.Insert("LOOP")
	if tab.Find("LOOP") == nil {
		t.Fatal("Find should locate a symbol right after Insert")
	}
	if tab.Find("MISSING") != nil {
		t.Error("Find should return nil for an undeclared symbol")
	}
}

func TestDeclarationOrderPreserved(t *testing.T) {
	tab := New()
	tab.Insert("A")
	tab.Insert("B")
	tab.Insert("C")
	all := tab.All()
	if len(all) != 3 || all[0].Name != "A" || all[1].Name != "B" || all[2].Name != "C" {
		t.Errorf("All() = %v; want declaration order A,B,C", all)
	}
}

func TestShiftDataSymbols(t *testing.T) {
	tab := New()
	data := tab.Insert("DATA1")
	tab.SetKind(data, Data)
	tab.SetValue(data, 0)
	code := tab.Insert("CODE1")
	tab.SetKind(code, Code)
	tab.SetValue(code, 105)

	tab.ShiftDataSymbols(110)

	if data.Value != 110 {
		t.Errorf("Data symbol value = %d; want 110", data.Value)
	}
	if code.Value != 105 {
		t.Errorf("Code symbol value should be untouched by ShiftDataSymbols, got %d", code.Value)
	}
}

func TestSetKind(t *testing.T) {
	tab := New()
	s := tab.Insert("EXT")
	tab.SetKind(s, Extern)
	if s.Kind != Extern {
		t.Errorf("SetKind did not apply: Kind = %v; want Extern", s.Kind)
	}
}
