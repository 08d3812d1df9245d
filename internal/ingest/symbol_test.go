package ingest

import "testing"

func TestParseSymbolValid(t *testing.T) {
	cases := []struct {
		symbol  string
		wantKey SymbolKey
	}{
		{"600000.SH", 1_600_000},
		{"000001.SZ", 1},
		{"300001.sz", 300_001},
	}
	for _, c := range cases {
		key, canonical, err := ParseSymbol(c.symbol)
		if err != nil {
			t.Fatalf("ParseSymbol(%q): %v", c.symbol, err)
		}
		if key != c.wantKey {
			t.Errorf("ParseSymbol(%q) key = %d, want %d", c.symbol, key, c.wantKey)
		}
		want := make([]byte, 16)
		copy(want, c.symbol)
		if string(canonical[:]) != string(want) {
			t.Errorf("ParseSymbol(%q) canonical = %q, want %q", c.symbol, canonical, want)
		}
	}
}

func TestParseSymbolRejected(t *testing.T) {
	bad := []string{"60000.SH", "600000.XY", "abc000.SH", "", "6000000.SH"}
	for _, symbol := range bad {
		if _, _, err := ParseSymbol(symbol); err == nil {
			t.Errorf("ParseSymbol(%q) should be rejected", symbol)
		}
	}
}

func TestSymbolTableLookup(t *testing.T) {
	tbl, err := NewSymbolTable([]string{"600000.SH", "000001.SZ"})
	if err != nil {
		t.Fatalf("NewSymbolTable: %v", err)
	}

	key, _, _ := ParseSymbol("600000.SH")
	id, ok := tbl.Lookup(key)
	if !ok || id != 0 {
		t.Fatalf("Lookup(600000.SH) = (%d, %v), want (0, true)", id, ok)
	}

	key2, _, _ := ParseSymbol("000001.SZ")
	id2, ok2 := tbl.Lookup(key2)
	if !ok2 || id2 != 1 {
		t.Fatalf("Lookup(000001.SZ) = (%d, %v), want (1, true)", id2, ok2)
	}

	unknownKey, _, _ := ParseSymbol("999999.SH")
	if _, ok := tbl.Lookup(unknownKey); ok {
		t.Fatal("Lookup of an unconfigured symbol should fail")
	}
}

func TestNewSymbolTableRejectsBadSymbol(t *testing.T) {
	if _, err := NewSymbolTable([]string{"600000.SH", "not-a-symbol"}); err == nil {
		t.Fatal("NewSymbolTable should reject a malformed symbol in the universe")
	}
}
