package flags

import "testing"

func TestParseField(t *testing.T) {
	tests := []struct {
		name    string
		field   string
		mode    Mode
		aliases AliasTable
		want    []ID
		wantErr bool
	}{
		{"single mode splits bytes", "AB", ModeSingle, nil, []ID{'A', 'B'}, false},
		{"single mode dedups", "AA", ModeSingle, nil, []ID{'A'}, false},
		{"long mode pairs", "ABCD", ModeLong, nil, []ID{encodeLong('A', 'B'), encodeLong('C', 'D')}, false},
		{"long mode odd length errors", "ABC", ModeLong, nil, nil, true},
		{"numeric mode splits on comma", "1,2,3", ModeNumeric, nil, []ID{1, 2, 3}, false},
		{"numeric mode rejects garbage", "1,x", ModeNumeric, nil, nil, true},
		{"utf8 mode counts scalars", "日本語", ModeUTF8, nil, []ID{'日', '本', '語'}, false},
		{"empty field yields empty set", "", ModeSingle, nil, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseField(tt.field, tt.mode, tt.aliases)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			want := NewSet(tt.want...)
			if got.Len() != want.Len() {
				t.Fatalf("got %v, want %v", got.IDs(), want.IDs())
			}
			for _, id := range want.IDs() {
				if !got.Has(id) {
					t.Fatalf("missing flag %v in %v", id, got.IDs())
				}
			}
		})
	}
}

func TestParseFieldAliasPrecedence(t *testing.T) {
	aliases := AliasTable{NewSet('A', 'B'), NewSet('C', 'D')}

	// Under single mode, a purely numeric field is an alias index when
	// aliases exist, never raw single-char flags.
	got, err := ParseField("2", ModeSingle, aliases)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := NewSet('C', 'D')
	if got.Len() != want.Len() || !got.Has('C') || !got.Has('D') {
		t.Fatalf("got %v, want alias 2 = %v", got.IDs(), want.IDs())
	}
}

func TestAliasTableResolveOutOfRange(t *testing.T) {
	aliases := AliasTable{NewSet('A')}
	if _, ok := aliases.Resolve(0); ok {
		t.Fatal("expected index 0 to be out of range (1-indexed)")
	}
	if _, ok := aliases.Resolve(2); ok {
		t.Fatal("expected index 2 to be out of range")
	}
	if _, ok := aliases.Resolve(1); !ok {
		t.Fatal("expected index 1 to resolve")
	}
}

func TestSetUnionAndIntersects(t *testing.T) {
	a := NewSet('A', 'B')
	b := NewSet('B', 'C')

	if !a.Intersects(b) {
		t.Fatal("expected intersection on B")
	}
	u := a.Union(b)
	if u.Len() != 3 {
		t.Fatalf("expected union of size 3, got %d: %v", u.Len(), u.IDs())
	}

	c := NewSet('X')
	if a.Intersects(c) {
		t.Fatal("did not expect intersection")
	}
}
