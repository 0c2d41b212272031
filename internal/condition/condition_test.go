package condition

import "testing"

func TestCompileAndMatch(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		kind    Kind
		stem    string
		want    bool
	}{
		{"unconditional dot matches anything", ".", Suffix, "anything", true},
		{"empty pattern matches anything", "", Suffix, "anything", true},
		{"negated set excludes members", "[^sxyz]", Suffix, "cat", true},
		{"negated set rejects members", "[^sxyz]", Suffix, "bus", false},
		{"positive set requires membership", "[sxyz]", Suffix, "bus", true},
		{"literal plus set, suffix, two atoms", "[^aeiou]y", Suffix, "fly", true},
		{"literal plus set rejects vowel-y", "[^aeiou]y", Suffix, "play", false},
		{"prefix condition matches head", "un", Prefix, "undo", true},
		{"prefix condition rejects mismatched head", "un", Prefix, "redo", false},
		{"too-short stem never matches", "[^aeiou]y", Suffix, "y", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Compile(tt.pattern, tt.kind)
			if err != nil {
				t.Fatalf("compile error: %v", err)
			}
			got := c.Match(tt.stem)
			if got != tt.want {
				t.Fatalf("Match(%q) = %v, want %v", tt.stem, got, tt.want)
			}
		})
	}
}

func TestCompileClassLeadingBracketLiteral(t *testing.T) {
	c, err := Compile("[]ab]", Suffix)
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}
	if c.Width() != 1 {
		t.Fatalf("expected width 1, got %d", c.Width())
	}
	if !c.Match("x]") {
		t.Fatal("expected ']' to be a literal class member")
	}
	if !c.Match("xa") {
		t.Fatal("expected 'a' to be a class member")
	}
	if c.Match("xc") {
		t.Fatal("did not expect 'c' to match")
	}
}

func TestCompileMalformed(t *testing.T) {
	if _, err := Compile("[abc", Suffix); err == nil {
		t.Fatal("expected error for unterminated class")
	}
	if _, err := Compile("abc]", Suffix); err == nil {
		t.Fatal("expected error for stray ']'")
	}
}

func TestUnicodeScalarAware(t *testing.T) {
	c, err := Compile("ø", Suffix)
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}
	if !c.Match("bø") {
		t.Fatal("expected multi-byte scalar to match as one atom")
	}
}
