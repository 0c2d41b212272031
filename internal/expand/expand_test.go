package expand

import (
	"reflect"
	"testing"

	"github.com/kost/runmunch/internal/affix"
	"github.com/kost/runmunch/internal/dict"
	"github.com/kost/runmunch/internal/flags"
)

func mustParseAffix(t *testing.T, src string) *affix.File {
	t.Helper()
	f, err := affix.Parse([]byte(src))
	if err != nil {
		t.Fatalf("affix parse error: %v", err)
	}
	return f
}

func TestScenarioA_MinimalPrefix(t *testing.T) {
	aff := mustParseAffix(t, "PFX A Y 1\nPFX A 0 un .\n")
	got := ExpandWithFlags(aff, "happy", flags.NewSet('A'))
	want := []string{"happy", "unhappy"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestScenarioB_ConditionFiltering(t *testing.T) {
	aff := mustParseAffix(t, "SFX B Y 2\nSFX B 0 s [^sxyz]\nSFX B 0 es [sxyz]\n")
	gotCat := ExpandWithFlags(aff, "cat", flags.NewSet('B'))
	if !reflect.DeepEqual(gotCat, []string{"cat", "cats"}) {
		t.Fatalf("got %v", gotCat)
	}
	gotBus := ExpandWithFlags(aff, "bus", flags.NewSet('B'))
	if !reflect.DeepEqual(gotBus, []string{"bus", "buses"}) {
		t.Fatalf("got %v", gotBus)
	}
}

func TestScenarioC_StripAppend(t *testing.T) {
	aff := mustParseAffix(t, "SFX C Y 1\nSFX C y ies [^aeiou]y\n")
	got := ExpandWithFlags(aff, "fly", flags.NewSet('C'))
	want := []string{"fly", "flies"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestScenarioD_CrossProduct(t *testing.T) {
	aff := mustParseAffix(t, "PFX A Y 1\nPFX A 0 un .\nSFX B Y 1\nSFX B 0 s .\n")
	got := ExpandWithFlags(aff, "do", flags.NewSet('A', 'B'))
	want := []string{"do", "undo", "dos", "undos"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestScenarioE_AliasTable(t *testing.T) {
	aff := mustParseAffix(t, "AF 1\nAF AB\nPFX A Y 1\nPFX A 0 re .\nSFX B Y 1\nSFX B 0 ed .\n")
	d, err := dict.Parse([]byte("1\nwalk/1\n"), aff)
	if err != nil {
		t.Fatalf("dict parse error: %v", err)
	}
	got := ExpandStem(aff, d.Entries[0])
	want := []string{"walk", "rewalk", "walked", "rewalked"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestContinuationRecursion(t *testing.T) {
	// A second suffix D (flag 'D') is reachable only via B's continuation.
	aff := mustParseAffix(t, "SFX B Y 1\nSFX B 0 s/D .\nSFX D Y 1\nSFX D 0 !  .\n")
	got := ExpandWithFlags(aff, "go", flags.NewSet('B'))
	want := []string{"go", "gos", "gos!"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestSuffixContinuationCannotApplyPrefix(t *testing.T) {
	// Suffix B's continuation names prefix flag A, but a suffix-derived
	// form's continuation may only apply further suffixes.
	aff := mustParseAffix(t, "PFX A Y 1\nPFX A 0 un .\nSFX B Y 1\nSFX B 0 s/A .\n")
	got := ExpandWithFlags(aff, "do", flags.NewSet('B'))
	want := []string{"do", "dos"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v (prefix continuation from a suffix-derived form must not apply)", got, want)
	}
}

func TestDeduplication(t *testing.T) {
	aff := mustParseAffix(t, "SFX B Y 2\nSFX B 0 s .\nSFX B 0 s .\n")
	got := ExpandWithFlags(aff, "cat", flags.NewSet('B'))
	if len(got) != 2 {
		t.Fatalf("expected dedup to yield 2 results (stem + one 'cats'), got %v", got)
	}
}

func TestDeterminism(t *testing.T) {
	aff := mustParseAffix(t, "PFX A Y 1\nPFX A 0 un .\nSFX B Y 1\nSFX B 0 s .\n")
	first := ExpandWithFlags(aff, "do", flags.NewSet('A', 'B'))
	second := ExpandWithFlags(aff, "do", flags.NewSet('A', 'B'))
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected deterministic output, got %v then %v", first, second)
	}
}

func TestStemAlwaysPresent(t *testing.T) {
	aff := mustParseAffix(t, "PFX A Y 1\nPFX A 0 un .\n")
	got := ExpandWithFlags(aff, "happy", flags.NewSet())
	if len(got) != 1 || got[0] != "happy" {
		t.Fatalf("expected stem present even with no matching flags, got %v", got)
	}
}

func TestAllStreamsPerStemDedup(t *testing.T) {
	aff := mustParseAffix(t, "SFX B Y 1\nSFX B 0 s .\n")
	d, err := dict.Parse([]byte("2\ncat/B\ndog/B\n"), aff)
	if err != nil {
		t.Fatalf("dict parse error: %v", err)
	}
	var got []string
	All(aff, d, func(stem, form string) {
		got = append(got, form)
	})
	want := []string{"cat", "cats", "dog", "dogs"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}
