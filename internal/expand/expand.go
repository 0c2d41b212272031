// Package expand implements the expansion engine: stem expansion with
// recursive continuation, prefix×suffix cross-product, and per-stem
// deduplication, plus a dictionary-wide unmunch pass.
package expand

import (
	"strconv"
	"strings"

	"github.com/kost/runmunch/internal/affix"
	"github.com/kost/runmunch/internal/dict"
	"github.com/kost/runmunch/internal/flags"
)

// orderedSet accumulates strings in first-insertion order while rejecting
// duplicates.
type orderedSet struct {
	seen  map[string]bool
	items []string
}

func newOrderedSet() *orderedSet {
	return &orderedSet{seen: make(map[string]bool)}
}

func (s *orderedSet) add(v string) {
	if s.seen[v] {
		return
	}
	s.seen[v] = true
	s.items = append(s.items, v)
}

type continuable struct {
	form        string
	avail       flags.Set
	allowPrefix bool
	allowSuffix bool
}

// visitKey guards against continuation cycles: a visited set keyed on
// (current-form, remaining-flag-set), not a depth limit, so legitimate
// deep morphology is not truncated.
type visitKey struct {
	form        string
	flagSig     string
	allowPrefix bool
	allowSuffix bool
}

func flagSignature(s flags.Set) string {
	var b strings.Builder
	for _, id := range s.IDs() {
		b.WriteString(strconv.FormatUint(uint64(id), 36))
		b.WriteByte(',')
	}
	return b.String()
}

// applyEntry applies a single affix entry to form, returning the produced
// word and whether the entry applies.
func applyEntry(e affix.Entry, form string) (string, bool) {
	if e.Kind == affix.Suffix {
		if !e.Condition.Match(form) {
			return "", false
		}
		if e.Strip != "" {
			if !strings.HasSuffix(form, e.Strip) {
				return "", false
			}
			form = form[:len(form)-len(e.Strip)]
		}
		return form + e.Affix, true
	}

	if !e.Condition.Match(form) {
		return "", false
	}
	if e.Strip != "" {
		if !strings.HasPrefix(form, e.Strip) {
			return "", false
		}
		form = form[len(e.Strip):]
	}
	return e.Affix + form, true
}

// ExpandWithFlags expands a single stem under an explicit flag set,
// returning results in deterministic declaration order.
func ExpandWithFlags(aff *affix.File, stem string, flagSet flags.Set) []string {
	out := newOrderedSet()
	out.add(stem)
	visited := make(map[visitKey]bool)
	expandNode(aff, stem, flagSet, true, true, out, visited)
	return out.items
}

func expandNode(aff *affix.File, form string, avail flags.Set, allowPrefix, allowSuffix bool, out *orderedSet, visited map[visitKey]bool) {
	key := visitKey{form, flagSignature(avail), allowPrefix, allowSuffix}
	if visited[key] {
		return
	}
	visited[key] = true

	var next []continuable

	// (2) prefix applications in declaration order.
	if allowPrefix {
		for _, pf := range aff.PrefixOrder() {
			if !avail.Has(pf) {
				continue
			}
			class := aff.Prefixes[pf]
			for _, e := range class.Entries {
				if res, ok := applyEntry(e, form); ok {
					out.add(res)
					next = append(next, continuable{res, e.Continuation, true, false})
				}
			}
		}
	}

	// (3) suffix applications in declaration order.
	if allowSuffix {
		for _, sf := range aff.SuffixOrder() {
			if !avail.Has(sf) {
				continue
			}
			class := aff.Suffixes[sf]
			for _, e := range class.Entries {
				if res, ok := applyEntry(e, form); ok {
					out.add(res)
					next = append(next, continuable{res, e.Continuation, false, true})
				}
			}
		}
	}

	// (4) cross-product pairs in lexicographic order over
	// (prefix-decl-index, suffix-decl-index). Hunspell's definition: strip
	// the suffix then the prefix from the stem, appending both; computing
	// Q = apply(suffix, S) then apply(prefix, Q) is the documented
	// equivalent of stripping/appending both in one step.
	if allowPrefix && allowSuffix {
		for _, pf := range aff.PrefixOrder() {
			pclass := aff.Prefixes[pf]
			if !pclass.CrossProduct || !avail.Has(pf) {
				continue
			}
			for _, sf := range aff.SuffixOrder() {
				sclass := aff.Suffixes[sf]
				if !sclass.CrossProduct || !avail.Has(sf) {
					continue
				}
				for _, pe := range pclass.Entries {
					for _, se := range sclass.Entries {
						q, ok := applyEntry(se, form)
						if !ok {
							continue
						}
						final, ok := applyEntry(pe, q)
						if !ok {
							continue
						}
						out.add(final)
						cont := pe.Continuation.Union(se.Continuation)
						next = append(next, continuable{final, cont, true, true})
					}
				}
			}
		}
	}

	// (5) continuations recursively, in the same order their forms were
	// emitted above.
	for _, c := range next {
		if c.avail.Empty() {
			continue
		}
		expandNode(aff, c.form, c.avail, c.allowPrefix, c.allowSuffix, out, visited)
	}
}

// ExpandStem expands a dictionary entry using its own flag set.
func ExpandStem(aff *affix.File, entry dict.Entry) []string {
	return ExpandWithFlags(aff, entry.Stem, entry.Flags)
}

// All streams the full dictionary unmunch: each dictionary entry is
// expanded and its results pushed to emit immediately, without buffering
// the full result set. Deduplication is scoped per-stem; two stems
// producing the same surface form both emit it.
func All(aff *affix.File, d *dict.Dictionary, emit func(stem, form string)) {
	for _, entry := range d.Entries {
		for _, form := range ExpandStem(aff, entry) {
			emit(entry.Stem, form)
		}
	}
}
