// Package inverse implements base-word recovery: given a surface form,
// it proposes candidate stems by reversing affix entries and admitting
// only those the dictionary's flag set authorizes.
package inverse

import (
	"strings"

	"github.com/kost/runmunch/internal/affix"
	"github.com/kost/runmunch/internal/dict"
	"github.com/kost/runmunch/internal/expand"
	"github.com/kost/runmunch/internal/flags"
)

// index maps a stem to every flag set a dictionary entry declared for it
// (a dictionary may repeat a stem across entries).
type index map[string][]flags.Set

func buildIndex(d *dict.Dictionary) index {
	idx := make(index, len(d.Entries))
	for _, e := range d.Entries {
		idx[e.Stem] = append(idx[e.Stem], e.Flags)
	}
	return idx
}

func (idx index) has(stem string) bool {
	_, ok := idx[stem]
	return ok
}

func (idx index) hasFlag(stem string, flag flags.ID) bool {
	for _, set := range idx[stem] {
		if set.Has(flag) {
			return true
		}
	}
	return false
}

// reverseSingle undoes one affix entry's effect: removes its (non-empty)
// affix from w and appends its strip back, without checking the entry's
// condition (the caller checks that against whichever reconstructed form
// plays the role of "candidate" at that step).
func reverseSingle(e affix.Entry, w string) (string, bool) {
	if e.Affix == "" {
		return "", false
	}
	if e.Kind == affix.Suffix {
		if !strings.HasSuffix(w, e.Affix) {
			return "", false
		}
		return w[:len(w)-len(e.Affix)] + e.Strip, true
	}
	if !strings.HasPrefix(w, e.Affix) {
		return "", false
	}
	return e.Strip + w[len(e.Affix):], true
}

// dedup preserves first-insertion order, matching the engine's own
// ordering discipline.
type orderedSet struct {
	seen  map[string]bool
	items []string
}

func newOrderedSet() *orderedSet { return &orderedSet{seen: make(map[string]bool)} }

func (s *orderedSet) add(v string) {
	if s.seen[v] {
		return
	}
	s.seen[v] = true
	s.items = append(s.items, v)
}

// FindBase proposes base stems for a surface form. It returns an empty
// slice, never an error, when nothing is found.
func FindBase(aff *affix.File, d *dict.Dictionary, surface string) []string {
	idx := buildIndex(d)
	out := newOrderedSet()

	if idx.has(surface) {
		out.add(surface)
	}

	for _, sf := range aff.SuffixOrder() {
		class := aff.Suffixes[sf]
		for _, e := range class.Entries {
			candidate, ok := reverseSingle(e, surface)
			if !ok {
				continue
			}
			if !e.Condition.Match(candidate) {
				continue
			}
			if idx.hasFlag(candidate, class.Flag) {
				out.add(candidate)
			}
		}
	}

	for _, pf := range aff.PrefixOrder() {
		class := aff.Prefixes[pf]
		for _, e := range class.Entries {
			candidate, ok := reverseSingle(e, surface)
			if !ok {
				continue
			}
			if !e.Condition.Match(candidate) {
				continue
			}
			if idx.hasFlag(candidate, class.Flag) {
				out.add(candidate)
			}
		}
	}

	// One level of combined prefix+suffix removal, mirroring the forward
	// cross-product rule's order (suffix applied to the stem first, then
	// prefix applied to that intermediate form) by undoing in the reverse
	// sequence: prefix first, then suffix.
	for _, pf := range aff.PrefixOrder() {
		pclass := aff.Prefixes[pf]
		if !pclass.CrossProduct {
			continue
		}
		for _, sf := range aff.SuffixOrder() {
			sclass := aff.Suffixes[sf]
			if !sclass.CrossProduct {
				continue
			}
			for _, pe := range pclass.Entries {
				mid, ok := reverseSingle(pe, surface)
				if !ok || !pe.Condition.Match(mid) {
					continue
				}
				for _, se := range sclass.Entries {
					candidate, ok := reverseSingle(se, mid)
					if !ok || !se.Condition.Match(candidate) {
						continue
					}
					if idx.hasFlag(candidate, pclass.Flag) && idx.hasFlag(candidate, sclass.Flag) {
						out.add(candidate)
					}
				}
			}
		}
	}

	return out.items
}

// FindBaseAndExpand unions FindBase's bases with the full expansion of
// each, using that base's own dictionary flag set.
func FindBaseAndExpand(aff *affix.File, d *dict.Dictionary, surface string) []string {
	idx := buildIndex(d)
	bases := FindBase(aff, d, surface)

	out := newOrderedSet()
	for _, base := range bases {
		flagSets := idx[base]
		if len(flagSets) == 0 {
			out.add(base)
			continue
		}
		for _, fs := range flagSets {
			for _, form := range expand.ExpandWithFlags(aff, base, fs) {
				out.add(form)
			}
		}
	}
	return out.items
}
