// Package dict implements the dictionary model and parser: a count line
// (advisory) followed by stem/flag-field records.
package dict

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/kost/runmunch/internal/affix"
	"github.com/kost/runmunch/internal/diag"
	"github.com/kost/runmunch/internal/flags"
)

// Entry is one dictionary record: a stem and the flags authorizing rule
// application to it. Morphological fields after whitespace are not kept:
// the parser reads only the stem/flag token.
type Entry struct {
	Stem  string
	Flags flags.Set
}

// Dictionary is the parsed list of stem/flag-set records.
type Dictionary struct {
	Entries []Entry
}

// ParseError is a fatal dictionary parse failure, localized to a source
// line.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid dictionary at line %d: %s", e.Line, e.Msg)
}

// Options configures the leniency of Parse's skip-and-log cases.
type Options struct {
	// Strict turns every tolerated skip (an out-of-range alias index, a
	// flag referencing no declared PFX/SFX class, an advisory count/entry
	// mismatch) into a fatal ParseError instead of a reported Event.
	Strict bool
	// Diag, if non-nil, receives one Event per tolerated skip.
	Diag func(diag.Event)
}

// Parse reads dictionary bytes against an already-parsed affix model under
// default (non-strict, non-reporting) options.
func Parse(data []byte, aff *affix.File) (*Dictionary, error) {
	return ParseWithOptions(data, aff, Options{})
}

// ParseWithOptions is Parse with explicit strictness and diagnostic
// reporting for tolerated skip cases: an out-of-range AF alias index, a
// flag field naming no declared PFX/SFX class, and an advisory count on
// line 1 that doesn't match the number of records actually parsed.
func ParseWithOptions(data []byte, aff *affix.File, opts Options) (*Dictionary, error) {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	var d Dictionary

	advisoryCount, haveAdvisoryCount := -1, false
	if scanner.Scan() {
		lineNo++
		if n, err := strconv.Atoi(strings.TrimSpace(scanner.Text())); err == nil {
			advisoryCount, haveAdvisoryCount = n, true
		}
	}

	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		// Morphological fields follow whitespace after the stem/flag token;
		// only the first whitespace-delimited token is significant here.
		token := strings.Fields(trimmed)[0]

		stem := token
		var flagField string
		if idx := strings.IndexByte(token, '/'); idx >= 0 {
			stem = token[:idx]
			flagField = token[idx+1:]
		}
		if stem == "" {
			return nil, &ParseError{lineNo, fmt.Sprintf("malformed record %q: empty stem", trimmed)}
		}

		var set flags.Set
		if flagField != "" {
			parsed, err := flags.ParseField(flagField, aff.Mode, aff.Aliases)
			if err != nil {
				var aliasErr *flags.AliasOutOfRangeError
				if !errors.As(err, &aliasErr) || opts.Strict {
					return nil, &ParseError{lineNo, err.Error()}
				}
				if opts.Diag != nil {
					opts.Diag(diag.Event{Line: lineNo, Kind: diag.KindAliasOutOfRange, Detail: err.Error()})
				}
			} else {
				set = parsed
				if err := reportUndefinedFlags(set, stem, lineNo, aff, opts); err != nil {
					return nil, err
				}
			}
		}

		d.Entries = append(d.Entries, Entry{Stem: stem, Flags: set})
	}

	if haveAdvisoryCount && advisoryCount != len(d.Entries) {
		detail := fmt.Sprintf("advisory count %d does not match %d parsed entries", advisoryCount, len(d.Entries))
		if opts.Strict {
			return nil, &ParseError{1, detail}
		}
		if opts.Diag != nil {
			opts.Diag(diag.Event{Line: 1, Kind: diag.KindDictCountMismatch, Detail: detail})
		}
	}

	return &d, nil
}

// reportUndefinedFlags flags (or, under Options.Strict, fails on) dictionary
// flags naming no declared PFX/SFX class — tolerated by Hunspell since the
// expansion engine simply has no rule to apply for them.
func reportUndefinedFlags(set flags.Set, stem string, lineNo int, aff *affix.File, opts Options) error {
	for _, id := range set.IDs() {
		if _, ok := aff.Prefixes[id]; ok {
			continue
		}
		if _, ok := aff.Suffixes[id]; ok {
			continue
		}
		detail := fmt.Sprintf("flag %v on stem %q references no declared PFX/SFX class", id, stem)
		if opts.Strict {
			return &ParseError{lineNo, detail}
		}
		if opts.Diag != nil {
			opts.Diag(diag.Event{Line: lineNo, Kind: diag.KindUndefinedFlag, Detail: detail})
		}
	}
	return nil
}
