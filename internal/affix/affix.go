// Package affix implements the affix-file parser and the in-memory affix
// model: a line-oriented grammar with non-local dependencies (flag mode,
// alias table) that must be resolved before later lines can be
// interpreted.
package affix

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/kost/runmunch/internal/condition"
	"github.com/kost/runmunch/internal/diag"
	"github.com/kost/runmunch/internal/flags"
)

// Kind distinguishes prefix from suffix classes and entries.
type Kind int

const (
	Prefix Kind = iota
	Suffix
)

// ParseError is a fatal affix-file parse failure, localized to a source
// line.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid affix file at line %d: %s", e.Line, e.Msg)
}

// Entry is one strip/affix/condition rule within an AffixClass.
type Entry struct {
	Strip        string
	Affix        string
	Condition    *condition.Condition
	Continuation flags.Set
	Kind         Kind
}

// Class groups entries sharing a flag, cross-product permission, and kind.
type Class struct {
	Flag         flags.ID
	CrossProduct bool
	Entries      []Entry
	Kind         Kind
}

// File is the fully parsed affix model: flag mode, alias table, and the
// prefix/suffix class tables, keyed by flag for O(1) lookup during
// expansion.
type File struct {
	Mode     flags.Mode
	Aliases  flags.AliasTable
	Prefixes map[flags.ID]*Class
	Suffixes map[flags.ID]*Class

	// prefixOrder and suffixOrder record the order classes were declared in, for
	// deterministic emission: prefix/suffix applications in declaration
	// order, cross-product pairs in lexicographic order over declaration
	// index.
	prefixOrder []flags.ID
	suffixOrder []flags.ID
}

// PrefixOrder returns prefix flags in declaration order.
func (f *File) PrefixOrder() []flags.ID { return f.prefixOrder }

// SuffixOrder returns suffix flags in declaration order.
func (f *File) SuffixOrder() []flags.ID { return f.suffixOrder }

// AllFlags returns the union of every flag defined by any class, used when
// an input word's flag set is unknown: the engine then treats the input's
// flag set as every defined flag.
func (f *File) AllFlags() flags.Set {
	var ids []flags.ID
	for id := range f.Prefixes {
		ids = append(ids, id)
	}
	for id := range f.Suffixes {
		ids = append(ids, id)
	}
	return flags.NewSet(ids...)
}

// Options configures the leniency of Parse's skip-and-log cases.
type Options struct {
	// Strict turns every tolerated skip (an undefined continuation flag)
	// into a fatal ParseError instead of a reported Event.
	Strict bool
	// Diag, if non-nil, receives one Event per tolerated skip.
	Diag func(diag.Event)
	// ModeOverride, if non-nil, replaces the file's FLAG directive (or the
	// single-byte default) before any flag field is decoded. A FLAG
	// directive later in the file is then tolerated but ignored, the same
	// way a repeated FLAG directive already is.
	ModeOverride *flags.Mode
}

// Parse reads an affix file's bytes and builds a File under default
// (non-strict, non-reporting) options. Parse errors are fatal; a partial
// model is never returned.
func Parse(data []byte) (*File, error) {
	return ParseWithOptions(data, Options{})
}

// ParseWithOptions is Parse with explicit strictness and diagnostic
// reporting for tolerated skip cases.
func ParseWithOptions(data []byte, opts Options) (*File, error) {
	f := &File{
		Prefixes: make(map[flags.ID]*Class),
		Suffixes: make(map[flags.ID]*Class),
	}
	modeSet := false
	if opts.ModeOverride != nil {
		f.Mode = *opts.ModeOverride
		modeSet = true
	}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	nextLine := func() (string, bool) {
		for scanner.Scan() {
			lineNo++
			line := stripComment(scanner.Text())
			line = strings.TrimRight(line, "\r")
			if strings.TrimSpace(line) == "" {
				continue
			}
			return line, true
		}
		return "", false
	}

	for {
		line, ok := nextLine()
		if !ok {
			break
		}
		fields := strings.Fields(line)
		directive := fields[0]

		switch directive {
		case "FLAG":
			if modeSet {
				// Hunspell tolerates a repeated FLAG directive; keep the
				// first. Non-fatal.
				continue
			}
			if len(fields) < 2 {
				return nil, &ParseError{lineNo, "FLAG directive missing mode argument"}
			}
			mode, err := flags.ParseMode(fields[1])
			if err != nil {
				return nil, &ParseError{lineNo, err.Error()}
			}
			f.Mode = mode
			modeSet = true

		case "AF":
			if len(fields) < 2 {
				return nil, &ParseError{lineNo, "AF directive missing count"}
			}
			n, err := strconv.Atoi(fields[1])
			if err != nil || n < 0 {
				return nil, &ParseError{lineNo, fmt.Sprintf("AF directive has invalid count %q", fields[1])}
			}
			table := make(flags.AliasTable, 0, n)
			for i := 0; i < n; i++ {
				aLine, ok := nextLine()
				if !ok {
					return nil, &ParseError{lineNo, "unexpected end of file inside AF table"}
				}
				aFields := strings.Fields(aLine)
				if len(aFields) < 2 || aFields[0] != "AF" {
					return nil, &ParseError{lineNo, fmt.Sprintf("expected AF alias line, got %q", aLine)}
				}
				// AF alias lines are parsed raw under the current mode,
				// never via alias lookup (the table doesn't exist yet).
				set, err := flags.ParseField(aFields[1], f.Mode, nil)
				if err != nil {
					return nil, &ParseError{lineNo, err.Error()}
				}
				table = append(table, set)
			}
			f.Aliases = table

		case "PFX", "SFX":
			if err := f.parseClass(directive, fields, nextLine, &lineNo); err != nil {
				return nil, err
			}

		case "REP":
			// Phonetic replacement pairs are out of scope, but the block's
			// lines carry a count like PFX/SFX, so it must be skipped
			// wholesale rather than line-by-line to avoid misinterpreting a
			// REP pair as a stray directive.
			if len(fields) < 2 {
				continue
			}
			n, err := strconv.Atoi(fields[1])
			if err != nil {
				continue
			}
			for i := 0; i < n; i++ {
				if _, ok := nextLine(); !ok {
					return nil, &ParseError{lineNo, "unexpected end of file inside REP table"}
				}
			}

		default:
			// SET, TRY, KEY, COMPOUNDFLAG, and any other directive: ignored.
		}
	}

	if err := f.checkUndefinedContinuations(opts); err != nil {
		return nil, err
	}

	return f, nil
}

// checkUndefinedContinuations reports (or, under Options.Strict, fails on)
// continuation flags that name no declared PFX/SFX class. Hunspell tolerates
// these; the expansion engine already skips them naturally since no class
// exists to apply, but an operator still benefits from knowing a flag in
// the affix file resolves to nothing.
func (f *File) checkUndefinedContinuations(opts Options) error {
	defined := f.AllFlags()

	report := func(owner flags.ID, kind Kind, contID flags.ID) error {
		ownerKind := "PFX"
		if kind == Suffix {
			ownerKind = "SFX"
		}
		detail := fmt.Sprintf("continuation flag %v on %s class %v references no declared PFX/SFX class", contID, ownerKind, owner)
		if opts.Strict {
			return &ParseError{0, detail}
		}
		if opts.Diag != nil {
			opts.Diag(diag.Event{Kind: diag.KindUndefinedFlag, Detail: detail})
		}
		return nil
	}

	for _, class := range f.Prefixes {
		for _, e := range class.Entries {
			for _, contID := range e.Continuation.IDs() {
				if !defined.Has(contID) {
					if err := report(class.Flag, Prefix, contID); err != nil {
						return err
					}
				}
			}
		}
	}
	for _, class := range f.Suffixes {
		for _, e := range class.Entries {
			for _, contID := range e.Continuation.IDs() {
				if !defined.Has(contID) {
					if err := report(class.Flag, Suffix, contID); err != nil {
						return err
					}
				}
			}
		}
	}
	return nil
}

func (f *File) parseClass(directive string, header []string, nextLine func() (string, bool), lineNo *int) error {
	kind := Prefix
	if directive == "SFX" {
		kind = Suffix
	}

	if len(header) < 4 {
		return &ParseError{*lineNo, fmt.Sprintf("%s header requires flag, cross-product, and count", directive)}
	}

	flagSet, err := flags.ParseField(header[1], f.Mode, f.Aliases)
	if err != nil {
		return &ParseError{*lineNo, err.Error()}
	}
	if flagSet.Len() != 1 {
		return &ParseError{*lineNo, fmt.Sprintf("%s header flag field %q must name exactly one flag", directive, header[1])}
	}
	flag := flagSet.IDs()[0]

	cross, err := parseYN(header[2])
	if err != nil {
		return &ParseError{*lineNo, err.Error()}
	}

	count, err := strconv.Atoi(header[3])
	if err != nil || count < 0 {
		return &ParseError{*lineNo, fmt.Sprintf("%s header has invalid count %q", directive, header[3])}
	}

	class := &Class{Flag: flag, CrossProduct: cross, Kind: kind}

	for i := 0; i < count; i++ {
		line, ok := nextLine()
		if !ok {
			return &ParseError{*lineNo, fmt.Sprintf("unexpected end of file: %s class for flag expected %d entries, got %d", directive, count, i)}
		}
		entry, err := parseEntryLine(directive, line, kind, f.Mode, f.Aliases, *lineNo)
		if err != nil {
			return err
		}
		class.Entries = append(class.Entries, *entry)
	}

	if kind == Prefix {
		if _, exists := f.Prefixes[flag]; !exists {
			f.prefixOrder = append(f.prefixOrder, flag)
		}
		f.Prefixes[flag] = class
	} else {
		if _, exists := f.Suffixes[flag]; !exists {
			f.suffixOrder = append(f.suffixOrder, flag)
		}
		f.Suffixes[flag] = class
	}
	return nil
}

func parseEntryLine(directive, line string, kind Kind, mode flags.Mode, aliases flags.AliasTable, lineNo int) (*Entry, error) {
	fields := strings.Fields(line)
	// Entry lines repeat the directive and flag as their first two fields
	// (e.g. "PFX A 0 un ."), matching real .aff files; tolerate either form.
	if len(fields) > 0 && fields[0] == directive {
		fields = fields[1:]
		if len(fields) > 0 {
			fields = fields[1:] // drop the repeated flag field
		}
	}
	if len(fields) < 2 {
		return nil, &ParseError{lineNo, fmt.Sprintf("malformed %s entry %q", directive, line)}
	}

	strip := fields[0]
	if strip == "0" {
		strip = ""
	}

	affixField := fields[1]
	affixText := affixField
	var continuation flags.Set
	if idx := strings.IndexByte(affixField, '/'); idx >= 0 {
		affixText = affixField[:idx]
		contField := affixField[idx+1:]
		set, err := flags.ParseField(contField, mode, aliases)
		if err != nil {
			return nil, &ParseError{lineNo, err.Error()}
		}
		continuation = set
	}
	if affixText == "0" {
		affixText = ""
	}

	condText := "."
	if len(fields) >= 3 {
		condText = fields[2]
	}

	ck := condition.Suffix
	if kind == Prefix {
		ck = condition.Prefix
	}
	cond, err := condition.Compile(condText, ck)
	if err != nil {
		return nil, &ParseError{lineNo, err.Error()}
	}

	return &Entry{
		Strip:        strip,
		Affix:        affixText,
		Condition:    cond,
		Continuation: continuation,
		Kind:         kind,
	}, nil
}

func parseYN(s string) (bool, error) {
	switch s {
	case "Y", "y":
		return true, nil
	case "N", "n":
		return false, nil
	default:
		return false, fmt.Errorf("expected Y or N for cross-product, got %q", s)
	}
}

func stripComment(line string) string {
	if idx := strings.IndexByte(line, '#'); idx >= 0 {
		return line[:idx]
	}
	return line
}
