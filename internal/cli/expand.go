package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/kost/runmunch/internal/affix"
	"github.com/kost/runmunch/internal/dict"
	"github.com/kost/runmunch/internal/expand"
	"github.com/kost/runmunch/internal/normalize"
)

var expandUnique bool

var expandCmd = &cobra.Command{
	Use:   "expand <dict.dic> <affix.aff>",
	Short: "Expand every stem in a dictionary against its affix rules",
	Long: `expand runs the full dictionary unmunch: every stem's applicable
prefix/suffix rules (including continuation and cross-product combinations)
are applied and the resulting surface forms are streamed one per line.

Deduplication is scoped per-stem by default (two stems producing the same
surface form both print it); --unique deduplicates across the whole run
instead, at the cost of buffering every form seen so far.

Parse-tolerance cases (an undefined flag reference, an out-of-range alias
index, a dictionary count mismatch) are logged to the diagnostics file by
default; --strict turns each into a hard parse error instead.`,
	Args: cobra.ExactArgs(2),
	RunE: runExpand,
}

func init() {
	expandCmd.Flags().BoolVar(&expandUnique, "unique", false, "Deduplicate surface forms across the entire run, not just per-stem")
	rootCmd.AddCommand(expandCmd)
}

func runExpand(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadRuntime()
	if err != nil {
		return err
	}
	defer logger.Close()

	affOpts, err := affixOptions(cfg, logger)
	if err != nil {
		return err
	}

	dicPath, affPath := args[0], args[1]

	affData, err := os.ReadFile(affPath)
	if err != nil {
		return fmt.Errorf("error: IoError: %w", err)
	}
	aff, err := affix.ParseWithOptions(normalize.Lines(affData), affOpts)
	if err != nil {
		return fmt.Errorf("error: %w", err)
	}

	dicData, err := os.ReadFile(dicPath)
	if err != nil {
		return fmt.Errorf("error: IoError: %w", err)
	}
	dictionary, err := dict.ParseWithOptions(normalize.Lines(dicData), aff, dictOptions(cfg, logger))
	if err != nil {
		return fmt.Errorf("error: %w", err)
	}

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	showProgress := term.IsTerminal(int(os.Stdout.Fd()))
	count := 0

	var seen map[string]bool
	if expandUnique {
		seen = make(map[string]bool)
	}

	emit := func(stem, form string) {
		if seen != nil {
			if seen[form] {
				return
			}
			seen[form] = true
		}
		count++
		if cfg.OutputFormat == "json" {
			line, _ := json.Marshal(struct {
				Stem string `json:"stem"`
				Form string `json:"form"`
			}{stem, form})
			out.Write(line)
			out.WriteByte('\n')
			return
		}
		fmt.Fprintln(out, form)
	}

	expand.All(aff, dictionary, emit)

	if showProgress {
		out.Flush()
		fmt.Fprintf(os.Stderr, "%d forms emitted\n", count)
	}

	return nil
}
