package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kost/runmunch/internal/affix"
	"github.com/kost/runmunch/internal/config"
	"github.com/kost/runmunch/internal/diag"
	"github.com/kost/runmunch/internal/dict"
	"github.com/kost/runmunch/internal/flags"
)

var (
	logPath      string
	outputFormat string
	flagMode     string
	strict       bool
)

var rootCmd = &cobra.Command{
	Use:   "runmunch",
	Short: "runmunch - Hunspell-compatible morphological word expander",
	Long: `runmunch parses a Hunspell affix/dictionary pair and enumerates the
surface word forms derivable by its prefix/suffix rules, including their
continuation and cross-product combinations. It can also run in reverse,
proposing dictionary stems for an inflected surface form.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logPath, "log", "", "Path to diagnostics log file (default: ~/.config/runmunch/diagnostics.jsonl)")
	rootCmd.PersistentFlags().StringVar(&outputFormat, "format", "", "Output format: text or json (default: text)")
	rootCmd.PersistentFlags().StringVar(&flagMode, "flag-mode", "", "Override the affix file's detected FLAG mode: single, long, num, or utf-8")
	rootCmd.PersistentFlags().BoolVar(&strict, "strict", false, "Treat tolerated parse-skip conditions as hard errors")
}

func Execute() error {
	return rootCmd.Execute()
}

// loadRuntime resolves configuration and opens the diagnostics log shared
// by every command that parses an affix/dictionary pair.
func loadRuntime() (*config.Config, *diag.Logger, error) {
	cfg, err := config.Load(logPath, outputFormat, flagMode, strict)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	logger, err := diag.Open(cfg.LogPath)
	if err != nil {
		return nil, nil, fmt.Errorf("error: IoError: %w", err)
	}
	return cfg, logger, nil
}

// diagSink turns a Logger into the callback affix/dict Options expect,
// surfacing a write failure on stderr rather than aborting the parse over
// a logging problem.
func diagSink(logger *diag.Logger) func(diag.Event) {
	return func(e diag.Event) {
		if err := logger.Log(e); err != nil {
			fmt.Fprintf(os.Stderr, "[runmunch] warning: failed to write diagnostic: %v\n", err)
		}
	}
}

// affixOptions translates resolved config into affix.Options, applying
// --flag-mode as a hard override on the parsed FLAG mode.
func affixOptions(cfg *config.Config, logger *diag.Logger) (affix.Options, error) {
	opts := affix.Options{Strict: cfg.Strict, Diag: diagSink(logger)}
	if cfg.FlagMode != "" {
		mode, err := flags.ParseMode(cfg.FlagMode)
		if err != nil {
			return affix.Options{}, fmt.Errorf("error: InvalidFlag: %w", err)
		}
		opts.ModeOverride = &mode
	}
	return opts, nil
}

// dictOptions translates resolved config into dict.Options.
func dictOptions(cfg *config.Config, logger *diag.Logger) dict.Options {
	return dict.Options{Strict: cfg.Strict, Diag: diagSink(logger)}
}
