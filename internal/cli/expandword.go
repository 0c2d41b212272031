package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kost/runmunch/internal/affix"
	"github.com/kost/runmunch/internal/flags"
	"github.com/kost/runmunch/internal/normalize"

	"github.com/kost/runmunch/internal/expand"
)

var expandWordFlags string

var expandWordCmd = &cobra.Command{
	Use:   "expand-word <affix.aff> <stem>",
	Short: "Expand a single stem against explicit flags, without a dictionary",
	Long: `expand-word runs expand_with_flags directly against one stem, for
debugging a single affix class without needing a dictionary file.

If --flags is omitted, the stem is expanded against every flag defined in
the affix file, which may produce a very large result set.`,
	Args: cobra.ExactArgs(2),
	RunE: runExpandWord,
}

func init() {
	expandWordCmd.Flags().StringVar(&expandWordFlags, "flags", "", "Explicit flag field to expand the stem against")
	rootCmd.AddCommand(expandWordCmd)
}

func runExpandWord(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadRuntime()
	if err != nil {
		return err
	}
	defer logger.Close()

	affOpts, err := affixOptions(cfg, logger)
	if err != nil {
		return err
	}

	affPath, stemArg := args[0], args[1]

	affData, err := os.ReadFile(affPath)
	if err != nil {
		return fmt.Errorf("error: IoError: %w", err)
	}
	aff, err := affix.ParseWithOptions(normalize.Lines(affData), affOpts)
	if err != nil {
		return fmt.Errorf("error: %w", err)
	}

	stem, ok := normalize.Word(stemArg)
	if !ok {
		return fmt.Errorf("error: InvalidFlag: stem argument is not valid UTF-8")
	}

	var flagSet flags.Set
	if expandWordFlags == "" {
		flagSet = aff.AllFlags()
	} else {
		flagSet, err = flags.ParseField(expandWordFlags, aff.Mode, aff.Aliases)
		if err != nil {
			return fmt.Errorf("error: InvalidFlag: %w", err)
		}
	}

	for _, form := range expand.ExpandWithFlags(aff, stem, flagSet) {
		fmt.Println(form)
	}
	return nil
}
