package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kost/runmunch/internal/affix"
	"github.com/kost/runmunch/internal/dict"
	"github.com/kost/runmunch/internal/inverse"
	"github.com/kost/runmunch/internal/normalize"
)

var findBaseExpand bool

var findBaseCmd = &cobra.Command{
	Use:   "find-base <dict.dic> <affix.aff> <surface-form>",
	Short: "Recover candidate base stems for an inflected surface form",
	Long: `find-base reverses prefix/suffix rules against a surface form and
admits candidate stems the dictionary's flag-set authorizes. An empty result
is not an error: it means no rule reversal landed on a known stem.

--expand additionally runs the full expansion of each recovered base
(find_base_and_expand).`,
	Args: cobra.ExactArgs(3),
	RunE: runFindBase,
}

func init() {
	findBaseCmd.Flags().BoolVar(&findBaseExpand, "expand", false, "Also expand each recovered base stem")
	rootCmd.AddCommand(findBaseCmd)
}

func runFindBase(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadRuntime()
	if err != nil {
		return err
	}
	defer logger.Close()

	affOpts, err := affixOptions(cfg, logger)
	if err != nil {
		return err
	}

	dicPath, affPath, surfaceArg := args[0], args[1], args[2]

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

	surface, ok := normalize.Word(surfaceArg)
	if !ok {
		return fmt.Errorf("error: InvalidFlag: surface-form argument is not valid UTF-8")
	}

	var results []string
	if findBaseExpand {
		results = inverse.FindBaseAndExpand(aff, dictionary, surface)
	} else {
		results = inverse.FindBase(aff, dictionary, surface)
	}

	for _, r := range results {
		fmt.Println(r)
	}
	return nil
}
