package cli

import (
	"fmt"
	"os"
	"reflect"

	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/kost/runmunch/internal/affix"
	"github.com/kost/runmunch/internal/dict"
	"github.com/kost/runmunch/internal/expand"
	"github.com/kost/runmunch/internal/flags"
	"github.com/kost/runmunch/internal/inverse"
)

var selftestReportYAML bool

var selftestCmd = &cobra.Command{
	Use:   "selftest",
	Short: "Run the built-in affix/expansion scenarios and report pass/fail",
	Long: `selftest runs the reference scenarios A-F (minimal prefix, condition
filtering, strip+append, cross-product, alias table, inverse recovery)
in-process and reports whether each still produces its documented result.
No files are read — everything is inline.`,
	RunE: runSelftest,
}

func init() {
	selftestCmd.Flags().BoolVar(&selftestReportYAML, "report", false, "Emit the scenario table as YAML instead of a banner/line report")
	rootCmd.AddCommand(selftestCmd)
}

type scenario struct {
	label string
	run   func() (got []string, ok bool)
}

type scenarioReport struct {
	Label string   `yaml:"label"`
	Want  []string `yaml:"want"`
	Got   []string `yaml:"got"`
	Pass  bool     `yaml:"pass"`
}

func scenarios() []scenario {
	return []scenario{
		{
			label: "A: minimal prefix",
			run: func() ([]string, bool) {
				aff, err := affix.Parse([]byte("PFX A Y 1\nPFX A 0 un .\n"))
				if err != nil {
					return nil, false
				}
				got := expand.ExpandWithFlags(aff, "happy", flags.NewSet('A'))
				return got, reflect.DeepEqual(got, []string{"happy", "unhappy"})
			},
		},
		{
			label: "B: condition filtering",
			run: func() ([]string, bool) {
				aff, err := affix.Parse([]byte("SFX B Y 2\nSFX B 0 s [^sxyz]\nSFX B 0 es [sxyz]\n"))
				if err != nil {
					return nil, false
				}
				cat := expand.ExpandWithFlags(aff, "cat", flags.NewSet('B'))
				bus := expand.ExpandWithFlags(aff, "bus", flags.NewSet('B'))
				got := append(append([]string{}, cat...), bus...)
				want := []string{"cat", "cats", "bus", "buses"}
				return got, reflect.DeepEqual(got, want)
			},
		},
		{
			label: "C: strip+append",
			run: func() ([]string, bool) {
				aff, err := affix.Parse([]byte("SFX C Y 1\nSFX C y ies [^aeiou]y\n"))
				if err != nil {
					return nil, false
				}
				got := expand.ExpandWithFlags(aff, "fly", flags.NewSet('C'))
				return got, reflect.DeepEqual(got, []string{"fly", "flies"})
			},
		},
		{
			label: "D: cross-product",
			run: func() ([]string, bool) {
				aff, err := affix.Parse([]byte("PFX A Y 1\nPFX A 0 un .\nSFX B Y 1\nSFX B 0 s .\n"))
				if err != nil {
					return nil, false
				}
				got := expand.ExpandWithFlags(aff, "do", flags.NewSet('A', 'B'))
				want := []string{"do", "undo", "dos", "undos"}
				return got, reflect.DeepEqual(got, want)
			},
		},
		{
			label: "E: alias table",
			run: func() ([]string, bool) {
				aff, err := affix.Parse([]byte("AF 1\nAF AB\nPFX A Y 1\nPFX A 0 re .\nSFX B Y 1\nSFX B 0 ed .\n"))
				if err != nil {
					return nil, false
				}
				d, err := dict.Parse([]byte("1\nwalk/1\n"), aff)
				if err != nil {
					return nil, false
				}
				got := expand.ExpandStem(aff, d.Entries[0])
				want := []string{"walk", "rewalk", "walked", "rewalked"}
				return got, reflect.DeepEqual(got, want)
			},
		},
		{
			label: "F: inverse recovery",
			run: func() ([]string, bool) {
				aff, err := affix.Parse([]byte("PFX A Y 1\nPFX A 0 un .\nSFX B Y 1\nSFX B 0 s .\n"))
				if err != nil {
					return nil, false
				}
				d, err := dict.Parse([]byte("1\ndo/AB\n"), aff)
				if err != nil {
					return nil, false
				}
				base := inverse.FindBase(aff, d, "undos")
				full := inverse.FindBaseAndExpand(aff, d, "undos")
				baseOK := reflect.DeepEqual(base, []string{"do"})
				fullOK := reflect.DeepEqual(full, []string{"do", "undo", "dos", "undos"})
				return append(append([]string{}, base...), full...), baseOK && fullOK
			},
		},
	}
}

func runSelftest(cmd *cobra.Command, args []string) error {
	cases := scenarios()

	if selftestReportYAML {
		var reports []scenarioReport
		for _, sc := range cases {
			got, ok := sc.run()
			reports = append(reports, scenarioReport{Label: sc.label, Got: got, Pass: ok})
		}
		out, err := yaml.Marshal(reports)
		if err != nil {
			return err
		}
		fmt.Print(string(out))
		for _, r := range reports {
			if !r.Pass {
				return fmt.Errorf("selftest failed: %s", r.Label)
			}
		}
		return nil
	}

	banner := term.IsTerminal(int(os.Stdout.Fd()))
	if banner {
		fmt.Println("═══════════════════════════════════════════════════════")
		fmt.Println("  runmunch selftest")
		fmt.Println("═══════════════════════════════════════════════════════")
		fmt.Println()
	}

	passed, failed := 0, 0
	for _, sc := range cases {
		got, ok := sc.run()
		if ok {
			passed++
		} else {
			failed++
		}
		if banner {
			icon := "\xe2\x9c\x85"
			if !ok {
				icon = "\xe2\x9d\x8c"
			}
			fmt.Printf("  %s  %-28s %v\n", icon, sc.label, got)
		} else {
			status := "PASS"
			if !ok {
				status = "FAIL"
			}
			fmt.Printf("%s\t%s\n", status, sc.label)
		}
	}

	if banner {
		fmt.Println()
		fmt.Printf("  %d/%d passed\n", passed, passed+failed)
	}

	if failed > 0 {
		return fmt.Errorf("selftest: %d of %d scenarios failed", failed, passed+failed)
	}
	return nil
}
