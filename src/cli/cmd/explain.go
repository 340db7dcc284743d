package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/flakeconf/flakeconf/src/conffile"
	"github.com/flakeconf/flakeconf/src/output"
	"github.com/flakeconf/flakeconf/src/pypi"
	"github.com/flakeconf/flakeconf/src/ruleset"
)

var explainConf string

var explainCmd = &cobra.Command{
	Use:   "explain CODE...",
	Short: "Explain how codes resolve under a configuration",
	Long: `Explain one or more rule codes against a configuration: whether the
code is active, which select or ignore entry decided that, what the file's
documentation says about it, the official description and the package
providing the check.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExplain,
}

func init() {
	explainCmd.Flags().StringVar(&explainConf, "conf", "", "configuration file (default: nearest upward)")

	rootCmd.AddCommand(explainCmd)
}

func runExplain(cmd *cobra.Command, args []string) error {
	var confArgs []string
	if explainConf != "" {
		confArgs = []string{explainConf}
	}
	path, err := confArg(confArgs)
	if err != nil {
		return err
	}
	f, err := conffile.Load(path)
	if err != nil {
		return err
	}

	color := useColor()
	for _, raw := range args {
		code, err := ruleset.ParseCode(raw)
		if err != nil {
			return err
		}

		sec := output.NewSection(os.Stdout, string(code), 0, color)

		d := f.Policy.Decide(code)
		switch {
		case d.Winner == "":
			sec.Row("%-12s%s", "status", output.Dimmed("inactive (no select entry covers it)", color))
		case d.Selected:
			sec.Row("%-12sactive (selected by %s)", "status", d.Winner)
		default:
			sec.Row("%-12signored (silenced by %s)", "status", d.Winner)
		}

		if desc, ok := ruleset.Describe(code); ok {
			sec.Row("%-12s%s", "official", desc)
		}
		if doc := f.Policy.DocFor(code); doc != "" {
			line := fmt.Sprintf("%-12s%s", "documented", doc)
			if n := f.DocLine(code); n > 0 {
				line += " " + output.Dimmed(fmt.Sprintf("(line %d)", n), color)
			}
			sec.Row("%s", line)
		}
		if pkg, ok := pypi.PackageFor(code); ok {
			sec.Row("%-12s%s", "provider", pkg)
		}

		sec.Close()
	}
	return nil
}
