package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/flakeconf/flakeconf/src/conffile"
	"github.com/flakeconf/flakeconf/src/output"
	"github.com/flakeconf/flakeconf/src/pypi"
	"github.com/flakeconf/flakeconf/src/ruleset"
)

var showCmd = &cobra.Command{
	Use:   "show [file]",
	Short: "Show the resolved configuration",
	Long: `Show what a configuration file resolves to once defaults fold in:
thresholds, selected categories, ignored entries with their documentation,
exclude patterns and the provider packages the selection exercises.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	path, err := confArg(args)
	if err != nil {
		return err
	}
	f, err := conffile.Load(path)
	if err != nil {
		return err
	}
	p := &f.Policy

	color := useColor()
	sec := output.NewSection(os.Stdout, "Policy", 0, color)

	sec.Row("%-18s%s", "file", f.Path)
	sec.Row("%-18s%d columns", "max-line-length", p.MaxLineLength)
	if p.MaxComplexity > 0 {
		sec.Row("%-18s%d", "max-complexity", p.MaxComplexity)
	} else {
		sec.Row("%-18s%s", "max-complexity", output.Dimmed("off", color))
	}
	sec.Row("%-18s%s", "select", codeList(p.Select))

	sec.Separator()
	if len(p.Ignore) == 0 {
		sec.Row("nothing ignored")
	}
	for _, code := range p.Ignore {
		doc := p.DocFor(code)
		if doc == "" {
			doc = output.Dimmed("undocumented", color)
		}
		sec.Row("%-8s%s", string(code), doc)
	}

	sec.Separator()
	if len(p.Exclude) > 0 {
		sec.Row("%-18s%s", "exclude", strings.Join(p.Exclude, ", "))
	}
	providers := pypi.Providers(p)
	names := make([]string, len(providers))
	for i, pr := range providers {
		names[i] = pr.Package
	}
	sec.Row("%-18s%s", "providers", strings.Join(names, ", "))

	sec.Close()
	return nil
}

func codeList(codes []ruleset.Code) string {
	parts := make([]string, len(codes))
	for i, c := range codes {
		parts[i] = string(c)
	}
	return strings.Join(parts, ", ")
}
