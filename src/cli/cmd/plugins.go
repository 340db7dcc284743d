package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/flakeconf/flakeconf/src/conffile"
	"github.com/flakeconf/flakeconf/src/output"
	"github.com/flakeconf/flakeconf/src/pypi"
)

var pluginsLatest bool

var pluginsCmd = &cobra.Command{
	Use:   "plugins [file]",
	Short: "List provider packages for a configuration",
	Long: `List the PyPI packages providing the rule categories a configuration
selects or silences. With --latest the current release of each package is
resolved from the index; lookups that fail leave the version unknown
instead of failing the command.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlugins,
}

func init() {
	pluginsCmd.Flags().BoolVar(&pluginsLatest, "latest", false, "resolve current releases from the package index")

	rootCmd.AddCommand(pluginsCmd)
}

func runPlugins(cmd *cobra.Command, args []string) error {
	path, err := confArg(args)
	if err != nil {
		return err
	}
	f, err := conffile.Load(path)
	if err != nil {
		return err
	}

	providers := pypi.Providers(&f.Policy)
	deps := make([]output.PluginDep, 0, len(providers))
	for _, p := range providers {
		deps = append(deps, output.PluginDep{Package: p.Package, Prefixes: p.Prefixes})
	}

	if pluginsLatest {
		cache := &pypi.Cache{
			Dir: cfg.PyPI.CacheDir,
			TTL: time.Duration(cfg.PyPI.CacheTTLHours) * time.Hour,
		}
		client := pypi.NewClient(cfg.PyPI.URL, cfg.PyPI.TimeoutSeconds, cache)
		ctx := context.Background()
		for i := range deps {
			rel, err := client.Latest(ctx, deps[i].Package)
			if err != nil {
				deps[i].Err = err.Error()
				if verbose {
					fmt.Fprintf(os.Stderr, "pypi: %v\n", err)
				}
				continue
			}
			deps[i].Latest = rel.Version
			deps[i].Prerelease = rel.Prerelease
		}
	}

	color := useColor()
	sec := output.NewSection(os.Stdout, "Plugins", 0, color)
	output.SectionPlugins(sec, deps, pluginsLatest, color)
	sec.Close()
	return nil
}
