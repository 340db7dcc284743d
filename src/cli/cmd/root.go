package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/flakeconf/flakeconf/src/check"
	_ "github.com/flakeconf/flakeconf/src/check/checks" // registers the built-in checks
	"github.com/flakeconf/flakeconf/src/conffile"
	"github.com/flakeconf/flakeconf/src/config"
	"github.com/flakeconf/flakeconf/src/output"
)

var (
	cfgFile string
	verbose bool
	noColor bool
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "flakeconf",
	Short: "Lint configuration toolkit",
	Long:  "Flakeconf — verify, normalize and export flake8-style lint configuration.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip config loading for commands that don't need it.
		if cmd.Name() == "version" {
			return nil
		}
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		warnings, err := config.Validate(cfg, check.All())
		if err != nil {
			return err
		}
		for _, w := range warnings {
			fmt.Fprintf(os.Stderr, "warning: %s\n", w)
		}
		return nil
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "tool config file (default: .flakeconf.yml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
}

// Execute runs the root command.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	return nil
}

// useColor resolves color from the flag, the tool config, then the terminal.
func useColor() bool {
	if noColor {
		return false
	}
	switch cfg.Output.Color {
	case "always":
		return true
	case "never":
		return false
	}
	return output.UseColor()
}

// confArg resolves the configuration file argument: an explicit path when
// given, otherwise the nearest configuration at or above the working
// directory.
func confArg(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting working directory: %w", err)
	}
	return conffile.FindUp(dir)
}
