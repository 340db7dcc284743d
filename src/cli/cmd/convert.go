package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/flakeconf/flakeconf/src/conffile"
	"github.com/flakeconf/flakeconf/src/convert"
)

var (
	convertTo  string
	convertOut string
)

var convertCmd = &cobra.Command{
	Use:   "convert [file]",
	Short: "Export the configuration for other tools",
	Long: `Export a configuration as ruff TOML, YAML or JSON.

Codes with no equivalent in the target format are dropped with a note on
stderr, so nothing vanishes silently.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringVar(&convertTo, "to", "", "target format: ruff, yaml or json")
	convertCmd.Flags().StringVarP(&convertOut, "output", "o", "", "output file (default: stdout)")
	_ = convertCmd.MarkFlagRequired("to")

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	path, err := confArg(args)
	if err != nil {
		return err
	}
	f, err := conffile.Load(path)
	if err != nil {
		return err
	}

	var (
		data  []byte
		notes []string
	)
	switch convertTo {
	case "ruff":
		data, notes, err = convert.Ruff(&f.Policy)
	case "yaml":
		data, err = convert.YAML(&f.Policy)
	case "json":
		data, err = convert.JSON(&f.Policy)
	default:
		return fmt.Errorf("unknown target %q: want ruff, yaml or json", convertTo)
	}
	if err != nil {
		return fmt.Errorf("converting %s: %w", path, err)
	}
	for _, n := range notes {
		fmt.Fprintf(os.Stderr, "note: %s\n", n)
	}

	if convertOut == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(convertOut, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", convertOut, err)
	}
	fmt.Printf("  %s → %s\n", convertTo, convertOut)
	return nil
}
