package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/flakeconf/flakeconf/src/conffile"
)

var (
	fmtInPlace bool
	fmtOutput  string
	fmtCheck   bool
)

var fmtCmd = &cobra.Command{
	Use:   "fmt [file]",
	Short: "Normalize a configuration file",
	Long: `Rewrite a configuration file in canonical form: keys in fixed order,
ignore and select entries sorted and deduplicated, documentation block
above the ignore key.

Writes to stdout unless --in-place or --output is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFmt,
}

func init() {
	fmtCmd.Flags().BoolVarP(&fmtInPlace, "in-place", "i", false, "rewrite the file itself")
	fmtCmd.Flags().StringVarP(&fmtOutput, "output", "o", "", "write to this file instead of stdout")
	fmtCmd.Flags().BoolVar(&fmtCheck, "check", false, "exit 1 when the file is not canonical, write nothing")

	rootCmd.AddCommand(fmtCmd)
}

func runFmt(cmd *cobra.Command, args []string) error {
	if fmtCheck && (fmtInPlace || fmtOutput != "") {
		return fmt.Errorf("--check cannot be combined with --in-place or --output")
	}

	path, err := confArg(args)
	if err != nil {
		return err
	}
	f, err := conffile.Load(path)
	if err != nil {
		return err
	}
	canonical := f.Normalize().Render()

	if fmtCheck {
		original, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if !bytes.Equal(original, canonical) {
			return fmt.Errorf("%s is not canonical", path)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "%s is canonical\n", path)
		}
		return nil
	}

	switch {
	case fmtInPlace:
		if err := os.WriteFile(path, canonical, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		fmt.Printf("  fmt → %s\n", path)
	case fmtOutput != "":
		if err := os.WriteFile(fmtOutput, canonical, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", fmtOutput, err)
		}
		fmt.Printf("  fmt → %s\n", fmtOutput)
	default:
		if _, err := os.Stdout.Write(canonical); err != nil {
			return err
		}
	}
	return nil
}
