package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/flakeconf/flakeconf/src/conffile"
)

var (
	initForce      bool
	initLineLength int
	initComplexity int
)

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Write the canonical configuration file",
	Long: `Write the canonical .flake8 file into a directory (default: the
current one): every interpreted key explicit and every ignored code
documented. Existing files are kept unless --force is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite an existing file")
	initCmd.Flags().IntVar(&initLineLength, "line-length", 0, "override max-line-length (default: keep the template's)")
	initCmd.Flags().IntVar(&initComplexity, "max-complexity", 0, "override max-complexity (default: keep the template's)")

	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}
	path := filepath.Join(dir, ".flake8")

	if _, err := os.Stat(path); err == nil && !initForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	data := conffile.Template()
	if initLineLength > 0 || initComplexity > 0 {
		f := conffile.Canonical()
		if initLineLength > 0 {
			f.Policy.MaxLineLength = initLineLength
		}
		if initComplexity > 0 {
			f.Policy.MaxComplexity = initComplexity
		}
		data = f.Render()
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	fmt.Printf("  init → %s\n", path)
	return nil
}
