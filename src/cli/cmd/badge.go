package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/flakeconf/flakeconf/src/badge"
	"github.com/flakeconf/flakeconf/src/conffile"
)

var (
	badgeOutput string
	badgeStatus string
)

var badgeCmd = &cobra.Command{
	Use:   "badge [file]",
	Short: "Render a policy badge",
	Long: `Render a shields.io-style SVG badge summarizing the configuration.

The value summarizes the thresholds (for example "120 cols · C≤10");
--status replaces it with a passed/warning/critical verdict and matching
color. The output path must stay inside the repository.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBadge,
}

func init() {
	badgeCmd.Flags().StringVarP(&badgeOutput, "output", "o", "", "output file, repository-relative")
	badgeCmd.Flags().StringVar(&badgeStatus, "status", "", "status-driven value and color: passed, warning, critical")
	_ = badgeCmd.MarkFlagRequired("output")

	rootCmd.AddCommand(badgeCmd)
}

func runBadge(cmd *cobra.Command, args []string) error {
	if err := badge.ValidateOutputPath(badgeOutput); err != nil {
		return err
	}

	path, err := confArg(args)
	if err != nil {
		return err
	}
	f, err := conffile.Load(path)
	if err != nil {
		return err
	}

	metrics, err := badgeMetrics()
	if err != nil {
		return fmt.Errorf("loading badge font: %w", err)
	}
	eng := badge.New(metrics)

	value := badgeValue(&f.Policy)
	color := badge.StatusColor("passed")
	if badgeStatus != "" {
		value = badgeStatus
		color = badge.StatusColor(badgeStatus)
	}

	svg := eng.Generate(badge.Badge{
		Label: cfg.Badge.Label,
		Value: value,
		Color: color,
	})

	if dir := filepath.Dir(badgeOutput); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating badge directory: %w", err)
		}
	}
	if err := os.WriteFile(badgeOutput, []byte(svg), 0o644); err != nil {
		return fmt.Errorf("writing badge: %w", err)
	}
	fmt.Printf("  badge → %s\n", badgeOutput)
	return nil
}

func badgeMetrics() (*badge.FontMetrics, error) {
	if cfg.Badge.Font != "" {
		return badge.LoadFontFile(cfg.Badge.Font, cfg.Badge.FontSize)
	}
	return badge.DefaultMetrics(cfg.Badge.FontSize), nil
}

// badgeValue renders the threshold summary shown on the badge.
func badgeValue(p *conffile.Policy) string {
	v := fmt.Sprintf("%d cols", p.MaxLineLength)
	if p.MaxComplexity > 0 {
		v += fmt.Sprintf(" · C≤%d", p.MaxComplexity)
	}
	return v
}
