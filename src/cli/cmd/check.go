package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/flakeconf/flakeconf/src/check"
	"github.com/flakeconf/flakeconf/src/conffile"
	"github.com/flakeconf/flakeconf/src/output"
)

var (
	checkChanged bool
	checkOnly    []string
	checkSkip    []string
	checkFormat  string
)

var checkCmd = &cobra.Command{
	Use:   "check [paths...]",
	Short: "Verify configuration files",
	Long: `Verify flake8 configuration files for structural defects.

With no arguments the current tree is swept for .flake8, setup.cfg and
tox.ini files carrying a [flake8] section. Explicit paths skip discovery.

Checks run in parallel across files. Critical findings fail the command.`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&checkChanged, "changed", false, "verify only files changed against the target branch")
	checkCmd.Flags().StringSliceVar(&checkOnly, "check", nil, "run only these checks (comma-separated)")
	checkCmd.Flags().StringSliceVar(&checkSkip, "no-check", nil, "skip these checks (comma-separated)")
	checkCmd.Flags().StringVar(&checkFormat, "format", "text", "output format: text or json")

	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	if checkFormat != "text" && checkFormat != "json" {
		return fmt.Errorf("unknown format %q: want text or json", checkFormat)
	}

	rootDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting working directory: %w", err)
	}

	files := args
	if len(files) == 0 {
		files, err = conffile.Discover(rootDir, cfg.Sweep.Filenames, cfg.Sweep.Exclude)
		if err != nil {
			return fmt.Errorf("discovering configuration files: %w", err)
		}
	}

	// Delta filtering — only verify changed files when asked to
	if checkChanged {
		delta := &check.Delta{RootDir: rootDir, TargetBranch: cfg.TargetBranch, Verbose: verbose}
		changed, derr := delta.ChangedFiles(context.Background())
		if derr != nil && verbose {
			fmt.Fprintf(os.Stderr, "delta: %v, checking all files\n", derr)
		}
		if changed != nil {
			allFiles := files
			files = check.FilterChanged(rootDir, files, changed)
			if verbose {
				fmt.Fprintf(os.Stderr, "delta: %d/%d files changed\n", len(files), len(allFiles))
			}
		}
	}

	if len(files) == 0 {
		if verbose {
			fmt.Fprintln(os.Stderr, "no configuration files to check")
		}
		return nil
	}

	engine, err := check.NewEngine(cfg.Checks, checkOnly, checkSkip, verbose)
	if err != nil {
		return err
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "checks: %v\n", engine.CheckNames())
		fmt.Fprintf(os.Stderr, "verifying %d files\n", len(files))
	}

	start := time.Now()
	findings, stats, err := engine.Run(context.Background(), files)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	critical, warning, info := output.Tally(findings)

	// Write JUnit XML in CI for GitLab test reporting
	if output.IsCI() {
		if jErr := output.WriteCheckJUnit(cfg.Output.Reports, findings, files, engine.CheckNames(), elapsed); jErr != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to write junit report: %v\n", jErr)
		}
	}

	if checkFormat == "json" {
		if err := writeFindingsJSON(os.Stdout, findings); err != nil {
			return err
		}
	} else {
		color := useColor()
		w := os.Stdout

		output.SectionStart(w, "fc_check", "Check")
		sec := output.NewSection(w, "Check", elapsed, color)
		output.StatsTable(sec, stats, color)
		sec.Separator()
		sec.Row("%-22s%5d   %d findings (%d critical)", "total", len(files), len(findings), critical)
		sec.Close()
		output.SectionEnd(w, "fc_check")

		if len(findings) > 0 {
			output.SectionStart(w, "fc_findings", "Findings")
			fSec := output.NewSection(w, "Findings", 0, color)
			output.SectionFindings(fSec, findings, color)
			fSec.Separator()
			fSec.Row(output.FindingsSummaryLine(len(findings), critical, warning, info, len(files), color))
			fSec.Close()
			output.SectionEnd(w, "fc_findings")
		}
	}

	if critical > 0 {
		return fmt.Errorf("check failed: %d critical findings", critical)
	}
	return nil
}

// jsonFinding is the machine-readable projection of a finding.
type jsonFinding struct {
	File     string `json:"file"`
	Line     int    `json:"line,omitempty"`
	Column   int    `json:"column,omitempty"`
	Check    string `json:"check"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

func writeFindingsJSON(w *os.File, findings []check.Finding) error {
	out := make([]jsonFinding, 0, len(findings))
	for _, f := range findings {
		out = append(out, jsonFinding{
			File:     f.File,
			Line:     f.Line,
			Column:   f.Column,
			Check:    f.Check,
			Severity: f.Severity.String(),
			Message:  f.Message,
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
