package output

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/flakeconf/flakeconf/src/check"
)

// Colors for terminal output.
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorGray   = "\033[90m"
	colorBold   = "\033[1m"
)

// paint wraps text in an ANSI sequence when color is on.
func paint(color bool, ansi, text string) string {
	if !color {
		return text
	}
	return ansi + text + colorReset
}

func bold(color bool, text string) string {
	return paint(color, colorBold, text)
}

// FindingsSummaryLine returns a one-line findings summary, optionally colored.
func FindingsSummaryLine(total, critical, warning, info, filesScanned int, color bool) string {
	var parts []string
	if critical > 0 {
		parts = append(parts, paint(color, colorRed, fmt.Sprintf("%d critical", critical)))
	}
	if warning > 0 {
		parts = append(parts, paint(color, colorYellow, fmt.Sprintf("%d warning", warning)))
	}
	if info > 0 {
		parts = append(parts, fmt.Sprintf("%d info", info))
	}
	summary := "no findings"
	if len(parts) > 0 {
		summary = strings.Join(parts, ", ")
	}
	return fmt.Sprintf("%s findings in %d files: %s",
		bold(color, fmt.Sprintf("%d", total)), filesScanned, summary)
}

// severityTag returns a short severity label, optionally colored.
func severityTag(s check.Severity, color bool) string {
	switch s {
	case check.SeverityCritical:
		return paint(color, colorRed, "CRIT")
	case check.SeverityWarning:
		return paint(color, colorYellow, "WARN")
	case check.SeverityInfo:
		return paint(color, colorGray, "INFO")
	}
	return s.String()
}

// UseColor reports whether output should be colored: NO_COLOR and dumb
// terminals opt out, otherwise a terminal or a CI log gets color.
func UseColor() bool {
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return false
	}
	return isTerminal() || IsCI()
}

func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

// Tally counts findings by severity.
func Tally(findings []check.Finding) (critical, warning, info int) {
	for _, f := range findings {
		switch f.Severity {
		case check.SeverityCritical:
			critical++
		case check.SeverityWarning:
			warning++
		case check.SeverityInfo:
			info++
		}
	}
	return critical, warning, info
}

// StatsTable writes a per-check stats table inside a section. The icon
// flags checks with critical findings; a check with only informational
// findings still gets attention, not a pass.
func StatsTable(sec *Section, stats []check.Stats, color bool) {
	sec.Row("%-22s%6s  %s", "check", "files", "findings")
	for _, s := range stats {
		status := "success"
		switch {
		case s.Critical > 0:
			status = "failed"
		case s.Findings > 0:
			status = "attention"
		}
		sec.Row("%-22s%5d   %5d  %s", s.Name, s.Files, s.Findings, StatusIcon(status, color))
	}
}

// SectionFindings renders findings grouped by file inside a section.
// Files are sorted lexicographically; findings within each file by line,
// column, check, message.
func SectionFindings(sec *Section, findings []check.Finding, color bool) {
	if len(findings) == 0 {
		return
	}

	byFile := map[string][]check.Finding{}
	for _, f := range findings {
		byFile[f.File] = append(byFile[f.File], f)
	}

	files := make([]string, 0, len(byFile))
	for file := range byFile {
		files = append(files, file)
	}
	sort.Strings(files)

	sec.Row("")

	for _, file := range files {
		ff := byFile[file]
		sort.Slice(ff, func(i, j int) bool {
			a, b := ff[i], ff[j]
			if a.Line != b.Line {
				return a.Line < b.Line
			}
			if a.Column != b.Column {
				return a.Column < b.Column
			}
			if a.Check != b.Check {
				return a.Check < b.Check
			}
			return a.Message < b.Message
		})

		if color {
			sec.Row("%s", colorBold+file+colorReset)
		} else {
			sec.Row("%s", file)
		}

		for _, f := range ff {
			var loc string
			switch {
			case f.Line == 0:
				loc = "-"
			case f.Column > 0:
				loc = fmt.Sprintf("%d:%d", f.Line, f.Column)
			default:
				loc = fmt.Sprintf("%d", f.Line)
			}
			sev := severityTag(f.Severity, color)
			sec.Row("  %-8s %-4s  %-20s %s", loc, sev, f.Check, f.Message)
		}

		sec.Row("")
	}
}
