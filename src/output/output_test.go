package output

import (
	"encoding/xml"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/flakeconf/flakeconf/src/check"
)

func TestFindingsSummaryLine(t *testing.T) {
	got := FindingsSummaryLine(3, 1, 2, 0, 4, false)
	want := "3 findings in 4 files: 1 critical, 2 warning"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	got = FindingsSummaryLine(0, 0, 0, 0, 2, false)
	want = "0 findings in 2 files: no findings"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestSectionFrame(t *testing.T) {
	var b strings.Builder
	sec := NewSection(&b, "Check", 0, false)
	sec.Row("hello")
	sec.Close()

	out := b.String()
	if !strings.Contains(out, "── Check ") {
		t.Errorf("header missing: %q", out)
	}
	if !strings.Contains(out, "    │ hello\n") {
		t.Errorf("row missing: %q", out)
	}
	if !strings.Contains(out, "    └") {
		t.Errorf("footer missing: %q", out)
	}
}

func TestStatsTable(t *testing.T) {
	var b strings.Builder
	sec := NewSection(&b, "Check", 0, false)
	StatsTable(sec, []check.Stats{
		{Name: "threshold", Files: 3, Findings: 0},
		{Name: "unknown-key", Files: 3, Findings: 2},
		{Name: "effective-set", Files: 3, Findings: 1, Critical: 1},
	}, false)
	sec.Close()

	out := b.String()
	for _, want := range []string{"threshold", "✓", "unknown-key", "⊘", "effective-set", "✗"} {
		if !strings.Contains(out, want) {
			t.Errorf("stats table missing %q:\n%s", want, out)
		}
	}
}

func TestWriteCheckJUnit(t *testing.T) {
	dir := t.TempDir()
	findings := []check.Finding{
		{File: "a/.flake8", Line: 3, Check: "effective-set", Severity: check.SeverityCritical,
			Message: "select and ignore leave no known rules active"},
		{File: "b/setup.cfg", Line: 2, Check: "threshold", Severity: check.SeverityWarning,
			Message: "max-line-length 500 is above the plausible ceiling 400"},
	}
	files := []string{"a/.flake8", "b/setup.cfg"}
	checks := []string{"effective-set", "threshold"}

	if err := WriteCheckJUnit(dir, findings, files, checks, 42*time.Millisecond); err != nil {
		t.Fatalf("WriteCheckJUnit: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "check.xml"))
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	var root JUnitTestSuites
	if err := xml.Unmarshal(data, &root); err != nil {
		t.Fatalf("report is not valid xml: %v", err)
	}

	if root.Tests != 4 {
		t.Errorf("tests = %d, want 4 (2 checks x 2 files)", root.Tests)
	}
	if root.Failures != 1 {
		t.Errorf("failures = %d, want 1 (only critical findings fail)", root.Failures)
	}
	if root.Suites[0].Name != "flakeconf/check/effective-set" {
		t.Errorf("suite name = %q", root.Suites[0].Name)
	}
	for _, tc := range root.Suites[1].Cases {
		if tc.Failure != nil {
			t.Errorf("warning escalated to a failure: %+v", tc)
		}
	}
}

func TestWriteCheckJUnit_SyntaxSuite(t *testing.T) {
	dir := t.TempDir()
	findings := []check.Finding{
		{File: "broken.cfg", Line: 2, Check: check.SyntaxCheck, Severity: check.SeverityCritical,
			Message: "no [flake8] section"},
	}
	if err := WriteCheckJUnit(dir, findings, []string{"broken.cfg"}, []string{"threshold"}, time.Millisecond); err != nil {
		t.Fatalf("WriteCheckJUnit: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "check.xml"))
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	var root JUnitTestSuites
	if err := xml.Unmarshal(data, &root); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(root.Suites) != 2 {
		t.Fatalf("suites = %d, want threshold plus the syntax pseudo-suite", len(root.Suites))
	}
	if root.Failures != 1 {
		t.Errorf("failures = %d, want 1", root.Failures)
	}
}
