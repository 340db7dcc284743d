package output

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/flakeconf/flakeconf/src/check"
)

// CI environment detection.

func IsCI() bool {
	return os.Getenv("CI") == "true"
}

func IsGitLabCI() bool {
	return os.Getenv("GITLAB_CI") == "true"
}

// GitLab collapsible section helpers.

func SectionStart(w io.Writer, id, name string) {
	if !IsGitLabCI() {
		return
	}
	ts := time.Now().Unix()
	fmt.Fprintf(w, "\033[0Ksection_start:%d:%s\r\033[0K%s\n", ts, id, name)
}

func SectionEnd(w io.Writer, id string) {
	if !IsGitLabCI() {
		return
	}
	ts := time.Now().Unix()
	fmt.Fprintf(w, "\033[0Ksection_end:%d:%s\r\033[0K\n", ts, id)
}

// JUnit XML types for GitLab test reporting.

type JUnitTestSuites struct {
	XMLName  xml.Name         `xml:"testsuites"`
	Name     string           `xml:"name,attr"`
	Tests    int              `xml:"tests,attr"`
	Failures int              `xml:"failures,attr"`
	Time     string           `xml:"time,attr"`
	Suites   []JUnitTestSuite `xml:"testsuite"`
}

type JUnitTestSuite struct {
	Name     string          `xml:"name,attr"`
	Tests    int             `xml:"tests,attr"`
	Failures int             `xml:"failures,attr"`
	Time     string          `xml:"time,attr"`
	Cases    []JUnitTestCase `xml:"testcase"`
}

type JUnitTestCase struct {
	Name      string        `xml:"name,attr"`
	Classname string        `xml:"classname,attr"`
	Time      string        `xml:"time,attr"`
	Failure   *JUnitFailure `xml:"failure,omitempty"`
}

type JUnitFailure struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr"`
	Body    string `xml:",chardata"`
}

// WriteCheckJUnit writes findings as JUnit XML for GitLab test reporting.
// Each check becomes a test suite, each verified file becomes a test case.
// A syntax pseudo-suite is appended when parse failures synthesized
// findings outside the registered checks.
func WriteCheckJUnit(dir string, findings []check.Finding, files, checks []string, elapsed time.Duration) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating report dir: %w", err)
	}

	byCheck := groupByCheckAndFile(findings, checks)

	names := slices.Clone(checks)
	if _, ok := byCheck[check.SyntaxCheck]; ok && !slices.Contains(checks, check.SyntaxCheck) {
		names = append(names, check.SyntaxCheck)
	}

	root := JUnitTestSuites{
		Name: "flakeconf-check",
		Time: fmt.Sprintf("%.3f", elapsed.Seconds()),
	}
	perSuite := fmt.Sprintf("%.3f", elapsed.Seconds()/float64(len(names)))

	for _, name := range names {
		suite := JUnitTestSuite{
			Name: "flakeconf/check/" + name,
			Time: perSuite,
		}
		for _, file := range files {
			c := junitCase(name, file, byCheck[name][file])
			if c.Failure != nil {
				suite.Failures++
				root.Failures++
			}
			suite.Cases = append(suite.Cases, c)
		}
		suite.Tests = len(suite.Cases)
		root.Tests += suite.Tests
		root.Suites = append(root.Suites, suite)
	}

	path := filepath.Join(dir, "check.xml")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	f.WriteString(xml.Header)
	enc := xml.NewEncoder(f)
	enc.Indent("", "  ")
	if err := enc.Encode(root); err != nil {
		return fmt.Errorf("encoding junit xml: %w", err)
	}
	f.WriteString("\n")

	return nil
}

func groupByCheckAndFile(findings []check.Finding, checks []string) map[string]map[string][]check.Finding {
	grouped := make(map[string]map[string][]check.Finding, len(checks))
	for _, name := range checks {
		grouped[name] = map[string][]check.Finding{}
	}
	for _, f := range findings {
		if grouped[f.Check] == nil {
			grouped[f.Check] = map[string][]check.Finding{}
		}
		grouped[f.Check][f.File] = append(grouped[f.Check][f.File], f)
	}
	return grouped
}

// junitCase builds one test case. Only critical findings fail the case;
// warnings and info land in the body of a passing one.
func junitCase(checkName, file string, ff []check.Finding) JUnitTestCase {
	c := JUnitTestCase{
		Name:      file,
		Classname: "flakeconf.check." + checkName,
		Time:      "0.000",
	}
	if len(ff) == 0 {
		return c
	}

	worst := check.SeverityInfo
	lines := make([]string, 0, len(ff))
	for _, f := range ff {
		worst = max(worst, f.Severity)
		loc := fmt.Sprintf("%d", f.Line)
		if f.Column > 0 {
			loc = fmt.Sprintf("%d:%d", f.Line, f.Column)
		}
		lines = append(lines, fmt.Sprintf("  %s [%s] %s", loc, f.Severity, f.Message))
	}
	if worst >= check.SeverityCritical {
		c.Failure = &JUnitFailure{
			Message: fmt.Sprintf("%d finding(s) in %s", len(ff), file),
			Type:    worst.String(),
			Body:    strings.Join(lines, "\n"),
		}
	}
	return c
}
