package checks

import (
	"fmt"

	"github.com/flakeconf/flakeconf/src/check"
	"github.com/flakeconf/flakeconf/src/conffile"
	"github.com/flakeconf/flakeconf/src/ruleset"
)

func init() {
	check.Register("redundant-entry", func() check.Check { return &redundantEntry{} })
}

// redundantEntry points out list entries that change nothing: duplicates,
// codes shadowed by a broader prefix in the same list, and suppressions of
// categories the selection never enables.
type redundantEntry struct{}

func (c *redundantEntry) Name() string         { return "redundant-entry" }
func (c *redundantEntry) DefaultEnabled() bool { return true }

func (c *redundantEntry) Run(f *conffile.File) []check.Finding {
	var out []check.Finding

	out = append(out, c.duplicates(f, "ignore", f.WrittenIgnore, ignoreLine(f))...)
	out = append(out, c.duplicates(f, "select", f.WrittenSelect, selectLine(f))...)

	// shadowed ignore entries
	reported := map[ruleset.Code]bool{}
	for _, code := range f.WrittenIgnore {
		if reported[code] {
			continue
		}
		for _, broader := range f.WrittenIgnore {
			if broader != code && broader.Covers(code) {
				reported[code] = true
				out = append(out, check.Finding{
					File:     f.Path,
					Line:     ignoreLine(f),
					Check:    c.Name(),
					Severity: check.SeverityInfo,
					Message:  fmt.Sprintf("ignore entry %s is already covered by %s", code, broader),
				})
				break
			}
		}
	}

	// suppressions outside the selected categories
	unreachable := map[ruleset.Code]bool{}
	for _, code := range f.WrittenIgnore {
		if unreachable[code] || reported[code] {
			continue
		}
		if !relatedToAny(code, f.Policy.Select) {
			unreachable[code] = true
			out = append(out, check.Finding{
				File:     f.Path,
				Line:     ignoreLine(f),
				Check:    c.Name(),
				Severity: check.SeverityInfo,
				Message:  fmt.Sprintf("ignore entry %s is outside the selected categories", code),
			})
		}
	}
	return out
}

func (c *redundantEntry) duplicates(f *conffile.File, key string, entries []ruleset.Code, line int) []check.Finding {
	var out []check.Finding
	seen := map[ruleset.Code]int{}
	for _, code := range entries {
		seen[code]++
	}
	for _, code := range entries {
		if seen[code] > 1 {
			seen[code] = 0 // report once
			out = append(out, check.Finding{
				File:     f.Path,
				Line:     line,
				Check:    c.Name(),
				Severity: check.SeverityInfo,
				Message:  fmt.Sprintf("duplicate %s entry %s", key, code),
			})
		}
	}
	return out
}

func selectLine(f *conffile.File) int {
	if line := f.KeyLine("select"); line > 0 {
		return line
	}
	return f.KeyLine("extend-select")
}
