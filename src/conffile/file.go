// Package conffile models flake8-style lint configuration files: the
// [flake8] INI section found in .flake8, setup.cfg and tox.ini. It parses
// the section into an immutable Policy, serializes it back to the same
// textual format, and locates configuration files on disk.
package conffile

import (
	"errors"

	"github.com/flakeconf/flakeconf/src/ruleset"
)

// SectionName is the one INI section this toolkit interprets.
const SectionName = "flake8"

// ErrNoSection marks a file that parsed as INI but carries no [flake8]
// section. Discovery skips such files; direct loads surface it.
var ErrNoSection = errors.New("no [flake8] section")

// Policy is the lint configuration record. Fields are set by the parser
// and never mutated afterwards; Normalize and the converters build new
// values instead.
type Policy struct {
	// Ignore holds the effective suppressed codes: the ignore key when
	// present (the external tool's defaults otherwise) plus any
	// extend-ignore entries, in file order, duplicates preserved.
	Ignore []ruleset.Code
	// Select holds the effective enabled categories, composed the same way
	// from select and extend-select.
	Select []ruleset.Code
	// MaxLineLength is the positive column bound (79 when the key is absent).
	MaxLineLength int
	// MaxComplexity is the positive cyclomatic bound, 0 while the key is
	// absent and complexity checking is off.
	MaxComplexity int
	// Exclude lists path glob patterns in file order.
	Exclude []string
	// Docs maps rule codes to the descriptions the comment block gives
	// them. Comments are inert for the external tool; here they are data.
	Docs map[string]string
	// Extra preserves recognized-but-uninterpreted and unknown keys
	// verbatim so serialization round-trips real-world files.
	Extra map[string]string
}

// Decide resolves a code against the policy's select and ignore lists.
func (p *Policy) Decide(code ruleset.Code) ruleset.Decision {
	return ruleset.Decide(code, p.Select, p.Ignore)
}

// Active reports whether the external linter would apply the code under
// this policy.
func (p *Policy) Active(code ruleset.Code) bool {
	return p.Decide(code).Selected
}

// DocFor finds the documentation for code, preferring the most specific
// covering entry so "E1" explains E121 only when nothing closer exists.
func (p *Policy) DocFor(code ruleset.Code) string {
	best := ""
	for dc := range p.Docs {
		if !ruleset.Code(dc).Covers(code) {
			continue
		}
		if len(dc) > len(best) || (len(dc) == len(best) && dc < best) {
			best = dc
		}
	}
	if best == "" {
		return ""
	}
	return p.Docs[best]
}

// File is a parsed configuration file: the policy plus enough provenance
// to point findings at real lines.
type File struct {
	Path   string
	Policy Policy

	// WrittenIgnore and WrittenSelect hold the entries the file spells out
	// itself (base plus extend- keys), before defaults fold in. Checks that
	// judge what the author wrote use these; decisions use the Policy.
	WrittenIgnore []ruleset.Code
	WrittenSelect []ruleset.Code

	// presence of the five interpreted keys, by normalized name
	present map[string]bool
	// normalized key name -> 1-based line of its assignment
	keyLine map[string]int
	// documented code -> 1-based line of its comment
	docLine map[string]int
}

// HasKey reports whether the named interpreted key appeared in the file
// (normalized spelling: ignore, select, max-line-length, max-complexity,
// exclude, and their extend- variants).
func (f *File) HasKey(name string) bool {
	return f.present[NormalizeKey(name)]
}

// KeyLine returns the 1-based line of a key's assignment, 0 if unknown.
func (f *File) KeyLine(name string) int {
	return f.keyLine[NormalizeKey(name)]
}

// DocLine returns the 1-based line documenting a code, 0 if undocumented.
func (f *File) DocLine(code ruleset.Code) int {
	return f.docLine[string(code)]
}
