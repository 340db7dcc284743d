// Package checks holds the structural checks `flakeconf check` runs over
// parsed configuration files. Each file registers its checks in init.
package checks

import (
	"fmt"
	"sort"

	"github.com/flakeconf/flakeconf/src/check"
	"github.com/flakeconf/flakeconf/src/conffile"
	"github.com/flakeconf/flakeconf/src/ruleset"
)

func init() {
	check.Register("undocumented-ignore", func() check.Check { return &undocumentedIgnore{} })
	check.Register("orphan-doc", func() check.Check { return &orphanDoc{} })
}

// undocumentedIgnore wants every suppression the file spells out explained
// in the comment block. A family doc covers its members ("E1" documents
// E121); the external tool's default ignore list needs no local docs.
type undocumentedIgnore struct{}

func (c *undocumentedIgnore) Name() string         { return "undocumented-ignore" }
func (c *undocumentedIgnore) DefaultEnabled() bool { return true }

func (c *undocumentedIgnore) Run(f *conffile.File) []check.Finding {
	var out []check.Finding
	seen := map[ruleset.Code]bool{}
	for _, code := range f.WrittenIgnore {
		if seen[code] {
			continue
		}
		seen[code] = true
		if documented(f.Policy.Docs, code) {
			continue
		}
		out = append(out, check.Finding{
			File:     f.Path,
			Line:     ignoreLine(f),
			Check:    c.Name(),
			Severity: check.SeverityWarning,
			Message:  fmt.Sprintf("ignored code %s has no explanatory comment", code),
		})
	}
	return out
}

func documented(docs map[string]string, code ruleset.Code) bool {
	if _, ok := docs[string(code)]; ok {
		return true
	}
	for dc := range docs {
		if ruleset.Code(dc).Covers(code) {
			return true
		}
	}
	return false
}

func ignoreLine(f *conffile.File) int {
	if line := f.KeyLine("ignore"); line > 0 {
		return line
	}
	return f.KeyLine("extend-ignore")
}

// orphanDoc flags documentation for codes the policy no longer ignores,
// the usual leftover after someone prunes the ignore list.
type orphanDoc struct{}

func (c *orphanDoc) Name() string         { return "orphan-doc" }
func (c *orphanDoc) DefaultEnabled() bool { return true }

func (c *orphanDoc) Run(f *conffile.File) []check.Finding {
	codes := make([]string, 0, len(f.Policy.Docs))
	for code := range f.Policy.Docs {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	var out []check.Finding
	for _, code := range codes {
		if relatedToAny(ruleset.Code(code), f.Policy.Ignore) {
			continue
		}
		out = append(out, check.Finding{
			File:     f.Path,
			Line:     f.DocLine(ruleset.Code(code)),
			Check:    c.Name(),
			Severity: check.SeverityInfo,
			Message:  fmt.Sprintf("documented code %s is not in the ignore list", code),
		})
	}
	return out
}

func relatedToAny(code ruleset.Code, entries []ruleset.Code) bool {
	for _, e := range entries {
		if e.Covers(code) || code.Covers(e) {
			return true
		}
	}
	return false
}
