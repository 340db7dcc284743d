package conffile

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/flakeconf/flakeconf/src/ruleset"
)

// Render serializes the policy in canonical form: the [flake8] header, the
// documentation block, the interpreted keys in fixed order, then preserved
// extra keys sorted by name. Absent-by-default values are materialized so
// the rendered file never depends on external-tool defaults; parsing the
// output yields an equal Policy.
func (f *File) Render() []byte {
	var b strings.Builder
	p := &f.Policy

	fmt.Fprintf(&b, "[%s]\n", SectionName)
	renderDocs(&b, p)
	writeKV(&b, "ignore", joinCodes(p.Ignore))
	writeKV(&b, "select", joinCodes(p.Select))
	writeKV(&b, "max-line-length", fmt.Sprintf("%d", p.MaxLineLength))
	if p.MaxComplexity > 0 {
		writeKV(&b, "max-complexity", fmt.Sprintf("%d", p.MaxComplexity))
	}
	if len(p.Exclude) > 0 {
		writeKV(&b, "exclude", strings.Join(p.Exclude, ", "))
	}

	extras := make([]string, 0, len(p.Extra))
	for name := range p.Extra {
		extras = append(extras, name)
	}
	sort.Strings(extras)
	for _, name := range extras {
		writeKV(&b, name, p.Extra[name])
	}
	return []byte(b.String())
}

// WriteTo implements io.WriterTo over Render.
func (f *File) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(f.Render())
	return int64(n), err
}

// renderDocs emits the comment block: documented ignore entries first in
// list order, then documented codes the ignore list no longer carries.
func renderDocs(b *strings.Builder, p *Policy) {
	if len(p.Docs) == 0 {
		return
	}
	var order []string
	seen := map[string]bool{}
	for _, c := range p.Ignore {
		s := string(c)
		if _, ok := p.Docs[s]; ok && !seen[s] {
			order = append(order, s)
			seen[s] = true
		}
	}
	var rest []string
	for code := range p.Docs {
		if !seen[code] {
			rest = append(rest, code)
		}
	}
	sort.Strings(rest)
	order = append(order, rest...)

	width := 0
	for _, code := range order {
		if len(code) > width {
			width = len(code)
		}
	}
	for _, code := range order {
		fmt.Fprintf(b, "# %-*s  %s\n", width, code, p.Docs[code])
	}
}

func writeKV(b *strings.Builder, name, value string) {
	if value == "" {
		fmt.Fprintf(b, "%s =\n", name)
		return
	}
	// hanging indent for multiline values (per-file-ignores and friends)
	if strings.Contains(value, "\n") {
		fmt.Fprintf(b, "%s =\n", name)
		for _, line := range strings.Split(value, "\n") {
			if strings.TrimSpace(line) == "" {
				continue
			}
			fmt.Fprintf(b, "    %s\n", strings.TrimSpace(line))
		}
		return
	}
	fmt.Fprintf(b, "%s = %s\n", name, value)
}

func joinCodes(codes []ruleset.Code) string {
	items := make([]string, len(codes))
	for i, c := range codes {
		items[i] = string(c)
	}
	return strings.Join(items, ", ")
}
