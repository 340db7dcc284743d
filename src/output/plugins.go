package output

import (
	"fmt"
	"strings"
)

// PluginDep is the view model for one provider row.
type PluginDep struct {
	Package    string
	Prefixes   []string
	Latest     string
	Prerelease bool
	Err        string // resolution failure: latest stays unknown
}

// SectionPlugins renders the provider table. With resolve set, a third
// column carries the current release from the index.
func SectionPlugins(sec *Section, deps []PluginDep, resolve, color bool) {
	if len(deps) == 0 {
		sec.Row("no known providers for this configuration")
		return
	}

	sec.Row("")
	header := fmt.Sprintf("  %-22s %-12s", "package", "categories")
	if resolve {
		header += " latest"
	}
	sec.Row("%s", bold(color, header))

	for _, d := range deps {
		line := fmt.Sprintf("  %-22s %-12s", d.Package, strings.Join(d.Prefixes, ", "))
		if resolve {
			switch {
			case d.Err != "":
				line += " " + Dimmed("unknown", color)
			case d.Prerelease:
				line += " " + d.Latest + " " + Dimmed("(pre-release)", color)
			default:
				line += " " + d.Latest
			}
		}
		sec.Row("%s", line)
	}
	sec.Row("")
}
