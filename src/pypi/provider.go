// Package pypi maps rule categories to the distributions that implement
// them and resolves current releases from the package index's JSON API.
package pypi

import (
	"sort"

	"github.com/flakeconf/flakeconf/src/conffile"
	"github.com/flakeconf/flakeconf/src/ruleset"
)

// providerPackages maps category prefixes to the distribution that emits
// codes with that prefix. E and W share pycodestyle; the rest are the
// plugins commonly found next to it.
var providerPackages = map[string]string{
	"E":   "pycodestyle",
	"W":   "pycodestyle",
	"F":   "pyflakes",
	"C":   "mccabe",
	"B":   "flake8-bugbear",
	"SIM": "flake8-simplify",
	"D":   "flake8-docstrings",
	"I":   "flake8-isort",
	"S":   "flake8-bandit",
	"N":   "pep8-naming",
}

// PackageFor resolves the distribution implementing a code's category.
func PackageFor(code ruleset.Code) (string, bool) {
	pkg, ok := providerPackages[code.Category()]
	return pkg, ok
}

// Provider is a distribution together with the category prefixes that map
// to it in one policy.
type Provider struct {
	Package  string
	Prefixes []string
}

// Providers lists the distributions the policy's select and ignore lists
// exercise, sorted by package name.
func Providers(p *conffile.Policy) []Provider {
	byPkg := map[string]map[string]bool{}
	collect := func(codes []ruleset.Code) {
		for _, c := range codes {
			cat := c.Category()
			pkg, ok := providerPackages[cat]
			if !ok {
				continue
			}
			if byPkg[pkg] == nil {
				byPkg[pkg] = map[string]bool{}
			}
			byPkg[pkg][cat] = true
		}
	}
	collect(p.Select)
	collect(p.Ignore)

	out := make([]Provider, 0, len(byPkg))
	for pkg, cats := range byPkg {
		prov := Provider{Package: pkg}
		for cat := range cats {
			prov.Prefixes = append(prov.Prefixes, cat)
		}
		sort.Strings(prov.Prefixes)
		out = append(out, prov)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Package < out[j].Package })
	return out
}
