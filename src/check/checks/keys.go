package checks

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/flakeconf/flakeconf/src/check"
	"github.com/flakeconf/flakeconf/src/conffile"
)

func init() {
	check.Register("unknown-key", func() check.Check { return &unknownKey{} })
}

// knownOptions are the section keys the external tool understands beyond
// the ones the parser models directly.
var knownOptions = map[string]bool{
	"benchmark":          true,
	"builtins":           true,
	"color":              true,
	"count":              true,
	"disable-noqa":       true,
	"doctests":           true,
	"enable-extensions":  true,
	"filename":           true,
	"format":             true,
	"hang-closing":       true,
	"indent-size":        true,
	"jobs":               true,
	"max-doc-length":     true,
	"output-file":        true,
	"per-file-ignores":   true,
	"quiet":              true,
	"require-plugins":    true,
	"show-source":        true,
	"statistics":         true,
	"stdin-display-name": true,
	"tee":                true,
	"verbose":            true,

	// keys carried by widespread plugins
	"application-import-names": true,
	"docstring-convention":     true,
	"import-order-style":       true,
	"inline-quotes":            true,
	"max-cognitive-complexity": true,
	"rst-directives":           true,
	"rst-roles":                true,
}

// unknownKey flags section keys that neither the tool nor its common
// plugins recognise, which usually means a typo that silently does nothing.
type unknownKey struct {
	extra map[string]bool
}

func (c *unknownKey) Name() string         { return "unknown-key" }
func (c *unknownKey) DefaultEnabled() bool { return true }

type unknownKeyConfig struct {
	ExtraAllowed []string `json:"extra_allowed"`
}

func (c *unknownKey) Configure(options map[string]any) error {
	raw, err := json.Marshal(options)
	if err != nil {
		return fmt.Errorf("marshal options: %w", err)
	}
	var kc unknownKeyConfig
	if err := json.Unmarshal(raw, &kc); err != nil {
		return fmt.Errorf("parse options: %w", err)
	}
	c.extra = map[string]bool{}
	for _, key := range kc.ExtraAllowed {
		c.extra[conffile.NormalizeKey(key)] = true
	}
	return nil
}

func (c *unknownKey) Run(f *conffile.File) []check.Finding {
	var out []check.Finding

	keys := make([]string, 0, len(f.Policy.Extra))
	for key := range f.Policy.Extra {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if knownOptions[key] || c.extra[key] {
			continue
		}
		out = append(out, check.Finding{
			File:     f.Path,
			Line:     f.KeyLine(key),
			Check:    c.Name(),
			Severity: check.SeverityWarning,
			Message:  fmt.Sprintf("unknown option %q has no effect", key),
		})
	}
	return out
}
