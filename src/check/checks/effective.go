package checks

import (
	"github.com/flakeconf/flakeconf/src/check"
	"github.com/flakeconf/flakeconf/src/conffile"
	"github.com/flakeconf/flakeconf/src/ruleset"
)

func init() {
	check.Register("effective-set", func() check.Check { return &effectiveSet{} })
}

// effectiveSet guards against select/ignore combinations that silence
// everything, the classic "ignore = E" next to "select = E" accident.
type effectiveSet struct{}

func (c *effectiveSet) Name() string         { return "effective-set" }
func (c *effectiveSet) DefaultEnabled() bool { return true }

func (c *effectiveSet) Run(f *conffile.File) []check.Finding {
	if active := ruleset.EffectiveKnown(f.Policy.Select, f.Policy.Ignore); len(active) > 0 {
		return nil
	}
	line := f.KeyLine("select")
	if line == 0 {
		line = ignoreLine(f)
	}
	return []check.Finding{{
		File:     f.Path,
		Line:     line,
		Check:    c.Name(),
		Severity: check.SeverityCritical,
		Message:  "select and ignore leave no known rules active",
	}}
}
