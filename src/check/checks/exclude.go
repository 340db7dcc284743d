package checks

import (
	"fmt"
	"path/filepath"

	"github.com/flakeconf/flakeconf/src/check"
	"github.com/flakeconf/flakeconf/src/conffile"
)

func init() {
	check.Register("exclude-pattern", func() check.Check { return &excludePattern{} })
}

// excludePattern validates the exclude list. A malformed glob never matches
// anything, and an absolute path stops working the moment the repository is
// checked out somewhere else.
type excludePattern struct{}

func (c *excludePattern) Name() string         { return "exclude-pattern" }
func (c *excludePattern) DefaultEnabled() bool { return true }

func (c *excludePattern) Run(f *conffile.File) []check.Finding {
	line := f.KeyLine("exclude")
	if line == 0 {
		line = f.KeyLine("extend-exclude")
	}

	var out []check.Finding
	for _, pattern := range f.Policy.Exclude {
		if err := conffile.ValidPattern(pattern); err != nil {
			out = append(out, check.Finding{
				File:     f.Path,
				Line:     line,
				Check:    c.Name(),
				Severity: check.SeverityWarning,
				Message:  fmt.Sprintf("exclude pattern %q: %v", pattern, err),
			})
			continue
		}
		if filepath.IsAbs(pattern) {
			out = append(out, check.Finding{
				File:     f.Path,
				Line:     line,
				Check:    c.Name(),
				Severity: check.SeverityWarning,
				Message:  fmt.Sprintf("exclude pattern %q is an absolute path and will not survive a different checkout", pattern),
			})
		}
	}
	return out
}
