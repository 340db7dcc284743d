package checks

import (
	"encoding/json"
	"fmt"

	"github.com/flakeconf/flakeconf/src/check"
	"github.com/flakeconf/flakeconf/src/conffile"
)

const (
	defaultLineLengthMax = 400
	defaultLineLengthMin = 40
	defaultComplexityMax = 50
)

func init() {
	check.Register("threshold", func() check.Check {
		return &threshold{cfg: thresholdConfig{
			LineLengthMax: defaultLineLengthMax,
			LineLengthMin: defaultLineLengthMin,
			ComplexityMax: defaultComplexityMax,
		}}
	})
}

type thresholdConfig struct {
	LineLengthMax int `json:"line_length_max"`
	LineLengthMin int `json:"line_length_min"`
	ComplexityMax int `json:"complexity_max"`
}

// threshold sanity-checks the numeric bounds. The parser already rejects
// non-positive values; this flags values that merely defeat the point.
type threshold struct {
	cfg thresholdConfig
}

func (c *threshold) Name() string         { return "threshold" }
func (c *threshold) DefaultEnabled() bool { return true }

// Configure implements check.Configurable.
func (c *threshold) Configure(opts map[string]any) error {
	cfg := thresholdConfig{
		LineLengthMax: defaultLineLengthMax,
		LineLengthMin: defaultLineLengthMin,
		ComplexityMax: defaultComplexityMax,
	}
	if len(opts) != 0 {
		b, err := json.Marshal(opts)
		if err != nil {
			return fmt.Errorf("threshold: marshal options: %w", err)
		}
		if err := json.Unmarshal(b, &cfg); err != nil {
			return fmt.Errorf("threshold: unmarshal options: %w", err)
		}
	}
	if cfg.LineLengthMin <= 0 || cfg.LineLengthMax < cfg.LineLengthMin {
		return fmt.Errorf("threshold: line length bounds %d..%d make no sense", cfg.LineLengthMin, cfg.LineLengthMax)
	}
	if cfg.ComplexityMax <= 0 {
		return fmt.Errorf("threshold: complexity_max must be positive, got %d", cfg.ComplexityMax)
	}
	c.cfg = cfg
	return nil
}

func (c *threshold) Run(f *conffile.File) []check.Finding {
	var out []check.Finding
	p := &f.Policy

	if f.HasKey("max-line-length") {
		switch {
		case p.MaxLineLength > c.cfg.LineLengthMax:
			out = append(out, c.finding(f, "max-line-length",
				fmt.Sprintf("max-line-length %d is above the plausible ceiling %d", p.MaxLineLength, c.cfg.LineLengthMax)))
		case p.MaxLineLength < c.cfg.LineLengthMin:
			out = append(out, c.finding(f, "max-line-length",
				fmt.Sprintf("max-line-length %d is below the plausible floor %d", p.MaxLineLength, c.cfg.LineLengthMin)))
		}
	}
	if f.HasKey("max-complexity") && p.MaxComplexity > c.cfg.ComplexityMax {
		out = append(out, c.finding(f, "max-complexity",
			fmt.Sprintf("max-complexity %d no longer bounds anything (ceiling %d)", p.MaxComplexity, c.cfg.ComplexityMax)))
	}
	return out
}

func (c *threshold) finding(f *conffile.File, key, msg string) check.Finding {
	return check.Finding{
		File:     f.Path,
		Line:     f.KeyLine(key),
		Check:    c.Name(),
		Severity: check.SeverityWarning,
		Message:  msg,
	}
}
