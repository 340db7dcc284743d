package convert

import (
	"fmt"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/flakeconf/flakeconf/src/conffile"
	"github.com/flakeconf/flakeconf/src/ruleset"
)

type ruffConfig struct {
	LineLength    int      `toml:"line-length,omitempty"`
	ExtendExclude []string `toml:"extend-exclude,omitempty"`
	Lint          ruffLint `toml:"lint"`
}

type ruffLint struct {
	Select []string    `toml:"select,omitempty"`
	Ignore []string    `toml:"ignore,omitempty"`
	Mccabe *ruffMccabe `toml:"mccabe,omitempty"`
}

type ruffMccabe struct {
	MaxComplexity int `toml:"max-complexity"`
}

// Ruff renders the policy as a ruff.toml. Codes ruff does not implement
// are dropped and reported in notes for the caller to print.
func Ruff(p *conffile.Policy) (data []byte, notes []string, err error) {
	cfg := ruffConfig{
		LineLength:    p.MaxLineLength,
		ExtendExclude: append([]string(nil), p.Exclude...),
	}
	cfg.Lint.Select, notes = mapCodes(p.Select, "select", notes)
	cfg.Lint.Ignore, notes = mapCodes(p.Ignore, "ignore", notes)
	if p.MaxComplexity > 0 {
		cfg.Lint.Mccabe = &ruffMccabe{MaxComplexity: p.MaxComplexity}
	}
	data, err = toml.Marshal(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("encode ruff config: %w", err)
	}
	return data, notes, nil
}

func mapCodes(codes []ruleset.Code, key string, notes []string) ([]string, []string) {
	out := make([]string, 0, len(codes))
	seen := map[string]bool{}
	for _, c := range codes {
		mapped, ok := ruffCode(c)
		if !ok {
			notes = append(notes, fmt.Sprintf("%s: %s has no ruff equivalent, dropped", key, c))
			continue
		}
		if !seen[mapped] {
			seen[mapped] = true
			out = append(out, mapped)
		}
	}
	return out, notes
}

// ruffCode maps one code to its ruff spelling. The complexity category C
// is ruff's C90 group; W503, W504 and E133 exist only in pycodestyle.
func ruffCode(c ruleset.Code) (string, bool) {
	switch c {
	case "W503", "W504", "E133":
		return "", false
	case "C":
		return "C90", true
	}
	return string(c), true
}
