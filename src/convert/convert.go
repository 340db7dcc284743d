// Package convert exports a parsed configuration in the formats other
// tools read: ruff TOML, plus YAML and JSON projections for scripting.
package convert

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/flakeconf/flakeconf/src/conffile"
)

// Record is the projection the YAML and JSON encoders share. Ignored
// codes carry the documentation the source file gave them.
type Record struct {
	Ignore        []Entry           `yaml:"ignore" json:"ignore"`
	Select        []string          `yaml:"select" json:"select"`
	MaxLineLength int               `yaml:"max-line-length" json:"max-line-length"`
	MaxComplexity int               `yaml:"max-complexity,omitempty" json:"max-complexity,omitempty"`
	Exclude       []string          `yaml:"exclude,omitempty" json:"exclude,omitempty"`
	Options       map[string]string `yaml:"options,omitempty" json:"options,omitempty"`
}

// Entry is one ignored code with its reason, if documented.
type Entry struct {
	Code   string `yaml:"code" json:"code"`
	Reason string `yaml:"reason,omitempty" json:"reason,omitempty"`
}

func newRecord(p *conffile.Policy) Record {
	rec := Record{
		Select:        make([]string, 0, len(p.Select)),
		MaxLineLength: p.MaxLineLength,
		MaxComplexity: p.MaxComplexity,
		Exclude:       append([]string(nil), p.Exclude...),
	}
	for _, c := range p.Ignore {
		rec.Ignore = append(rec.Ignore, Entry{Code: string(c), Reason: p.DocFor(c)})
	}
	for _, c := range p.Select {
		rec.Select = append(rec.Select, string(c))
	}
	if len(p.Extra) > 0 {
		rec.Options = make(map[string]string, len(p.Extra))
		for k, v := range p.Extra {
			rec.Options[k] = v
		}
	}
	return rec
}

// YAML renders the policy as a YAML document.
func YAML(p *conffile.Policy) ([]byte, error) {
	data, err := yaml.Marshal(newRecord(p))
	if err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	return data, nil
}

// JSON renders the policy as indented JSON.
func JSON(p *conffile.Policy) ([]byte, error) {
	data, err := json.MarshalIndent(newRecord(p), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode json: %w", err)
	}
	return append(data, '\n'), nil
}
