package config

import (
	"errors"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

const defaultConfigFile = ".flakeconf.yml"

// Config is the top-level flakeconf configuration. It tunes the tool
// itself; the lint policy under inspection always lives in the flake8
// files, never here.
type Config struct {
	// TargetBranch pins what --changed diffs against.
	TargetBranch string `yaml:"target_branch"`
	// Checks holds per-check overrides keyed by check name.
	Checks map[string]CheckConfig `yaml:"checks"`
	Sweep  SweepConfig            `yaml:"sweep"`
	Output OutputConfig           `yaml:"output"`
	PyPI   PyPIConfig             `yaml:"pypi"`
	Badge  BadgeConfig            `yaml:"badge"`
}

// Load reads configuration from a YAML file.
// If path is empty, it tries the default file.
// Returns sensible defaults if the file doesn't exist.
func Load(path string) (*Config, error) {
	if path == "" {
		path = defaultConfigFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return defaults(), nil
		}
		return nil, err
	}

	cfg := defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Checks: map[string]CheckConfig{},
		Sweep:  DefaultSweepConfig(),
		Output: DefaultOutputConfig(),
		PyPI:   DefaultPyPIConfig(),
		Badge:  DefaultBadgeConfig(),
	}
}
