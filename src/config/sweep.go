package config

// SweepConfig controls how `check` walks a tree for configuration files.
type SweepConfig struct {
	// Filenames overrides the candidate file names; empty means the
	// external tool's usual set (.flake8, setup.cfg, tox.ini).
	Filenames []string `yaml:"filenames"`
	// Exclude prunes the walk. Bare names match any path segment,
	// patterns with / or ** match the whole relative path.
	Exclude []string `yaml:"exclude"`
}

// DefaultSweepConfig returns production defaults.
func DefaultSweepConfig() SweepConfig {
	return SweepConfig{
		Exclude: []string{"vendor", "node_modules"},
	}
}
