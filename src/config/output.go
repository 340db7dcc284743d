package config

// OutputConfig controls terminal rendering.
type OutputConfig struct {
	// Color is auto, always or never.
	Color string `yaml:"color"`
	// Reports is where JUnit XML lands in CI.
	Reports string `yaml:"reports"`
}

// DefaultOutputConfig returns production defaults.
func DefaultOutputConfig() OutputConfig {
	return OutputConfig{
		Color:   "auto",
		Reports: ".flakeconf/reports",
	}
}
