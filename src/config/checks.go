package config

// CheckConfig holds per-check overrides.
type CheckConfig struct {
	Enabled *bool `yaml:"enabled,omitempty"`
	// Severity forces every finding of the check to info, warning or
	// critical, whatever the check itself reports.
	Severity string         `yaml:"severity,omitempty"`
	Options  map[string]any `yaml:"options,omitempty"`
}

// Severities accepted in CheckConfig.Severity.
var Severities = []string{"info", "warning", "critical"}
