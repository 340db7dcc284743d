package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/flakeconf/flakeconf/src/conffile"
)

// Validate checks structural invariants of a loaded Config. knownChecks
// names the registered checks so typos in the checks map get flagged.
// Returns warnings (soft issues) and a hard error if the config is invalid.
func Validate(cfg *Config, knownChecks []string) (warnings []string, err error) {
	var errs []string

	// ── Checks ────────────────────────────────────────────────────────────

	known := make(map[string]bool, len(knownChecks))
	for _, name := range knownChecks {
		known[name] = true
	}
	for name, cc := range cfg.Checks {
		if len(knownChecks) > 0 && !known[name] {
			warnings = append(warnings, fmt.Sprintf("checks: unknown check %q (known: %s)", name, strings.Join(knownChecks, ", ")))
		}
		if cc.Severity != "" && !validSeverity(cc.Severity) {
			errs = append(errs, fmt.Sprintf("checks.%s: severity must be one of %s, got %q", name, strings.Join(Severities, ", "), cc.Severity))
		}
	}

	// ── Sweep ─────────────────────────────────────────────────────────────

	for _, pattern := range cfg.Sweep.Exclude {
		if perr := conffile.ValidPattern(pattern); perr != nil {
			errs = append(errs, fmt.Sprintf("sweep.exclude: bad pattern %q", pattern))
		}
	}

	// ── Output ────────────────────────────────────────────────────────────

	switch cfg.Output.Color {
	case "", "auto", "always", "never":
	default:
		errs = append(errs, fmt.Sprintf("output.color: must be auto, always or never, got %q", cfg.Output.Color))
	}

	// ── PyPI ──────────────────────────────────────────────────────────────

	if cfg.PyPI.URL == "" {
		errs = append(errs, "pypi.url: must not be empty")
	}
	if cfg.PyPI.TimeoutSeconds <= 0 {
		errs = append(errs, fmt.Sprintf("pypi.timeout_seconds: must be positive, got %d", cfg.PyPI.TimeoutSeconds))
	}
	if cfg.PyPI.CacheTTLHours < 0 {
		errs = append(errs, fmt.Sprintf("pypi.cache_ttl_hours: must not be negative, got %d", cfg.PyPI.CacheTTLHours))
	}

	// ── Badge ─────────────────────────────────────────────────────────────

	if cfg.Badge.FontSize <= 0 {
		errs = append(errs, fmt.Sprintf("badge.font_size: must be positive, got %v", cfg.Badge.FontSize))
	}
	if cfg.Badge.Font != "" {
		if _, statErr := os.Stat(cfg.Badge.Font); statErr != nil {
			warnings = append(warnings, fmt.Sprintf("badge.font: %s is not readable, built-in metrics will be used", cfg.Badge.Font))
		}
	}

	if len(errs) > 0 {
		return warnings, fmt.Errorf("invalid configuration: %s", strings.Join(errs, "; "))
	}
	return warnings, nil
}

func validSeverity(s string) bool {
	for _, v := range Severities {
		if s == v {
			return true
		}
	}
	return false
}
