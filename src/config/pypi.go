package config

// PyPIConfig controls provider-plugin version lookups.
type PyPIConfig struct {
	URL            string `yaml:"url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	CacheDir       string `yaml:"cache_dir"`
	CacheTTLHours  int    `yaml:"cache_ttl_hours"`
}

// DefaultPyPIConfig returns production defaults.
func DefaultPyPIConfig() PyPIConfig {
	return PyPIConfig{
		URL:            "https://pypi.org/pypi",
		TimeoutSeconds: 10,
		CacheDir:       ".flakeconf/cache",
		CacheTTLHours:  24,
	}
}
