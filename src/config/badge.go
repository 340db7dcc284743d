package config

// BadgeConfig controls policy badge rendering.
type BadgeConfig struct {
	Label string `yaml:"label"`
	// Font is an optional path to a TTF/OTF used for text measurement;
	// empty falls back to built-in approximate metrics.
	Font     string  `yaml:"font"`
	FontSize float64 `yaml:"font_size"`
}

// DefaultBadgeConfig returns production defaults.
func DefaultBadgeConfig() BadgeConfig {
	return BadgeConfig{
		Label:    "lint config",
		FontSize: 11,
	}
}
