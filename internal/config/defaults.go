package config

import "slices"

// DefaultPath is the config file read when --config is not given.
const DefaultPath = ".guidebook.yml"

// DefaultExcludes are glob patterns never loaded as guides.
var DefaultExcludes = []string{
	"**/_*.md",
	"**/drafts/**",
	"README.md",
	"CHANGELOG.md",
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		SiteTitle:     "Guides",
		GuidesDir:     "guides",
		Include:       []string{"**/*.md"},
		Exclude:       slices.Clone(DefaultExcludes),
		OutputDir:     "site",
		DataDir:       ".guidebook",
		Port:          8080,
		DefaultMode:   "light",
		SessionSecret: "change-me-to-a-32-byte-secret!!!",
		LogLevel:      "info",
		LogFormat:     LogFormatConsole,
	}
}
