package config

// LogFormat selects the log output encoding.
type LogFormat string

const (
	LogFormatConsole LogFormat = "console"
	LogFormatJSON    LogFormat = "json"
)

// Config is the top-level guidebook configuration, corresponding to .guidebook.yml.
type Config struct {
	SiteTitle       string    `yaml:"site_title" koanf:"site_title"`
	GuidesDir       string    `yaml:"guides_dir" koanf:"guides_dir"`
	Include         []string  `yaml:"include" koanf:"include"`
	Exclude         []string  `yaml:"exclude" koanf:"exclude"`
	EditURLBase     string    `yaml:"edit_url_base" koanf:"edit_url_base"`
	OutputDir       string    `yaml:"output_dir" koanf:"output_dir"`
	DataDir         string    `yaml:"data_dir" koanf:"data_dir"`
	Port            int       `yaml:"port" koanf:"port"`
	DefaultMode     string    `yaml:"default_mode" koanf:"default_mode"`
	SessionSecret   string    `yaml:"session_secret" koanf:"session_secret"`
	AllowAllOrigins bool      `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	LogLevel        string    `yaml:"log_level" koanf:"log_level"`
	LogFormat       LogFormat `yaml:"log_format" koanf:"log_format"`
}
