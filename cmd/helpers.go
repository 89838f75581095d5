package cmd

import (
	"fmt"
	"os"

	"github.com/ziadkadry99/guidebook/internal/app"
	"github.com/ziadkadry99/guidebook/internal/config"
	"github.com/ziadkadry99/guidebook/internal/guide"
	"github.com/ziadkadry99/guidebook/internal/logging"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `guidebook init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	setupLogging(cfg)
	return cfg, nil
}

// setupLogging points the global logger at stderr using the configured
// level and format. --verbose forces debug.
func setupLogging(cfg *config.Config) {
	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}
	logging.Init(logging.Config{
		Level:  level,
		Format: string(cfg.LogFormat),
		Output: os.Stderr,
	})
}

// loadGuides reads the configured guides directory.
func loadGuides(cfg *config.Config) (guide.Guides, error) {
	guides, err := guide.Load(cfg.GuidesDir, loadOptions(cfg))
	if err != nil {
		return nil, fmt.Errorf("loading guides from %s: %w", cfg.GuidesDir, err)
	}
	return guides, nil
}

func loadOptions(cfg *config.Config) guide.LoadOptions {
	return guide.LoadOptions{
		Include:     cfg.Include,
		Exclude:     cfg.Exclude,
		EditURLBase: cfg.EditURLBase,
	}
}

// defaultMode parses the configured starting mode.
func defaultMode(cfg *config.Config) (app.Mode, error) {
	mode, err := app.ParseMode(cfg.DefaultMode)
	if err != nil {
		return app.Light, fmt.Errorf("default_mode: %w", err)
	}
	return mode, nil
}
