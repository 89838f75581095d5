package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// detectGuidesDir returns the first conventional guides directory that exists.
func detectGuidesDir() string {
	for _, dir := range []string{"guides", "docs", "content"} {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}
	return "guides"
}

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to guidebook! Let's configure your site.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Site title.
	titlePrompt := promptui.Prompt{
		Label:   "Site title",
		Default: cfg.SiteTitle,
	}
	title, err := titlePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("site title: %w", err)
	}
	cfg.SiteTitle = title

	// 2. Guides directory.
	dirPrompt := promptui.Prompt{
		Label:   "Directory containing guide markdown files",
		Default: detectGuidesDir(),
	}
	guidesDir, err := dirPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("guides dir: %w", err)
	}
	cfg.GuidesDir = guidesDir

	// 3. Edit link base.
	editPrompt := promptui.Prompt{
		Label:   "Edit link base URL (e.g. https://github.com/org/repo/edit/main/guides, blank to skip)",
		Default: "",
	}
	editBase, err := editPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("edit url base: %w", err)
	}
	cfg.EditURLBase = strings.TrimRight(editBase, "/")

	// 4. Default mode.
	modePrompt := promptui.Select{
		Label: "Default colour mode",
		Items: []string{"light", "dark"},
	}
	_, mode, err := modePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("default mode: %w", err)
	}
	cfg.DefaultMode = mode

	// 5. Port.
	portPrompt := promptui.Prompt{
		Label:   "Port for guidebook serve",
		Default: strconv.Itoa(cfg.Port),
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n < 0 || n > 65535 {
				return fmt.Errorf("port must be a number between 0 and 65535")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Port, _ = strconv.Atoi(portStr)

	// 6. Extra exclude patterns.
	excludePrompt := promptui.Prompt{
		Label:   "Extra exclude patterns (comma-separated, leave blank for defaults)",
		Default: "",
	}
	excludeStr, err := excludePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("exclude patterns: %w", err)
	}
	if excludeStr != "" {
		cfg.Exclude = append(append([]string{}, DefaultExcludes...), splitAndTrim(excludeStr)...)
	}

	if os.Getenv(EnvPrefix+"SESSION_SECRET") == "" {
		fmt.Printf("\nNote: set %sSESSION_SECRET before running guidebook serve in production.\n", EnvPrefix)
	}

	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

// splitAndTrim splits a comma-separated string and trims whitespace.
func splitAndTrim(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		if token := strings.TrimSpace(part); token != "" {
			result = append(result, token)
		}
	}
	return result
}
