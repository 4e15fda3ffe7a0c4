package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/weftui/weft/pkg/adapters/tui"
)

// themeConfig is the YAML shape of a theme file.
type themeConfig struct {
	TitleColor  string   `yaml:"title_color"`
	FooterFaint bool     `yaml:"footer_faint"`
	QuitKeys    []string `yaml:"quit_keys"`
}

// loadTheme reads a theme file and translates it into adapter options.
// An empty path yields just the defaults.
func loadTheme(path string) ([]tui.Option, error) {
	if path == "" {
		return nil, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading theme: %w", err)
	}
	var cfg themeConfig
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parsing theme: %w", err)
	}

	theme := tui.DefaultTheme()
	if cfg.TitleColor != "" {
		theme.Title = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(cfg.TitleColor))
	}
	if cfg.FooterFaint {
		theme.Footer = lipgloss.NewStyle().Faint(true)
	}

	opts := []tui.Option{tui.WithTheme(theme)}
	if len(cfg.QuitKeys) > 0 {
		opts = append(opts, tui.WithQuitKeys(cfg.QuitKeys...))
	}
	return opts, nil
}
