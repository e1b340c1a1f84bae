// Package theme provides color themes for the dashboard.
package theme

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pelletier/go-toml/v2"
)

// DefaultName is the theme used when none is configured.
const DefaultName = "mocha"

// Theme holds all colors for a dashboard theme.
type Theme struct {
	Name        string `toml:"name"`
	Bg          string `toml:"bg"`           // Base background
	BgHighlight string `toml:"bg_highlight"` // Header row, panels
	BgSelection string `toml:"bg_selection"` // Selected row
	Fg          string `toml:"fg"`           // Primary foreground
	FgMuted     string `toml:"fg_muted"`     // Help text, past blocks
	Accent      string `toml:"accent"`       // Title, borders
	Hours       string `toml:"hours"`        // Durations and totals
	Warning     string `toml:"warning"`      // Overlapping blocks
	Error       string `toml:"error"`
}

// Catppuccin flavours plus a plain light theme.
var builtin = map[string]Theme{
	"mocha": {
		Name: "mocha", Bg: "#1e1e2e", BgHighlight: "#313244", BgSelection: "#45475a",
		Fg: "#cdd6f4", FgMuted: "#6c7086", Accent: "#cba6f7",
		Hours: "#a6e3a1", Warning: "#f9e2af", Error: "#f38ba8",
	},
	"macchiato": {
		Name: "macchiato", Bg: "#24273a", BgHighlight: "#363a4f", BgSelection: "#494d64",
		Fg: "#cad3f5", FgMuted: "#6e738d", Accent: "#c6a0f6",
		Hours: "#a6da95", Warning: "#eed49f", Error: "#ed8796",
	},
	"frappe": {
		Name: "frappe", Bg: "#303446", BgHighlight: "#414559", BgSelection: "#51576d",
		Fg: "#c6d0f5", FgMuted: "#737994", Accent: "#ca9ee6",
		Hours: "#a6d189", Warning: "#e5c890", Error: "#e78284",
	},
	"latte": {
		Name: "latte", Bg: "#eff1f5", BgHighlight: "#ccd0da", BgSelection: "#bcc0cc",
		Fg: "#4c4f69", FgMuted: "#9ca0b0", Accent: "#8839ef",
		Hours: "#40a02b", Warning: "#df8e1d", Error: "#d20f39",
	},
	"light": {
		Name: "light", Bg: "#ffffff", BgHighlight: "#eeeeee",
		Fg: "#1f2328", FgMuted: "#8c959f", Accent: "#0969da",
		Hours: "#1a7f37", Warning: "#9a6700", Error: "#cf222e",
	},
}

// Color returns a lipgloss.Color for the given hex string.
func Color(hex string) lipgloss.Color {
	return lipgloss.Color(hex)
}

// Load returns the theme called name, or reads it from a file when name
// ends in ".toml". Unknown names fall back to mocha.
func Load(name string) (*Theme, error) {
	if strings.HasSuffix(strings.ToLower(name), ".toml") {
		return LoadFile(name)
	}

	name = strings.ToLower(strings.TrimSpace(name))
	t, ok := builtin[name]
	if !ok {
		t = builtin[DefaultName]
	}
	t.applyDefaults()
	return &t, nil
}

// LoadFile reads a theme from a TOML file. Colors missing from the file
// are taken from mocha.
func LoadFile(path string) (*Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading theme: %w", err)
	}
	return Parse(data)
}

// Parse decodes a TOML theme over the default theme.
func Parse(data []byte) (*Theme, error) {
	t := builtin[DefaultName]
	t.Name = ""
	if err := toml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing theme: %w", err)
	}
	if t.Name == "" {
		t.Name = "custom"
	}
	t.applyDefaults()
	return &t, nil
}

func (t *Theme) applyDefaults() {
	t.BgHighlight = coalesce(t.BgHighlight, t.Bg)
	t.BgSelection = coalesce(t.BgSelection, t.BgHighlight)
	t.FgMuted = coalesce(t.FgMuted, t.Fg)
	t.Hours = coalesce(t.Hours, t.Accent)
	t.Error = coalesce(t.Error, t.Warning)
}

func coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// Available returns a list of available theme names.
func Available() []string {
	return []string{"mocha", "macchiato", "frappe", "latte", "light"}
}
