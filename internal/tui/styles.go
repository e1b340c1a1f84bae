// Package tui provides the interactive time block dashboard.
package tui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/focusflow/internal/tui/theme"
)

// Styles holds all lipgloss styles for the dashboard, derived from a theme.
type Styles struct {
	palette *theme.Palette

	TitleStyle    lipgloss.Style
	SubtitleStyle lipgloss.Style

	Table table.Styles

	// Footer
	StatsStyle   lipgloss.Style
	HoursStyle   lipgloss.Style
	OverlapStyle lipgloss.Style
	StatusStyle  lipgloss.Style
	ErrorStyle   lipgloss.Style
	ConfirmStyle lipgloss.Style
	EmptyStyle   lipgloss.Style
	DetailStyle  lipgloss.Style
	DetailLabel  lipgloss.Style
	FrameStyle   lipgloss.Style
}

// NewStyles creates the dashboard styles for t.
func NewStyles(t *theme.Theme) *Styles {
	p := theme.NewPalette(t)

	tbl := table.DefaultStyles()
	tbl.Header = tbl.Header.
		Foreground(p.Accent).
		Bold(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(p.FgMuted).
		BorderBottom(true)
	tbl.Cell = tbl.Cell.Foreground(p.Fg)
	tbl.Selected = tbl.Selected.
		Foreground(p.TextOnSelection).
		Background(p.BgSelection).
		Bold(true)

	return &Styles{
		palette: p,

		TitleStyle: lipgloss.NewStyle().
			Foreground(p.TextOnAccent).
			Background(p.Accent).
			Bold(true).
			Padding(0, 1),
		SubtitleStyle: lipgloss.NewStyle().
			Foreground(p.FgMuted).
			PaddingLeft(1),

		Table: tbl,

		StatsStyle:   lipgloss.NewStyle().Foreground(p.Fg),
		HoursStyle:   lipgloss.NewStyle().Foreground(p.Hours).Bold(true),
		OverlapStyle: lipgloss.NewStyle().Foreground(p.Warning).Bold(true),
		StatusStyle:  lipgloss.NewStyle().Foreground(p.FgMuted).Italic(true),
		ErrorStyle:   lipgloss.NewStyle().Foreground(p.Error).Bold(true),
		ConfirmStyle: lipgloss.NewStyle().
			Foreground(p.Warning).
			Background(p.WarningBg).
			Padding(0, 1),
		EmptyStyle: lipgloss.NewStyle().
			Foreground(p.FgMuted).
			Padding(1, 2),
		DetailStyle: lipgloss.NewStyle().
			Foreground(p.Fg).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Accent).
			Padding(0, 1),
		DetailLabel: lipgloss.NewStyle().Foreground(p.FgMuted),
		FrameStyle:  lipgloss.NewStyle().Padding(0, 1),
	}
}
