package ui

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Color definitions for consistent styling across the UI.
var (
	colorBar     = color.New(color.FgCyan, color.Bold)
	colorHours   = color.New(color.FgCyan)
	colorWarning = color.New(color.FgYellow)
	colorHeader  = color.New(color.Bold)
	colorStats   = color.New(color.FgGreen)
	colorMuted   = color.New(color.FgWhite, color.Faint)
)

// termWidth returns the terminal width, or a default if detection fails.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

// DisableColor disables all color output.
func DisableColor() {
	color.NoColor = true
}

// EnableColor enables color output (if terminal supports it).
func EnableColor() {
	color.NoColor = false
}

func formatBar(s string) string {
	return colorBar.Sprint(s)
}

func formatHours(s string) string {
	return colorHours.Sprint(s)
}

// formatWarning formats overlap warnings.
func formatWarning(s string) string {
	return colorWarning.Sprint(s)
}

func formatHeader(s string) string {
	return colorHeader.Sprint(s)
}

func formatStats(s string) string {
	return colorStats.Sprint(s)
}

func formatMuted(s string) string {
	return colorMuted.Sprint(s)
}
