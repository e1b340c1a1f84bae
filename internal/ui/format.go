package ui

import (
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/javiermolinar/focusflow/internal/timeblock"
)

// PrintOpts configures block printing behavior.
type PrintOpts struct {
	Location      *time.Location
	ShowDate      bool // Prefix rows with the start date
	Verbose       bool // Show descriptions under titles
	MaxTitleWidth int  // Maximum title width (0 = auto)
}

// CalcMaxTitleWidth calculates the maximum title width based on options.
func (o PrintOpts) CalcMaxTitleWidth(defaultWidth int) int {
	if o.MaxTitleWidth > 0 {
		return o.MaxTitleWidth
	}
	tw := termWidth()
	// "  #1234  2025-01-15  HH:MM-HH:MM  " plus "  12.25h"
	overhead := 30
	if o.ShowDate {
		overhead += 12
	}
	available := tw - overhead
	if available > defaultWidth {
		return available
	}
	return defaultWidth
}

// PrintBlockRow prints a single block row with consistent formatting.
func PrintBlockRow(w io.Writer, b *timeblock.TimeBlock, opts PrintOpts, maxTitleWidth int) {
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	start, end := b.Start.In(loc), b.End.In(loc)

	var date string
	if opts.ShowDate {
		date = start.Format("2006-01-02") + "  "
	}

	fmt.Fprintf(w, "  %s  %s%s  %-*s  %s\n",
		formatMuted(fmt.Sprintf("#%-4d", b.ID)),
		date,
		formatInterval(start, end),
		maxTitleWidth, truncate(b.Title, maxTitleWidth),
		formatHours(FormatHours(b.Hours())))

	if opts.Verbose && b.Description != nil {
		fmt.Fprintf(w, "         %s\n", formatMuted(*b.Description))
	}
}

// PrintBlockDetail prints every field of a block.
func PrintBlockDetail(w io.Writer, b *timeblock.TimeBlock, loc *time.Location) {
	fmt.Fprintf(w, "%s\n", formatHeader(fmt.Sprintf("#%d %s", b.ID, b.Title)))
	if b.Description != nil {
		fmt.Fprintf(w, "  %s\n", *b.Description)
	}
	fmt.Fprintf(w, "  Start:    %s\n", b.Start.In(loc).Format("Mon Jan 2, 2006 15:04"))
	fmt.Fprintf(w, "  End:      %s\n", b.End.In(loc).Format("Mon Jan 2, 2006 15:04"))
	fmt.Fprintf(w, "  Duration: %s\n", FormatHours(b.Hours()))
	fmt.Fprintf(w, "  %s\n", formatMuted(fmt.Sprintf("created %s, updated %s",
		b.CreatedAt.In(loc).Format("2006-01-02 15:04"),
		b.UpdatedAt.In(loc).Format("2006-01-02 15:04"))))
}

// PrintStats prints the aggregate summary line.
func PrintStats(w io.Writer, s timeblock.Stats) {
	avg := "n/a"
	if v, ok := s.Average(); ok {
		avg = FormatHours(v)
	}
	fmt.Fprintf(w, "Blocks: %s  |  Total: %s  |  Average: %s\n",
		formatStats(fmt.Sprintf("%d", s.Count)),
		formatStats(FormatHours(s.TotalHours)),
		formatStats(avg))
}

// FormatHours formats fractional hours with two decimals, e.g. "1.50h".
func FormatHours(h float64) string {
	return fmt.Sprintf("%.2fh", h)
}

// formatInterval renders "HH:MM-HH:MM", marking blocks that end on a later day.
func formatInterval(start, end time.Time) string {
	s := start.Format("15:04") + "-" + end.Format("15:04")
	if days := calendarDays(start, end); days > 0 {
		s += fmt.Sprintf("(+%d)", days)
	}
	return s
}

func calendarDays(start, end time.Time) int {
	sy, sm, sd := start.Date()
	ey, em, ed := end.Date()
	a := time.Date(sy, sm, sd, 0, 0, 0, 0, time.UTC)
	b := time.Date(ey, em, ed, 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}

// truncate shortens s to max runes, ending with "...".
func truncate(s string, max int) string {
	if max <= 3 || utf8.RuneCountInString(s) <= max {
		return s
	}
	r := []rune(s)
	return string(r[:max-3]) + "..."
}

// FlowBar renders how much of a reference span (e.g. a 40h week) is booked.
func FlowBar(hours, capacity float64, width int) string {
	if capacity <= 0 || width <= 0 {
		return ""
	}
	filled := int(hours / capacity * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	pct := int(hours / capacity * 100)
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return fmt.Sprintf("[%s] %s", formatBar(bar), formatStats(fmt.Sprintf("(%d%% booked)", pct)))
}
