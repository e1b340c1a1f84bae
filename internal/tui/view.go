package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/focusflow/internal/dateutil"
	"github.com/javiermolinar/focusflow/internal/timeblock"
)

const (
	defaultTitleWidth = 30
	minTitleWidth     = 12

	// Widths of the columns other than the title, plus the padding the
	// table adds around every cell.
	fixedColumnsWidth = 1 + 6 + 10 + 17 + 7 + 6*2
)

func columns(titleWidth int) []table.Column {
	return []table.Column{
		{Title: "", Width: 1},
		{Title: "ID", Width: 6},
		{Title: "Day", Width: 10},
		{Title: "Time", Width: 17},
		{Title: "Hours", Width: 7},
		{Title: "Title", Width: titleWidth},
	}
}

func (m Model) rows() []table.Row {
	rows := make([]table.Row, 0, len(m.blocks))
	for _, b := range m.blocks {
		marker := ""
		if m.overlapping[b.ID] {
			marker = "!"
		}
		start, end := b.Start.In(m.loc), b.End.In(m.loc)
		rows = append(rows, table.Row{
			marker,
			fmt.Sprintf("#%d", b.ID),
			start.Format("Mon Jan 02"),
			intervalLabel(start, end),
			fmt.Sprintf("%.2fh", b.Hours()),
			b.Title,
		})
	}
	return rows
}

// intervalLabel renders "HH:MM-HH:MM", adding "(+N)" when the block ends
// N calendar days after it starts.
func intervalLabel(start, end time.Time) string {
	s := start.Format("15:04") + "-" + end.Format("15:04")
	days := 0
	for d := dateutil.TruncateToDay(start); d.Before(dateutil.TruncateToDay(end)); d = d.AddDate(0, 0, 1) {
		days++
	}
	if days > 0 {
		s += fmt.Sprintf("(+%d)", days)
	}
	return s
}

// resize fits the table to the terminal.
func (m *Model) resize() {
	if m.width == 0 || m.height == 0 {
		return
	}

	titleWidth := max(m.width-fixedColumnsWidth-2, minTitleWidth)
	m.table.SetColumns(columns(titleWidth))
	m.table.SetWidth(m.width - 2)

	chrome := 2 + 3 + lipgloss.Height(m.help.View(m.keys)) // header, footer, help
	if m.showDetails {
		chrome += 7
	}
	m.table.SetHeight(max(m.height-chrome, 3))
}

// View renders the model.
func (m Model) View() string {
	var sections []string
	sections = append(sections, m.headerView(), "")

	switch {
	case m.loading && len(m.blocks) == 0:
		sections = append(sections, m.styles.EmptyStyle.Render("Loading..."))
	case len(m.blocks) == 0:
		sections = append(sections, m.styles.EmptyStyle.Render(m.emptyText()))
	default:
		sections = append(sections, m.table.View())
	}

	if m.showDetails {
		if b := m.selected(); b != nil {
			sections = append(sections, m.detailView(b))
		}
	}

	sections = append(sections, "", m.statsView(), m.statusView(), m.help.View(m.keys))
	return m.styles.FrameStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m Model) headerView() string {
	title := m.styles.TitleStyle.Render("FocusFlow")

	var sub string
	if m.mode == viewAll {
		sub = "All time blocks"
	} else {
		monday, sunday := dateutil.WeekRange(m.weekOf)
		sub = fmt.Sprintf("Week of %s - %s", monday.Format("Mon Jan 2"), sunday.Format("Mon Jan 2, 2006"))
	}
	if m.owner != "" {
		sub += "  ·  " + m.owner
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, title, m.styles.SubtitleStyle.Render(sub))
}

func (m Model) emptyText() string {
	if m.mode == viewAll {
		return "No time blocks yet. Add one with: focusflow add"
	}
	return "No time blocks scheduled for this week."
}

func (m Model) statsView() string {
	avg := "n/a"
	if v, ok := m.stats.Average(); ok {
		avg = fmt.Sprintf("%.2fh", v)
	}

	line := fmt.Sprintf("%s %d   %s %s   %s %s",
		m.styles.StatsStyle.Render("Blocks:"), m.stats.Count,
		m.styles.StatsStyle.Render("Total:"), m.styles.HoursStyle.Render(fmt.Sprintf("%.2fh", m.stats.TotalHours)),
		m.styles.StatsStyle.Render("Average:"), m.styles.HoursStyle.Render(avg))

	if m.conflicts > 0 {
		line += "   " + m.styles.OverlapStyle.Render(fmt.Sprintf("! %d overlapping pair(s)", m.conflicts))
	}
	return line
}

func (m Model) statusView() string {
	switch {
	case m.pendingDelete != nil:
		return m.styles.ConfirmStyle.Render(
			fmt.Sprintf("Delete #%d %s? [y/N]", m.pendingDelete.ID, m.pendingDelete.Title))
	case m.err != nil:
		return m.styles.ErrorStyle.Render("Error: " + errorText(m.err))
	default:
		return m.styles.StatusStyle.Render(m.status)
	}
}

func (m Model) detailView(b *timeblock.TimeBlock) string {
	label := m.styles.DetailLabel.Render
	lines := []string{
		fmt.Sprintf("#%d %s", b.ID, b.Title),
		label("Start:    ") + b.Start.In(m.loc).Format("Mon Jan 2, 2006 15:04"),
		label("End:      ") + b.End.In(m.loc).Format("Mon Jan 2, 2006 15:04"),
		label("Duration: ") + fmt.Sprintf("%.2fh", b.Hours()),
	}
	if b.Description != nil {
		lines = append(lines, label("Notes:    ")+*b.Description)
	}
	return m.styles.DetailStyle.Render(strings.Join(lines, "\n"))
}

// errorText hides whether a block belongs to someone else.
func errorText(err error) string {
	if errors.Is(err, timeblock.ErrForbidden) || errors.Is(err, timeblock.ErrNotFound) {
		return timeblock.ErrNotFound.Error()
	}
	return err.Error()
}
