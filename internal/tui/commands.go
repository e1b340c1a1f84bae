package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/focusflow/internal/summary"
	"github.com/javiermolinar/focusflow/internal/timeblock"
)

// blocksLoadedMsg is sent when the visible blocks have been fetched.
type blocksLoadedMsg struct {
	blocks    []*timeblock.TimeBlock
	stats     timeblock.Stats
	conflicts []summary.Conflict
}

// blockDeletedMsg is sent after a block is removed.
type blockDeletedMsg struct {
	id    int64
	title string
}

// errMsg is sent when an operation fails.
type errMsg struct {
	err error
}

// clearStatusMsg clears the status line.
type clearStatusMsg struct{}

const statusTimeout = 3 * time.Second

// loadWeek fetches the owner's blocks contained in the week of weekOf.
func loadWeek(ctx context.Context, m *timeblock.Manager, ownerID int64, weekOf time.Time) tea.Cmd {
	return func() tea.Msg {
		ws, err := summary.BuildWeekSummary(ctx, m, ownerID, weekOf)
		if err != nil {
			return errMsg{err: err}
		}
		return blocksLoadedMsg{blocks: ws.Blocks, stats: ws.Stats, conflicts: ws.Conflicts}
	}
}

// loadAll fetches every block of the owner together with the stored totals.
func loadAll(ctx context.Context, m *timeblock.Manager, ownerID int64) tea.Cmd {
	return func() tea.Msg {
		blocks, err := m.FindByOwner(ctx, ownerID)
		if err != nil {
			return errMsg{err: err}
		}
		stats, err := m.Stats(ctx, ownerID)
		if err != nil {
			return errMsg{err: err}
		}
		return blocksLoadedMsg{blocks: blocks, stats: stats, conflicts: summary.FindConflicts(blocks)}
	}
}

func deleteBlock(ctx context.Context, m *timeblock.Manager, ownerID int64, b *timeblock.TimeBlock) tea.Cmd {
	return func() tea.Msg {
		if err := m.Delete(ctx, b.ID, ownerID); err != nil {
			return errMsg{err: err}
		}
		return blockDeletedMsg{id: b.ID, title: b.Title}
	}
}

func clearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}
