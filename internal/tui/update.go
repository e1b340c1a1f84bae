package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resize()
		return m, nil

	case blocksLoadedMsg:
		m.loading = false
		m.err = nil
		m.setBlocks(msg)
		return m, nil

	case blockDeletedMsg:
		m.status = fmt.Sprintf("Deleted #%d %s", msg.id, msg.title)
		m.loading = true
		return m, tea.Batch(m.load(), clearStatusAfter(statusTimeout))

	case errMsg:
		m.loading = false
		m.err = msg.err
		return m, nil

	case clearStatusMsg:
		m.status = ""
		return m, nil
	}

	return m, nil
}

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.pendingDelete != nil {
		return m.handleConfirmKeys(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resize()

	case key.Matches(msg, m.keys.ToggleView):
		if m.mode == viewWeek {
			m.mode = viewAll
		} else {
			m.mode = viewWeek
		}
		m.table.SetCursor(0)
		return m.reload()

	case key.Matches(msg, m.keys.PrevWeek):
		if m.mode == viewWeek {
			m.weekOf = m.weekOf.AddDate(0, 0, -7)
			return m.reload()
		}

	case key.Matches(msg, m.keys.NextWeek):
		if m.mode == viewWeek {
			m.weekOf = m.weekOf.AddDate(0, 0, 7)
			return m.reload()
		}

	case key.Matches(msg, m.keys.Today):
		m.mode = viewWeek
		m.weekOf = m.now()
		return m.reload()

	case key.Matches(msg, m.keys.Refresh):
		return m.reload()

	case key.Matches(msg, m.keys.Delete):
		if b := m.selected(); b != nil {
			m.pendingDelete = b
		}

	case key.Matches(msg, m.keys.Details):
		m.showDetails = !m.showDetails
		m.resize()

	case key.Matches(msg, m.keys.Cancel):
		m.showDetails = false
		m.err = nil
		m.resize()

	default:
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}

	return m, nil
}

// handleConfirmKeys answers the delete confirmation.
func (m Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		b := m.pendingDelete
		m.pendingDelete = nil
		m.status = fmt.Sprintf("Deleting #%d...", b.ID)
		return m, deleteBlock(m.ctx, m.manager, m.ownerID, b)
	case key.Matches(msg, m.keys.Cancel), key.Matches(msg, m.keys.Quit):
		m.pendingDelete = nil
	}
	return m, nil
}

func (m Model) reload() (tea.Model, tea.Cmd) {
	m.loading = true
	m.err = nil
	return m, m.load()
}

func (m *Model) setBlocks(msg blocksLoadedMsg) {
	m.blocks = msg.blocks
	m.stats = msg.stats
	m.conflicts = len(msg.conflicts)
	m.overlapping = make(map[int64]bool, 2*len(msg.conflicts))
	for _, c := range msg.conflicts {
		m.overlapping[c.First.ID] = true
		m.overlapping[c.Second.ID] = true
	}

	m.table.SetRows(m.rows())
	if n := len(m.blocks); m.table.Cursor() >= n {
		m.table.SetCursor(max(n-1, 0))
	}
}
