package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/focusflow/internal/timeblock"
	"github.com/javiermolinar/focusflow/internal/tui/theme"
)

// viewMode selects which blocks the table shows.
type viewMode int

const (
	viewWeek viewMode = iota // Blocks contained in one ISO week
	viewAll                  // Every block, most recent first
)

// Options configures the dashboard.
type Options struct {
	OwnerID   int64
	OwnerName string
	Location  *time.Location
	Theme     string
}

// Model is the dashboard model.
type Model struct {
	// Dependencies
	ctx     context.Context
	manager *timeblock.Manager
	ownerID int64
	owner   string
	loc     *time.Location

	// Theme and styles
	theme  *theme.Theme
	styles *Styles
	keys   keyMap

	// Components
	table table.Model
	help  help.Model

	// State
	mode        viewMode
	weekOf      time.Time
	blocks      []*timeblock.TimeBlock
	stats       timeblock.Stats
	conflicts   int
	overlapping map[int64]bool
	loading     bool

	pendingDelete *timeblock.TimeBlock // Awaiting y/n
	showDetails   bool
	status        string
	err           error

	// Terminal dimensions
	width  int
	height int
}

// New creates the dashboard model.
func New(ctx context.Context, m *timeblock.Manager, opts Options) Model {
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}

	t, err := theme.Load(opts.Theme)
	if err != nil {
		t, _ = theme.Load(theme.DefaultName)
	}
	styles := NewStyles(t)

	km := table.DefaultKeyMap()
	// d deletes; keep half page down on ctrl+d only.
	km.HalfPageDown = key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "½ page down"))

	tbl := table.New(
		table.WithColumns(columns(defaultTitleWidth)),
		table.WithFocused(true),
		table.WithHeight(10),
		table.WithKeyMap(km),
		table.WithStyles(styles.Table),
	)

	model := Model{
		ctx:         ctx,
		manager:     m,
		ownerID:     opts.OwnerID,
		owner:       opts.OwnerName,
		loc:         loc,
		theme:       t,
		styles:      styles,
		keys:        defaultKeyMap(),
		table:       tbl,
		help:        help.New(),
		mode:        viewWeek,
		overlapping: map[int64]bool{},
		loading:     true,
	}
	model.weekOf = model.now()
	return model
}

// Init loads the current week.
func (m Model) Init() tea.Cmd {
	return m.load()
}

func (m Model) now() time.Time {
	return m.manager.Clock().Now().In(m.loc)
}

func (m Model) load() tea.Cmd {
	if m.mode == viewAll {
		return loadAll(m.ctx, m.manager, m.ownerID)
	}
	return loadWeek(m.ctx, m.manager, m.ownerID, m.weekOf)
}

// selected returns the block under the cursor, or nil.
func (m Model) selected() *timeblock.TimeBlock {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.blocks) {
		return nil
	}
	return m.blocks[i]
}

// Run starts the dashboard and blocks until the user quits or ctx is done.
func Run(ctx context.Context, m *timeblock.Manager, opts Options) error {
	p := tea.NewProgram(New(ctx, m, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
