// Package ui implements the focusflow command line.
package ui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/focusflow/internal/config"
	"github.com/javiermolinar/focusflow/internal/db"
	"github.com/javiermolinar/focusflow/internal/logging"
	"github.com/javiermolinar/focusflow/internal/timeblock"
	"github.com/javiermolinar/focusflow/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	config *config.Config
	root   *cobra.Command
	logger *slog.Logger
	clock  timeblock.Clock

	// Opened lazily by ensureStore.
	store   *db.SQLite
	manager *timeblock.Manager
	owner   *db.Owner
	loc     *time.Location

	// Global flags
	ownerName string
	dbPath    string
	debug     bool
}

// Option customises an App.
type Option func(*App)

// WithClock overrides the clock used for "now".
func WithClock(c timeblock.Clock) Option {
	return func(a *App) { a.clock = c }
}

// WithLogger overrides the logger built from the configuration.
func WithLogger(l *slog.Logger) Option {
	return func(a *App) { a.logger = l }
}

// NewApp creates a new CLI application with the given config.
func NewApp(cfg *config.Config, opts ...Option) *App {
	a := &App{config: cfg}
	for _, opt := range opts {
		opt(a)
	}

	a.root = &cobra.Command{
		Use:   "focusflow",
		Short: "A CLI tool for time blocking",
		Long: `FocusFlow keeps a personal schedule of time blocks.

Blocks are titled intervals of time. FocusFlow validates them, reports
overlaps, and summarises how your hours are spent.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.ensureStore(cmd.Context()); err != nil {
				return err
			}
			return tui.Run(cmd.Context(), a.manager, tui.Options{
				OwnerID:   a.owner.ID,
				OwnerName: a.owner.Name,
				Location:  a.loc,
				Theme:     a.config.UI.Theme,
			})
		},
	}

	a.root.PersistentFlags().StringVar(&a.ownerName, "owner", "", "Owner to act as (default from config)")
	a.root.PersistentFlags().StringVar(&a.dbPath, "db", "", "Database path (default from config)")
	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging to stderr")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.addCmd())
	a.root.AddCommand(a.quickCmd())
	a.root.AddCommand(a.editCmd())
	a.root.AddCommand(a.deleteCmd())
	a.root.AddCommand(a.showCmd())
	a.root.AddCommand(a.listCmd())
	a.root.AddCommand(a.overlapsCmd())
	a.root.AddCommand(a.freeCmd())
	a.root.AddCommand(a.statsCmd())
	a.root.AddCommand(a.weekCmd())
	a.root.AddCommand(a.exportCmd())
	a.root.AddCommand(a.importCmd())
	a.root.AddCommand(a.ownersCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "focusflow %s (commit: %s)\n", Version, Commit)
		},
	}
}

// setup applies global flags to logging and colour output.
func (a *App) setup(_ *cobra.Command, _ []string) error {
	level := a.config.Log.Level
	if a.debug {
		level = "debug"
	}
	if a.logger == nil || a.debug {
		a.logger = logging.Setup(level, a.config.Log.Format, os.Stderr)
	}

	switch strings.ToLower(a.config.UI.Color) {
	case "never":
		DisableColor()
	case "always":
		EnableColor()
	}
	return nil
}

// ensureStore opens the database, resolves the owner and builds the Manager.
func (a *App) ensureStore(ctx context.Context) error {
	if a.manager != nil {
		return nil
	}

	loc, err := a.config.Location()
	if err != nil {
		return err
	}
	a.loc = loc
	if a.clock == nil {
		a.clock = timeblock.SystemClock{Location: loc}
	}
	if a.logger == nil {
		a.logger = slog.Default()
	}

	path := a.config.Storage.DBPath
	if a.dbPath != "" {
		path = a.dbPath
	}
	path, err = resolvePath(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating database directory: %w", err)
	}

	store, err := db.New(path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}

	name := a.config.Owner.Name
	if a.ownerName != "" {
		name = a.ownerName
	}
	owner, err := store.EnsureOwner(ctx, name)
	if err != nil {
		_ = store.Close()
		return fmt.Errorf("resolving owner %q: %w", name, err)
	}

	policy := timeblock.ConflictAllow
	if a.config.Blocks.RejectOverlaps {
		policy = timeblock.ConflictReject
	}

	a.store = store
	a.owner = owner
	a.manager = timeblock.NewManager(store, timeblock.Options{
		Clock:          a.clock,
		Logger:         a.logger,
		ConflictPolicy: policy,
	})
	a.logger.Debug("store opened", "path", path, "owner", owner.Name, "owner_id", owner.ID)
	return nil
}

// now returns the current time in the configured location.
func (a *App) now() time.Time {
	return a.clock.Now().In(a.loc)
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.ExecuteContext(context.Background())
}

// ExecuteContext runs the CLI application with ctx.
func (a *App) ExecuteContext(ctx context.Context) error {
	return a.root.ExecuteContext(ctx)
}

// SetOutput redirects command output and errors.
func (a *App) SetOutput(out, errOut io.Writer) {
	a.root.SetOut(out)
	a.root.SetErr(errOut)
}

// SetArgs sets the arguments used by Execute instead of os.Args.
func (a *App) SetArgs(args []string) {
	a.root.SetArgs(args)
}

// Close releases the database if it was opened.
func (a *App) Close() error {
	if a.store == nil {
		return nil
	}
	err := a.store.Close()
	a.store, a.manager = nil, nil
	return err
}
