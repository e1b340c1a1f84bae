package ui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/focusflow/internal/db"
	"github.com/javiermolinar/focusflow/internal/export"
	"github.com/javiermolinar/focusflow/internal/timeblock"
)

// importedTitle replaces empty titles of imported calendar events.
const importedTitle = "Imported event"

func (a *App) importCmd() *cobra.Command {
	var fromOwner string

	cmd := &cobra.Command{
		Use:   "import [path]",
		Short: "Import time blocks from another database or an .ics file",
		Long: `Import time blocks into the current owner's schedule.

The source is either another FocusFlow database, from which the blocks of
--from-owner (default: the current owner) are copied, or an iCalendar
(.ics) file, from which every timed event is imported. All blocks are
imported in one transaction: if one fails, none are kept.

Example:
  focusflow import /path/to/other.db
  focusflow import calendar.ics`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := a.ensureStore(ctx); err != nil {
				return err
			}

			sourcePath, err := resolvePath(args[0])
			if err != nil {
				return err
			}

			info, err := os.Stat(sourcePath)
			if err != nil {
				if os.IsNotExist(err) {
					return fmt.Errorf("source does not exist: %s", sourcePath)
				}
				return fmt.Errorf("checking source: %w", err)
			}
			if info.IsDir() {
				return fmt.Errorf("source path is a directory: %s", sourcePath)
			}

			var count int
			if strings.EqualFold(filepath.Ext(sourcePath), ".ics") {
				var skipped int
				count, skipped, err = importCalendar(ctx, a.store, a.manager, a.owner.ID, sourcePath)
				if err != nil {
					return err
				}
				if skipped > 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "Skipped %d all-day or invalid events\n", skipped)
				}
			} else {
				destPath, err := a.currentDBPath()
				if err != nil {
					return err
				}
				if sourcePath == destPath {
					return fmt.Errorf("source database matches current database")
				}
				if fromOwner == "" {
					fromOwner = a.owner.Name
				}
				count, err = importBlocks(ctx, a.store, a.manager, a.owner.ID, sourcePath, fromOwner)
				if err != nil {
					return err
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d time blocks from %s\n", count, sourcePath)
			return nil
		},
	}

	cmd.Flags().StringVar(&fromOwner, "from-owner", "", "Owner to copy from in the source database")
	return cmd
}

// Transactor runs fn in a transaction carried by its context.
type Transactor interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// importBlocks copies the blocks of sourceOwner in the database at
// sourcePath to destOwner, validating each through m.
func importBlocks(ctx context.Context, tx Transactor, m *timeblock.Manager, destOwner int64, sourcePath, sourceOwner string) (int, error) {
	source, err := db.OpenReadOnly(sourcePath)
	if err != nil {
		return 0, fmt.Errorf("opening source database: %w", err)
	}
	defer func() { _ = source.Close() }()

	owner, err := source.OwnerByName(ctx, sourceOwner)
	if err != nil {
		return 0, fmt.Errorf("looking up source owner: %w", err)
	}
	if owner == nil {
		return 0, fmt.Errorf("owner %q not found in source database", sourceOwner)
	}

	blocks, err := source.ListByOwner(ctx, owner.ID)
	if err != nil {
		return 0, fmt.Errorf("listing source time blocks: %w", err)
	}

	fields := make([]timeblock.Fields, 0, len(blocks))
	for i := len(blocks) - 1; i >= 0; i-- { // oldest first
		b := blocks[i]
		fields = append(fields, timeblock.Fields{
			Title:       b.Title,
			Description: b.Description,
			Start:       b.Start,
			End:         b.End,
		})
	}
	return createAll(ctx, tx, m, destOwner, fields)
}

// importCalendar creates one block per timed event of the .ics file at path.
func importCalendar(ctx context.Context, tx Transactor, m *timeblock.Manager, destOwner int64, path string) (count, skipped int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, fmt.Errorf("opening calendar: %w", err)
	}
	defer func() { _ = f.Close() }()

	fields, skipped, err := export.ReadICS(f)
	if err != nil {
		return 0, 0, err
	}
	for i := range fields {
		if strings.TrimSpace(fields[i].Title) == "" {
			fields[i].Title = importedTitle
		}
	}

	count, err = createAll(ctx, tx, m, destOwner, fields)
	return count, skipped, err
}

func createAll(ctx context.Context, tx Transactor, m *timeblock.Manager, ownerID int64, fields []timeblock.Fields) (int, error) {
	imported := 0
	err := tx.RunInTx(ctx, func(ctx context.Context) error {
		for _, f := range fields {
			if _, err := m.Create(ctx, ownerID, f); err != nil {
				return fmt.Errorf("importing %q: %w", f.Title, err)
			}
			imported++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return imported, nil
}

func (a *App) currentDBPath() (string, error) {
	if a.dbPath != "" {
		return resolvePath(a.dbPath)
	}
	return resolvePath(a.config.Storage.DBPath)
}

func resolvePath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("empty path")
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	return absPath, nil
}
