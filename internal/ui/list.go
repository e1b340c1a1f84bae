package ui

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/focusflow/internal/dateutil"
	"github.com/javiermolinar/focusflow/internal/export"
	"github.com/javiermolinar/focusflow/internal/timeblock"
)

func (a *App) listCmd() *cobra.Command {
	var (
		fromDate string
		toDate   string
		week     bool
		asJSON   bool
		verbose  bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List time blocks",
		Long: `List your time blocks.

Without flags, lists every block, most recent first.
With --from (and optionally --to), lists the blocks lying entirely within
those days, in chronological order. Blocks crossing the range boundary
are not listed. --week lists the current ISO week.`,
		Example: `  focusflow list
  focusflow list --from=2025-01-15
  focusflow list --from=2025-01-15 --to=2025-01-20
  focusflow list --week --json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := a.ensureStore(ctx); err != nil {
				return err
			}

			var (
				blocks []*timeblock.TimeBlock
				err    error
			)
			switch {
			case week:
				window := dateutil.WeekWindow(a.now())
				blocks, err = a.manager.FindByOwnerAndRange(ctx, a.owner.ID, window.Start, window.End)
			case fromDate != "" || toDate != "":
				var dr *dateutil.DateRange
				dr, err = dateutil.NewDateRange(fromDate, toDate, a.now())
				if err != nil {
					return err
				}
				blocks, err = a.manager.FindByOwnerAndRange(ctx, a.owner.ID, dr.Start, dr.End)
			default:
				blocks, err = a.manager.FindByOwner(ctx, a.owner.ID)
			}
			if err != nil {
				return fmt.Errorf("listing time blocks: %w", err)
			}

			w := cmd.OutOrStdout()
			if asJSON {
				return export.WriteJSON(w, blocks)
			}

			if len(blocks) == 0 {
				fmt.Fprintln(w, "No time blocks found.")
				return nil
			}

			opts := PrintOpts{Location: a.loc, Verbose: verbose}
			printGroupedByDay(w, blocks, opts, opts.CalcMaxTitleWidth(40))
			fmt.Fprintln(w)
			PrintStats(w, timeblock.Summarize(blocks))
			return nil
		},
	}

	cmd.Flags().StringVar(&fromDate, "from", "", "First day (YYYY-MM-DD, today, monday...; default: today)")
	cmd.Flags().StringVar(&toDate, "to", "", "Last day, inclusive (default: --from)")
	cmd.Flags().BoolVar(&week, "week", false, "List the current week")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show descriptions")
	cmd.MarkFlagsMutuallyExclusive("week", "from")
	cmd.MarkFlagsMutuallyExclusive("week", "to")

	return cmd
}

// printGroupedByDay prints blocks under a header for each start date, in
// the order given.
func printGroupedByDay(w io.Writer, blocks []*timeblock.TimeBlock, opts PrintOpts, maxTitleWidth int) {
	var current time.Time
	for i, b := range blocks {
		day := dateutil.TruncateToDay(b.Start.In(opts.Location))
		if i == 0 || !day.Equal(current) {
			if i > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "  %s\n", formatHeader(day.Format("Mon Jan 2, 2006")))
			current = day
		}
		PrintBlockRow(w, b, opts, maxTitleWidth)
	}
}
