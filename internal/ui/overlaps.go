package ui

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) overlapsCmd() *cobra.Command {
	var (
		date    string
		start   string
		end     string
		exclude int64
	)

	cmd := &cobra.Command{
		Use:   "overlaps",
		Short: "Show time blocks overlapping an interval",
		Long: `List your time blocks that intersect the given interval.

Blocks that only touch the interval (one ends exactly when the other
starts) do not overlap. Use --exclude to ignore a block, for example the
one you are about to move.

Example:
  focusflow overlaps --date=2025-01-15 --start=09:00 --end=11:00
  focusflow overlaps --start=14:00 --end=15:00 --exclude=42`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := a.ensureStore(ctx); err != nil {
				return err
			}

			f, err := a.parseFields("", date, start, end)
			if err != nil {
				return err
			}

			blocks, err := a.manager.Overlaps(ctx, a.owner.ID, f.Start, f.End, exclude)
			if err != nil {
				return fmt.Errorf("checking overlaps: %w", err)
			}

			w := cmd.OutOrStdout()
			interval := f.Start.Format("2006-01-02") + " " + formatInterval(f.Start, f.End)
			if len(blocks) == 0 {
				fmt.Fprintf(w, "No time blocks overlap %s.\n", interval)
				return nil
			}

			fmt.Fprintf(w, "%s\n", formatWarning(fmt.Sprintf("%d time block(s) overlap %s:", len(blocks), interval)))
			opts := PrintOpts{Location: a.loc, ShowDate: true}
			width := opts.CalcMaxTitleWidth(40)
			for _, b := range blocks {
				PrintBlockRow(w, b, opts, width)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Date (default: today)")
	cmd.Flags().StringVar(&start, "start", "", "Start time (HH:MM, required)")
	cmd.Flags().StringVar(&end, "end", "", "End time (HH:MM, required)")
	cmd.Flags().Int64Var(&exclude, "exclude", 0, "Block ID to ignore")

	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}
