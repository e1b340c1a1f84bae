package ui

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/focusflow/internal/dateutil"
	"github.com/javiermolinar/focusflow/internal/timeblock"
)

func (a *App) addCmd() *cobra.Command {
	var (
		date        string
		start       string
		end         string
		description string
		repeat      string
	)

	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add a new time block",
		Long: `Add a new time block to your schedule.

If --end is earlier than --start the block ends on the following day.
--repeat takes an RFC 5545 recurrence rule and creates one block per
occurrence (at most 366).

Example:
  focusflow add "Write documentation" --date=2025-01-10 --start=09:00 --end=11:00
  focusflow add "Standup" --start=09:30 --end=09:45 --repeat "FREQ=WEEKLY;BYDAY=MO,TU,WE,TH,FR;COUNT=20"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := a.ensureStore(ctx); err != nil {
				return err
			}

			f, err := a.parseFields(args[0], date, start, end)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("description") {
				f.Description = &description
			}

			w := cmd.OutOrStdout()
			if repeat != "" {
				blocks, err := a.manager.CreateRecurring(ctx, a.owner.ID, f, repeat)
				if err != nil {
					return fmt.Errorf("creating time blocks: %w", err)
				}
				fmt.Fprintf(w, "Created %d time blocks: %s, first %s\n",
					len(blocks), blocks[0].Title, blocks[0].Start.In(a.loc).Format("2006-01-02 15:04"))
				return nil
			}

			b, err := a.manager.Create(ctx, a.owner.ID, f)
			if err != nil {
				return fmt.Errorf("creating time block: %w", err)
			}
			a.printCreated(ctx, w, b)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Date (YYYY-MM-DD, today, tomorrow, monday..., default: today)")
	cmd.Flags().StringVar(&start, "start", "", "Start time (HH:MM, required)")
	cmd.Flags().StringVar(&end, "end", "", "End time (HH:MM, required)")
	cmd.Flags().StringVarP(&description, "description", "d", "", "Optional description")
	cmd.Flags().StringVar(&repeat, "repeat", "", "Recurrence rule, e.g. FREQ=DAILY;COUNT=5")

	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func (a *App) quickCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "quick [title] [HH:MM]",
		Short: "Quickly add a one hour time block",
		Long: `Add a one hour block at the next occurrence of a clock time.

If the time has already passed today the block is placed tomorrow.

Example:
  focusflow quick "Call the bank" 16:30`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := a.ensureStore(ctx); err != nil {
				return err
			}

			b, err := a.manager.QuickAdd(ctx, a.owner.ID, args[0], args[1])
			if err != nil {
				return fmt.Errorf("creating time block: %w", err)
			}
			a.printCreated(ctx, cmd.OutOrStdout(), b)
			return nil
		},
	}
}

// parseFields builds block fields from CLI date and clock strings in the
// configured location. An end clock before the start clock rolls the end
// over to the next day.
func (a *App) parseFields(title, date, start, end string) (timeblock.Fields, error) {
	day, err := dateutil.ParseRelativeDate(date, a.now())
	if err != nil {
		return timeblock.Fields{}, err
	}
	s, e, err := clockInterval(day, start, end)
	if err != nil {
		return timeblock.Fields{}, err
	}
	return timeblock.Fields{Title: title, Start: s, End: e}, nil
}

func clockInterval(day time.Time, start, end string) (time.Time, time.Time, error) {
	s, err := dateutil.At(day, start)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("start: %w", err)
	}
	e, err := dateutil.At(day, end)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("end: %w", err)
	}
	if e.Before(s) {
		e = e.AddDate(0, 0, 1)
	}
	return s, e, nil
}

// printCreated reports a new block and warns about overlaps.
func (a *App) printCreated(ctx context.Context, w io.Writer, b *timeblock.TimeBlock) {
	fmt.Fprintf(w, "Created time block #%d: %s %s %s\n",
		b.ID,
		b.Title,
		b.Start.In(a.loc).Format("2006-01-02"),
		formatInterval(b.Start.In(a.loc), b.End.In(a.loc)),
	)
	a.warnOverlaps(ctx, w, b)
}

// warnOverlaps prints the blocks b overlaps. Failures are logged, not returned.
func (a *App) warnOverlaps(ctx context.Context, w io.Writer, b *timeblock.TimeBlock) {
	others, err := a.manager.Overlaps(ctx, a.owner.ID, b.Start, b.End, b.ID)
	if err != nil {
		a.logger.Warn("checking overlaps failed", "id", b.ID, "err", err)
		return
	}
	for _, o := range others {
		fmt.Fprintf(w, "%s\n", formatWarning(fmt.Sprintf("  overlaps #%d %s (%s)",
			o.ID, o.Title, formatInterval(o.Start.In(a.loc), o.End.In(a.loc)))))
	}
}
