package ui

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/focusflow/internal/dateutil"
	"github.com/javiermolinar/focusflow/internal/scheduler"
)

func (a *App) freeCmd() *cobra.Command {
	var (
		date   string
		minLen time.Duration
		next   time.Duration
	)

	cmd := &cobra.Command{
		Use:   "free",
		Short: "Show free time within working hours",
		Long: `List the gaps between your time blocks inside the working hours
configured under [schedule].

With --next, print only the earliest free slot of that length, starting
from now rounded up to the quarter hour.`,
		Example: `  focusflow free
  focusflow free --date=tomorrow --min=30m
  focusflow free --next=90m`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := a.ensureStore(ctx); err != nil {
				return err
			}

			sched := a.scheduler()
			w := cmd.OutOrStdout()

			if next > 0 {
				from, to := sched.SearchWindow(a.now())
				blocks, err := a.manager.Overlaps(ctx, a.owner.ID, from, to, 0)
				if err != nil {
					return fmt.Errorf("loading time blocks: %w", err)
				}
				slot, ok := sched.NextFree(a.now(), blocks, next)
				if !ok {
					fmt.Fprintf(w, "No free slot of %s in the next two weeks.\n", next)
					return nil
				}
				start, end := slot.Start.In(a.loc), slot.End.In(a.loc)
				fmt.Fprintf(w, "Next free slot: %s %s\n", start.Format("Mon Jan 2"), formatInterval(start, end))
				return nil
			}

			day, err := dateutil.ParseRelativeDate(date, a.now())
			if err != nil {
				return err
			}
			label := day.Format("Mon Jan 2")
			if !sched.IsWorkday(day) {
				fmt.Fprintf(w, "%s is not a workday.\n", label)
				return nil
			}

			workStart, workEnd := sched.WorkHours(day)
			blocks, err := a.manager.Overlaps(ctx, a.owner.ID, workStart, workEnd, 0)
			if err != nil {
				return fmt.Errorf("loading time blocks: %w", err)
			}

			slots := sched.FreeSlots(day, blocks, minLen)
			if len(slots) == 0 {
				fmt.Fprintf(w, "No free time on %s.\n", label)
				return nil
			}

			var total time.Duration
			fmt.Fprintf(w, "%s\n", formatHeader("Free on "+label))
			for _, s := range slots {
				start, end := s.Start.In(a.loc), s.End.In(a.loc)
				fmt.Fprintf(w, "  %s  %s\n", formatInterval(start, end), formatHours(FormatHours(s.Duration().Hours())))
				total += s.Duration()
			}
			fmt.Fprintf(w, "%s %s\n", formatStats("Total free:"), FormatHours(total.Hours()))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day to inspect (default: today)")
	cmd.Flags().DurationVar(&minLen, "min", 0, "Hide gaps shorter than this (e.g. 30m)")
	cmd.Flags().DurationVar(&next, "next", 0, "Find the earliest free slot of this length (e.g. 1h)")
	return cmd
}

func (a *App) scheduler() *scheduler.Scheduler {
	s := a.config.Schedule
	return scheduler.New(s.Workdays, s.DayStart, s.DayEnd)
}
