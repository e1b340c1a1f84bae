package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/focusflow/internal/dateutil"
	"github.com/javiermolinar/focusflow/internal/summary"
)

// weekCapacityHours is the reference span the week flow bar is drawn against.
const weekCapacityHours = 40

func (a *App) weekCmd() *cobra.Command {
	var (
		date    string
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "week",
		Short: "Show this week's time blocks",
		Long: `Display the time blocks of an ISO week (Monday through Sunday),
grouped by day, with daily and weekly totals and any overlapping pairs.`,
		Example: `  focusflow week
  focusflow week --date=next-week`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := a.ensureStore(ctx); err != nil {
				return err
			}

			day, err := dateutil.ParseRelativeDate(date, a.now())
			if err != nil {
				return err
			}

			ws, err := summary.BuildWeekSummary(ctx, a.manager, a.owner.ID, day)
			if err != nil {
				return fmt.Errorf("building week summary: %w", err)
			}

			w := cmd.OutOrStdout()
			if len(ws.Blocks) == 0 {
				fmt.Fprintln(w, "No time blocks scheduled for this week.")
				return nil
			}

			opts := PrintOpts{Location: a.loc, Verbose: verbose}
			printWeek(w, ws, opts, opts.CalcMaxTitleWidth(40))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Any day of the week to show (default: today)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show descriptions")
	return cmd
}

func printWeek(w io.Writer, ws *summary.WeekSummary, opts PrintOpts, maxTitleWidth int) {
	last := ws.End.AddDate(0, 0, -1)
	header := fmt.Sprintf("WEEK: %s - %s", ws.Start.Format("Mon Jan 2"), last.Format("Mon Jan 2, 2006"))
	fmt.Fprintf(w, "\n  %s\n", formatHeader(header))
	fmt.Fprintln(w, strings.Repeat("─", 74))

	first := true
	for _, d := range ws.Days {
		if d.Stats.Count == 0 {
			continue
		}
		if !first {
			fmt.Fprintln(w)
		}
		first = false
		fmt.Fprintf(w, "  %s  %s\n",
			formatHeader(d.Date.Format("Mon Jan 2")),
			formatMuted(FormatHours(d.Stats.TotalHours)))
		for _, b := range d.Blocks {
			PrintBlockRow(w, b, opts, maxTitleWidth)
		}
	}

	fmt.Fprintln(w, strings.Repeat("─", 74))
	fmt.Fprint(w, "  ")
	PrintStats(w, ws.Stats)
	if day, ok := ws.BusiestDay(); ok {
		fmt.Fprintf(w, "  Busiest day: %s (%s)\n",
			day.Date.Format("Monday"), formatStats(FormatHours(day.Stats.TotalHours)))
	}
	fmt.Fprintf(w, "  Flow: %s\n", FlowBar(ws.Stats.TotalHours, weekCapacityHours, 20))

	if len(ws.Conflicts) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "  %s\n", formatWarning(fmt.Sprintf("%d overlapping pair(s):", len(ws.Conflicts))))
		for _, c := range ws.Conflicts {
			fmt.Fprintf(w, "    #%d %s  <>  #%d %s\n", c.First.ID, c.First.Title, c.Second.ID, c.Second.Title)
		}
	}
	fmt.Fprintln(w)
}
