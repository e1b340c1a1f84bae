package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/focusflow/internal/dateutil"
	"github.com/javiermolinar/focusflow/internal/timeblock"
)

func (a *App) editCmd() *cobra.Command {
	var (
		title            string
		description      string
		clearDescription bool
		date             string
		start            string
		end              string
	)

	cmd := &cobra.Command{
		Use:   "edit [block-id]",
		Short: "Edit a time block",
		Long: `Change the title, description or interval of a time block.

Only the given flags change. Moving a block to another --date keeps its
clock times and duration.

Example:
  focusflow edit 42 --start=10:00 --end=11:30
  focusflow edit 42 --date=tomorrow
  focusflow edit 42 --title "Deep work" --clear-description`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := a.ensureStore(ctx); err != nil {
				return err
			}

			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			existing, err := a.manager.FindByID(ctx, id)
			if err != nil {
				return blockError("loading", id, err)
			}
			if existing == nil || existing.OwnerID != a.owner.ID {
				return blockError("loading", id, timeblock.ErrNotFound)
			}

			f := timeblock.Fields{
				Title:       existing.Title,
				Description: existing.Description,
				Start:       existing.Start.In(a.loc),
				End:         existing.End.In(a.loc),
			}

			flags := cmd.Flags()
			if flags.Changed("title") {
				f.Title = title
			}
			if flags.Changed("description") {
				f.Description = &description
			}
			if clearDescription {
				f.Description = nil
			}

			day := dateutil.TruncateToDay(f.Start)
			if flags.Changed("date") {
				day, err = dateutil.ParseRelativeDate(date, a.now())
				if err != nil {
					return err
				}
			}

			switch {
			case flags.Changed("start") || flags.Changed("end"):
				if !flags.Changed("start") {
					start = f.Start.Format("15:04")
				}
				if !flags.Changed("end") {
					end = f.End.Format("15:04")
				}
				f.Start, f.End, err = clockInterval(day, start, end)
				if err != nil {
					return err
				}
			case flags.Changed("date"):
				duration := f.End.Sub(f.Start)
				f.Start, err = dateutil.At(day, f.Start.Format("15:04"))
				if err != nil {
					return err
				}
				f.End = f.Start.Add(duration)
			}

			b, err := a.manager.Update(ctx, id, a.owner.ID, f)
			if err != nil {
				return blockError("updating", id, err)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Updated time block #%d: %s %s %s\n",
				b.ID, b.Title,
				b.Start.In(a.loc).Format("2006-01-02"),
				formatInterval(b.Start.In(a.loc), b.End.In(a.loc)))
			a.warnOverlaps(ctx, w, b)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVarP(&description, "description", "d", "", "New description")
	cmd.Flags().BoolVar(&clearDescription, "clear-description", false, "Remove the description")
	cmd.Flags().StringVar(&date, "date", "", "Move to date (YYYY-MM-DD, today, tomorrow, monday...)")
	cmd.Flags().StringVar(&start, "start", "", "New start time (HH:MM)")
	cmd.Flags().StringVar(&end, "end", "", "New end time (HH:MM)")
	cmd.MarkFlagsMutuallyExclusive("description", "clear-description")

	return cmd
}

func (a *App) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete [block-id]",
		Aliases: []string{"rm"},
		Short:   "Delete a time block",
		Long: `Delete a time block by its ID.

Example:
  focusflow delete 42`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := a.ensureStore(ctx); err != nil {
				return err
			}

			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			if err := a.manager.Delete(ctx, id, a.owner.ID); err != nil {
				return blockError("deleting", id, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Deleted time block #%d\n", id)
			return nil
		},
	}
}
