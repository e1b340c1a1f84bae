package ui

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/focusflow/internal/dateutil"
	"github.com/javiermolinar/focusflow/internal/export"
	"github.com/javiermolinar/focusflow/internal/timeblock"
)

func (a *App) exportCmd() *cobra.Command {
	var (
		format   string
		output   string
		toClip   bool
		fromDate string
		toDate   string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export time blocks to CSV, iCalendar or JSON",
		Long: `Export your time blocks.

By default every block is exported, most recent first, to
focusflow-timeblocks-YYYY-MM-DD.<format> in the current directory.
Use --output - to write to stdout, or --clipboard to copy instead.`,
		Example: `  focusflow export
  focusflow export --format ics --output schedule.ics
  focusflow export --from monday --to sunday --clipboard`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := a.ensureStore(ctx); err != nil {
				return err
			}

			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}

			var blocks []*timeblock.TimeBlock
			if fromDate != "" || toDate != "" {
				dr, err := dateutil.NewDateRange(fromDate, toDate, a.now())
				if err != nil {
					return err
				}
				blocks, err = a.manager.FindByOwnerAndRange(ctx, a.owner.ID, dr.Start, dr.End)
				if err != nil {
					return fmt.Errorf("listing time blocks: %w", err)
				}
			} else {
				blocks, err = a.manager.FindByOwner(ctx, a.owner.ID)
				if err != nil {
					return fmt.Errorf("listing time blocks: %w", err)
				}
			}

			var buf bytes.Buffer
			err = export.Write(&buf, f, blocks, export.Options{Location: a.loc, Now: a.now()})
			if errors.Is(err, export.ErrNoBlocks) {
				fmt.Fprintln(cmd.OutOrStdout(), "No time blocks to export.")
				return nil
			}
			if err != nil {
				return err
			}

			switch {
			case toClip:
				if err := clipboard.WriteAll(buf.String()); err != nil {
					return fmt.Errorf("copying to clipboard: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Copied %d time blocks to the clipboard\n", len(blocks))
			case output == "-":
				_, err := cmd.OutOrStdout().Write(buf.Bytes())
				return err
			default:
				if output == "" {
					output = export.DefaultFilename(f, a.now())
				}
				if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
					return fmt.Errorf("writing export: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %d time blocks to %s\n", len(blocks), output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "csv", "Format: csv, ics or json")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file, or - for stdout")
	cmd.Flags().BoolVar(&toClip, "clipboard", false, "Copy to the clipboard instead of writing a file")
	cmd.Flags().StringVar(&fromDate, "from", "", "Only blocks from this day")
	cmd.Flags().StringVar(&toDate, "to", "", "Only blocks up to this day, inclusive")
	cmd.MarkFlagsMutuallyExclusive("output", "clipboard")

	return cmd
}
