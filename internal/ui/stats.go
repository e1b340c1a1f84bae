package ui

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show totals over all time blocks",
		Long: `Show how many time blocks you have, their total length in hours
and the average block length.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := a.ensureStore(ctx); err != nil {
				return err
			}

			s, err := a.manager.Stats(ctx, a.owner.ID)
			if err != nil {
				return fmt.Errorf("computing stats: %w", err)
			}

			PrintStats(cmd.OutOrStdout(), s)
			return nil
		},
	}
}
