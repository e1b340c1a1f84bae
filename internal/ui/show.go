package ui

import (
	"github.com/spf13/cobra"

	"github.com/javiermolinar/focusflow/internal/timeblock"
)

func (a *App) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [block-id]",
		Short: "Show a time block",
		Long: `Display every field of one time block.

Example:
  focusflow show 42`,
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

			b, err := a.manager.FindByID(ctx, id)
			if err != nil {
				return blockError("loading", id, err)
			}
			if b == nil || b.OwnerID != a.owner.ID {
				return blockError("loading", id, timeblock.ErrNotFound)
			}

			PrintBlockDetail(cmd.OutOrStdout(), b, a.loc)
			return nil
		},
	}
}
