package ui

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) ownersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "owners",
		Short: "Manage owners",
		Long: `Every time block belongs to one owner. Select the owner with --owner
or the [owner] section of the config file.`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List owners",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := a.ensureStore(ctx); err != nil {
				return err
			}

			owners, err := a.store.ListOwners(ctx)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			for _, o := range owners {
				marker := " "
				if o.ID == a.owner.ID {
					marker = "*"
				}
				fmt.Fprintf(w, "%s %-20s %s\n", marker, o.Name,
					formatMuted("since "+o.CreatedAt.In(a.loc).Format("2006-01-02")))
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete [name]",
		Short: "Delete an owner and all of its time blocks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := a.ensureStore(ctx); err != nil {
				return err
			}

			o, err := a.store.OwnerByName(ctx, args[0])
			if err != nil {
				return err
			}
			if o == nil {
				return fmt.Errorf("owner %q not found", args[0])
			}
			if o.ID == a.owner.ID {
				return fmt.Errorf("cannot delete the current owner %q", o.Name)
			}

			if _, err := a.store.DeleteOwner(ctx, o.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted owner %s\n", o.Name)
			return nil
		},
	})

	return cmd
}
