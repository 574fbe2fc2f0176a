package cli

import (
	"github.com/spf13/cobra"

	"github.com/idilsaglam/taskflow/internal/store/pgstore"
	"github.com/idilsaglam/taskflow/internal/ui"
)

func newMigrateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the tasks table (postgres:// endpoints only)",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := app.handle(cmd)
			if err != nil {
				return err
			}
			defer h.Close()
			if !h.Present() {
				printConfigRequired(cmd.OutOrStdout())
				return nil
			}
			pg, ok := h.Backend().(*pgstore.Store)
			if !ok {
				return usagef("migrate: needs a postgres:// endpoint; create the table from the Supabase dashboard instead")
			}
			if err := pg.EnsureSchema(ctxOf(cmd)); err != nil {
				return err
			}
			ui.OK(cmd.OutOrStdout(), "tasks table ready")
			return nil
		},
	}
}
