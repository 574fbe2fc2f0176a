package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/taskflow/internal/dataclient"
	"github.com/idilsaglam/taskflow/internal/model"
	"github.com/idilsaglam/taskflow/internal/store/jsonstore"
	"github.com/idilsaglam/taskflow/internal/ui"
)

func newExportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "export <file>",
		Short: "Write every task to a JSON snapshot",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withTasks(cmd, app, func(tasks dataclient.Tasks) error {
				items, err := tasks.List(ctxOf(cmd))
				if err != nil {
					return fmt.Errorf("load: %w", err)
				}
				if err := jsonstore.Save(args[0], items); err != nil {
					return fmt.Errorf("export: %w", err)
				}
				ui.OK(cmd.OutOrStdout(), fmt.Sprintf("exported %d tasks to %s", len(items), args[0]))
				return nil
			})
		},
	}
}

// Imported tasks are created fresh: new ids, pending, timestamps from the
// store. Entries with a blank title are skipped.
func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Create tasks from a JSON snapshot",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := jsonstore.Load(args[0])
			if err != nil {
				return fmt.Errorf("import: %w", err)
			}
			return withTasks(cmd, app, func(tasks dataclient.Tasks) error {
				added, skipped := 0, 0
				// oldest first so the listing keeps the snapshot's order
				for i := len(snap) - 1; i >= 0; i-- {
					nt, ok := model.Draft(snap[i].Title, snap[i].Desc())
					if !ok {
						skipped++
						continue
					}
					if err := tasks.Insert(ctxOf(cmd), nt); err != nil {
						return fmt.Errorf("import %q: %w", nt.Title, err)
					}
					added++
				}
				msg := fmt.Sprintf("imported %d tasks", added)
				if skipped > 0 {
					msg += fmt.Sprintf(" (%d skipped)", skipped)
				}
				ui.OK(cmd.OutOrStdout(), msg)
				return nil
			})
		},
	}
}
