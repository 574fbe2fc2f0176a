package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/taskflow/internal/config"
	"github.com/idilsaglam/taskflow/internal/dataclient"
	"github.com/idilsaglam/taskflow/internal/model"
	"github.com/idilsaglam/taskflow/internal/ui"
)

// withTasks opens the data client and runs fn with it. An unconfigured
// install prints the configuration notice and succeeds without dialing.
func withTasks(cmd *cobra.Command, app *App, fn func(dataclient.Tasks) error) error {
	h, err := app.handle(cmd)
	if err != nil {
		return err
	}
	defer h.Close()

	tasks, ok := h.Get()
	if !ok {
		printConfigRequired(cmd.OutOrStdout())
		return nil
	}
	return fn(tasks)
}

func printConfigRequired(w io.Writer) {
	t := ui.Current()
	ui.Panel(w, []string{
		ui.C(t.Pending, "⚠ Configuration Required"),
		"",
		"To use TaskFlow, please set your Supabase environment variables:",
		"",
		"  " + config.EnvURL + "=your_supabase_url",
		"  " + config.EnvKey + "=your_anon_key",
		"",
		ui.C(t.Muted, "or run `taskflow auth login`"),
	})
}

func newListCmd(app *App) *cobra.Command {
	var group bool
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List tasks, newest first",
		Args:    usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withTasks(cmd, app, func(tasks dataclient.Tasks) error {
				items, err := tasks.List(ctxOf(cmd))
				if err != nil {
					return fmt.Errorf("load: %w", err)
				}
				ui.Panel(cmd.OutOrStdout(), listLines(items, group))
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&group, "group", false, "group output by pending/done")
	return cmd
}

func newAddCmd(app *App) *cobra.Command {
	var desc string
	cmd := &cobra.Command{
		Use:   "add <title...>",
		Short: "Add a new task (title can be multiple words)",
		Args:  usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			nt, ok := model.Draft(strings.Join(args, " "), desc)
			if !ok {
				return usagef("add: empty title")
			}
			return withTasks(cmd, app, func(tasks dataclient.Tasks) error {
				if err := tasks.Insert(ctxOf(cmd), nt); err != nil {
					return fmt.Errorf("add: %w", err)
				}
				ui.OK(cmd.OutOrStdout(), "added")
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&desc, "description", "d", "", "optional description")
	return cmd
}

func newDoneCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "done <index>",
		Short: "Toggle completion for the task at a 1-based index",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return usagef("done: not a number: %s", args[0])
			}
			return withTasks(cmd, app, func(tasks dataclient.Tasks) error {
				t, err := taskAt(cmd, tasks, n)
				if err != nil {
					return err
				}
				if err := tasks.SetCompleted(ctxOf(cmd), t.ID, !t.Completed); err != nil {
					return fmt.Errorf("done: %w", err)
				}
				ui.OK(cmd.OutOrStdout(), "toggled")
				return nil
			})
		},
	}
}

func newRemoveCmd(app *App) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "rm <index>",
		Short: "Remove the task at a 1-based index (asks for confirmation)",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return usagef("rm: not a number: %s", args[0])
			}
			return withTasks(cmd, app, func(tasks dataclient.Tasks) error {
				t, err := taskAt(cmd, tasks, n)
				if err != nil {
					return err
				}
				if !yes && !confirm(cmd, fmt.Sprintf("Delete %q? [y/N] ", t.Title)) {
					fmt.Fprintln(cmd.OutOrStdout(), ui.Dim("kept"))
					return nil
				}
				if err := tasks.Delete(ctxOf(cmd), t.ID); err != nil {
					return fmt.Errorf("rm: %w", err)
				}
				ui.OK(cmd.OutOrStdout(), "removed")
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

// taskAt resolves a 1-based index against the newest-first listing.
func taskAt(cmd *cobra.Command, tasks dataclient.Tasks, userIndex int) (model.Task, error) {
	items, err := tasks.List(ctxOf(cmd))
	if err != nil {
		return model.Task{}, fmt.Errorf("load: %w", err)
	}
	if userIndex < 1 || userIndex > len(items) {
		fmt.Fprintln(cmd.ErrOrStderr(), ui.C(ui.Current().Muted, "Hint: run `taskflow ls` to see valid indexes"))
		return model.Task{}, usagef("index out of range: have %d, got %d", len(items), userIndex)
	}
	return items[userIndex-1], nil
}

// confirm reads one answer line; anything but y/yes declines.
func confirm(cmd *cobra.Command, prompt string) bool {
	fmt.Fprint(cmd.OutOrStdout(), prompt)
	sc := bufio.NewScanner(cmd.InOrStdin())
	if !sc.Scan() {
		fmt.Fprintln(cmd.OutOrStdout())
		return false
	}
	switch strings.ToLower(strings.TrimSpace(sc.Text())) {
	case "y", "yes":
		return true
	}
	return false
}
