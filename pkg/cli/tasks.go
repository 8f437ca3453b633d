package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arohiabhilasha/FocusFlow/pkg/model"
)

func newAddCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add <title...>",
		Short: "Add a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, opts, false)
			if err != nil {
				return err
			}
			defer a.Close()

			t, ok := a.store.Add(strings.Join(args, " "))
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing added")
				return nil
			}
			if err := a.saved(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s %s\n", shortID(t.ID), t.Title)
			return nil
		},
	}
}

func newListCmd(opts *rootOptions) *cobra.Command {
	var all, done bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List open tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, opts, false)
			if err != nil {
				return err
			}
			defer a.Close()

			out := cmd.OutOrStdout()
			shown := 0
			for _, t := range a.store.Tasks() {
				if !all && t.Completed != done {
					continue
				}
				printTask(cmd, t)
				shown++
			}
			if shown == 0 {
				fmt.Fprintln(out, "No tasks.")
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "include completed tasks")
	cmd.Flags().BoolVar(&done, "done", false, "show only completed tasks")
	cmd.MarkFlagsMutuallyExclusive("all", "done")
	return cmd
}

func printTask(cmd *cobra.Command, t model.Task) {
	out := cmd.OutOrStdout()
	box := "[ ]"
	if t.Completed {
		box = "[x]"
	}
	fmt.Fprintf(out, "%-8s %s %s\n", shortID(t.ID), box, t.Title)
	if t.HasDescription() && t.DescriptionText() != "" {
		for _, line := range strings.Split(t.DescriptionText(), "\n") {
			fmt.Fprintf(out, "             %s\n", line)
		}
	}
}

func newToggleCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>",
		Short: "Mark a task done, or open again",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, opts, false)
			if err != nil {
				return err
			}
			defer a.Close()

			t, err := a.store.Resolve(args[0])
			if err != nil {
				return err
			}
			a.store.Toggle(t.ID)
			if err := a.saved(); err != nil {
				return err
			}

			verb := "Completed"
			if t.Completed {
				verb = "Reopened"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", verb, shortID(t.ID), t.Title)
			return nil
		},
	}
}

func newRemoveCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, opts, false)
			if err != nil {
				return err
			}
			defer a.Close()

			t, err := a.store.Resolve(args[0])
			if err != nil {
				return err
			}
			a.store.Delete(t.ID)
			if err := a.saved(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s %s\n", shortID(t.ID), t.Title)
			return nil
		},
	}
}

func newDescribeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "describe <id> <text>",
		Short: "Set a task's description",
		Long: `Set a task's description. An empty text ("") keeps an empty
description on the task.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, opts, false)
			if err != nil {
				return err
			}
			defer a.Close()

			t, err := a.store.Resolve(args[0])
			if err != nil {
				return err
			}
			a.store.SetDescription(t.ID, args[1])
			if err := a.saved(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s %s\n", shortID(t.ID), t.Title)
			return nil
		},
	}
}

func newClearCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all completed tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, opts, false)
			if err != nil {
				return err
			}
			defer a.Close()

			n := a.store.ClearCompleted()
			if err := a.saved(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d completed task(s)\n", n)
			return nil
		},
	}
}
