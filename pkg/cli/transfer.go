package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arohiabhilasha/FocusFlow/pkg/model"
	"github.com/arohiabhilasha/FocusFlow/pkg/orgmode"
	"github.com/arohiabhilasha/FocusFlow/pkg/taskwarrior"
	"github.com/arohiabhilasha/FocusFlow/pkg/util"
)

type importItem struct {
	title string
	notes string
}

func newImportCmd(opts *rootOptions) *cobra.Command {
	var fromTaskwarrior bool

	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Add tasks from Org-mode, Taskwarrior or a plain list",
		Long: `Add tasks from a file. Org-mode files (.org) contribute their open TODO
headings and unchecked checklist items. JSON files (.json) are read as a
Taskwarrior export. Any other file is read as one title per line. Use "-" to
read a plain list from standard input, or --taskwarrior to import the pending
tasks of the local Taskwarrior database.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var items []importItem
			var err error
			switch {
			case fromTaskwarrior:
				items, err = readTaskwarrior(cmd)
			case len(args) == 1:
				items, err = readItems(cmd, args[0])
			default:
				return errors.New("a file or --taskwarrior is required")
			}
			if err != nil {
				return err
			}

			a, err := openApp(cmd, opts, false)
			if err != nil {
				return err
			}
			defer a.Close()

			titles := make([]string, len(items))
			for i, it := range items {
				titles[i] = it.title
			}
			added := a.store.AddBatch(titles)
			for i, t := range added {
				if items[i].notes != "" {
					a.store.SetDescription(t.ID, items[i].notes)
				}
			}
			if err := a.saved(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d task(s)\n", len(added))
			return nil
		},
	}

	cmd.Flags().BoolVar(&fromTaskwarrior, "taskwarrior", false, "import pending tasks from Taskwarrior")
	return cmd
}

// readItems returns only admissible titles so the result lines up with AddBatch.
func readItems(cmd *cobra.Command, path string) ([]importItem, error) {
	var titles []string
	switch {
	case path == "-":
		lines, err := util.ReadLines(cmd.InOrStdin())
		if err != nil {
			return nil, err
		}
		titles = lines

	case strings.EqualFold(filepath.Ext(path), ".org"):
		headings, err := orgmode.ParseFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		titles = orgmode.OpenTitles(headings)

	case strings.EqualFold(filepath.Ext(path), ".json"):
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		defer f.Close()
		tasks, err := taskwarrior.ParseTasks(f)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		return fromTasks(tasks), nil

	default:
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		defer f.Close()
		lines, err := util.ReadLines(f)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		titles = lines
	}

	items := make([]importItem, 0, len(titles))
	for _, t := range titles {
		if title, ok := model.NormalizeTitle(t); ok {
			items = append(items, importItem{title: title})
		}
	}
	return items, nil
}

func readTaskwarrior(cmd *cobra.Command) ([]importItem, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	tasks, err := taskwarrior.NewClient().Pending(ctx)
	if err != nil {
		return nil, err
	}
	return fromTasks(tasks), nil
}

func fromTasks(tasks []taskwarrior.Task) []importItem {
	var items []importItem
	for _, t := range tasks {
		if !t.Open() {
			continue
		}
		if title, ok := model.NormalizeTitle(t.Description); ok {
			items = append(items, importItem{title: title, notes: t.Notes()})
		}
	}
	return items
}

func newExportCmd(opts *rootOptions) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Print the task list as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, opts, false)
			if err != nil {
				return err
			}
			defer a.Close()

			out := cmd.OutOrStdout()
			if raw {
				data, err := a.adapter.Raw()
				if err != nil {
					return fmt.Errorf("failed to read stored tasks: %w", err)
				}
				_, err = io.WriteString(out, string(data)+"\n")
				return err
			}

			encoder := json.NewEncoder(out)
			encoder.SetIndent("", "  ")
			return encoder.Encode(a.store.Tasks())
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "print the stored value exactly as saved")
	return cmd
}
