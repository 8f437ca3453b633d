package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arohiabhilasha/FocusFlow/pkg/suggest"
	"github.com/arohiabhilasha/FocusFlow/pkg/widget"
)

func newSuggestCmd(opts *rootOptions) *cobra.Command {
	var add bool

	cmd := &cobra.Command{
		Use:   "suggest [intent...]",
		Short: "Ask for five daily goals matching an intent",
		Long: `Ask the suggestion service for five short daily goals. Without an intent
the configured default intent is used. When the service cannot be reached a
fixed list of everyday goals is returned instead.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, opts, false)
			if err != nil {
				return err
			}
			defer a.Close()

			gateway, closeGateway := a.gateway(cmd.Context())
			defer closeGateway()

			res := gateway.Suggest(cmd.Context(), strings.Join(args, " "))
			if res.Source == suggest.SourceFallback {
				fmt.Fprintln(cmd.ErrOrStderr(), "Suggestion service unavailable, showing default goals.")
			}

			out := cmd.OutOrStdout()
			if !add {
				for _, s := range res.Suggestions {
					fmt.Fprintln(out, s)
				}
				return nil
			}

			added := a.store.AddBatch(res.Suggestions)
			if err := a.saved(); err != nil {
				return err
			}
			for _, t := range added {
				fmt.Fprintf(out, "Added %s %s\n", shortID(t.ID), t.Title)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&add, "add", false, "add the suggestions as tasks")
	return cmd
}

func newWidgetCmd(opts *rootOptions) *cobra.Command {
	var limit, width int

	cmd := &cobra.Command{
		Use:   "widget",
		Short: "Print the priority goals widget",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, opts, false)
			if err != nil {
				return err
			}
			defer a.Close()

			v := widget.Select(a.store.Tasks(), limit)
			fmt.Fprint(cmd.OutOrStdout(), widget.Render(v, width))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", widget.ScrollLimit, "maximum number of goals to show")
	cmd.Flags().IntVarP(&width, "width", "w", 0, "cut rows to this many columns (0 for no limit)")
	return cmd
}
