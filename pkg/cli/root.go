// Package cli holds the focusflow command tree.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/arohiabhilasha/FocusFlow/pkg/config"
	"github.com/arohiabhilasha/FocusFlow/pkg/tui"
)

type rootOptions struct {
	cfgFile string
	mode    string
	quiet   bool
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd builds the full command tree. Each call returns an independent tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "focusflow",
		Short: "A small daily task list with a priority widget",
		Long: `FocusFlow keeps a short list of daily goals. Run it without arguments
for the interactive view, or use the subcommands to manage tasks from scripts.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return config.Init(opts.cfgFile)
		},
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(cmd, opts)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&opts.cfgFile, "config", "c", "", "config file (default is $HOME/.config/focusflow/config.json)")
	rootCmd.PersistentFlags().BoolVarP(&opts.quiet, "quiet", "q", false, "discard log output")
	rootCmd.Flags().StringVar(&opts.mode, "mode", "", "start in app or widget mode (also accepts mode=widget)")

	rootCmd.AddCommand(
		newAddCmd(opts),
		newListCmd(opts),
		newToggleCmd(opts),
		newRemoveCmd(opts),
		newDescribeCmd(opts),
		newClearCmd(opts),
		newSuggestCmd(opts),
		newWidgetCmd(opts),
		newImportCmd(opts),
		newExportCmd(opts),
		newConfigCmd(opts),
		newAuthCmd(),
	)
	return rootCmd
}

func runInteractive(cmd *cobra.Command, opts *rootOptions) error {
	a, err := openApp(cmd, opts, true)
	if err != nil {
		return err
	}
	defer a.Close()

	mode, err := resolveMode(cmd, opts, a.cfg)
	if err != nil {
		return err
	}

	gateway, closeGateway := a.gateway(cmd.Context())
	defer closeGateway()

	return tui.Run(a.store, gateway, a.log, mode == config.ModeWidget)
}

// resolveMode prefers --mode over ui.mode from the configuration.
func resolveMode(cmd *cobra.Command, opts *rootOptions, cfg *config.Config) (string, error) {
	if cmd.Flags().Changed("mode") {
		return tui.ParseMode(opts.mode)
	}
	return tui.ParseMode(cfg.UI.Mode)
}
