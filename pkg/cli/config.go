package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/arohiabhilasha/FocusFlow/pkg/auth"
	"github.com/arohiabhilasha/FocusFlow/pkg/config"
)

func newConfigCmd(opts *rootOptions) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "View or modify FocusFlow configuration",
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.Suggest.APIKey != "" {
				cfg.Suggest.APIKey = "********"
			}

			out := cmd.OutOrStdout()
			if used := viper.ConfigFileUsed(); used != "" {
				fmt.Fprintf(out, "Config file: %s\n", used)
			} else {
				fmt.Fprintln(out, "Config file: (none - using defaults)")
			}
			encoder := json.NewEncoder(out)
			encoder.SetIndent("", "  ")
			return encoder.Encode(cfg)
		},
	}

	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Show the config file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), configPath(opts))
			return nil
		},
	}

	setCmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Long: `Set a configuration value in the config file.

Valid keys:
  ` + strings.Join(config.SettableKeys(), "\n  "),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := configPath(opts)
			if err := config.Set(args[0], args[1], path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s in %s\n", args[0], args[1], path)
			return nil
		},
	}

	configCmd.AddCommand(showCmd, pathCmd, setCmd)
	return configCmd
}

func configPath(opts *rootOptions) string {
	if opts.cfgFile != "" {
		return opts.cfgFile
	}
	return config.ConfigFile()
}

func newAuthCmd() *cobra.Command {
	authCmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage suggestion service credentials",
	}

	setKeyCmd := &cobra.Command{
		Use:   "set-key <api-key>",
		Short: "Store a Gemini API key",
		Long: `Store a Gemini API key in credentials.toml with owner-only permissions.
GEMINI_API_KEY and suggest.api_key take precedence over the stored key.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := auth.CredentialsPath()
			if err := auth.SaveAPIKey(path, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "API key saved to %s\n", path)
			return nil
		},
	}

	authCmd.AddCommand(setKeyCmd)
	return authCmd
}
