package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roberthamel/optiprompt/internal/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage default settings",
		Long:  longConfig,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "set <key> <value>",
			Short: "Set a config value (an empty value clears it)",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := config.Set(args[0], args[1]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", args[0], args[1])
				return nil
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List config values",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				values, err := config.List()
				if err != nil {
					return err
				}
				for _, key := range config.ValidKeys {
					fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", key, values[key])
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "reset",
			Short: "Delete the config file",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := config.Reset(); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "config reset")
				return nil
			},
		},
	)
	return cmd
}

var longConfig = `
Manage the defaults stored in ~/.config/op/config.yaml.

Keys: technique, output-format, max-tokens, quality-gate, expert-role,
templates-dir, history-dir, log-level. Each can also be set through the
environment, e.g. OP_MAX_TOKENS=800 or OP_TEMPLATES_DIR=~/templates.

Examples:
  op config set technique chain_of_thought
  op config set quality-gate 85
  op config set expert-role ""
`
