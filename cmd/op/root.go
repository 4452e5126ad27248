/*
Command op composes structured 5W1H prompts from briefs, scores them and
keeps a local history of what was generated.
*/
package main

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/roberthamel/optiprompt/internal/catalog"
	"github.com/roberthamel/optiprompt/internal/config"
	"github.com/roberthamel/optiprompt/internal/history"
	"github.com/roberthamel/optiprompt/internal/logging"
)

/*
app carries the global flags and the state resolved from them before any
subcommand runs.
*/
type app struct {
	logLevel     string
	logFormat    string
	logFile      string
	templatesDir string

	settings *config.Config
	logger   *log.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:          "op",
		Short:        "Compose, score and track structured prompts",
		Long:         longRoot,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&a.logFormat, "log-format", "text", "log format (text, json, logfmt)")
	cmd.PersistentFlags().StringVar(&a.logFile, "log-file", "", "write logs to a rotated file instead of stderr")
	cmd.PersistentFlags().StringVar(&a.templatesDir, "templates-dir", "", "directory of extra template YAML files")

	cmd.AddCommand(
		newGenerateCmd(a),
		newEvaluateCmd(a),
		newTemplatesCmd(a),
		newTechniquesCmd(),
		newConfigCmd(),
		newHistoryCmd(a),
		newServeCmd(a),
	)
	return cmd
}

/*
setup resolves the settings shared by every subcommand: config file and OP_*
environment first, global flags on top, then builds the logger.
*/
func (a *app) setup(cmd *cobra.Command) error {
	settings, err := config.Resolve(&config.Config{
		LogLevel:     a.logLevel,
		TemplatesDir: a.templatesDir,
	}, nil)
	if err != nil {
		return err
	}
	a.settings = settings

	logger, err := logging.Init(logging.Config{
		Level:  settings.LogLevel,
		Format: a.logFormat,
		File:   a.logFile,
		Output: cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}
	a.logger = logger
	return nil
}

func (a *app) registry() (*catalog.Registry, error) {
	return catalog.LoadDir(a.settings.TemplatesDir)
}

func (a *app) store() (*history.Store, error) {
	dir := a.settings.HistoryDir
	if dir == "" {
		var err error
		if dir, err = history.DefaultDir(); err != nil {
			return nil, err
		}
	}
	return history.New(dir), nil
}

/*
longRoot contains the detailed help text for the root command.
*/
var longRoot = `
op turns who/what/when/where/why/how input into a structured prompt for a
language model, reshaped by a prompting technique such as chain-of-thought or
tree-of-thought, and scores how complete and specific that input is.

Settings are read from ~/.config/op/config.yaml and OP_* environment
variables; brief frontmatter and command-line flags take precedence.
`
