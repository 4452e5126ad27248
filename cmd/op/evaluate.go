package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/roberthamel/optiprompt/internal/metrics"
	"github.com/roberthamel/optiprompt/internal/prompt"
	"github.com/roberthamel/optiprompt/internal/quality"
)

type evaluateOutput struct {
	Metrics       prompt.QualityMetrics  `json:"metrics"`
	Optimizations []quality.Optimization `json:"optimizations"`
}

func newEvaluateCmd(a *app) *cobra.Command {
	f := &inputFlags{}
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "evaluate [brief.md]",
		Short: "Score a brief without composing a prompt",
		Long:  longEvaluate,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := f.resolve(cmd, a, args)
			if err != nil {
				return err
			}

			m := quality.Evaluate(&in.form, &in.template, in.options)
			metrics.RecordQuality(string(m.Level), m.Total)
			opts := quality.Optimize(&in.form, in.options)
			a.logger.Debug("evaluated", "template", in.template.ID, "total", m.Total, "level", m.Level)

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(evaluateOutput{Metrics: m, Optimizations: opts})
			}
			printBreakdown(cmd.OutOrStdout(), m, opts)
			return nil
		},
	}

	f.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print {metrics, optimizations} as JSON")
	return cmd
}

var longEvaluate = `
Score a brief across the nine quality dimensions and list suggestions and
optimizations, without composing the prompt.

Examples:
  # Score a brief against a quality gate of 85.
  op evaluate brief.md --quality-gate 85
`
