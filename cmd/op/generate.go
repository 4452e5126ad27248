package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/roberthamel/optiprompt/internal/generate"
	"github.com/roberthamel/optiprompt/internal/history"
	"github.com/roberthamel/optiprompt/internal/metrics"
	"github.com/roberthamel/optiprompt/internal/prompt"
	"github.com/roberthamel/optiprompt/internal/quality"
	"github.com/roberthamel/optiprompt/internal/tokens"
)

type generateFlags struct {
	inputFlags
	quiet  bool
	asJSON bool
	save   bool
	title  string
	tags   []string
}

// generateOutput is the --json document.
type generateOutput struct {
	Prompt  string                `json:"prompt"`
	Tokens  int                   `json:"tokens"`
	Metrics prompt.QualityMetrics `json:"metrics"`
	ID      string                `json:"id,omitempty"`
}

func newGenerateCmd(a *app) *cobra.Command {
	f := &generateFlags{}

	cmd := &cobra.Command{
		Use:   "generate [brief.md]",
		Short: "Compose a prompt from a brief and flags",
		Long:  longGenerate,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := f.resolve(cmd, a, args)
			if err != nil {
				return err
			}
			if f.title != "" {
				in.title = f.title
			}
			if len(f.tags) > 0 {
				in.tags = f.tags
			}
			return runGenerate(cmd, a, f, in)
		},
	}

	f.register(cmd)
	cmd.Flags().BoolVarP(&f.quiet, "quiet", "q", false, "print only the prompt")
	cmd.Flags().BoolVar(&f.asJSON, "json", false, "print {prompt, tokens, metrics} as JSON")
	cmd.Flags().BoolVar(&f.save, "save", false, "save the result to history")
	cmd.Flags().StringVar(&f.title, "title", "", "history record title")
	cmd.Flags().StringSliceVar(&f.tags, "tag", nil, "history record tag (repeatable)")
	return cmd
}

func runGenerate(cmd *cobra.Command, a *app, f *generateFlags, in *input) error {
	start := time.Now()
	text := generate.Compose(&in.form, &in.template, in.options)
	elapsed := time.Since(start)
	metrics.RecordCompose(string(in.options.Technique), elapsed)

	n := tokens.Estimate(text)
	m := quality.Evaluate(&in.form, &in.template, in.options)
	metrics.RecordQuality(string(m.Level), m.Total)

	a.logger.Debug("generated",
		"template", in.template.ID,
		"technique", in.options.Technique,
		"tokens", n,
		"total", m.Total,
		"level", m.Level,
		"duration", elapsed,
	)

	out := generateOutput{Prompt: text, Tokens: n, Metrics: m}
	if f.save {
		rec, err := saveRecord(cmd.ErrOrStderr(), a, in, text, m)
		if err != nil {
			return err
		}
		out.ID = rec.ID
	}

	if f.asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	fmt.Fprintln(cmd.OutOrStdout(), text)
	if !f.quiet {
		fmt.Fprintln(cmd.ErrOrStderr())
		printSummary(cmd.ErrOrStderr(), m, n)
	}
	return nil
}

func saveRecord(w io.Writer, a *app, in *input, text string, m prompt.QualityMetrics) (*history.Record, error) {
	store, err := a.store()
	if err != nil {
		return nil, err
	}
	rec, created, err := store.Save(history.Record{
		Title:      in.title,
		Form:       in.form,
		Generated:  text,
		TemplateID: in.template.ID,
		Category:   in.template.Category,
		Technique:  in.options.Technique,
		Options:    in.options,
		Quality:    m.Total,
		Level:      m.Level,
		Tags:       in.tags,
	})
	if err != nil {
		return nil, fmt.Errorf("saving history record: %w", err)
	}

	verb := "updated"
	if created {
		verb = "saved"
	}
	a.logger.Debug("history "+verb, "id", rec.ID, "dir", store.Dir())
	fmt.Fprintf(w, "%s %s\n", verb, rec.ID)
	return rec, nil
}

var longGenerate = `
Compose a structured prompt from a brief file, flags, or both, then score it.

A brief is a markdown file with optional YAML frontmatter (title, template,
tags, options) and H1 sections named Who, What, When, Where, Why and How.
Each bullet in a section becomes one item. Slot flags such as --what replace
the matching section.

The prompt goes to stdout; the quality summary goes to stderr.

Examples:
  # Compose from a brief with chain-of-thought.
  op generate brief.md --technique chain_of_thought

  # Compose from flags only and save the result.
  op generate --what "Design a caching layer" --who "Backend team" --save

  # Emit JSON for scripting.
  op generate brief.md --json
`
