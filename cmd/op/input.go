package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/roberthamel/optiprompt/internal/brief"
	"github.com/roberthamel/optiprompt/internal/catalog"
	"github.com/roberthamel/optiprompt/internal/config"
	"github.com/roberthamel/optiprompt/internal/prompt"
)

// inputFlags are the flags shared by generate and evaluate.
type inputFlags struct {
	slots map[prompt.SlotName]*[]string

	template    string
	technique   string
	format      string
	maxTokens   int
	qualityGate int
	expertRole  string

	examples   bool
	stepByStep bool
	reasoning  bool
	consistent bool
	diversity  bool
	refinement bool

	paths       int
	depth       int
	chainLength int
}

func (f *inputFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()

	f.slots = make(map[prompt.SlotName]*[]string, len(prompt.SlotNames))
	for _, name := range prompt.SlotNames {
		values := []string{}
		f.slots[name] = &values
		flags.StringArrayVar(&values, string(name), nil, fmt.Sprintf("%s item (repeatable, replaces the brief's # %s section)", name.Label(), name.Label()))
	}

	flags.StringVarP(&f.template, "template", "t", "", "template id")
	flags.StringVar(&f.technique, "technique", "", "prompting technique (see op techniques)")
	flags.StringVar(&f.format, "format", "", "output format (text, json, markdown, structured)")
	flags.IntVar(&f.maxTokens, "max-tokens", 0, "token budget")
	flags.IntVar(&f.qualityGate, "quality-gate", 0, "minimum acceptable quality score")
	flags.StringVar(&f.expertRole, "expert-role", "", "expert persona to adopt")

	flags.BoolVar(&f.examples, "examples", false, "include examples")
	flags.BoolVar(&f.stepByStep, "step-by-step", false, "ask for a step-by-step answer")
	flags.BoolVar(&f.reasoning, "reasoning", false, "append the advanced reasoning block")
	flags.BoolVar(&f.consistent, "self-consistency", false, "request self-consistency checking")
	flags.BoolVar(&f.diversity, "diversity", false, "append the diversity guidelines")
	flags.BoolVar(&f.refinement, "refinement", false, "wrap the prompt in iterative refinement")

	flags.IntVar(&f.paths, "paths", 0, "self-consistency reasoning paths")
	flags.IntVar(&f.depth, "depth", 0, "tree-of-thought depth")
	flags.IntVar(&f.chainLength, "chain-length", 0, "synthesized prompt-chain length")
}

// input is a fully resolved composition request.
type input struct {
	form     prompt.FormData
	template prompt.Template
	options  prompt.Options
	title    string
	tags     []string
}

/*
resolve merges the optional brief file with the flags. Slot flags replace
the matching brief section; options follow CLI flags > frontmatter > OP_*
environment > config file.
*/
func (f *inputFlags) resolve(cmd *cobra.Command, a *app, args []string) (*input, error) {
	if f.technique != "" && !prompt.Technique(f.technique).Valid() {
		return nil, fmt.Errorf("unknown technique: %s", f.technique)
	}
	if f.format != "" && !prompt.OutputFormat(f.format).Valid() {
		return nil, fmt.Errorf("unknown output format: %s", f.format)
	}

	b := &brief.Brief{}
	if len(args) == 1 {
		var err error
		if b, err = brief.Parse(args[0]); err != nil {
			return nil, err
		}
	}

	for _, name := range prompt.SlotNames {
		values := *f.slots[name]
		if len(values) == 0 {
			continue
		}
		items := make([]prompt.DynamicItem, len(values))
		for i, v := range values {
			items[i] = prompt.DynamicItem{ID: uuid.NewString(), Value: v}
		}
		b.Form.SetSlot(name, items)
	}

	for _, w := range b.Validate() {
		a.logger.Warn(w)
	}

	opts := b.Frontmatter.Options
	settings, err := config.Resolve(&config.Config{
		Technique:    f.technique,
		OutputFormat: f.format,
		MaxTokens:    f.maxTokens,
		QualityGate:  f.qualityGate,
		ExpertRole:   f.expertRole,
	}, config.FromOptions(opts))
	if err != nil {
		return nil, err
	}
	opts = settings.Apply(opts)
	f.applyFlags(cmd, &opts)

	if !opts.Technique.Valid() {
		opts.Technique = prompt.ZeroShot
	}
	if !opts.OutputFormat.Valid() {
		opts.OutputFormat = prompt.FormatText
	}

	id := f.template
	if id == "" {
		id = b.Frontmatter.Template
	}
	if id == "" {
		id = b.Form.TemplateID
	}
	if id == "" {
		id = catalog.DefaultTemplateID
	}
	registry, err := a.registry()
	if err != nil {
		return nil, err
	}
	tmpl, err := registry.ByID(id)
	if err != nil {
		return nil, err
	}
	if !tmpl.Supports(opts.Technique) {
		a.logger.Warn("technique not listed by template", "template", tmpl.ID, "technique", opts.Technique)
	}
	b.Form.TemplateID = tmpl.ID

	return &input{
		form:     b.Form,
		template: tmpl,
		options:  opts,
		title:    b.Frontmatter.Title,
		tags:     b.Frontmatter.Tags,
	}, nil
}

// applyFlags copies the boolean and tunable flags the user actually set.
func (f *inputFlags) applyFlags(cmd *cobra.Command, opts *prompt.Options) {
	flags := cmd.Flags()
	bools := []struct {
		name string
		src  bool
		dst  *bool
	}{
		{"examples", f.examples, &opts.IncludeExamples},
		{"step-by-step", f.stepByStep, &opts.IncludeStepByStep},
		{"reasoning", f.reasoning, &opts.Reasoning},
		{"self-consistency", f.consistent, &opts.SelfConsistency},
		{"diversity", f.diversity, &opts.DiversityBoost},
		{"refinement", f.refinement, &opts.IterativeRefinement},
	}
	for _, b := range bools {
		if flags.Changed(b.name) {
			*b.dst = b.src
		}
	}
	if f.paths > 0 {
		opts.ConsistencyPaths = f.paths
	}
	if f.depth > 0 {
		opts.TreeDepth = f.depth
	}
	if f.chainLength > 0 {
		opts.ChainLength = f.chainLength
	}
}
