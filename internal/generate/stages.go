package generate

import (
	"fmt"
	"math"

	"github.com/roberthamel/optiprompt/internal/prompt"
	"github.com/roberthamel/optiprompt/internal/tokens"
)

// Stage is one optional post-processing step applied after the technique
// transform.
type Stage struct {
	Name    string
	Enabled func(opts prompt.Options) bool
	Apply   func(current string, in Input) string
}

// Stages is the fixed post-processing order.
var Stages = []Stage{
	{
		Name: "step_by_step",
		Enabled: func(o prompt.Options) bool {
			return o.IncludeStepByStep && o.Technique != prompt.StepByStep
		},
		Apply: func(p string, _ Input) string { return p + "\n\n" + stepByStepAddendum },
	},
	{
		Name:    "reasoning",
		Enabled: func(o prompt.Options) bool { return o.Reasoning },
		Apply:   func(p string, _ Input) string { return p + "\n\n" + advancedReasoningBlock },
	},
	{
		Name: "output_format",
		Enabled: func(o prompt.Options) bool {
			return o.OutputFormat != "" && o.OutputFormat != prompt.FormatText
		},
		Apply: func(p string, in Input) string {
			return p + "\n\n" + formatAddenda[string(in.Options.OutputFormat)]
		},
	},
	{
		Name:    "iterative_refinement",
		Enabled: func(o prompt.Options) bool { return o.IterativeRefinement },
		Apply: func(p string, _ Input) string {
			return refinementHeader + p + "\n\n" + refinementCritique
		},
	},
	{
		Name:    "diversity_boost",
		Enabled: func(o prompt.Options) bool { return o.DiversityBoost },
		Apply:   func(p string, _ Input) string { return p + "\n\n" + diversityBlock },
	},
	{
		Name:    "token_limit",
		Enabled: func(o prompt.Options) bool { return o.MaxTokens > 0 },
		Apply:   func(p string, in Input) string { return ApplyTokenLimit(p, in.Options.MaxTokens) },
	},
}

// EnabledStages returns the names of the stages opts switches on, in the
// order they run.
func EnabledStages(opts prompt.Options) []string {
	var names []string
	for _, s := range Stages {
		if s.Enabled(opts) {
			names = append(names, s.Name)
		}
	}
	return names
}

// ApplyTokenLimit appends a length directive when the estimated token count
// of p exceeds maxTokens. Existing text is never removed.
func ApplyTokenLimit(p string, maxTokens int) string {
	if maxTokens <= 0 {
		return p
	}
	estimated := tokens.Estimate(p)
	if estimated <= maxTokens {
		return p
	}
	ratio := float64(maxTokens) / float64(estimated)
	targetLength := math.Floor(float64(tokens.Length(p)) * ratio * 0.8)
	words := int(math.Floor(targetLength / 4))
	return p + "\n\n" + fmt.Sprintf(tokenLimitFormat, maxTokens, words)
}
