// Package quality scores 5W1H form data and generation options on nine
// dimensions and collects improvement suggestions.
package quality

import (
	"fmt"
	"math"
	"strings"

	"github.com/roberthamel/optiprompt/internal/prompt"
	"github.com/roberthamel/optiprompt/internal/tokens"
)

const (
	suggestMoreSlots     = "Fill in more of the 5W1H fields to make the prompt more complete."
	suggestClearerWhat   = "Add a more specific description to the \"What\" field."
	suggestMoreDetail    = "Add more specific, detailed information to each field."
	suggestReasoning     = "Try a reasoning technique such as Chain of Thought or Self-Consistency."
	suggestTooSparse     = "The prompt is too brief. Add more detailed information."
	suggestOverBudget    = "The prompt may exceed the configured token limit (%d). Try condensing it to the essentials."
	suggestBelowGate     = "The current quality score (%d) is below the configured quality gate (%d). Further improvement is needed."
	suggestTryBranching  = "Try the Tree of Thoughts or Self-Consistency technique."
	suggestExpertRole    = "Set an expert role to get a more professional answer."
	suggestDiversity     = "Enable the diversity boost option to get more creative answers."
	sparseTokenThreshold = 100
)

// advanced reasoning techniques.
var advanced = map[prompt.Technique]bool{
	prompt.ChainOfThought:  true,
	prompt.TreeOfThought:   true,
	prompt.SelfConsistency: true,
	prompt.Reflection:      true,
	prompt.ReAct:           true,
	prompt.MetaPrompting:   true,
}

var creative = map[prompt.Technique]bool{
	prompt.Analogical:          true,
	prompt.TreeOfThought:       true,
	prompt.ActivePrompt:        true,
	prompt.DirectionalStimulus: true,
}

// IsAdvanced reports whether t is one of the advanced reasoning techniques.
func IsAdvanced(t prompt.Technique) bool { return advanced[t] }

// Evaluate scores fd against tmpl under opts. It never reads the composed
// prompt; all inputs are explicit.
func Evaluate(fd *prompt.FormData, tmpl *prompt.Template, opts prompt.Options) prompt.QualityMetrics {
	if fd == nil {
		fd = &prompt.FormData{}
	}
	if tmpl == nil {
		tmpl = &prompt.Template{}
	}

	m := prompt.QualityMetrics{
		AppliedTechniques: []prompt.Technique{opts.Technique},
		Suggestions:       []string{},
	}

	filled := 0
	texts := make([]string, 0, len(prompt.SlotNames))
	for _, name := range prompt.SlotNames {
		if fd.Filled(name) {
			filled++
		}
		texts = append(texts, fd.Text(name))
	}

	m.Completeness = math.Min(25, float64(filled)/6*25)
	if m.Completeness < 15 {
		m.Suggestions = append(m.Suggestions, suggestMoreSlots)
	}

	if n := tokens.Length(fd.Text(prompt.SlotWhat)); n > 10 {
		m.Clarity = math.Min(25, float64(n)/50*25)
	} else {
		m.Clarity = 5
		m.Suggestions = append(m.Suggestions, suggestClearerWhat)
	}

	combined := strings.Join(texts, " ")
	m.Specificity = math.Min(25, float64(tokens.Length(combined))/200*25)
	if m.Specificity < 15 {
		m.Suggestions = append(m.Suggestions, suggestMoreDetail)
	}

	m.Structure = 15
	if tmpl.Supports(opts.Technique) {
		m.Structure = 25
	}
	if tmpl.SystemPrompt != "" {
		m.Structure = math.Min(25, m.Structure+5)
	}

	switch {
	case advanced[opts.Technique]:
		m.Reasoning = 18
	case opts.Reasoning:
		m.Reasoning = 12
	default:
		m.Reasoning = 6
		m.Suggestions = append(m.Suggestions, suggestReasoning)
	}

	switch {
	case creative[opts.Technique]:
		m.Creativity = 16
	case tmpl.Category == prompt.CategoryCreative:
		m.Creativity = 12
	default:
		m.Creativity = 8
	}
	if opts.DiversityBoost {
		m.Creativity = math.Min(20, m.Creativity+4)
		m.AppliedTechniques = append(m.AppliedTechniques, prompt.DiversityBoost)
	}

	switch {
	case opts.Technique == prompt.SelfConsistency:
		m.Coherence = 18
	case opts.SelfConsistency:
		m.Coherence = 14
	default:
		m.Coherence = 10
	}

	switch {
	case opts.IterativeRefinement:
		m.Adaptability = 18
	case len(tmpl.ExpertRoles) > 0:
		m.Adaptability = 14
	default:
		m.Adaptability = 10
	}

	estimated := float64(tokens.Estimate(combined))
	budget := opts.Budget()
	switch {
	case estimated < sparseTokenThreshold:
		m.TokenEfficiency = 8
		m.Suggestions = append(m.Suggestions, suggestTooSparse)
	case estimated <= float64(budget)*0.5:
		m.TokenEfficiency = 18
	case estimated <= float64(budget)*0.8:
		m.TokenEfficiency = 15
	case estimated <= float64(budget):
		m.TokenEfficiency = 12
	default:
		m.TokenEfficiency = 8
		m.Suggestions = append(m.Suggestions, fmt.Sprintf(suggestOverBudget, budget))
	}

	basic := m.Completeness + m.Clarity + m.Specificity + m.Structure
	extended := m.Reasoning + m.Creativity + m.Coherence + m.Adaptability + m.TokenEfficiency
	m.Total = roundHalfUp((basic + extended) / 2)

	if gate := opts.Gate(); m.Total < gate {
		m.Suggestions = append([]string{fmt.Sprintf(suggestBelowGate, m.Total, gate)}, m.Suggestions...)
	}

	m.Level = LevelFor(m.Total)

	switch {
	case advanced[opts.Technique] && opts.Reasoning:
		m.ExpertiseLevel = prompt.Advanced
	case len(tmpl.Techniques) > 3 || opts.IncludeStepByStep:
		m.ExpertiseLevel = prompt.Intermediate
	default:
		m.ExpertiseLevel = prompt.Beginner
	}

	if m.Level == prompt.LevelMedium || m.Level == prompt.LevelLow {
		m.Suggestions = append(m.Suggestions, suggestTryBranching, suggestExpertRole)
		if !opts.DiversityBoost {
			m.Suggestions = append(m.Suggestions, suggestDiversity)
		}
	}
	return m
}

// LevelFor maps a total score to its quality band.
func LevelFor(total int) prompt.Level {
	switch {
	case total >= 86:
		return prompt.LevelExcellent
	case total >= 61:
		return prompt.LevelHigh
	case total >= 31:
		return prompt.LevelMedium
	default:
		return prompt.LevelLow
	}
}

// roundHalfUp rounds .5 toward positive infinity, matching JavaScript's
// Math.round for the non-negative totals produced here.
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}
