package quality

import "github.com/roberthamel/optiprompt/internal/prompt"

// Optimization is an actionable configuration change with its expected
// impact and effort.
type Optimization struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Impact      string `json:"impact"`
	Difficulty  string `json:"difficulty"`
}

// Optimize suggests option and input changes likely to raise the score.
func Optimize(fd *prompt.FormData, opts prompt.Options) []Optimization {
	out := []Optimization{}
	if opts.Technique == prompt.ZeroShot {
		out = append(out, Optimization{
			Type:        "technique",
			Title:       "Try few-shot prompting",
			Description: "Include examples to get more accurate results.",
			Impact:      "high",
			Difficulty:  "easy",
		})
	}
	if !opts.Reasoning {
		out = append(out, Optimization{
			Type:        "technique",
			Title:       "Include the reasoning process",
			Description: "Include step-by-step reasoning to get a more reliable answer.",
			Impact:      "medium",
			Difficulty:  "easy",
		})
	}

	empty := 0
	for _, name := range []prompt.SlotName{prompt.SlotWho, prompt.SlotWhen, prompt.SlotWhere, prompt.SlotWhy, prompt.SlotHow} {
		if len(fd.Slot(name)) == 0 {
			empty++
		}
	}
	if empty > 2 {
		out = append(out, Optimization{
			Type:        "structure",
			Title:       "Complete the 5W1H fields",
			Description: "Fill in more of the 5W1H fields to raise completeness.",
			Impact:      "high",
			Difficulty:  "easy",
		})
	}
	return out
}
