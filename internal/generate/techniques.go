package generate

import (
	"fmt"
	"strings"

	"github.com/roberthamel/optiprompt/internal/prompt"
)

// Transform reshapes a base prompt into a technique-specific scaffold.
type Transform func(base string, in Input) string

// transforms maps each technique to its scaffold builder. Techniques without
// an entry (zero-shot, multimodal CoT, anything unknown) leave the prompt
// unchanged.
var transforms = map[prompt.Technique]Transform{
	prompt.FewShot:             fewShot,
	prompt.ChainOfThought:      chainOfThought,
	prompt.TreeOfThought:       treeOfThought,
	prompt.SelfConsistency:     selfConsistency,
	prompt.ExpertPrompting:     expertPrompting,
	prompt.Reflection:          reflection,
	prompt.StepByStep:          stepByStep,
	prompt.RAG:                 rag,
	prompt.ReAct:               react,
	prompt.PromptChaining:      promptChaining,
	prompt.GeneratedKnowledge:  generatedKnowledge,
	prompt.LeastToMost:         leastToMost,
	prompt.Analogical:          analogical,
	prompt.DirectionalStimulus: directionalStimulus,
	prompt.MetaPrompting:       metaPrompting,
	prompt.ActivePrompt:        activePrompt,
}

// ApplyTechnique runs the transform registered for technique t.
func ApplyTechnique(t prompt.Technique, base string, in Input) string {
	fn, ok := transforms[t]
	if !ok {
		return base
	}
	return fn(base, in)
}

// HasTransform reports whether technique t changes the base prompt.
func HasTransform(t prompt.Technique) bool {
	_, ok := transforms[t]
	return ok
}

func fewShot(base string, in Input) string {
	examples := in.Template.FewShotExamples
	if len(examples) == 0 {
		return base
	}
	var b strings.Builder
	b.WriteString("Here are some examples:\n\n")
	for i, ex := range examples {
		fmt.Fprintf(&b, "Example %d:\n", i+1)
		fmt.Fprintf(&b, "Input: %s\n", exampleInput(&ex.Input))
		fmt.Fprintf(&b, "Output: %s\n", ex.Output)
		if ex.Reasoning != "" {
			fmt.Fprintf(&b, "Reasoning: %s\n", ex.Reasoning)
		}
		b.WriteString("\n")
	}
	b.WriteString("Use the examples above as a reference and answer the following:\n\n")
	b.WriteString(base)
	return b.String()
}

// exampleInput renders the slots present in a partial form.
func exampleInput(fd *prompt.FormData) string {
	parts := make([]string, 0, len(prompt.SlotNames))
	for _, name := range prompt.SlotNames {
		if len(fd.Slot(name)) == 0 {
			continue
		}
		parts = append(parts, name.Label()+": "+fd.Text(name))
	}
	return strings.Join(parts, ", ")
}

func chainOfThought(base string, _ Input) string {
	return base + "\n\n" + chainOfThoughtBlock
}

func treeOfThought(base string, in Input) string {
	depth := in.Options.Depth()

	var b strings.Builder
	b.WriteString("# Tree of Thoughts exploration\n\n")
	b.WriteString("We will explore this problem as a tree to find the best solution.\n\n")

	if branches := in.Template.TreeOfThoughtBranches; len(branches) > 0 {
		b.WriteString("## Branches to explore\n")
		for i, branch := range branches {
			fmt.Fprintf(&b, "- Branch %d: %s\n", i+1, branch)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "## Level-by-level exploration (depth %d)\n\n", depth)
	for level := 1; level <= depth; level++ {
		fmt.Fprintf(&b, "### Level %d\n", level)
		b.WriteString("**Nodes**: list the approaches worth considering at this level.\n")
		b.WriteString("**Evaluation**: score how promising each node is (1-10).\n")
		b.WriteString("**Selection**: choose the most promising node and explain why.\n\n")
	}

	b.WriteString("## Backtracking and optimization\n")
	b.WriteString("If needed, return to a previous level and explore a different path.\n\n")
	b.WriteString("## Final solution\n")
	b.WriteString(base)
	b.WriteString("\n\nSolve the problem along the best path found through the exploration above.")
	return b.String()
}

func selfConsistency(base string, in Input) string {
	paths := in.Options.Paths()

	var b strings.Builder
	b.WriteString("# Self-consistency over multiple reasoning paths\n\n")
	fmt.Fprintf(&b, "We will approach this problem along %d different reasoning paths and look for a consistent answer.\n\n", paths)
	for i := 1; i <= paths; i++ {
		fmt.Fprintf(&b, "## Reasoning path %d\n", i)
		b.WriteString(base)
		b.WriteString("\n\n")
		fmt.Fprintf(&b, "**Reasoning %d**: [describe the step-by-step thought process in detail]\n", i)
		fmt.Fprintf(&b, "**Conclusion %d**: [the conclusion reached on this path]\n\n", i)
	}
	b.WriteString("## Consistency check and final answer\n")
	fmt.Fprintf(&b, "Compare the results of the %d reasoning paths above and present the most consistent, reliable answer.\n", paths)
	b.WriteString("If the paths disagree, analyze why and derive the most reasonable answer.")
	return b.String()
}

func expertPrompting(base string, in Input) string {
	role := in.Options.ExpertRole
	if role == "" && len(in.Template.ExpertRoles) > 0 {
		role = in.Template.ExpertRoles[0]
	}
	if role == "" {
		role = genericExpertRole
	}
	return base + "\n\n" +
		fmt.Sprintf(expertPersonaBlock, role) + "\n\n" +
		expertApproachBlock + "\n\n" +
		expertDeliverablesBlock
}

func reflection(base string, _ Input) string {
	return base + "\n\n" + reflectionBlock
}

func stepByStep(base string, _ Input) string {
	return base + "\n\n" + stepByStepBlock
}

func rag(base string, in Input) string {
	kb := in.Template.KnowledgeBase
	if len(kb) == 0 {
		return ragGenericScaffold + "\n\n" + base + "\n\n" + ragCitation
	}
	var b strings.Builder
	b.WriteString(ragRetrievedHeader)
	for i, entry := range kb {
		fmt.Fprintf(&b, "## Reference %d\n%s\n\n", i+1, entry)
	}
	b.WriteString(ragRetrievedDirective)
	b.WriteString(base)
	return b.String()
}

func react(base string, _ Input) string {
	return reactHeader + "\n\n" + base + "\n\n" + reactFooter
}

func promptChaining(base string, in Input) string {
	if steps := in.Template.ChainSteps; len(steps) > 0 {
		var b strings.Builder
		b.WriteString(chainExplicitHeader)
		for i, step := range steps {
			fmt.Fprintf(&b, "## Step %d: %s\n", i+1, step.ID)
			b.WriteString(step.Prompt)
			b.WriteString("\n\n")
			if len(step.DependsOn) > 0 {
				fmt.Fprintf(&b, chainDependsFormat, strings.Join(step.DependsOn, ", "))
			}
		}
		b.WriteString("## Final integration\n")
		b.WriteString(base)
		b.WriteString("\n\n")
		b.WriteString(chainExplicitFooter)
		return b.String()
	}

	n := in.Options.Chain()
	var b strings.Builder
	fmt.Fprintf(&b, "# %d-step prompt chain\n\n", n)
	fmt.Fprintf(&b, "Perform the following %d steps in order to solve the problem systematically:\n\n", n)
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&b, "## Step %d: %s\n", i, ChainStepTitle(i))
		b.WriteString(chainStepDescription(i, in.Form))
		b.WriteString("\n\n")
		if i > 1 {
			b.WriteString(chainReuseDirective)
		}
	}
	b.WriteString("## Final step: integration and conclusion\n")
	b.WriteString(base)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, chainSynthesizedFooterFormat, n)
	return b.String()
}

// ChainStepTitle returns the synthesized title for 1-based step n.
func ChainStepTitle(n int) string {
	if n >= 1 && n <= len(chainStepTitles) {
		return chainStepTitles[n-1]
	}
	return fmt.Sprintf(chainExtendedTitleFormat, n-len(chainStepTitles))
}

func chainStepDescription(n int, fd *prompt.FormData) string {
	if n > len(chainStepDescriptions) || n < 1 {
		return chainExtendedDescription
	}
	desc := chainStepDescriptions[n-1]
	if n != 1 {
		return desc
	}
	context := chainGenericContext
	if what := fd.Text(prompt.SlotWhat); what != "" {
		context = `"` + what + `"`
	}
	return fmt.Sprintf(desc, context)
}

func generatedKnowledge(base string, _ Input) string {
	return generatedKnowledgeHeader + "\n" + base + "\n\n" + generatedKnowledgeFooter
}

func leastToMost(base string, _ Input) string {
	return leastToMostHeader + "\n\n" + base + "\n\n" + leastToMostFooter
}

func analogical(base string, in Input) string {
	var b strings.Builder
	b.WriteString(analogicalHeader)
	if analogies := in.Template.Analogies; len(analogies) > 0 {
		b.WriteString(analogicalListIntro)
		for i, analogy := range analogies {
			fmt.Fprintf(&b, "## Analogy %d\n%s\n\n", i+1, analogy)
		}
	} else {
		b.WriteString(analogicalGenericScaffold)
	}
	b.WriteString(analogicalSolveHeader)
	b.WriteString(base)
	b.WriteString("\n\n")
	b.WriteString(analogicalFooter)
	return b.String()
}

func directionalStimulus(base string, in Input) string {
	var b strings.Builder
	b.WriteString(stimulusHeader)
	if hints := in.Template.StimulusHints; len(hints) > 0 {
		b.WriteString(stimulusListIntro)
		fmt.Fprintf(&b, "**Hints**: %s\n\n", strings.Join(hints, ", "))
	} else {
		b.WriteString(stimulusGenericHints)
	}
	b.WriteString(base)
	b.WriteString("\n\n")
	b.WriteString(stimulusFooter)
	return b.String()
}

func metaPrompting(base string, _ Input) string {
	return metaPromptingHeader + "\n" + base + "\n\n" + metaPromptingFooter
}

func activePrompt(base string, _ Input) string {
	return activePromptHeader + "\n\n" + base
}
