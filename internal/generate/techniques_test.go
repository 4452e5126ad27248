package generate

import (
	"fmt"
	"regexp"
	"strings"
	"testing"

	"github.com/roberthamel/optiprompt/internal/prompt"
)

const base = "BASE PROMPT"

func input(tmpl *prompt.Template, opts prompt.Options) Input {
	return Input{Form: testForm(), Template: tmpl, Options: opts}
}

func TestEveryTechniqueHasBehavior(t *testing.T) {
	noop := map[prompt.Technique]bool{prompt.ZeroShot: true, prompt.MultimodalCoT: true}
	for _, tq := range prompt.Techniques {
		if HasTransform(tq) == noop[tq] {
			t.Errorf("technique %s: HasTransform = %v", tq, HasTransform(tq))
		}
	}
}

func TestTransformsKeepBase(t *testing.T) {
	tmpl := testTemplate()
	tmpl.FewShotExamples = []prompt.FewShotExample{{Output: "out"}}
	for tq := range transforms {
		got := ApplyTechnique(tq, base, input(tmpl, prompt.Options{Technique: tq}))
		if !strings.Contains(got, base) {
			t.Errorf("technique %s dropped the base prompt", tq)
		}
		if got == base {
			t.Errorf("technique %s did not change the prompt", tq)
		}
	}
}

func TestFewShot(t *testing.T) {
	tmpl := testTemplate()
	if got := ApplyTechnique(prompt.FewShot, base, input(tmpl, prompt.Options{})); got != base {
		t.Error("few-shot without examples should be a no-op")
	}

	tmpl.FewShotExamples = []prompt.FewShotExample{
		{
			Input:     prompt.FormData{What: []prompt.DynamicItem{item("Programming basics")}, Who: []prompt.DynamicItem{item("Student")}},
			Output:    "Explain variables with analogies",
			Reasoning: "Beginners need concrete analogies",
		},
		{Input: prompt.FormData{How: []prompt.DynamicItem{item("A"), item("B")}}, Output: "second"},
	}
	got := ApplyTechnique(prompt.FewShot, base, input(tmpl, prompt.Options{}))
	for _, want := range []string{
		"Example 1:\nInput: Who: Student, What: Programming basics\nOutput: Explain variables with analogies\nReasoning: Beginners need concrete analogies\n",
		"Example 2:\nInput: How: A, B\nOutput: second\n\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("few-shot output missing %q", want)
		}
	}
	if !strings.HasSuffix(got, base) {
		t.Error("few-shot should end with the base prompt")
	}
}

func TestChainOfThought(t *testing.T) {
	got := ApplyTechnique(prompt.ChainOfThought, base, input(testTemplate(), prompt.Options{}))
	if !strings.HasPrefix(got, base) || !strings.Contains(got, "5. **Verify the result**") || !strings.HasSuffix(got, "</reasoning>") {
		t.Error("chain-of-thought should append the 5-step scaffold and reasoning directive")
	}
}

func TestTreeOfThought(t *testing.T) {
	tmpl := testTemplate()
	got := ApplyTechnique(prompt.TreeOfThought, base, input(tmpl, prompt.Options{}))
	if strings.Count(got, "### Level ") != 3 {
		t.Error("default depth should be 3")
	}
	if strings.Contains(got, "## Branches to explore") {
		t.Error("branch list should be omitted without template branches")
	}

	tmpl.TreeOfThoughtBranches = []string{"quantitative", "qualitative"}
	got = ApplyTechnique(prompt.TreeOfThought, base, input(tmpl, prompt.Options{TreeDepth: 5}))
	if strings.Count(got, "### Level ") != 5 {
		t.Error("depth option should control the level count")
	}
	if !strings.Contains(got, "- Branch 2: qualitative\n") {
		t.Error("branches should be listed")
	}
	if strings.Index(got, "## Backtracking") > strings.Index(got, base) {
		t.Error("base prompt should follow the exploration scaffold")
	}
}

func TestSelfConsistency(t *testing.T) {
	got := ApplyTechnique(prompt.SelfConsistency, base, input(testTemplate(), prompt.Options{}))
	if strings.Count(got, base) != 3 {
		t.Errorf("default paths should repeat base 3 times, got %d", strings.Count(got, base))
	}
	got = ApplyTechnique(prompt.SelfConsistency, base, input(testTemplate(), prompt.Options{ConsistencyPaths: 5}))
	if strings.Count(got, base) != 5 || !strings.Contains(got, "## Reasoning path 5\n") {
		t.Error("consistency paths option should control repetitions")
	}
	if !strings.Contains(got, "## Consistency check and final answer") {
		t.Error("missing reconciliation instruction")
	}
}

func TestExpertPrompting_Role(t *testing.T) {
	tmpl := testTemplate()
	tests := []struct {
		name  string
		roles []string
		role  string
		want  string
	}{
		{"option wins", []string{"analyst"}, "architect", "As architect,"},
		{"template role", []string{"analyst", "consultant"}, "", "As analyst,"},
		{"generic", nil, "", "As " + genericExpertRole + ","},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl.ExpertRoles = tt.roles
			got := ApplyTechnique(prompt.ExpertPrompting, base, input(tmpl, prompt.Options{ExpertRole: tt.role}))
			if !strings.Contains(got, tt.want) {
				t.Errorf("expert persona missing %q", tt.want)
			}
			if !strings.HasSuffix(got, "</expert_deliverables>") {
				t.Error("expert prompting should end with deliverables")
			}
		})
	}
}

func TestRAG(t *testing.T) {
	tmpl := testTemplate()
	got := ApplyTechnique(prompt.RAG, base, input(tmpl, prompt.Options{}))
	if !strings.Contains(got, "**Phase 1: Search for relevant knowledge**") || !strings.HasSuffix(got, ragCitation) {
		t.Error("rag without knowledge base should use the generic scaffold")
	}

	tmpl.KnowledgeBase = []string{"benchmarks", "market data"}
	got = ApplyTechnique(prompt.RAG, base, input(tmpl, prompt.Options{}))
	if !strings.Contains(got, "## Reference 2\nmarket data\n") {
		t.Error("knowledge base entries should be numbered")
	}
	if !strings.Contains(got, "must cite the sources") || !strings.HasSuffix(got, base) {
		t.Error("rag with knowledge base should require citations before the base prompt")
	}
}

func TestReAct(t *testing.T) {
	got := ApplyTechnique(prompt.ReAct, base, input(testTemplate(), prompt.Options{}))
	if strings.Index(got, "**Final Answer**") > strings.Index(got, base) {
		t.Error("loop template should precede the base prompt")
	}
}

func TestPromptChaining_ExplicitSteps(t *testing.T) {
	tmpl := testTemplate()
	tmpl.ChainSteps = []prompt.ChainStep{
		{ID: "define", Prompt: "Define the problem."},
		{ID: "analyze", Prompt: "Find root causes.", DependsOn: []string{"define"}},
		{ID: "plan", Prompt: "Plan.", DependsOn: []string{"define", "analyze"}},
	}
	got := ApplyTechnique(prompt.PromptChaining, base, input(tmpl, prompt.Options{ChainLength: 10}))
	for _, want := range []string{
		"## Step 1: define\nDefine the problem.\n\n## Step 2",
		"## Step 2: analyze\nFind root causes.\n\n*This step uses the results of: define*",
		"*This step uses the results of: define, analyze*",
		"## Final integration\n" + base,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("explicit chain missing %q", want)
		}
	}
	if strings.Count(got, "## Step ") != 3 {
		t.Error("explicit steps should ignore chain length")
	}
}

func TestPromptChaining_SynthesizedSteps(t *testing.T) {
	got := ApplyTechnique(prompt.PromptChaining, base, input(testTemplate(), prompt.Options{}))
	if n := len(regexp.MustCompile(`(?m)^## Step \d+: `).FindAllString(got, -1)); n != 4 {
		t.Errorf("default chain should have 4 steps, got %d", n)
	}
	if !strings.Contains(got, `Analyze "Migrate a service" in depth`) {
		t.Error("first step should quote the what slot")
	}
	if strings.Count(got, chainReuseDirective) != 3 {
		t.Error("every step after the first should reuse prior results")
	}

	empty := Input{Form: &prompt.FormData{}, Template: testTemplate()}
	got = ApplyTechnique(prompt.PromptChaining, base, empty)
	if !strings.Contains(got, "Analyze the given problem in depth") {
		t.Error("empty what should fall back to the generic context")
	}
}

func TestPromptChaining_ChainLengthFallback(t *testing.T) {
	got := ApplyTechnique(prompt.PromptChaining, base, input(testTemplate(), prompt.Options{ChainLength: 10}))
	headers := regexp.MustCompile(`(?m)^## Step (\d+): (.*)$`).FindAllStringSubmatch(got, -1)
	if len(headers) != 10 {
		t.Fatalf("got %d step sections, want 10", len(headers))
	}
	for i, h := range headers {
		if h[1] != fmt.Sprint(i+1) {
			t.Errorf("step %d numbered %s", i+1, h[1])
		}
	}
	if headers[7][2] != "Execution planning" {
		t.Errorf("step 8 title = %q", headers[7][2])
	}
	if headers[8][2] != "Extended analysis 1" || headers[9][2] != "Extended analysis 2" {
		t.Errorf("steps 9-10 titles = %q, %q", headers[8][2], headers[9][2])
	}
	if strings.Count(got, chainExtendedDescription) != 2 {
		t.Error("extended steps should use the generic description")
	}
	if !strings.Contains(got, "all 10 steps above") {
		t.Error("footer should mention the chain length")
	}
}

func TestChainStepTitle(t *testing.T) {
	if ChainStepTitle(1) != "Problem analysis and understanding" {
		t.Error("step 1 title")
	}
	if ChainStepTitle(12) != "Extended analysis 4" {
		t.Errorf("ChainStepTitle(12) = %q", ChainStepTitle(12))
	}
}

func TestAnalogical(t *testing.T) {
	tmpl := testTemplate()
	got := ApplyTechnique(prompt.Analogical, base, input(tmpl, prompt.Options{}))
	if !strings.Contains(got, "**Step 1: Find analogous cases**") {
		t.Error("generic analogy scaffold expected")
	}

	tmpl.Analogies = []string{"nature", "other industries"}
	got = ApplyTechnique(prompt.Analogical, base, input(tmpl, prompt.Options{}))
	if !strings.Contains(got, "## Analogy 2\nother industries\n") || strings.Contains(got, "Find analogous cases") {
		t.Error("template analogies should replace the generic scaffold")
	}
	if !strings.Contains(got, analogicalSolveHeader+base) {
		t.Error("both paths should converge on the solve-by-analogy block")
	}
}

func TestDirectionalStimulus(t *testing.T) {
	tmpl := testTemplate()
	got := ApplyTechnique(prompt.DirectionalStimulus, base, input(tmpl, prompt.Options{}))
	if !strings.Contains(got, stimulusGenericHints) {
		t.Error("generic hints expected")
	}
	tmpl.StimulusHints = []string{"paradigm shift", "user-centered"}
	got = ApplyTechnique(prompt.DirectionalStimulus, base, input(tmpl, prompt.Options{}))
	if !strings.Contains(got, "**Hints**: paradigm shift, user-centered") {
		t.Error("template hints should be joined")
	}
	if !strings.HasSuffix(got, stimulusFooter) {
		t.Error("missing hint directive")
	}
}

func TestWrappingScaffolds(t *testing.T) {
	tests := []struct {
		technique prompt.Technique
		before    string
	}{
		{prompt.GeneratedKnowledge, "**Phase 2: Apply the generated knowledge**"},
		{prompt.LeastToMost, "**Phase 4: Integrate everything**"},
		{prompt.MetaPrompting, "**The actual task**"},
		{prompt.ActivePrompt, "**Final selection**"},
		{prompt.Reflection, ""},
		{prompt.StepByStep, ""},
	}
	for _, tt := range tests {
		got := ApplyTechnique(tt.technique, base, input(testTemplate(), prompt.Options{}))
		if tt.before == "" {
			if !strings.HasPrefix(got, base) {
				t.Errorf("%s should append to the base prompt", tt.technique)
			}
			continue
		}
		if i := strings.Index(got, tt.before); i < 0 || i > strings.Index(got, base) {
			t.Errorf("%s: %q should precede the base prompt", tt.technique, tt.before)
		}
	}
}
