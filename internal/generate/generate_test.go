package generate

import (
	"strings"
	"testing"

	"github.com/roberthamel/optiprompt/internal/prompt"
)

func item(v string) prompt.DynamicItem { return prompt.DynamicItem{ID: v, Value: v} }

func testTemplate() *prompt.Template {
	return &prompt.Template{
		ID:         "test",
		Name:       "Test",
		Category:   prompt.CategoryGeneral,
		Template:   "Who={who} What={what} When={when} Where={where} Why={why} How={how}",
		Techniques: []prompt.Technique{prompt.ZeroShot, prompt.ChainOfThought},
	}
}

func testForm() *prompt.FormData {
	return &prompt.FormData{
		Who:  []prompt.DynamicItem{item("Alice")},
		What: []prompt.DynamicItem{item("Migrate a service")},
	}
}

func TestBase_PlaceholderSubstitution(t *testing.T) {
	in := Input{Form: testForm(), Template: testTemplate(), Options: prompt.DefaultOptions()}
	got := Base(in)

	if !strings.Contains(got, "Who=Alice What=Migrate a service When= Where= Why= How=") {
		t.Errorf("placeholders not substituted:\n%s", got)
	}
	if !strings.Contains(got, "- **Who**: Alice\n") || !strings.Contains(got, "- **What**: Migrate a service\n") {
		t.Error("detail block should list who and what")
	}
	for _, label := range []string{"When", "Where", "Why", "How"} {
		if strings.Contains(got, "- **"+label+"**") {
			t.Errorf("detail block should omit empty slot %s", label)
		}
	}
}

func TestBase_MultiItemJoin(t *testing.T) {
	fd := &prompt.FormData{What: []prompt.DynamicItem{item("A"), item("B")}}
	got := Base(Input{Form: fd, Template: testTemplate()})
	if !strings.Contains(got, "What=A, B") {
		t.Error("template should contain comma-joined items")
	}
	if !strings.Contains(got, "- **What**: A, B") {
		t.Error("detail block should contain comma-joined items")
	}
}

func TestBase_NoDetailsWhenEmpty(t *testing.T) {
	got := Base(Input{Form: &prompt.FormData{}, Template: testTemplate()})
	if strings.Contains(got, "## Details") {
		t.Error("empty form should not render a detail block")
	}
}

func TestBase_SectionOrder(t *testing.T) {
	tmpl := testTemplate()
	tmpl.Examples = []string{"first example", "second example"}
	got := Base(Input{Form: testForm(), Template: tmpl})

	order := []string{"<role>", "<objective>", "<constraints>", "<examples>", "<thinking_process>", "<output_format>", "<execution>"}
	last := -1
	for _, tag := range order {
		idx := strings.Index(got, tag)
		if idx < 0 {
			t.Fatalf("missing section %s", tag)
		}
		if idx < last {
			t.Errorf("section %s out of order", tag)
		}
		last = idx
	}
	if !strings.Contains(got, "<example_2>\nsecond example\n</example_2>") {
		t.Error("examples should be wrapped with index markers")
	}
}

func TestBase_ExamplesOmitted(t *testing.T) {
	got := Base(Input{Form: testForm(), Template: testTemplate()})
	if strings.Contains(got, "<examples>") {
		t.Error("examples section should be omitted without template examples")
	}
}

func TestBase_Persona(t *testing.T) {
	tests := []struct {
		name   string
		system string
		role   string
		want   string
	}{
		{"system prompt wins", "You are a tester.", "architect", "You are a tester."},
		{"expert role", "", "architect", "You are acting as architect"},
		{"generic", "", "", defaultPersona},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl := testTemplate()
			tmpl.SystemPrompt = tt.system
			got := Base(Input{Form: testForm(), Template: tmpl, Options: prompt.Options{ExpertRole: tt.role}})
			if !strings.HasPrefix(got, "<role>\n"+tt.want) {
				t.Errorf("role section = %q, want prefix %q", got[:60], tt.want)
			}
		})
	}
}

func TestBase_MetaInstructions(t *testing.T) {
	tmpl := testTemplate()
	tmpl.MetaInstructions = "Think about costs."
	got := Base(Input{Form: testForm(), Template: tmpl})
	if !strings.Contains(got, "<constraints>\nThink about costs.\n- Provide only accurate") {
		t.Error("meta instructions should lead the constraints section")
	}
}

func TestFormatGuide(t *testing.T) {
	tests := []struct {
		format prompt.OutputFormat
		want   string
	}{
		{prompt.FormatJSON, `"confidence_level"`},
		{prompt.FormatMarkdown, "markdown"},
		{prompt.FormatStructured, "📋 Summary"},
		{prompt.FormatText, "well-organized text"},
		{"", "well-organized text"},
		{"yaml", "well-organized text"},
	}
	for _, tt := range tests {
		if got := FormatGuide(tt.format); !strings.Contains(got, tt.want) {
			t.Errorf("FormatGuide(%q) missing %q", tt.format, tt.want)
		}
	}
}

func TestCompose_ZeroShotIsBase(t *testing.T) {
	fd, tmpl := testForm(), testTemplate()
	opts := prompt.DefaultOptions()
	want := Base(Input{Form: fd, Template: tmpl, Options: opts})
	if got := Compose(fd, tmpl, opts); got != want {
		t.Error("zero-shot compose should equal the base prompt")
	}

	for _, tq := range []prompt.Technique{prompt.MultimodalCoT, "unknown", ""} {
		opts.Technique = tq
		if got := Compose(fd, tmpl, opts); got != want {
			t.Errorf("technique %q should be a no-op", tq)
		}
	}
}

func TestCompose_Deterministic(t *testing.T) {
	opts := prompt.Options{
		Technique:           prompt.PromptChaining,
		Reasoning:           true,
		DiversityBoost:      true,
		IterativeRefinement: true,
		MaxTokens:           50,
		OutputFormat:        prompt.FormatJSON,
	}
	a := Compose(testForm(), testTemplate(), opts)
	b := Compose(testForm(), testTemplate(), opts)
	if a != b {
		t.Error("compose should be deterministic")
	}
}

func TestCompose_NilInputs(t *testing.T) {
	got := Compose(nil, nil, prompt.Options{Technique: prompt.ExpertPrompting})
	if got == "" {
		t.Error("compose should always produce text")
	}
}

func TestCompose_StepByStepNotDuplicated(t *testing.T) {
	opts := prompt.Options{Technique: prompt.StepByStep, IncludeStepByStep: true}
	got := Compose(testForm(), testTemplate(), opts)
	if strings.Contains(got, stepByStepAddendum) {
		t.Error("step-by-step addendum should be skipped for the step-by-step technique")
	}
	if strings.Count(got, "**STEP 1") != 1 {
		t.Error("step-by-step scaffold should appear once")
	}

	opts.Technique = prompt.ChainOfThought
	got = Compose(testForm(), testTemplate(), opts)
	if strings.Count(got, stepByStepAddendum) != 1 {
		t.Error("step-by-step addendum should be appended once for other techniques")
	}
}

func TestCompose_StageOrder(t *testing.T) {
	opts := prompt.Options{
		Technique:           prompt.ZeroShot,
		IncludeStepByStep:   true,
		Reasoning:           true,
		OutputFormat:        prompt.FormatMarkdown,
		IterativeRefinement: true,
		DiversityBoost:      true,
		MaxTokens:           10,
	}
	want := []string{"step_by_step", "reasoning", "output_format", "iterative_refinement", "diversity_boost", "token_limit"}
	if got := EnabledStages(opts); strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("EnabledStages = %v, want %v", got, want)
	}

	got := Compose(testForm(), testTemplate(), opts)
	if !strings.HasPrefix(got, refinementHeader) {
		t.Error("iterative refinement should wrap the prompt")
	}
	markers := []string{
		stepByStepAddendum,
		"<advanced_reasoning>",
		formatAddenda["markdown"],
		"**Improved final answer**",
		"## Diversity guidelines",
		"## Response length limit",
	}
	last := -1
	for _, m := range markers {
		idx := strings.Index(got, m)
		if idx < 0 {
			t.Fatalf("missing %q", m)
		}
		if idx < last {
			t.Errorf("%q out of order", m)
		}
		last = idx
	}
}

func TestCompose_TextFormatHasNoAddendum(t *testing.T) {
	for _, f := range []prompt.OutputFormat{"", prompt.FormatText} {
		if names := EnabledStages(prompt.Options{OutputFormat: f}); len(names) != 0 {
			t.Errorf("format %q enabled stages %v", f, names)
		}
	}
	got := Compose(testForm(), testTemplate(), prompt.Options{OutputFormat: prompt.FormatJSON})
	if !strings.Contains(got, `"summary"`) || !strings.HasSuffix(got, formatAddenda["json"]) {
		t.Error("json format should add both the section and the addendum")
	}
}

func TestApplyTokenLimit(t *testing.T) {
	p := strings.Repeat("a", 400) // 100 tokens

	if got := ApplyTokenLimit(p, 100); got != p {
		t.Error("prompt within budget should be unchanged")
	}
	if got := ApplyTokenLimit(p, 0); got != p {
		t.Error("zero budget should be ignored")
	}

	got := ApplyTokenLimit(p, 50)
	if !strings.HasPrefix(got, p) {
		t.Fatal("token limit must not truncate existing text")
	}
	if !strings.Contains(got, "at most 50 tokens") {
		t.Error("directive should state the token ceiling")
	}
	// floor(400 * 50/100 * 0.8 / 4) = 40
	if !strings.Contains(got, "about 40 words") {
		t.Errorf("directive should state the target word count, got %q", got[len(p):])
	}
}
