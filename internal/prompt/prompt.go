package prompt

import "strings"

// DynamicItem is one free-text entry in a 5W1H slot.
type DynamicItem struct {
	ID    string `json:"id" yaml:"id"`
	Value string `json:"value" yaml:"value"`
}

// FormData is the structured who/what/when/where/why/how input.
type FormData struct {
	Who        []DynamicItem `json:"who" yaml:"who,omitempty"`
	What       []DynamicItem `json:"what" yaml:"what,omitempty"`
	When       []DynamicItem `json:"when" yaml:"when,omitempty"`
	Where      []DynamicItem `json:"where" yaml:"where,omitempty"`
	Why        []DynamicItem `json:"why" yaml:"why,omitempty"`
	How        []DynamicItem `json:"how" yaml:"how,omitempty"`
	TemplateID string        `json:"templateId" yaml:"templateId,omitempty"`
}

// SlotName identifies one of the six 5W1H slots.
type SlotName string

const (
	SlotWho   SlotName = "who"
	SlotWhat  SlotName = "what"
	SlotWhen  SlotName = "when"
	SlotWhere SlotName = "where"
	SlotWhy   SlotName = "why"
	SlotHow   SlotName = "how"
)

// SlotNames lists the slots in canonical order.
var SlotNames = []SlotName{SlotWho, SlotWhat, SlotWhen, SlotWhere, SlotWhy, SlotHow}

// Label returns the display label for a slot.
func (s SlotName) Label() string {
	switch s {
	case SlotWho:
		return "Who"
	case SlotWhat:
		return "What"
	case SlotWhen:
		return "When"
	case SlotWhere:
		return "Where"
	case SlotWhy:
		return "Why"
	case SlotHow:
		return "How"
	}
	return string(s)
}

// Slot returns the items held in the named slot.
func (fd *FormData) Slot(name SlotName) []DynamicItem {
	if fd == nil {
		return nil
	}
	switch name {
	case SlotWho:
		return fd.Who
	case SlotWhat:
		return fd.What
	case SlotWhen:
		return fd.When
	case SlotWhere:
		return fd.Where
	case SlotWhy:
		return fd.Why
	case SlotHow:
		return fd.How
	}
	return nil
}

// SetSlot replaces the items of the named slot.
func (fd *FormData) SetSlot(name SlotName, items []DynamicItem) {
	switch name {
	case SlotWho:
		fd.Who = items
	case SlotWhat:
		fd.What = items
	case SlotWhen:
		fd.When = items
	case SlotWhere:
		fd.Where = items
	case SlotWhy:
		fd.Why = items
	case SlotHow:
		fd.How = items
	}
}

// Text joins the named slot's values.
func (fd *FormData) Text(name SlotName) string {
	return JoinItems(fd.Slot(name))
}

// JoinItems renders a slot as text: empty for no items, the value verbatim
// for one item, otherwise the values comma-joined in insertion order.
func JoinItems(items []DynamicItem) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0].Value
	}
	values := make([]string, len(items))
	for i, item := range items {
		values[i] = item.Value
	}
	return strings.Join(values, ", ")
}

// Filled reports whether a slot counts as filled: it has items and the first
// item's trimmed value is non-empty.
func (fd *FormData) Filled(name SlotName) bool {
	items := fd.Slot(name)
	return len(items) > 0 && strings.TrimSpace(items[0].Value) != ""
}

// Technique is a named prompting strategy.
type Technique string

const (
	ZeroShot            Technique = "zero_shot"
	FewShot             Technique = "few_shot"
	ChainOfThought      Technique = "chain_of_thought"
	TreeOfThought       Technique = "tree_of_thought"
	SelfConsistency     Technique = "self_consistency"
	Reflection          Technique = "reflection"
	ExpertPrompting     Technique = "expert_prompting"
	StepByStep          Technique = "step_by_step"
	RAG                 Technique = "rag"
	ReAct               Technique = "react"
	PromptChaining      Technique = "prompt_chaining"
	GeneratedKnowledge  Technique = "generated_knowledge"
	LeastToMost         Technique = "least_to_most"
	Analogical          Technique = "analogical"
	DirectionalStimulus Technique = "directional_stimulus"
	MetaPrompting       Technique = "meta_prompting"
	MultimodalCoT       Technique = "multimodal_cot"
	ActivePrompt        Technique = "active_prompt"

	// DiversityBoost is not selectable; it only appears in
	// QualityMetrics.AppliedTechniques when the diversity option is set.
	DiversityBoost Technique = "diversity_boost"
)

// Techniques lists every selectable technique.
var Techniques = []Technique{
	ZeroShot, FewShot, ChainOfThought, TreeOfThought, SelfConsistency,
	Reflection, ExpertPrompting, StepByStep, RAG, ReAct, PromptChaining,
	GeneratedKnowledge, LeastToMost, Analogical, DirectionalStimulus,
	MetaPrompting, MultimodalCoT, ActivePrompt,
}

// Valid reports whether t is a selectable technique.
func (t Technique) Valid() bool {
	for _, known := range Techniques {
		if t == known {
			return true
		}
	}
	return false
}

// Category groups catalog templates.
type Category string

const (
	CategoryGeneral        Category = "general"
	CategoryAnalysis       Category = "analysis"
	CategoryCreative       Category = "creative"
	CategoryProblemSolving Category = "problem_solving"
	CategoryLearning       Category = "learning"
	CategoryCoding         Category = "coding"
	CategoryBusiness       Category = "business"
	CategoryResearch       Category = "research"
)

// Categories lists every template category.
var Categories = []Category{
	CategoryGeneral, CategoryAnalysis, CategoryCreative, CategoryProblemSolving,
	CategoryLearning, CategoryCoding, CategoryBusiness, CategoryResearch,
}

// ChainStep is one explicit step of a prompt chain. DependsOn references
// other step ids; the steps form a DAG by construction.
type ChainStep struct {
	ID        string   `json:"id" yaml:"id"`
	Prompt    string   `json:"prompt" yaml:"prompt"`
	DependsOn []string `json:"dependsOn,omitempty" yaml:"dependsOn,omitempty"`
}

// FewShotExample pairs a partial input with its expected output.
type FewShotExample struct {
	Input     FormData `json:"input" yaml:"input"`
	Output    string   `json:"output" yaml:"output"`
	Reasoning string   `json:"reasoning,omitempty" yaml:"reasoning,omitempty"`
}

// Template is an immutable catalog record. Template holds placeholder tokens
// {who} {what} {when} {where} {why} {how}; the remaining optional fields are
// consumed only by specific techniques.
type Template struct {
	ID                    string           `json:"id" yaml:"id"`
	Name                  string           `json:"name" yaml:"name"`
	Category              Category         `json:"category" yaml:"category"`
	Description           string           `json:"description,omitempty" yaml:"description,omitempty"`
	Template              string           `json:"template" yaml:"template"`
	Examples              []string         `json:"examples,omitempty" yaml:"examples,omitempty"`
	Techniques            []Technique      `json:"techniques" yaml:"techniques"`
	SystemPrompt          string           `json:"systemPrompt,omitempty" yaml:"systemPrompt,omitempty"`
	FewShotExamples       []FewShotExample `json:"fewShotExamples,omitempty" yaml:"fewShotExamples,omitempty"`
	ChainOfThoughtSteps   []string         `json:"chainOfThoughtSteps,omitempty" yaml:"chainOfThoughtSteps,omitempty"`
	ExpertRoles           []string         `json:"expertRoles,omitempty" yaml:"expertRoles,omitempty"`
	TreeOfThoughtBranches []string         `json:"treeOfThoughtBranches,omitempty" yaml:"treeOfThoughtBranches,omitempty"`
	KnowledgeBase         []string         `json:"knowledgeBase,omitempty" yaml:"knowledgeBase,omitempty"`
	ChainSteps            []ChainStep      `json:"chainSteps,omitempty" yaml:"chainSteps,omitempty"`
	Analogies             []string         `json:"analogies,omitempty" yaml:"analogies,omitempty"`
	StimulusHints         []string         `json:"stimulusHints,omitempty" yaml:"stimulusHints,omitempty"`
	MetaInstructions      string           `json:"metaInstructions,omitempty" yaml:"metaInstructions,omitempty"`
	QualityThreshold      int              `json:"qualityThreshold,omitempty" yaml:"qualityThreshold,omitempty"`
}

// Supports reports whether the template declares technique t.
func (t *Template) Supports(technique Technique) bool {
	for _, known := range t.Techniques {
		if known == technique {
			return true
		}
	}
	return false
}

// OutputFormat selects the requested answer shape.
type OutputFormat string

const (
	FormatText       OutputFormat = "text"
	FormatJSON       OutputFormat = "json"
	FormatMarkdown   OutputFormat = "markdown"
	FormatStructured OutputFormat = "structured"
)

// OutputFormats lists the known output formats.
var OutputFormats = []OutputFormat{FormatText, FormatJSON, FormatMarkdown, FormatStructured}

// Valid reports whether f is a known output format.
func (f OutputFormat) Valid() bool {
	for _, known := range OutputFormats {
		if f == known {
			return true
		}
	}
	return false
}

// Options controls composition and scoring. Zero numeric tunables mean
// "use the default"; a zero MaxTokens means no budget was requested.
type Options struct {
	Technique           Technique    `json:"technique" yaml:"technique,omitempty"`
	IncludeExamples     bool         `json:"includeExamples" yaml:"includeExamples,omitempty"`
	IncludeStepByStep   bool         `json:"includeStepByStep" yaml:"includeStepByStep,omitempty"`
	Reasoning           bool         `json:"reasoning" yaml:"reasoning,omitempty"`
	SelfConsistency     bool         `json:"selfConsistency" yaml:"selfConsistency,omitempty"`
	DiversityBoost      bool         `json:"diversityBoost" yaml:"diversityBoost,omitempty"`
	IterativeRefinement bool         `json:"iterativeRefinement" yaml:"iterativeRefinement,omitempty"`
	MaxTokens           int          `json:"maxTokens,omitempty" yaml:"maxTokens,omitempty"`
	ConsistencyPaths    int          `json:"consistencyPaths,omitempty" yaml:"consistencyPaths,omitempty"`
	TreeDepth           int          `json:"treeDepth,omitempty" yaml:"treeDepth,omitempty"`
	ChainLength         int          `json:"chainLength,omitempty" yaml:"chainLength,omitempty"`
	QualityGate         int          `json:"qualityGate,omitempty" yaml:"qualityGate,omitempty"`
	OutputFormat        OutputFormat `json:"outputFormat,omitempty" yaml:"outputFormat,omitempty"`
	ExpertRole          string       `json:"expertRole,omitempty" yaml:"expertRole,omitempty"`
}

// Defaults for the optional tunables.
const (
	DefaultConsistencyPaths = 3
	DefaultTreeDepth        = 3
	DefaultChainLength      = 4
	DefaultQualityGate      = 70
	DefaultTokenBudget      = 1000
)

// DefaultOptions returns zero-shot, text output and every flag off.
func DefaultOptions() Options {
	return Options{
		Technique:    ZeroShot,
		OutputFormat: FormatText,
	}
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

// Paths returns the number of self-consistency paths.
func (o Options) Paths() int { return orDefault(o.ConsistencyPaths, DefaultConsistencyPaths) }

// Depth returns the tree-of-thought depth.
func (o Options) Depth() int { return orDefault(o.TreeDepth, DefaultTreeDepth) }

// Chain returns the synthesized prompt-chain length.
func (o Options) Chain() int { return orDefault(o.ChainLength, DefaultChainLength) }

// Gate returns the quality gate threshold.
func (o Options) Gate() int { return orDefault(o.QualityGate, DefaultQualityGate) }

// Budget returns the token budget used for scoring.
func (o Options) Budget() int { return orDefault(o.MaxTokens, DefaultTokenBudget) }

// Level is the discrete quality band.
type Level string

const (
	LevelLow       Level = "low"
	LevelMedium    Level = "medium"
	LevelHigh      Level = "high"
	LevelExcellent Level = "excellent"
)

// Expertise estimates how advanced the chosen configuration is.
type Expertise string

const (
	Beginner     Expertise = "beginner"
	Intermediate Expertise = "intermediate"
	Advanced     Expertise = "advanced"
)

// QualityMetrics is the scorer's output. The first four sub-scores range
// 0-25, the remaining five 0-20.
type QualityMetrics struct {
	Total             int         `json:"total"`
	Completeness      float64     `json:"completeness"`
	Clarity           float64     `json:"clarity"`
	Specificity       float64     `json:"specificity"`
	Structure         float64     `json:"structure"`
	Reasoning         float64     `json:"reasoning"`
	Creativity        float64     `json:"creativity"`
	Coherence         float64     `json:"coherence"`
	Adaptability      float64     `json:"adaptability"`
	TokenEfficiency   float64     `json:"tokenEfficiency"`
	Level             Level       `json:"level"`
	ExpertiseLevel    Expertise   `json:"expertiseLevel"`
	AppliedTechniques []Technique `json:"appliedTechniques"`
	Suggestions       []string    `json:"suggestions"`
}
