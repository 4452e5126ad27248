// Package catalog holds the prompt template registry: the built-in templates
// embedded in templates.yaml, optionally overlaid with user templates loaded
// from a directory.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/roberthamel/optiprompt/internal/prompt"
)

//go:embed templates.yaml
var builtin []byte

// ErrNotFound is returned when no template has the requested id.
var ErrNotFound = errors.New("template not found")

// DefaultTemplateID is used when a request names no template.
const DefaultTemplateID = "general-basic"

var categoryNames = map[prompt.Category]string{
	prompt.CategoryGeneral:        "General",
	prompt.CategoryAnalysis:       "Analysis",
	prompt.CategoryCreative:       "Creative",
	prompt.CategoryProblemSolving: "Problem solving",
	prompt.CategoryLearning:       "Learning",
	prompt.CategoryCoding:         "Coding",
	prompt.CategoryBusiness:       "Business",
	prompt.CategoryResearch:       "Research",
}

// CategoryName returns the display name for c.
func CategoryName(c prompt.Category) string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return string(c)
}

// Registry is an immutable, ordered set of templates. All accessors return
// copies, so callers may modify what they receive.
type Registry struct {
	order []string
	byID  map[string]prompt.Template
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the registry of built-in templates.
func Default() *Registry {
	defaultOnce.Do(func() {
		templates, err := Parse(builtin)
		if err != nil {
			panic(fmt.Sprintf("catalog: invalid built-in templates: %v", err))
		}
		defaultRegistry, err = New(templates)
		if err != nil {
			panic(fmt.Sprintf("catalog: invalid built-in templates: %v", err))
		}
	})
	return defaultRegistry
}

// New builds a registry from templates, keeping their order. Later entries
// with an id already present replace the earlier one in place.
func New(templates []prompt.Template) (*Registry, error) {
	r := &Registry{byID: make(map[string]prompt.Template, len(templates))}
	for i := range templates {
		if err := r.add(templates[i]); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *Registry) add(t prompt.Template) error {
	if err := Validate(&t); err != nil {
		return err
	}
	if _, exists := r.byID[t.ID]; !exists {
		r.order = append(r.order, t.ID)
	}
	r.byID[t.ID] = clone(t)
	return nil
}

// Validate checks the fields the composer relies on.
func Validate(t *prompt.Template) error {
	if strings.TrimSpace(t.ID) == "" {
		return fmt.Errorf("template id cannot be empty")
	}
	if t.Template == "" {
		return fmt.Errorf("template %s: template text cannot be empty", t.ID)
	}
	if !slices.Contains(prompt.Categories, t.Category) {
		return fmt.Errorf("template %s: unknown category %q", t.ID, t.Category)
	}
	for _, tq := range t.Techniques {
		if !tq.Valid() {
			return fmt.Errorf("template %s: unknown technique %q", t.ID, tq)
		}
	}
	if t.QualityThreshold < 0 || t.QualityThreshold > 100 {
		return fmt.Errorf("template %s: quality threshold %d out of range 0-100", t.ID, t.QualityThreshold)
	}
	return nil
}

// ByID returns the template with the given id.
func (r *Registry) ByID(id string) (prompt.Template, error) {
	t, ok := r.byID[id]
	if !ok {
		return prompt.Template{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return clone(t), nil
}

// ByCategory returns the templates in category c, in registry order.
func (r *Registry) ByCategory(c prompt.Category) []prompt.Template {
	var out []prompt.Template
	for _, id := range r.order {
		if t := r.byID[id]; t.Category == c {
			out = append(out, clone(t))
		}
	}
	return out
}

// All returns every template in registry order.
func (r *Registry) All() []prompt.Template {
	out := make([]prompt.Template, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, clone(r.byID[id]))
	}
	return out
}

// Len returns the number of templates.
func (r *Registry) Len() int { return len(r.order) }

// Parse decodes a YAML document holding either a single template or a list.
func Parse(data []byte) ([]prompt.Template, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}
	if len(node.Content) == 0 {
		return nil, nil
	}
	doc := node.Content[0]
	switch doc.Kind {
	case yaml.SequenceNode:
		var list []prompt.Template
		if err := doc.Decode(&list); err != nil {
			return nil, fmt.Errorf("decoding template list: %w", err)
		}
		return list, nil
	case yaml.MappingNode:
		var t prompt.Template
		if err := doc.Decode(&t); err != nil {
			return nil, fmt.Errorf("decoding template: %w", err)
		}
		return []prompt.Template{t}, nil
	default:
		return nil, fmt.Errorf("templates must be a mapping or a list, got line %d", doc.Line)
	}
}

// LoadDir returns a registry holding the built-in templates overlaid with
// every *.yaml and *.yml file in dir, read in name order. A template whose id
// matches a built-in replaces it. A missing dir yields the built-ins.
func LoadDir(dir string) (*Registry, error) {
	base := Default()
	r := &Registry{
		order: slices.Clone(base.order),
		byID:  make(map[string]prompt.Template, len(base.byID)),
	}
	for id, t := range base.byID {
		r.byID[id] = t
	}
	if dir == "" {
		return r, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return r, nil
		}
		return nil, fmt.Errorf("reading templates dir: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		ext := filepath.Ext(e.Name())
		if e.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		templates, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		for _, t := range templates {
			if err := r.add(t); err != nil {
				return nil, fmt.Errorf("%s: %w", path, err)
			}
		}
	}
	return r, nil
}

func clone(t prompt.Template) prompt.Template {
	t.Examples = slices.Clone(t.Examples)
	t.Techniques = slices.Clone(t.Techniques)
	t.ChainOfThoughtSteps = slices.Clone(t.ChainOfThoughtSteps)
	t.ExpertRoles = slices.Clone(t.ExpertRoles)
	t.TreeOfThoughtBranches = slices.Clone(t.TreeOfThoughtBranches)
	t.KnowledgeBase = slices.Clone(t.KnowledgeBase)
	t.Analogies = slices.Clone(t.Analogies)
	t.StimulusHints = slices.Clone(t.StimulusHints)
	if t.ChainSteps != nil {
		steps := make([]prompt.ChainStep, len(t.ChainSteps))
		for i, s := range t.ChainSteps {
			s.DependsOn = slices.Clone(s.DependsOn)
			steps[i] = s
		}
		t.ChainSteps = steps
	}
	if t.FewShotExamples != nil {
		examples := make([]prompt.FewShotExample, len(t.FewShotExamples))
		for i, ex := range t.FewShotExamples {
			for _, name := range prompt.SlotNames {
				ex.Input.SetSlot(name, slices.Clone(ex.Input.Slot(name)))
			}
			examples[i] = ex
		}
		t.FewShotExamples = examples
	}
	return t
}
