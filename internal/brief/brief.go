// Package brief parses brief files: optional YAML frontmatter with the
// template id, title, tags and generation options, followed by a markdown
// body whose H1 sections (# Who, # What, ...) hold the 5W1H items.
package brief

import (
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/roberthamel/optiprompt/internal/prompt"
)

// Brief is a parsed brief file.
type Brief struct {
	Frontmatter Frontmatter
	Form        prompt.FormData
	Sections    map[string]string // non-slot H1 heading -> content
	RawBody     string
}

// Frontmatter holds the YAML header fields.
type Frontmatter struct {
	Title    string         `yaml:"title,omitempty"`
	Template string         `yaml:"template,omitempty"`
	Tags     []string       `yaml:"tags,omitempty"`
	Options  prompt.Options `yaml:"options,omitempty"`
}

// Parse reads and parses a brief file.
func Parse(path string) (*Brief, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading brief file: %w", err)
	}
	return ParseBytes(data)
}

// ParseBytes parses a brief from raw bytes. The frontmatter is optional; a
// document that does not start with --- is all body.
func ParseBytes(data []byte) (*Brief, error) {
	fm, body, err := extractFrontmatter(string(data))
	if err != nil {
		return nil, err
	}

	var frontmatter Frontmatter
	if fm != "" {
		if err := yaml.Unmarshal([]byte(fm), &frontmatter); err != nil {
			return nil, fmt.Errorf("parsing frontmatter YAML: %w", err)
		}
	}

	b := &Brief{
		Frontmatter: frontmatter,
		Sections:    make(map[string]string),
		RawBody:     body,
	}
	b.Form.TemplateID = frontmatter.Template

	for _, s := range extractSections(body) {
		name, ok := slotFor(s.heading)
		if !ok {
			b.Sections[s.heading] = s.content
			continue
		}
		b.Form.SetSlot(name, append(b.Form.Slot(name), parseItems(s.content)...))
	}
	return b, nil
}

func extractFrontmatter(content string) (string, string, error) {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "---") {
		return "", trimmed, nil
	}

	rest := trimmed[3:]
	idx := strings.Index(rest, "\n---")
	if idx < 0 {
		return "", "", fmt.Errorf("brief missing closing frontmatter delimiter (---)")
	}

	fm := strings.TrimSpace(rest[:idx])
	body := strings.TrimSpace(rest[idx+4:])
	return fm, body, nil
}

type section struct {
	heading string
	content string
}

// extractSections splits the body on H1 headings, keeping document order.
// Text before the first heading is dropped.
func extractSections(body string) []section {
	var sections []section
	if body == "" {
		return sections
	}

	var current *section
	var lines []string
	flush := func() {
		if current != nil {
			current.content = strings.TrimSpace(strings.Join(lines, "\n"))
			sections = append(sections, *current)
		}
	}

	for _, line := range strings.Split(body, "\n") {
		if strings.HasPrefix(line, "# ") {
			flush()
			current = &section{heading: strings.TrimSpace(line[2:])}
			lines = nil
			continue
		}
		lines = append(lines, line)
	}
	flush()
	return sections
}

func slotFor(heading string) (prompt.SlotName, bool) {
	h := prompt.SlotName(strings.ToLower(strings.TrimSpace(heading)))
	for _, name := range prompt.SlotNames {
		if h == name {
			return name, true
		}
	}
	return "", false
}

// parseItems turns a section into items: one per "- " or "* " bullet, with
// indented lines continuing the previous bullet. A section without bullets
// becomes a single item holding its whole text.
func parseItems(content string) []prompt.DynamicItem {
	if content == "" {
		return nil
	}
	var values []string
	bulleted := false
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "- "), strings.HasPrefix(trimmed, "* "):
			bulleted = true
			values = append(values, strings.TrimSpace(trimmed[2:]))
		case bulleted && trimmed != "" && len(values) > 0:
			values[len(values)-1] += " " + trimmed
		case !bulleted:
			values = append(values, trimmed)
		}
	}
	if !bulleted {
		values = []string{strings.TrimSpace(strings.Join(values, "\n"))}
	}

	items := make([]prompt.DynamicItem, 0, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		items = append(items, prompt.DynamicItem{ID: uuid.NewString(), Value: v})
	}
	return items
}

// Validate checks the brief for common issues, returning warnings. Warnings
// never block generation.
func (b *Brief) Validate() []string {
	warnings := ValidateForm(&b.Form)
	for heading := range b.Sections {
		warnings = append(warnings, fmt.Sprintf("unknown section ignored: # %s", heading))
	}
	opts := b.Frontmatter.Options
	if opts.Technique != "" && !opts.Technique.Valid() {
		warnings = append(warnings, fmt.Sprintf("unknown technique: %s", opts.Technique))
	}
	if opts.OutputFormat != "" && !opts.OutputFormat.Valid() {
		warnings = append(warnings, fmt.Sprintf("unknown output format: %s", opts.OutputFormat))
	}
	return warnings
}
