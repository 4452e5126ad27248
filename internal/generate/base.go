package generate

import (
	"fmt"
	"strings"

	"github.com/roberthamel/optiprompt/internal/prompt"
)

// Base assembles the structured prompt that every technique starts from:
// role, objective, constraints, examples (optional), thinking process,
// output format and execution sections, in that order.
func Base(in Input) string {
	var b strings.Builder

	b.WriteString("<role>\n")
	b.WriteString(persona(in))
	b.WriteString("\n</role>\n\n")

	b.WriteString("<objective>\n")
	b.WriteString(Objective(in.Form, in.Template))
	b.WriteString("</objective>\n\n")

	b.WriteString("<constraints>\n")
	if in.Template.MetaInstructions != "" {
		b.WriteString(in.Template.MetaInstructions)
		b.WriteString("\n")
	}
	b.WriteString(baseConstraints)
	b.WriteString("\n</constraints>\n\n")

	if len(in.Template.Examples) > 0 {
		b.WriteString("<examples>\n")
		for i, example := range in.Template.Examples {
			fmt.Fprintf(&b, "<example_%d>\n%s\n</example_%d>\n\n", i+1, example, i+1)
		}
		b.WriteString("</examples>\n\n")
	}

	b.WriteString("<thinking_process>\n")
	b.WriteString(baseThinking)
	b.WriteString("\n</thinking_process>\n\n")

	b.WriteString("<output_format>\n")
	b.WriteString(FormatGuide(in.Options.OutputFormat))
	b.WriteString("</output_format>\n\n")

	b.WriteString("<execution>\n")
	b.WriteString(baseExecution)
	b.WriteString("\n</execution>")

	return b.String()
}

func persona(in Input) string {
	switch {
	case in.Template.SystemPrompt != "":
		return in.Template.SystemPrompt
	case in.Options.ExpertRole != "":
		return fmt.Sprintf(expertPersonaFormat, in.Options.ExpertRole)
	default:
		return defaultPersona
	}
}

// Objective substitutes the six placeholders in the template string and
// appends a detail block listing the non-empty slots in canonical order.
func Objective(fd *prompt.FormData, tmpl *prompt.Template) string {
	texts := make(map[prompt.SlotName]string, len(prompt.SlotNames))
	pairs := make([]string, 0, 2*len(prompt.SlotNames))
	for _, name := range prompt.SlotNames {
		text := fd.Text(name)
		texts[name] = text
		pairs = append(pairs, "{"+string(name)+"}", text)
	}

	var b strings.Builder
	b.WriteString(strings.NewReplacer(pairs...).Replace(tmpl.Template))

	var details strings.Builder
	for _, name := range prompt.SlotNames {
		if texts[name] == "" {
			continue
		}
		fmt.Fprintf(&details, "- **%s**: %s\n", name.Label(), texts[name])
	}
	if details.Len() > 0 {
		b.WriteString("\n\n## Details\n")
		b.WriteString(details.String())
	}
	return b.String()
}

// FormatGuide returns the output-format section body. Unknown or empty
// formats get the text guidance.
func FormatGuide(format prompt.OutputFormat) string {
	switch format {
	case prompt.FormatJSON:
		return formatJSONGuide + "\n"
	case prompt.FormatMarkdown:
		return formatMarkdownGuide + "\n"
	case prompt.FormatStructured:
		return formatStructuredGuide + "\n"
	default:
		return formatTextGuide + "\n"
	}
}
