package brief

import (
	"fmt"
	"regexp"

	"github.com/roberthamel/optiprompt/internal/prompt"
	"github.com/roberthamel/optiprompt/internal/tokens"
)

// Rule bounds one slot's joined text. Zero limits are unchecked.
type Rule struct {
	MinLength int
	MaxLength int
	Required  bool
	Pattern   *regexp.Regexp
}

// Rules are the per-slot input limits.
var Rules = map[prompt.SlotName]Rule{
	prompt.SlotWho:   {MaxLength: 100, Pattern: regexp.MustCompile(`^[a-zA-Z가-힣\s\-.,]*$`)},
	prompt.SlotWhat:  {MinLength: 5, MaxLength: 200, Required: true},
	prompt.SlotWhen:  {MaxLength: 100},
	prompt.SlotWhere: {MaxLength: 100},
	prompt.SlotWhy:   {MaxLength: 150},
	prompt.SlotHow:   {MaxLength: 150},
}

// ValidateForm applies Rules to every slot in canonical order.
func ValidateForm(fd *prompt.FormData) []string {
	var warnings []string
	for _, name := range prompt.SlotNames {
		rule := Rules[name]
		text := fd.Text(name)
		n := tokens.Length(text)
		switch {
		case text == "" && rule.Required:
			warnings = append(warnings, fmt.Sprintf("%s is required", name))
			continue
		case text == "":
			continue
		case rule.MinLength > 0 && n < rule.MinLength:
			warnings = append(warnings, fmt.Sprintf("%s is too short (%d characters, minimum %d)", name, n, rule.MinLength))
		case rule.MaxLength > 0 && n > rule.MaxLength:
			warnings = append(warnings, fmt.Sprintf("%s is too long (%d characters, maximum %d)", name, n, rule.MaxLength))
		}
		if rule.Pattern != nil && !rule.Pattern.MatchString(text) {
			warnings = append(warnings, fmt.Sprintf("%s contains unsupported characters", name))
		}
	}
	return warnings
}
