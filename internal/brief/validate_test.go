package brief

import (
	"strings"
	"testing"

	"github.com/roberthamel/optiprompt/internal/prompt"
)

func form(slot prompt.SlotName, value string) *prompt.FormData {
	fd := &prompt.FormData{What: []prompt.DynamicItem{{ID: "w", Value: "A valid request"}}}
	fd.SetSlot(slot, []prompt.DynamicItem{{ID: "1", Value: value}})
	return fd
}

func TestValidateForm(t *testing.T) {
	tests := []struct {
		name string
		form *prompt.FormData
		want []string
	}{
		{"valid", form(prompt.SlotWho, "Jane Doe, CTO"), nil},
		{"hangul who", form(prompt.SlotWho, "개발팀 리더"), nil},
		{"missing what", &prompt.FormData{}, []string{"what is required"}},
		{"short what", form(prompt.SlotWhat, "abcd"), []string{"what is too short (4 characters, minimum 5)"}},
		{"long what", form(prompt.SlotWhat, strings.Repeat("x", 201)), []string{"what is too long (201 characters, maximum 200)"}},
		{"who characters", form(prompt.SlotWho, "R2-D2"), []string{"who contains unsupported characters"}},
		{"long who", form(prompt.SlotWho, strings.Repeat("a", 101)), []string{"who is too long (101 characters, maximum 100)"}},
		{"long when", form(prompt.SlotWhen, strings.Repeat("a", 101)), []string{"when is too long (101 characters, maximum 100)"}},
		{"why at limit", form(prompt.SlotWhy, strings.Repeat("a", 150)), nil},
		{"long how", form(prompt.SlotHow, strings.Repeat("가", 151)), []string{"how is too long (151 characters, maximum 150)"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateForm(tt.form)
			if strings.Join(got, "|") != strings.Join(tt.want, "|") {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidateForm_JoinedText(t *testing.T) {
	fd := &prompt.FormData{
		Who:  []prompt.DynamicItem{{Value: "Alice"}, {Value: "Bob"}},
		What: []prompt.DynamicItem{{Value: "ab"}, {Value: "cd"}},
	}
	// "ab, cd" is six characters, so the joined what passes the minimum.
	if got := ValidateForm(fd); len(got) != 0 {
		t.Errorf("got %q, want no warnings", got)
	}
}
