// Package generate composes 5W1H form data and a catalog template into a
// structured prompt, reshaped by one prompting technique and a fixed
// sequence of optional post-processing stages.
package generate

import "github.com/roberthamel/optiprompt/internal/prompt"

// Input bundles the read-only arguments shared by every composition step.
type Input struct {
	Form     *prompt.FormData
	Template *prompt.Template
	Options  prompt.Options
}

// Compose builds the base prompt, applies the selected technique and then
// every enabled stage in order. It never fails: missing optional template
// data falls back to generic text.
func Compose(fd *prompt.FormData, tmpl *prompt.Template, opts prompt.Options) string {
	in := Input{Form: fd, Template: tmpl, Options: opts}
	if in.Form == nil {
		in.Form = &prompt.FormData{}
	}
	if in.Template == nil {
		in.Template = &prompt.Template{}
	}

	p := ApplyTechnique(opts.Technique, Base(in), in)
	for _, s := range Stages {
		if s.Enabled(opts) {
			p = s.Apply(p, in)
		}
	}
	return p
}
