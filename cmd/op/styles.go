package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/roberthamel/optiprompt/internal/prompt"
	"github.com/roberthamel/optiprompt/internal/quality"
)

var (
	red    = lipgloss.AdaptiveColor{Light: "#FE5F86", Dark: "#FE5F86"}
	indigo = lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7571F9"}
	green  = lipgloss.AdaptiveColor{Light: "#02BA84", Dark: "#02BF87"}
	yellow = lipgloss.AdaptiveColor{Light: "#FFC107", Dark: "#FFD54F"}
	gray   = lipgloss.AdaptiveColor{Light: "#9E9E9E", Dark: "#BDBDBD"}
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(indigo).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(gray)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().
			Padding(0, 1)
)

var levelColors = map[prompt.Level]lipgloss.AdaptiveColor{
	prompt.LevelLow:       red,
	prompt.LevelMedium:    yellow,
	prompt.LevelHigh:      green,
	prompt.LevelExcellent: indigo,
}

func levelStyle(l prompt.Level) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(levelColors[l]).Bold(true)
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(mutedStyle).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

// printSummary writes the one-line score followed by the suggestions.
func printSummary(w io.Writer, m prompt.QualityMetrics, tokens int) {
	fmt.Fprintf(w, "%s %s %s\n",
		titleStyle.Render("Quality"),
		levelStyle(m.Level).Render(fmt.Sprintf("%d/100 (%s)", m.Total, m.Level)),
		mutedStyle.Render(fmt.Sprintf("expertise %s, ~%d tokens", m.ExpertiseLevel, tokens)),
	)
	for _, s := range m.Suggestions {
		fmt.Fprintf(w, "  - %s\n", s)
	}
}

// printBreakdown writes every sub-score, the suggestions and the
// optimization hints.
func printBreakdown(w io.Writer, m prompt.QualityMetrics, opts []quality.Optimization) {
	t := newTable("Dimension", "Score", "Max")
	rows := []struct {
		name  string
		score float64
		max   int
	}{
		{"completeness", m.Completeness, 25},
		{"clarity", m.Clarity, 25},
		{"specificity", m.Specificity, 25},
		{"structure", m.Structure, 25},
		{"reasoning", m.Reasoning, 20},
		{"creativity", m.Creativity, 20},
		{"coherence", m.Coherence, 20},
		{"adaptability", m.Adaptability, 20},
		{"token efficiency", m.TokenEfficiency, 20},
	}
	for _, r := range rows {
		t.Row(r.name, formatScore(r.score), fmt.Sprint(r.max))
	}

	fmt.Fprintf(w, "%s %s\n",
		titleStyle.Render("Quality"),
		levelStyle(m.Level).Render(fmt.Sprintf("%d/100 (%s)", m.Total, m.Level)),
	)
	fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf("expertise %s, techniques %s", m.ExpertiseLevel, joinTechniques(m.AppliedTechniques))))
	fmt.Fprintln(w, t.Render())

	if len(m.Suggestions) > 0 {
		fmt.Fprintln(w, titleStyle.Render("Suggestions"))
		for _, s := range m.Suggestions {
			fmt.Fprintf(w, "  - %s\n", s)
		}
	}
	if len(opts) > 0 {
		fmt.Fprintln(w, titleStyle.Render("Optimizations"))
		for _, o := range opts {
			fmt.Fprintf(w, "  - %s: %s %s\n", o.Title, o.Description,
				mutedStyle.Render(fmt.Sprintf("[%s, impact %s, %s]", o.Type, o.Impact, o.Difficulty)))
		}
	}
}

func formatScore(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

func joinTechniques(ts []prompt.Technique) string {
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = string(t)
	}
	return strings.Join(parts, ", ")
}
