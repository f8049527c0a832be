package attempt

import (
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/careerpath/internal/assessment"
	"github.com/abhisek/careerpath/internal/catalog"
	"github.com/abhisek/careerpath/internal/ui/components"
	"github.com/abhisek/careerpath/internal/ui/theme"
)

func (s *AttemptScreen) View(width, height int) string {
	if s.startErr != "" {
		return centered(width, theme.Failed.Render(s.startErr)+"\n\n"+theme.Hint.Render("Press Enter to go back"))
	}

	v := s.engine.Snapshot()
	switch v.State {
	case assessment.StateSubmitting:
		return centered(width, "\n\n"+theme.Subtitle.Render("Scoring your answers..."))
	case assessment.StateCompleted:
		return centered(width, "\n\n"+theme.Subtitle.Render("Done."))
	case assessment.StateIdle:
		return centered(width, "\n\n"+theme.Subtitle.Render("No attempt in progress."))
	}

	q, ok := v.CurrentQuestion()
	if !ok {
		return ""
	}

	var b strings.Builder

	total := int(s.assessment.TimeLimit / time.Second)
	clock := theme.Clock(v.RemainingSeconds, total).Render(v.Clock())
	left := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).
		Render(fmt.Sprintf("  Question %s", v.Progress()))
	right := theme.Hint.Render(fmt.Sprintf("%d answered  ", v.Answered())) + clock
	pad := width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	b.WriteString(left)
	if pad > 0 {
		b.WriteString(strings.Repeat(" ", pad))
	}
	b.WriteString(right)
	b.WriteString("\n  ")
	b.WriteString(components.NewTimeBar(v.RemainingSeconds, total, max(width-4, 4)).View())
	b.WriteString("\n\n")

	b.WriteString(renderQuestion(q, width))
	b.WriteString("\n\n")

	if isChoice(q) {
		b.WriteString(indent(s.choices.View(), "  "))
	} else {
		b.WriteString(indent(s.input.View(), "  "))
	}

	if s.confirm {
		b.WriteString("\n\n")
		b.WriteString(theme.Failed.Render("  Abandon this attempt? Nothing will be scored. (y/n)"))
	}

	return b.String()
}

func renderQuestion(q catalog.Question, width int) string {
	var b strings.Builder
	prompt := lipgloss.NewStyle().
		Foreground(theme.Text).
		Bold(true).
		Width(max(width-4, 20)).
		Render(q.Prompt)
	b.WriteString(indent(prompt, "  "))

	meta := fmt.Sprintf("%s · %d pts", kindLabel(q.Kind()), q.Points)
	switch body := q.Body.(type) {
	case catalog.MultipleChoice:
		if body.MultiSelect() {
			meta += " · select all that apply"
		}
	case catalog.Coding:
		if body.Language != "" {
			meta += " · " + body.Language
		}
	case catalog.Scenario:
		if body.Context != "" {
			ctx := lipgloss.NewStyle().Foreground(theme.TextDim).Width(max(width-4, 20)).Render(body.Context)
			b.WriteString("\n\n")
			b.WriteString(indent(ctx, "  "))
		}
	}
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render("  " + meta))
	return b.String()
}

func kindLabel(k catalog.Kind) string {
	switch k {
	case catalog.KindMultipleChoice:
		return "Multiple choice"
	case catalog.KindTrueFalse:
		return "True / False"
	case catalog.KindCoding:
		return "Coding"
	case catalog.KindScenario:
		return "Scenario"
	}
	return string(k)
}

func centered(width int, s string) string {
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(s)
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}
