// Package result shows the outcome of a submitted attempt.
package result

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/careerpath/internal/assessment"
	"github.com/abhisek/careerpath/internal/router"
	"github.com/abhisek/careerpath/internal/screen"
	"github.com/abhisek/careerpath/internal/ui/layout"
	"github.com/abhisek/careerpath/internal/ui/theme"
)

// ResultScreen displays a scored attempt.
type ResultScreen struct {
	result assessment.Result
}

var _ screen.Screen = (*ResultScreen)(nil)
var _ screen.KeyHintProvider = (*ResultScreen)(nil)

// New creates a new ResultScreen.
func New(r assessment.Result) *ResultScreen {
	return &ResultScreen{result: r}
}

func (s *ResultScreen) Init() tea.Cmd {
	return nil
}

func (s *ResultScreen) Title() string {
	return "Result"
}

func (s *ResultScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Continue"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ResultScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *ResultScreen) View(width, height int) string {
	r := s.result
	center := func(str string) string {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, str)
	}

	var b strings.Builder

	b.WriteString(center(theme.Title.Render(r.AssessmentName)))
	b.WriteString("\n\n")

	score := lipgloss.NewStyle().Bold(true).Foreground(theme.Text).
		Render(fmt.Sprintf("%d%%", r.Score))
	verdict := theme.Failed.Render("NOT PASSED")
	if r.Passed {
		verdict = theme.Passed.Render("PASSED")
	}
	b.WriteString(center(score + "   " + verdict))
	b.WriteString("\n")
	b.WriteString(center(theme.Hint.Render(fmt.Sprintf("passing score %d%%", r.PassingScore))))
	b.WriteString("\n\n")

	stats := fmt.Sprintf("Correct: %d/%d        Time: %s        Level: %s",
		r.CorrectAnswers, r.TotalQuestions, formatElapsed(r.Elapsed), r.Proficiency.DisplayName())
	b.WriteString(center(theme.Body.Render(stats)))
	b.WriteString("\n")
	if r.Trigger == assessment.TriggerExpired {
		b.WriteString(center(theme.Hint.Render("Submitted automatically when time ran out")))
		b.WriteString("\n")
	}

	if len(r.Recommendations) > 0 {
		divider := lipgloss.NewStyle().Foreground(theme.Border).
			Render(strings.Repeat("─", max(min(width-8, 60), 1)))
		b.WriteString("\n")
		b.WriteString(center(lipgloss.NewStyle().Foreground(theme.TextDim).Render("Recommendations")))
		b.WriteString("\n")
		b.WriteString(center(divider))
		b.WriteString("\n\n")

		line := lipgloss.NewStyle().Foreground(theme.Text).Width(max(min(width-8, 60), 10))
		for _, rec := range r.Recommendations {
			b.WriteString(center(line.Render("• " + rec)))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func formatElapsed(d time.Duration) string {
	return assessment.FormatClock(int(d / time.Second))
}
