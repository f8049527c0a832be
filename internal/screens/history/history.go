// Package history lists past assessment results.
package history

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/careerpath/internal/assessment"
	"github.com/abhisek/careerpath/internal/catalog"
	"github.com/abhisek/careerpath/internal/router"
	"github.com/abhisek/careerpath/internal/screen"
	"github.com/abhisek/careerpath/internal/store"
	"github.com/abhisek/careerpath/internal/ui/layout"
	"github.com/abhisek/careerpath/internal/ui/theme"
)

const pageSize = 50

type historyLoadedMsg struct {
	Results []store.ResultRecord
	Err     error
}

type answersLoadedMsg struct {
	AttemptID string
	Answers   []store.AnswerRecord
}

// HistoryScreen displays past results, newest first.
type HistoryScreen struct {
	eventRepo store.EventRepo
	results   []store.ResultRecord
	answers   map[string][]store.AnswerRecord // attemptID → answers
	selected  int
	expanded  map[int]bool
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(eventRepo store.EventRepo) *HistoryScreen {
	return &HistoryScreen{
		eventRepo: eventRepo,
		answers:   make(map[string][]store.AnswerRecord),
		expanded:  make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.eventRepo
	return func() tea.Msg {
		results, err := repo.QueryResults(context.Background(), store.QueryOpts{Limit: pageSize})
		return historyLoadedMsg{Results: results, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.results = msg.Results
		}
		s.loaded = true
		return s, nil

	case answersLoadedMsg:
		s.answers[msg.AttemptID] = msg.Answers
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.results)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			if s.selected >= len(s.results) {
				return s, nil
			}
			s.expanded[s.selected] = !s.expanded[s.selected]
			return s, s.loadAnswers(s.results[s.selected].AttemptID)
		}
	}
	return s, nil
}

func (s *HistoryScreen) loadAnswers(attemptID string) tea.Cmd {
	if _, ok := s.answers[attemptID]; ok {
		return nil
	}
	repo := s.eventRepo
	return func() tea.Msg {
		answers, err := repo.AnswersForAttempt(context.Background(), attemptID)
		if err != nil {
			return nil
		}
		return answersLoadedMsg{AttemptID: attemptID, Answers: answers}
	}
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.results) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No results yet. Take an assessment!")
	}

	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	var b strings.Builder
	b.WriteString("\n")

	for i, r := range s.results {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		verdict := "fail"
		if r.Passed {
			verdict = "pass"
		}
		line := fmt.Sprintf("%s%s  %-24s %3d%%  %s  %d/%d correct  %s",
			prefix, r.Timestamp.Local().Format("Jan 02, 2006"), truncate(r.AssessmentName, 24),
			r.Score, verdict, r.CorrectAnswers, r.TotalQuestions,
			assessment.FormatClock(int(r.Elapsed/time.Second)))

		style := lipgloss.NewStyle().Foreground(theme.Text)
		switch {
		case i == s.selected:
			style = style.Foreground(theme.Primary).Bold(true)
		case r.Passed:
			style = style.Foreground(theme.Success)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if !s.expanded[i] {
			continue
		}

		details := []string{
			fmt.Sprintf("Level: %s   Submitted: %s", catalog.Level(r.Proficiency).DisplayName(), r.Trigger),
		}
		if answers, ok := s.answers[r.AttemptID]; ok {
			details = append(details, fmt.Sprintf("Answered %d of %d questions", countAnswered(answers), r.TotalQuestions))
		}
		for _, rec := range r.Recommendations {
			details = append(details, "• "+rec)
		}
		for _, d := range details {
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, dim.Render("    "+d)))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func countAnswered(answers []store.AnswerRecord) int {
	n := 0
	for _, a := range answers {
		if a.Value != "" {
			n++
		}
	}
	return n
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
