// Package browse lists the available assessments.
package browse

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/careerpath/internal/assessment"
	"github.com/abhisek/careerpath/internal/catalog"
	"github.com/abhisek/careerpath/internal/router"
	"github.com/abhisek/careerpath/internal/screen"
	"github.com/abhisek/careerpath/internal/screens/attempt"
	"github.com/abhisek/careerpath/internal/ui/components"
	"github.com/abhisek/careerpath/internal/ui/layout"
	"github.com/abhisek/careerpath/internal/ui/theme"
)

// EngineFactory returns a fresh engine for each attempt.
type EngineFactory func() *assessment.Engine

// BrowseScreen shows the catalog and starts attempts.
type BrowseScreen struct {
	assessments []catalog.Assessment
	menu        components.Menu
	tick        time.Duration
}

var _ screen.Screen = (*BrowseScreen)(nil)
var _ screen.KeyHintProvider = (*BrowseScreen)(nil)

// New creates a BrowseScreen. tick is the attempt clock period; zero means
// one second.
func New(assessments []catalog.Assessment, newEngine EngineFactory, tick time.Duration) *BrowseScreen {
	items := make([]components.MenuItem, 0, len(assessments))
	for _, a := range assessments {
		items = append(items, components.MenuItem{
			Label:    a.Name,
			Detail:   detail(a),
			Disabled: len(a.Questions) == 0,
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: attempt.New(newEngine(), a, tick)}
				}
			},
		})
	}
	return &BrowseScreen{
		assessments: assessments,
		menu:        components.NewMenu(items),
		tick:        tick,
	}
}

func (s *BrowseScreen) Init() tea.Cmd {
	return nil
}

func (s *BrowseScreen) Title() string {
	return "Assessments"
}

func (s *BrowseScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Start"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *BrowseScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *BrowseScreen) View(width, height int) string {
	if len(s.assessments) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No assessments available.")
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(s.menu.View())

	if i := s.menu.Selected; i >= 0 && i < len(s.assessments) {
		a := s.assessments[i]
		info := fmt.Sprintf("%s · %s · pass at %d%%", a.Category, a.Difficulty.DisplayName(), a.PassingScore)
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render("  " + info))
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render("  The clock starts as soon as you press Enter."))
	}
	return b.String()
}

func detail(a catalog.Assessment) string {
	return fmt.Sprintf("%d questions · %s", a.QuestionCount(), assessment.FormatClock(int(a.TimeLimit/time.Second)))
}
