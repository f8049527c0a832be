package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/careerpath/internal/catalog"
	"github.com/abhisek/careerpath/internal/store"
	"github.com/abhisek/careerpath/internal/ui/components"
	"github.com/abhisek/careerpath/internal/ui/theme"
)

const title = "C A R E E R P A T H"

// maxScoreboardRows caps the per-assessment list under the menu.
const maxScoreboardRows = 5

type totals struct {
	Attempts  int
	Passed    int
	BestScore int
}

func summarize(stats []store.ResultStats) totals {
	var t totals
	for _, s := range stats {
		t.Attempts += s.Attempts
		t.Passed += s.Passed
		t.BestScore = max(t.BestScore, s.BestScore)
	}
	return t
}

// contentWidth returns the uniform inner width used for all sections.
func contentWidth(frameWidth int) int {
	return min(max(frameWidth-6, 20), 60)
}

func renderTitle(cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(theme.Title.Render(title) + "\n" + theme.Subtitle.Render("timed skill assessments"))
}

func renderStatsBar(t totals, cw int) string {
	num := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	stats := strings.Join([]string{
		num.Render(fmt.Sprint(t.Attempts)) + dim.Render(" taken"),
		num.Render(fmt.Sprint(t.Passed)) + dim.Render(" passed"),
		num.Render(fmt.Sprintf("%d%%", t.BestScore)) + dim.Render(" best"),
	}, "   ")

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(cw).
		Align(lipgloss.Center).
		Render(stats)
}

func renderMenu(m components.Menu, cw int) string {
	return lipgloss.NewStyle().Width(cw).Render(m.View())
}

// renderScoreboard lists the most recently taken assessments with their
// best score. It returns "" when nothing has been taken yet.
func renderScoreboard(stats []store.ResultStats, assessments []catalog.Assessment, cw int) string {
	if len(stats) == 0 {
		return ""
	}

	names := make(map[string]string, len(assessments))
	for _, a := range assessments {
		names[a.ID] = a.Name
	}

	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	var b strings.Builder
	b.WriteString(dim.Render("Recent"))
	for i, s := range stats {
		if i == maxScoreboardRows {
			break
		}
		name := names[s.AssessmentID]
		if name == "" {
			name = s.AssessmentID
		}
		style := theme.Unselected
		if s.Passed > 0 {
			style = theme.Passed
		}
		b.WriteString("\n")
		b.WriteString(style.Render(fmt.Sprintf("  %-28s best %3d%%  avg %3.0f%%", name, s.BestScore, s.AvgScore)))
	}
	return lipgloss.NewStyle().Width(cw).Render(b.String())
}

func center(content string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
