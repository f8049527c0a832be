package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/careerpath/internal/ui/theme"
)

// TimeBar shows the share of the time limit that remains.
type TimeBar struct {
	Remaining int // seconds
	Total     int // seconds
	Width     int
}

// NewTimeBar creates a time bar.
func NewTimeBar(remaining, total, width int) TimeBar {
	return TimeBar{Remaining: remaining, Total: total, Width: width}
}

// Fraction returns the remaining share in [0, 1].
func (t TimeBar) Fraction() float64 {
	if t.Total <= 0 {
		return 0
	}
	f := float64(t.Remaining) / float64(t.Total)
	return min(max(f, 0), 1)
}

// View renders the bar in the urgency color for the remaining time.
func (t TimeBar) View() string {
	barWidth := max(t.Width, 4)
	filled := int(float64(barWidth) * t.Fraction())
	empty := barWidth - filled

	color := theme.Clock(t.Remaining, t.Total).GetForeground()
	filledStr := lipgloss.NewStyle().
		Background(color).
		Render(strings.Repeat(" ", filled))

	emptyStr := lipgloss.NewStyle().
		Background(theme.Border).
		Render(strings.Repeat(" ", empty))

	return filledStr + emptyStr
}
