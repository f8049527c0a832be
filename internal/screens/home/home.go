// Package home is the dashboard shown at launch.
package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/careerpath/internal/catalog"
	"github.com/abhisek/careerpath/internal/router"
	"github.com/abhisek/careerpath/internal/screen"
	"github.com/abhisek/careerpath/internal/screens/browse"
	"github.com/abhisek/careerpath/internal/screens/history"
	"github.com/abhisek/careerpath/internal/store"
	"github.com/abhisek/careerpath/internal/ui/components"
	"github.com/abhisek/careerpath/internal/ui/layout"
)

// statsLoadedMsg carries the per-assessment aggregates for the dashboard.
type statsLoadedMsg struct {
	Stats []store.ResultStats
}

// HomeScreen is the main home screen of the application.
type HomeScreen struct {
	menu        components.Menu
	eventRepo   store.EventRepo
	assessments []catalog.Assessment
	stats       []store.ResultStats
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen. eventRepo may be nil, in which case history
// is unavailable.
func New(assessments []catalog.Assessment, newEngine browse.EngineFactory, eventRepo store.EventRepo) *HomeScreen {
	items := []components.MenuItem{
		{
			Label:    "Take an assessment",
			Detail:   pluralize(len(assessments), "assessment"),
			Disabled: len(assessments) == 0 || newEngine == nil,
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: browse.New(assessments, newEngine, 0)}
				}
			},
		},
		{
			Label:    "History",
			Disabled: eventRepo == nil,
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: history.New(eventRepo)}
				}
			},
		},
		{
			Label: "Quit",
			Action: func() tea.Cmd {
				return tea.Quit
			},
		},
	}

	return &HomeScreen{
		menu:        components.NewMenu(items),
		eventRepo:   eventRepo,
		assessments: assessments,
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.loadStats()
}

func (h *HomeScreen) loadStats() tea.Cmd {
	if h.eventRepo == nil {
		return nil
	}
	repo := h.eventRepo
	return func() tea.Msg {
		stats, err := repo.ResultStats(context.Background())
		if err != nil {
			return nil
		}
		return statsLoadedMsg{Stats: stats}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if m, ok := msg.(statsLoadedMsg); ok {
		h.stats = m.Stats
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

// Refresh reloads the dashboard stats, e.g. after returning from an attempt.
func (h *HomeScreen) Refresh() tea.Cmd {
	return h.loadStats()
}

func (h *HomeScreen) View(width, height int) string {
	cw := contentWidth(width)

	sections := []string{
		renderTitle(cw),
		renderStatsBar(summarize(h.stats), cw),
		renderMenu(h.menu, cw),
	}
	// Compact terminals skip the scoreboard.
	if !layout.IsCompactWidth(width) {
		if board := renderScoreboard(h.stats, h.assessments, cw); board != "" {
			sections = append(sections, board)
		}
	}

	return center(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
