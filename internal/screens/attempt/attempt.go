// Package attempt is the screen for taking a timed assessment.
package attempt

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/careerpath/internal/assessment"
	"github.com/abhisek/careerpath/internal/catalog"
	"github.com/abhisek/careerpath/internal/router"
	"github.com/abhisek/careerpath/internal/screen"
	"github.com/abhisek/careerpath/internal/screens/result"
	"github.com/abhisek/careerpath/internal/ui/components"
	"github.com/abhisek/careerpath/internal/ui/layout"
)

// AttemptScreen runs one attempt. The engine owns all attempt state; the
// screen only translates keys into engine intents and renders snapshots.
type AttemptScreen struct {
	engine     *assessment.Engine
	assessment catalog.Assessment
	interval   time.Duration

	choices  components.ChoiceList
	input    components.AnswerInput
	widgetQ  string // question id the widgets were built for
	dirty    bool   // free-text edits not yet handed to the engine
	confirm  bool   // showing the abandon prompt
	finished bool   // result screen already requested
	startErr string
	width    int
}

var _ screen.Screen = (*AttemptScreen)(nil)
var _ screen.KeyHintProvider = (*AttemptScreen)(nil)
var _ screen.StatusProvider = (*AttemptScreen)(nil)
var _ screen.BackHandler = (*AttemptScreen)(nil)
var _ screen.Closer = (*AttemptScreen)(nil)

// New creates a screen that starts a on e when initialized. interval is the
// tick period; one second in production.
func New(e *assessment.Engine, a catalog.Assessment, interval time.Duration) *AttemptScreen {
	if interval <= 0 {
		interval = time.Second
	}
	return &AttemptScreen{
		engine:     e,
		assessment: a,
		interval:   interval,
		width:      80,
	}
}

func (s *AttemptScreen) Init() tea.Cmd {
	if !s.engine.Start(s.assessment) {
		s.startErr = fmt.Sprintf("%q cannot be started", s.assessment.Name)
		return nil
	}
	return tea.Batch(s.syncWidgets(), s.scheduleTick())
}

func (s *AttemptScreen) Title() string {
	return s.assessment.Name
}

func (s *AttemptScreen) Status() string {
	v := s.engine.Snapshot()
	if v.State != assessment.StateInProgress && v.State != assessment.StateSubmitting {
		return ""
	}
	return fmt.Sprintf("%s   %s", v.Progress(), v.Clock())
}

func (s *AttemptScreen) HandlesBack() bool {
	return s.startErr == ""
}

// Close abandons any running attempt.
func (s *AttemptScreen) Close() {
	s.engine.Close()
}

func (s *AttemptScreen) KeyHints() []layout.KeyHint {
	if s.confirm {
		return []layout.KeyHint{
			{Key: "Y", Description: "Abandon"},
			{Key: "N", Description: "Keep going"},
		}
	}
	switch s.engine.State() {
	case assessment.StateInProgress:
	case assessment.StateSubmitting:
		return []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
	default:
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	}

	hints := []layout.KeyHint{
		{Key: "Tab/Shift+Tab", Description: "Next/Prev"},
	}
	if q, ok := s.engine.Snapshot().CurrentQuestion(); ok && isChoice(q) {
		hints = append(hints, layout.KeyHint{Key: "↑↓ Enter", Description: "Choose"})
	}
	return append(hints,
		layout.KeyHint{Key: "Ctrl+S", Description: "Submit"},
		layout.KeyHint{Key: "Esc", Description: "Abandon"},
	)
}

func (s *AttemptScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		return s, nil

	case tickMsg:
		v := s.engine.Snapshot()
		if v.State != assessment.StateInProgress {
			return s, nil
		}
		if v.RemainingSeconds <= 1 {
			// This tick expires the attempt.
			s.commitInput()
		}
		e := s.engine
		return s, func() tea.Msg {
			e.Tick(context.Background())
			return tickedMsg{}
		}

	case tickedMsg:
		switch s.engine.State() {
		case assessment.StateInProgress:
			return s, s.scheduleTick()
		case assessment.StateCompleted:
			return s, s.showResult()
		}
		return s, nil

	case submittedMsg:
		return s, s.showResult()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	return s.forward(msg)
}

func (s *AttemptScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.startErr != "" {
		if msg.String() == "esc" || msg.String() == "enter" {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
		return s, nil
	}

	if s.confirm {
		switch msg.String() {
		case "y", "Y":
			s.engine.Close()
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "n", "N", "esc":
			s.confirm = false
		}
		return s, nil
	}

	if s.engine.State() != assessment.StateInProgress {
		return s, nil
	}

	switch msg.String() {
	case "esc":
		s.confirm = true
		return s, nil
	case "ctrl+s":
		s.commitInput()
		e := s.engine
		return s, func() tea.Msg {
			e.Submit(context.Background())
			return submittedMsg{}
		}
	case "tab":
		s.commitInput()
		s.engine.Next()
		return s, s.syncWidgets()
	case "shift+tab":
		s.commitInput()
		s.engine.Previous()
		return s, s.syncWidgets()
	case "right", "left":
		// Arrow navigation is reserved for text editing on free-text
		// questions.
		if q, ok := s.engine.Snapshot().CurrentQuestion(); ok && isChoice(q) {
			if msg.String() == "right" {
				s.engine.Next()
			} else {
				s.engine.Previous()
			}
			return s, s.syncWidgets()
		}
	}

	return s.forward(msg)
}

// forward hands msg to the answer widget of the current question. Choice
// changes go to the engine at once; free-text edits wait for commitInput.
func (s *AttemptScreen) forward(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if s.engine.State() != assessment.StateInProgress {
		return s, nil
	}
	q, ok := s.engine.Snapshot().CurrentQuestion()
	if !ok || q.ID != s.widgetQ {
		return s, nil
	}

	if isChoice(q) {
		if _, isKey := msg.(tea.KeyMsg); !isKey {
			return s, nil
		}
		var changed bool
		s.choices, changed = s.choices.Update(msg)
		if changed {
			s.engine.Answer(q.ID, choiceValue(q, s.choices.Chosen()))
		}
		return s, nil
	}

	var (
		cmd     tea.Cmd
		changed bool
	)
	s.input, cmd, changed = s.input.Update(msg)
	if changed {
		s.dirty = true
	}
	return s, cmd
}

// commitInput records the free-text answer being edited, if it changed.
func (s *AttemptScreen) commitInput() {
	if !s.dirty {
		return
	}
	s.dirty = false
	s.engine.Answer(s.widgetQ, s.input.Value())
}

// syncWidgets rebuilds the answer widget when the current question changed.
func (s *AttemptScreen) syncWidgets() tea.Cmd {
	v := s.engine.Snapshot()
	q, ok := v.CurrentQuestion()
	if !ok || q.ID == s.widgetQ {
		return nil
	}
	s.widgetQ = q.ID
	s.dirty = false
	answer := v.Answers[q.ID]

	switch body := q.Body.(type) {
	case catalog.MultipleChoice:
		s.choices = components.NewChoiceList(body.Options, body.MultiSelect(), catalog.SplitChoices(answer))
		return nil
	case catalog.TrueFalse:
		s.choices = components.NewChoiceList(trueFalseOptions, false, []string{answer})
		return nil
	case catalog.Coding:
		if answer == "" {
			answer = body.Starter
			if answer != "" {
				s.engine.Answer(q.ID, answer)
			}
		}
		s.input = components.NewAnswerInput("Write your solution...", answer, inputWidth(s.width), 8)
	default:
		s.input = components.NewAnswerInput("Type your answer...", answer, inputWidth(s.width), 6)
	}
	return s.input.Focus()
}

func (s *AttemptScreen) scheduleTick() tea.Cmd {
	return tea.Tick(s.interval, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

// showResult replaces this screen with the result once, after scoring.
func (s *AttemptScreen) showResult() tea.Cmd {
	if s.finished {
		return nil
	}
	res := s.engine.Result()
	if res == nil {
		return nil
	}
	s.finished = true
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: result.New(*res)}
	}
}

var trueFalseOptions = []string{"True", "False"}

func isChoice(q catalog.Question) bool {
	switch q.Body.(type) {
	case catalog.MultipleChoice, catalog.TrueFalse:
		return true
	}
	return false
}

func choiceValue(q catalog.Question, chosen []string) string {
	if _, ok := q.Body.(catalog.TrueFalse); ok {
		if len(chosen) == 0 {
			return ""
		}
		return strings.ToLower(chosen[0])
	}
	return catalog.JoinChoices(chosen)
}

func inputWidth(width int) int {
	return min(max(width-12, 20), 100)
}
