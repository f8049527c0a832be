package attempt

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/careerpath/internal/assessment"
	"github.com/abhisek/careerpath/internal/catalog"
	"github.com/abhisek/careerpath/internal/router"
	"github.com/abhisek/careerpath/internal/screens/result"
	"github.com/abhisek/careerpath/internal/scoring"
)

func testAssessment() catalog.Assessment {
	return catalog.Assessment{
		ID:           "mini",
		SkillID:      "go",
		Name:         "Mini Quiz",
		TimeLimit:    2 * time.Second,
		PassingScore: 50,
		Questions: []catalog.Question{
			{ID: "q1", Prompt: "Go has generics.", Points: 1, Body: catalog.TrueFalse{Correct: true}},
			{ID: "q2", Prompt: "Pick the channel ops.", Points: 1, Body: catalog.MultipleChoice{
				Options: []string{"send", "receive", "rewind"},
				Correct: []string{"send", "receive"},
			}},
			{ID: "q3", Prompt: "Write hello.", Points: 1, Body: catalog.Coding{
				Language: "go",
				Starter:  "package main",
			}},
		},
	}
}

func newScreen(t *testing.T) (*AttemptScreen, *assessment.Engine) {
	t.Helper()
	e := assessment.New(scoring.NewKeyScorer())
	t.Cleanup(e.Close)
	s := New(e, testAssessment(), 10*time.Millisecond)
	s.Init()
	return s, e
}

func press(s *AttemptScreen, msg tea.KeyPressMsg) tea.Cmd {
	_, cmd := s.Update(msg)
	return cmd
}

// run executes cmd and feeds its message back into the screen.
func run(t *testing.T, s *AttemptScreen, cmd tea.Cmd) tea.Cmd {
	t.Helper()
	require.NotNil(t, cmd)
	_, next := s.Update(cmd())
	return next
}

func TestInitStartsAttempt(t *testing.T) {
	s, e := newScreen(t)

	assert.Equal(t, assessment.StateInProgress, e.State())
	assert.Equal(t, "Mini Quiz", s.Title())
	assert.Contains(t, s.Status(), "1 of 3")
	assert.Contains(t, s.Status(), "00:02")
	assert.True(t, s.HandlesBack())
	assert.Contains(t, s.View(80, 24), "Go has generics.")
}

func TestInitRejectsEmptyAssessment(t *testing.T) {
	e := assessment.New(scoring.NewKeyScorer())
	defer e.Close()
	s := New(e, catalog.Assessment{Name: "Empty"}, 0)
	s.Init()

	assert.Equal(t, assessment.StateIdle, e.State())
	assert.False(t, s.HandlesBack())
	assert.Contains(t, s.View(80, 24), "cannot be started")

	cmd := press(s, tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.IsType(t, router.PopScreenMsg{}, cmd())
}

func TestTrueFalseAnswerIsLowercase(t *testing.T) {
	s, e := newScreen(t)

	press(s, tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Equal(t, "true", e.Snapshot().Answers["q1"])

	press(s, tea.KeyPressMsg{Code: '2', Text: "2"})
	assert.Equal(t, "false", e.Snapshot().Answers["q1"])
}

func TestNavigationKeepsAnswers(t *testing.T) {
	s, e := newScreen(t)

	press(s, tea.KeyPressMsg{Code: tea.KeyEnter})
	press(s, tea.KeyPressMsg{Code: tea.KeyTab})
	assert.Equal(t, 1, e.Snapshot().CurrentIndex)
	assert.Contains(t, s.View(80, 24), "select all that apply")

	press(s, tea.KeyPressMsg{Code: '1', Text: "1"})
	press(s, tea.KeyPressMsg{Code: '2', Text: "2"})
	assert.Equal(t, catalog.JoinChoices([]string{"send", "receive"}), e.Snapshot().Answers["q2"])

	press(s, tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift})
	assert.Equal(t, 0, e.Snapshot().CurrentIndex)
	assert.Equal(t, []string{"True"}, s.choices.Chosen())

	press(s, tea.KeyPressMsg{Code: tea.KeyRight})
	assert.Equal(t, 1, e.Snapshot().CurrentIndex)
	assert.Equal(t, []string{"send", "receive"}, s.choices.Chosen())
}

func TestCodingQuestionPrefillsStarter(t *testing.T) {
	s, e := newScreen(t)

	press(s, tea.KeyPressMsg{Code: tea.KeyTab})
	press(s, tea.KeyPressMsg{Code: tea.KeyTab})
	assert.Equal(t, 2, e.Snapshot().CurrentIndex)
	assert.Equal(t, "package main", e.Snapshot().Answers["q3"])
	assert.Equal(t, "package main", s.input.Value())
}

func TestManualSubmitShowsResult(t *testing.T) {
	s, e := newScreen(t)
	press(s, tea.KeyPressMsg{Code: tea.KeyEnter})

	cmd := press(s, tea.KeyPressMsg{Code: 's', Mod: tea.ModCtrl})
	next := run(t, s, cmd)

	assert.Equal(t, assessment.StateCompleted, e.State())
	require.NotNil(t, next)
	msg, ok := next().(router.ReplaceScreenMsg)
	require.True(t, ok)
	assert.IsType(t, &result.ResultScreen{}, msg.Screen)
	assert.Equal(t, assessment.TriggerManual, e.Result().Trigger)

	// A late tick does not ask for a second result screen.
	_, again := s.Update(tickedMsg{})
	assert.Nil(t, again)
}

func TestExpiryShowsResult(t *testing.T) {
	s, e := newScreen(t)

	// 2s -> 1s: still running, next tick scheduled.
	_, cmd := s.Update(tickMsg{})
	next := run(t, s, cmd)
	require.NotNil(t, next)
	assert.Equal(t, assessment.StateInProgress, e.State())
	assert.Contains(t, s.Status(), "00:01")

	_, cmd = s.Update(tickMsg{})
	next = run(t, s, cmd)
	require.NotNil(t, next)
	msg, ok := next().(router.ReplaceScreenMsg)
	require.True(t, ok)
	assert.IsType(t, &result.ResultScreen{}, msg.Screen)
	assert.Equal(t, assessment.TriggerExpired, e.Result().Trigger)
}

func TestEscAsksBeforeAbandoning(t *testing.T) {
	s, e := newScreen(t)

	assert.Nil(t, press(s, tea.KeyPressMsg{Code: tea.KeyEscape}))
	assert.Contains(t, s.View(80, 24), "Abandon this attempt?")

	press(s, tea.KeyPressMsg{Code: 'n', Text: "n"})
	assert.NotContains(t, s.View(80, 24), "Abandon this attempt?")

	press(s, tea.KeyPressMsg{Code: tea.KeyEscape})
	cmd := press(s, tea.KeyPressMsg{Code: 'y', Text: "y"})
	require.NotNil(t, cmd)
	assert.IsType(t, router.PopScreenMsg{}, cmd())

	// The engine is closed: nothing is recorded or scored afterwards.
	e.Answer("q1", "true")
	assert.Nil(t, e.Submit(t.Context()))
	assert.Nil(t, e.Result())
	select {
	case <-e.TimerStopped():
	default:
		t.Fatal("timer still running after abandon")
	}
}

type answerLog struct {
	mu      sync.Mutex
	answers []assessment.AnswerEvent
}

func (l *answerLog) AttemptStarted(context.Context, assessment.StartedEvent) error { return nil }

func (l *answerLog) AnswerRecorded(_ context.Context, ev assessment.AnswerEvent) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.answers = append(l.answers, ev)
	return nil
}

func (l *answerLog) AttemptCompleted(context.Context, assessment.Result) error { return nil }

func (l *answerLog) values() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.answers))
	for i, ev := range l.answers {
		out[i] = ev.QuestionID + "=" + ev.Value
	}
	return out
}

func scenarioAssessment() catalog.Assessment {
	return catalog.Assessment{
		ID:           "design",
		Name:         "Design",
		TimeLimit:    2 * time.Second,
		PassingScore: 50,
		Questions: []catalog.Question{
			{ID: "s1", Prompt: "How do goroutines talk?", Points: 1, Body: catalog.Scenario{Context: "A worker pool."}},
			{ID: "s2", Prompt: "How do you stop them?", Points: 1, Body: catalog.Scenario{Context: "Shutdown."}},
		},
	}
}

func newScenarioScreen(t *testing.T) (*AttemptScreen, *assessment.Engine, *answerLog) {
	t.Helper()
	log := &answerLog{}
	e := assessment.New(scoring.NewKeyScorer(), assessment.WithSink(log))
	t.Cleanup(e.Close)
	s := New(e, scenarioAssessment(), 10*time.Millisecond)
	s.Init()
	return s, e, log
}

func typeText(s *AttemptScreen, text string) {
	for _, r := range text {
		press(s, tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

func TestTypingRecordsAnswerOnLeave(t *testing.T) {
	s, e, log := newScenarioScreen(t)

	typeText(s, "channels")
	assert.Empty(t, log.values(), "keystrokes must not be recorded one by one")
	assert.Empty(t, e.Snapshot().Answers["s1"])

	press(s, tea.KeyPressMsg{Code: tea.KeyTab})
	assert.Equal(t, []string{"s1=channels"}, log.values())
	assert.Equal(t, "channels", e.Snapshot().Answers["s1"])

	// Leaving an untouched question records nothing.
	press(s, tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift})
	assert.Len(t, log.values(), 1)
	assert.Equal(t, "channels", s.input.Value())
}

func TestSubmitRecordsPendingText(t *testing.T) {
	s, e, log := newScenarioScreen(t)

	typeText(s, "mutex")
	cmd := press(s, tea.KeyPressMsg{Code: 's', Mod: tea.ModCtrl})
	run(t, s, cmd)

	assert.Equal(t, []string{"s1=mutex"}, log.values())
	require.NotNil(t, e.Result())
	assert.Equal(t, "mutex", e.Result().Answers["s1"])
}

func TestExpiryRecordsPendingText(t *testing.T) {
	s, e, log := newScenarioScreen(t)

	typeText(s, "ctx")
	_, cmd := s.Update(tickMsg{})
	run(t, s, cmd)
	assert.Empty(t, log.values(), "nothing is recorded while time remains")

	_, cmd = s.Update(tickMsg{})
	run(t, s, cmd)
	assert.Equal(t, assessment.TriggerExpired, e.Result().Trigger)
	assert.Equal(t, []string{"s1=ctx"}, log.values())
	assert.Equal(t, "ctx", e.Result().Answers["s1"])
}

func TestKeyHints(t *testing.T) {
	s, _ := newScreen(t)
	hints := s.KeyHints()
	var keys []string
	for _, h := range hints {
		keys = append(keys, h.Key)
	}
	joined := strings.Join(keys, ",")
	assert.Contains(t, joined, "Ctrl+S")
	assert.Contains(t, joined, "Esc")
}
