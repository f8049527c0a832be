package result

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/careerpath/internal/assessment"
	"github.com/abhisek/careerpath/internal/catalog"
	"github.com/abhisek/careerpath/internal/router"
)

func testResult() assessment.Result {
	return assessment.Result{
		AttemptID:       "a-1",
		AssessmentID:    "go-basics",
		AssessmentName:  "Go Basics",
		Score:           85,
		PassingScore:    70,
		TotalQuestions:  10,
		CorrectAnswers:  8,
		Elapsed:         12*time.Minute + 5*time.Second,
		Proficiency:     catalog.LevelAdvanced,
		Recommendations: []string{"Review channel direction", "Practice table tests"},
		Passed:          true,
		Trigger:         assessment.TriggerManual,
	}
}

func TestResultScreen_Title(t *testing.T) {
	s := New(testResult())
	if s.Title() != "Result" {
		t.Errorf("Title = %q, want %q", s.Title(), "Result")
	}
}

func TestResultScreen_Display(t *testing.T) {
	view := New(testResult()).View(100, 30)
	for _, want := range []string{"Go Basics", "85%", "PASSED", "8/10", "12:05", "Review channel direction"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestResultScreen_Failed(t *testing.T) {
	r := testResult()
	r.Passed = false
	r.Score = 40
	r.Trigger = assessment.TriggerExpired
	view := New(r).View(100, 30)
	if !strings.Contains(view, "NOT PASSED") {
		t.Error("expected failing verdict")
	}
	if !strings.Contains(view, "time ran out") {
		t.Error("expected expiry note")
	}
}

func TestResultScreen_NoFallbackMarker(t *testing.T) {
	r := testResult()
	r.Fallback = true
	view := New(r).View(100, 30)
	if strings.Contains(strings.ToLower(view), "fallback") {
		t.Error("fallback results must look like any other result")
	}
}

func TestResultScreen_Navigation(t *testing.T) {
	for _, key := range []rune{tea.KeyEnter, tea.KeyEscape} {
		s := New(testResult())
		_, cmd := s.Update(tea.KeyPressMsg{Code: key})
		if cmd == nil {
			t.Fatalf("expected a command for key %v", key)
		}
		if _, ok := cmd().(router.PopScreenMsg); !ok {
			t.Errorf("key %v: expected PopScreenMsg", key)
		}
	}
}
