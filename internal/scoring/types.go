// Package scoring grades submitted attempts and produces follow-on
// recommendations.
package scoring

import (
	"context"
	"math"
	"time"

	"github.com/abhisek/careerpath/internal/catalog"
)

// Request is everything a scorer sees about a finished attempt.
type Request struct {
	Assessment catalog.Assessment
	Answers    map[string]string
	Elapsed    time.Duration
}

// Outcome is the scorer's verdict.
type Outcome struct {
	Score           int
	CorrectAnswers  int
	TotalQuestions  int
	Proficiency     catalog.Level
	Recommendations []string
}

// Scorer grades an attempt. Implementations may fail; the engine substitutes
// Fallback when they do.
type Scorer interface {
	Score(ctx context.Context, req Request) (*Outcome, error)
}

// ScorerFunc adapts a function to the Scorer interface.
type ScorerFunc func(ctx context.Context, req Request) (*Outcome, error)

func (f ScorerFunc) Score(ctx context.Context, req Request) (*Outcome, error) {
	return f(ctx, req)
}

// FallbackScore is the score reported when no scorer result is available,
// unless the assessment needs more to pass.
const FallbackScore = 75

var fallbackRecommendations = []string{
	"Review the core concepts covered in this assessment.",
	"Practice with hands-on exercises to reinforce what you learned.",
	"Retake the assessment in a few days to track your progress.",
}

// Fallback returns the fixed outcome used when scoring fails. It does not
// look at the answers. The score is FallbackScore raised to passingScore
// when that is higher, so a fallback result always passes. The correct
// count is proportional to the score and proficiency is always intermediate.
func Fallback(total, passingScore int) Outcome {
	score := min(max(FallbackScore, passingScore), 100)
	recs := make([]string, len(fallbackRecommendations))
	copy(recs, fallbackRecommendations)
	return Outcome{
		Score:           score,
		CorrectAnswers:  int(math.Round(float64(total) * float64(score) / 100)),
		TotalQuestions:  total,
		Proficiency:     catalog.LevelIntermediate,
		Recommendations: recs,
	}
}

// ProficiencyFor maps a 0-100 score onto the proficiency scale.
func ProficiencyFor(score int) catalog.Level {
	switch {
	case score < 40:
		return catalog.LevelBeginner
	case score < 70:
		return catalog.LevelIntermediate
	case score < 90:
		return catalog.LevelAdvanced
	default:
		return catalog.LevelExpert
	}
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
