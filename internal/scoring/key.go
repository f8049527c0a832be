package scoring

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/abhisek/careerpath/internal/catalog"
)

const maxKeyRecommendations = 3

// KeyScorer grades answers locally against each question's answer key.
// Coding and scenario answers only count when they match the reference
// after whitespace and case normalization.
type KeyScorer struct{}

// NewKeyScorer creates a KeyScorer.
func NewKeyScorer() *KeyScorer {
	return &KeyScorer{}
}

func (s *KeyScorer) Score(ctx context.Context, req Request) (*Outcome, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	a := req.Assessment
	var earned, total, correct int
	var missed []catalog.Question

	for _, q := range a.Questions {
		total += q.Points
		if Correct(q, req.Answers[q.ID]) {
			earned += q.Points
			correct++
		} else {
			missed = append(missed, q)
		}
	}

	score := 0
	if total > 0 {
		score = int(math.Round(100 * float64(earned) / float64(total)))
	}

	return &Outcome{
		Score:           score,
		CorrectAnswers:  correct,
		TotalQuestions:  len(a.Questions),
		Proficiency:     ProficiencyFor(score),
		Recommendations: keyRecommendations(a, missed),
	}, nil
}

// Correct reports whether answer satisfies the question's key.
func Correct(q catalog.Question, answer string) bool {
	switch b := q.Body.(type) {
	case catalog.MultipleChoice:
		return sameChoices(catalog.SplitChoices(answer), b.Correct)
	case catalog.TrueFalse:
		return normalize(answer) == q.Key()[0]
	case catalog.Coding:
		return normalize(answer) != "" && normalize(answer) == normalize(b.Reference)
	case catalog.Scenario:
		return normalize(answer) != "" && normalize(answer) == normalize(b.Rubric)
	default:
		return false
	}
}

func sameChoices(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	set := make(map[string]int, len(want))
	for _, w := range want {
		set[normalize(w)]++
	}
	for _, g := range got {
		k := normalize(g)
		if set[k] == 0 {
			return false
		}
		set[k]--
	}
	return true
}

func normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

func keyRecommendations(a catalog.Assessment, missed []catalog.Question) []string {
	if len(missed) == 0 {
		return []string{
			fmt.Sprintf("You answered every question in %s correctly. Try a harder %s assessment.", a.Name, a.Category),
		}
	}

	recs := make([]string, 0, maxKeyRecommendations+1)
	kinds := make(map[catalog.Kind]bool)
	for _, q := range missed {
		kinds[q.Kind()] = true
		if len(recs) < maxKeyRecommendations {
			topic := q.Explanation
			if topic == "" {
				topic = q.Prompt
			}
			recs = append(recs, "Review: "+topic)
		}
	}

	switch {
	case kinds[catalog.KindCoding]:
		recs = append(recs, fmt.Sprintf("Practice hands-on %s exercises.", a.Category))
	case kinds[catalog.KindScenario]:
		recs = append(recs, fmt.Sprintf("Walk through real-world %s scenarios with a peer.", a.Category))
	default:
		recs = append(recs, fmt.Sprintf("Revisit the fundamentals of %s.", a.Name))
	}
	return recs
}
