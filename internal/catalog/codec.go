package catalog

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Document is the on-disk and on-the-wire form of a catalog.
type Document struct {
	Assessments []AssessmentDoc `yaml:"assessments" json:"assessments"`
}

// AssessmentDoc is the serialized form of an Assessment.
type AssessmentDoc struct {
	ID               string        `yaml:"id" json:"id"`
	SkillID          string        `yaml:"skill_id" json:"skill_id"`
	Name             string        `yaml:"name" json:"name"`
	Category         string        `yaml:"category" json:"category"`
	Difficulty       string        `yaml:"difficulty" json:"difficulty"`
	TimeLimitMinutes int           `yaml:"time_limit_minutes" json:"time_limit_minutes"`
	PassingScore     int           `yaml:"passing_score" json:"passing_score"`
	Questions        []QuestionDoc `yaml:"questions" json:"questions"`
}

// QuestionDoc is the flat serialized form of a Question, discriminated by
// Kind. Only the fields relevant to Kind are read.
type QuestionDoc struct {
	ID          string     `yaml:"id" json:"id"`
	Kind        string     `yaml:"kind" json:"kind"`
	Prompt      string     `yaml:"prompt" json:"prompt"`
	Explanation string     `yaml:"explanation,omitempty" json:"explanation,omitempty"`
	Points      int        `yaml:"points,omitempty" json:"points,omitempty"`
	Options     []string   `yaml:"options,omitempty" json:"options,omitempty"`
	Correct     StringList `yaml:"correct,omitempty" json:"correct,omitempty"`
	Language    string     `yaml:"language,omitempty" json:"language,omitempty"`
	Starter     string     `yaml:"starter,omitempty" json:"starter,omitempty"`
	Reference   string     `yaml:"reference,omitempty" json:"reference,omitempty"`
	Context     string     `yaml:"context,omitempty" json:"context,omitempty"`
	Rubric      string     `yaml:"rubric,omitempty" json:"rubric,omitempty"`
}

// StringList decodes from either a single scalar or a list of scalars.
type StringList []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *StringList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*s = StringList{node.Value}
		return nil
	case yaml.SequenceNode:
		out := make(StringList, 0, len(node.Content))
		for _, n := range node.Content {
			if n.Kind != yaml.ScalarNode {
				return fmt.Errorf("line %d: expected scalar in list", n.Line)
			}
			out = append(out, n.Value)
		}
		*s = out
		return nil
	default:
		return fmt.Errorf("line %d: expected scalar or list", node.Line)
	}
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *StringList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*s = list
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = StringList{str}
		return nil
	}
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*s = StringList{strconv.FormatBool(b)}
		return nil
	}
	return fmt.Errorf("correct: expected string, bool or list, got %s", string(data))
}

// DecodeYAML parses a YAML catalog document.
func DecodeYAML(data []byte) ([]Assessment, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return doc.Decode()
}

// DecodeJSON parses a JSON catalog document.
func DecodeJSON(data []byte) ([]Assessment, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	return doc.Decode()
}

// EncodeYAML serializes assessments as a YAML catalog document.
func EncodeYAML(assessments []Assessment) ([]byte, error) {
	doc := Document{Assessments: make([]AssessmentDoc, 0, len(assessments))}
	for _, a := range assessments {
		doc.Assessments = append(doc.Assessments, ToDoc(a))
	}
	return yaml.Marshal(doc)
}

// Decode converts every document entry into an Assessment.
func (d Document) Decode() ([]Assessment, error) {
	out := make([]Assessment, 0, len(d.Assessments))
	for i, ad := range d.Assessments {
		a, err := ad.Assessment()
		if err != nil {
			return nil, fmt.Errorf("assessment %d (%q): %w", i, ad.ID, err)
		}
		out = append(out, a)
	}
	return out, nil
}

// Assessment converts the document into an Assessment.
func (d AssessmentDoc) Assessment() (Assessment, error) {
	diff := LevelIntermediate
	if d.Difficulty != "" {
		l, ok := ParseLevel(d.Difficulty)
		if !ok {
			return Assessment{}, fmt.Errorf("unknown difficulty %q", d.Difficulty)
		}
		diff = l
	}

	a := Assessment{
		ID:           d.ID,
		SkillID:      d.SkillID,
		Name:         d.Name,
		Category:     d.Category,
		Difficulty:   diff,
		TimeLimit:    time.Duration(d.TimeLimitMinutes) * time.Minute,
		PassingScore: d.PassingScore,
		Questions:    make([]Question, 0, len(d.Questions)),
	}
	for i, qd := range d.Questions {
		q, err := qd.Question()
		if err != nil {
			return Assessment{}, fmt.Errorf("question %d (%q): %w", i, qd.ID, err)
		}
		a.Questions = append(a.Questions, q)
	}
	return a, nil
}

// Question converts the document into a Question with the matching body.
func (d QuestionDoc) Question() (Question, error) {
	q := Question{
		ID:          d.ID,
		Prompt:      d.Prompt,
		Explanation: d.Explanation,
		Points:      d.Points,
	}
	if q.Points == 0 {
		q.Points = 1
	}

	switch Kind(strings.ToLower(strings.TrimSpace(d.Kind))) {
	case KindMultipleChoice:
		q.Body = MultipleChoice{Options: d.Options, Correct: []string(d.Correct)}
	case KindTrueFalse:
		if len(d.Correct) != 1 {
			return Question{}, fmt.Errorf("true-false needs exactly one correct value")
		}
		v, err := strconv.ParseBool(strings.TrimSpace(d.Correct[0]))
		if err != nil {
			return Question{}, fmt.Errorf("true-false correct value %q: %w", d.Correct[0], err)
		}
		q.Body = TrueFalse{Correct: v}
	case KindCoding:
		q.Body = Coding{Language: d.Language, Starter: d.Starter, Reference: d.Reference}
	case KindScenario:
		q.Body = Scenario{Context: d.Context, Rubric: d.Rubric}
	default:
		return Question{}, fmt.Errorf("unknown question kind %q", d.Kind)
	}
	return q, nil
}

// ToDoc converts an Assessment into its serialized form.
func ToDoc(a Assessment) AssessmentDoc {
	d := AssessmentDoc{
		ID:               a.ID,
		SkillID:          a.SkillID,
		Name:             a.Name,
		Category:         a.Category,
		Difficulty:       string(a.Difficulty),
		TimeLimitMinutes: int(a.TimeLimit / time.Minute),
		PassingScore:     a.PassingScore,
		Questions:        make([]QuestionDoc, 0, len(a.Questions)),
	}
	for _, q := range a.Questions {
		qd := QuestionDoc{
			ID:          q.ID,
			Kind:        string(q.Kind()),
			Prompt:      q.Prompt,
			Explanation: q.Explanation,
			Points:      q.Points,
		}
		switch b := q.Body.(type) {
		case MultipleChoice:
			qd.Options = b.Options
			qd.Correct = StringList(b.Correct)
		case TrueFalse:
			qd.Correct = StringList{strconv.FormatBool(b.Correct)}
		case Coding:
			qd.Language = b.Language
			qd.Starter = b.Starter
			qd.Reference = b.Reference
		case Scenario:
			qd.Context = b.Context
			qd.Rubric = b.Rubric
		}
		d.Questions = append(d.Questions, qd)
	}
	return d
}
