package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/abhisek/careerpath/internal/llm"
)

// GeneratorConfig controls LLM catalog generation.
type GeneratorConfig struct {
	Skills           []string
	Difficulty       Level
	Questions        int
	TimeLimitMinutes int
	PassingScore     int
	MaxTokens        int
	Temperature      float64
	Avoid            []string
}

// DefaultGeneratorConfig returns generation settings for a short
// intermediate assessment.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Difficulty:       LevelIntermediate,
		Questions:        5,
		TimeLimitMinutes: 10,
		PassingScore:     70,
		MaxTokens:        4096,
		Temperature:      0.7,
	}
}

// Generator is a Provider that asks an LLM for one assessment per skill.
type Generator struct {
	provider llm.Provider
	config   GeneratorConfig
	log      *zap.Logger
}

// NewGenerator creates a Generator.
func NewGenerator(provider llm.Provider, cfg GeneratorConfig, log *zap.Logger) *Generator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Generator{provider: provider, config: cfg, log: log}
}

// Assessments generates one assessment per configured skill. Skills whose
// generation fails are skipped; an error is returned only if none succeed.
func (g *Generator) Assessments(ctx context.Context) ([]Assessment, error) {
	if len(g.config.Skills) == 0 {
		return nil, errors.New("catalog generator: no skills configured")
	}

	var out []Assessment
	var errs []error
	for _, skill := range g.config.Skills {
		a, err := g.Generate(ctx, skill)
		if err != nil {
			g.log.Warn("assessment generation failed", zap.String("skill", skill), zap.Error(err))
			errs = append(errs, err)
			continue
		}
		out = append(out, a)
	}
	if len(out) == 0 {
		return nil, errors.Join(errs...)
	}
	return out, nil
}

// Generate produces a single validated assessment for skill.
func (g *Generator) Generate(ctx context.Context, skill string) (Assessment, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeCatalogGen)

	req := llm.Request{
		System:      generatorSystemPrompt,
		Prompt:      buildGeneratorMessage(skill, g.config),
		Schema:      AssessmentSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return Assessment{}, fmt.Errorf("LLM generation failed: %w", err)
	}

	var doc AssessmentDoc
	if err := json.Unmarshal(resp.Content, &doc); err != nil {
		return Assessment{}, fmt.Errorf("failed to parse LLM response: %w", err)
	}
	if doc.SkillID == "" {
		doc.SkillID = slug(skill)
	}

	a, err := doc.Assessment()
	if err != nil {
		return Assessment{}, err
	}
	if err := Validate([]Assessment{a}); err != nil {
		return Assessment{}, err
	}
	return a, nil
}

func slug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Join(strings.Fields(s), "-")
}
