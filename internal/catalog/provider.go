package catalog

import (
	"context"
	"errors"
	"slices"

	"go.uber.org/zap"

	"github.com/abhisek/careerpath/internal/fallback"
)

// Provider supplies the list of available assessments. Implementations may
// fail; callers go through Load to get a usable catalog regardless.
type Provider interface {
	Assessments(ctx context.Context) ([]Assessment, error)
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(ctx context.Context) ([]Assessment, error)

func (f ProviderFunc) Assessments(ctx context.Context) ([]Assessment, error) {
	return f(ctx)
}

// Static serves a fixed list of assessments.
type Static []Assessment

func (s Static) Assessments(context.Context) ([]Assessment, error) {
	return slices.Clone(s), nil
}

// BuiltinProvider serves Builtin().
var BuiltinProvider Provider = ProviderFunc(func(context.Context) ([]Assessment, error) {
	return Builtin(), nil
})

// ErrEmptyCatalog is returned when a provider succeeds with no assessments.
var ErrEmptyCatalog = errors.New("catalog: provider returned no assessments")

// Load fetches the catalog from p exactly once. Errors, empty results and
// catalogs that fail Validate are replaced by Builtin(). The second return
// value reports whether the builtin catalog was substituted.
func Load(ctx context.Context, p Provider, log *zap.Logger) ([]Assessment, bool) {
	return fallback.Do(ctx, log, "catalog.load", func(ctx context.Context) ([]Assessment, error) {
		assessments, err := p.Assessments(ctx)
		if err != nil {
			return nil, err
		}
		if len(assessments) == 0 {
			return nil, ErrEmptyCatalog
		}
		if err := Validate(assessments); err != nil {
			return nil, err
		}
		return assessments, nil
	}, Builtin)
}

// Find returns the assessment with the given id.
func Find(assessments []Assessment, id string) (Assessment, bool) {
	for _, a := range assessments {
		if a.ID == id {
			return a, true
		}
	}
	return Assessment{}, false
}
