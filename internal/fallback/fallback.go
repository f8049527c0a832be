// Package fallback implements the "try once, else substitute" pattern shared
// by every unreliable collaborator: catalog sources and scorers.
package fallback

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Do runs op once. If op returns an error or panics, the value produced by
// fallback is returned instead and the second return value is true.
// Do never returns an error.
func Do[T any](ctx context.Context, log *zap.Logger, name string, op func(context.Context) (T, error), fallback func() T) (T, bool) {
	if log == nil {
		log = zap.NewNop()
	}

	v, err := run(ctx, op)
	if err == nil {
		return v, false
	}

	log.Warn("using fallback",
		zap.String("operation", name),
		zap.Error(err),
	)
	return fallback(), true
}

func run[T any](ctx context.Context, op func(context.Context) (T, error)) (v T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	if err := ctx.Err(); err != nil {
		return v, err
	}
	return op(ctx)
}
