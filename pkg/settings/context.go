package settings

import (
	"context"
)

type contextKey string

const (
	runContextKey contextKey = "run"
)

// IntoContext stores the resolved run settings in the context.
func IntoContext(ctx context.Context, s *Run) context.Context {
	return context.WithValue(ctx, runContextKey, s)
}

// FromContext retrieves the run settings from the context.
func FromContext(ctx context.Context) (*Run, bool) {
	s, ok := ctx.Value(runContextKey).(*Run)
	return s, ok && s != nil
}

// FromContextOrDefault returns the stored run settings, or fresh CLI defaults
// when none were attached.
func FromContextOrDefault(ctx context.Context) *Run {
	if s, ok := FromContext(ctx); ok {
		return s
	}
	return NewCliParams()
}
