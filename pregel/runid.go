package pregel

import (
	"context"

	"github.com/google/uuid"
)

type runIDKeyType struct{}

// RunIDKey is the context key a caller can set to control the run
// identifier used for Checkpointer.Save/Load and Emitter events, mirroring
// the teacher's ctx.Value(RunIDKey) convention. If unset, Stream/Transform/
// Invoke generate a random one.
var RunIDKey = runIDKeyType{}

// WithRunID returns a context carrying runID for the next Invoke/Stream/
// Transform/ATransform call — set this to resume a checkpointed run under
// its original runID.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, RunIDKey, runID)
}

func runIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(RunIDKey).(string); ok && v != "" {
		return v
	}
	return uuid.NewString()
}
