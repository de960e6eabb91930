package service

import (
	"context"

	"github.com/google/uuid"
)

type runIDKey struct{}

// WithRunID attaches a run id to context for log correlation.
func WithRunID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, runIDKey{}, id)
}

// RunID returns the run id from context or a fresh one.
func RunID(ctx context.Context) string {
	if s, ok := ctx.Value(runIDKey{}).(string); ok && s != "" {
		return s
	}
	return uuid.NewString()
}

type callerKey struct{}

// WithCaller attaches the invoking identity for audit logging.
func WithCaller(ctx context.Context, caller string) context.Context {
	return context.WithValue(ctx, callerKey{}, caller)
}

// Caller returns the identity set by WithCaller, or "local".
func Caller(ctx context.Context) string {
	if s, ok := ctx.Value(callerKey{}).(string); ok && s != "" {
		return s
	}
	return "local"
}
