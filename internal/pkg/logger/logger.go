package logger

import (
	"context"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// AddFields attaches fields to the context logger and returns the new context
func AddFields(ctx context.Context, fields ...zap.Field) context.Context {
	return ctxzap.ToContext(ctx, ctxzap.Extract(ctx).With(fields...))
}

// WithAction tags the context logger with the operation being handled
func WithAction(ctx context.Context, action string) context.Context {
	return AddFields(ctx, zap.String("action", action))
}

// WithSeed tags the context logger with the seed the flow operates on
func WithSeed(ctx context.Context, seedID string) context.Context {
	return AddFields(ctx, zap.String("seed_id", seedID))
}
