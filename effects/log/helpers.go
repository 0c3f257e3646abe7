package log

import (
	"context"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// WithTestEffectHandler installs a log handler that records entries in memory.
// Entries become visible to the returned ObservedLogs once they are handled; call the
// teardown to flush before asserting.
func WithTestEffectHandler(
	ctx context.Context,
) (context.Context, func() context.Context, *observer.ObservedLogs) {
	core, logs := observer.New(zap.DebugLevel)
	ctx, end := WithZapLogEffectHandler(ctx, 64, 1, zap.New(core))
	return ctx, end, logs
}
