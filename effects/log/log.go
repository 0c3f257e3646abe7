package log

import (
	"context"

	"github.com/on-the-ground/effect_ive_redux/effects/internal/handlers"
	effectmodel "github.com/on-the-ground/effect_ive_redux/effects/internal/model"
	"go.uber.org/zap"
)

// LogLevel defines the severity level for log messages.
type LogLevel string

const (
	// LogInfo is used for general informational messages.
	LogInfo LogLevel = "info"

	// LogWarn is used for potentially harmful situations.
	LogWarn LogLevel = "warn"

	// LogError is used for error events that might still allow the application to continue running.
	LogError LogLevel = "error"

	// LogDebug is used for debugging messages with detailed internal information.
	LogDebug LogLevel = "debug"
)

const unpartitioned = "unpartitioned"

// LogPayload is the payload structure for logging effect.
// It contains the log level, message string, and optional structured fields.
type LogPayload struct {
	Partition string
	Level     LogLevel
	Message   string
	Fields    map[string]interface{}
}

func (lp LogPayload) PartitionKey() string {
	if lp.Partition == "" {
		return unpartitioned
	}
	return lp.Partition
}

type partitionKey struct{}

// WithPartition tags every log emitted through ctx with key.
// Logs sharing a key are written by the same worker, in emission order.
func WithPartition(ctx context.Context, key string) context.Context {
	return context.WithValue(ctx, partitionKey{}, key)
}

func partitionOf(ctx context.Context) string {
	if key, ok := ctx.Value(partitionKey{}).(string); ok {
		return key
	}
	return ""
}

// WithZapLogEffectHandler registers a fire-and-forget log effect handler backed by logger.
//
// With numWorkers > 1 payloads are spread over workers by partition key.
// The returned teardown drains pending logs, syncs the logger, and gives back the parent context.
func WithZapLogEffectHandler(
	ctx context.Context,
	bufferSize, numWorkers int,
	logger *zap.Logger,
) (context.Context, func() context.Context) {
	handler := handlers.NewFireAndForgetHandler(
		ctx,
		effectmodel.NewEffectScopeConfig(bufferSize, numWorkers),
		func(_ context.Context, payload LogPayload) {
			write(logger, payload)
		},
		func() {
			// Sync on stdout/stderr returns EINVAL on some platforms; nothing to do about it.
			_ = logger.Sync()
		},
	)
	ctxWith := context.WithValue(ctx, effectmodel.EffectLog, handler)
	logger.Debug("created log effect handler", zap.String("effectId", handler.EffectId))

	return ctxWith, func() context.Context {
		handler.Close()
		return ctx
	}
}

func write(logger *zap.Logger, payload LogPayload) {
	fields := make([]zap.Field, 0, len(payload.Fields)+1)
	if payload.Partition != "" {
		fields = append(fields, zap.String("partition", payload.Partition))
	}
	for k, v := range payload.Fields {
		fields = append(fields, zap.Any(k, v))
	}

	switch payload.Level {
	case LogInfo:
		logger.Info(payload.Message, fields...)
	case LogWarn:
		logger.Warn(payload.Message, fields...)
	case LogError:
		logger.Error(payload.Message, fields...)
	case LogDebug:
		logger.Debug(payload.Message, fields...)
	default:
		logger.Info(payload.Message, fields...)
	}
}

// LogEff emits a structured log through the handler installed in ctx.
// Without a handler, or once it is closed, the call is a no-op.
func LogEff(ctx context.Context, level LogLevel, msg string, fields map[string]interface{}) {
	handler, ok := ctx.Value(effectmodel.EffectLog).(handlers.FireAndForgetHandler[LogPayload])
	if !ok {
		return
	}
	handler.FireAndForgetEffect(ctx, LogPayload{
		Partition: partitionOf(ctx),
		Level:     level,
		Message:   msg,
		Fields:    fields,
	})
}
