package handlers

import (
	"context"

	effectmodel "github.com/on-the-ground/effect_ive_redux/effects/internal/model"
)

// NewFireAndForgetHandler starts the workers of a fire-and-forget handler.
//
// With one worker every payload shares a single queue; with more, payloads are routed by
// the xxhash of their PartitionKey so that equal keys keep their relative order.
// Closing the handler stops intake, lets the workers drain their buffers, then runs teardown.
func NewFireAndForgetHandler[T effectmodel.Partitionable](
	ctx context.Context,
	config effectmodel.EffectScopeConfig,
	handleFn func(context.Context, T),
	teardown func(),
) FireAndForgetHandler[T] {
	ctx, cancelFn := context.WithCancel(ctx)

	var dispatcher WorkerDispatcher[T]
	if config.NumWorkers <= 1 {
		dispatcher = NewSingleQueue(ctx, config.BufferSize, handleFn)
	} else {
		dispatcher = NewPartitionedQueue(ctx, config.NumWorkers, config.BufferSize, handleFn)
	}

	return FireAndForgetHandler[T]{
		effectScope: newEffectScope(
			dispatcher,
			func() {
				cancelFn()
				<-dispatcher.Done()
				teardown()
			},
		),
		scopeCtx: ctx,
	}
}

type FireAndForgetHandler[T effectmodel.Partitionable] struct {
	*effectScope[T]
	scopeCtx context.Context
}

// FireAndForgetEffect enqueues payload unless either the caller's context or the handler
// scope is already done. It blocks while the selected worker's buffer is full.
func (ffh FireAndForgetHandler[T]) FireAndForgetEffect(ctx context.Context, payload T) bool {
	select {
	case <-ctx.Done():
		return false
	case <-ffh.scopeCtx.Done():
		return false
	default:
	}

	select {
	case <-ctx.Done():
		return false
	case <-ffh.scopeCtx.Done():
		return false
	case ffh.dispatcher.GetChannelOf(payload) <- payload:
		return true
	}
}
