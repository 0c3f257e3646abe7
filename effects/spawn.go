package effects

import (
	"context"
	"sync"

	"github.com/on-the-ground/effect_ive_redux/effects/log"
)

type outcome[A any] struct {
	index  int
	action A
	err    error
}

// spawn starts every effect in its own goroutine under ctx and funnels the outcomes,
// in completion order, into the returned channel.
//   - The channel is buffered to len(effects), so a child never blocks on a reader
//     that has stopped listening.
//   - A panicking child is recovered, logged, and reported as an ErrEffectPanicked failure.
//   - spawn returns once every child goroutine is running.
func spawn[A any](ctx context.Context, effects []Effect[A]) <-chan outcome[A] {
	results := make(chan outcome[A], len(effects))
	ready := sync.WaitGroup{}

	for idx, effect := range effects {
		ready.Add(1)
		go func(idx int, e Effect[A]) {
			ready.Done()
			results <- execute(ctx, idx, e)
		}(idx, effect)
	}

	ready.Wait()
	return results
}

func execute[A any](ctx context.Context, idx int, e Effect[A]) (out outcome[A]) {
	out.index = idx
	defer func() {
		if r := recover(); r != nil {
			log.LogEff(ctx, log.LogError, "panic in effect", map[string]interface{}{
				"index": idx,
				"error": r,
			})
			var zero A
			out.action = zero
			out.err = panicError(r)
		}
	}()
	out.action, out.err = e.Execute(ctx)
	return out
}
