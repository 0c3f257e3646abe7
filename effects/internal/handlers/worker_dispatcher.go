package handlers

import (
	"context"
	"sync"

	effectmodel "github.com/on-the-ground/effect_ive_redux/effects/internal/model"
)

// --- common interface ---

type WorkerDispatcher[T any] interface {
	GetChannelOf(msg T) chan T
	// Done is closed once every worker has drained its buffer and exited.
	Done() <-chan struct{}
}

// runWorker handles messages until ctx is cancelled, then drains whatever is still buffered.
func runWorker[T any](ctx context.Context, ch chan T, handleFn func(context.Context, T)) {
	for {
		select {
		case msg := <-ch:
			handleFn(ctx, msg)
		case <-ctx.Done():
			for {
				select {
				case msg := <-ch:
					handleFn(ctx, msg)
				default:
					return
				}
			}
		}
	}
}

// --- single queue ---

type singleQueue[T any] struct {
	effectCh chan T
	doneCh   chan struct{}
}

func (q singleQueue[T]) GetChannelOf(_ T) chan T {
	return q.effectCh
}

func (q singleQueue[T]) Done() <-chan struct{} {
	return q.doneCh
}

func NewSingleQueue[T any](
	ctx context.Context,
	bufferSize int,
	handleFn func(context.Context, T),
) WorkerDispatcher[T] {
	effCh := make(chan T, bufferSize)
	doneCh := make(chan struct{})
	ready := make(chan struct{})

	go func(ch chan T) {
		defer close(doneCh)
		close(ready)
		runWorker(ctx, ch, handleFn)
	}(effCh)

	<-ready

	return singleQueue[T]{effectCh: effCh, doneCh: doneCh}
}

// --- partitioned queue ---

type partitionedQueue[T effectmodel.Partitionable] struct {
	effectChs []chan T
	doneCh    chan struct{}
}

func (pq partitionedQueue[T]) GetChannelOf(msg T) chan T {
	idx := getIndexByHash(msg, len(pq.effectChs))
	return pq.effectChs[idx]
}

func (pq partitionedQueue[T]) Done() <-chan struct{} {
	return pq.doneCh
}

func NewPartitionedQueue[T effectmodel.Partitionable](
	ctx context.Context,
	numWorkers, bufferSize int,
	handleFn func(context.Context, T),
) WorkerDispatcher[T] {
	channels := make([]chan T, numWorkers)
	ready := sync.WaitGroup{}
	running := sync.WaitGroup{}
	for i := 0; i < numWorkers; i++ {
		ready.Add(1)
		running.Add(1)
		ch := make(chan T, bufferSize)
		go func(ch chan T) {
			defer running.Done()
			ready.Done()
			runWorker(ctx, ch, handleFn)
		}(ch)
		channels[i] = ch
	}
	ready.Wait()

	doneCh := make(chan struct{})
	go func() {
		running.Wait()
		close(doneCh)
	}()
	return partitionedQueue[T]{effectChs: channels, doneCh: doneCh}
}
