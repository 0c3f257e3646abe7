package handlers

import (
	"github.com/google/uuid"
)

// effectScope owns one dispatcher and its teardown.
//
// A scope belongs to whoever installed it; Close is not meant to race with itself.
type effectScope[T any] struct {
	EffectId   string
	dispatcher WorkerDispatcher[T]
	closeFn    func()
	closed     bool
}

func (es *effectScope[T]) Close() {
	if !es.closed {
		es.closeFn()
		es.closed = true
	}
}

func newEffectScope[T any](
	dispatcher WorkerDispatcher[T],
	teardown func(),
) *effectScope[T] {
	return &effectScope[T]{
		EffectId:   uuid.New().String(),
		dispatcher: dispatcher,
		closeFn:    teardown,
		closed:     false,
	}
}
