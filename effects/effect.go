package effects

import (
	"context"
	"time"

	"github.com/on-the-ground/effect_ive_redux/shared/helper"
)

// Effect is one deferred, asynchronous, fallible unit of work that resolves to an action.
// It is consumed once by the effect runner.
type Effect[A any] struct {
	execute func(context.Context) (A, error)
}

// NewEffect builds an effect from work producing a response of type R and a pure
// mapping of that response to an action.
func NewEffect[R any, A any](
	work func(context.Context) (R, error),
	respond func(R) A,
) Effect[A] {
	return Effect[A]{
		execute: func(ctx context.Context) (A, error) {
			res, err := work(ctx)
			if err != nil {
				var zero A
				return zero, err
			}
			return respond(res), nil
		},
	}
}

// FromAction yields action without doing any work.
func FromAction[A any](action A) Effect[A] {
	return Effect[A]{
		execute: func(context.Context) (A, error) {
			return action, nil
		},
	}
}

// Execute performs the work and returns the mapped action.
// Errors from the work are returned untouched.
func (e Effect[A]) Execute(ctx context.Context) (A, error) {
	if e.execute == nil {
		var zero A
		return zero, ErrNilEffect
	}
	return e.execute(ctx)
}

// Map turns an effect of one action type into an effect of another,
// e.g. to embed a child feature's effects in its parent's action union.
func Map[A any, B any](e Effect[A], f func(A) B) Effect[B] {
	return Effect[B]{
		execute: func(ctx context.Context) (B, error) {
			a, err := e.Execute(ctx)
			if err != nil {
				var zero B
				return zero, err
			}
			return f(a), nil
		},
	}
}

// Timeout bounds the work of e by d. The work sees a context that expires after d
// and the effect fails with context.DeadlineExceeded if the work honours it.
func Timeout[A any](e Effect[A], d time.Duration) Effect[A] {
	return Effect[A]{
		execute: func(ctx context.Context) (A, error) {
			ctx, cancel := context.WithTimeout(ctx, d)
			defer cancel()
			return e.Execute(ctx)
		},
	}
}

// Retry re-runs the work of e until it succeeds or attempts runs have failed.
// The final error wraps helper.ErrMaxAttempts and the last failure.
func Retry[A any](e Effect[A], attempts int) Effect[A] {
	return Effect[A]{
		execute: func(ctx context.Context) (A, error) {
			var action A
			err := helper.Retry(ctx, attempts, func() error {
				var err error
				action, err = e.Execute(ctx)
				return err
			})
			if err != nil {
				var zero A
				return zero, err
			}
			return action, nil
		},
	}
}
