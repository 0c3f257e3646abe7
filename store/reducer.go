package store

import "github.com/on-the-ground/effect_ive_redux/effects"

// Reducer computes the next state from the current one and an action, and describes any
// follow-up asynchronous work as an effect group.
//
// Reduce must be pure and total. It runs on the store's loop goroutine; a panic is not
// recovered and takes the process down.
type Reducer[S any, A any] interface {
	Reduce(state S, action A) Result[S, A]
}

// ReducerFunc adapts a plain function to Reducer.
type ReducerFunc[S any, A any] func(state S, action A) Result[S, A]

func (f ReducerFunc[S, A]) Reduce(state S, action A) Result[S, A] {
	return f(state, action)
}

// Result is the outcome of one reduction. A nil Effects means no asynchronous work.
type Result[S any, A any] struct {
	State   S
	Effects *effects.EffectGroup[A]
}

// NoEffect returns state with no follow-up work.
func NoEffect[A any, S any](state S) Result[S, A] {
	return Result[S, A]{State: state}
}

// WithEffects returns state together with group.
func WithEffects[S any, A any](state S, group effects.EffectGroup[A]) Result[S, A] {
	return Result[S, A]{State: state, Effects: &group}
}
