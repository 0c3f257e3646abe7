// Package effects models the asynchronous side of a unidirectional data flow.
//
// A reducer stays pure by describing follow-up work as data: an [Effect] wraps one
// asynchronous, fallible computation together with the mapping of its result to an
// action, and an [EffectGroup] batches effects under one [ThrowMode].
//
// # Throw modes
//
// A ThrowMode decides what a batch of concurrently running effects does when some of
// them fail:
//   - ThrowNone: failures are dropped, every success is delivered.
//   - ThrowLenient: every success is delivered, every failure becomes an error action
//     with an unsent count of 1.
//   - ThrowPartial: the first failure cancels the rest; successes delivered so far stay,
//     and one error action carries the number of effects left undelivered.
//   - ThrowAbsolute: the first failure cancels the rest and nothing but one error action
//     (unsent count = group size) is delivered.
//
// Actions are delivered in completion order, never in submission order. Cancellation is
// best-effort: a cancelled effect may still finish its side effect, its result is dropped.
//
// [Run] executes a group and hands every resulting action to a dispatch function from a
// single goroutine. The store package uses it to funnel results back into its
// single-writer loop.
//
// Example:
//
//	group := effects.Single(
//	    effects.NewEffect(client.FetchProduct(id), func(p Product) Action { return ProductResponse{p} }),
//	    effects.ThrowLenient(func(err error, unsent int) Action { return FetchFailed{err, unsent} }),
//	).WithCompletion(FetchCompleted{})
package effects
