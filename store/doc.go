// Package store runs a reducer over a stream of actions on a single goroutine.
//
// A [Store] owns one state value. Every action, whether sent by the host or produced by an
// effect, goes through one FIFO mailbox and is reduced by one loop goroutine, so reducer
// calls never overlap and each committed state is the fold of the reducer over the actions
// processed so far.
//
// Effect groups returned by the reducer run off the loop through [effects.Run]. Their
// actions come back through [Store.Dispatch] and queue behind whatever is already waiting.
//
// Logging goes through the log effect handler installed in the context given to [New],
// partitioned by store id.
package store
