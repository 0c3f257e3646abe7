package store

import (
	"sync/atomic"
	"time"

	"github.com/rickb777/date/v2/timespan"
)

// Transition describes one committed reduction.
type Transition[S any, A any] struct {
	// Seq increases by one per committed action, starting at 1.
	Seq uint64
	// Action is the action that was reduced.
	Action A
	// State is the state committed by the reduction.
	State S
	// TimeSpan covers the reduce and commit.
	TimeSpan timespan.TimeSpan
}

// clock is a monotonic logical clock stamping transitions.
type clock struct {
	seq atomic.Uint64
}

func (c *clock) next() uint64 {
	return c.seq.Add(1)
}

func (c *clock) current() uint64 {
	return c.seq.Load()
}

func spanSince(start time.Time) timespan.TimeSpan {
	return timespan.BetweenTimes(start, time.Now())
}
