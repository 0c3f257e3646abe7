// Package feature holds the state and actions every screen-level feature repeats: an
// in-flight request counter, an alert slot, a destination slot, and the error action that
// ties effect failures to them.
package feature

// Requests counts the effects a feature is waiting on.
type Requests struct {
	Active int
}

// Begin records n more effects in flight.
func (r Requests) Begin(n int) Requests {
	r.Active += n
	return r
}

// End records n effects as settled, whether they delivered an action or not.
// The counter never drops below zero.
func (r Requests) End(n int) Requests {
	r.Active -= n
	if r.Active < 0 {
		r.Active = 0
	}
	return r
}

func (r Requests) Loading() bool {
	return r.Active > 0
}
