package store

import "github.com/google/uuid"

// DefaultMailboxHint is the initial mailbox capacity. The mailbox grows past it as needed.
const DefaultMailboxHint = 64

type config struct {
	id          string
	mailboxHint int
	closers     []func() error
}

func newConfig(opts []Option) config {
	cfg := config{
		id:          uuid.NewString(),
		mailboxHint: DefaultMailboxHint,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// Option configures a Store.
type Option func(*config)

// WithID names the store. It tags every log the store emits. Defaults to a random UUID.
func WithID(id string) Option {
	return func(c *config) {
		if id != "" {
			c.id = id
		}
	}
}

// WithMailboxHint sets the initial mailbox capacity.
func WithMailboxHint(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.mailboxHint = n
		}
	}
}

// WithCloser registers fn to run when the store closes, after the loop and every effect
// group have stopped. Closers run in registration order; their errors are combined.
func WithCloser(fn func() error) Option {
	return func(c *config) {
		c.closers = append(c.closers, fn)
	}
}
