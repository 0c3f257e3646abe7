package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/on-the-ground/effect_ive_redux/effects"
	"github.com/on-the-ground/effect_ive_redux/effects/log"
	"go.uber.org/multierr"
)

type envelope[S any, A any] struct {
	action A
	// reply receives the committed state; nil for fire-and-forget dispatches.
	reply chan S
}

type subscriber[S any, A any] struct {
	id uint64
	fn func(Transition[S, A])
}

// Store owns a state value and applies a reducer to it, one action at a time, on a
// dedicated loop goroutine.
//
// Thread-safety model:
//   - Send, Dispatch, State, Subscribe, Idle, Close: safe from any goroutine
//   - the reducer and every observer run on the loop goroutine only
type Store[S any, A any] struct {
	id      string
	reducer Reducer[S, A]
	mailbox *mailbox[envelope[S, A]]
	clock   clock
	closers []func() error

	// logCtx carries the log handler, tagged with the store id.
	logCtx context.Context
	// effectsCtx scopes every effect group; cancelled on Close.
	effectsCtx    context.Context
	cancelEffects context.CancelFunc

	stateMu sync.RWMutex
	state   S

	subsMu  sync.Mutex
	subs    []subscriber[S, A]
	nextSub uint64

	idleMu   sync.Mutex
	inflight int
	idleCh   chan struct{}

	groups    sync.WaitGroup
	loopDone  chan struct{}
	closeOnce sync.Once
	closeErr  error
}

// New starts a store holding initial and reducing with reducer.
//
// The loop stops when ctx ends or Close is called. ctx also provides the log effect
// handler, if any, and is the parent of every effect group's context.
func New[S any, A any](
	ctx context.Context,
	initial S,
	reducer Reducer[S, A],
	opts ...Option,
) *Store[S, A] {
	cfg := newConfig(opts)
	logCtx := log.WithPartition(ctx, cfg.id)
	effectsCtx, cancelEffects := context.WithCancel(logCtx)

	idle := make(chan struct{})
	close(idle)

	s := &Store[S, A]{
		id:            cfg.id,
		reducer:       reducer,
		mailbox:       newMailbox[envelope[S, A]](cfg.mailboxHint),
		closers:       cfg.closers,
		logCtx:        logCtx,
		effectsCtx:    effectsCtx,
		cancelEffects: cancelEffects,
		state:         initial,
		idleCh:        idle,
		loopDone:      make(chan struct{}),
	}

	log.LogEff(logCtx, log.LogInfo, "store started", map[string]interface{}{
		"store": s.id,
	})
	go s.run(ctx)
	return s
}

// ID returns the store's id.
func (s *Store[S, A]) ID() string {
	return s.id
}

// Send enqueues action and waits until it has been reduced and its state committed.
//
// It returns ErrStoreClosed if the store does not accept the action or stops before
// applying it. If ctx ends first, Send returns ctx.Err(); the action stays queued and
// will still be applied.
func (s *Store[S, A]) Send(ctx context.Context, action A) (S, error) {
	var zero S
	reply := make(chan S, 1)
	if !s.enqueue(envelope[S, A]{action: action, reply: reply}) {
		return zero, ErrStoreClosed
	}

	select {
	case state := <-reply:
		return state, nil
	case <-ctx.Done():
		return zero, ctx.Err()
	case <-s.loopDone:
		select {
		case state := <-reply:
			return state, nil
		default:
			return zero, ErrStoreClosed
		}
	}
}

// Dispatch enqueues action without waiting. It returns false if the store is closed.
// Observers and effects deliver their actions this way.
func (s *Store[S, A]) Dispatch(action A) bool {
	return s.enqueue(envelope[S, A]{action: action})
}

// State returns the latest committed state.
func (s *Store[S, A]) State() S {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.state
}

// Subscribe registers fn to be called once per committed transition, in commit order, on
// the loop goroutine. fn must not call Send; it may call Dispatch.
// The returned function unregisters fn and may be called more than once.
func (s *Store[S, A]) Subscribe(fn func(Transition[S, A])) (unsubscribe func()) {
	s.subsMu.Lock()
	s.nextSub++
	id := s.nextSub
	s.subs = append(s.subs, subscriber[S, A]{id: id, fn: fn})
	s.subsMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subsMu.Lock()
			defer s.subsMu.Unlock()
			for i, sub := range s.subs {
				if sub.id == id {
					s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
					return
				}
			}
		})
	}
}

// Idle blocks until the mailbox is empty and no effect group is running.
// It returns ErrStoreClosed once the loop has stopped, idle or not.
func (s *Store[S, A]) Idle(ctx context.Context) error {
	select {
	case <-s.loopDone:
		return ErrStoreClosed
	default:
	}

	s.idleMu.Lock()
	idle := s.idleCh
	s.idleMu.Unlock()

	select {
	case <-idle:
		// Close settles the store too, so idle and loopDone can both be ready.
		select {
		case <-s.loopDone:
			return ErrStoreClosed
		default:
			return nil
		}
	case <-ctx.Done():
		return ctx.Err()
	case <-s.loopDone:
		return ErrStoreClosed
	}
}

// Close stops intake, lets the loop apply the actions already queued, cancels running
// effect groups and waits for them, then runs the registered closers.
//
// The returned error combines every closer error. Later calls return the same error.
func (s *Store[S, A]) Close() error {
	s.closeOnce.Do(func() {
		s.mailbox.close()
		<-s.loopDone

		s.cancelEffects()
		s.groups.Wait()

		var err error
		for _, closer := range s.closers {
			err = multierr.Append(err, closer())
		}
		s.closeErr = err

		log.LogEff(s.logCtx, log.LogInfo, "store closed", map[string]interface{}{
			"store":   s.id,
			"seq":     s.clock.current(),
			"dropped": s.mailbox.len(),
		})
	})
	return s.closeErr
}

func (s *Store[S, A]) enqueue(env envelope[S, A]) bool {
	s.busy()
	if !s.mailbox.enqueue(env) {
		s.done()
		return false
	}
	return true
}

func (s *Store[S, A]) busy() {
	s.idleMu.Lock()
	defer s.idleMu.Unlock()
	if s.inflight == 0 {
		s.idleCh = make(chan struct{})
	}
	s.inflight++
}

func (s *Store[S, A]) done() {
	s.idleMu.Lock()
	defer s.idleMu.Unlock()
	s.inflight--
	if s.inflight == 0 {
		close(s.idleCh)
	}
}

// run is the single-writer loop. It returns when ctx ends, or once the mailbox is closed
// and drained.
func (s *Store[S, A]) run(ctx context.Context) {
	defer close(s.loopDone)

	for {
		if env, ok := s.mailbox.tryDequeue(); ok {
			s.step(env)
			s.done()
			continue
		}

		select {
		case <-ctx.Done():
			s.mailbox.close()
			return
		case <-s.mailbox.wait():
			if s.mailbox.drained() {
				return
			}
		}
	}
}

// step reduces one action. Called only from run.
func (s *Store[S, A]) step(env envelope[S, A]) {
	start := time.Now()

	// Only the loop writes s.state, so it can read it unlocked.
	result := s.reducer.Reduce(s.state, env.action)
	s.stateMu.Lock()
	s.state = result.State
	s.stateMu.Unlock()

	transition := Transition[S, A]{
		Seq:      s.clock.next(),
		Action:   env.action,
		State:    result.State,
		TimeSpan: spanSince(start),
	}
	log.LogEff(s.logCtx, log.LogDebug, "transition", map[string]interface{}{
		"store":  s.id,
		"seq":    transition.Seq,
		"action": fmt.Sprintf("%T", env.action),
	})

	s.notify(transition)
	if env.reply != nil {
		env.reply <- result.State
	}

	if result.Effects != nil {
		s.schedule(*result.Effects)
	}
}

func (s *Store[S, A]) notify(transition Transition[S, A]) {
	s.subsMu.Lock()
	subs := make([]subscriber[S, A], len(s.subs))
	copy(subs, s.subs)
	s.subsMu.Unlock()

	for _, sub := range subs {
		sub.fn(transition)
	}
}

// schedule hands group to its own goroutine. A group without effects starts nothing;
// its completion action, if any, is queued right away.
func (s *Store[S, A]) schedule(group effects.EffectGroup[A]) {
	if group.IsEmpty() {
		if completion, ok := group.Completion(); ok {
			s.Dispatch(completion)
		}
		return
	}
	if s.effectsCtx.Err() != nil {
		log.LogEff(s.logCtx, log.LogWarn, "store closing, effect group dropped", map[string]interface{}{
			"store":   s.id,
			"effects": group.Len(),
		})
		return
	}

	s.busy()
	s.groups.Add(1)
	go func() {
		defer s.groups.Done()
		defer s.done()

		report := effects.Run(s.effectsCtx, group, func(action A) {
			s.Dispatch(action)
		})
		if report.Failures > 0 {
			log.LogEff(s.logCtx, log.LogWarn, "effect group failed", map[string]interface{}{
				"store":    s.id,
				"mode":     group.Mode().String(),
				"failures": report.Failures,
				"unsent":   report.Unsent,
			})
		}
	}()
}
