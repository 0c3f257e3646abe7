package effects

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/on-the-ground/effect_ive_redux/effects/log"
)

// Report summarises one execution of an EffectGroup.
type Report struct {
	Effects    int  // effects in the group
	Dispatched int  // actions handed to dispatch, error and completion actions included
	Failures   int  // failures observed before the group settled
	Unsent     int  // unsent count carried by error actions
	Aborted    bool // ctx ended before the group settled; nothing further was dispatched
}

// Run executes the effects of group concurrently under its ThrowMode and passes every
// resulting action to dispatch, in completion order, from the calling goroutine.
// The completion action, if any, is dispatched exactly once after all the others.
//
// An empty group starts no goroutine; only its completion action is dispatched.
// If ctx ends before the group settles, Run stops dispatching and returns with Aborted set.
func Run[A any](ctx context.Context, group EffectGroup[A], dispatch func(A)) Report {
	report := Report{Effects: group.Len()}

	if !group.IsEmpty() {
		groupID := uuid.NewString()
		log.LogEff(ctx, log.LogDebug, "effect group started", map[string]interface{}{
			"group":   groupID,
			"mode":    group.Mode().String(),
			"effects": report.Effects,
		})

		groupCtx, cancel := context.WithCancel(ctx)
		results := spawn(groupCtx, group.effects)

		r := &runner[A]{
			ctx:      ctx,
			cancel:   cancel,
			results:  results,
			total:    group.Len(),
			dispatch: dispatch,
			report:   &report,
		}
		switch mode := group.Mode().(type) {
		case noneMode[A]:
			r.none()
		case lenientMode[A]:
			r.lenient(mode.onError)
		case partialMode[A]:
			r.partial(mode.onError)
		case absoluteMode[A]:
			r.absolute(mode.onError)
		default:
			// ThrowMode is sealed; reaching this is a bug in this package.
			cancel()
			panic(fmt.Errorf("effects: unrecognised throw mode %T", mode))
		}
		cancel()

		log.LogEff(ctx, log.LogDebug, "effect group settled", map[string]interface{}{
			"group":      groupID,
			"dispatched": report.Dispatched,
			"failures":   report.Failures,
			"unsent":     report.Unsent,
			"aborted":    report.Aborted,
		})
		if report.Aborted {
			return report
		}
	}

	if completion, ok := group.Completion(); ok {
		dispatch(completion)
		report.Dispatched++
	}
	return report
}

type runner[A any] struct {
	ctx      context.Context
	cancel   context.CancelFunc
	results  <-chan outcome[A]
	total    int
	dispatch func(A)
	report   *Report
}

// next waits for the next outcome unless the caller's context ends first.
func (r *runner[A]) next() (outcome[A], bool) {
	select {
	case out := <-r.results:
		return out, true
	case <-r.ctx.Done():
		r.report.Aborted = true
		return outcome[A]{}, false
	}
}

func (r *runner[A]) send(action A) {
	r.dispatch(action)
	r.report.Dispatched++
}

func (r *runner[A]) none() {
	for i := 0; i < r.total; i++ {
		out, ok := r.next()
		if !ok {
			return
		}
		if out.err != nil {
			r.report.Failures++
			continue
		}
		r.send(out.action)
	}
}

func (r *runner[A]) lenient(onError ErrorAction[A]) {
	for i := 0; i < r.total; i++ {
		out, ok := r.next()
		if !ok {
			return
		}
		if out.err != nil {
			r.report.Failures++
			r.report.Unsent++
			r.send(onError(out.err, 1))
			continue
		}
		r.send(out.action)
	}
}

func (r *runner[A]) partial(onError ErrorAction[A]) {
	sent := 0
	for i := 0; i < r.total; i++ {
		out, ok := r.next()
		if !ok {
			return
		}
		if out.err != nil {
			r.cancel()
			unsent := r.total - sent
			r.report.Failures++
			r.report.Unsent += unsent
			r.send(onError(out.err, unsent))
			return
		}
		r.send(out.action)
		sent++
	}
}

func (r *runner[A]) absolute(onError ErrorAction[A]) {
	collected := make([]A, 0, r.total)
	for i := 0; i < r.total; i++ {
		out, ok := r.next()
		if !ok {
			return
		}
		if out.err != nil {
			r.cancel()
			r.report.Failures++
			r.report.Unsent += r.total
			r.send(onError(out.err, r.total))
			return
		}
		collected = append(collected, out.action)
	}
	for _, action := range collected {
		r.send(action)
	}
}
