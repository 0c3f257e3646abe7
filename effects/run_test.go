package effects_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/on-the-ground/effect_ive_redux/effects"
	"github.com/on-the-ground/effect_ive_redux/effects/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type action struct {
	kind   string
	err    error
	unsent int
}

func onError(err error, unsent int) action {
	return action{kind: "error", err: err, unsent: unsent}
}

func ok(kind string) effects.Effect[action] {
	return effects.FromAction(action{kind: kind})
}

func fail() effects.Effect[action] {
	return effects.NewEffect(
		func(context.Context) (struct{}, error) { return struct{}{}, errBoom },
		func(struct{}) action { return action{kind: "unreachable"} },
	)
}

// after returns an effect that resolves once gate is closed.
func after(gate <-chan struct{}, result effects.Effect[action]) effects.Effect[action] {
	return effects.NewEffect(
		func(ctx context.Context) (action, error) {
			<-gate
			return result.Execute(ctx)
		},
		func(a action) action { return a },
	)
}

// straggler resolves successfully only once its context is cancelled, and reports that
// through cancelled.
func straggler(cancelled chan<- struct{}) effects.Effect[action] {
	return effects.NewEffect(
		func(ctx context.Context) (action, error) {
			<-ctx.Done()
			close(cancelled)
			return action{kind: "straggler"}, nil
		},
		func(a action) action { return a },
	)
}

type recorder struct {
	got []action
	// on, if set, runs after every dispatched action with the running total.
	on func(n int)
}

func (r *recorder) dispatch(a action) {
	r.got = append(r.got, a)
	if r.on != nil {
		r.on(len(r.got))
	}
}

func (r *recorder) kinds() []string {
	kinds := make([]string, 0, len(r.got))
	for _, a := range r.got {
		kinds = append(kinds, a.kind)
	}
	return kinds
}

func (r *recorder) count(kind string) int {
	n := 0
	for _, a := range r.got {
		if a.kind == kind {
			n++
		}
	}
	return n
}

func TestRun_NoneDropsFailures(t *testing.T) {
	rec := &recorder{}
	group := effects.NewEffectGroup(effects.ThrowNone[action](),
		ok("a"), fail(), ok("b"), fail(), ok("c"))

	report := effects.Run(context.Background(), group, rec.dispatch)

	assert.ElementsMatch(t, []string{"a", "b", "c"}, rec.kinds())
	assert.Equal(t, 0, rec.count("error"))
	assert.Equal(t, effects.Report{Effects: 5, Dispatched: 3, Failures: 2}, report)
}

func TestRun_LenientReportsEveryFailure(t *testing.T) {
	rec := &recorder{}
	group := effects.NewEffectGroup(effects.ThrowLenient(onError),
		ok("a"), fail(), ok("b"), fail(), ok("c"))

	report := effects.Run(context.Background(), group, rec.dispatch)

	require.Len(t, rec.got, 5)
	assert.Equal(t, 2, rec.count("error"))
	for _, a := range rec.got {
		if a.kind == "error" {
			assert.Equal(t, 1, a.unsent)
			assert.ErrorIs(t, a.err, errBoom)
		}
	}
	assert.Equal(t, 2, report.Failures)
	assert.Equal(t, 2, report.Unsent)
}

func TestRun_DeliversInCompletionOrder(t *testing.T) {
	firstGate := make(chan struct{})
	rec := &recorder{on: func(n int) {
		if n == 1 {
			close(firstGate)
		}
	}}
	group := effects.NewEffectGroup(effects.ThrowNone[action](),
		after(firstGate, ok("submitted-first")), ok("submitted-second"))

	effects.Run(context.Background(), group, rec.dispatch)

	assert.Equal(t, []string{"submitted-second", "submitted-first"}, rec.kinds())
}

func TestRun_PartialKeepsDeliveredAndCountsTheRest(t *testing.T) {
	failGate := make(chan struct{})
	cancelled := make(chan struct{})
	rec := &recorder{on: func(n int) {
		if n == 2 {
			close(failGate)
		}
	}}
	group := effects.NewEffectGroup(effects.ThrowPartial(onError),
		ok("a"), ok("b"), after(failGate, fail()), straggler(cancelled))

	report := effects.Run(context.Background(), group, rec.dispatch)

	require.Len(t, rec.got, 3)
	assert.ElementsMatch(t, []string{"a", "b"}, rec.kinds()[:2])
	assert.Equal(t, "error", rec.got[2].kind)
	assert.Equal(t, 2, rec.got[2].unsent)
	assert.Equal(t, 1, report.Failures)
	assert.Equal(t, 2, report.Unsent)

	select {
	case <-cancelled:
	case <-time.After(time.Second):
		t.Fatal("remaining effect was not cancelled")
	}
}

func TestRun_PartialThreeEffectScenario(t *testing.T) {
	failGate := make(chan struct{})
	cancelled := make(chan struct{})
	rec := &recorder{on: func(n int) {
		if n == 1 {
			close(failGate)
		}
	}}
	group := effects.NewEffectGroup(effects.ThrowPartial(onError),
		ok("first"), after(failGate, fail()), straggler(cancelled))

	effects.Run(context.Background(), group, rec.dispatch)

	select {
	case <-cancelled:
	case <-time.After(time.Second):
		t.Fatal("pending effect was not cancelled")
	}
	// The straggler has resolved by now; its action must not show up.
	require.Len(t, rec.got, 2)
	assert.Equal(t, []action{
		{kind: "first"},
		{kind: "error", err: rec.got[1].err, unsent: 2},
	}, rec.got)
	assert.ErrorIs(t, rec.got[1].err, errBoom)
}

func TestRun_PartialAllSucceed(t *testing.T) {
	rec := &recorder{}
	group := effects.NewEffectGroup(effects.ThrowPartial(onError), ok("a"), ok("b"), ok("c"))

	report := effects.Run(context.Background(), group, rec.dispatch)

	assert.ElementsMatch(t, []string{"a", "b", "c"}, rec.kinds())
	assert.Equal(t, 0, report.Failures)
}

func TestRun_AbsoluteWithholdsEverythingOnFailure(t *testing.T) {
	var finished sync.WaitGroup
	finished.Add(2)
	done := func(kind string) effects.Effect[action] {
		return effects.NewEffect(
			func(context.Context) (action, error) {
				defer finished.Done()
				return action{kind: kind}, nil
			},
			func(a action) action { return a },
		)
	}
	lateFailure := effects.NewEffect(
		func(context.Context) (struct{}, error) {
			finished.Wait()
			return struct{}{}, errBoom
		},
		func(struct{}) action { return action{kind: "unreachable"} },
	)
	rec := &recorder{}
	group := effects.NewEffectGroup(effects.ThrowAbsolute(onError), done("a"), done("b"), lateFailure)

	report := effects.Run(context.Background(), group, rec.dispatch)

	require.Len(t, rec.got, 1)
	assert.Equal(t, "error", rec.got[0].kind)
	assert.Equal(t, 3, rec.got[0].unsent)
	assert.ErrorIs(t, rec.got[0].err, errBoom)
	assert.Equal(t, 3, report.Unsent)
}

func TestRun_AbsoluteDeliversAllOnSuccess(t *testing.T) {
	rec := &recorder{}
	group := effects.NewEffectGroup(effects.ThrowAbsolute(onError), ok("a"), ok("b"), ok("c"))

	report := effects.Run(context.Background(), group, rec.dispatch)

	assert.ElementsMatch(t, []string{"a", "b", "c"}, rec.kinds())
	assert.Equal(t, 3, report.Dispatched)
}

func TestRun_CompletionIsLastAndOnce(t *testing.T) {
	modes := map[string]effects.ThrowMode[action]{
		"none":     effects.ThrowNone[action](),
		"lenient":  effects.ThrowLenient(onError),
		"partial":  effects.ThrowPartial(onError),
		"absolute": effects.ThrowAbsolute(onError),
	}
	mixes := map[string][]effects.Effect[action]{
		"all succeed": {ok("a"), ok("b")},
		"some fail":   {ok("a"), fail(), ok("b")},
		"all fail":    {fail(), fail()},
	}

	for modeName, mode := range modes {
		for mixName, mix := range mixes {
			t.Run(modeName+"/"+mixName, func(t *testing.T) {
				rec := &recorder{}
				group := effects.NewEffectGroup(mode, mix...).WithCompletion(action{kind: "completed"})

				effects.Run(context.Background(), group, rec.dispatch)

				require.NotEmpty(t, rec.got)
				assert.Equal(t, 1, rec.count("completed"))
				assert.Equal(t, "completed", rec.got[len(rec.got)-1].kind)
			})
		}
	}
}

func TestRun_EmptyGroupOnlyCompletes(t *testing.T) {
	rec := &recorder{}
	group := effects.NewEffectGroup[action](effects.ThrowPartial(onError)).WithCompletion(action{kind: "completed"})

	report := effects.Run(context.Background(), group, rec.dispatch)

	assert.Equal(t, []string{"completed"}, rec.kinds())
	assert.Equal(t, effects.Report{Effects: 0, Dispatched: 1}, report)

	rec = &recorder{}
	report = effects.Run(context.Background(), effects.EffectGroup[action]{}, rec.dispatch)
	assert.Empty(t, rec.got)
	assert.Equal(t, effects.Report{}, report)
}

func TestRun_PanicBecomesFailure(t *testing.T) {
	ctx, end, logs := log.WithTestEffectHandler(context.Background())

	panicking := effects.NewEffect(
		func(context.Context) (struct{}, error) { panic("kaboom") },
		func(struct{}) action { return action{kind: "unreachable"} },
	)
	rec := &recorder{}
	group := effects.NewEffectGroup(effects.ThrowLenient(onError), ok("a"), panicking)

	report := effects.Run(ctx, group, rec.dispatch)
	end()

	require.Len(t, rec.got, 2)
	assert.Equal(t, 1, report.Failures)
	for _, a := range rec.got {
		if a.kind == "error" {
			assert.ErrorIs(t, a.err, effects.ErrEffectPanicked)
			assert.Contains(t, a.err.Error(), "kaboom")
		}
	}
	assert.Equal(t, 1, logs.FilterMessage("panic in effect").Len())
}

func TestRun_AbortsWhenContextEnds(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hold := make(chan struct{})
	defer close(hold)

	rec := &recorder{}
	group := effects.NewEffectGroup(effects.ThrowNone[action](), after(hold, ok("late"))).
		WithCompletion(action{kind: "completed"})

	reports := make(chan effects.Report, 1)
	go func() {
		reports <- effects.Run(ctx, group, rec.dispatch)
	}()
	cancel()

	select {
	case report := <-reports:
		assert.True(t, report.Aborted)
		assert.Empty(t, rec.got)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancellation")
	}
}

func TestRun_LogsGroupLifecycle(t *testing.T) {
	ctx, end, logs := log.WithTestEffectHandler(context.Background())

	rec := &recorder{}
	effects.Run(ctx, effects.Single(ok("a"), effects.ThrowNone[action]()), rec.dispatch)
	end()

	started := logs.FilterMessage("effect group started").All()
	settled := logs.FilterMessage("effect group settled").All()
	require.Len(t, started, 1)
	require.Len(t, settled, 1)
	assert.Equal(t, started[0].ContextMap()["group"], settled[0].ContextMap()["group"])
	assert.Equal(t, "none", started[0].ContextMap()["mode"])
}
