package effects

import "slices"

// EffectGroup is a batch of effects sharing one ThrowMode and an optional completion
// action. Most groups hold a single effect.
//
// The zero value is an empty group under ThrowNone.
type EffectGroup[A any] struct {
	effects    []Effect[A]
	mode       ThrowMode[A]
	completion *A
}

// NewEffectGroup groups effects under mode. An empty group is valid and means
// there is no asynchronous work.
func NewEffectGroup[A any](mode ThrowMode[A], effects ...Effect[A]) EffectGroup[A] {
	return EffectGroup[A]{
		effects: slices.Clone(effects),
		mode:    mode,
	}
}

// Single is the common one-effect group.
func Single[A any](effect Effect[A], mode ThrowMode[A]) EffectGroup[A] {
	return NewEffectGroup(mode, effect)
}

// WithCompletion returns a copy of g that delivers action once every effect has been
// handled, whatever the mode and whether or not anything failed.
func (g EffectGroup[A]) WithCompletion(action A) EffectGroup[A] {
	g.completion = &action
	return g
}

func (g EffectGroup[A]) Completion() (A, bool) {
	if g.completion == nil {
		var zero A
		return zero, false
	}
	return *g.completion, true
}

func (g EffectGroup[A]) Mode() ThrowMode[A] {
	if g.mode == nil {
		return ThrowNone[A]()
	}
	return g.mode
}

func (g EffectGroup[A]) Effects() []Effect[A] { return slices.Clone(g.effects) }
func (g EffectGroup[A]) Len() int             { return len(g.effects) }
func (g EffectGroup[A]) IsEmpty() bool        { return len(g.effects) == 0 }
