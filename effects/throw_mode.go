package effects

import "fmt"

// ErrorAction maps a failure to the action that reports it.
// unsent is the number of effects of the group whose actions will not be delivered
// because of this failure; reducers typically subtract it from an in-flight counter.
type ErrorAction[A any] func(err error, unsent int) A

// ThrowMode selects how a group of concurrently running effects handles failures.
// It is a closed set: ThrowNone, ThrowLenient, ThrowPartial and ThrowAbsolute.
type ThrowMode[A any] interface {
	fmt.Stringer
	sealedThrowMode()
}

const (
	modeNone     = "none"
	modeLenient  = "lenient"
	modePartial  = "partial"
	modeAbsolute = "absolute"
)

type noneMode[A any] struct{}

func (noneMode[A]) String() string   { return modeNone }
func (noneMode[A]) sealedThrowMode() {}

type lenientMode[A any] struct{ onError ErrorAction[A] }

func (lenientMode[A]) String() string   { return modeLenient }
func (lenientMode[A]) sealedThrowMode() {}

type partialMode[A any] struct{ onError ErrorAction[A] }

func (partialMode[A]) String() string   { return modePartial }
func (partialMode[A]) sealedThrowMode() {}

type absoluteMode[A any] struct{ onError ErrorAction[A] }

func (absoluteMode[A]) String() string   { return modeAbsolute }
func (absoluteMode[A]) sealedThrowMode() {}

// ThrowNone drops failures silently. Suited to background work that must not
// disturb the user when it fails.
func ThrowNone[A any]() ThrowMode[A] {
	return noneMode[A]{}
}

// ThrowLenient lets every effect complete and reports each failure separately
// with an unsent count of 1.
func ThrowLenient[A any](onError ErrorAction[A]) ThrowMode[A] {
	mustHandle(onError, modeLenient)
	return lenientMode[A]{onError: onError}
}

// ThrowPartial stops the group at the first failure. Actions already delivered stay
// delivered; one error action reports how many were not.
func ThrowPartial[A any](onError ErrorAction[A]) ThrowMode[A] {
	mustHandle(onError, modePartial)
	return partialMode[A]{onError: onError}
}

// ThrowAbsolute delivers the group's actions only if every effect succeeds.
// Otherwise a single error action reports the whole group as unsent.
func ThrowAbsolute[A any](onError ErrorAction[A]) ThrowMode[A] {
	mustHandle(onError, modeAbsolute)
	return absoluteMode[A]{onError: onError}
}

// ThrowModeByName resolves "none", "lenient", "partial" or "absolute".
// onError is ignored for "none".
func ThrowModeByName[A any](name string, onError ErrorAction[A]) (ThrowMode[A], error) {
	switch name {
	case modeNone:
		return ThrowNone[A](), nil
	case modeLenient:
		return ThrowLenient(onError), nil
	case modePartial:
		return ThrowPartial(onError), nil
	case modeAbsolute:
		return ThrowAbsolute(onError), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownThrowMode, name)
	}
}

func mustHandle[A any](onError ErrorAction[A], mode string) {
	if onError == nil {
		panic(fmt.Sprintf("effects: %s throw mode requires an error action", mode))
	}
}
