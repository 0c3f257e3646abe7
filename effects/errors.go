package effects

import (
	"errors"
	"fmt"
)

var (
	// ErrEffectPanicked wraps a panic raised inside an effect's work.
	ErrEffectPanicked = errors.New("effect panicked")

	// ErrNilEffect is returned when a zero Effect is executed.
	ErrNilEffect = errors.New("effect has no work")

	// ErrUnknownThrowMode is returned by ThrowModeByName for an unrecognised name.
	ErrUnknownThrowMode = errors.New("unknown throw mode")
)

func panicError(r any) error {
	if err, ok := r.(error); ok {
		return fmt.Errorf("%w: %w", ErrEffectPanicked, err)
	}
	return fmt.Errorf("%w: %v", ErrEffectPanicked, r)
}
