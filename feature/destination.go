package feature

// Destination is an optional navigation target of type D.
// The zero value presents nothing.
type Destination[D any] struct {
	target    D
	presented bool
}

// Present returns a destination showing target.
func Present[D any](target D) Destination[D] {
	return Destination[D]{target: target, presented: true}
}

func (d Destination[D]) Get() (D, bool) {
	return d.target, d.presented
}

func (d Destination[D]) IsPresented() bool {
	return d.presented
}

// Clear returns an empty destination.
func (d Destination[D]) Clear() Destination[D] {
	return Destination[D]{}
}

// DestinationCompleted reports that the presented destination was dismissed.
type DestinationCompleted struct{}
