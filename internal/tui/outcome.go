package tui

// Outcome is the result of an interaction: a value, or cancelled by escape
type Outcome[T any] struct {
	value     T
	cancelled bool
}

// Value wraps a completed result
func Value[T any](v T) Outcome[T] {
	return Outcome[T]{value: v}
}

// Cancelled returns the outcome of an escaped interaction
func Cancelled[T any]() Outcome[T] {
	return Outcome[T]{cancelled: true}
}

// Get returns the value and whether the interaction completed
func (o Outcome[T]) Get() (T, bool) {
	return o.value, !o.cancelled
}

// IsCancelled reports whether escape ended the interaction
func (o Outcome[T]) IsCancelled() bool {
	return o.cancelled
}
