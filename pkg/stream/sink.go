// Package stream turns the backend's raw chunk feed into player-safe
// narration fragments and an accumulated structured payload. One Session
// lives for exactly one turn.
package stream

// Sink receives narration fragments in strict arrival order, at most once
// per fragment. Implementations may forward to a callback, a channel, or a
// live transport, but must preserve ordering.
type Sink interface {
	Emit(fragment string) error
}

// SinkFunc adapts a plain function to the Sink interface.
type SinkFunc func(fragment string) error

func (f SinkFunc) Emit(fragment string) error { return f(fragment) }
