// Package options implements the generic functional option machinery shared
// by the configurable constructors in this module, such as the blob chunk
// encoder.
//
// Packages expose their option types as aliases of Option[T] for their own
// config target, keeping this package an internal detail:
//
//	type ChunkEncoderOption = options.Option[*ChunkEncoder]
package options

// Option configures a target of type T. Options are created with New or
// NoError and applied in order by Apply.
type Option[T any] interface {
	apply(T) error
}

// Func adapts a plain function to the Option interface.
type Func[T any] struct {
	applyFunc func(T) error
}

func (f *Func[T]) apply(target T) error {
	return f.applyFunc(target)
}

// New creates an option from a function that may reject its input, e.g. an
// out-of-range compression tag.
func New[T any](fn func(T) error) *Func[T] {
	return &Func[T]{applyFunc: fn}
}

// Apply applies the options to target in order, stopping at the first error.
func Apply[T any](target T, opts ...Option[T]) error {
	for _, opt := range opts {
		if err := opt.apply(target); err != nil {
			return err
		}
	}

	return nil
}

// NoError creates an option from a function that cannot fail.
func NoError[T any](fn func(T)) *Func[T] {
	return &Func[T]{
		applyFunc: func(target T) error {
			fn(target)
			return nil
		},
	}
}
