package conditional

// Invoker is implemented by values that can be invoked through an Instance.
type Invoker interface {
	Invoke(args ...any)
}

// Instance is what Create and Construct hand back: the constructed value
// when the gate is on, an Inert placeholder when it is off. Code that only
// touches the value behind an enabled gate can call Get; everything else
// can hold, invoke and assign to an Instance without caring which it is.
type Instance[T any] interface {
	// Get returns the value and true, or the zero T and false for Inert.
	Get() (T, bool)
	// Invoke forwards to the value if it is an Invoker or a func().
	Invoke(args ...any)
	// Assign replaces the value if v is a T and reports whether it did.
	Assign(v any) bool
	// Live reports whether a value was constructed.
	Live() bool
}

// Create calls ctor and wraps the result if the gate is on. When it is
// off ctor is never called and Inert[T] is returned.
func Create[T any](g Gate, ctor func() T) Instance[T] {
	if g {
		return &live[T]{value: ctor()}
	}

	return Inert[T]{}
}

// Construct is Create for a constructor taking arguments. The arguments
// are evaluated by the caller either way; ctor only runs when the gate is on.
func Construct[T, A any](g Gate, ctor func(A) T, args A) Instance[T] {
	if g {
		return &live[T]{value: ctor(args)}
	}

	return Inert[T]{}
}

type live[T any] struct {
	value T
}

func (l *live[T]) Get() (T, bool) {
	return l.value, true
}

func (l *live[T]) Invoke(args ...any) {
	switch v := any(l.value).(type) {
	case Invoker:
		v.Invoke(args...)
	case func():
		if v != nil {
			v()
		}
	}
}

func (l *live[T]) Assign(v any) bool {
	t, ok := v.(T)
	if !ok {
		return false
	}

	l.value = t

	return true
}

func (l *live[T]) Live() bool {
	return true
}

// Inert stands in for a T that was never built. It is safe to store,
// invoke with any arguments and assign anything to; none of it has an
// effect.
type Inert[T any] struct{}

func (Inert[T]) Get() (T, bool) {
	var zero T
	return zero, false
}

func (Inert[T]) Invoke(...any) {}

func (Inert[T]) Assign(any) bool {
	return false
}

func (Inert[T]) Live() bool {
	return false
}
