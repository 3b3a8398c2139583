// Package conditional gates work on a compile-time feature value.
//
// A Gate is a bool. When it is built from a constant, such as one of the
// features constants, the helpers below inline at the call site and the
// compiler drops the branch that can never run, closure bodies included.
// Gated work is still type-checked when its gate is off.
//
//	conditional.For(features.CheatSystem).Call(func() {
//		cheats.Process(os.Stdout, input)
//	})
//
//	tracer := conditional.Return(conditional.For(features.PerformanceMetrics), func() trace.Tracer {
//		return provider.Tracer("necrosis")
//	}, noopTracer)
//
//	system := conditional.Construct(conditional.For(features.CheatSystem), cheat.New, logger)
package conditional

import (
	"github.com/suborbital/necrosis/features"
)

// Gate is the gating capability for one feature value. It carries no state
// besides the value, so it can be created and thrown away freely.
type Gate bool

// On and Off are the two gates.
const (
	On  Gate = true
	Off Gate = false
)

// When returns the gate for a value, normally a features constant.
func When(enabled bool) Gate {
	return Gate(enabled)
}

// For returns the gate for a feature flag.
func For(f features.Flag) Gate {
	return Gate(f.Enabled())
}

// Enabled returns the value the gate was built with.
func (g Gate) Enabled() bool {
	return bool(g)
}

// Call runs work if the gate is on. Otherwise work is never invoked.
func (g Gate) Call(work func()) {
	if g {
		work()
	}
}

// Discard is Call for work that produces a value; the value is dropped.
func Discard[R any](g Gate, work func() R) {
	if g {
		_ = work()
	}
}

// Return runs work and returns its result if the gate is on, and returns
// fallback without running work otherwise.
func Return[T any](g Gate, work func() T, fallback T) T {
	if g {
		return work()
	}

	return fallback
}

// ReturnFunc is Return for a fallback that is itself costly to build.
// Exactly one of work and fallback runs.
func ReturnFunc[T any](g Gate, work, fallback func() T) T {
	if g {
		return work()
	}

	return fallback()
}
