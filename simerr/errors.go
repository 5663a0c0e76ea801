// Package simerr: sentinel error set for the simulation core (unified, consistent).
// This file defines ONLY package-level sentinel errors used across the core
// packages. Every boundary MUST return these sentinels (optionally wrapped
// with %w for context) and tests MUST check them via errors.Is.
//
// ERROR TAXONOMY (documented, enforced in sim.Run):
//   InvalidArgument   — raised before any work begins; caller's fault.
//   InternalInvariant — a bug; the run aborts and the error surfaces unmodified.
//   WorkerFailure     — a scheduler worker's error; coordinator cancels siblings.
package simerr

import "errors"

var (
	// ErrInvalidTopology is returned when a random-matching degree k is out
	// of [1, n-1], or an unrecognized topology or scheduler kind is requested.
	ErrInvalidTopology = errors.New("opiniondynamics: invalid topology")

	// ErrInvalidRange is returned by Sweep when min_n < 2 or max_n < min_n.
	ErrInvalidRange = errors.New("opiniondynamics: invalid sweep range")

	// ErrNonPositiveChunk is returned when chunk < 1.
	ErrNonPositiveChunk = errors.New("opiniondynamics: chunk must be positive")

	// ErrNegativeTicks is returned when ticks < 0.
	ErrNegativeTicks = errors.New("opiniondynamics: ticks must be non-negative")

	// ErrNonPositivePopulation is returned when n < 1.
	ErrNonPositivePopulation = errors.New("opiniondynamics: n must be at least 1")

	// ErrInternalInvariant wraps a violated internal invariant (non-unit row
	// sum, negative preference, partner count mismatch). Indicates a bug.
	ErrInternalInvariant = errors.New("opiniondynamics: internal invariant violated")

	// ErrWorkerFailure wraps a scheduler worker failure. The coordinator
	// cancels remaining workers and discards partial tick state.
	ErrWorkerFailure = errors.New("opiniondynamics: worker failure")
)

// InvalidArgument wraps a sentinel from the InvalidArgument family with
// caller-facing detail, preserving errors.Is(err, sentinel).
func InvalidArgument(sentinel error, detail string) error {
	return &wrapped{sentinel: sentinel, detail: detail}
}

// InternalInvariant wraps ErrInternalInvariant with a description of the
// specific invariant that failed.
func InternalInvariant(detail string) error {
	return &wrapped{sentinel: ErrInternalInvariant, detail: detail}
}

// WorkerFailure wraps ErrWorkerFailure with the underlying worker error.
func WorkerFailure(cause error) error {
	return &wrapped{sentinel: ErrWorkerFailure, detail: cause.Error(), cause: cause}
}

type wrapped struct {
	sentinel error
	detail   string
	cause    error
}

func (w *wrapped) Error() string {
	if w.detail == "" {
		return w.sentinel.Error()
	}
	return w.sentinel.Error() + ": " + w.detail
}

func (w *wrapped) Unwrap() error {
	return w.sentinel
}

// Cause returns the underlying worker error, if any.
func (w *wrapped) Cause() error {
	return w.cause
}
