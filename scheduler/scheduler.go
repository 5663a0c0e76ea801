// Package scheduler implements the two interaction-parallel orchestrations:
// a batched worker pool over chunked pair lists, and a one-goroutine-per-
// agent actor model with explicit tick barriers. Both compute the same
// thing — the dialogue kernel over every selected pair — and hand their
// results to reduce.Apply in the same canonical order, which is what makes
// their outputs equal for identical inputs.
//
// The worker-pool shape (bounded concurrency, errgroup-supervised, a shared
// read-only snapshot) generalizes a goroutine-per-episode worker pool with
// channel fan-in from "generate episodes, estimator drains" to "evaluate
// dialogues, reducer accumulates," and from best-effort ordering to the
// strict pair-list order this kernel's determinism requires.
package scheduler

import (
	"context"

	"opiniondynamics/agent"
	"opiniondynamics/reduce"
	"opiniondynamics/topology"
)

// Kind selects which orchestration computes a tick's dialogue outcomes.
type Kind int

const (
	// BatchedKind partitions the pair list into chunks dispatched to a
	// bounded worker pool.
	BatchedKind Kind = iota
	// ActorKind assigns one persistent goroutine per agent, synchronized by
	// a per-tick barrier.
	ActorKind
)

func (k Kind) String() string {
	switch k {
	case BatchedKind:
		return "batched"
	case ActorKind:
		return "actor"
	default:
		return "unknown"
	}
}

// Scheduler computes one tick's dialogue outcomes for every pair, aligned
// index-for-index with pairs, from a read-only snapshot of agents.
type Scheduler interface {
	Compute(ctx context.Context, agents []agent.State, pairs []topology.Pair) ([]reduce.PairOutcome, error)
}
