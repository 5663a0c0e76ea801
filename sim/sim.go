// Package sim is the single programmatic entry point for the simulation
// core: Run executes one simulation and Sweep runs a range of population
// sizes, timing each. Every package upstream of this one is a pure function
// or a pure-function-over-goroutines scheduler; sim is where the RNG state
// is actually threaded, in a fixed order, and where the two concurrent
// schedulers are wired behind one Topology/Scheduler selection.
package sim

import (
	"context"
	"fmt"
	"time"

	"opiniondynamics/agent"
	"opiniondynamics/reduce"
	"opiniondynamics/rng"
	"opiniondynamics/scheduler"
	"opiniondynamics/simerr"
	"opiniondynamics/simlog"
	"opiniondynamics/simstats"
	"opiniondynamics/topology"
)

// TopologyKind selects a pair-generation strategy for a run.
type TopologyKind int

const (
	// AllPairs selects every unordered pair every tick.
	AllPairs TopologyKind = iota
	// RandomKMatching selects a random k-matching every tick; K must be set.
	RandomKMatching
)

// Topology is the run-level topology selection: a kind plus, for
// RandomKMatching, the degree K.
type Topology struct {
	Kind TopologyKind
	K    int
}

func (t Topology) String() string {
	if t.Kind == AllPairs {
		return "ALL_PAIRS"
	}
	return fmt.Sprintf("RANDOM_MATCH(k=%d)", t.K)
}

func (t Topology) pairs(n int, seed int64, tick int) ([]topology.Pair, error) {
	if t.Kind == AllPairs {
		return topology.AllPairs(n), nil
	}
	return topology.RandomKMatching(n, t.K, seed, tick)
}

// Options configures a run beyond the five core positional parameters:
// which scheduler orchestrates each tick's dialogue evaluation. Both
// schedulers are always equivalent, so defaulting to Batched changes
// nothing observable.
type Options struct {
	Scheduler scheduler.Kind
}

// Run executes the full simulation for n agents across ticks discrete
// steps and returns the final Stats.
func Run(n, ticks int, seed int64, chunk int, topo Topology, opts Options) (simstats.Stats, error) {
	if n < 1 {
		return simstats.Stats{}, simerr.InvalidArgument(simerr.ErrNonPositivePopulation, fmt.Sprintf("n=%d", n))
	}
	if ticks < 0 {
		return simstats.Stats{}, simerr.InvalidArgument(simerr.ErrNegativeTicks, fmt.Sprintf("ticks=%d", ticks))
	}
	if chunk < 1 {
		return simstats.Stats{}, simerr.InvalidArgument(simerr.ErrNonPositiveChunk, fmt.Sprintf("chunk=%d", chunk))
	}
	if topo.Kind == RandomKMatching && (topo.K < 1 || topo.K >= n) {
		return simstats.Stats{}, simerr.InvalidArgument(simerr.ErrInvalidTopology, fmt.Sprintf("k=%d, n=%d", topo.K, n))
	}

	log := simlog.ForRun(n, ticks, seed, chunk, topo.String())
	log.Info().Str("scheduler", opts.Scheduler.String()).Msg("run starting")

	// Step (a): rho_i, pi_i, u_i for i = 0..n-1, in that order.
	st := rng.New(seed)
	agents := make([]agent.State, n)
	for i := 0; i < n; i++ {
		var rho, pi, u float64
		rho, st = rng.Uniform(st)
		pi, st = rng.Uniform(st)
		u, st = rng.Uniform(st)
		agents[i] = agent.New(rho, pi, u)
	}

	// Step (b): the initial-vote phase consumes one uniform per agent. Its
	// histogram is what a ticks=0 run reports; for ticks>0 every tick's vote
	// draw below overwrites it in turn, so only the last one the loop
	// produces survives.
	histogram, st := simstats.Vote(agents, st)

	sched, closeSched, err := newScheduler(opts.Scheduler, n, chunk)
	if err != nil {
		return simstats.Stats{}, err
	}
	defer closeSched()

	ctx := context.Background()

	for tick := 0; tick < ticks; tick++ {
		pairs, err := topo.pairs(n, seed, tick)
		if err != nil {
			return simstats.Stats{}, err
		}

		outcomes, err := sched.Compute(ctx, agents, pairs)
		if err != nil {
			log.Error().Err(err).Int("tick", tick).Msg("worker failure, aborting run")
			return simstats.Stats{}, err
		}

		agents = reduce.Apply(agents, pairs, outcomes)
		if err := validate(agents); err != nil {
			return simstats.Stats{}, err
		}

		// Step (c): one uniform per agent for this tick's vote histogram;
		// only the last tick's survives into the returned Stats.
		histogram, st = simstats.Vote(agents, st)
	}
	_ = st // final RNG state is not observable outside a run

	log.Info().Msg("run complete")
	return simstats.Summarize(agents, histogram), nil
}

// Sweep runs n = minN..maxN (inclusive) with the remaining parameters held
// fixed, emitting one elapsed-wall-clock-millisecond integer per run via
// report, in run order.
func Sweep(minN, maxN, ticks int, seed int64, chunk int, topo Topology, opts Options, report func(n int, elapsedMillis int64)) error {
	if minN < 2 || maxN < minN {
		return simerr.InvalidArgument(simerr.ErrInvalidRange, fmt.Sprintf("min_n=%d, max_n=%d", minN, maxN))
	}

	for n := minN; n <= maxN; n++ {
		start := time.Now()
		if _, err := Run(n, ticks, seed, chunk, topo, opts); err != nil {
			return err
		}
		report(n, time.Since(start).Milliseconds())
	}
	return nil
}

// newScheduler constructs the scheduler an Options.Scheduler selects, plus
// a teardown function the caller must defer. Batched is stateless across
// ticks and needs no teardown; Actor holds n persistent goroutines that
// must be released.
func newScheduler(kind scheduler.Kind, n, chunk int) (scheduler.Scheduler, func(), error) {
	switch kind {
	case scheduler.BatchedKind:
		return scheduler.NewBatched(chunk), func() {}, nil
	case scheduler.ActorKind:
		ctx, cancel := context.WithCancel(context.Background())
		a := scheduler.NewActor(ctx, n)
		return a, func() {
			cancel()
			_ = a.Close()
		}, nil
	default:
		return nil, nil, simerr.InvalidArgument(simerr.ErrInvalidTopology, fmt.Sprintf("unknown scheduler kind %v", kind))
	}
}

// validate enforces the InternalInvariant class of errors: a non-unit row
// sum or negative preference anywhere in the population is a bug, not a
// caller error, and aborts the run immediately.
func validate(agents []agent.State) error {
	for i, a := range agents {
		sum := a.Prefs[0] + a.Prefs[1] + a.Prefs[2]
		if sum < 1-1e-3 || sum > 1+1e-3 {
			return simerr.InternalInvariant(fmt.Sprintf("agent %d preferences sum to %f, want ~1", i, sum))
		}
		for c, p := range a.Prefs {
			if p < 0 {
				return simerr.InternalInvariant(fmt.Sprintf("agent %d component %d is negative: %f", i, c, p))
			}
		}
	}
	return nil
}
