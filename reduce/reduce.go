// Package reduce applies a tick's dialogue outcomes to the population,
// averaging every agent's contributions into its next preference
// distribution. This is the single canonical accumulation path: both the
// batched and actor schedulers parallelize only the expensive Dialogue
// evaluation and hand the results to this package, unparallelized, in the
// tick's pair-list order — which is what makes the two schedulers'
// outputs bit-identical for the same (n, ticks, seed, chunk, topology).
package reduce

import (
	"opiniondynamics/agent"
	"opiniondynamics/topology"
)

// PairOutcome is one pair's dialogue result: the two updated marginal
// distributions for agents I and J.
type PairOutcome struct {
	I, J   int
	MI, MJ [3]float64
}

// Apply averages each agent's contributions from outcomes (one entry per
// pair in pairs, same order, same length) into a new population. Agents
// with no partners this tick carry their preferences forward unchanged;
// Rho and Pi are always preserved from the prior state.
//
// outcomes must be aligned to pairs: outcomes[k] is the result for
// pairs[k]. Accumulation proceeds strictly in that order, so the result is
// independent of how outcomes were computed (sequential, chunked-parallel,
// or per-agent-actor) as long as the alignment holds.
func Apply(agents []agent.State, pairs []topology.Pair, outcomes []PairOutcome) []agent.State {
	n := len(agents)
	sums := make([][3]float64, n)
	counts := make([]int, n)

	for k, p := range pairs {
		out := outcomes[k]
		sums[p.I][0] += out.MI[0]
		sums[p.I][1] += out.MI[1]
		sums[p.I][2] += out.MI[2]
		counts[p.I]++

		sums[p.J][0] += out.MJ[0]
		sums[p.J][1] += out.MJ[1]
		sums[p.J][2] += out.MJ[2]
		counts[p.J]++
	}

	next := make([]agent.State, n)
	for a := 0; a < n; a++ {
		if counts[a] == 0 {
			next[a] = agents[a]
			continue
		}
		c := float64(counts[a])
		next[a] = agents[a].WithPrefs([3]float64{
			sums[a][0] / c,
			sums[a][1] / c,
			sums[a][2] / c,
		})
	}
	return next
}
