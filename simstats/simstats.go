// Package simstats implements the end-of-run summary: one categorical vote
// per agent sampled from its final distribution, and the rounded preference
// report. The vote draw continues the same shared RNG stream used to
// initialize agents, in agent-index order, so it is the caller's
// responsibility to thread the RngState in and back out rather than
// minting a fresh one here.
package simstats

import (
	"opiniondynamics/agent"
	"opiniondynamics/roundutil"
	"opiniondynamics/rng"
)

// reportDecimals is the number of fractional digits Stats reports
// preferences at: three, distinct from the dialogue kernel's four. The
// asymmetry between reporting precision and dialogue precision is
// deliberate; see DESIGN.md.
const reportDecimals = 3

// Stats is the final summary returned by a run.
type Stats struct {
	TotalAgents        int
	VoteResults        [3]int
	AveragePreferences [3]float64
	AgentPreferences   [][3]float64
}

// VoteOnce draws a single uniform from st and converts it to a vote index
// by inverse-CDF over a's current preferences: 0 if u <= p0, else 1 if
// u <= p0+p1, else 2. Returns the vote and the advanced RNG state.
func VoteOnce(a agent.State, st rng.State) (vote int, next rng.State) {
	u, next := rng.Uniform(st)
	p0, p1 := a.Prefs[0], a.Prefs[1]
	switch {
	case u <= p0:
		return 0, next
	case u <= p0+p1:
		return 1, next
	default:
		return 2, next
	}
}

// Vote draws one vote per agent in index order, threading a single RNG
// state across the whole population, and returns the resulting histogram
// alongside the advanced state.
func Vote(agents []agent.State, st rng.State) (histogram [3]int, next rng.State) {
	next = st
	for _, a := range agents {
		var v int
		v, next = VoteOnce(a, next)
		histogram[v]++
	}
	return histogram, next
}

// Summarize assembles the final Stats from the population and the vote
// histogram produced by the run's last tick: only the last tick's
// histogram survives into Stats.
func Summarize(agents []agent.State, histogram [3]int) Stats {
	n := len(agents)
	stats := Stats{
		TotalAgents:      n,
		VoteResults:      histogram,
		AgentPreferences: make([][3]float64, n),
	}

	var sum [3]float64
	for i, a := range agents {
		rounded := [3]float64{
			roundutil.HalfEven(a.Prefs[0], reportDecimals),
			roundutil.HalfEven(a.Prefs[1], reportDecimals),
			roundutil.HalfEven(a.Prefs[2], reportDecimals),
		}
		stats.AgentPreferences[i] = rounded
		sum[0] += a.Prefs[0]
		sum[1] += a.Prefs[1]
		sum[2] += a.Prefs[2]
	}

	if n > 0 {
		stats.AveragePreferences = [3]float64{
			roundutil.HalfEven(sum[0]/float64(n), reportDecimals),
			roundutil.HalfEven(sum[1]/float64(n), reportDecimals),
			roundutil.HalfEven(sum[2]/float64(n), reportDecimals),
		}
	}

	return stats
}
