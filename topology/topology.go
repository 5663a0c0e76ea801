// Package topology generates the list of unordered agent pairs for a tick
// under one of two interaction topologies: every pair (AllPairs) or a
// random k-matching. The per-tick fingerprint mixer that seeds the random
// topology is a SplitMix64-style avalanche finalizer over (seed, tick,
// tag); it is deliberately implementation-private and need not match any
// other implementation's fingerprint, only stay stable within this one.
package topology

import (
	"math"

	"opiniondynamics/rng"
	"opiniondynamics/simerr"
)

// Pair is an unordered pair of agent indices with I < J.
type Pair struct {
	I, J int
}

// fingerprintTag distinguishes this mixer's output space from any other
// SplitMix64-style derivation in the module, should one ever be added.
const fingerprintTag uint64 = 0x50414952535f4b4d // "PAIRS_KM" as bytes

// fingerprint mixes seed, tick, and the fixed tag into a 64-bit value via a
// SplitMix64 avalanche finalizer, for use as a fresh RNG seed.
func fingerprint(seed int64, tick int) int64 {
	x := uint64(seed) ^ (uint64(tick) + fingerprintTag)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31
	return int64(x)
}

// AllPairs returns every unordered pair (i, j) with 0 <= i < j < n, in
// lexicographic order. Deterministic and independent of seed or tick.
func AllPairs(n int) []Pair {
	pairs := make([]Pair, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			pairs = append(pairs, Pair{I: i, J: j})
		}
	}
	return pairs
}

// RandomKMatching returns the deduplicated, order-preserved list of pairs
// produced by drawing k uniform candidates per agent from a fresh RNG
// stream seeded by fingerprint(seed, tick). k must be in [1, n-1].
func RandomKMatching(n, k int, seed int64, tick int) ([]Pair, error) {
	if k < 1 || k >= n {
		return nil, simerr.InvalidArgument(simerr.ErrInvalidTopology, "k must satisfy 1 <= k <= n-1")
	}

	st := rng.New(fingerprint(seed, tick))

	pairs := make([]Pair, 0, n*k)
	seen := make(map[Pair]bool, n*k)

	for i := 0; i < n; i++ {
		for d := 0; d < k; d++ {
			var u float64
			u, st = rng.Uniform(st)

			jRaw := int(math.Floor(u * float64(n-1)))
			j := jRaw
			if jRaw >= i {
				j = jRaw + 1
			}

			a, b := i, j
			if a > b {
				a, b = b, a
			}
			p := Pair{I: a, J: b}
			if !seen[p] {
				seen[p] = true
				pairs = append(pairs, p)
			}
		}
	}

	return pairs, nil
}
