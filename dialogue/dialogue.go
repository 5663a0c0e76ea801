// Package dialogue implements the per-pair update: project the joint
// distribution of two agents through their transition matrix, marginalize
// back out, and normalize. This is the pure-function kernel every scheduler
// (batched or actor) calls once per selected pair.
package dialogue

import (
	"opiniondynamics/agent"
	"opiniondynamics/roundutil"
	"opiniondynamics/transition"
)

// roundDecimals is the number of fractional digits the marginals are
// rounded to before normalization. This is the operation sequence that
// defines cross-implementation bit-identity: round first, normalize
// second.
const roundDecimals = 4

// Run applies transition matrix m to the outer product of alice's and
// bob's current preferences and returns both agents' next marginal
// distributions, each independently rounded and normalized.
func Run(alice, bob agent.State, m transition.Matrix) (aliceMarg, bobMarg [3]float64) {
	// Step 1: joint distribution v[3i+j] = alice.Prefs[i] * bob.Prefs[j].
	var v [9]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			v[3*i+j] = alice.Prefs[i] * bob.Prefs[j]
		}
	}

	// Step 2: project r = v . m (row-vector times matrix).
	var r [9]float64
	for k := 0; k < 9; k++ {
		var sum float64
		for row := 0; row < 9; row++ {
			sum += v[row] * m[row][k]
		}
		r[k] = sum
	}

	// Step 3/4: reshape R[i][j] = r[3i+j] and marginalize.
	var aliceSum, bobSum [3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			cell := r[3*i+j]
			aliceSum[i] += cell
			bobSum[j] += cell
		}
	}

	// Step 5: round each marginal component to 4 decimals, half-to-even.
	for i := 0; i < 3; i++ {
		aliceSum[i] = roundutil.HalfEven(aliceSum[i], roundDecimals)
		bobSum[i] = roundutil.HalfEven(bobSum[i], roundDecimals)
	}

	// Step 6: normalize each marginal by its own sum.
	aliceMarg = normalize(aliceSum)
	bobMarg = normalize(bobSum)
	return
}

func normalize(v [3]float64) [3]float64 {
	sum := v[0] + v[1] + v[2]
	return [3]float64{v[0] / sum, v[1] / sum, v[2] / sum}
}
