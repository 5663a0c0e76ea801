// Package transition builds the 9x9 row-stochastic transition matrix that
// the dialogue kernel applies to a pair's joint distribution. The matrix is
// a tiny, fixed-shape tensor — nine stack-allocated rows of nine floats —
// deliberately kept as a plain array rather than reached for via a tensor
// library: at this size a dependency would only perturb the floating-point
// operation order the bit-identity contract depends on.
package transition

import "opiniondynamics/agent"

// Matrix is the 9x9 row-stochastic transition matrix. Rows and columns are
// indexed by ordered choice pairs (va, vb) in {1,2,3}^2 via Index.
type Matrix [9][9]float64

// Index maps a 1-indexed ordered choice pair (va, vb) to its row or column
// position in Matrix.
func Index(va, vb int) int {
	return (va-1)*3 + (vb - 1)
}

// Build constructs the transition matrix for the ordered pair (alice, bob)
// from their current preference distributions. The matrix starts as the
// identity (no belief change by default); only the two disagreement rows
// (1,2) and (2,1) are overwritten, every other row stays the identity.
func Build(alice, bob agent.State) Matrix {
	var m Matrix
	for i := 0; i < 9; i++ {
		m[i][i] = 1
	}

	probsA := choiceProbsTriple(alice.Rho, bob.Pi)
	probsB := choiceProbsTriple(bob.Rho, alice.Pi)

	// The disagreement between alternatives 1 and 2 contributes two ordered
	// rows: (1, 2) built from alice's split over bob's, and the mirror
	// (2, 1) built from bob's split over alice's.
	buildDisagreement(&m, 1, 2, probsA, probsB)
	buildDisagreement(&m, 2, 1, probsB, probsA)

	return m
}

// choiceProbs computes the (keep, change, alt) split for an agent with
// resistance r facing a counterpart with persuasion p: the raw triple
// (r*(1-p), (1-r)*p, r*p) normalized to sum to 1. The simulation's
// construction never passes r = p = 0 simultaneously, so the zero-sum case
// is out of scope and left unguarded here.
func choiceProbs(r, p float64) (keep, change, alt float64) {
	rawKeep := r * (1 - p)
	rawChange := (1 - r) * p
	rawAlt := r * p
	sum := rawKeep + rawChange + rawAlt
	return rawKeep / sum, rawChange / sum, rawAlt / sum
}

// buildDisagreement overwrites the nine cells of row Index(va, vb), using
// probsFrom = (pa1, pa2, pa3) for the row's own agent and probsTo =
// (pb1, pb2, pb3) for the counterpart.
func buildDisagreement(m *Matrix, va, vb int, probsFrom, probsTo [3]float64) {
	pa1, pa2, pa3 := probsFrom[0], probsFrom[1], probsFrom[2]
	pb1, pb2, pb3 := probsTo[0], probsTo[1], probsTo[2]

	row := Index(va, vb)
	m[row][Index(va, vb)] = pa1 * pb1
	m[row][Index(va, va)] = pa1 * pb2
	m[row][Index(vb, vb)] = pa2 * pb1
	m[row][Index(vb, va)] = pa2 * pb2
	m[row][Index(va, 3)] = pa1 * pb3
	m[row][Index(3, vb)] = pa3 * pb1
	m[row][Index(3, 3)] = pa3 * pb3
	m[row][Index(vb, 3)] = pa2 * pb3
	m[row][Index(3, va)] = pa3 * pb2
}

// choiceProbsTriple is a convenience for callers (Build) that want the
// triple as a value instead of three named returns.
func choiceProbsTriple(r, p float64) [3]float64 {
	keep, change, alt := choiceProbs(r, p)
	return [3]float64{keep, change, alt}
}
