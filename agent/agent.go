// Package agent defines the simulation's fundamental unit: a pair of fixed
// scalars (resistance, persuasion) and a preference distribution over three
// alternatives. It is a small, copyable struct carrying identity fields
// plus the one mutable payload, Prefs, that the dialogue kernel rewrites
// wholesale every tick.
package agent

// State is one agent's full state. Rho and Pi are fixed at construction and
// never change; Prefs is replaced wholesale at the end of every tick by the
// tick reducer.
type State struct {
	// Rho is the agent's resistance to changing its preference, in [0, 1].
	Rho float64
	// Pi is the agent's persuasiveness toward counterparts, in [0, 1].
	Pi float64
	// Prefs is the probability distribution over the three alternatives.
	// Prefs[0]+Prefs[1]+Prefs[2] == 1 to the precision of the dialogue
	// kernel's normalization step; every component is non-negative.
	Prefs [3]float64
}

// New constructs an agent with the canonical initial distribution derived
// from a single uniform draw u: Prefs = [u, 1-u, 0]. The third alternative
// is unreachable until some dialogue routes probability mass into it.
func New(rho, pi, u float64) State {
	return State{
		Rho:   rho,
		Pi:    pi,
		Prefs: [3]float64{u, 1 - u, 0},
	}
}

// WithPrefs returns a copy of a with its preference distribution replaced,
// leaving Rho and Pi untouched. This is the only way Prefs changes after
// construction: agents never mutate their own Rho/Pi.
func (a State) WithPrefs(prefs [3]float64) State {
	a.Prefs = prefs
	return a
}
