package simstats

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"opiniondynamics/agent"
	"opiniondynamics/rng"
)

func TestVoteOnce(t *testing.T) {
	Convey("Given an agent with prefs [0.2, 0.3, 0.5]", t, func() {
		a := agent.State{Prefs: [3]float64{0.2, 0.3, 0.5}}

		Convey("A uniform draw at the low end of the range votes 0", func() {
			st := rng.New(1)
			for i := 0; i < 1000; i++ {
				u, next := rng.Uniform(st)
				if u <= 0.2 {
					v, _ := VoteOnce(a, st)
					So(v, ShouldEqual, 0)
					break
				}
				st = next
			}
		})

		Convey("Exactly one of the three vote buckets is chosen for any state", func() {
			st := rng.New(7)
			for i := 0; i < 200; i++ {
				v, next := VoteOnce(a, st)
				So(v, ShouldBeIn, []int{0, 1, 2})
				st = next
			}
		})
	})
}

func TestVote(t *testing.T) {
	Convey("Given a population and an RNG state", t, func() {
		agents := []agent.State{
			{Prefs: [3]float64{1, 0, 0}},
			{Prefs: [3]float64{0, 1, 0}},
			{Prefs: [3]float64{0, 0, 1}},
		}
		st := rng.New(42)

		Convey("Every agent is counted exactly once", func() {
			histogram, _ := Vote(agents, st)
			So(histogram[0]+histogram[1]+histogram[2], ShouldEqual, len(agents))
		})

		Convey("Deterministic prefs vote deterministically regardless of draw", func() {
			histogram, _ := Vote(agents, st)
			So(histogram[0], ShouldEqual, 1)
			So(histogram[1], ShouldEqual, 1)
			So(histogram[2], ShouldEqual, 1)
		})

		Convey("The same state produces the same histogram and advanced state", func() {
			h1, next1 := Vote(agents, st)
			h2, next2 := Vote(agents, st)
			So(h1, ShouldResemble, h2)
			So(next1, ShouldResemble, next2)
		})
	})
}

func TestSummarize(t *testing.T) {
	Convey("Given a population of three agents", t, func() {
		agents := []agent.State{
			agent.New(0.5, 0.5, 0.5),
			agent.New(0.4, 0.6, 0.25),
			agent.New(0.6, 0.4, 0.75),
		}
		histogram := [3]int{1, 1, 1}

		stats := Summarize(agents, histogram)

		Convey("TotalAgents and VoteResults are carried through unchanged", func() {
			So(stats.TotalAgents, ShouldEqual, 3)
			So(stats.VoteResults, ShouldResemble, histogram)
		})

		Convey("AgentPreferences has one rounded entry per agent", func() {
			So(len(stats.AgentPreferences), ShouldEqual, 3)
			for _, p := range stats.AgentPreferences {
				sum := p[0] + p[1] + p[2]
				So(sum, ShouldAlmostEqual, 1.0, 1e-9)
			}
		})

		Convey("AveragePreferences sums to 1 within tolerance", func() {
			sum := stats.AveragePreferences[0] + stats.AveragePreferences[1] + stats.AveragePreferences[2]
			So(sum, ShouldAlmostEqual, 1.0, 1e-3)
		})
	})

	Convey("Given an empty population", t, func() {
		stats := Summarize(nil, [3]int{0, 0, 0})

		Convey("AveragePreferences stays zeroed rather than dividing by zero", func() {
			So(stats.AveragePreferences, ShouldResemble, [3]float64{0, 0, 0})
			So(stats.TotalAgents, ShouldEqual, 0)
		})
	})
}
