package scheduler

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"opiniondynamics/agent"
	"opiniondynamics/topology"
)

func seedAgents(n int) []agent.State {
	agents := make([]agent.State, n)
	for i := 0; i < n; i++ {
		agents[i] = agent.New(0.3+0.01*float64(i), 0.6-0.01*float64(i), 0.4+0.02*float64(i))
	}
	return agents
}

func TestBatchedCompute(t *testing.T) {
	Convey("Given a Batched scheduler with chunk=1", t, func() {
		b := NewBatched(1)
		agents := seedAgents(5)
		pairs := topology.AllPairs(5)

		Convey("It produces one outcome per pair, aligned to pairs", func() {
			outcomes, err := b.Compute(context.Background(), agents, pairs)
			So(err, ShouldBeNil)
			So(len(outcomes), ShouldEqual, len(pairs))
			for k, o := range outcomes {
				So(o.I, ShouldEqual, pairs[k].I)
				So(o.J, ShouldEqual, pairs[k].J)
			}
		})
	})

	Convey("Given chunk sizes 1, 2 and the full pair count", t, func() {
		agents := seedAgents(6)
		pairs := topology.AllPairs(6)

		var results [][]float64
		for _, chunk := range []int{1, 2, len(pairs)} {
			b := NewBatched(chunk)
			outcomes, err := b.Compute(context.Background(), agents, pairs)
			So(err, ShouldBeNil)
			flat := make([]float64, 0, len(outcomes)*6)
			for _, o := range outcomes {
				flat = append(flat, o.MI[:]...)
				flat = append(flat, o.MJ[:]...)
			}
			results = append(results, flat)
		}

		Convey("Chunk size never changes the result", func() {
			for i := 1; i < len(results); i++ {
				So(results[i], ShouldResemble, results[0])
			}
		})
	})

	Convey("Given an invalid chunk size", t, func() {
		b := NewBatched(0)

		Convey("Compute rejects it", func() {
			_, err := b.Compute(context.Background(), seedAgents(2), topology.AllPairs(2))
			So(err, ShouldNotBeNil)
		})
	})

	Convey("Given no pairs", t, func() {
		b := NewBatched(4)

		Convey("Compute returns an empty, non-nil outcome slice", func() {
			outcomes, err := b.Compute(context.Background(), seedAgents(1), nil)
			So(err, ShouldBeNil)
			So(outcomes, ShouldNotBeNil)
			So(len(outcomes), ShouldEqual, 0)
		})
	})
}
