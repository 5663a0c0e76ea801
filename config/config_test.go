package config

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"opiniondynamics/scheduler"
	"opiniondynamics/sim"
)

func writeScenarioFile(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "scenario.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func TestFromYaml(t *testing.T) {
	Convey("Given a scenario document with an all_pairs topology", t, func() {
		path := writeScenarioFile(t, `
kind: opiniondynamics.Scenario
def:
  n: 50
  ticks: 3
  seed: 42
  chunk: 16
  topology: all_pairs
  scheduler: actor
`)

		scenario, err := FromYaml(path)

		Convey("It decodes every field", func() {
			So(err, ShouldBeNil)
			So(scenario.N, ShouldEqual, 50)
			So(scenario.Ticks, ShouldEqual, 3)
			So(scenario.Seed, ShouldEqual, int64(42))
			So(scenario.Chunk, ShouldEqual, 16)
			So(scenario.Topology, ShouldEqual, "all_pairs")
			So(scenario.Scheduler, ShouldEqual, "actor")
		})
	})
}

func TestSweepFromYaml(t *testing.T) {
	Convey("Given a sweep scenario document", t, func() {
		path := writeScenarioFile(t, `
kind: opiniondynamics.SweepScenario
def:
  minN: 5
  maxN: 25
  ticks: 2
  seed: 7
  chunk: 8
  topology: k_matching
  k: 2
`)

		scenario, err := SweepFromYaml(path)

		Convey("It decodes every field", func() {
			So(err, ShouldBeNil)
			So(scenario.MinN, ShouldEqual, 5)
			So(scenario.MaxN, ShouldEqual, 25)
			So(scenario.K, ShouldEqual, 2)
			So(scenario.Topology, ShouldEqual, "k_matching")
		})
	})
}

func TestParseTopology(t *testing.T) {
	Convey("Given topology strings", t, func() {
		Convey("empty string and all_pairs both select AllPairs", func() {
			for _, s := range []string{"", "all_pairs"} {
				topo, err := ParseTopology(s, 0)
				So(err, ShouldBeNil)
				So(topo.Kind, ShouldEqual, sim.AllPairs)
			}
		})

		Convey("k_matching selects RandomKMatching with K carried through", func() {
			topo, err := ParseTopology("k_matching", 3)
			So(err, ShouldBeNil)
			So(topo.Kind, ShouldEqual, sim.RandomKMatching)
			So(topo.K, ShouldEqual, 3)
		})

		Convey("an unrecognized string is rejected", func() {
			_, err := ParseTopology("bogus", 0)
			So(err, ShouldNotBeNil)
		})
	})
}

func TestParseScheduler(t *testing.T) {
	Convey("Given scheduler strings", t, func() {
		Convey("empty string and batched both select BatchedKind", func() {
			for _, s := range []string{"", "batched"} {
				kind, err := ParseScheduler(s)
				So(err, ShouldBeNil)
				So(kind, ShouldEqual, scheduler.BatchedKind)
			}
		})

		Convey("actor selects ActorKind", func() {
			kind, err := ParseScheduler("actor")
			So(err, ShouldBeNil)
			So(kind, ShouldEqual, scheduler.ActorKind)
		})

		Convey("an unrecognized string is rejected", func() {
			_, err := ParseScheduler("bogus")
			So(err, ShouldNotBeNil)
		})
	})
}
