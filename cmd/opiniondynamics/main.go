/*
Opiniondynamics runs the deterministic multi-agent dialogue simulator
directly from the command line: a single `run` against fixed parameters, or
a `sweep` across a population range with per-n elapsed milliseconds printed
to stdout. This front-end carries none of the core's invariants; it exists
only so the module is runnable.
*/
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"opiniondynamics/config"
	"opiniondynamics/sim"
)

var (
	mode       *string
	n          *int
	minN       *int
	maxN       *int
	ticks      *int
	seed       *int64
	chunk      *int
	topology   *string
	k          *int
	schedFlag  *string
	configPath *string
)

// TODO: per 12-factor rules these should be overridable from env too; KISS
// for now.
func init() {
	mode = flag.String("mode", "run", `"run" or "sweep"`)
	n = flag.Int("n", 100, "population size (run mode)")
	minN = flag.Int("min-n", 2, "minimum population size (sweep mode)")
	maxN = flag.Int("max-n", 10, "maximum population size (sweep mode)")
	ticks = flag.Int("ticks", 10, "number of discrete ticks")
	seed = flag.Int64("seed", 42, "RNG seed")
	chunk = flag.Int("chunk", 64, "batched scheduler chunk size")
	topology = flag.String("topology", "all_pairs", `"all_pairs" or "k_matching"`)
	k = flag.Int("k", 1, "matching degree (topology=k_matching only)")
	schedFlag = flag.String("scheduler", "batched", `"batched" or "actor"`)
	configPath = flag.String("config", "", "scenario YAML file; overrides the flags above when set")
	flag.Parse()
}

func resolveRun() (int, int, int64, int, sim.Topology, sim.Options, error) {
	if *configPath != "" {
		scenario, err := config.FromYaml(*configPath)
		if err != nil {
			return 0, 0, 0, 0, sim.Topology{}, sim.Options{}, err
		}
		topo, err := config.ParseTopology(scenario.Topology, scenario.K)
		if err != nil {
			return 0, 0, 0, 0, sim.Topology{}, sim.Options{}, err
		}
		schedKind, err := config.ParseScheduler(scenario.Scheduler)
		if err != nil {
			return 0, 0, 0, 0, sim.Topology{}, sim.Options{}, err
		}
		return scenario.N, scenario.Ticks, scenario.Seed, scenario.Chunk, topo, sim.Options{Scheduler: schedKind}, nil
	}

	topo, err := config.ParseTopology(*topology, *k)
	if err != nil {
		return 0, 0, 0, 0, sim.Topology{}, sim.Options{}, err
	}
	schedKind, err := config.ParseScheduler(*schedFlag)
	if err != nil {
		return 0, 0, 0, 0, sim.Topology{}, sim.Options{}, err
	}
	return *n, *ticks, *seed, *chunk, topo, sim.Options{Scheduler: schedKind}, nil
}

func runOnce() error {
	runN, runTicks, runSeed, runChunk, topo, opts, err := resolveRun()
	if err != nil {
		return err
	}

	stats, err := sim.Run(runN, runTicks, runSeed, runChunk, topo, opts)
	if err != nil {
		return err
	}

	encoded, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(encoded))
	return nil
}

func runSweep() error {
	var (
		sweepMinN, sweepMaxN, sweepTicks, sweepChunk int
		sweepSeed                                    int64
		topo                                         sim.Topology
		opts                                         sim.Options
		err                                          error
	)

	if *configPath != "" {
		scenario, fileErr := config.SweepFromYaml(*configPath)
		if fileErr != nil {
			return fileErr
		}
		sweepMinN, sweepMaxN, sweepTicks, sweepSeed, sweepChunk = scenario.MinN, scenario.MaxN, scenario.Ticks, scenario.Seed, scenario.Chunk
		if topo, err = config.ParseTopology(scenario.Topology, scenario.K); err != nil {
			return err
		}
		schedKind, schedErr := config.ParseScheduler(scenario.Scheduler)
		if schedErr != nil {
			return schedErr
		}
		opts = sim.Options{Scheduler: schedKind}
	} else {
		sweepMinN, sweepMaxN, sweepTicks, sweepSeed, sweepChunk = *minN, *maxN, *ticks, *seed, *chunk
		if topo, err = config.ParseTopology(*topology, *k); err != nil {
			return err
		}
		schedKind, schedErr := config.ParseScheduler(*schedFlag)
		if schedErr != nil {
			return schedErr
		}
		opts = sim.Options{Scheduler: schedKind}
	}

	return sim.Sweep(sweepMinN, sweepMaxN, sweepTicks, sweepSeed, sweepChunk, topo, opts, func(n int, elapsedMillis int64) {
		fmt.Println(elapsedMillis)
	})
}

func main() {
	var err error
	switch *mode {
	case "sweep":
		err = runSweep()
	default:
		err = runOnce()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
