// Package config loads named run/sweep scenario definitions from a YAML
// file, for the cmd front-end and for repeated Sweep invocations that would
// otherwise need five positional flags re-typed every time. It is pure
// ambient convenience, never part of sim's programmatic contract.
//
// The loader reads an outer kind/def document via viper, then the def
// payload is re-marshaled and unmarshaled into the concrete scenario struct
// via yaml.v3, rather than relying on viper's own mapstructure decoding for
// the inner shape.
package config

import (
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"opiniondynamics/scheduler"
	"opiniondynamics/sim"
	"opiniondynamics/simerr"
)

// outerDocument is a kind discriminator plus an opaque def payload whose
// shape depends on kind.
type outerDocument struct {
	Kind string      `mapstructure:"kind"`
	Def  interface{} `mapstructure:"def"`
}

// Scenario is one named run definition: the five parameters sim.Run takes
// positionally, plus the scheduler choice as a runtime option.
type Scenario struct {
	N         int    `yaml:"n"`
	Ticks     int    `yaml:"ticks"`
	Seed      int64  `yaml:"seed"`
	Chunk     int    `yaml:"chunk"`
	Topology  string `yaml:"topology"` // "all_pairs" or "k_matching"
	K         int    `yaml:"k"`        // only meaningful when Topology == "k_matching"
	Scheduler string `yaml:"scheduler"`
}

// SweepScenario is a named sweep definition, mirroring sim.Sweep's
// parameters. viper lowercases every key it reads, so the minN/maxN keys of a
// scenario file reach yaml.v3 as minn/maxn.
type SweepScenario struct {
	MinN      int    `yaml:"minn"`
	MaxN      int    `yaml:"maxn"`
	Ticks     int    `yaml:"ticks"`
	Seed      int64  `yaml:"seed"`
	Chunk     int    `yaml:"chunk"`
	Topology  string `yaml:"topology"`
	K         int    `yaml:"k"`
	Scheduler string `yaml:"scheduler"`
}

// FromYaml reads path as an outer kind/def document and decodes its def
// payload into a Scenario, via a two-pass viper-then-yaml.v3 read.
func FromYaml(path string) (*Scenario, error) {
	def, err := readDef(path)
	if err != nil {
		return nil, err
	}

	scenario := &Scenario{}
	if err := yaml.Unmarshal(def, scenario); err != nil {
		return nil, err
	}
	return scenario, nil
}

// SweepFromYaml reads path the same way as FromYaml but decodes the def
// payload into a SweepScenario.
func SweepFromYaml(path string) (*SweepScenario, error) {
	def, err := readDef(path)
	if err != nil {
		return nil, err
	}

	scenario := &SweepScenario{}
	if err := yaml.Unmarshal(def, scenario); err != nil {
		return nil, err
	}
	return scenario, nil
}

func readDef(path string) ([]byte, error) {
	vp := viper.New()
	vp.SetConfigFile(path)
	vp.SetConfigType("yaml")
	vp.AddConfigPath(filepath.Dir(path))
	if err := vp.ReadInConfig(); err != nil {
		return nil, err
	}

	outer := &outerDocument{}
	if err := vp.Unmarshal(outer); err != nil {
		return nil, err
	}

	return yaml.Marshal(outer.Def)
}

// ParseTopology converts a scenario's Topology/K fields into a
// sim.Topology, the form sim.Run and sim.Sweep actually take.
func ParseTopology(kind string, k int) (sim.Topology, error) {
	switch kind {
	case "", "all_pairs":
		return sim.Topology{Kind: sim.AllPairs}, nil
	case "k_matching":
		return sim.Topology{Kind: sim.RandomKMatching, K: k}, nil
	default:
		return sim.Topology{}, simerr.InvalidArgument(simerr.ErrInvalidTopology, "topology must be \"all_pairs\" or \"k_matching\", got "+kind)
	}
}

// ParseScheduler converts a scenario's Scheduler field into a
// scheduler.Kind, defaulting to Batched when unset.
func ParseScheduler(kind string) (scheduler.Kind, error) {
	switch kind {
	case "", "batched":
		return scheduler.BatchedKind, nil
	case "actor":
		return scheduler.ActorKind, nil
	default:
		return scheduler.BatchedKind, simerr.InvalidArgument(simerr.ErrInvalidTopology, "scheduler must be \"batched\" or \"actor\", got "+kind)
	}
}
