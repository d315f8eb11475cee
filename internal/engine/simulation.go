// Simulation ties the arenas together and runs the generation pipeline.
package engine

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/talgya/mediasphere/internal/agents"
	"github.com/talgya/mediasphere/internal/dynamics"
	"github.com/talgya/mediasphere/internal/era"
	"github.com/talgya/mediasphere/internal/layout"
	"github.com/talgya/mediasphere/internal/network"
	"github.com/talgya/mediasphere/internal/rng"
	"github.com/talgya/mediasphere/internal/space"
)

// Stream offsets for the placement and tick phases. The spawner applies
// its own offset; connection building, layout pruning, and loop seeding
// share the base generation stream in that order.
const (
	placementSeedOffset = 500
	tickSeedOffset      = 700
)

// Simulation holds the complete state of one era run. Agents, Edges, and
// Loops are arenas; every cross-reference in the system is an index into
// one of them, never a pointer between them. Single-threaded and
// synchronous: a tick either completes or the process dies, and readers
// coordinate with the tick loop externally.
type Simulation struct {
	Config era.EraConfig
	Seed   int64
	Tick   uint64

	Agents []*agents.Agent
	Edges  []network.Edge
	Loops  []*dynamics.FeedbackLoop

	Stats SimStats

	genStream  *rng.Stream
	tickStream *rng.Stream
}

// SimStats tracks cheap aggregates refreshed after every tick.
type SimStats struct {
	Population   int     `json:"population"`
	Functional   int     `json:"functional"`
	ActiveLoops  int     `json:"active_loops"`
	Burnouts     int     `json:"burnouts"`
	AvgEmotional float64 `json:"avg_emotional"`
	AvgLoad      float64 `json:"avg_load"`
	AvgCoherence float64 `json:"avg_coherence"`
}

// New prepares a simulation for one era and seed. Generate must run
// before the first Update.
func New(cfg era.EraConfig, seed int64) *Simulation {
	return &Simulation{
		Config:     cfg,
		Seed:       seed,
		genStream:  rng.New(seed),
		tickStream: rng.New(seed + tickSeedOffset),
	}
}

// Generate builds the complete initial state in one blocking call: spawn,
// placement, connections, roles, layout, loop seeding, initial stats.
// Phases run in fixed order against fixed streams, so a given (era, seed)
// pair always produces the same world down to the bit.
func (s *Simulation) Generate() error {
	start := time.Now()

	s.Agents = agents.NewSpawner(s.Seed).SpawnPopulation(s.Config)

	field := space.NewField(s.Seed)
	points := space.Place(field, len(s.Agents), s.Config.Layout.Bounds, rng.New(s.Seed+placementSeedOffset))
	for i, a := range s.Agents {
		a.Pos = points[i].Pos
		a.Z = points[i].Z
	}

	s.Edges = network.NewFactory(s.Config, s.Agents, s.genStream).Build()
	network.CountFollowers(s.Agents, s.Edges)
	network.ClassifyRoles(s.Agents)

	layout.Precompute(s.Config.Layout, s.Edges, s.genStream)
	layout.Solve(s.Config.Layout, s.Agents, s.Edges)

	s.Loops = dynamics.SeedLoops(s.Config, s.Agents, s.Edges, s.genStream)

	if err := s.CheckInvariants(); err != nil {
		return fmt.Errorf("generate %s seed %d: %w", s.Config.Key, s.Seed, err)
	}
	s.updateStats()

	influencers := 0
	for _, a := range s.Agents {
		if a.IsInfluencer {
			influencers++
		}
	}
	slog.Info("generation complete",
		"era", s.Config.Key,
		"seed", s.Seed,
		"agents", len(s.Agents),
		"edges", len(s.Edges),
		"loops", len(s.Loops),
		"influencers", influencers,
		"elapsed", time.Since(start),
	)
	return nil
}

// CheckInvariants verifies the structural consistency everything else
// depends on. Violations are hard failures; the scientific value of a
// run rests on these holding.
func (s *Simulation) CheckInvariants() error {
	if len(s.Agents) == 0 {
		return fmt.Errorf("empty population")
	}
	if len(s.Agents) != s.Config.Population {
		return fmt.Errorf("population %d does not match configured %d", len(s.Agents), s.Config.Population)
	}

	outDegree := make([]int, len(s.Agents))
	for i, e := range s.Edges {
		if e.Source < 0 || e.Source >= len(s.Agents) || e.Target < 0 || e.Target >= len(s.Agents) {
			return fmt.Errorf("edge %d endpoints (%d,%d) outside arena", i, e.Source, e.Target)
		}
		outDegree[e.Source]++
	}
	for i, a := range s.Agents {
		if a.ID != i {
			return fmt.Errorf("agent at index %d has ID %d", i, a.ID)
		}
		if a.FollowerCount() != outDegree[i] {
			return fmt.Errorf("agent %d follower count %d does not match out-degree %d", i, a.FollowerCount(), outDegree[i])
		}
		if a.EmotionalState < 0 || a.EmotionalState > 1 ||
			a.RegulatoryCapacity < 0 || a.RegulatoryCapacity > 1 ||
			a.SystemCoherence < 0 || a.SystemCoherence > 1 {
			return fmt.Errorf("agent %d regulatory state out of [0,1]", i)
		}
		if a.CognitiveLoad < 0 {
			return fmt.Errorf("agent %d negative cognitive load", i)
		}
	}
	for i, l := range s.Loops {
		if l.Source < 0 || l.Source >= len(s.Agents) || l.Target < 0 || l.Target >= len(s.Agents) {
			return fmt.Errorf("loop %d endpoints (%d,%d) outside arena", i, l.Source, l.Target)
		}
	}
	return nil
}

func (s *Simulation) updateStats() {
	var functional, burnouts int
	var emotional, load, coherence float64
	for _, a := range s.Agents {
		if a.Functional {
			functional++
		}
		burnouts += a.Burnouts
		emotional += a.EmotionalState
		load += a.CognitiveLoad
		coherence += a.SystemCoherence
	}
	active := 0
	for _, l := range s.Loops {
		if l.Active {
			active++
		}
	}

	n := float64(len(s.Agents))
	s.Stats = SimStats{
		Population:  len(s.Agents),
		Functional:  functional,
		ActiveLoops: active,
		Burnouts:    burnouts,
	}
	if n > 0 {
		s.Stats.AvgEmotional = emotional / n
		s.Stats.AvgLoad = load / n
		s.Stats.AvgCoherence = coherence / n
	}
}
