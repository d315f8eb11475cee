package dynamics

import (
	"github.com/talgya/mediasphere/internal/agents"
	"github.com/talgya/mediasphere/internal/era"
	"github.com/talgya/mediasphere/internal/network"
	"github.com/talgya/mediasphere/internal/rng"
)

const (
	complementaryChance = 0.2
	escalationSeedMin   = 0.01
	escalationSeedMax   = 0.06
)

// SeedLoops wires the generation-time feedback loops: tribal escalation
// pairs over the era's dominant medium, then the platform double bind
// for precarious performers. Draws continue the generation stream and
// iteration is ascending ID throughout, so the loop set is part of the
// deterministic generation output.
func SeedLoops(cfg era.EraConfig, pop []*agents.Agent, edges []network.Edge, stream *rng.Stream) []*FeedbackLoop {
	loops := seedTribalPairs(cfg, pop, stream)
	return append(loops, seedDoubleBinds(cfg, pop, edges, stream)...)
}

// seedTribalPairs draws cross-tribe pairs and gives each pair a forward
// and a reverse escalation loop. Both sides share coupling constants;
// each side's X starts with a small positive kick, because a zero start
// is a fixed point that never escalates.
func seedTribalPairs(cfg era.EraConfig, pop []*agents.Agent, stream *rng.Stream) []*FeedbackLoop {
	var tribe0, tribe1 []int
	for _, a := range pop {
		switch a.Schismo.Tribe {
		case 0:
			tribe0 = append(tribe0, a.ID)
		case 1:
			tribe1 = append(tribe1, a.ID)
		}
	}
	if len(tribe0) == 0 || len(tribe1) == 0 {
		return nil
	}

	pairs := int(cfg.SchismogenesisRate * float64(len(pop)))
	medium := cfg.DominantMedium()

	var loops []*FeedbackLoop
	for i := 0; i < pairs; i++ {
		a := pop[tribe0[stream.Intn(len(tribe0))]]
		b := pop[tribe1[stream.Intn(len(tribe1))]]

		st := agents.SchismoSymmetrical
		if stream.Chance(complementaryChance) {
			st = agents.SchismoComplementary
		}
		k1 := stream.Range(0.05, 0.2)
		k2 := stream.Range(0.05, 0.2)

		for _, side := range []*agents.Agent{a, b} {
			side.Schismo.Type = st
			side.Schismo.K1 = k1
			side.Schismo.K2 = k2
			side.Schismo.X = stream.Range(escalationSeedMin, escalationSeedMax)
			side.Schismo.Y = 0
		}

		loops = append(loops,
			newTribalLoop(a.ID, b.ID, medium, st, k1, k2, stream),
			newTribalLoop(b.ID, a.ID, medium, st, k1, k2, stream),
		)
	}
	return loops
}

func newTribalLoop(source, target int, m era.Medium, st agents.SchismoType, k1, k2 float64, stream *rng.Stream) *FeedbackLoop {
	return &FeedbackLoop{
		Source:      source,
		Target:      target,
		Kind:        LoopPositive,
		Medium:      m,
		Strength:    stream.Range(0.4, 0.8),
		K1:          k1,
		K2:          k2,
		SchismoType: st,
		Active:      true,
	}
}

// seedDoubleBinds puts every precarious performer into the bind and
// attaches its two carriers: a positive algorithmic loop from the
// performer's first fan, which runs the fatigue trap, and, where a core
// embodied tie exists, a negative support loop from that first neighbor.
func seedDoubleBinds(cfg era.EraConfig, pop []*agents.Agent, edges []network.Edge, stream *rng.Stream) []*FeedbackLoop {
	var loops []*FeedbackLoop
	for _, a := range pop {
		if !a.PerformingAura || !a.FinancialPrecarity {
			continue
		}

		b := &a.Bind
		b.InDoubleBind = true
		b.S = stream.Range(0, 0.1)
		b.E = cfg.EnvironmentalPressure
		b.B = stream.Range(0.6, 1.0)
		b.R = a.RegulatoryCapacity
		b.H = stream.Range(0.2, 0.5)
		b.Alpha = 0.15 * stream.Range(0.8, 1.2)
		b.Beta = 0.10 * stream.Range(0.8, 1.2)
		b.Gamma = 0.08 * stream.Range(0.8, 1.2)

		if algo := a.Connections[era.MediumAlgorithmic]; len(algo) > 0 {
			loops = append(loops, &FeedbackLoop{
				Source:   edges[algo[0]].Target,
				Target:   a.ID,
				Kind:     LoopPositive,
				Medium:   era.MediumAlgorithmic,
				Strength: stream.Range(0.5, 0.9),
				Active:   true,
			})
		}
		if core := a.Connections[era.MediumEmbodied]; len(core) > 0 {
			loops = append(loops, &FeedbackLoop{
				Source:   edges[core[0]].Target,
				Target:   a.ID,
				Kind:     LoopNegative,
				Medium:   era.MediumEmbodied,
				Strength: stream.Range(0.3, 0.6),
				Active:   true,
			})
		}
	}
	return loops
}
