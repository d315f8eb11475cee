package dynamics

import (
	"reflect"
	"testing"

	"github.com/talgya/mediasphere/internal/agents"
	"github.com/talgya/mediasphere/internal/era"
	"github.com/talgya/mediasphere/internal/network"
	"github.com/talgya/mediasphere/internal/rng"
)

// tribalArena builds a population with alternating tribal affiliation.
func tribalArena(n int) []*agents.Agent {
	pop := make([]*agents.Agent, n)
	for i := range pop {
		pop[i] = &agents.Agent{
			ID:                 i,
			Functional:         true,
			Setpoint:           0.4,
			RegulatoryCapacity: 0.7,
			Schismo:            agents.SchismoState{Tribe: int8(i % 2)},
		}
	}
	return pop
}

func TestSeedLoops_TribalPairs(t *testing.T) {
	cfg := era.MustGet("algorithmic_era")
	pop := tribalArena(400)

	loops := SeedLoops(cfg, pop, nil, rng.New(42))

	wantPairs := int(cfg.SchismogenesisRate * 400)
	if len(loops) != wantPairs*2 {
		t.Fatalf("%d loops for %d pairs, want %d", len(loops), wantPairs, wantPairs*2)
	}
	for i := 0; i < len(loops); i += 2 {
		fwd, rev := loops[i], loops[i+1]
		if fwd.Source != rev.Target || fwd.Target != rev.Source {
			t.Fatalf("pair %d loops are not mutual: %d->%d and %d->%d", i/2, fwd.Source, fwd.Target, rev.Source, rev.Target)
		}
		if pop[fwd.Source].Schismo.Tribe == pop[fwd.Target].Schismo.Tribe {
			t.Fatalf("pair %d joins two agents of tribe %d", i/2, pop[fwd.Source].Schismo.Tribe)
		}
		for _, l := range []*FeedbackLoop{fwd, rev} {
			if l.Kind != LoopPositive || l.SchismoType == agents.SchismoNone {
				t.Fatal("tribal loops must be positive escalation loops")
			}
			if l.Medium != cfg.DominantMedium() {
				t.Fatalf("tribal loop runs over %s, want %s", l.Medium, cfg.DominantMedium())
			}
			if l.Strength < 0.4 || l.Strength >= 0.8 {
				t.Fatalf("tribal loop strength %v outside [0.4,0.8)", l.Strength)
			}
			if !l.Active {
				t.Fatal("seeded loop must start active")
			}
		}
	}
}

func TestSeedLoops_EscalationKick(t *testing.T) {
	cfg := era.MustGet("algorithmic_era")
	pop := tribalArena(400)
	loops := SeedLoops(cfg, pop, nil, rng.New(7))

	for _, l := range loops {
		if l.SchismoType == agents.SchismoNone {
			continue
		}
		for _, id := range []int{l.Source, l.Target} {
			s := pop[id].Schismo
			if s.X < 0.01 || s.X >= 0.06 {
				t.Fatalf("agent %d escalation seed X=%v outside [0.01,0.06)", id, s.X)
			}
			if s.Y != 0 {
				t.Fatalf("agent %d starts with partner reading Y=%v, want 0", id, s.Y)
			}
			if s.K1 < 0.05 || s.K1 >= 0.2 || s.K2 < 0.05 || s.K2 >= 0.2 {
				t.Fatalf("agent %d coupling constants out of range: k1=%v k2=%v", id, s.K1, s.K2)
			}
		}
	}
}

func TestSeedLoops_DoubleBindEntry(t *testing.T) {
	cfg := era.MustGet("algorithmic_era")
	pop := tribalArena(6)
	performer := pop[0]
	performer.PerformingAura = true
	performer.FinancialPrecarity = true
	performer.Smartphone = true
	performer.Schismo.Tribe = -1

	// Mark everyone else non-tribal so only the bind seeding runs.
	for _, a := range pop[1:] {
		a.Schismo.Tribe = -1
	}

	edges := []network.Edge{
		{Source: 0, Target: 5, Medium: era.MediumAlgorithmic, Strength: 0.7},
		{Source: 0, Target: 3, Medium: era.MediumEmbodied, Strength: 0.9},
	}
	performer.AddConnection(era.MediumAlgorithmic, 0)
	performer.AddConnection(era.MediumEmbodied, 1)

	loops := SeedLoops(cfg, pop, edges, rng.New(5))

	b := performer.Bind
	if !b.InDoubleBind {
		t.Fatal("precarious performer must enter the double bind")
	}
	if b.E != cfg.EnvironmentalPressure {
		t.Errorf("bind pressure %v, want era value %v", b.E, cfg.EnvironmentalPressure)
	}
	if b.R != performer.RegulatoryCapacity {
		t.Errorf("bind reserve %v, want agent capacity %v", b.R, performer.RegulatoryCapacity)
	}
	if b.S < 0 || b.S >= 0.1 || b.B < 0.6 || b.B >= 1.0 || b.H < 0.2 || b.H >= 0.5 {
		t.Errorf("bind state out of seeding ranges: %+v", b)
	}
	if b.Alpha < 0.15*0.8 || b.Alpha >= 0.15*1.2 || b.Beta < 0.10*0.8 || b.Beta >= 0.10*1.2 || b.Gamma < 0.08*0.8 || b.Gamma >= 0.08*1.2 {
		t.Errorf("bind coefficients outside jitter band: %+v", b)
	}

	if len(loops) != 2 {
		t.Fatalf("%d loops seeded, want fan carrier and support", len(loops))
	}
	fan, support := loops[0], loops[1]
	if fan.Kind != LoopPositive || fan.Medium != era.MediumAlgorithmic || fan.Source != 5 || fan.Target != 0 {
		t.Errorf("fan carrier miswired: %+v", fan)
	}
	if fan.Strength < 0.5 || fan.Strength >= 0.9 {
		t.Errorf("fan carrier strength %v outside [0.5,0.9)", fan.Strength)
	}
	if support.Kind != LoopNegative || support.Medium != era.MediumEmbodied || support.Source != 3 || support.Target != 0 {
		t.Errorf("support loop miswired: %+v", support)
	}
	if support.Strength < 0.3 || support.Strength >= 0.6 {
		t.Errorf("support strength %v outside [0.3,0.6)", support.Strength)
	}
}

func TestSeedLoops_ContentPerformersOnly(t *testing.T) {
	cfg := era.MustGet("algorithmic_era")
	pop := tribalArena(4)
	for _, a := range pop {
		a.Schismo.Tribe = -1
	}
	pop[1].PerformingAura = true // solvent performer
	pop[2].FinancialPrecarity = true

	loops := SeedLoops(cfg, pop, nil, rng.New(1))

	if len(loops) != 0 {
		t.Fatalf("%d loops seeded for agents missing one bind precondition", len(loops))
	}
	for _, a := range pop {
		if a.Bind.InDoubleBind {
			t.Fatalf("agent %d entered the bind without both preconditions", a.ID)
		}
	}
}

func TestSeedLoops_Deterministic(t *testing.T) {
	cfg := era.MustGet("internet_era")
	build := func() []*FeedbackLoop {
		return SeedLoops(cfg, tribalArena(500), nil, rng.New(21))
	}
	a, b := build(), build()
	if len(a) != len(b) {
		t.Fatalf("loop counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if !reflect.DeepEqual(a[i], b[i]) {
			t.Fatalf("loop %d differs across identical seeds", i)
		}
	}
}
