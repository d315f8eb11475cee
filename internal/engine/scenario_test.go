package engine

import (
	"reflect"
	"testing"

	"github.com/talgya/mediasphere/internal/agents"
	"github.com/talgya/mediasphere/internal/era"
)

func TestFindScenario(t *testing.T) {
	sc, ok := FindScenario("oral-baseline")
	if !ok {
		t.Fatal("oral-baseline preset missing")
	}
	if sc.Era != "oral_culture" || sc.Seed != 42 || sc.Ticks != 0 {
		t.Errorf("oral-baseline preset changed: %+v", sc)
	}
	if _, ok := FindScenario("no-such-preset"); ok {
		t.Error("lookup of unknown preset succeeded")
	}
	if got := len(Scenarios()); got != len(scenarios) {
		t.Errorf("Scenarios returned %d presets, want %d", got, len(scenarios))
	}
}

func TestScenario_OralBaseline(t *testing.T) {
	sc, _ := FindScenario("oral-baseline")
	sim, err := sc.Run()
	if err != nil {
		t.Fatal(err)
	}

	if len(sim.Agents) != 1500 {
		t.Fatalf("population %d, want 1500", len(sim.Agents))
	}
	for _, e := range sim.Edges {
		if e.Medium != era.MediumEmbodied {
			t.Fatalf("oral culture produced a %s edge", e.Medium)
		}
	}
	// Dunbar-bounded ties keep every agent under the creator threshold.
	flagged := 0
	for _, a := range sim.Agents {
		if a.Role != agents.RoleConsumer {
			t.Fatalf("agent %d classified %s in a pure oral world", a.ID, a.Role)
		}
		if a.IsInfluencer {
			flagged++
		}
	}
	if flagged != 1 {
		t.Errorf("influencer flags %d, want exactly 1 (top pop/1000)", flagged)
	}
	if n := len(sim.Edges); n < 1500*6 || n > 1500*48 {
		t.Errorf("edge count %d outside the core+weak tie envelope", n)
	}

	again, err := sc.Run()
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(sim.Edges, again.Edges) {
		t.Error("oral-baseline is not reproducible")
	}
}

func TestScenario_PlatformFatigue(t *testing.T) {
	sc, ok := FindScenario("platform-fatigue")
	if !ok {
		t.Fatal("platform-fatigue preset missing")
	}

	cfg := era.MustGet(sc.Era)
	sim := New(cfg, sc.Seed)
	if err := sim.Generate(); err != nil {
		t.Fatal(err)
	}
	if len(sim.Loops) == 0 {
		t.Fatal("algorithmic era seeded no feedback loops")
	}

	type snap struct {
		fatigue    float64
		followers  int
		burnouts   int
		performing bool
	}
	prev := make([]snap, len(sim.Agents))

	burnoutsSeen := 0
	for tick := 0; tick < sc.Ticks; tick++ {
		for i, a := range sim.Agents {
			prev[i] = snap{a.PerformanceFatigue, a.ParasocialFollowers, a.Burnouts, a.PerformingAura}
		}
		sim.Update(1)

		for i, a := range sim.Agents {
			switch {
			case a.Burnouts == prev[i].burnouts+1:
				burnoutsSeen++
				if a.ParasocialFollowers != prev[i].followers/2 {
					t.Fatalf("tick %d: burnout cut agent %d followers %d -> %d, want %d",
						tick, i, prev[i].followers, a.ParasocialFollowers, prev[i].followers/2)
				}
				if a.PerformingAura {
					t.Fatalf("tick %d: agent %d still performing through a burnout", tick, i)
				}
			case a.Burnouts != prev[i].burnouts:
				t.Fatalf("tick %d: agent %d burnouts jumped %d -> %d", tick, i, prev[i].burnouts, a.Burnouts)
			case prev[i].performing && a.PerformingAura:
				if a.PerformanceFatigue < prev[i].fatigue {
					t.Fatalf("tick %d: agent %d fatigue fell %v -> %v while on stage",
						tick, i, prev[i].fatigue, a.PerformanceFatigue)
				}
			}
		}
	}

	if sim.Tick != uint64(sc.Ticks) {
		t.Errorf("tick counter %d, want %d", sim.Tick, sc.Ticks)
	}
	t.Logf("burnouts over %d ticks: %d (stats: %d)", sc.Ticks, burnoutsSeen, sim.Stats.Burnouts)
}
