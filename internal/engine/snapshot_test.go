package engine

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestSnapshot_MirrorsArena(t *testing.T) {
	sim := generated(t, "internet_era", 200, 5)
	snap := sim.Snapshot()

	if snap.Era != "internet_era" || snap.Seed != 5 || snap.Tick != sim.Tick {
		t.Errorf("snapshot header era=%q seed=%d tick=%d", snap.Era, snap.Seed, snap.Tick)
	}
	if len(snap.Agents) != len(sim.Agents) {
		t.Fatalf("snapshot carries %d agents, arena has %d", len(snap.Agents), len(sim.Agents))
	}
	for i, v := range snap.Agents {
		a := sim.Agents[i]
		if v.Agent != a {
			t.Fatalf("view %d does not share the arena agent", i)
		}
		if v.X != a.Pos.X || v.Y != a.Pos.Y || v.Z != a.Z {
			t.Fatalf("view %d coordinates diverge from the arena", i)
		}
		if v.VisibleStress != a.VisibleStress() || v.SystemIntegrity != a.SystemIntegrity() {
			t.Fatalf("view %d derived scalars stale at capture", i)
		}
	}
}

func TestSnapshot_SharesLiveAgents(t *testing.T) {
	sim := generated(t, "oral_culture", 100, 3)
	snap := sim.Snapshot()

	sim.Agents[0].EmotionalState = 0.875
	if snap.Agents[0].EmotionalState != 0.875 {
		t.Error("snapshot views must read through to live arena state")
	}
}

func TestSnapshot_Serializes(t *testing.T) {
	sim := generated(t, "algorithmic_era", 150, 9)
	raw, err := json.Marshal(sim.Snapshot())
	if err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"visible_stress", "feedback_loops", "edges", "config"} {
		if !bytes.Contains(raw, []byte(`"`+key+`"`)) {
			t.Errorf("serialized snapshot missing %q", key)
		}
	}
}
