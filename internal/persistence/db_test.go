package persistence

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/talgya/mediasphere/internal/agents"
	"github.com/talgya/mediasphere/internal/engine"
	"github.com/talgya/mediasphere/internal/era"
	"github.com/talgya/mediasphere/internal/network"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func recordedSim() *engine.Simulation {
	return &engine.Simulation{
		Config: era.MustGet("print_era"),
		Seed:   9,
		Agents: []*agents.Agent{
			{ID: 0, Functional: true, EmotionalState: 0.4},
			{ID: 1, Functional: true, Burnouts: 2, Role: agents.RoleCreator, EmbodiedFollowers: 3},
			{ID: 2, IsInfluencer: true},
		},
		Edges: []network.Edge{
			{Source: 0, Target: 1, Medium: era.MediumEmbodied},
			{Source: 1, Target: 2, Medium: era.MediumPrint},
		},
	}
}

func TestCreateAndLoadRun(t *testing.T) {
	s := openStore(t)
	sim := recordedSim()

	id, err := s.CreateRun(sim, 50)
	if err != nil {
		t.Fatalf("create run: %v", err)
	}
	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("run id %q is not a uuid: %v", id, err)
	}

	for tick := uint64(1); tick <= 3; tick++ {
		m := engine.Metrics{Tick: tick, Era: "print_era", MeanFollowers: float64(tick) * 1.5}
		if err := s.RecordMetrics(id, m); err != nil {
			t.Fatalf("record tick %d: %v", tick, err)
		}
	}

	run, records, err := s.LoadRun(id)
	if err != nil {
		t.Fatalf("load run: %v", err)
	}
	if run.Era != "print_era" || run.Seed != 9 || run.Population != 3 || run.EdgeCount != 2 || run.Ticks != 50 {
		t.Errorf("run row round-trip mangled: %+v", run)
	}
	if run.CreatedAt == "" {
		t.Error("created_at missing")
	}
	if len(records) != 3 {
		t.Fatalf("loaded %d metrics records, want 3", len(records))
	}
	for i, m := range records {
		if m.Tick != uint64(i+1) {
			t.Errorf("record %d has tick %d, want tick order", i, m.Tick)
		}
	}
	if records[1].MeanFollowers != 3.0 {
		t.Errorf("metrics payload mangled: %v", records[1].MeanFollowers)
	}
}

func TestRecordMetrics_TickIsAppendOnly(t *testing.T) {
	s := openStore(t)
	id, err := s.CreateRun(recordedSim(), 0)
	if err != nil {
		t.Fatal(err)
	}

	m := engine.Metrics{Tick: 7}
	if err := s.RecordMetrics(id, m); err != nil {
		t.Fatal(err)
	}
	if err := s.RecordMetrics(id, m); err == nil {
		t.Error("duplicate (run, tick) insert succeeded")
	}
}

func TestSaveAgents_FullReplace(t *testing.T) {
	s := openStore(t)
	sim := recordedSim()
	id, err := s.CreateRun(sim, 0)
	if err != nil {
		t.Fatal(err)
	}

	if err := s.SaveAgents(id, sim.Agents); err != nil {
		t.Fatalf("first save: %v", err)
	}
	sim.Agents[1].Burnouts = 5
	if err := s.SaveAgents(id, sim.Agents); err != nil {
		t.Fatalf("second save: %v", err)
	}

	var count int
	if err := s.conn.Get(&count, "SELECT COUNT(*) FROM run_agents WHERE run_id = ?", id); err != nil {
		t.Fatal(err)
	}
	if count != len(sim.Agents) {
		t.Errorf("replace left %d rows, want %d", count, len(sim.Agents))
	}

	var state string
	if err := s.conn.Get(&state,
		"SELECT state FROM run_agents WHERE run_id = ? AND agent_id = 1", id); err != nil {
		t.Fatal(err)
	}
	if want := `"burnouts":5`; !strings.Contains(state, want) {
		t.Errorf("state blob %s missing %s", state, want)
	}
}

func TestListRuns(t *testing.T) {
	s := openStore(t)
	sim := recordedSim()
	for i := 0; i < 3; i++ {
		if _, err := s.CreateRun(sim, i); err != nil {
			t.Fatal(err)
		}
	}

	runs, err := s.ListRuns(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 {
		t.Errorf("limit ignored: got %d runs", len(runs))
	}
	runs, err = s.ListRuns(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 3 {
		t.Errorf("listed %d runs, want 3", len(runs))
	}
}

func TestLoadRun_Unknown(t *testing.T) {
	s := openStore(t)
	if _, _, err := s.LoadRun(uuid.NewString()); err == nil {
		t.Error("loading an unknown run succeeded")
	}
}
