package engine

import (
	"math"
	"reflect"
	"testing"

	"github.com/talgya/mediasphere/internal/agents"
	"github.com/talgya/mediasphere/internal/dynamics"
	"github.com/talgya/mediasphere/internal/era"
	"github.com/talgya/mediasphere/internal/network"
)

// metricsFixture hand-builds a three-agent world whose aggregates are
// all computable by eye.
func metricsFixture() *Simulation {
	a0 := &agents.Agent{
		ID: 0, Functional: true,
		EmotionalState: 0.2, RegulatoryCapacity: 0.6, SystemCoherence: 0.9,
		Role: agents.RoleConsumer, PerformingAura: true,
		Bind:    agents.BindState{InDoubleBind: true},
		Schismo: agents.SchismoState{Type: agents.SchismoSymmetrical, X: 0.4},
	}
	a1 := &agents.Agent{
		ID: 1, Functional: true,
		EmotionalState: 0.3, RegulatoryCapacity: 0.6, SystemCoherence: 0.9,
		Role:              agents.RoleCreator,
		EmbodiedFollowers: 1, ParasocialFollowers: 2,
		Bind: agents.BindState{PathologicalAdaptation: true},
	}
	a2 := &agents.Agent{
		ID: 2, Functional: false,
		EmotionalState: 0.4, RegulatoryCapacity: 0.6, SystemCoherence: 0.9,
		Role: agents.RoleInfluencer, IsInfluencer: true,
		FinancialPrecarity:  true,
		ParasocialFollowers: 6,
	}
	return &Simulation{
		Config: era.MustGet("print_era"),
		Tick:   17,
		Agents: []*agents.Agent{a0, a1, a2},
		Edges: []network.Edge{
			{Source: 0, Target: 1, Medium: era.MediumEmbodied},
			{Source: 1, Target: 0, Medium: era.MediumEmbodied},
			{Source: 1, Target: 2, Medium: era.MediumPrint},
		},
		Loops: []*dynamics.FeedbackLoop{
			{Source: 0, Target: 1, Active: true},
			{Source: 1, Target: 0},
		},
	}
}

func approx(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func TestMetrics_Aggregates(t *testing.T) {
	m := metricsFixture().Metrics()

	if m.Tick != 17 || m.Era != "print_era" {
		t.Errorf("header tick=%d era=%q", m.Tick, m.Era)
	}
	approx(t, "avg emotional", m.AvgEmotionalState, 0.3)
	approx(t, "avg load", m.AvgCognitiveLoad, 0)
	approx(t, "avg regulatory", m.AvgRegulatoryCapacity, 0.6)
	approx(t, "avg coherence", m.AvgSystemCoherence, 0.9)
	// Setpoint 0 everywhere, so stress is half the emotional reading.
	approx(t, "avg stress", m.AvgVisibleStress, 0.15)
	approx(t, "avg integrity", m.AvgSystemIntegrity, 0.72)

	approx(t, "mean followers", m.MeanFollowers, 3)
	approx(t, "stddev followers", m.StddevFollowers, 3)

	third := 100.0 / 3
	approx(t, "pct in bind", m.PctInDoubleBind, third)
	approx(t, "pct pathological", m.PctPathological, third)
	approx(t, "pct performing", m.PctPerforming, third)
	approx(t, "pct precarious", m.PctPrecarious, third)
	approx(t, "pct non-functional", m.PctNonFunctional, third)

	approx(t, "mean escalation", m.MeanEscalation, 0.4)
}

func TestMetrics_Counts(t *testing.T) {
	m := metricsFixture().Metrics()

	wantRoles := map[string]int{"consumer": 1, "creator": 1, "influencer": 1}
	if !reflect.DeepEqual(m.RoleCounts, wantRoles) {
		t.Errorf("role counts %v, want %v", m.RoleCounts, wantRoles)
	}
	wantEdges := map[string]int{"embodied": 2, "print": 1}
	if !reflect.DeepEqual(m.EdgesByMedium, wantEdges) {
		t.Errorf("edges by medium %v, want %v", m.EdgesByMedium, wantEdges)
	}
	if m.Influencers != 1 {
		t.Errorf("influencer count %d, want 1", m.Influencers)
	}
	if m.ActiveLoops != 1 {
		t.Errorf("active loops %d, want 1", m.ActiveLoops)
	}
}

func TestMetrics_ReadOnly(t *testing.T) {
	sim := metricsFixture()
	first := sim.Metrics()
	second := sim.Metrics()
	if !reflect.DeepEqual(first, second) {
		t.Error("repeated Metrics calls disagree; computing them mutated state")
	}
}

func TestMetrics_EmptySimulation(t *testing.T) {
	sim := &Simulation{Config: era.MustGet("oral_culture")}
	m := sim.Metrics()
	if m.MeanFollowers != 0 || m.MeanEscalation != 0 {
		t.Errorf("empty world produced nonzero aggregates: %+v", m)
	}
	if m.RoleCounts == nil || m.EdgesByMedium == nil {
		t.Error("maps must be allocated even for an empty world")
	}
}
