package dynamics

import (
	"testing"

	"github.com/talgya/mediasphere/internal/agents"
)

func escalatingAgent(st agents.SchismoType, x, y float64) *agents.Agent {
	return &agents.Agent{
		ID:         0,
		Functional: true,
		Setpoint:   0.4,
		Schismo: agents.SchismoState{
			X: x, Y: y, K1: 0.15, K2: 0.15, Type: st,
		},
	}
}

func TestStep_ZeroStartNeverEscalates(t *testing.T) {
	a := escalatingAgent(agents.SchismoSymmetrical, 0, 0)
	var e SchismogenesisEngine
	for i := 0; i < 100; i++ {
		e.Step(a, 1)
	}
	if a.Schismo.X != 0 || a.Schismo.Y != 0 {
		t.Fatalf("zero start escalated to X=%v Y=%v; zero must be a fixed point", a.Schismo.X, a.Schismo.Y)
	}
}

func TestStep_SymmetricalEscalatesToSaturation(t *testing.T) {
	a := escalatingAgent(agents.SchismoSymmetrical, 0.04, 0.04)
	var e SchismogenesisEngine

	prev := a.Schismo.X
	for i := 0; i < 200; i++ {
		e.Step(a, 1)
		if a.Schismo.X < prev {
			t.Fatalf("symmetrical X decreased at step %d: %v -> %v", i, prev, a.Schismo.X)
		}
		prev = a.Schismo.X
	}
	if a.Schismo.X < 0.99 {
		t.Errorf("symmetrical escalation stalled at X=%v", a.Schismo.X)
	}
	if a.EmotionalState != 1 {
		t.Errorf("sustained escalation should saturate emotional state, got %v", a.EmotionalState)
	}
}

func TestStep_ComplementaryStaysBounded(t *testing.T) {
	a := escalatingAgent(agents.SchismoComplementary, 0.5, 0.5)
	var e SchismogenesisEngine
	for i := 0; i < 300; i++ {
		e.Step(a, 1)
		s := a.Schismo
		if s.X < 0 || s.X > 1 || s.Y < 0 || s.Y > 1 {
			t.Fatalf("state escaped [0,1] at step %d: X=%v Y=%v", i, s.X, s.Y)
		}
	}
	// The -K2·X term drags Y to the floor, which in turn freezes X.
	if a.Schismo.Y != 0 {
		t.Errorf("complementary Y should clamp to 0, got %v", a.Schismo.Y)
	}
}

func TestStep_NoTypeIsNoOp(t *testing.T) {
	a := escalatingAgent(agents.SchismoNone, 0.3, 0.3)
	a.EmotionalState = 0.2
	var e SchismogenesisEngine
	e.Step(a, 1)

	if a.Schismo.X != 0.3 || a.Schismo.Y != 0.3 || a.EmotionalState != 0.2 {
		t.Error("untyped state must not integrate")
	}
	if len(e.History) != 0 {
		t.Error("untyped step must not record history")
	}
}

func TestStep_HistoryBounded(t *testing.T) {
	a := escalatingAgent(agents.SchismoSymmetrical, 0.04, 0.04)
	var e SchismogenesisEngine
	for i := 0; i < 250; i++ {
		e.Step(a, 1)
	}
	if len(e.History) != escalationHistoryCap {
		t.Fatalf("history holds %d steps, want %d", len(e.History), escalationHistoryCap)
	}
	last := e.History[len(e.History)-1]
	if last.X != a.Schismo.X || last.Y != a.Schismo.Y {
		t.Error("newest history entry does not match current state")
	}
}

func TestStep_DtScalesIntegration(t *testing.T) {
	whole := escalatingAgent(agents.SchismoSymmetrical, 0.04, 0.04)
	half := escalatingAgent(agents.SchismoSymmetrical, 0.04, 0.04)
	var e1, e2 SchismogenesisEngine

	e1.Step(whole, 1)
	e2.Step(half, 0.5)

	if half.Schismo.X >= whole.Schismo.X {
		t.Errorf("half step advanced X as far as a full step: %v vs %v", half.Schismo.X, whole.Schismo.X)
	}
}
