package dynamics

import "github.com/talgya/mediasphere/internal/agents"

// escalationHistoryCap bounds the per-engine integration trace.
const escalationHistoryCap = 100

// EscalationStep is one recorded Euler step of an escalation integration.
type EscalationStep struct {
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
	DX float64 `json:"dx"`
	DY float64 `json:"dy"`
}

// SchismogenesisEngine integrates one agent's half of an escalation pair
// with explicit Euler steps. The pairing itself lives in the loop layer,
// which refreshes each side's view of the partner before asking the
// engine to step; the engine only ever mutates its own agent.
type SchismogenesisEngine struct {
	History []EscalationStep
}

// Step advances the agent one Euler step and feeds escalation into
// emotional state. Symmetrical coupling escalates both rates together;
// complementary coupling drives the partner reading down instead, the
// dominance/submission differentiation.
func (e *SchismogenesisEngine) Step(a *agents.Agent, dt float64) {
	s := &a.Schismo

	var dX, dY float64
	switch s.Type {
	case agents.SchismoSymmetrical:
		dX = s.K1 * s.Y * dt
		dY = s.K2 * s.X * dt
	case agents.SchismoComplementary:
		dX = s.K1 * s.Y * dt
		dY = -s.K2 * s.X * dt
	default:
		return
	}
	s.X = agents.Clamp01(s.X + dX)
	s.Y = agents.Clamp01(s.Y + dY)

	e.History = append(e.History, EscalationStep{X: s.X, Y: s.Y, DX: dX, DY: dY})
	if len(e.History) > escalationHistoryCap {
		e.History = e.History[len(e.History)-escalationHistoryCap:]
	}

	a.EmotionalState = agents.Clamp01(a.EmotionalState + s.X*0.1*dt)
}
