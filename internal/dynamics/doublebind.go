package dynamics

import "github.com/talgya/mediasphere/internal/agents"

const (
	pathologicalThreshold = 0.9
	coherenceDecay        = 0.01
	coherenceFloor        = 0.3
)

// StepDoubleBind advances the stress trap for one bound agent. Stress S
// grows with the product of environmental pressure and bind intensity
// and erodes the regulatory reserve R; low perceived escape keeps the
// erosion fast. Crossing S > 0.9 is a one-way door: the adaptation stays
// pathological even if stress later recedes, and coherence bleeds out
// until the agent stops functioning.
func StepDoubleBind(a *agents.Agent, dt float64) {
	b := &a.Bind
	if !b.InDoubleBind {
		return
	}

	dS := (b.Alpha*b.E*b.B - b.Beta*b.R) * dt
	dR := -b.Gamma * b.S * (1 - b.H) * dt
	b.S = agents.Clamp01(b.S + dS)
	b.R = agents.Clamp01(b.R + dR)

	if b.S > pathologicalThreshold {
		b.PathologicalAdaptation = true
	}
	if b.PathologicalAdaptation {
		a.SystemCoherence -= coherenceDecay * dt
		if a.SystemCoherence < 0 {
			a.SystemCoherence = 0
		}
		if a.SystemCoherence <= coherenceFloor {
			a.Functional = false
		}
	}

	a.EmotionalState = agents.Clamp01(a.EmotionalState + b.S*0.05*dt)
}
