// Derived observability scalars. These are pure functions of stored fields
// so they can be tested independently of mutation order; nothing here
// writes agent state.
package agents

import "math"

// Blend weights for VisibleStress: setpoint deviation, cognitive load
// ratio, double-bind stress.
const (
	stressDeviationWeight = 0.5
	stressLoadWeight      = 0.3
	stressBindWeight      = 0.2
)

// DigitalAura is the strength with which presence survives a mediated
// channel: raw strength scaled by the medium's transmission factor and
// dampened as performance fatigue drains the carrier.
func DigitalAura(strength float64, present bool, transmission, fatigue float64) float64 {
	if !present || transmission <= 0 {
		return 0
	}
	return Clamp01(strength * transmission * (1 - 0.5*fatigue))
}

// DigitalAura evaluates the agent's mediated presence for one medium's
// transmission factor.
func (a *Agent) DigitalAura(transmission float64) float64 {
	return DigitalAura(a.Aura.Strength, a.Aura.Present, transmission, a.PerformanceFatigue)
}

// VisibleStress is the single scalar renderers color agents by: half
// setpoint deviation, 30% cognitive load ratio, 20% double-bind stress.
// External consumers read this and SystemIntegrity, never ODE internals.
func (a *Agent) VisibleStress() float64 {
	span := math.Max(a.Setpoint, 1-a.Setpoint)
	if span <= 0 {
		span = 1
	}
	deviation := math.Abs(a.EmotionalState-a.Setpoint) / span

	loadRatio := 0.0
	if a.CognitiveCapacity > 0 {
		loadRatio = math.Min(a.CognitiveLoad/a.CognitiveCapacity, 1)
	}

	return Clamp01(stressDeviationWeight*deviation +
		stressLoadWeight*loadRatio +
		stressBindWeight*a.Bind.S)
}

// SystemIntegrity summarizes how much regulation the agent has left:
// 60% regulatory capacity, 40% system coherence.
func (a *Agent) SystemIntegrity() float64 {
	return Clamp01(0.6*a.RegulatoryCapacity + 0.4*a.SystemCoherence)
}
