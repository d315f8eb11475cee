package engine

import (
	"math"

	"github.com/talgya/mediasphere/internal/agents"
	"github.com/talgya/mediasphere/internal/dynamics"
	"github.com/talgya/mediasphere/internal/era"
)

// Content phase constants.
const (
	postChanceScale  = 0.3   // posting probability per unit frequency
	deliveryLoad     = 0.01  // cognitive load per delivery, times strength
	inflammatoryGate = 0.6   // posters above this leak emotion
	platformRevenue  = 0.002 // per algorithmic-era delivery
	personalRevenue  = 0.0004
)

// Update advances one tick, mutating the arenas in place. Readers keep
// their slices; nothing is reallocated. dt scales every rate and is 1 in
// every scenario and CLI path.
func (s *Simulation) Update(dt float64) {
	s.Tick++
	s.generateContent(dt)
	s.updateAgents(dt)
	s.executeLoops(dt)
	s.updateStats()
}

// generateContent runs the posting phase. A post delivers along every
// outgoing edge in medium order: load lands on the audience, hot posters
// leak emotion, and in the algorithmic era every delivery pays the poster.
func (s *Simulation) generateContent(dt float64) {
	algorithmic := s.Config.Enabled(era.MediumAlgorithmic)
	for _, a := range s.Agents {
		if !s.tickStream.Chance(a.PostingFrequency * postChanceScale) {
			continue
		}
		for m := era.Medium(0); m < era.MediumCount; m++ {
			for _, idx := range a.Connections[m] {
				e := &s.Edges[idx]
				target := s.Agents[e.Target]

				target.CognitiveLoad += deliveryLoad * e.Strength * dt
				if a.InflammatoryLevel > inflammatoryGate {
					target.EmotionalState = agents.Clamp01(target.EmotionalState + a.InflammatoryLevel*e.Strength*0.01*dt)
				}
				if algorithmic {
					a.PlatformRevenue += platformRevenue * (1 + a.InflammatoryLevel)
					a.PersonalRevenue += personalRevenue * (1 + a.PerformanceSkill)
				}
			}
		}
	}
}

// updateAgents runs homeostatic regulation and the double-bind
// integration in ascending ID order. Regulation only engages outside the
// agent's tolerated bandwidth; schismogenesis advances in the loop phase,
// after partner readings synchronize.
func (s *Simulation) updateAgents(dt float64) {
	for _, a := range s.Agents {
		deviation := a.EmotionalState - a.Setpoint
		if math.Abs(deviation) > a.Bandwidth {
			a.EmotionalState = agents.Clamp01(a.EmotionalState - a.RegulatoryCapacity*0.05*deviation*dt)
		}
		a.CognitiveLoad -= a.RegulatoryCapacity * 0.02 * dt
		if a.CognitiveLoad < 0 {
			a.CognitiveLoad = 0
		}
		dynamics.StepDoubleBind(a, dt)
	}
}

// executeLoops fires every loop in slice order against the arena.
func (s *Simulation) executeLoops(dt float64) {
	for _, l := range s.Loops {
		l.Execute(s.Agents, s.Tick, s.tickStream, dt)
	}
}
