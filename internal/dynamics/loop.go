// Package dynamics implements the models that evolve agent state between
// ticks: schismogenesis escalation, the double-bind stress trap, and the
// feedback loops that carry both across the graph.
package dynamics

import (
	"github.com/talgya/mediasphere/internal/agents"
	"github.com/talgya/mediasphere/internal/era"
	"github.com/talgya/mediasphere/internal/rng"
)

// LoopKind selects a feedback loop's direction of effect.
type LoopKind uint8

const (
	LoopPositive LoopKind = iota // amplification
	LoopNegative                 // homeostatic correction
)

func (k LoopKind) String() string {
	switch k {
	case LoopPositive:
		return "positive"
	case LoopNegative:
		return "negative"
	default:
		return "unknown"
	}
}

const (
	loopDecayRate  = 0.999 // strength retained per execution
	loopFloor      = 0.1   // below this a loop deactivates for good
	loopHistoryCap = 100

	resumeChance     = 0.10
	baseFatigueRate  = 0.005
	burnoutThreshold = 0.8
	burnoutsToAdapt  = 3
)

// FeedbackLoop is a directional relationship between exactly two agents.
// Loops store arena IDs, never pointers; every cross-agent touch goes
// through the arena handed to Execute. Strength decays a little on each
// execution, and a loop whose strength falls under the floor deactivates
// permanently.
type FeedbackLoop struct {
	Source      int                `json:"source"`
	Target      int                `json:"target"`
	Kind        LoopKind           `json:"kind"`
	Medium      era.Medium         `json:"medium"`
	Strength    float64            `json:"strength"`
	K1          float64            `json:"k1"`
	K2          float64            `json:"k2"`
	SchismoType agents.SchismoType `json:"schismo_type"`
	Delay       int                `json:"delay"`
	History     []float64          `json:"history"`
	Active      bool               `json:"active"`
	Executions  uint64             `json:"executions"`

	engine *SchismogenesisEngine
}

// EscalationHistory exposes the integration trace of the loop's
// escalation engine, nil for loops without a schismogenesis type.
func (l *FeedbackLoop) EscalationHistory() []EscalationStep {
	if l.engine == nil {
		return nil
	}
	return l.engine.History
}

// Execute runs one step of the loop against the agent arena. A loop with
// Delay d only fires on every d+1th tick. The stream is the tick RNG;
// only the performance trap draws from it.
func (l *FeedbackLoop) Execute(arena []*agents.Agent, tick uint64, stream *rng.Stream, dt float64) {
	if !l.Active {
		return
	}
	if tick%uint64(l.Delay+1) != 0 {
		return
	}
	source, target := arena[l.Source], arena[l.Target]

	var signal float64
	switch {
	case l.Kind == LoopPositive && l.SchismoType != agents.SchismoNone:
		signal = l.coupleEscalation(source, target, dt)
	case l.Kind == LoopPositive:
		signal = l.amplify(source, target, dt)
	default:
		signal = l.dampen(target, dt)
	}

	if l.Medium == era.MediumAlgorithmic {
		l.applyPerformanceTrap(target, stream, dt)
	}

	l.History = append(l.History, signal)
	if len(l.History) > loopHistoryCap {
		l.History = l.History[len(l.History)-loopHistoryCap:]
	}
	l.Executions++
	l.Strength *= loopDecayRate
	if l.Strength < loopFloor {
		l.Active = false
	}
}

// coupleEscalation refreshes both sides' partner readings, then advances
// the target's integration. The Y synchronization here is the single
// sanctioned point of cross-agent state mutation in the whole engine;
// the paired reverse loop advances the other side.
func (l *FeedbackLoop) coupleEscalation(source, target *agents.Agent, dt float64) float64 {
	source.Schismo.Y = target.Schismo.X
	target.Schismo.Y = source.Schismo.X
	if l.engine == nil {
		l.engine = &SchismogenesisEngine{}
	}
	l.engine.Step(target, dt)
	return target.Schismo.X
}

// amplify is the generic positive coupling: emotion begets emotion, and
// a smaller share of cognitive load rides along.
func (l *FeedbackLoop) amplify(source, target *agents.Agent, dt float64) float64 {
	boost := source.EmotionalState * l.Strength * 0.05 * dt
	target.EmotionalState = agents.Clamp01(target.EmotionalState + boost)
	target.CognitiveLoad += source.CognitiveLoad * l.Strength * 0.02 * dt
	return boost
}

// dampen is the homeostatic correction a grounded relationship provides:
// emotion pulled toward the setpoint, load shed, regulatory capacity
// rebuilt, and fatigue recovery whenever the target is off stage.
func (l *FeedbackLoop) dampen(target *agents.Agent, dt float64) float64 {
	deviation := target.EmotionalState - target.Setpoint
	correction := l.Strength * 0.1 * deviation * dt
	target.EmotionalState = agents.Clamp01(target.EmotionalState - correction)

	target.CognitiveLoad -= l.Strength * 0.05 * dt
	if target.CognitiveLoad < 0 {
		target.CognitiveLoad = 0
	}
	target.RegulatoryCapacity = agents.Clamp01(target.RegulatoryCapacity + l.Strength*0.01*dt)
	if !target.PerformingAura {
		target.PerformanceFatigue -= l.Strength * 0.02 * dt
		if target.PerformanceFatigue < 0 {
			target.PerformanceFatigue = 0
		}
	}
	return correction
}

// applyPerformanceTrap runs the two injunctions of the platform double
// bind against the target. Both pressures evaluate independently on
// every execution; an agent can resume performing and begin burning out
// within the same step. That the two demands cannot both be satisfied
// is the trap.
func (l *FeedbackLoop) applyPerformanceTrap(target *agents.Agent, stream *rng.Stream, dt float64) {
	// Perform or starve.
	if target.FinancialPrecarity && !target.PerformingAura {
		if stream.Chance(resumeChance) {
			target.PerformingAura = true
		}
	}

	// Performing erodes the capacity to perform. Fatigue scales with
	// audience size; past the threshold each step risks burnout.
	if target.PerformingAura {
		target.PerformanceFatigue += baseFatigueRate * (1 + float64(target.FollowerCount())/5000) * dt
		if target.PerformanceFatigue > burnoutThreshold {
			p := (target.PerformanceFatigue - burnoutThreshold) * 0.5 * l.Strength
			if stream.Chance(p) {
				target.ParasocialFollowers /= 2
				target.PerformanceFatigue = 0.3
				target.PerformingAura = false
				target.Burnouts++
				if target.Burnouts >= burnoutsToAdapt {
					target.Bind.PathologicalAdaptation = true
				}
			}
		}
	}
}
