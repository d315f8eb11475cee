// Package agents provides the agent data model, the trait spawner, and the
// derived observability scalars. Agents live in an arena slice owned by the
// engine; ID always equals the agent's index there, and every cross-agent
// reference anywhere in the system is an ID into that arena, never a pointer.
package agents

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/talgya/mediasphere/internal/era"
)

// Role is an agent's threshold-derived position in the attention economy.
type Role uint8

const (
	RoleConsumer    Role = iota // follower count [0, 50)
	RoleCreator                 // [50, 500)
	RoleBroadcaster             // [500, 10000)
	RoleInfluencer              // [10000, ...)
)

func (r Role) String() string {
	switch r {
	case RoleConsumer:
		return "consumer"
	case RoleCreator:
		return "creator"
	case RoleBroadcaster:
		return "broadcaster"
	case RoleInfluencer:
		return "influencer"
	default:
		return "unknown"
	}
}

// SchismoType selects the coupling form of an escalation pair.
type SchismoType uint8

const (
	SchismoNone          SchismoType = iota
	SchismoSymmetrical               // both sides escalate together
	SchismoComplementary             // dominance/submission differentiation
)

// AuraState is the intrinsic presence trait. Rare (~8% of a population)
// and fixed at spawn; only its transmission varies by medium.
type AuraState struct {
	Present  bool    `json:"present"`
	Strength float64 `json:"strength"` // 0.5-1.0 for carriers, else 0
}

// SchismoState is one agent's half of an escalation pair. X is the agent's
// own intensity, Y its view of the partner, synchronized by the pairing
// feedback loop before each integration step.
type SchismoState struct {
	X     float64     `json:"x"`
	Y     float64     `json:"y"`
	K1    float64     `json:"k1"`
	K2    float64     `json:"k2"`
	Type  SchismoType `json:"type"`
	Tribe int8        `json:"tribe"` // -1 when unaffiliated
}

// BindState is the double-bind stress trap. S is accumulated stress, R the
// regulatory reserve it erodes; E, B, H are the environmental pressure,
// bind intensity, and perceived escape availability fixed at entry.
type BindState struct {
	S     float64 `json:"s"`
	E     float64 `json:"e"`
	B     float64 `json:"b"`
	R     float64 `json:"r"`
	H     float64 `json:"h"`
	Alpha float64 `json:"alpha"`
	Beta  float64 `json:"beta"`
	Gamma float64 `json:"gamma"`

	InDoubleBind           bool `json:"in_double_bind"`
	PathologicalAdaptation bool `json:"pathological_adaptation"`
}

// Agent is one simulated person.
type Agent struct {
	ID int `json:"id"`

	// Technology access, drawn independently against era rates.
	Literate        bool `json:"literate"`
	PrintAccess     bool `json:"print_access"`
	BroadcastAccess bool `json:"broadcast_access"`
	InternetAccess  bool `json:"internet_access"`
	Smartphone      bool `json:"smartphone"`

	// Graph role. IsInfluencer is a rank-based overlay computed alongside
	// Role; the two may disagree at the boundary and that is intentional.
	Role         Role `json:"role"`
	IsInfluencer bool `json:"is_influencer"`

	// Intrinsic traits, fixed after spawn. PerformanceFatigue and
	// PerformingAura are the two exceptions; they evolve under the trap.
	Aura              AuraState `json:"aura"`
	ContentQuality    float64   `json:"content_quality"`    // 0-1
	InflammatoryLevel float64   `json:"inflammatory_level"` // 0-1
	PostingFrequency  float64   `json:"posting_frequency"`  // 0-1
	PerformanceSkill  float64   `json:"performance_skill"`  // 0-1
	CognitiveCapacity float64   `json:"cognitive_capacity"` // 0.8-1.2

	// Dynamical state. CognitiveLoad is unbounded above, floored at 0;
	// everything else clamps to [0,1] after every update.
	CognitiveLoad      float64      `json:"cognitive_load"`
	EmotionalState     float64      `json:"emotional_state"`
	RegulatoryCapacity float64      `json:"regulatory_capacity"`
	SystemCoherence    float64      `json:"system_coherence"`
	Setpoint           float64      `json:"setpoint"`  // homeostatic target
	Bandwidth          float64      `json:"bandwidth"` // tolerated deviation
	Schismo            SchismoState `json:"schismo"`
	Bind               BindState    `json:"bind"`
	Functional         bool         `json:"functional"`

	// Spatial. Z is renderer depth jitter; forces and distances are 2-D.
	// Velocity and force buffers live inside the layout solver only.
	Pos r2.Vec  `json:"-"`
	Z   float64 `json:"-"`

	// Connections holds per-medium indexes into the engine's edge arena,
	// in creation order. Used for follower counting and content delivery.
	Connections [era.MediumCount][]int `json:"-"`

	// Follower accounting, split by tie kind. At generation time the sum
	// equals this agent's out-edge count; burnout halves the parasocial
	// side afterward.
	EmbodiedFollowers   int `json:"embodied_followers"`
	ParasocialFollowers int `json:"parasocial_followers"`

	// Economic state, meaningful in the algorithmic era only.
	PlatformRevenue    float64 `json:"platform_revenue"`
	PersonalRevenue    float64 `json:"personal_revenue"`
	FinancialPrecarity bool    `json:"financial_precarity"`

	// Performance-fatigue trap state.
	PerformanceFatigue float64 `json:"performance_fatigue"`
	PerformingAura     bool    `json:"performing_aura"`
	Burnouts           int     `json:"burnouts"`
}

// FollowerCount is the agent's total audience across all media.
func (a *Agent) FollowerCount() int {
	return a.EmbodiedFollowers + a.ParasocialFollowers
}

// AddConnection records an edge index under its medium.
func (a *Agent) AddConnection(m era.Medium, edgeIndex int) {
	a.Connections[m] = append(a.Connections[m], edgeIndex)
}

// Clamp01 bounds v to [0, 1]. State updates clamp after every mutation
// rather than relying on update rules staying in range by construction.
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
