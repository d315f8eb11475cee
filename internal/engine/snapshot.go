package engine

import (
	"github.com/talgya/mediasphere/internal/agents"
	"github.com/talgya/mediasphere/internal/dynamics"
	"github.com/talgya/mediasphere/internal/era"
	"github.com/talgya/mediasphere/internal/network"
)

// AgentView is an agent plus the coordinates and the two derived scalars
// external renderers color and size nodes with. Renderers never need raw
// ODE internals beyond what the embedded agent serializes.
type AgentView struct {
	*agents.Agent

	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`

	VisibleStress   float64 `json:"visible_stress"`
	SystemIntegrity float64 `json:"system_integrity"`
}

// Snapshot is the complete renderer-facing view of a run. Update mutates
// the underlying arenas in place, so a renderer holding a snapshot reads
// fresh state each frame through the shared agent pointers; the view
// slice itself is rebuilt per call.
type Snapshot struct {
	Era    string                   `json:"era"`
	Seed   int64                    `json:"seed"`
	Tick   uint64                   `json:"tick"`
	Agents []AgentView              `json:"agents"`
	Edges  []network.Edge           `json:"edges"`
	Loops  []*dynamics.FeedbackLoop `json:"feedback_loops"`
	Config era.EraConfig            `json:"config"`
}

// Snapshot assembles the current view in ascending ID order.
func (s *Simulation) Snapshot() Snapshot {
	views := make([]AgentView, len(s.Agents))
	for i, a := range s.Agents {
		views[i] = AgentView{
			Agent:           a,
			X:               a.Pos.X,
			Y:               a.Pos.Y,
			Z:               a.Z,
			VisibleStress:   a.VisibleStress(),
			SystemIntegrity: a.SystemIntegrity(),
		}
	}
	return Snapshot{
		Era:    s.Config.Key,
		Seed:   s.Seed,
		Tick:   s.Tick,
		Agents: views,
		Edges:  s.Edges,
		Loops:  s.Loops,
		Config: s.Config,
	}
}
