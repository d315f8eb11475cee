package engine

import (
	"gonum.org/v1/gonum/stat"

	"github.com/talgya/mediasphere/internal/agents"
)

// Metrics is the flat observability record for dashboards and run
// recording. Computing it never mutates anything.
type Metrics struct {
	Tick uint64 `json:"tick"`
	Era  string `json:"era"`

	AvgEmotionalState     float64 `json:"avg_emotional_state"`
	AvgCognitiveLoad      float64 `json:"avg_cognitive_load"`
	AvgRegulatoryCapacity float64 `json:"avg_regulatory_capacity"`
	AvgSystemCoherence    float64 `json:"avg_system_coherence"`
	AvgVisibleStress      float64 `json:"avg_visible_stress"`
	AvgSystemIntegrity    float64 `json:"avg_system_integrity"`

	MeanFollowers   float64 `json:"mean_followers"`
	StddevFollowers float64 `json:"stddev_followers"`

	PctInDoubleBind  float64 `json:"pct_in_double_bind"`
	PctPathological  float64 `json:"pct_pathological"`
	PctPerforming    float64 `json:"pct_performing"`
	PctPrecarious    float64 `json:"pct_precarious"`
	PctNonFunctional float64 `json:"pct_non_functional"`

	RoleCounts    map[string]int `json:"role_counts"`
	Influencers   int            `json:"influencers"`
	EdgesByMedium map[string]int `json:"edges_by_medium"`
	ActiveLoops   int            `json:"active_loops"`

	// MeanEscalation averages Schismo.X over agents engaged in an
	// escalation pair; 0 when the era seeded none.
	MeanEscalation float64 `json:"mean_escalation"`
}

// Metrics computes the current observability record.
func (s *Simulation) Metrics() Metrics {
	m := Metrics{
		Tick:          s.Tick,
		Era:           s.Config.Key,
		RoleCounts:    make(map[string]int, 4),
		EdgesByMedium: make(map[string]int, 5),
	}
	n := len(s.Agents)
	if n == 0 {
		return m
	}

	followers := make([]float64, n)
	var inBind, pathological, performing, precarious, nonFunctional int
	var escalation float64
	var engaged int

	for i, a := range s.Agents {
		m.AvgEmotionalState += a.EmotionalState
		m.AvgCognitiveLoad += a.CognitiveLoad
		m.AvgRegulatoryCapacity += a.RegulatoryCapacity
		m.AvgSystemCoherence += a.SystemCoherence
		m.AvgVisibleStress += a.VisibleStress()
		m.AvgSystemIntegrity += a.SystemIntegrity()

		followers[i] = float64(a.FollowerCount())

		if a.Bind.InDoubleBind {
			inBind++
		}
		if a.Bind.PathologicalAdaptation {
			pathological++
		}
		if a.PerformingAura {
			performing++
		}
		if a.FinancialPrecarity {
			precarious++
		}
		if !a.Functional {
			nonFunctional++
		}
		if a.Schismo.Type != agents.SchismoNone {
			escalation += a.Schismo.X
			engaged++
		}

		m.RoleCounts[a.Role.String()]++
		if a.IsInfluencer {
			m.Influencers++
		}
	}

	fn := float64(n)
	m.AvgEmotionalState /= fn
	m.AvgCognitiveLoad /= fn
	m.AvgRegulatoryCapacity /= fn
	m.AvgSystemCoherence /= fn
	m.AvgVisibleStress /= fn
	m.AvgSystemIntegrity /= fn

	m.MeanFollowers = stat.Mean(followers, nil)
	if n > 1 {
		m.StddevFollowers = stat.StdDev(followers, nil)
	}

	m.PctInDoubleBind = 100 * float64(inBind) / fn
	m.PctPathological = 100 * float64(pathological) / fn
	m.PctPerforming = 100 * float64(performing) / fn
	m.PctPrecarious = 100 * float64(precarious) / fn
	m.PctNonFunctional = 100 * float64(nonFunctional) / fn
	if engaged > 0 {
		m.MeanEscalation = escalation / float64(engaged)
	}

	for _, e := range s.Edges {
		m.EdgesByMedium[e.Medium.String()]++
	}
	for _, l := range s.Loops {
		if l.Active {
			m.ActiveLoops++
		}
	}
	return m
}
