// Package layout settles the population into 2-D space with a two-phase
// force-directed solver. Edge attraction varies by medium, so eras built
// on embodied ties form tight local clusters while broadcast and
// algorithmic audiences stay spatially diffuse.
package layout

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/talgya/mediasphere/internal/agents"
	"github.com/talgya/mediasphere/internal/era"
	"github.com/talgya/mediasphere/internal/network"
	"github.com/talgya/mediasphere/internal/rng"
)

const (
	// internetZeroProb is the share of internet edges that exert no
	// spatial pull. Online ties cluster interest, not geography, unless
	// the pair also knows each other in person.
	internetZeroProb = 0.75

	annealRate     = 0.98
	attractionGain = 0.1
	minDistance    = 0.01
)

// Precompute assigns each edge its medium's attraction coefficient and
// prunes most internet edges from the pull pass. Draws come from the
// generation stream, one per internet edge, in arena order.
func Precompute(cfg era.LayoutConfig, edges []network.Edge, stream *rng.Stream) {
	embodied := make(map[uint64]struct{})
	for _, e := range edges {
		if e.Medium == era.MediumEmbodied {
			embodied[pairKey(e.Source, e.Target)] = struct{}{}
		}
	}

	for i := range edges {
		e := &edges[i]
		e.ForceStrength = cfg.Attraction[e.Medium]
		if e.Medium != era.MediumInternet {
			continue
		}
		if stream.Chance(internetZeroProb) {
			if _, ok := embodied[pairKey(e.Source, e.Target)]; !ok {
				e.ForceStrength = 0
			}
		}
	}
}

// pairKey orders the endpoints so a tie and its reverse share one key.
func pairKey(a, b int) uint64 {
	if a > b {
		a, b = b, a
	}
	return uint64(a)<<32 | uint64(b)
}

// Solve runs the iterated force pass and writes final positions back to
// the agents. Velocity and force buffers live and die inside the call;
// Z coordinates are never touched.
func Solve(cfg era.LayoutConfig, pop []*agents.Agent, edges []network.Edge) {
	n := len(pop)
	if n == 0 {
		return
	}

	pos := make([]r2.Vec, n)
	for i, a := range pop {
		pos[i] = a.Pos
	}
	vel := make([]r2.Vec, n)
	force := make([]r2.Vec, n)

	attracting := make([]network.Edge, 0, len(edges))
	for _, e := range edges {
		if e.ForceStrength > 0 {
			attracting = append(attracting, e)
		}
	}

	g := newGrid(cfg.RepulsionDistance)
	temp := cfg.InitialTemperature

	for iter := 0; iter < cfg.Iterations; iter++ {
		for i := range force {
			force[i] = r2.Vec{}
		}
		g.rebuild(pos)

		// Repulsion, strength/d^2 inside the interaction radius. Every
		// ordered pair contributes once, so each member of a close pair
		// gets pushed away from the other.
		for i := 0; i < n; i++ {
			g.neighbors(pos[i], func(j int) {
				if j == i {
					return
				}
				delta := r2.Sub(pos[i], pos[j])
				d := r2.Norm(delta)
				if d >= cfg.RepulsionDistance {
					return
				}
				if d < minDistance {
					d = minDistance
				}
				force[i] = r2.Add(force[i], r2.Scale(cfg.RepulsionStrength/(d*d*d), delta))
			})
		}

		// Attraction along surviving edges. The magnitude grows linearly
		// with distance, so the d in the magnitude cancels the unit
		// normalization and the pull reduces to a scaled delta.
		for _, e := range attracting {
			pull := r2.Scale(e.ForceStrength*e.Strength*attractionGain,
				r2.Sub(pos[e.Target], pos[e.Source]))
			force[e.Source] = r2.Add(force[e.Source], pull)
			force[e.Target] = r2.Sub(force[e.Target], pull)
		}

		// Integrate with damping. Speed clamps to the cooling
		// temperature, positions to the arena bounds.
		for i := 0; i < n; i++ {
			vel[i] = r2.Scale(cfg.CoolingFactor, r2.Add(vel[i], force[i]))
			if speed := r2.Norm(vel[i]); speed > temp {
				vel[i] = r2.Scale(temp/speed, vel[i])
			}
			pos[i] = r2.Add(pos[i], vel[i])
			pos[i].X = clampCoord(pos[i].X, cfg.Bounds)
			pos[i].Y = clampCoord(pos[i].Y, cfg.Bounds)
		}

		temp *= annealRate
	}

	for i, a := range pop {
		a.Pos = pos[i]
	}
}

func clampCoord(v, bound float64) float64 {
	if v > bound {
		return bound
	}
	if v < -bound {
		return -bound
	}
	return v
}
