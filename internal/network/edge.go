// Package network builds the typed edge arena for one era and derives
// social roles from the resulting follower counts. Edges are created once
// during generation and never removed; duplicate edges between the same
// pair are allowed, since each one is a separate exposure.
package network

import (
	"github.com/talgya/mediasphere/internal/era"
)

// Edge is a directed connection between two arena agents. Source and
// Target are agent IDs, never pointers. Strength is fixed at creation;
// ForceStrength is the layout solver's cached attraction weight, written
// once during layout precompute.
type Edge struct {
	Source        int        `json:"source"`
	Target        int        `json:"target"`
	Medium        era.Medium `json:"medium"`
	Strength      float64    `json:"strength"`
	ForceStrength float64    `json:"force_strength"`
}

// CountByMedium tallies the edge arena per medium.
func CountByMedium(edges []Edge) [era.MediumCount]int {
	var counts [era.MediumCount]int
	for _, e := range edges {
		counts[e.Medium]++
	}
	return counts
}
