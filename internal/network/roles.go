// Role classification. Follower counting runs exactly once, after every
// connection pass has finished; roles are a pure function of the counts
// and re-deriving them from the same counts changes nothing.
package network

import (
	"sort"

	"github.com/talgya/mediasphere/internal/agents"
)

// Role thresholds on total follower count.
const (
	creatorThreshold     = 50
	broadcasterThreshold = 500
	influencerThreshold  = 10000
)

// CountFollowers resets and tallies follower counts from the edge arena.
// An edge credits its source: embodied edges are mutual ties, everything
// else is a parasocial audience member.
func CountFollowers(pop []*agents.Agent, edges []Edge) {
	for _, a := range pop {
		a.EmbodiedFollowers = 0
		a.ParasocialFollowers = 0
	}
	for _, e := range edges {
		src := pop[e.Source]
		if e.Medium.Parasocial() {
			src.ParasocialFollowers++
		} else {
			src.EmbodiedFollowers++
		}
	}
}

// RoleFor maps a follower count to the absolute-threshold role.
func RoleFor(count int) agents.Role {
	switch {
	case count < creatorThreshold:
		return agents.RoleConsumer
	case count < broadcasterThreshold:
		return agents.RoleCreator
	case count < influencerThreshold:
		return agents.RoleBroadcaster
	default:
		return agents.RoleInfluencer
	}
}

// ClassifyRoles assigns threshold roles, then flags the top
// max(1, population/1000) agents by follower count as influencers. The
// flag is rank-based while the role is absolute, so the two can disagree
// at the boundary; both views are kept deliberately.
func ClassifyRoles(pop []*agents.Agent) {
	for _, a := range pop {
		a.Role = RoleFor(a.FollowerCount())
		a.IsInfluencer = false
	}

	top := len(pop) / 1000
	if top < 1 {
		top = 1
	}

	ranked := make([]int, len(pop))
	for i := range pop {
		ranked[i] = i
	}
	sort.Slice(ranked, func(i, j int) bool {
		fi, fj := pop[ranked[i]].FollowerCount(), pop[ranked[j]].FollowerCount()
		if fi != fj {
			return fi > fj
		}
		return ranked[i] < ranked[j]
	})
	for i := 0; i < top && i < len(ranked); i++ {
		pop[ranked[i]].IsInfluencer = true
	}
}
