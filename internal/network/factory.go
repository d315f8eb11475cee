// Connection formation. One pass per enabled medium, in medium order;
// passes are additive and never revisit earlier edges. All iteration is in
// ascending agent ID so a seed rebuilds the identical arena.
package network

import (
	"sort"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/talgya/mediasphere/internal/agents"
	"github.com/talgya/mediasphere/internal/era"
	"github.com/talgya/mediasphere/internal/rng"
)

// Embodied tie formation constants. The weak-tie pool is the nearest 150
// neighbors; the drawn count stays well below the consumer role threshold
// so a purely oral population never leaves the consumer class.
const (
	dunbarLimit   = 150
	coreTiesMin   = 1
	coreTiesMax   = 5
	weakTiesMin   = 5
	weakTiesMax   = 42
	broadcastFrac = 100 // top 1/100 of ranked candidates broadcast
)

// Factory builds the edge arena for one era.
type Factory struct {
	cfg    era.EraConfig
	pop    []*agents.Agent
	stream *rng.Stream
	edges  []Edge
}

// NewFactory prepares a factory over an already placed population. The
// stream is the generation stream; the factory consumes draws in pass
// order.
func NewFactory(cfg era.EraConfig, pop []*agents.Agent, stream *rng.Stream) *Factory {
	return &Factory{cfg: cfg, pop: pop, stream: stream}
}

// Build runs every enabled connection pass and returns the edge arena.
func (f *Factory) Build() []Edge {
	if f.cfg.Enabled(era.MediumEmbodied) {
		f.buildEmbodied()
	}
	if f.cfg.Enabled(era.MediumPrint) {
		f.buildPrint()
	}
	if f.cfg.Enabled(era.MediumBroadcast) {
		f.buildBroadcast()
	}
	if f.cfg.Enabled(era.MediumInternet) {
		f.buildInternet()
	}
	if f.cfg.Enabled(era.MediumAlgorithmic) {
		f.buildAlgorithmic()
	}
	return f.edges
}

// addEdge appends to the arena and to the source agent's medium list.
// Duplicates are never checked for.
func (f *Factory) addEdge(source, target int, m era.Medium, strength float64) {
	idx := len(f.edges)
	f.edges = append(f.edges, Edge{
		Source:   source,
		Target:   target,
		Medium:   m,
		Strength: strength,
	})
	f.pop[source].AddConnection(m, idx)
}

// buildEmbodied forms Dunbar-bounded ties to nearest neighbors: a few
// strong core ties plus a larger ring of weak ones. Distance is 2-D; ties
// at identical distance break by ID.
func (f *Factory) buildEmbodied() {
	type neighbor struct {
		id   int
		dist float64
	}

	for _, a := range f.pop {
		neighbors := make([]neighbor, 0, len(f.pop)-1)
		for _, b := range f.pop {
			if b.ID == a.ID {
				continue
			}
			neighbors = append(neighbors, neighbor{b.ID, r2.Norm(r2.Sub(a.Pos, b.Pos))})
		}
		sort.Slice(neighbors, func(i, j int) bool {
			if neighbors[i].dist != neighbors[j].dist {
				return neighbors[i].dist < neighbors[j].dist
			}
			return neighbors[i].id < neighbors[j].id
		})
		if len(neighbors) > dunbarLimit {
			neighbors = neighbors[:dunbarLimit]
		}

		core := f.stream.IntRange(coreTiesMin, coreTiesMax)
		if a.Aura.Present {
			// Presence widens or narrows the inner circle by up to 20%.
			core = int(float64(core)*f.stream.Range(0.8, 1.2) + 0.5)
			if core < coreTiesMin {
				core = coreTiesMin
			}
		}
		if core > len(neighbors) {
			core = len(neighbors)
		}
		for i := 0; i < core; i++ {
			f.addEdge(a.ID, neighbors[i].id, era.MediumEmbodied, f.stream.Range(0.8, 1.0))
		}

		weak := f.stream.IntRange(weakTiesMin, weakTiesMax)
		if core+weak > len(neighbors) {
			weak = len(neighbors) - core
		}
		for i := 0; i < weak; i++ {
			f.addEdge(a.ID, neighbors[core+i].id, era.MediumEmbodied, f.stream.Range(0, 0.5))
		}
	}
}

// buildPrint gives every literate agent with press access a readership.
// Readers are drawn with replacement from the literate pool, so popular
// pamphleteers can reach the same reader repeatedly.
func (f *Factory) buildPrint() {
	var pool []int
	for _, a := range f.pop {
		if a.Literate && a.PrintAccess {
			pool = append(pool, a.ID)
		}
	}
	if len(pool) < 2 {
		return
	}

	trans := f.cfg.AuraTransmission[era.MediumPrint]
	readers := make([]int, 0, len(pool)-1)
	for _, id := range pool {
		a := f.pop[id]
		appeal := a.ContentQuality * (0.5 + 0.5*a.Aura.Strength*trans)
		reach := int(50 + appeal*450)

		readers = readers[:0]
		for _, r := range pool {
			if r != id {
				readers = append(readers, r)
			}
		}
		for i := 0; i < reach; i++ {
			target := readers[f.stream.Intn(len(readers))]
			f.addEdge(id, target, era.MediumPrint, f.stream.Range(0.3, 0.6))
		}
	}
}

// buildBroadcast licenses the top 1% of broadcast-access agents by aura
// and quality, each reaching a large slice of the viewer pool. Gatekept
// reach is what makes this era's follower distribution so top-heavy.
func (f *Factory) buildBroadcast() {
	var viewers []int
	for _, a := range f.pop {
		if a.BroadcastAccess {
			viewers = append(viewers, a.ID)
		}
	}
	if len(viewers) < 2 {
		return
	}

	type scored struct {
		id    int
		score float64
	}
	candidates := make([]scored, 0, len(viewers))
	for _, id := range viewers {
		a := f.pop[id]
		candidates = append(candidates, scored{id, a.Aura.Strength*0.6 + a.ContentQuality*0.4})
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].id < candidates[j].id
	})

	numBroadcasters := len(viewers) / broadcastFrac
	if numBroadcasters < 1 {
		numBroadcasters = 1
	}
	selected := candidates[:numBroadcasters]

	// Appeal is the ranking score; iteration runs in ascending ID like
	// every other pass.
	appeal := make(map[int]float64, len(selected))
	ids := make([]int, 0, len(selected))
	for _, c := range selected {
		appeal[c.id] = c.score
		ids = append(ids, c.id)
	}
	sort.Ints(ids)

	for _, id := range ids {
		reach := int((0.3 + appeal[id]*0.5) * float64(len(viewers)))
		for i := 0; i < reach; i++ {
			target := viewers[f.stream.Intn(len(viewers))]
			if target == id {
				continue
			}
			f.addEdge(id, target, era.MediumBroadcast, f.stream.Range(0.4, 0.8))
		}
	}
}

// buildInternet clusters users into overlapping topic groups and wires
// each member to random co-members. Group count scales with the user
// base; everyone joins one to three topics.
func (f *Factory) buildInternet() {
	var users []int
	for _, a := range f.pop {
		if a.InternetAccess {
			users = append(users, a.ID)
		}
	}
	if len(users) < 2 {
		return
	}

	numGroups := len(users)/100 + 5
	groups := make([][]int, numGroups)
	for _, id := range users {
		memberships := f.stream.IntRange(1, 3)
		for j := 0; j < memberships; j++ {
			g := f.stream.Intn(numGroups)
			groups[g] = append(groups[g], id)
		}
	}

	trans := f.cfg.AuraTransmission[era.MediumInternet]
	for _, members := range groups {
		if len(members) < 2 {
			continue
		}
		for _, id := range members {
			a := f.pop[id]
			appeal := (a.DigitalAura(trans) + a.ContentQuality) / 2
			count := int(10 + appeal*90)
			for i := 0; i < count; i++ {
				target := members[f.stream.Intn(len(members))]
				if target == id {
					continue
				}
				f.addEdge(id, target, era.MediumInternet, f.stream.Range(0, 0.6))
			}
		}
	}
}

// buildAlgorithmic wires every smartphone owner to a feed-selected crowd.
// Appeal is dominated by inflammatory tendency, and hot sources get the
// strong edges, which is the whole point of the era.
func (f *Factory) buildAlgorithmic() {
	var users []int
	for _, a := range f.pop {
		if a.Smartphone {
			users = append(users, a.ID)
		}
	}
	if len(users) < 2 {
		return
	}

	trans := f.cfg.AuraTransmission[era.MediumAlgorithmic]
	for _, id := range users {
		a := f.pop[id]
		appeal := 0.5*a.InflammatoryLevel + 0.3*a.DigitalAura(trans) + 0.2*a.PostingFrequency
		count := int(100 + appeal*900)
		for i := 0; i < count; i++ {
			target := users[f.stream.Intn(len(users))]
			if target == id {
				continue
			}
			var strength float64
			if a.InflammatoryLevel > 0.6 {
				strength = f.stream.Range(0.6, 1.0)
			} else {
				strength = f.stream.Range(0, 0.5)
			}
			f.addEdge(id, target, era.MediumAlgorithmic, strength)
		}
	}
}
