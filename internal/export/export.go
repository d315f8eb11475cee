// Package export renders generated worlds for external tools: Graphviz
// DOT for graph inspection, and the renderer snapshot as JSON.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/talgya/mediasphere/internal/agents"
	"github.com/talgya/mediasphere/internal/engine"
	"github.com/talgya/mediasphere/internal/era"
)

// Options trims DOT output for readability. Zero values mean every edge.
type Options struct {
	Medium   string // keep only edges of this medium, by name
	MaxEdges int    // stop emitting edges after this many (0 = unlimited)
}

// roleColors maps classification roles to DOT fill colors.
var roleColors = map[agents.Role]string{
	agents.RoleConsumer:    "lightgray",
	agents.RoleCreator:     "mediumseagreen",
	agents.RoleBroadcaster: "goldenrod",
	agents.RoleInfluencer:  "tomato",
}

// edgeLooks maps media to DOT edge styling. Mass and feed media draw
// faint so the embodied skeleton stays readable underneath.
var edgeLooks = map[era.Medium]struct{ style, color string }{
	era.MediumEmbodied:    {"solid", "black"},
	era.MediumPrint:       {"dashed", "gray40"},
	era.MediumBroadcast:   {"dotted", "gray40"},
	era.MediumInternet:    {"solid", "gray70"},
	era.MediumAlgorithmic: {"solid", "gray80"},
}

// RenderDOT produces a Graphviz DOT document for the world graph. Nodes
// color by role, thicken with visible stress, and double-ring for the
// rank-based influencer flag; edges style by medium. Agents and edges
// emit in arena order, so identical worlds render identical documents.
func RenderDOT(sim *engine.Simulation, opts Options) (string, error) {
	filter := era.Medium(era.MediumCount)
	if opts.Medium != "" {
		m, err := era.ParseMedium(opts.Medium)
		if err != nil {
			return "", fmt.Errorf("render dot: %w", err)
		}
		filter = m
	}

	var b strings.Builder
	b.WriteString("digraph mediasphere {\n")
	fmt.Fprintf(&b, "  // era=%s seed=%d tick=%d\n", sim.Config.Key, sim.Seed, sim.Tick)
	b.WriteString("  rankdir=LR;\n")
	b.WriteString("  node [shape=circle, style=filled, fontname=\"Helvetica\", fontsize=8];\n")
	b.WriteString("  edge [arrowsize=0.4];\n\n")

	for _, a := range sim.Agents {
		color := roleColors[a.Role]
		if color == "" {
			color = "white"
		}
		peripheries := 1
		if a.IsInfluencer {
			peripheries = 2
		}
		fmt.Fprintf(&b, "  %d [label=\"%d\", fillcolor=%q, penwidth=\"%.2f\", peripheries=%d, tooltip=\"role=%s followers=%d\"];\n",
			a.ID, a.ID, color, 1+3*a.VisibleStress(), peripheries, a.Role, a.FollowerCount())
	}
	b.WriteString("\n")

	written := 0
	for _, e := range sim.Edges {
		if filter < era.MediumCount && e.Medium != filter {
			continue
		}
		if opts.MaxEdges > 0 && written >= opts.MaxEdges {
			break
		}
		look := edgeLooks[e.Medium]
		fmt.Fprintf(&b, "  %d -> %d [style=%s, color=%s, weight=\"%.1f\", tooltip=%q];\n",
			e.Source, e.Target, look.style, look.color, e.Strength, e.Medium.String())
		written++
	}

	b.WriteString("}\n")
	return b.String(), nil
}

// WriteJSON streams the renderer snapshot to w, indented for humans.
func WriteJSON(w io.Writer, sim *engine.Simulation) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(sim.Snapshot()); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}
