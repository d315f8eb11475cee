// Package era defines the communication media and the closed per-era
// parameter records the generation engine consumes. Configs are data, not
// behavior: the engine reads them and never writes them back.
package era

import "fmt"

// Medium identifies a communication channel. Values index the fixed-size
// per-medium parameter arrays, so declaration order is load-bearing.
type Medium uint8

const (
	MediumEmbodied    Medium = iota // face-to-face, spatially grounded
	MediumPrint                     // one-to-many, literate readership
	MediumBroadcast                 // one-to-millions, gatekept
	MediumInternet                  // many-to-many, topic-clustered
	MediumAlgorithmic               // feed-mediated, engagement-ranked
)

// MediumCount is the number of media; per-medium arrays are sized by it.
const MediumCount = 5

func (m Medium) String() string {
	switch m {
	case MediumEmbodied:
		return "embodied"
	case MediumPrint:
		return "print"
	case MediumBroadcast:
		return "broadcast"
	case MediumInternet:
		return "internet"
	case MediumAlgorithmic:
		return "algorithmic"
	default:
		return fmt.Sprintf("medium(%d)", uint8(m))
	}
}

// ParseMedium resolves a medium name as used in CLI filters and exports.
func ParseMedium(s string) (Medium, error) {
	for m := Medium(0); m < MediumCount; m++ {
		if m.String() == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown medium %q", s)
}

// Parasocial reports whether connections over this medium are one-directional
// (audience ties) rather than mutual embodied ties. Follower accounting
// splits on this.
func (m Medium) Parasocial() bool {
	return m != MediumEmbodied
}
