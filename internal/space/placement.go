package space

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/talgya/mediasphere/internal/rng"
)

// Point is one placed agent position. Z is cosmetic depth jitter for the
// renderer; distance math and layout forces ignore it.
type Point struct {
	Pos r2.Vec
	Z   float64
}

// Rejection sampling bounds. Acceptance never drops below the floor, so a
// flat or hostile density surface still places everyone; the attempt cap
// guarantees termination with a uniform fallback.
const (
	acceptFloor       = 0.15
	placementAttempts = 64
	zJitter           = 2.0
)

// Place draws n positions from the density surface by rejection sampling
// inside [-bounds, bounds]^2. All randomness comes from the given stream,
// in a fixed per-point draw order, so placement is reproducible.
func Place(f *Field, n int, bounds float64, stream *rng.Stream) []Point {
	points := make([]Point, 0, n)
	for i := 0; i < n; i++ {
		var x, y float64
		for attempt := 0; attempt < placementAttempts; attempt++ {
			x = stream.Range(-bounds, bounds)
			y = stream.Range(-bounds, bounds)
			accept := acceptFloor + (1-acceptFloor)*f.Density(x, y)
			if stream.Chance(accept) {
				break
			}
			// Final attempt keeps its candidate: uniform fallback.
		}
		points = append(points, Point{
			Pos: r2.Vec{X: x, Y: y},
			Z:   stream.Range(-zJitter, zJitter),
		})
	}
	return points
}
