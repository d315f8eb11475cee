// Package space provides the settlement-density surface agents are placed
// on before any connections form. Embodied ties prefer near neighbors, so
// clustered placement is what gives the oral-era graph its village texture.
package space

import (
	opensimplex "github.com/ojrac/opensimplex-go"
)

// Density field sampling parameters. Low base frequency keeps clusters a
// few dozen units wide at the default layout bounds.
const (
	fieldOctaves     = 3
	fieldFrequency   = 0.02
	fieldPersistence = 0.5
)

// Field is a deterministic density surface over the layout plane. The
// noise is a pure function of the seed; it consumes no draws from the
// generation stream.
type Field struct {
	noise opensimplex.Noise
}

// NewField builds the surface for a seed.
func NewField(seed int64) *Field {
	return &Field{noise: opensimplex.NewNormalized(seed)}
}

// Density returns the settlement density at (x, y), normalized to [0, 1].
func (f *Field) Density(x, y float64) float64 {
	return octaveNoise(f.noise, x, y, fieldOctaves, fieldFrequency, fieldPersistence)
}

// octaveNoise layers multiple noise frequencies for a natural surface.
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0

	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}

	return total / maxVal
}
