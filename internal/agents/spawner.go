// Agent spawning. Creates the initial population with access flags,
// intrinsic traits, homeostatic constants, and economic state, in a fixed
// per-agent draw order so identical seeds rebuild identical populations.
package agents

import (
	"github.com/talgya/mediasphere/internal/era"
	"github.com/talgya/mediasphere/internal/rng"
)

// Spawner stream offset; placement and the tick loop use their own
// offsets so phases cannot perturb each other's sequences.
const spawnerSeedOffset = 300

// Trait distribution constants.
const (
	auraRate      = 0.08 // carriers per population
	precarityRate = 0.55 // of smartphone owners
	setpointLow   = 0.30
	setpointHigh  = 0.50
	bandwidthLow  = 0.08
	bandwidthHigh = 0.15
)

// Spawner creates agents for one generation pass.
type Spawner struct {
	stream *rng.Stream
	nextID int
}

// NewSpawner creates a spawner for the given scenario seed.
func NewSpawner(seed int64) *Spawner {
	return &Spawner{stream: rng.New(seed + spawnerSeedOffset)}
}

// SpawnPopulation creates the era's population in ascending-ID order.
// IDs start at 0 and equal the slice index, which is what lets edges and
// loops store plain ints.
func (s *Spawner) SpawnPopulation(cfg era.EraConfig) []*Agent {
	population := make([]*Agent, 0, cfg.Population)
	for i := 0; i < cfg.Population; i++ {
		population = append(population, s.spawnOne(cfg))
	}
	return population
}

func (s *Spawner) spawnOne(cfg era.EraConfig) *Agent {
	id := s.nextID
	s.nextID++

	// Access flags first, one draw each, even at rate 0. Keeping the draw
	// count stable per section makes cross-era sequences easy to reason
	// about when debugging a divergence.
	literate := s.stream.Chance(cfg.LiteracyRate)
	printAccess := s.stream.Chance(cfg.PrintRate)
	broadcastAccess := s.stream.Chance(cfg.BroadcastRate)
	internetAccess := s.stream.Chance(cfg.InternetRate)
	smartphone := s.stream.Chance(cfg.SmartphoneRate)

	// Aura: rare presence trait.
	aura := AuraState{}
	if s.stream.Chance(auraRate) {
		aura.Present = true
		aura.Strength = s.stream.Range(0.5, 1.0)
	}

	// Content disposition. The inflammatory draw is biased by the era:
	// algorithmic feeds select for heat, oral culture barely rewards it.
	quality := s.stream.Float64()
	var inflammatory float64
	if s.stream.Chance(cfg.InflammatoryRatio) {
		inflammatory = s.stream.Range(0.6, 1.0)
	} else {
		inflammatory = s.stream.Range(0, 0.6)
	}
	posting := s.stream.Float64()
	skill := s.stream.Float64()
	capacity := s.stream.Range(0.8, 1.2)

	// Homeostatic constants and starting regulation.
	setpoint := s.stream.Range(setpointLow, setpointHigh)
	bandwidth := s.stream.Range(bandwidthLow, bandwidthHigh)
	emotional := Clamp01(setpoint + s.stream.Range(-0.05, 0.05))
	regulatory := s.stream.Range(0.5, 0.9)
	coherence := s.stream.Range(0.7, 1.0)
	load := s.stream.Range(0, 0.2)

	// Tribal affiliation: a thin slice of the population is polarizable;
	// loop seeding later pairs across the two tribes.
	tribe := int8(-1)
	if s.stream.Chance(2 * cfg.SchismogenesisRate) {
		tribe = int8(s.stream.Intn(2))
	}

	// Economic state only matters where the platform exists.
	precarity := false
	if smartphone {
		precarity = s.stream.Chance(precarityRate)
	}

	return &Agent{
		ID:                 id,
		Literate:           literate,
		PrintAccess:        printAccess,
		BroadcastAccess:    broadcastAccess,
		InternetAccess:     internetAccess,
		Smartphone:         smartphone,
		Role:               RoleConsumer,
		Aura:               aura,
		ContentQuality:     quality,
		InflammatoryLevel:  inflammatory,
		PostingFrequency:   posting,
		PerformanceSkill:   skill,
		CognitiveCapacity:  capacity,
		CognitiveLoad:      load,
		EmotionalState:     emotional,
		RegulatoryCapacity: regulatory,
		SystemCoherence:    coherence,
		Setpoint:           setpoint,
		Bandwidth:          bandwidth,
		Schismo:            SchismoState{Tribe: tribe},
		Functional:         true,
		FinancialPrecarity: precarity,
		PerformingAura:     aura.Present && smartphone,
	}
}
