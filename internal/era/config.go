package era

import "fmt"

// LayoutConfig holds the force-directed solver coefficients for an era.
type LayoutConfig struct {
	Iterations         int                  `json:"iterations" yaml:"iterations"`
	RepulsionStrength  float64              `json:"repulsion_strength" yaml:"repulsion_strength"`
	RepulsionDistance  float64              `json:"repulsion_distance" yaml:"repulsion_distance"`
	CoolingFactor      float64              `json:"cooling_factor" yaml:"cooling_factor"`
	InitialTemperature float64              `json:"initial_temperature" yaml:"initial_temperature"`
	Bounds             float64              `json:"bounds" yaml:"bounds"`
	Attraction         [MediumCount]float64 `json:"attraction" yaml:"attraction"`
}

// EraConfig is the complete, closed parameter record for one communication
// era. Every field the engine reads is declared here; nothing defaults
// silently inside simulation math, so a zero value that slips through
// Validate is a configuration bug, not a fallback.
type EraConfig struct {
	Key  string `json:"key" yaml:"key"`
	Name string `json:"name" yaml:"name"`
	Year string `json:"year" yaml:"year"` // display label only

	Population int `json:"population" yaml:"population"`

	// Access rates, drawn independently per agent at spawn.
	LiteracyRate   float64 `json:"literacy_rate" yaml:"literacy_rate"`
	PrintRate      float64 `json:"print_rate" yaml:"print_rate"`
	BroadcastRate  float64 `json:"broadcast_rate" yaml:"broadcast_rate"`
	InternetRate   float64 `json:"internet_rate" yaml:"internet_rate"`
	SmartphoneRate float64 `json:"smartphone_rate" yaml:"smartphone_rate"`

	// AuraTransmission is the per-medium fidelity with which presence
	// carries across the channel. Embodied is always 1 where enabled.
	AuraTransmission [MediumCount]float64 `json:"aura_transmission" yaml:"aura_transmission"`

	// InflammatoryRatio is the fraction of agents biased toward high
	// inflammatory tendency at spawn.
	InflammatoryRatio float64 `json:"inflammatory_ratio" yaml:"inflammatory_ratio"`

	// SchismogenesisRate is the fraction of the population paired into
	// tribal escalation loops at generation.
	SchismogenesisRate float64 `json:"schismogenesis_rate" yaml:"schismogenesis_rate"`

	// EnvironmentalPressure feeds the E term of double-bind initialization.
	EnvironmentalPressure float64 `json:"environmental_pressure" yaml:"environmental_pressure"`

	// Media marks which connection passes run for this era.
	Media [MediumCount]bool `json:"media" yaml:"media"`

	Layout LayoutConfig `json:"layout" yaml:"layout"`
}

// Enabled reports whether the era runs the given connection pass.
func (c EraConfig) Enabled(m Medium) bool {
	return c.Media[m]
}

// DominantMedium is the newest enabled medium, the channel that defines
// how the era communicates. Media accumulate across eras, so this is the
// highest enabled index.
func (c EraConfig) DominantMedium() Medium {
	dominant := MediumEmbodied
	for m := Medium(0); m < MediumCount; m++ {
		if c.Media[m] {
			dominant = m
		}
	}
	return dominant
}

// Validate checks the record for out-of-range values. Errors name the era
// and field so a bad override file fails loudly at load time.
func (c EraConfig) Validate() error {
	if c.Key == "" {
		return fmt.Errorf("era has no key")
	}
	if c.Population <= 0 {
		return fmt.Errorf("era %s: population must be positive, got %d", c.Key, c.Population)
	}
	rates := []struct {
		name string
		v    float64
	}{
		{"literacy_rate", c.LiteracyRate},
		{"print_rate", c.PrintRate},
		{"broadcast_rate", c.BroadcastRate},
		{"internet_rate", c.InternetRate},
		{"smartphone_rate", c.SmartphoneRate},
		{"inflammatory_ratio", c.InflammatoryRatio},
		{"schismogenesis_rate", c.SchismogenesisRate},
		{"environmental_pressure", c.EnvironmentalPressure},
	}
	for _, r := range rates {
		if r.v < 0 || r.v > 1 {
			return fmt.Errorf("era %s: %s must be within [0,1], got %v", c.Key, r.name, r.v)
		}
	}
	for m := Medium(0); m < MediumCount; m++ {
		t := c.AuraTransmission[m]
		if t < 0 || t > 1 {
			return fmt.Errorf("era %s: aura_transmission[%s] must be within [0,1], got %v", c.Key, m, t)
		}
		if c.Media[m] && t == 0 {
			return fmt.Errorf("era %s: medium %s enabled without aura transmission", c.Key, m)
		}
	}
	l := c.Layout
	if l.Iterations <= 0 {
		return fmt.Errorf("era %s: layout iterations must be positive, got %d", c.Key, l.Iterations)
	}
	if l.RepulsionStrength < 0 || l.RepulsionDistance <= 0 {
		return fmt.Errorf("era %s: repulsion strength/distance out of range", c.Key)
	}
	if l.CoolingFactor <= 0 || l.CoolingFactor > 1 {
		return fmt.Errorf("era %s: cooling_factor must be within (0,1], got %v", c.Key, l.CoolingFactor)
	}
	if l.InitialTemperature <= 0 || l.Bounds <= 0 {
		return fmt.Errorf("era %s: temperature and bounds must be positive", c.Key)
	}
	for m := Medium(0); m < MediumCount; m++ {
		if l.Attraction[m] < 0 {
			return fmt.Errorf("era %s: attraction[%s] must be non-negative, got %v", c.Key, m, l.Attraction[m])
		}
	}
	return nil
}
