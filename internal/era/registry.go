package era

import "fmt"

// Shared layout coefficients. Attraction falls from embodied to internet;
// algorithmic ties carry no spatial force at all, which is why algorithmic
// populations drift apart on screen even as their edge counts explode.
var defaultLayout = LayoutConfig{
	Iterations:         300,
	RepulsionStrength:  0.8,
	RepulsionDistance:  12,
	CoolingFactor:      0.92,
	InitialTemperature: 2.5,
	Bounds:             60,
	Attraction:         [MediumCount]float64{1.0, 0.7, 0.4, 0.3, 0.0},
}

var oralCulture = EraConfig{
	Key:                   "oral_culture",
	Name:                  "Oral Culture",
	Year:                  "pre-1450",
	Population:            1500,
	AuraTransmission:      [MediumCount]float64{1.0, 0, 0, 0, 0},
	InflammatoryRatio:     0.05,
	SchismogenesisRate:    0.002,
	EnvironmentalPressure: 0.2,
	Media:                 [MediumCount]bool{true, false, false, false, false},
	Layout:                defaultLayout,
}

var printEra = EraConfig{
	Key:                   "print_era",
	Name:                  "Print Era",
	Year:                  "1450-1920",
	Population:            2000,
	LiteracyRate:          0.35,
	PrintRate:             0.45,
	AuraTransmission:      [MediumCount]float64{1.0, 0.3, 0, 0, 0},
	InflammatoryRatio:     0.10,
	SchismogenesisRate:    0.004,
	EnvironmentalPressure: 0.3,
	Media:                 [MediumCount]bool{true, true, false, false, false},
	Layout:                defaultLayout,
}

var broadcastEra = EraConfig{
	Key:                   "broadcast_era",
	Name:                  "Broadcast Era",
	Year:                  "1920-1995",
	Population:            2500,
	LiteracyRate:          0.85,
	PrintRate:             0.70,
	BroadcastRate:         0.90,
	AuraTransmission:      [MediumCount]float64{1.0, 0.3, 0.6, 0, 0},
	InflammatoryRatio:     0.15,
	SchismogenesisRate:    0.006,
	EnvironmentalPressure: 0.4,
	Media:                 [MediumCount]bool{true, true, true, false, false},
	Layout:                defaultLayout,
}

var internetEra = EraConfig{
	Key:                   "internet_era",
	Name:                  "Internet Era",
	Year:                  "1995-2010",
	Population:            3000,
	LiteracyRate:          0.97,
	PrintRate:             0.75,
	BroadcastRate:         0.95,
	InternetRate:          0.65,
	SmartphoneRate:        0.25,
	AuraTransmission:      [MediumCount]float64{1.0, 0.3, 0.6, 0.45, 0},
	InflammatoryRatio:     0.30,
	SchismogenesisRate:    0.015,
	EnvironmentalPressure: 0.6,
	Media:                 [MediumCount]bool{true, true, true, true, false},
	Layout:                defaultLayout,
}

var algorithmicEra = EraConfig{
	Key:                   "algorithmic_era",
	Name:                  "Algorithmic Era",
	Year:                  "2010-present",
	Population:            3000,
	LiteracyRate:          0.99,
	PrintRate:             0.70,
	BroadcastRate:         0.95,
	InternetRate:          0.92,
	SmartphoneRate:        0.85,
	AuraTransmission:      [MediumCount]float64{1.0, 0.3, 0.6, 0.45, 0.75},
	InflammatoryRatio:     0.55,
	SchismogenesisRate:    0.030,
	EnvironmentalPressure: 0.8,
	Media:                 [MediumCount]bool{true, true, true, true, true},
	Layout:                defaultLayout,
}

// Keys lists the registry in chronological order. This is the iteration
// order for CLI listings and anything else that must be deterministic.
var Keys = []string{
	"oral_culture",
	"print_era",
	"broadcast_era",
	"internet_era",
	"algorithmic_era",
}

var registry = map[string]EraConfig{
	"oral_culture":    oralCulture,
	"print_era":       printEra,
	"broadcast_era":   broadcastEra,
	"internet_era":    internetEra,
	"algorithmic_era": algorithmicEra,
}

// Get returns the named era config by value; callers own their copy.
func Get(key string) (EraConfig, error) {
	cfg, ok := registry[key]
	if !ok {
		return EraConfig{}, fmt.Errorf("unknown era %q (valid: %v)", key, Keys)
	}
	return cfg, nil
}

// MustGet is Get for the built-in keys; it panics on a typo and is meant
// for tests and internal tables, not user input.
func MustGet(key string) EraConfig {
	cfg, err := Get(key)
	if err != nil {
		panic(err)
	}
	return cfg
}

// All returns every era config in chronological order.
func All() []EraConfig {
	out := make([]EraConfig, 0, len(Keys))
	for _, k := range Keys {
		out = append(out, registry[k])
	}
	return out
}
