package era

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Override adjusts selected fields of a built-in era. Pointer fields
// distinguish "absent" from an explicit zero; structural fields (media set,
// attraction table, transmission factors) are not overridable, since eras
// differ by more than a knob there.
type Override struct {
	Population            *int     `yaml:"population"`
	LiteracyRate          *float64 `yaml:"literacy_rate"`
	PrintRate             *float64 `yaml:"print_rate"`
	BroadcastRate         *float64 `yaml:"broadcast_rate"`
	InternetRate          *float64 `yaml:"internet_rate"`
	SmartphoneRate        *float64 `yaml:"smartphone_rate"`
	InflammatoryRatio     *float64 `yaml:"inflammatory_ratio"`
	SchismogenesisRate    *float64 `yaml:"schismogenesis_rate"`
	EnvironmentalPressure *float64 `yaml:"environmental_pressure"`
	LayoutIterations      *int     `yaml:"layout_iterations"`
	LayoutBounds          *float64 `yaml:"layout_bounds"`
}

type overrideFile struct {
	Eras map[string]Override `yaml:"eras"`
}

// Load reads an era override file and returns the full registry with the
// overrides applied and validated. Unknown YAML keys, unknown era names,
// and out-of-range values are all load-time errors; nothing is defaulted
// past this point.
func Load(path string) (map[string]EraConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading era overrides: %w", err)
	}
	return parse(data)
}

func parse(data []byte) (map[string]EraConfig, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var file overrideFile
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing era overrides: %w", err)
	}

	out := make(map[string]EraConfig, len(registry))
	for k, cfg := range registry {
		out[k] = cfg
	}

	for key, ov := range file.Eras {
		base, ok := out[key]
		if !ok {
			return nil, fmt.Errorf("override for unknown era %q (valid: %v)", key, Keys)
		}
		out[key] = apply(base, ov)
	}

	for _, k := range Keys {
		if err := out[k].Validate(); err != nil {
			return nil, fmt.Errorf("era overrides: %w", err)
		}
	}
	return out, nil
}

func apply(cfg EraConfig, ov Override) EraConfig {
	if ov.Population != nil {
		cfg.Population = *ov.Population
	}
	if ov.LiteracyRate != nil {
		cfg.LiteracyRate = *ov.LiteracyRate
	}
	if ov.PrintRate != nil {
		cfg.PrintRate = *ov.PrintRate
	}
	if ov.BroadcastRate != nil {
		cfg.BroadcastRate = *ov.BroadcastRate
	}
	if ov.SmartphoneRate != nil {
		cfg.SmartphoneRate = *ov.SmartphoneRate
	}
	if ov.InternetRate != nil {
		cfg.InternetRate = *ov.InternetRate
	}
	if ov.InflammatoryRatio != nil {
		cfg.InflammatoryRatio = *ov.InflammatoryRatio
	}
	if ov.SchismogenesisRate != nil {
		cfg.SchismogenesisRate = *ov.SchismogenesisRate
	}
	if ov.EnvironmentalPressure != nil {
		cfg.EnvironmentalPressure = *ov.EnvironmentalPressure
	}
	if ov.LayoutIterations != nil {
		cfg.Layout.Iterations = *ov.LayoutIterations
	}
	if ov.LayoutBounds != nil {
		cfg.Layout.Bounds = *ov.LayoutBounds
	}
	return cfg
}
