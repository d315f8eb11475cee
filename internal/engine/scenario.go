package engine

import (
	"fmt"

	"github.com/talgya/mediasphere/internal/era"
)

// Scenario is a named (era, seed, ticks) preset. The table doubles as
// the regression suite: the CLI runs presets by name and the tests pin
// their structural outcomes.
type Scenario struct {
	Name  string
	Era   string
	Seed  int64
	Ticks int
}

var scenarios = []Scenario{
	// Pure embodied graph: Dunbar-bounded ties only, everyone a consumer.
	{Name: "oral-baseline", Era: "oral_culture", Seed: 42, Ticks: 0},
	// Feed-driven era run long enough for the fatigue trap to bite.
	{Name: "platform-fatigue", Era: "algorithmic_era", Seed: 7, Ticks: 100},
}

// Scenarios lists the presets in declaration order.
func Scenarios() []Scenario {
	out := make([]Scenario, len(scenarios))
	copy(out, scenarios)
	return out
}

// FindScenario looks a preset up by name.
func FindScenario(name string) (Scenario, bool) {
	for _, sc := range scenarios {
		if sc.Name == name {
			return sc, true
		}
	}
	return Scenario{}, false
}

// Run generates the scenario's world and advances it the configured
// number of ticks with dt 1.
func (sc Scenario) Run() (*Simulation, error) {
	cfg, err := era.Get(sc.Era)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", sc.Name, err)
	}
	sim := New(cfg, sc.Seed)
	if err := sim.Generate(); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", sc.Name, err)
	}
	for i := 0; i < sc.Ticks; i++ {
		sim.Update(1)
	}
	return sim, nil
}
