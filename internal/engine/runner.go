package engine

import (
	"log/slog"
	"time"
)

// Runner paces a generated simulation against the wall clock for
// interactive serving. Speed 1.0 advances one tick per interval; 0
// pauses the loop without exiting it.
type Runner struct {
	Sim      *Simulation
	Speed    float64
	Interval time.Duration
	Running  bool

	// OnTick, when set, observes the simulation after every tick.
	OnTick func(s *Simulation)
}

// NewRunner creates a runner with one tick per second at full speed.
func NewRunner(sim *Simulation) *Runner {
	return &Runner{
		Sim:      sim,
		Speed:    1.0,
		Interval: time.Second,
	}
}

// Run drives the tick loop. Blocks until Stop is called.
func (r *Runner) Run() {
	r.Running = true
	slog.Info("tick loop started", "era", r.Sim.Config.Key, "tick", r.Sim.Tick, "speed", r.Speed)

	for r.Running {
		if r.Speed <= 0 {
			time.Sleep(100 * time.Millisecond)
			continue
		}

		start := time.Now()
		r.Sim.Update(1)
		if r.OnTick != nil {
			r.OnTick(r.Sim)
		}

		elapsed := time.Since(start)
		target := time.Duration(float64(r.Interval) / r.Speed)
		if elapsed < target {
			time.Sleep(target - elapsed)
		}
	}

	slog.Info("tick loop stopped", "tick", r.Sim.Tick)
}

// Stop halts the loop after the in-flight tick completes.
func (r *Runner) Stop() {
	r.Running = false
}
