package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/talgya/mediasphere/internal/api"
	"github.com/talgya/mediasphere/internal/engine"
	"github.com/talgya/mediasphere/internal/persistence"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Generate an era and step it",
		Long: `Generate the selected era's population and connection graph, then
advance the simulation the requested number of ticks.

With --db the run is recorded to SQLite: one run row, a metrics
snapshot per tick, and the final agent states. With --listen the
finished world stays up behind the read-only HTTP API until
interrupted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			eraKey, _ := cmd.Flags().GetString("era")
			seed, _ := cmd.Flags().GetInt64("seed")
			ticks, _ := cmd.Flags().GetInt("ticks")
			dbPath, _ := cmd.Flags().GetString("db")
			listen, _ := cmd.Flags().GetString("listen")
			configPath, _ := cmd.Flags().GetString("config")

			cfg, err := resolveEra(eraKey, configPath)
			if err != nil {
				return err
			}

			sim := engine.New(cfg, seed)
			if err := sim.Generate(); err != nil {
				return fmt.Errorf("generating %s: %w", cfg.Key, err)
			}
			fmt.Printf("%s (%s): %s agents, %s ties.\n",
				cfg.Name, cfg.Year,
				humanize.Comma(int64(len(sim.Agents))),
				humanize.Comma(int64(len(sim.Edges))))

			var store *persistence.Store
			var runID string
			if dbPath != "" {
				store, err = persistence.Open(dbPath)
				if err != nil {
					return fmt.Errorf("opening database: %w", err)
				}
				defer store.Close()

				runID, err = store.CreateRun(sim, ticks)
				if err != nil {
					return fmt.Errorf("recording run: %w", err)
				}
				slog.Info("run recorded", "id", runID, "db", dbPath)
			}

			for i := 0; i < ticks; i++ {
				sim.Update(1)
				m := sim.Metrics()
				if store != nil {
					if err := store.RecordMetrics(runID, m); err != nil {
						return fmt.Errorf("recording metrics: %w", err)
					}
				}
				if sim.Tick%10 == 0 {
					slog.Info("tick",
						"n", sim.Tick,
						"functional", sim.Stats.Functional,
						"burnouts", sim.Stats.Burnouts,
						"active_loops", sim.Stats.ActiveLoops,
						"avg_load", fmt.Sprintf("%.3f", m.AvgCognitiveLoad),
						"avg_stress", fmt.Sprintf("%.3f", m.AvgVisibleStress),
					)
				}
			}

			if ticks > 0 {
				fmt.Printf("Tick %d: %d of %d functional, %d burnouts, %d active loops.\n",
					sim.Tick, sim.Stats.Functional, sim.Stats.Population,
					sim.Stats.Burnouts, sim.Stats.ActiveLoops)
			}

			if store != nil {
				if err := store.SaveAgents(runID, sim.Agents); err != nil {
					return fmt.Errorf("saving agents: %w", err)
				}
			}

			if listen == "" {
				return nil
			}

			// No runner: the world is frozen at its final tick and the API
			// serves that state until interrupted.
			srv := api.New(sim, listen)
			srv.Start()

			fmt.Printf("API: %s/api/v1/status\n", apiURL(listen))
			fmt.Println("Serving final state... (Ctrl+C to stop)")

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			sig := <-sigCh
			slog.Info("received signal, shutting down", "signal", sig)

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				return fmt.Errorf("stopping api server: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().String("era", "algorithmic_era", "Era key (see 'mediasim eras')")
	cmd.Flags().Int64("seed", 42, "World generation seed")
	cmd.Flags().Int("ticks", 100, "Ticks to advance before finishing")
	cmd.Flags().String("db", "", "Record the run to this SQLite file")
	cmd.Flags().String("listen", "", "Serve the API on this address after the run (e.g. :8080)")
	cmd.Flags().String("config", "", "Era override file (YAML)")

	return cmd
}
