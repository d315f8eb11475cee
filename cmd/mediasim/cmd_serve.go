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

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a live world behind the HTTP API",
		Long: `Generate the selected era and keep it ticking against the wall
clock while the read-only HTTP API serves its state. Runs until
interrupted. With --db, metrics are recorded every ten ticks and the
agent states are saved on shutdown.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			eraKey, _ := cmd.Flags().GetString("era")
			seed, _ := cmd.Flags().GetInt64("seed")
			listen, _ := cmd.Flags().GetString("listen")
			speed, _ := cmd.Flags().GetFloat64("speed")
			dbPath, _ := cmd.Flags().GetString("db")
			configPath, _ := cmd.Flags().GetString("config")

			cfg, err := resolveEra(eraKey, configPath)
			if err != nil {
				return err
			}

			sim := engine.New(cfg, seed)
			if err := sim.Generate(); err != nil {
				return fmt.Errorf("generating %s: %w", cfg.Key, err)
			}

			var store *persistence.Store
			var runID string
			if dbPath != "" {
				store, err = persistence.Open(dbPath)
				if err != nil {
					return fmt.Errorf("opening database: %w", err)
				}
				defer store.Close()

				runID, err = store.CreateRun(sim, 0)
				if err != nil {
					return fmt.Errorf("recording run: %w", err)
				}
				slog.Info("run recorded", "id", runID, "db", dbPath)
			}

			runner := engine.NewRunner(sim)
			runner.Speed = speed
			runner.OnTick = func(s *engine.Simulation) {
				if s.Tick%10 != 0 {
					return
				}
				slog.Info("tick",
					"n", s.Tick,
					"functional", s.Stats.Functional,
					"burnouts", s.Stats.Burnouts,
					"active_loops", s.Stats.ActiveLoops,
				)
				// A failed save is logged, not fatal; the world keeps ticking.
				if store != nil {
					if err := store.RecordMetrics(runID, s.Metrics()); err != nil {
						slog.Error("metrics save failed", "error", err)
					}
				}
			}

			srv := api.New(sim, listen)
			srv.Runner = runner
			srv.Start()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			go func() {
				sig := <-sigCh
				slog.Info("received signal, shutting down", "signal", sig)
				runner.Stop()
			}()

			fmt.Printf("\n%s (%s) is live: %s agents, %s ties.\n",
				cfg.Name, cfg.Year,
				humanize.Comma(int64(len(sim.Agents))),
				humanize.Comma(int64(len(sim.Edges))))
			fmt.Printf("API: %s/api/v1/status\n", apiURL(listen))
			fmt.Println("Ticking... (Ctrl+C to stop)")

			runner.Run()

			if store != nil {
				slog.Info("final save...")
				if err := store.SaveAgents(runID, sim.Agents); err != nil {
					slog.Error("final save failed", "error", err)
				}
			}

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				return fmt.Errorf("stopping api server: %w", err)
			}
			fmt.Println("Simulation stopped.")
			return nil
		},
	}

	cmd.Flags().String("era", "algorithmic_era", "Era key (see 'mediasim eras')")
	cmd.Flags().Int64("seed", 42, "World generation seed")
	cmd.Flags().String("listen", ":8080", "API listen address")
	cmd.Flags().Float64("speed", 1.0, "Ticks per second (0 pauses)")
	cmd.Flags().String("db", "", "Record the run to this SQLite file")
	cmd.Flags().String("config", "", "Era override file (YAML)")

	return cmd
}
