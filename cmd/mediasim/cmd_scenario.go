package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/talgya/mediasphere/internal/engine"
)

func newScenarioCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scenario [name]",
		Short: "Run a named preset",
		Long: `Run one of the built-in presets and print its summary. With no
name the presets are listed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()

			if len(args) == 0 {
				fmt.Fprintln(w, "Available scenarios:")
				for _, sc := range engine.Scenarios() {
					fmt.Fprintf(w, "  %-18s %s, seed %d, %d ticks\n", sc.Name, sc.Era, sc.Seed, sc.Ticks)
				}
				return nil
			}

			sc, ok := engine.FindScenario(args[0])
			if !ok {
				return fmt.Errorf("unknown scenario %q", args[0])
			}
			sim, err := sc.Run()
			if err != nil {
				return err
			}

			m := sim.Metrics()
			fmt.Fprintf(w, "%s: %s (%s), seed %d, %d ticks\n",
				sc.Name, sim.Config.Name, sim.Config.Year, sc.Seed, sc.Ticks)
			fmt.Fprintf(w, "  population      %s\n", humanize.Comma(int64(len(sim.Agents))))
			fmt.Fprintf(w, "  ties            %s\n", humanize.Comma(int64(len(sim.Edges))))
			fmt.Fprintf(w, "  functional      %d\n", sim.Stats.Functional)
			fmt.Fprintf(w, "  burnouts        %d\n", sim.Stats.Burnouts)
			fmt.Fprintf(w, "  active loops    %d\n", sim.Stats.ActiveLoops)
			fmt.Fprintf(w, "  avg load        %.3f\n", m.AvgCognitiveLoad)
			fmt.Fprintf(w, "  avg stress      %.3f\n", m.AvgVisibleStress)
			fmt.Fprintf(w, "  performing      %.1f%%\n", m.PctPerforming)
			fmt.Fprintf(w, "  in double bind  %.1f%%\n", m.PctInDoubleBind)
			return nil
		},
	}
}
