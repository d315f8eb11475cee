package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/talgya/mediasphere/internal/engine"
	"github.com/talgya/mediasphere/internal/export"
)

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Generate a world and write its graph",
		Long: `Generate the selected era and write its connection graph, either
as Graphviz DOT for rendering or as the full JSON snapshot. Output
goes to --out, or to stdout when --out is empty or "-".`,
		RunE: func(cmd *cobra.Command, args []string) error {
			eraKey, _ := cmd.Flags().GetString("era")
			seed, _ := cmd.Flags().GetInt64("seed")
			format, _ := cmd.Flags().GetString("format")
			out, _ := cmd.Flags().GetString("out")
			medium, _ := cmd.Flags().GetString("medium")
			maxEdges, _ := cmd.Flags().GetInt("max-edges")
			configPath, _ := cmd.Flags().GetString("config")

			if format != "dot" && format != "json" {
				return fmt.Errorf("unknown format %q (dot or json)", format)
			}

			cfg, err := resolveEra(eraKey, configPath)
			if err != nil {
				return err
			}

			sim := engine.New(cfg, seed)
			if err := sim.Generate(); err != nil {
				return fmt.Errorf("generating %s: %w", cfg.Key, err)
			}

			w := cmd.OutOrStdout()
			if out != "" && out != "-" {
				f, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("creating output file: %w", err)
				}
				defer f.Close()
				w = f
			}

			switch format {
			case "dot":
				dot, err := export.RenderDOT(sim, export.Options{Medium: medium, MaxEdges: maxEdges})
				if err != nil {
					return err
				}
				if _, err := io.WriteString(w, dot); err != nil {
					return fmt.Errorf("writing graph: %w", err)
				}
			case "json":
				if err := export.WriteJSON(w, sim); err != nil {
					return err
				}
			}

			if out != "" && out != "-" {
				slog.Info("graph written",
					"format", format,
					"path", out,
					"agents", len(sim.Agents),
					"edges", len(sim.Edges),
				)
			}
			return nil
		},
	}

	cmd.Flags().String("era", "algorithmic_era", "Era key (see 'mediasim eras')")
	cmd.Flags().Int64("seed", 42, "World generation seed")
	cmd.Flags().String("format", "dot", "Output format (dot, json)")
	cmd.Flags().String("out", "", "Output path (default: stdout)")
	cmd.Flags().String("medium", "", "Restrict DOT edges to one medium")
	cmd.Flags().Int("max-edges", 0, "Cap DOT edge count (0 = unlimited)")
	cmd.Flags().String("config", "", "Era override file (YAML)")

	return cmd
}
