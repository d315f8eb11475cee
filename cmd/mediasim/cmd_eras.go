package main

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/talgya/mediasphere/internal/era"
)

func newErasCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "eras",
		Short: "List the built-in communication eras",
		Run: func(cmd *cobra.Command, args []string) {
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%-16s %-17s %-13s %10s  %s\n", "KEY", "NAME", "YEAR", "POPULATION", "MEDIA")
			for _, cfg := range era.All() {
				fmt.Fprintf(w, "%-16s %-17s %-13s %10s  %s\n",
					cfg.Key, cfg.Name, cfg.Year,
					humanize.Comma(int64(cfg.Population)),
					mediaList(cfg))
			}
		},
	}
}

func mediaList(cfg era.EraConfig) string {
	names := make([]string, 0, era.MediumCount)
	for m := era.Medium(0); m < era.MediumCount; m++ {
		if cfg.Enabled(m) {
			names = append(names, m.String())
		}
	}
	return strings.Join(names, ",")
}
