// Command mediasim generates and runs media-era social simulations.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/talgya/mediasphere/internal/era"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "mediasim",
		Short: "Social simulation across communication eras",
		Long: `mediasim models how communication technology reshapes social
regulation. Each era is a closed parameter set: an oral village, a
print public, broadcast audiences, the many-to-many internet, and the
algorithmic feed. The engine spawns a population, wires the era's
connection graph, and steps the regulatory dynamics tick by tick.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			envFile, _ := cmd.Flags().GetString("env-file")
			if err := loadEnv(envFile); err != nil {
				return err
			}
			level, _ := cmd.Flags().GetString("log-level")
			format, _ := cmd.Flags().GetString("log-format")
			return setupLogging(level, format)
		},
	}

	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "text", "Log format (text, json)")
	rootCmd.PersistentFlags().String("env-file", "", "Load environment from this file (default: .env if present)")

	rootCmd.AddCommand(
		newRunCmd(),
		newScenarioCmd(),
		newExportCmd(),
		newErasCmd(),
		newServeCmd(),
	)

	return rootCmd
}

// loadEnv runs before any subcommand. The default .env is optional; a
// file named with --env-file must exist.
func loadEnv(path string) error {
	if path != "" {
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("loading env file: %w", err)
		}
		return nil
	}
	godotenv.Load()
	return nil
}

func setupLogging(level, format string) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("unknown log level %q", level)
	}

	var handler slog.Handler
	switch format {
	case "json":
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	case "text":
		handler = tint.NewHandler(os.Stderr, &tint.Options{
			Level:      lvl,
			TimeFormat: "15:04:05",
		})
	default:
		return fmt.Errorf("unknown log format %q (text or json)", format)
	}
	slog.SetDefault(slog.New(handler))
	return nil
}

// resolveEra returns the named era, with the override file applied when
// one was given.
func resolveEra(key, overridePath string) (era.EraConfig, error) {
	if overridePath == "" {
		return era.Get(key)
	}
	registry, err := era.Load(overridePath)
	if err != nil {
		return era.EraConfig{}, err
	}
	cfg, ok := registry[key]
	if !ok {
		return era.EraConfig{}, fmt.Errorf("unknown era %q (valid: %v)", key, era.Keys)
	}
	return cfg, nil
}

// apiURL renders the address users should point a browser at.
func apiURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "http://localhost" + addr
	}
	return "http://" + addr
}
