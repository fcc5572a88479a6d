package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/san-kum/starfall/internal/config"
	"github.com/san-kum/starfall/internal/viz"
)

var (
	dataDir    string
	configFile string
	presetName string
	seed       int64
	logLevel   string
	logFile    string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "starfall",
		Short:        "two stars, one collision",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, closer, err := newLogger(true)
			if err != nil {
				return err
			}
			defer closer.Close()
			return viz.RunInteractive(logger)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".starfall", "data directory")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&presetName, "preset", "collide", "preset configuration")
	pf.Int64Var(&seed, "seed", config.DefaultSeed, "random seed")
	pf.StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	pf.StringVar(&logFile, "log-file", "", "write logs to this file")

	rootCmd.AddCommand(
		newRunCmd(),
		newListCmd(),
		newPlotCmd(),
		newExportJSONCmd(),
		newExportCSVCmd(),
		newExportSVGCmd(),
		newLiveCmd(),
		newWindowCmd(),
		newFramesCmd(),
		newSoundCmd(),
		newSweepCmd(),
		newScenarioCmd(),
		newPresetsCmd(),
		newConfigCmd(),
	)
	return rootCmd
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// newLogger builds the process logger. Full-screen modes own the terminal, so
// they log to --log-file or nowhere.
func newLogger(fullscreen bool) (*log.Logger, io.Closer, error) {
	level, err := log.ParseLevel(logLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("log level: %w", err)
	}

	var out io.Writer = os.Stderr
	var closer io.Closer = nopCloser{}
	switch {
	case logFile != "":
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, err
		}
		out, closer = f, f
	case fullscreen:
		out = io.Discard
	}

	logger := log.NewWithOptions(out, log.Options{
		Level:           level,
		Prefix:          "starfall",
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
	})
	return logger, closer, nil
}

// resolveConfig layers the preset, then the config file, then any flag the
// user set explicitly.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.GetPreset(presetName)
	if cfg == nil {
		return nil, fmt.Errorf("unknown preset: %s (available: %v)", presetName, config.ListPresets())
	}

	if configFile != "" {
		var err error
		cfg, err = config.LoadOver(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}
	return cfg, nil
}
