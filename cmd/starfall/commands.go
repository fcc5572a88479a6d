package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/starfall/internal/automation"
	"github.com/san-kum/starfall/internal/config"
	"github.com/san-kum/starfall/internal/dynamo"
	"github.com/san-kum/starfall/internal/metrics"
	"github.com/san-kum/starfall/internal/sim"
	"github.com/san-kum/starfall/internal/storage"
)

var (
	duration float64
	dt       float64
	speed    float64
	noSave   bool
	outPath  string
	speeds   []float64
	workers  int
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "run the collision headless and save the trace",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "simulated seconds")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().Float64Var(&speed, "speed", 0.3, "approach speed per tick for each star")
	cmd.Flags().BoolVar(&noSave, "no-save", false, "print the summary without storing the run")
	return cmd
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("time") {
		cfg.Duration = duration
	}
	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("speed") {
		cfg.SetSpeed(speed)
	}

	logger, closer, err := newLogger(false)
	if err != nil {
		return err
	}
	defer closer.Close()

	simCfg := cfg.SimConfig()
	if err := simCfg.Validate(); err != nil {
		return err
	}

	logger.Info("running", "preset", presetName, "seed", cfg.Seed, "duration", cfg.Duration)
	start := time.Now()
	result, err := sim.RunLogged(cmd.Context(), simCfg, dynamo.NewRand(cfg.Seed), logger, metrics.Standard()...)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	runID := "-"
	if !noSave {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err = st.Save(storage.NewMetadata(presetName, cfg.Seed, simCfg, result), result)
		if err != nil {
			return err
		}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "run id:\t%s\n", runID)
	fmt.Fprintf(w, "completed in:\t%v\n", elapsed.Round(time.Microsecond))
	fmt.Fprintf(w, "ticks:\t%d\n", result.Ticks)
	if result.Collided {
		fmt.Fprintf(w, "collision at:\t%.3fs\n", result.CollisionAt)
	} else {
		fmt.Fprintf(w, "collision:\tnone\n")
	}
	if result.IdleAt > 0 {
		fmt.Fprintf(w, "debris cleared:\t%.3fs\n", result.IdleAt)
	}
	fmt.Fprintln(w, "\nmetrics:")
	for _, m := range metrics.Standard() {
		fmt.Fprintf(w, "  %s:\t%.6f\n", m.Name(), result.Metrics[m.Name()])
	}
	return w.Flush()
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runs, err := storage.New(dataDir).List()
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Println("no runs found")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tPRESET\tTIME\tSEED\tTICKS\tCOLLISION")
			for _, run := range runs {
				hit := "-"
				if run.Collided {
					hit = fmt.Sprintf("%.3fs", run.CollisionAt)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\n",
					run.ID,
					run.Preset,
					run.Timestamp.Format("2006-01-02 15:04:05"),
					run.Seed,
					run.Ticks,
					hit,
				)
			}
			return w.Flush()
		},
	}
}

func newPlotCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot separation and debris of a saved run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st := storage.New(dataDir)
			meta, err := st.Load(args[0])
			if err != nil {
				return err
			}
			rows, err := st.LoadTrace(args[0])
			if err != nil {
				return err
			}
			if len(rows) == 0 {
				return fmt.Errorf("no data to plot")
			}

			fmt.Printf("run: %s\n", meta.ID)
			fmt.Printf("preset: %s\n", meta.Preset)
			fmt.Printf("samples: %d\n\n", len(rows))

			var sep, debris []float64
			for _, r := range rows {
				if r.Phase == sim.Approaching.String() {
					sep = append(sep, r.Separation)
				}
				debris = append(debris, float64(r.Particles))
			}

			if len(sep) > 1 {
				fmt.Println(asciigraph.Plot(sep,
					asciigraph.Height(10),
					asciigraph.Width(80),
					asciigraph.Caption("separation"),
				))
				fmt.Println()
			}
			if meta.Collided {
				fmt.Println(asciigraph.Plot(debris,
					asciigraph.Height(10),
					asciigraph.Width(80),
					asciigraph.Caption("live particles"),
				))
			}
			return nil
		},
	}
}

func newExportJSONCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a saved run to JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st := storage.New(dataDir)
			meta, err := st.Load(args[0])
			if err != nil {
				return err
			}
			rows, err := st.LoadTrace(args[0])
			if err != nil {
				return err
			}
			if outPath == "" {
				return storage.WriteJSON(os.Stdout, *meta, rows)
			}
			return storage.ExportJSON(outPath, *meta, rows)
		},
	}
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")
	return cmd
}

func newExportCSVCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export a saved run's trace to CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := storage.New(dataDir).LoadTrace(args[0])
			if err != nil {
				return err
			}
			if len(rows) == 0 {
				return fmt.Errorf("no data to export")
			}
			return storage.WriteRows(os.Stdout, rows)
		},
	}
}

func newSweepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "find which approach speeds collide before the cutoff",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			points, err := sim.Sweep(cmd.Context(), cfg.SimConfig(), speeds, cfg.Seed, workers)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "SPEED\tCOLLIDED\tAT\tTICKS\tMIN SEP")
			for _, p := range points {
				at := "-"
				if p.Collided {
					at = fmt.Sprintf("%.3fs", p.CollisionAt)
				}
				fmt.Fprintf(w, "%.3f\t%v\t%s\t%d\t%.3f\n", p.Speed, p.Collided, at, p.Ticks, p.MinSeparation)
			}
			return w.Flush()
		},
	}
	cmd.Flags().Float64SliceVar(&speeds, "speeds", []float64{0.05, 0.1, 0.2, 0.3, 0.5, 0.8, 1.2}, "approach speeds per tick")
	cmd.Flags().IntVar(&workers, "workers", 4, "parallel runs")
	return cmd
}

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tSPEED\tOFFSET\tDURATION")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%.2f\t%.2f\t%.1fs\n", name, p.BodyA.Velocity[0], p.BodyA.Position[1], p.Duration)
			}
			return w.Flush()
		},
	}
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "manage configuration files",
	}
	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the resolved configuration to a yaml file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "starfall.yaml"
			if len(args) > 0 {
				path = args[0]
			}
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("%s already exists", path)
			}
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			if err := config.Save(path, cfg); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", path)
			return nil
		},
	}
	cmd.AddCommand(initCmd)
	return cmd
}

func newScenarioCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a scripted sequence of collisions and save each run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := automation.LoadScenario(args[0])
			if err != nil {
				return err
			}
			logger, closer, err := newLogger(false)
			if err != nil {
				return err
			}
			defer closer.Close()

			st := storage.New(dataDir)
			if err := st.Init(); err != nil {
				return err
			}
			results, err := automation.RunScenario(cmd.Context(), sc, st, logger)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "STEP\tPRESET\tRUN\tTICKS\tCOLLISION")
			for _, r := range results {
				hit := "-"
				if r.Collided {
					hit = fmt.Sprintf("%.3fs", r.CollisionAt)
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\n", r.Step, r.Preset, r.RunID, r.Ticks, hit)
			}
			return w.Flush()
		},
	}
}
