package main

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/starfall/internal/audio"
	"github.com/san-kum/starfall/internal/config"
	"github.com/san-kum/starfall/internal/dynamo"
	"github.com/san-kum/starfall/internal/export"
	"github.com/san-kum/starfall/internal/gui"
	"github.com/san-kum/starfall/internal/scene"
	"github.com/san-kum/starfall/internal/sim"
	"github.com/san-kum/starfall/internal/storage"
	"github.com/san-kum/starfall/internal/viz"
)

var (
	menu      bool
	themeName string
	gifPath   string
	withSound bool

	format      string
	frameWidth  int
	frameHeight int
	every       int
	glow        float64
	atTick      int

	soundLength time.Duration
	play        bool
)

func newLiveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "live",
		Short: "watch the collision in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, closer, err := newLogger(true)
			if err != nil {
				return err
			}
			defer closer.Close()

			if menu {
				return viz.RunInteractive(logger)
			}

			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			opts := viz.OptionsFromConfig(presetName, cfg)
			opts.Logger = logger
			opts.GIFPath = gifPath
			if themeName != "" {
				opts.Theme = themeName
			}
			opts.OnCollision = func(f sim.Frame) {
				logger.Info("collision", "t", f.Time, "separation", f.Separation)
			}
			return viz.Run(opts)
		},
	}
	cmd.Flags().BoolVar(&menu, "menu", false, "pick a preset and tune parameters first")
	cmd.Flags().StringVar(&themeName, "theme", "", "color theme ("+strings.Join(viz.ThemeNames(), ", ")+")")
	cmd.Flags().StringVar(&gifPath, "gif", "starfall.gif", "where the g key saves recordings")
	return cmd
}

func newWindowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "window",
		Short: "watch the collision in a desktop window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			logger, closer, err := newLogger(false)
			if err != nil {
				return err
			}
			defer closer.Close()

			opts := gui.OptionsFromConfig(presetName, cfg)
			opts.Logger = logger
			opts.Sound = withSound
			return gui.Run(opts)
		},
	}
	cmd.Flags().BoolVar(&withSound, "sound", false, "play the collision through the speakers")
	return cmd
}

func newExportSVGCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "draw a saved run's separation curve as SVG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := storage.New(dataDir).LoadTrace(args[0])
			if err != nil {
				return err
			}
			svg := export.TraceToSVG(rows, 800, 400, "#ff8c00")
			if svg == "" {
				return fmt.Errorf("not enough samples to draw")
			}
			return writeOut(outPath, svg)
		},
	}
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")
	return cmd
}

func newFramesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "frames",
		Short: "render the collision to a GIF, a PNG or a braille SVG",
		Args:  cobra.NoArgs,
		RunE:  renderFrames,
	}
	cmd.Flags().StringVar(&format, "format", "gif", "gif, png or svg")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default starfall.<format>)")
	cmd.Flags().IntVar(&frameWidth, "width", 480, "image width in pixels, or canvas columns for svg")
	cmd.Flags().IntVar(&frameHeight, "height", 320, "image height in pixels, or canvas rows for svg")
	cmd.Flags().IntVar(&every, "every", 3, "keep one gif frame every n ticks")
	cmd.Flags().Float64Var(&glow, "glow", 4, "glow blur radius, 0 to disable")
	cmd.Flags().IntVar(&atTick, "tick", 40, "tick to capture for png and svg")
	return cmd
}

func renderFrames(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	logger, closer, err := newLogger(false)
	if err != nil {
		return err
	}
	defer closer.Close()

	path := outPath
	if path == "" {
		path = "starfall." + format
	}

	simCfg := cfg.SimConfig()
	opts := export.FrameOptions{
		Width:  frameWidth,
		Height: frameHeight,
		Every:  every,
		Glow:   glow,
		Camera: cfg.ApplyCamera,
		Logger: logger,
	}
	if cfg.Backdrop.Enabled {
		b := cfg.BackdropConfig()
		opts.Backdrop = &b
	}

	switch format {
	case "gif":
		frames, err := export.RenderFrames(cmd.Context(), simCfg, cfg.Seed, opts)
		if err != nil {
			return err
		}
		delay := int(math.Round(float64(every) * simCfg.Dt * 100))
		if err := export.SaveGIF(path, frames, max(delay, 2)); err != nil {
			return err
		}
		logger.Info("gif saved", "path", path, "frames", len(frames))

	case "png":
		if atTick < 1 {
			return fmt.Errorf("tick must be at least 1")
		}
		simCfg.Duration = float64(atTick) * simCfg.Dt
		simCfg.StopWhenIdle = false
		opts.Every = atTick
		frames, err := export.RenderFrames(cmd.Context(), simCfg, cfg.Seed, opts)
		if err != nil {
			return err
		}
		if len(frames) == 0 {
			return fmt.Errorf("no frame at tick %d", atTick)
		}
		if err := export.SavePNG(path, frames[len(frames)-1]); err != nil {
			return err
		}
		logger.Info("png saved", "path", path, "tick", atTick)

	case "svg":
		canvas, err := brailleAt(cfg, atTick)
		if err != nil {
			return err
		}
		if err := writeOut(path, export.CanvasToSVG(canvas, 4)); err != nil {
			return err
		}
		logger.Info("svg saved", "path", path, "tick", atTick)

	default:
		return fmt.Errorf("unknown format %q", format)
	}
	return nil
}

// brailleAt steps a terminal surface to tick and returns its canvas.
func brailleAt(cfg *config.Config, tick int) (*viz.Canvas, error) {
	cols, rows := frameWidth, frameHeight
	if cols > 200 || rows > 100 {
		cols, rows = 100, 40
	}
	surface := viz.NewBrailleSurface(cols, rows, viz.GetTheme(cfg.Theme))
	surface.ShowBackdrop = cfg.Backdrop.Enabled

	graph := scene.NewGraph(surface)
	cfg.ApplyCamera(graph.Camera())
	graph.Resize(cols*2, rows*4)
	graph.Add(scene.NewBackdrop(cfg.BackdropConfig(), dynamo.NewRand(cfg.Seed+1)))

	simCfg := cfg.SimConfig()
	loop, err := sim.New(simCfg, graph, dynamo.NewRand(cfg.Seed))
	if err != nil {
		return nil, err
	}
	clock := scene.NewManualClock(time.Unix(0, 0))
	loop.SetClock(clock)
	step := time.Duration(simCfg.Dt * float64(time.Second))
	for i := 0; i < tick; i++ {
		clock.Advance(step)
		loop.Tick()
	}
	return surface.Canvas, nil
}

func newSoundCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sound",
		Short: "synthesize the collision sound to WAV and show its spectrum",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			logger, closer, err := newLogger(false)
			if err != nil {
				return err
			}
			defer closer.Close()

			path := outPath
			if path == "" {
				path = "starfall.wav"
			}
			rate := audio.SampleRate
			if err := audio.WriteWAV(path, audio.ExplosionSound(rate, soundLength, cfg.Seed), rate); err != nil {
				return err
			}
			logger.Info("wav saved", "path", path, "length", soundLength)

			const n = 4096
			mags := audio.Spectrum(audio.ExplosionSound(rate, soundLength, cfg.Seed), n)
			view := mags[:n/16]
			fmt.Println(asciigraph.Plot(view,
				asciigraph.Height(12),
				asciigraph.Width(80),
				asciigraph.Caption(fmt.Sprintf("spectrum 0-%.0f Hz", audio.BinFrequency(len(view), n, rate))),
			))
			low, mid, high := audio.Bands(mags, rate)
			fmt.Printf("\ndominant: %.1f Hz\n", audio.BinFrequency(audio.Peak(mags), n, rate))
			fmt.Printf("bands: low %.1f  mid %.1f  high %.1f\n", low, mid, high)

			if play {
				p := audio.NewPlayer(rate, logger)
				defer p.Close()
				return p.PlayWait(cmd.Context(), audio.ExplosionSound(rate, soundLength, cfg.Seed))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default starfall.wav)")
	cmd.Flags().DurationVar(&soundLength, "length", 1500*time.Millisecond, "sound length")
	cmd.Flags().BoolVar(&play, "play", false, "play the sound after writing it")
	return cmd
}

func writeOut(path, content string) error {
	if path == "" {
		_, err := fmt.Println(content)
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, []byte(content), 0644)
}
