package export

import (
	"context"
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"math"
	"os"
	"time"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/charmbracelet/log"

	"github.com/san-kum/starfall/internal/dynamo"
	"github.com/san-kum/starfall/internal/scene"
	"github.com/san-kum/starfall/internal/sim"
)

type FrameOptions struct {
	Width, Height int
	Every         int // keep one frame out of Every ticks
	Glow          float64
	Backdrop      *scene.BackdropConfig
	Camera        func(*scene.Camera)
	Logger        *log.Logger
}

func DefaultFrameOptions() FrameOptions {
	return FrameOptions{Width: 480, Height: 320, Every: 4, Glow: 4}
}

// RenderFrames runs cfg headless against a Raster and returns the captured
// frames. The flash timer follows simulated time.
func RenderFrames(ctx context.Context, cfg sim.Config, seed int64, opts FrameOptions) ([]*image.RGBA, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("%w: frame size %dx%d", dynamo.ErrInvalidConfig, opts.Width, opts.Height)
	}
	if opts.Every < 1 {
		opts.Every = 1
	}

	raster := NewRaster(opts.Width, opts.Height)
	raster.Glow = opts.Glow
	graph := scene.NewGraph(raster)
	if opts.Camera != nil {
		opts.Camera(graph.Camera())
	}
	graph.Resize(opts.Width, opts.Height)
	if opts.Backdrop != nil {
		graph.Add(scene.NewBackdrop(*opts.Backdrop, dynamo.NewRand(seed+1)))
	} else {
		raster.ShowBackdrop = false
	}

	loop, err := sim.New(cfg, graph, dynamo.NewRand(seed))
	if err != nil {
		return nil, err
	}
	clock := scene.NewManualClock(time.Unix(0, 0))
	loop.SetClock(clock)
	if opts.Logger != nil {
		loop.SetLogger(opts.Logger)
	}

	steps := int(math.Round(cfg.Duration / cfg.Dt))
	tickDur := time.Duration(cfg.Dt * float64(time.Second))
	var frames []*image.RGBA
	for i := 0; i < steps; i++ {
		if err := ctx.Err(); err != nil {
			return frames, fmt.Errorf("%w: %w", dynamo.ErrCanceled, err)
		}
		clock.Advance(tickDur)
		f := loop.Tick()
		if f.Tick%opts.Every == 0 {
			frames = append(frames, raster.Snapshot())
		}
		if cfg.StopWhenIdle && loop.Idle() {
			break
		}
	}
	return frames, nil
}

func SavePNG(path string, img image.Image) error {
	if err := imgio.Save(path, img, imgio.PNGEncoder()); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// SaveGIF quantizes frames to the Plan 9 palette. delay is in 1/100 s.
func SaveGIF(path string, frames []*image.RGBA, delay int) error {
	if len(frames) == 0 {
		return fmt.Errorf("no frames to write")
	}
	anim := &gif.GIF{}
	for _, f := range frames {
		p := image.NewPaletted(f.Rect, palette.Plan9)
		draw.Draw(p, f.Rect, f, f.Rect.Min, draw.Src)
		anim.Image = append(anim.Image, p)
		anim.Delay = append(anim.Delay, delay)
	}

	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := gif.EncodeAll(out, anim); err != nil {
		out.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return out.Close()
}
