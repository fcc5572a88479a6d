package gui

import (
	"fmt"

	"github.com/charmbracelet/log"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/starfall/internal/audio"
	"github.com/san-kum/starfall/internal/config"
	"github.com/san-kum/starfall/internal/dynamo"
	"github.com/san-kum/starfall/internal/scene"
	"github.com/san-kum/starfall/internal/sim"
)

const (
	defaultWidth  = 1280
	defaultHeight = 720
)

type Options struct {
	Preset   string
	Seed     int64
	Config   sim.Config
	Backdrop scene.BackdropConfig
	Camera   func(*scene.Camera)
	Logger   *log.Logger
	Sound    bool
}

func OptionsFromConfig(preset string, c *config.Config) Options {
	return Options{
		Preset:   preset,
		Seed:     c.Seed,
		Config:   c.SimConfig(),
		Backdrop: c.BackdropConfig(),
		Camera:   c.ApplyCamera,
	}
}

// App owns the window, the scene graph and the loop driving it.
type App struct {
	opts     Options
	surface  *Surface
	graph    *scene.Graph
	backdrop *scene.Backdrop
	loop     *sim.Loop
	player   *audio.Player
	last     sim.Frame
	paused   bool
	restarts int64
}

// Run opens a resizable window and blocks until it is closed.
func Run(opts Options) error {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(defaultWidth, defaultHeight, "starfall")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)
	rl.SetExitKey(0)

	app := &App{opts: opts}
	if opts.Sound {
		app.player = audio.NewPlayer(audio.SampleRate, opts.Logger)
		defer app.player.Close()
	}
	if err := app.restart(); err != nil {
		return err
	}

	for !rl.WindowShouldClose() {
		if rl.IsKeyPressed(rl.KeyQ) {
			break
		}
		if err := app.update(); err != nil {
			return err
		}
		app.draw()
	}
	opts.Logger.Debug("window closed", "ticks", app.loop.Ticks())
	return nil
}

func (a *App) restart() error {
	a.surface = NewSurface()
	a.graph = scene.NewGraph(a.surface)
	if a.opts.Camera != nil {
		a.opts.Camera(a.graph.Camera())
	}
	a.graph.Resize(rl.GetScreenWidth(), rl.GetScreenHeight())

	a.backdrop = scene.NewBackdrop(a.opts.Backdrop, dynamo.NewRand(a.opts.Seed+1))
	a.graph.Add(a.backdrop)

	loop, err := sim.Mount(a.graph, a.opts.Config, dynamo.NewRand(a.opts.Seed+a.restarts))
	if err != nil {
		return err
	}
	loop.SetLogger(a.opts.Logger)
	loop.AddObserver(sim.ObserverFunc(func(f sim.Frame) {
		if f.Phase == sim.Exploding {
			a.opts.Logger.Info("collision", "t", fmt.Sprintf("%.2f", f.Time), "separation", f.Separation)
			a.player.Boom(a.opts.Seed + a.restarts)
		}
	}))
	a.loop = loop
	a.last = loop.Frame()
	a.restarts++
	return nil
}

func (a *App) update() error {
	if rl.IsWindowResized() {
		a.graph.Resize(rl.GetScreenWidth(), rl.GetScreenHeight())
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		a.paused = !a.paused
	}
	if rl.IsKeyPressed(rl.KeyR) {
		return a.restart()
	}
	if rl.IsKeyPressed(rl.KeyB) {
		a.surface.ShowBackdrop = !a.surface.ShowBackdrop
	}

	cam := a.graph.Camera()
	if wheel := rl.GetMouseWheelMove(); wheel > 0 || rl.IsKeyPressed(rl.KeyEqual) {
		cam.ZoomIn()
	} else if wheel < 0 || rl.IsKeyPressed(rl.KeyMinus) {
		cam.ZoomOut()
	}

	mouse := rl.GetMousePosition()
	w, h := float64(rl.GetScreenWidth()), float64(rl.GetScreenHeight())
	a.backdrop.Point(float64(mouse.X)-w/2, float64(mouse.Y)-h/2)
	return nil
}

func (a *App) draw() {
	rl.BeginDrawing()
	if a.paused {
		a.graph.Render()
	} else {
		a.backdrop.Step()
		a.last = a.loop.Tick()
	}
	a.drawHUD()
	rl.EndDrawing()
}

func (a *App) drawHUD() {
	f := a.last
	rl.DrawText("starfall", 30, 30, 24, ColSelect)
	rl.DrawText(":: "+a.opts.Preset, 150, 34, 16, ColText)

	status := "RUNNING"
	col := ColSelect
	if a.paused {
		status, col = "PAUSED", ColTextDim
	}
	rl.DrawText(status, int32(rl.GetScreenWidth())-130, 30, 16, col)

	lines := []string{
		fmt.Sprintf("t      %6.2f s", f.Time),
		fmt.Sprintf("phase  %s", f.Phase),
		fmt.Sprintf("sep    %6.2f", f.Separation),
		fmt.Sprintf("debris %d", f.Particles),
	}
	for i, l := range lines {
		rl.DrawText(l, 30, int32(70+i*20), 16, ColText)
	}

	bottom := int32(rl.GetScreenHeight()) - 40
	rl.DrawText("[SPACE] PAUSE  [R] RESET  [B] BACKDROP  [+/-] ZOOM  [Q] QUIT", 30, bottom, 14, ColTextDim)
	rl.DrawFPS(int32(rl.GetScreenWidth())-100, bottom)
}
