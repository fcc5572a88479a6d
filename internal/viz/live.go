package viz

import (
	"fmt"
	"image"
	"image/color"
	"image/color/palette"
	"image/gif"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/starfall/internal/config"
	"github.com/san-kum/starfall/internal/dynamo"
	"github.com/san-kum/starfall/internal/scene"
	"github.com/san-kum/starfall/internal/sim"
)

const (
	defaultCols     = 80
	defaultRows     = 24
	panelWidth      = 40
	historyCapacity = 240
	cellW, cellH    = 8, 16
)

type TickMsg time.Time

// Options describe one live session.
type Options struct {
	Preset      string
	Seed        int64
	Config      sim.Config
	Backdrop    scene.BackdropConfig
	Theme       string
	Camera      func(*scene.Camera)
	Logger      *log.Logger
	OnCollision func(sim.Frame)
	GIFPath     string
}

// OptionsFromConfig builds session options from a loaded configuration.
func OptionsFromConfig(preset string, c *config.Config) Options {
	return Options{
		Preset:   preset,
		Seed:     c.Seed,
		Config:   c.SimConfig(),
		Backdrop: c.BackdropConfig(),
		Theme:    c.Theme,
		Camera:   c.ApplyCamera,
	}
}

// Model is the terminal host: it owns the scene graph the loop draws into and
// ticks the loop at 60 Hz.
type Model struct {
	opts          Options
	theme         Theme
	surface       *BrailleSurface
	graph         *scene.Graph
	loop          *sim.Loop
	backdrop      *scene.Backdrop
	last          sim.Frame
	running       bool
	showBackdrop  bool
	showHelp      bool
	width, height int
	separations   []float64
	recording     bool
	frames        []*image.Paletted
	status        string
	err           error
}

func NewModel(opts Options) (*Model, error) {
	if opts.Logger == nil {
		opts.Logger = log.New(os.Stderr)
	}
	if opts.GIFPath == "" {
		opts.GIFPath = "starfall.gif"
	}
	m := &Model{
		opts:         opts,
		theme:        GetTheme(opts.Theme),
		running:      true,
		showBackdrop: opts.Backdrop.Stars > 0 || opts.Backdrop.Tubular > 0,
		width:        defaultCols + panelWidth,
		height:       defaultRows,
	}
	if err := m.restart(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Model) restart() error {
	cols, rows := m.canvasSize()
	m.surface = NewBrailleSurface(cols, rows, m.theme)
	m.surface.ShowBackdrop = m.showBackdrop
	m.graph = scene.NewGraph(m.surface)
	if m.opts.Camera != nil {
		m.opts.Camera(m.graph.Camera())
	}
	m.graph.Resize(cols*2, rows*4)

	m.backdrop = scene.NewBackdrop(m.opts.Backdrop, dynamo.NewRand(m.opts.Seed+1))
	m.graph.Add(m.backdrop)

	loop, err := sim.Mount(m.graph, m.opts.Config, dynamo.NewRand(m.opts.Seed))
	if err != nil {
		return err
	}
	loop.SetLogger(m.opts.Logger)
	m.loop = loop
	m.last = loop.Frame()
	m.separations = m.separations[:0]
	m.opts.Logger.Debug("session started", "preset", m.opts.Preset, "seed", m.opts.Seed)
	return nil
}

func (m *Model) canvasSize() (int, int) {
	cols := m.width - panelWidth - 4
	rows := m.height - 1
	if cols < 20 {
		cols = 20
	}
	if rows < 8 {
		rows = 8
	}
	return cols, rows
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m *Model) Init() tea.Cmd {
	return tick()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		cols, rows := m.canvasSize()
		m.graph.Resize(cols*2, rows*4)
	case tea.MouseMsg:
		cols, rows := m.canvasSize()
		dx := float64(msg.X-cols/2) * cellW
		dy := float64(msg.Y-rows/2) * cellH
		m.backdrop.Point(dx, dy)
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			if m.recording {
				m.saveGIF()
			}
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			if err := m.restart(); err != nil {
				m.err = err
				return m, tea.Quit
			}
		case "t":
			m.theme = NextTheme(m.theme.Name)
			m.surface.Theme = m.theme
		case "b":
			m.showBackdrop = !m.showBackdrop
			m.surface.ShowBackdrop = m.showBackdrop
		case "+", "=":
			m.graph.Camera().ZoomIn()
		case "-", "_":
			m.graph.Camera().ZoomOut()
		case "g":
			if m.recording {
				m.saveGIF()
				m.recording = false
				m.frames = nil
			} else {
				m.recording = true
				m.frames = make([]*image.Paletted, 0, 120)
			}
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, tick()
	}
	return m, nil
}

func (m *Model) step() {
	m.backdrop.Step()
	f := m.loop.Tick()
	if f.Phase == sim.Exploding && m.opts.OnCollision != nil {
		m.opts.OnCollision(f)
	}
	m.last = f

	m.separations = append(m.separations, f.Separation)
	if len(m.separations) > historyCapacity {
		m.separations = m.separations[1:]
	}
	if m.recording {
		m.captureFrame()
	}
}

// Err is the error that ended the session, if any.
func (m *Model) Err() error { return m.err }

// Frame is the last frame the loop produced.
func (m *Model) Frame() sim.Frame { return m.last }

func (m *Model) View() string {
	th := m.theme
	title := lipgloss.NewStyle().Foreground(th.Primary).Bold(true).MarginBottom(1)
	label := lipgloss.NewStyle().Foreground(th.Muted).Width(12)
	value := lipgloss.NewStyle().Foreground(th.Text)
	graph := lipgloss.NewStyle().Foreground(th.Secondary).Padding(1, 0)

	f := m.last
	status := "RUNNING"
	switch {
	case !m.running:
		status = "PAUSED"
	case m.recording:
		status = "RECORDING"
	case m.loop.Idle():
		status = "IDLE"
	}

	var s strings.Builder
	s.WriteString(title.Render("STARFALL") + "\n")
	s.WriteString(lipgloss.NewStyle().Foreground(th.Accent).Render(status) + "\n\n")

	row := func(k, v string) {
		s.WriteString(label.Render(k) + value.Render(v) + "\n")
	}
	row("Preset", m.opts.Preset)
	row("Time", fmt.Sprintf("%.2fs", f.Time))
	row("Phase", f.Phase.String())
	if c := m.loop.Clock(); c.Collided() {
		row("Impact", fmt.Sprintf("%.2fs", *c.CollisionAt))
	}
	row("Separation", fmt.Sprintf("%.2f", f.Separation))
	row("Particles", fmt.Sprintf("%d", f.Particles))
	count := m.loop.Config().Burst.Count
	if count > 0 {
		s.WriteString(ProgressBar(float64(f.Particles)/float64(count), 24, th) + "\n")
	}
	if f.Flash {
		row("Flash", lipgloss.NewStyle().Foreground(th.Warning).Render("●"))
	}

	if len(m.separations) > 1 {
		chart := asciigraph.Plot(m.separations, asciigraph.Height(5), asciigraph.Width(28), asciigraph.Caption("Separation"))
		s.WriteString(graph.Render(chart) + "\n")
	}
	if m.status != "" {
		s.WriteString(value.Render(m.status) + "\n")
	}

	s.WriteString(Separator(panelWidth-6, th) + "\n")
	s.WriteString(helpStyle.Render("SP:Pause R:Restart Q:Quit\nT:Theme  B:Backdrop G:Record\n+/-:Zoom ?:Help"))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasStyle.Render(m.surface.Canvas.Styled()), statsStyle.Render(s.String()))
	if m.showHelp {
		return helpText + "\n" + mainView
	}
	return mainView
}

const helpText = `
  Space  pause / resume
  R      restart from the initial approach
  T      cycle themes
  B      toggle starfield and knot
  G      start / stop GIF recording
  +/-    zoom
  Q      quit
`

func (m *Model) captureFrame() {
	c := m.surface.Canvas
	img := image.NewPaletted(image.Rect(0, 0, c.Width*cellW, c.Height*cellH), palette.Plan9)
	dotW, dotH := cellW/2, cellH/4
	for row := 0; row < c.Height; row++ {
		for col := 0; col < c.Width; col++ {
			pattern := int(c.Grid[row][col] - blank)
			if pattern == 0 {
				continue
			}
			r, g, b := scene.RGB(c.Colors[row][col])
			idx := uint8(img.Palette.Index(color.RGBA{r, g, b, 0xff}))
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] == 0 {
						continue
					}
					for py := 0; py < dotH; py++ {
						for px := 0; px < dotW; px++ {
							img.SetColorIndex(col*cellW+dx*dotW+px, row*cellH+dy*dotH+py, idx)
						}
					}
				}
			}
		}
	}
	m.frames = append(m.frames, img)
}

func (m *Model) saveGIF() {
	if len(m.frames) == 0 {
		return
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range m.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, 2)
	}
	f, err := os.Create(m.opts.GIFPath)
	if err != nil {
		m.opts.Logger.Error("gif", "err", err)
		return
	}
	defer f.Close()
	if err := gif.EncodeAll(f, &anim); err != nil {
		m.opts.Logger.Error("gif", "err", err)
		return
	}
	m.status = fmt.Sprintf("saved %s (%d frames)", m.opts.GIFPath, len(m.frames))
	m.opts.Logger.Info("gif saved", "path", m.opts.GIFPath, "frames", len(m.frames))
}

// Run starts a live session in the alternate screen.
func Run(opts Options) error {
	m, err := NewModel(opts)
	if err != nil {
		return err
	}
	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run(); err != nil {
		return err
	}
	return m.Err()
}
