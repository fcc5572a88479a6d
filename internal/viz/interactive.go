package viz

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/san-kum/starfall/internal/config"
)

var (
	cyan    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00cccc")).Bold(true)
	subtle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))
	dimmer  = lipgloss.NewStyle().Foreground(lipgloss.Color("#444455"))
	bright  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true)
	accent  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff8c00")).Bold(true)
	pointer = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffd700")).Bold(true)
)

var presetInfo = map[string]string{
	"collide": "head-on approach, burst near t=0.5s",
	"drift":   "at rest, gravity too weak to close",
	"graze":   "offset approach, glancing contact",
	"rush":    "fast approach, early burst",
}

const (
	stateMenu = iota
	stateConfig
)

// param is one editable field on the config screen.
type param struct {
	name string
	get  func(*config.Config) float64
	set  func(*config.Config, float64)
}

var params = []param{
	{"speed", func(c *config.Config) float64 { return c.BodyA.Velocity[0] }, func(c *config.Config, v float64) { c.SetSpeed(v) }},
	{"offset", func(c *config.Config) float64 { return c.BodyA.Position[1] }, func(c *config.Config, v float64) { c.BodyA.Position[1], c.BodyB.Position[1] = v, -v }},
	{"threshold", func(c *config.Config) float64 { return c.Threshold }, func(c *config.Config, v float64) { c.Threshold = v }},
	{"cutoff", func(c *config.Config) float64 { return c.Cutoff }, func(c *config.Config, v float64) { c.Cutoff = v }},
	{"g", func(c *config.Config) float64 { return c.G }, func(c *config.Config, v float64) { c.G = v }},
	{"particles", func(c *config.Config) float64 { return float64(c.Burst.Count) }, func(c *config.Config, v float64) { c.Burst.Count = int(v) }},
	{"seed", func(c *config.Config) float64 { return float64(c.Seed) }, func(c *config.Config, v float64) { c.Seed = int64(v) }},
}

// menu picks a preset and lets the user tune it, then hands the program
// over to a live Model.
type menu struct {
	state, cursor int
	presets       []string
	selected      string
	cfg           *config.Config
	paramCursor   int
	editing       bool
	editBuf       string
	size          tea.WindowSizeMsg
	logger        *log.Logger
	err           error
}

func NewInteractiveApp(logger *log.Logger) *menu {
	return &menu{state: stateMenu, presets: config.ListPresets(), logger: logger}
}

func (m *menu) Init() tea.Cmd { return nil }

func (m *menu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.state == stateMenu {
			return m.menuKey(msg)
		}
		return m.configKey(msg)
	case tea.WindowSizeMsg:
		m.size = msg
	}
	return m, nil
}

func (m *menu) menuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.presets)-1 {
			m.cursor++
		}
	case "enter", " ":
		m.selected = m.presets[m.cursor]
		m.cfg = config.GetPreset(m.selected)
		m.state, m.paramCursor = stateConfig, 0
	}
	return m, nil
}

func (m *menu) configKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := params[m.paramCursor]
	if m.editing {
		switch msg.String() {
		case "enter":
			if val, err := strconv.ParseFloat(m.editBuf, 64); err == nil {
				p.set(m.cfg, val)
			}
			m.editing, m.editBuf = false, ""
		case "esc":
			m.editing, m.editBuf = false, ""
		case "backspace":
			if len(m.editBuf) > 0 {
				m.editBuf = m.editBuf[:len(m.editBuf)-1]
			}
		default:
			if s := msg.String(); len(s) == 1 {
				c := s[0]
				if (c >= '0' && c <= '9') || c == '.' || c == '-' {
					m.editBuf += s
				}
			}
		}
		return m, nil
	}
	switch msg.String() {
	case "q", "esc":
		m.state = stateMenu
	case "up", "k":
		if m.paramCursor > 0 {
			m.paramCursor--
		}
	case "down", "j":
		if m.paramCursor < len(params)-1 {
			m.paramCursor++
		}
	case "enter", " ":
		m.editing, m.editBuf = true, strconv.FormatFloat(p.get(m.cfg), 'f', -1, 64)
	case "left", "h":
		p.set(m.cfg, p.get(m.cfg)-0.1)
	case "right", "l":
		p.set(m.cfg, p.get(m.cfg)+0.1)
	case "s":
		return m.start()
	}
	return m, nil
}

func (m *menu) start() (tea.Model, tea.Cmd) {
	opts := OptionsFromConfig(m.selected, m.cfg)
	opts.Logger = m.logger
	live, err := NewModel(opts)
	if err != nil {
		m.err = err
		return m, nil
	}
	if m.size.Width > 0 {
		live.Update(m.size)
	}
	return live, live.Init()
}

func (m *menu) View() string {
	switch m.state {
	case stateConfig:
		return m.viewConfig()
	}
	return m.viewMenu()
}

func (m *menu) viewMenu() string {
	var b strings.Builder
	b.WriteString("\n\n    " + cyan.Render("STARFALL") + "\n    " + subtle.Render("two stars, one burst") + "\n    " + subtle.Render("─────────────────────────") + "\n\n")
	for i, name := range m.presets {
		desc := presetInfo[name]
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", pointer.Render("▸"), bright.Render(fmt.Sprintf("%-10s", name)), accent.Render(desc)))
		} else {
			b.WriteString(fmt.Sprintf("    %s  %s\n", dimmer.Render(fmt.Sprintf("  %-10s", name)), dimmer.Render(desc)))
		}
	}
	b.WriteString("\n    " + hints("j/k", "navigate", "enter", "select", "q", "quit") + "\n")
	return b.String()
}

func (m *menu) viewConfig() string {
	var b strings.Builder
	b.WriteString("\n\n    " + cyan.Render(strings.ToUpper(m.selected)) + "\n    " + subtle.Render(presetInfo[m.selected]) + "\n    " + subtle.Render("─────────────────────────") + "\n\n")
	for i, p := range params {
		valStr := fmt.Sprintf("%8.3f", p.get(m.cfg))
		if m.editing && i == m.paramCursor {
			valStr = fmt.Sprintf("%8s", m.editBuf+"_")
		}
		if i == m.paramCursor {
			b.WriteString(fmt.Sprintf("    %s %s %s\n", pointer.Render("▸"), bright.Render(fmt.Sprintf("%-10s", p.name)), accent.Render(valStr)))
		} else {
			b.WriteString(fmt.Sprintf("    %s %s\n", dimmer.Render(fmt.Sprintf("  %-10s", p.name)), dimmer.Render(valStr)))
		}
	}
	if m.err != nil {
		b.WriteString("\n    " + lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444")).Render(m.err.Error()) + "\n")
	}
	b.WriteString("\n    " + hints("j/k", "select", "h/l", "adjust", "s", "start", "esc", "back") + "\n")
	return b.String()
}

func hints(pairs ...string) string {
	var b strings.Builder
	for i := 0; i+1 < len(pairs); i += 2 {
		b.WriteString(cyan.Render(pairs[i]) + subtle.Render(" "+pairs[i+1]+"  "))
	}
	return b.String()
}

func RunInteractive(logger *log.Logger) error {
	_, err := tea.NewProgram(NewInteractiveApp(logger), tea.WithAltScreen(), tea.WithMouseAllMotion()).Run()
	return err
}
