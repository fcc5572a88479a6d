package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines the panel palette and the colors the scene is drawn with.
type Theme struct {
	Name      string
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color
	Text      lipgloss.Color
	Muted     lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color

	// Scene colors. Zero keeps an object's own color.
	StarA, StarB uint32
	Knot         uint32
	Field        uint32
	Mono         uint32
}

var (
	ThemeEmber = Theme{
		Name:      "ember",
		Primary:   lipgloss.Color("#ff8c00"),
		Secondary: lipgloss.Color("#ffd700"),
		Accent:    lipgloss.Color("#ff4500"),
		Text:      lipgloss.Color("#fff5e6"),
		Muted:     lipgloss.Color("#665544"),
		Success:   lipgloss.Color("#ffd700"),
		Warning:   lipgloss.Color("#ff8c00"),
		Error:     lipgloss.Color("#ff4500"),
		Knot:      0x803030,
		Field:     0x9a9a9a,
	}

	ThemeIce = Theme{
		Name:      "ice",
		Primary:   lipgloss.Color("#00a8cc"),
		Secondary: lipgloss.Color("#a0c8ff"),
		Accent:    lipgloss.Color("#e0f0ff"),
		Text:      lipgloss.Color("#e0f0ff"),
		Muted:     lipgloss.Color("#4488aa"),
		Success:   lipgloss.Color("#00ff88"),
		Warning:   lipgloss.Color("#ffcc00"),
		Error:     lipgloss.Color("#ff4444"),
		StarA:     0xe0f0ff,
		StarB:     0x80c0ff,
		Knot:      0x305070,
		Field:     0x6688aa,
	}

	ThemeRetro = Theme{
		Name:      "retro",
		Primary:   lipgloss.Color("#00ff00"),
		Secondary: lipgloss.Color("#00cc00"),
		Accent:    lipgloss.Color("#88ff88"),
		Text:      lipgloss.Color("#00ff00"),
		Muted:     lipgloss.Color("#005500"),
		Success:   lipgloss.Color("#88ff88"),
		Warning:   lipgloss.Color("#ffff00"),
		Error:     lipgloss.Color("#ff0000"),
		Mono:      0x00ff00,
	}

	ThemeMinimal = Theme{
		Name:      "minimal",
		Primary:   lipgloss.Color("#ffffff"),
		Secondary: lipgloss.Color("#cccccc"),
		Accent:    lipgloss.Color("#0088ff"),
		Text:      lipgloss.Color("#ffffff"),
		Muted:     lipgloss.Color("#888888"),
		Success:   lipgloss.Color("#00ff00"),
		Warning:   lipgloss.Color("#ffaa00"),
		Error:     lipgloss.Color("#ff0000"),
		Mono:      0xffffff,
	}

	Themes = []Theme{
		ThemeEmber,
		ThemeIce,
		ThemeRetro,
		ThemeMinimal,
	}
)

// GetTheme returns a theme by name, falling back to ember.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeEmber
}

// NextTheme returns the theme after the named one, wrapping around.
func NextTheme(name string) Theme {
	for i, t := range Themes {
		if t.Name == name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

func (t Theme) paint(c uint32) uint32 {
	if t.Mono != 0 {
		return t.Mono
	}
	return c
}
