package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(0, 1)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(panelWidth)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

// ProgressBar renders a bar filled to percent of width.
func ProgressBar(percent float64, width int, th Theme) string {
	filled := int(percent * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	switch {
	case percent > 0.6:
		return lipgloss.NewStyle().Foreground(th.Success).Render(bar)
	case percent > 0.25:
		return lipgloss.NewStyle().Foreground(th.Warning).Render(bar)
	}
	return lipgloss.NewStyle().Foreground(th.Error).Render(bar)
}

// Separator is a ruled line with a center ornament.
func Separator(width int, th Theme) string {
	mid := width / 2
	if mid < 3 {
		return ""
	}
	left := strings.Repeat("─", mid-3)
	right := strings.Repeat("─", width-mid-3)
	return lipgloss.NewStyle().Foreground(th.Muted).Render(left + " ◆ " + right)
}

// Shade scales a 0xRRGGBB color toward black.
func Shade(c uint32, f float64) uint32 {
	if f >= 1 {
		return c
	}
	if f <= 0 {
		return 0
	}
	r := uint32(float64(c>>16&0xff) * f)
	g := uint32(float64(c>>8&0xff) * f)
	b := uint32(float64(c&0xff) * f)
	return r<<16 | g<<8 | b
}

func hexColor(c uint32) string {
	return fmt.Sprintf("#%06x", c&0xffffff)
}
