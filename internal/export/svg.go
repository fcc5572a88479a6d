package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/starfall/internal/storage"
	"github.com/san-kum/starfall/internal/viz"
)

// braille dot bits by [row][col]
var dotBits = [4][2]int{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// CanvasToSVG renders every lit braille dot as a circle in its cell color.
func CanvasToSVG(canvas *viz.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}
	w, h := canvas.PixelSize()
	width, height := float64(w)*scale, float64(h)*scale

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#050505"/>
`, width, height, width, height)

	dotRadius := scale * 0.4
	for row := 0; row < canvas.Height; row++ {
		for col := 0; col < canvas.Width; col++ {
			pattern := int(canvas.Grid[row][col] - 0x2800)
			if pattern <= 0 {
				continue
			}
			fill := canvas.Colors[row][col]
			if fill == 0 {
				fill = 0xffffff
			}
			baseX := float64(col) * scale * 2
			baseY := float64(row) * scale * 4
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&dotBits[dy][dx] == 0 {
						continue
					}
					cx := baseX + float64(dx)*scale + scale/2
					cy := baseY + float64(dy)*scale + scale/2
					fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\" fill=\"#%06x\"/>\n", cx, cy, dotRadius, fill)
				}
			}
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// TraceToSVG plots separation against time. The tick of the first exploding
// row, if any, is marked with a vertical line.
func TraceToSVG(rows []storage.TraceRow, width, height int, stroke string) string {
	if len(rows) < 2 {
		return ""
	}

	minT, maxT := rows[0].Time, rows[len(rows)-1].Time
	maxS := 0.0
	for _, r := range rows {
		maxS = math.Max(maxS, r.Separation)
	}
	if maxT == minT {
		maxT = minT + 1
	}
	if maxS == 0 {
		maxS = 1
	}

	pad := 20.0
	scaleX := (float64(width) - 2*pad) / (maxT - minT)
	scaleY := (float64(height) - 2*pad) / maxS
	toX := func(t float64) float64 { return pad + (t-minT)*scaleX }
	toY := func(s float64) float64 { return float64(height) - pad - s*scaleY }

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height)

	// separation is frozen once the stars are gone, so stop the curve there
	sb.WriteString(`<path d="M`)
	for i, r := range rows {
		if i > 0 && r.Phase != "approaching" {
			break
		}
		if i > 0 {
			sb.WriteString(" L")
		}
		fmt.Fprintf(&sb, "%.1f,%.1f", toX(r.Time), toY(r.Separation))
	}
	fmt.Fprintf(&sb, `" fill="none" stroke="%s" stroke-width="2"/>`+"\n", stroke)

	for _, r := range rows {
		if r.Phase == "exploding" {
			x := toX(r.Time)
			fmt.Fprintf(&sb, "<line x1=\"%.1f\" y1=\"%.1f\" x2=\"%.1f\" y2=\"%.1f\" stroke=\"#ffd700\" stroke-dasharray=\"4 3\"/>\n",
				x, pad, x, float64(height)-pad)
			break
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}
