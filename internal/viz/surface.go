package viz

import (
	"math"

	"github.com/san-kum/starfall/internal/dynamo"
	"github.com/san-kum/starfall/internal/physics"
	"github.com/san-kum/starfall/internal/scene"
)

const minFragmentOpacity = 0.04

// BrailleSurface draws a scene graph onto a braille canvas.
type BrailleSurface struct {
	Canvas       *Canvas
	Theme        Theme
	ShowBackdrop bool
}

func NewBrailleSurface(cols, rows int, th Theme) *BrailleSurface {
	return &BrailleSurface{
		Canvas:       NewCanvas(cols, rows),
		Theme:        th,
		ShowBackdrop: true,
	}
}

// Resize takes the viewport size in dots.
func (s *BrailleSurface) Resize(width, height int) {
	cols, rows := (width+1)/2, (height+3)/4
	if cols == s.Canvas.Width && rows == s.Canvas.Height {
		return
	}
	s.Canvas = NewCanvas(cols, rows)
}

func (s *BrailleSurface) Draw(g *scene.Graph, cam *scene.Camera) {
	s.Canvas.Clear()
	w, h := s.Canvas.PixelSize()
	objs := g.Objects()

	if s.ShowBackdrop {
		for _, obj := range objs {
			if b, ok := obj.(*scene.Backdrop); ok {
				s.drawBackdrop(b, cam, w, h)
			}
		}
	}

	star := 0
	for _, obj := range objs {
		switch o := obj.(type) {
		case *physics.Body:
			s.drawBody(o, star, cam, w, h)
			star++
		case *physics.Particle:
			s.drawParticle(o, cam, w, h)
		}
	}

	for _, obj := range objs {
		if l, ok := obj.(*scene.Light); ok {
			s.drawFlash(l, cam, w, h)
		}
	}
}

func (s *BrailleSurface) drawBody(b *physics.Body, idx int, cam *scene.Camera, w, h int) {
	if !b.Visible {
		return
	}
	x, y, depth, ok := cam.Project(b.Position, w, h)
	if !ok {
		return
	}
	color := b.Color
	switch {
	case idx == 0 && s.Theme.StarA != 0:
		color = s.Theme.StarA
	case idx == 1 && s.Theme.StarB != 0:
		color = s.Theme.StarB
	}
	r := cam.ProjectRadius(b.Radius, depth, h)
	s.Canvas.FillCircle(x, y, int(math.Round(r)), s.Theme.paint(color))
}

func (s *BrailleSurface) drawParticle(p *physics.Particle, cam *scene.Camera, w, h int) {
	if p.Opacity < minFragmentOpacity {
		return
	}
	x, y, _, ok := cam.Project(p.Position, w, h)
	if !ok {
		return
	}
	s.Canvas.Plot(x, y, s.Theme.paint(Shade(p.Color, p.Opacity/physics.OpacityCeiling)))
}

func (s *BrailleSurface) drawFlash(l *scene.Light, cam *scene.Camera, w, h int) {
	x, y, depth, ok := cam.Project(l.Position, w, h)
	if !ok {
		return
	}
	r := cam.ProjectRadius(l.Range*0.05, depth, h)
	color := s.Theme.paint(l.Color)
	s.Canvas.Circle(x, y, int(r), color)
	s.Canvas.Circle(x, y, int(r*0.6), color)
}

func (s *BrailleSurface) drawBackdrop(b *scene.Backdrop, cam *scene.Camera, w, h int) {
	field := s.Theme.Field
	if field == 0 {
		field = b.Config().StarColor
	}
	field = s.Theme.paint(Shade(field, 0.6))
	for _, st := range b.Stars {
		if x, y, _, ok := cam.Project(st.Add(b.Offset), w, h); ok {
			s.Canvas.Plot(x, y, field)
		}
	}

	knot := s.Theme.Knot
	if knot == 0 {
		knot = Shade(b.Config().KnotColor, 0.5)
	}
	knot = s.Theme.paint(knot)

	spine := b.Spine()
	for i := 1; i < len(spine); i++ {
		s.line(spine[i-1], spine[i], cam, w, h, knot)
	}
	for i, ring := range b.Rings() {
		if i%5 != 0 {
			continue
		}
		for j := range ring {
			s.line(ring[j], ring[(j+1)%len(ring)], cam, w, h, knot)
		}
	}
}

func (s *BrailleSurface) line(a, b dynamo.Vec3, cam *scene.Camera, w, h int, color uint32) {
	x0, y0, _, ok0 := cam.Project(a, w, h)
	x1, y1, _, ok1 := cam.Project(b, w, h)
	if ok0 && ok1 {
		s.Canvas.DrawLine(x0, y0, x1, y1, color)
	}
}
