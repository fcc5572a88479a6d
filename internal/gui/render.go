package gui

import (
	"image/color"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/starfall/internal/dynamo"
	"github.com/san-kum/starfall/internal/physics"
	"github.com/san-kum/starfall/internal/scene"
)

var (
	ColBg      = rl.NewColor(5, 5, 10, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
)

// Surface draws the scene graph with raylib. It must be used between
// BeginDrawing and EndDrawing on the window's thread.
type Surface struct {
	Camera       rl.Camera3D
	ShowBackdrop bool
	width        int
	height       int
}

func NewSurface() *Surface {
	return &Surface{
		Camera: rl.NewCamera3D(
			rl.NewVector3(0, 0, scene.DefaultZ),
			rl.NewVector3(0, 0, 0),
			rl.NewVector3(0, 1, 0),
			scene.DefaultFOV,
			rl.CameraPerspective,
		),
		ShowBackdrop: true,
	}
}

func (s *Surface) Resize(width, height int) {
	s.width, s.height = width, height
}

func (s *Surface) Draw(g *scene.Graph, cam *scene.Camera) {
	s.sync(cam)
	rl.ClearBackground(ColBg)
	rl.BeginMode3D(s.Camera)

	objs := g.Objects()
	if s.ShowBackdrop {
		for _, obj := range objs {
			if b, ok := obj.(*scene.Backdrop); ok {
				drawBackdrop(b)
			}
		}
	}

	for _, obj := range objs {
		switch o := obj.(type) {
		case *physics.Body:
			if o.Visible {
				rl.DrawSphere(vec3(o.Position), float32(o.Radius), rgba(o.Color, 1))
			}
		case *physics.Particle:
			if o.Opacity > 0 {
				rl.DrawSphereEx(vec3(o.Position), 0.2*float32(o.Scale), 6, 6, rgba(o.Color, float32(o.Opacity)))
			}
		}
	}

	rl.BeginBlendMode(rl.BlendAdditive)
	for _, obj := range objs {
		if l, ok := obj.(*scene.Light); ok {
			drawFlash(l)
		}
	}
	rl.EndBlendMode()

	rl.EndMode3D()
}

// sync copies the scene camera into the raylib one. Zoom narrows the field
// of view.
func (s *Surface) sync(cam *scene.Camera) {
	s.Camera.Position = vec3(cam.Position)
	zoom := math32.Max(float32(cam.Zoom), 0.1)
	s.Camera.Fovy = math32.Min(float32(cam.FOV)/zoom, 170)
}

func drawBackdrop(b *scene.Backdrop) {
	star := rgba(b.Config().StarColor, 0.6)
	for _, p := range b.Stars {
		rl.DrawPoint3D(vec3(p.Add(b.Offset)), star)
	}

	knot := rgba(b.Config().KnotColor, 0.35)
	spine := b.Spine()
	for i := 1; i < len(spine); i++ {
		rl.DrawLine3D(vec3(spine[i-1]), vec3(spine[i]), knot)
	}
	for i, ring := range b.Rings() {
		if i%4 != 0 {
			continue
		}
		for j := range ring {
			rl.DrawLine3D(vec3(ring[j]), vec3(ring[(j+1)%len(ring)]), knot)
		}
	}
}

// drawFlash stacks translucent shells whose size follows the light's range
// and whose brightness follows its intensity.
func drawFlash(l *scene.Light) {
	base := float32(l.Range) * 0.05
	glow := math32.Min(float32(l.Intensity)/10, 1)
	for i := 1; i <= 3; i++ {
		r := base * math32.Sqrt(float32(i))
		rl.DrawSphereEx(vec3(l.Position), r, 12, 12, rgba(l.Color, glow*0.25/float32(i)))
	}
}

func vec3(v dynamo.Vec3) rl.Vector3 {
	return rl.NewVector3(float32(v.X), float32(v.Y), float32(v.Z))
}

func rgba(c uint32, alpha float32) color.RGBA {
	r, g, b := scene.RGB(c)
	return rl.ColorAlpha(rl.NewColor(r, g, b, 255), alpha)
}
