package export

import (
	"image"
	"image/color"
	"math"

	"github.com/anthonynsimon/bild/blend"
	"github.com/anthonynsimon/bild/blur"

	"github.com/san-kum/starfall/internal/physics"
	"github.com/san-kum/starfall/internal/scene"
)

var background = color.RGBA{5, 5, 10, 255}

// Raster is a surface that paints the scene into an RGBA image. When Glow is
// positive a Gaussian blur of the frame is added back over it.
type Raster struct {
	Image        *image.RGBA
	Glow         float64
	ShowBackdrop bool
}

func NewRaster(width, height int) *Raster {
	return &Raster{
		Image:        image.NewRGBA(image.Rect(0, 0, width, height)),
		Glow:         4,
		ShowBackdrop: true,
	}
}

func (r *Raster) Resize(width, height int) {
	if r.Image != nil && r.Image.Rect.Dx() == width && r.Image.Rect.Dy() == height {
		return
	}
	r.Image = image.NewRGBA(image.Rect(0, 0, width, height))
}

func (r *Raster) Draw(g *scene.Graph, cam *scene.Camera) {
	img := image.NewRGBA(r.Image.Rect)
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = background.R, background.G, background.B, 255
	}
	w, h := img.Rect.Dx(), img.Rect.Dy()

	for _, obj := range g.Objects() {
		switch o := obj.(type) {
		case *scene.Backdrop:
			if r.ShowBackdrop {
				drawBackdrop(img, o, cam, w, h)
			}
		case *physics.Body:
			if !o.Visible {
				continue
			}
			if x, y, depth, ok := cam.Project(o.Position, w, h); ok {
				disc(img, x, y, cam.ProjectRadius(o.Radius, depth, h), o.Color, 1)
			}
		case *physics.Particle:
			if o.Opacity <= 0 {
				continue
			}
			if x, y, depth, ok := cam.Project(o.Position, w, h); ok {
				rad := math.Max(1, cam.ProjectRadius(0.2*o.Scale, depth, h))
				disc(img, x, y, rad, o.Color, o.Opacity)
			}
		}
	}

	for _, obj := range g.Objects() {
		if l, ok := obj.(*scene.Light); ok {
			if x, y, depth, ok := cam.Project(l.Position, w, h); ok {
				halo(img, x, y, cam.ProjectRadius(l.Range*0.1, depth, h), l.Color, math.Min(1, l.Intensity/10))
			}
		}
	}

	if r.Glow > 0 {
		img = blend.Add(img, blur.Gaussian(img, r.Glow))
	}
	r.Image = img
}

// Snapshot returns a copy of the last drawn frame.
func (r *Raster) Snapshot() *image.RGBA {
	out := image.NewRGBA(r.Image.Rect)
	copy(out.Pix, r.Image.Pix)
	return out
}

func drawBackdrop(img *image.RGBA, b *scene.Backdrop, cam *scene.Camera, w, h int) {
	star := b.Config().StarColor
	for _, s := range b.Stars {
		if x, y, _, ok := cam.Project(s.Add(b.Offset), w, h); ok {
			blendPixel(img, x, y, star, 0.5)
		}
	}
	knot := b.Config().KnotColor
	for _, p := range b.Spine() {
		if x, y, _, ok := cam.Project(p, w, h); ok {
			blendPixel(img, x, y, knot, 0.35)
		}
	}
}

func disc(img *image.RGBA, cx, cy int, r float64, c uint32, alpha float64) {
	ri := int(math.Ceil(r))
	for dy := -ri; dy <= ri; dy++ {
		for dx := -ri; dx <= ri; dx++ {
			if float64(dx*dx+dy*dy) <= r*r {
				blendPixel(img, cx+dx, cy+dy, c, alpha)
			}
		}
	}
}

// halo fades linearly from alpha at the center to nothing at r.
func halo(img *image.RGBA, cx, cy int, r float64, c uint32, alpha float64) {
	if r <= 0 {
		return
	}
	ri := int(math.Ceil(r))
	for dy := -ri; dy <= ri; dy++ {
		for dx := -ri; dx <= ri; dx++ {
			d := math.Sqrt(float64(dx*dx + dy*dy))
			if d < r {
				addPixel(img, cx+dx, cy+dy, c, alpha*(1-d/r))
			}
		}
	}
}

func blendPixel(img *image.RGBA, x, y int, c uint32, alpha float64) {
	if !image.Pt(x, y).In(img.Rect) {
		return
	}
	cr, cg, cb := scene.RGB(c)
	i := img.PixOffset(x, y)
	p := img.Pix[i : i+3 : i+3]
	p[0] = mix(p[0], cr, alpha)
	p[1] = mix(p[1], cg, alpha)
	p[2] = mix(p[2], cb, alpha)
}

func addPixel(img *image.RGBA, x, y int, c uint32, alpha float64) {
	if !image.Pt(x, y).In(img.Rect) {
		return
	}
	cr, cg, cb := scene.RGB(c)
	i := img.PixOffset(x, y)
	p := img.Pix[i : i+3 : i+3]
	p[0] = sat(float64(p[0]) + float64(cr)*alpha)
	p[1] = sat(float64(p[1]) + float64(cg)*alpha)
	p[2] = sat(float64(p[2]) + float64(cb)*alpha)
}

func mix(dst, src uint8, alpha float64) uint8 {
	return sat(float64(dst)*(1-alpha) + float64(src)*alpha)
}

func sat(v float64) uint8 {
	if v >= 255 {
		return 255
	}
	if v <= 0 {
		return 0
	}
	return uint8(v + 0.5)
}
