package scene

import (
	"math"

	"github.com/san-kum/starfall/internal/dynamo"
)

// BackdropConfig describes the decorative scene behind the collision.
type BackdropConfig struct {
	Stars       int
	Spread      float64
	KnotRadius  float64
	KnotTube    float64
	KnotP       int
	KnotQ       int
	Tubular     int
	Radial      int
	Spin        float64
	Follow      float64
	PointerDiv  float64
	KnotColor   uint32
	StarColor   uint32
	KeyLight    dynamo.Vec3
	AmbientTint uint32
}

func DefaultBackdropConfig() BackdropConfig {
	return BackdropConfig{
		Stars:       300,
		Spread:      100,
		KnotRadius:  10,
		KnotTube:    3,
		KnotP:       2,
		KnotQ:       3,
		Tubular:     100,
		Radial:      16,
		Spin:        0.002,
		Follow:      0.05,
		PointerDiv:  100,
		KnotColor:   0xff3e3e,
		StarColor:   0xffffff,
		KeyLight:    dynamo.Vec3{X: 20, Y: 20, Z: 20},
		AmbientTint: 0x404040,
	}
}

// Backdrop is the starfield and wireframe torus knot that drift behind the
// collision. It follows the pointer with exponential easing.
type Backdrop struct {
	cfg      BackdropConfig
	Stars    []dynamo.Vec3
	rings    [][]dynamo.Vec3
	Rotation dynamo.Vec3
	Offset   dynamo.Vec3
	pointerX float64
	pointerY float64
}

func NewBackdrop(cfg BackdropConfig, rng dynamo.Rand) *Backdrop {
	b := &Backdrop{cfg: cfg, Stars: make([]dynamo.Vec3, cfg.Stars)}
	for i := range b.Stars {
		b.Stars[i] = dynamo.Vec3{
			X: spread(rng, cfg.Spread),
			Y: spread(rng, cfg.Spread),
			Z: spread(rng, cfg.Spread),
		}
	}
	b.rings = torusKnot(cfg)
	return b
}

func (*Backdrop) Kind() Kind { return KindBackdrop }

func (b *Backdrop) Config() BackdropConfig { return b.cfg }

// Point records the pointer position as an offset in pixels from the center
// of the viewport.
func (b *Backdrop) Point(dx, dy float64) {
	if b.cfg.PointerDiv == 0 {
		return
	}
	b.pointerX = dx / b.cfg.PointerDiv
	b.pointerY = dy / b.cfg.PointerDiv
}

// Step advances the backdrop by one frame.
func (b *Backdrop) Step() {
	b.Rotation.X += b.cfg.Spin
	b.Rotation.Y += b.cfg.Spin
	b.Offset.X += (b.pointerX - b.Offset.X) * b.cfg.Follow
	b.Offset.Y += (-b.pointerY - b.Offset.Y) * b.cfg.Follow
}

// Rings returns the knot's tube cross-sections in world space, one ring per
// tubular segment.
func (b *Backdrop) Rings() [][]dynamo.Vec3 {
	out := make([][]dynamo.Vec3, len(b.rings))
	for i, ring := range b.rings {
		out[i] = make([]dynamo.Vec3, len(ring))
		for j, p := range ring {
			out[i][j] = b.place(p)
		}
	}
	return out
}

// Spine returns the knot's center curve in world space.
func (b *Backdrop) Spine() []dynamo.Vec3 {
	if b.cfg.Tubular <= 0 || b.cfg.KnotP == 0 {
		return nil
	}
	out := make([]dynamo.Vec3, 0, b.cfg.Tubular+1)
	for i := 0; i <= b.cfg.Tubular; i++ {
		u := float64(i) / float64(b.cfg.Tubular) * float64(b.cfg.KnotP) * 2 * math.Pi
		out = append(out, b.place(knotPoint(u, b.cfg)))
	}
	return out
}

func (b *Backdrop) place(p dynamo.Vec3) dynamo.Vec3 {
	return dynamo.RotateXY(p, b.Rotation.X, b.Rotation.Y).Add(b.Offset)
}

func spread(rng dynamo.Rand, r float64) float64 {
	return (rng.Float64() - 0.5) * r
}

func knotPoint(u float64, cfg BackdropConfig) dynamo.Vec3 {
	p, q := float64(cfg.KnotP), float64(cfg.KnotQ)
	qu := q / p * u
	cs := math.Cos(qu)
	return dynamo.Vec3{
		X: cfg.KnotRadius * (2 + cs) * 0.5 * math.Cos(u),
		Y: cfg.KnotRadius * (2 + cs) * 0.5 * math.Sin(u),
		Z: cfg.KnotRadius * math.Sin(qu) * 0.5,
	}
}

func torusKnot(cfg BackdropConfig) [][]dynamo.Vec3 {
	if cfg.Tubular <= 0 || cfg.Radial <= 0 || cfg.KnotP == 0 {
		return nil
	}
	rings := make([][]dynamo.Vec3, 0, cfg.Tubular+1)
	for i := 0; i <= cfg.Tubular; i++ {
		u := float64(i) / float64(cfg.Tubular) * float64(cfg.KnotP) * 2 * math.Pi
		p1 := knotPoint(u, cfg)
		p2 := knotPoint(u+0.01, cfg)

		t := p2.Sub(p1)
		n := p2.Add(p1)
		bn := t.Cross(n).Normalize()
		n = bn.Cross(t).Normalize()

		ring := make([]dynamo.Vec3, cfg.Radial)
		for j := range ring {
			v := float64(j) / float64(cfg.Radial) * 2 * math.Pi
			cx := -cfg.KnotTube * math.Cos(v)
			cy := cfg.KnotTube * math.Sin(v)
			ring[j] = p1.Add(n.Scale(cx)).Add(bn.Scale(cy))
		}
		rings = append(rings, ring)
	}
	return rings
}
