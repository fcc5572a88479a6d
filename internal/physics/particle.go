package physics

import (
	"math"

	"github.com/san-kum/starfall/internal/dynamo"
	"github.com/san-kum/starfall/internal/scene"
)

// OpacityCeiling is the opacity of a fragment at full life.
const OpacityCeiling = 0.8

// WarmPalette is the set of fragment colors.
var WarmPalette = []uint32{0xff4500, 0xff8c00, 0xffd700, 0xff6347, 0xffffe0}

type Particle struct {
	Position dynamo.Vec3
	Velocity dynamo.Vec3 // units per second
	Life     float64
	MaxLife  float64
	Color    uint32
	Scale    float64
	Opacity  float64
}

func (*Particle) Kind() scene.Kind { return scene.KindFragment }

// Decay damps the velocity, moves the fragment and burns dt of its life.
// It reports whether the fragment is still alive.
func (p *Particle) Decay(dt, drag float64) bool {
	p.Velocity = p.Velocity.Scale(drag)
	p.Position = p.Position.Add(p.Velocity.Scale(dt))
	p.Life -= dt
	p.refresh()
	return p.Life > 0
}

func (p *Particle) refresh() {
	ratio := 0.0
	if p.MaxLife > 0 && p.Life > 0 {
		ratio = p.Life / p.MaxLife
	}
	p.Scale = ratio
	p.Opacity = ratio * OpacityCeiling
}

type BurstConfig struct {
	Count    int
	Life     float64
	MinSpeed float64
	MaxSpeed float64
	Palette  []uint32
}

func DefaultBurstConfig() BurstConfig {
	return BurstConfig{
		Count:    300,
		Life:     4,
		MinSpeed: 5,
		MaxSpeed: 25,
		Palette:  WarmPalette,
	}
}

// Burst appends cfg.Count fragments at origin to dst and returns the result.
// Directions are uniform on the sphere: the azimuth and the cosine of the
// inclination are drawn independently.
func Burst(dst []*Particle, origin dynamo.Vec3, cfg BurstConfig, rng dynamo.Rand) []*Particle {
	palette := cfg.Palette
	if len(palette) == 0 {
		palette = WarmPalette
	}
	for i := 0; i < cfg.Count; i++ {
		theta := rng.Float64() * 2 * math.Pi
		phi := math.Acos(2*rng.Float64() - 1)
		speed := cfg.MinSpeed + rng.Float64()*(cfg.MaxSpeed-cfg.MinSpeed)

		dir := dynamo.Vec3{
			X: math.Sin(phi) * math.Cos(theta),
			Y: math.Sin(phi) * math.Sin(theta),
			Z: math.Cos(phi),
		}
		idx := int(rng.Float64() * float64(len(palette)))
		if idx >= len(palette) {
			idx = len(palette) - 1
		}

		p := &Particle{
			Position: origin,
			Velocity: dir.Scale(speed),
			Life:     cfg.Life,
			MaxLife:  cfg.Life,
			Color:    palette[idx],
		}
		p.refresh()
		dst = append(dst, p)
	}
	return dst
}
