package physics

import (
	"github.com/san-kum/starfall/internal/dynamo"
	"github.com/san-kum/starfall/internal/scene"
)

const (
	DefaultMass   = 1.0
	DefaultRadius = 1.5
)

// BodyState is the initial condition of a body.
type BodyState struct {
	Position dynamo.Vec3
	Velocity dynamo.Vec3
}

func DefaultA() BodyState {
	return BodyState{Position: dynamo.Vec3{X: -18}, Velocity: dynamo.Vec3{X: 0.5}}
}

func DefaultB() BodyState {
	return BodyState{Position: dynamo.Vec3{X: 18}, Velocity: dynamo.Vec3{X: -0.5}}
}

type Body struct {
	Position dynamo.Vec3
	Velocity dynamo.Vec3 // units per tick
	Rotation dynamo.Vec3
	Mass     float64
	Radius   float64
	Color    uint32
	Visible  bool
}

func NewBody(s BodyState, color uint32) *Body {
	return &Body{
		Position: s.Position,
		Velocity: s.Velocity,
		Mass:     DefaultMass,
		Radius:   DefaultRadius,
		Color:    color,
		Visible:  true,
	}
}

func (*Body) Kind() scene.Kind { return scene.KindStar }

func (b *Body) accelerate(force dynamo.Vec3, dt float64) {
	b.Velocity = b.Velocity.Add(force.Scale(dt / b.Mass))
}

func (b *Body) drift() {
	b.Position = b.Position.Add(b.Velocity)
}

func (b *Body) spin(rad float64) {
	b.Rotation.X += rad
	b.Rotation.Y += rad
}

func (b *Body) IsValid() bool {
	return b.Position.IsValid() && b.Velocity.IsValid()
}

// Gravity is the inverse-square attraction between the two bodies.
type Gravity struct {
	G       float64
	Epsilon float64 // below this distance no force is applied
}

// Attract returns the force on a and the force on b. The two are always
// exact negations of each other; both are zero when the bodies are closer
// than Epsilon.
func (g Gravity) Attract(a, b *Body) (fa, fb dynamo.Vec3) {
	d := b.Position.Sub(a.Position)
	dist := d.Length()
	if dist <= g.Epsilon {
		return dynamo.Vec3{}, dynamo.Vec3{}
	}
	f := g.G / (dist * dist)
	fa = d.Scale(f / dist)
	return fa, fa.Neg()
}

type Pair struct {
	A, B *Body
}

func NewPair(a, b BodyState) *Pair {
	return &Pair{
		A: NewBody(a, 0xffe8a0),
		B: NewBody(b, 0xa0c8ff),
	}
}

// Step advances both bodies by one tick and returns the forces applied.
func (p *Pair) Step(g Gravity, dt, spin float64) (fa, fb dynamo.Vec3) {
	fa, fb = g.Attract(p.A, p.B)
	p.A.accelerate(fa, dt)
	p.B.accelerate(fb, dt)
	p.A.drift()
	p.B.drift()
	p.A.spin(spin)
	p.B.spin(spin)
	return fa, fb
}

func (p *Pair) Separation() float64 { return p.A.Position.Distance(p.B.Position) }

func (p *Pair) Midpoint() dynamo.Vec3 { return p.A.Position.Lerp(p.B.Position, 0.5) }

func (p *Pair) Hide() {
	p.A.Visible = false
	p.B.Visible = false
}

func (p *Pair) IsValid() bool { return p.A.IsValid() && p.B.IsValid() }
