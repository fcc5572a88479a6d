package physics

import "github.com/san-kum/starfall/internal/dynamo"

// Energy returns the total energy of the pair in per-second units.
//
// Velocities are stored per tick and the force is scaled by dt once per tick,
// so the effective acceleration is F/(m·dt) and the effective coupling G/dt.
func Energy(p *Pair, g Gravity, dt float64) float64 {
	ke := 0.0
	for _, b := range []*Body{p.A, p.B} {
		v := b.Velocity.Scale(1 / dt)
		ke += 0.5 * b.Mass * v.Dot(v)
	}
	r := p.Separation()
	if r <= g.Epsilon {
		return ke
	}
	return ke - g.G/dt/r
}

func Momentum(p *Pair) dynamo.Vec3 {
	return p.A.Velocity.Scale(p.A.Mass).Add(p.B.Velocity.Scale(p.B.Mass))
}
