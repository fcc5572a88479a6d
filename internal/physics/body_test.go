package physics

import (
	"math"
	"testing"

	"github.com/san-kum/starfall/internal/dynamo"
)

const tick = 1.0 / 60

var gravity = Gravity{G: 0.5, Epsilon: 0.1}

func TestAttract_EqualAndOpposite(t *testing.T) {
	tests := []struct {
		name string
		a, b dynamo.Vec3
	}{
		{"axis", dynamo.Vec3{X: -18}, dynamo.Vec3{X: 18}},
		{"diagonal", dynamo.Vec3{X: 1, Y: 2, Z: 3}, dynamo.Vec3{X: -4, Y: 0.5, Z: 7}},
		{"close", dynamo.Vec3{}, dynamo.Vec3{Y: 0.2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewBody(BodyState{Position: tt.a}, 0)
			b := NewBody(BodyState{Position: tt.b}, 0)
			fa, fb := gravity.Attract(a, b)
			if fa.Add(fb) != (dynamo.Vec3{}) {
				t.Errorf("forces not opposite: %v vs %v", fa, fb)
			}

			d := tt.a.Distance(tt.b)
			want := gravity.G / (d * d)
			if math.Abs(fa.Length()-want) > 1e-12 {
				t.Errorf("force magnitude %v, want %v", fa.Length(), want)
			}
			if fa.Dot(tt.b.Sub(tt.a)) <= 0 {
				t.Error("force on a should point toward b")
			}
		})
	}
}

func TestAttract_EpsilonGuard(t *testing.T) {
	a := NewBody(BodyState{}, 0)
	b := NewBody(BodyState{Position: dynamo.Vec3{X: 0.05}}, 0)

	fa, fb := gravity.Attract(a, b)
	if fa != (dynamo.Vec3{}) || fb != (dynamo.Vec3{}) {
		t.Errorf("expected no force inside epsilon, got %v %v", fa, fb)
	}

	b.Position = a.Position
	fa, _ = gravity.Attract(a, b)
	if !fa.IsValid() {
		t.Error("coincident bodies produced an invalid force")
	}
}

func TestPairStep_Integration(t *testing.T) {
	p := NewPair(DefaultA(), DefaultB())
	fa, _ := p.Step(gravity, tick, 0.01)

	wantV := 0.5 + fa.X*tick
	if math.Abs(p.A.Velocity.X-wantV) > 1e-15 {
		t.Errorf("velocity %v, want %v", p.A.Velocity.X, wantV)
	}
	if math.Abs(p.A.Position.X-(-18+wantV)) > 1e-12 {
		t.Errorf("position should advance by the tick velocity, got %v", p.A.Position.X)
	}
	if p.A.Rotation.X != 0.01 || p.B.Rotation.Y != 0.01 {
		t.Errorf("expected spin of 0.01, got %v / %v", p.A.Rotation, p.B.Rotation)
	}
}

func TestPairStep_MonotonicApproach(t *testing.T) {
	p := NewPair(DefaultA(), DefaultB())
	prev := p.Separation()
	ticks := 0

	for p.Separation() >= 6 {
		p.Step(gravity, tick, 0.01)
		ticks++
		sep := p.Separation()
		if sep >= prev {
			t.Fatalf("separation did not decrease at tick %d: %v -> %v", ticks, prev, sep)
		}
		prev = sep
		if ticks > 200 {
			t.Fatal("bodies never closed within 200 ticks")
		}
	}

	if ticks < 25 || ticks > 31 {
		t.Errorf("expected contact around tick 30, got %d", ticks)
	}
}

func TestPairStep_MomentumConserved(t *testing.T) {
	p := NewPair(
		BodyState{Position: dynamo.Vec3{X: -10, Y: 2}, Velocity: dynamo.Vec3{X: 0.1, Z: 0.05}},
		BodyState{Position: dynamo.Vec3{X: 10, Y: -1}, Velocity: dynamo.Vec3{X: -0.1, Z: -0.05}},
	)
	for i := 0; i < 100; i++ {
		p.Step(gravity, tick, 0.01)
	}
	if m := Momentum(p); m.Length() > 1e-12 {
		t.Errorf("momentum drifted: %v", m)
	}
}

func TestPair_MidpointAndHide(t *testing.T) {
	p := NewPair(DefaultA(), DefaultB())
	if p.Midpoint() != (dynamo.Vec3{}) {
		t.Errorf("expected origin midpoint, got %v", p.Midpoint())
	}
	p.Hide()
	if p.A.Visible || p.B.Visible {
		t.Error("bodies still visible after Hide")
	}
}

func TestEnergy(t *testing.T) {
	p := NewPair(DefaultA(), DefaultB())
	e0 := Energy(p, gravity, tick)
	ke := 2 * 0.5 * (0.5 / tick) * (0.5 / tick)
	want := ke - gravity.G/tick/36
	if math.Abs(e0-want) > 1e-9 {
		t.Errorf("energy %v, want %v", e0, want)
	}
}
