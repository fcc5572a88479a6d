package dynamo

import (
	"errors"
	"math"
	"testing"
)

func TestVec3_Arithmetic(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{4, 5, 6}

	if got := a.Add(b); got != (Vec3{5, 7, 9}) {
		t.Errorf("Add failed: got %v", got)
	}
	if got := b.Sub(a); got != (Vec3{3, 3, 3}) {
		t.Errorf("Sub failed: got %v", got)
	}
	if got := a.Scale(2); got != (Vec3{2, 4, 6}) {
		t.Errorf("Scale failed: got %v", got)
	}
	if got := a.Neg(); got != (Vec3{-1, -2, -3}) {
		t.Errorf("Neg failed: got %v", got)
	}
	if got := a.Dot(b); got != 32 {
		t.Errorf("Dot failed: got %v", got)
	}
	if got := (Vec3{1, 0, 0}).Cross(Vec3{0, 1, 0}); got != (Vec3{0, 0, 1}) {
		t.Errorf("Cross failed: got %v", got)
	}
}

func TestVec3_Length(t *testing.T) {
	tests := []struct {
		v        Vec3
		expected float64
	}{
		{Vec3{3, 4, 0}, 5},
		{Vec3{0, 0, 0}, 0},
		{Vec3{1, 2, 2}, 3},
	}

	for _, tt := range tests {
		if got := tt.v.Length(); math.Abs(got-tt.expected) > 1e-12 {
			t.Errorf("Length(%v) = %v, want %v", tt.v, got, tt.expected)
		}
	}
}

func TestVec3_Normalize(t *testing.T) {
	n := Vec3{0, 3, 4}.Normalize()
	if math.Abs(n.Length()-1) > 1e-12 {
		t.Errorf("expected unit length, got %v", n.Length())
	}
	if z := (Vec3{}).Normalize(); z != (Vec3{}) {
		t.Errorf("zero vector should normalize to zero, got %v", z)
	}
}

func TestVec3_Distance(t *testing.T) {
	a := Vec3{X: -18}
	b := Vec3{X: 18}
	if d := a.Distance(b); d != 36 {
		t.Errorf("expected 36, got %v", d)
	}
}

func TestVec3_IsValid(t *testing.T) {
	tests := []struct {
		name  string
		v     Vec3
		valid bool
	}{
		{"zero", Vec3{}, true},
		{"normal", Vec3{1, -2, 3}, true},
		{"with NaN", Vec3{1, math.NaN(), 0}, false},
		{"with +Inf", Vec3{math.Inf(1), 0, 0}, false},
		{"with -Inf", Vec3{0, 0, math.Inf(-1)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.IsValid(); got != tt.valid {
				t.Errorf("IsValid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestRotateXY(t *testing.T) {
	p := RotateXY(Vec3{0, 1, 0}, math.Pi/2, 0)
	if math.Abs(p.Y) > 1e-12 || math.Abs(p.Z-1) > 1e-12 {
		t.Errorf("expected (0,0,1), got %v", p)
	}
	if l := RotateXY(Vec3{1, 2, 3}, 0.3, 1.1).Length(); math.Abs(l-math.Sqrt(14)) > 1e-12 {
		t.Errorf("rotation changed length: %v", l)
	}
}

func TestSequence(t *testing.T) {
	s := &Sequence{Values: []float64{0.1, 0.2}}
	got := []float64{s.Float64(), s.Float64(), s.Float64()}
	if got[0] != 0.1 || got[1] != 0.2 || got[2] != 0.1 {
		t.Errorf("unexpected sequence %v", got)
	}
	if (&Sequence{}).Float64() != 0 {
		t.Error("empty sequence should yield 0")
	}
}

func TestSimulationError(t *testing.T) {
	err := &SimulationError{Tick: 30, Time: 0.5, Wrapped: ErrInvalidState}
	expected := "tick 30 (t=0.5000): dynamo: invalid state (NaN or Inf detected)"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
	if !errors.Is(err, ErrInvalidState) {
		t.Error("expected errors.Is to match wrapped sentinel")
	}
}
