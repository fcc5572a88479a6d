package metrics

import (
	"context"
	"math"
	"testing"

	"github.com/san-kum/starfall/internal/dynamo"
	"github.com/san-kum/starfall/internal/sim"
)

func TestEnergyDrift(t *testing.T) {
	m := NewEnergyDrift()

	m.Observe(sim.Frame{Phase: sim.Approaching, Energy: 100})
	m.Observe(sim.Frame{Phase: sim.Approaching, Energy: 98})
	m.Observe(sim.Frame{Phase: sim.Approaching, Energy: 101})
	if math.Abs(m.Value()-0.02) > 1e-9 {
		t.Errorf("expected drift 0.02, got %f", m.Value())
	}
	if m.Current() != 101 {
		t.Errorf("expected current energy 101, got %f", m.Current())
	}

	m.Observe(sim.Frame{Phase: sim.Decaying, Energy: 0})
	if math.Abs(m.Value()-0.02) > 1e-9 {
		t.Error("decaying frames must not count")
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero drift after reset")
	}
}

func TestSeparation(t *testing.T) {
	m := NewSeparation()
	if m.Value() != 0 {
		t.Error("expected zero before any frame")
	}
	for _, d := range []float64{36, 20, 5.5, 5.5} {
		m.Observe(sim.Frame{Separation: d})
	}
	if m.Value() != 5.5 {
		t.Errorf("expected 5.5, got %f", m.Value())
	}
}

func TestDecayTicks(t *testing.T) {
	m := NewDecayTicks()
	m.Observe(sim.Frame{Phase: sim.Exploding, Particles: 300})
	m.Observe(sim.Frame{Phase: sim.Decaying, Particles: 300})
	if m.Value() != 0 {
		t.Error("expected zero while debris is live")
	}
	m.Observe(sim.Frame{Phase: sim.Decaying, Particles: 0})
	m.Observe(sim.Frame{Phase: sim.Decaying, Particles: 0})
	if m.Value() != 2 {
		t.Errorf("expected 2, got %f", m.Value())
	}
}

func TestStandardOverRun(t *testing.T) {
	ms := Standard()
	res, err := sim.Run(context.Background(), sim.DefaultConfig(), dynamo.NewRand(5), ms...)
	if err != nil {
		t.Fatal(err)
	}

	if got := res.Metrics["peak_particles"]; got != 300 {
		t.Errorf("peak particles %f", got)
	}
	if got := res.Metrics["min_separation"]; got >= 6 || got <= 0 {
		t.Errorf("min separation %f", got)
	}
	if got := res.Metrics["decay_ticks"]; math.Abs(got-240) > 1 {
		t.Errorf("decay ticks %f", got)
	}
	if got := res.Metrics["energy_drift"]; got > 0.01 {
		t.Errorf("energy drift %f", got)
	}
}
