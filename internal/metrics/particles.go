package metrics

import "github.com/san-kum/starfall/internal/sim"

// PeakParticles is the largest number of live fragments seen in one frame.
type PeakParticles struct {
	name string
	peak int
}

func NewPeakParticles() *PeakParticles {
	return &PeakParticles{name: "peak_particles"}
}

func (p *PeakParticles) Name() string { return p.name }

func (p *PeakParticles) Observe(f sim.Frame) {
	if f.Particles > p.peak {
		p.peak = f.Particles
	}
}

func (p *PeakParticles) Value() float64 { return float64(p.peak) }

func (p *PeakParticles) Reset() { p.peak = 0 }

// DecayTicks counts the ticks from the burst until the last fragment expired.
// It reads zero until the debris has cleared.
type DecayTicks struct {
	name    string
	ticks   int
	cleared bool
}

func NewDecayTicks() *DecayTicks {
	return &DecayTicks{name: "decay_ticks"}
}

func (d *DecayTicks) Name() string { return d.name }

func (d *DecayTicks) Observe(f sim.Frame) {
	if f.Phase != sim.Decaying || d.cleared {
		return
	}
	d.ticks++
	if f.Particles == 0 {
		d.cleared = true
	}
}

func (d *DecayTicks) Value() float64 {
	if !d.cleared {
		return 0
	}
	return float64(d.ticks)
}

func (d *DecayTicks) Reset() {
	d.ticks = 0
	d.cleared = false
}
