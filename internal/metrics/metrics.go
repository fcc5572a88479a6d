package metrics

import "github.com/san-kum/starfall/internal/sim"

// Standard returns a fresh set of the metrics reported after a run.
func Standard() []sim.Metric {
	return []sim.Metric{
		NewSeparation(),
		NewPeakParticles(),
		NewDecayTicks(),
		NewEnergyDrift(),
	}
}
