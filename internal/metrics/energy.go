package metrics

import (
	"math"

	"github.com/san-kum/starfall/internal/sim"
)

// EnergyDrift tracks the largest relative departure of the pair's total
// energy from its first observed value. Only approaching frames carry energy.
type EnergyDrift struct {
	name          string
	initialEnergy float64
	currentEnergy float64
	maxDrift      float64
	samples       int
}

func NewEnergyDrift() *EnergyDrift {
	return &EnergyDrift{name: "energy_drift"}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(f sim.Frame) {
	if f.Phase != sim.Approaching {
		return
	}

	if e.samples == 0 {
		e.initialEnergy = f.Energy
	}

	e.currentEnergy = f.Energy
	e.samples++

	if e.initialEnergy != 0 {
		drift := math.Abs(f.Energy-e.initialEnergy) / math.Abs(e.initialEnergy)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Current() float64 { return e.currentEnergy }

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.currentEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}
