package metrics

import (
	"math"

	"github.com/san-kum/galaxysim/internal/dynamo"
	"github.com/san-kum/galaxysim/internal/physics"
	"github.com/san-kum/galaxysim/internal/sim"
)

// HoleEnergy returns the kinetic plus pairwise potential energy of the black
// holes. With force magnitude G*m1*m2/d the potential is G*m1*m2*ln(d).
// Coincident pairs contribute no potential.
func HoleEnergy(w *dynamo.World) float64 {
	g := w.Params.HoleG()
	holes := w.Holes

	var ke, pe float64
	for i := range holes {
		ke += 0.5 * holes[i].Mass * holes[i].Vel.LenSq()
		for j := i + 1; j < len(holes); j++ {
			d2 := physics.DistanceSq(holes[i].Pos, holes[j].Pos, w.Bounds)
			if d2 == 0 {
				continue
			}
			pe += g * holes[i].Mass * holes[j].Mass * 0.5 * math.Log(d2)
		}
	}
	return ke + pe
}

// Energy reports the mean hole energy over the observed frames.
type Energy struct {
	name        string
	samples     int
	totalEnergy float64
}

func NewEnergy() *Energy {
	return &Energy{name: "energy"}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(w *dynamo.World, stats sim.FrameStats) {
	e.totalEnergy += HoleEnergy(w)
	e.samples++
}

func (e *Energy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.totalEnergy / float64(e.samples)
}

func (e *Energy) Reset() {
	e.totalEnergy = 0
	e.samples = 0
}

// EnergyDrift reports the largest relative change of hole energy from the
// first observed frame. Speed caps and contact boosts are not conservative,
// so drift measures how much they intervene.
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

func (e *EnergyDrift) Observe(w *dynamo.World, stats sim.FrameStats) {
	energy := HoleEnergy(w)

	if e.samples == 0 {
		e.initialEnergy = energy
	}

	e.currentEnergy = energy
	e.samples++

	if e.initialEnergy != 0 {
		drift := math.Abs(energy-e.initialEnergy) / math.Abs(e.initialEnergy)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.currentEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}
