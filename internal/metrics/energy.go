// Package metrics implements per-run statistics over completed engine
// frames. The energy drift monitor is the correctness oracle for the
// collision resolver: elastic impulses conserve kinetic energy exactly,
// so any drift beyond tolerance points at the positional correction or
// repeated same-step contacts.
package metrics

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/pkozlow/gaslab/internal/engine"
)

// DriftThreshold is the tolerance above which energy divergence is
// reported. Diagnostic only; the simulation keeps running.
const DriftThreshold = 1e-3

type EnergyDrift struct {
	name      string
	threshold float64
	out       io.Writer

	baseline float64
	current  float64
	maxDrift float64
	samples  int
}

// NewEnergyDrift monitors |E - E0| against threshold, writing one
// diagnostic line to out each time it is exceeded. A nil out defaults
// to stderr.
func NewEnergyDrift(threshold float64, out io.Writer) *EnergyDrift {
	if out == nil {
		out = os.Stderr
	}
	return &EnergyDrift{
		name:      "energy_drift",
		threshold: threshold,
		out:       out,
	}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(f engine.Frame) {
	energy := kineticEnergy(f)

	if e.samples == 0 {
		e.baseline = energy
	}
	e.current = energy
	e.samples++

	drift := math.Abs(energy - e.baseline)
	if drift > e.maxDrift {
		e.maxDrift = drift
	}
	if drift > e.threshold {
		fmt.Fprintf(e.out, "energy drift: |dE| = %.6f at t=%.2f\n", drift, f.Time)
	}
}

// Value returns the maximum absolute drift seen so far.
func (e *EnergyDrift) Value() float64 { return e.maxDrift }

// Baseline returns E0, captured from the first observed frame.
func (e *EnergyDrift) Baseline() float64 { return e.baseline }

func (e *EnergyDrift) Reset() {
	e.baseline = 0
	e.current = 0
	e.maxDrift = 0
	e.samples = 0
}

func kineticEnergy(f engine.Frame) float64 {
	e := 0.0
	for i := range f.Bodies {
		b := &f.Bodies[i]
		e += 0.5 * (b.VX*b.VX + b.VY*b.VY)
	}
	return e
}
