// Package world owns the authoritative body array for a hard-disc gas.
// Bodies are stored in a flat contiguous slice and addressed by index;
// nothing here moves them, that is the engine's job.
package world

import (
	"math"
	"math/rand"
)

// Params are the domain constants, fixed for the lifetime of a run.
// Radius is shared by every body; mass is 1 for every body.
type Params struct {
	Width  float64
	Height float64
	Radius float64
}

// Body is one simulated disc. Position is domain-bounded, velocity is not.
type Body struct {
	X, Y   float64
	VX, VY float64
}

// World holds the body population. There is exactly one writer (the
// engine's step pipeline); readers must only look between completed steps.
type World struct {
	Params Params
	bodies []Body
}

func New(p Params, bodies []Body) *World {
	return &World{Params: p, bodies: bodies}
}

// NewRandom places n bodies uniformly inside the domain with random
// headings and speeds uniform in [minSpeed, maxSpeed]. Deterministic for
// a given rng.
func NewRandom(p Params, n int, minSpeed, maxSpeed float64, rng *rand.Rand) *World {
	bodies := make([]Body, n)
	for i := range bodies {
		angle := rng.Float64() * 2 * math.Pi
		speed := minSpeed + rng.Float64()*(maxSpeed-minSpeed)
		bodies[i] = Body{
			X:  p.Radius + rng.Float64()*(p.Width-2*p.Radius),
			Y:  p.Radius + rng.Float64()*(p.Height-2*p.Radius),
			VX: speed * math.Cos(angle),
			VY: speed * math.Sin(angle),
		}
	}
	return &World{Params: p, bodies: bodies}
}

// Bodies returns the backing slice. Callers that mutate it take on the
// single-writer discipline described above.
func (w *World) Bodies() []Body { return w.bodies }

func (w *World) Len() int { return len(w.bodies) }

// KineticEnergy returns the total kinetic energy, E = sum 0.5*(vx^2+vy^2),
// with unit masses.
func (w *World) KineticEnergy() float64 {
	e := 0.0
	for i := range w.bodies {
		b := &w.bodies[i]
		e += 0.5 * (b.VX*b.VX + b.VY*b.VY)
	}
	return e
}

// Momentum returns the net momentum of the population. Walls exchange
// momentum with the box, so this is not conserved across reflections.
func (w *World) Momentum() (px, py float64) {
	for i := range w.bodies {
		px += w.bodies[i].VX
		py += w.bodies[i].VY
	}
	return px, py
}
