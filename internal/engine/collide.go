package engine

import (
	"math"

	"github.com/pkozlow/gaslab/internal/world"
)

// resolve applies an elastic impulse between bodies i and j if they
// overlap and are approaching, then separates any residual overlap.
//
// The impulse math assumes unit mass for every body: each velocity is
// shifted by the normal-projected relative velocity along the contact
// normal, which conserves the pair's momentum and kinetic energy
// exactly. Tangential components are untouched (frictionless).
//
// The positional correction restores tangency after interpenetration
// left over from the discrete position update. It moves bodies without
// doing work, but the teleport can set up extra contacts within the
// same step, which is where any energy drift originates.
func resolve(bodies []world.Body, i, j int, radius float64) {
	b1 := &bodies[i]
	b2 := &bodies[j]

	dx := b2.X - b1.X
	dy := b2.Y - b1.Y
	// Squared-distance reject keeps the sqrt off the hot path for the
	// vast majority of candidate pairs. Exact tangency counts as
	// contact so a touching, closing pair still exchanges impulse.
	dist2 := dx*dx + dy*dy
	if dist2 > 4*radius*radius {
		return
	}

	// Coincident centers leave the contact normal undefined. Skip the
	// pair; the next step's integration separates them.
	if dist2 == 0 {
		return
	}

	dist := math.Sqrt(dist2)
	nx := dx / dist
	ny := dy / dist

	dvx := b1.VX - b2.VX
	dvy := b1.VY - b2.VY
	// dvn > 0 means the centers are closing along the normal. Anything
	// else is a pair still in contact range from a previous step;
	// re-applying the impulse there would inject energy.
	dvn := dvx*nx + dvy*ny
	if dvn <= 0 {
		return
	}

	b1.VX -= dvn * nx
	b1.VY -= dvn * ny
	b2.VX += dvn * nx
	b2.VY += dvn * ny

	overlap := 2*radius - dist
	if overlap > 0 {
		sep := overlap / 2
		b1.X -= sep * nx
		b1.Y -= sep * ny
		b2.X += sep * nx
		b2.Y += sep * ny
	}
}
