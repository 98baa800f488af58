package engine

import "github.com/pkozlow/gaslab/internal/world"

// advance moves every body by its velocity over dt (explicit first-order
// update, no sub-stepping) and reflects bodies off the domain walls.
// A reflection negates the velocity component on that axis and clamps
// the position back into [radius, bound-radius].
//
// Returns the total momentum magnitude the walls absorbed, 2*|v_n| per
// reflection at unit mass.
func advance(bodies []world.Body, p world.Params, dt float64) float64 {
	impulse := 0.0
	for i := range bodies {
		b := &bodies[i]
		b.X += b.VX * dt
		b.Y += b.VY * dt

		if b.X-p.Radius < 0 || b.X+p.Radius > p.Width {
			impulse += 2 * abs(b.VX)
			b.VX = -b.VX
			b.X = clamp(b.X, p.Radius, p.Width-p.Radius)
		}
		if b.Y-p.Radius < 0 || b.Y+p.Radius > p.Height {
			impulse += 2 * abs(b.VY)
			b.VY = -b.VY
			b.Y = clamp(b.Y, p.Radius, p.Height-p.Radius)
		}
	}
	return impulse
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
