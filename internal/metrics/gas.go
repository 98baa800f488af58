package metrics

import (
	"math"

	"github.com/pkozlow/gaslab/internal/engine"
)

// Temperature reports mean kinetic energy per body, averaged over the
// run. For a 2D ideal gas this is proportional to temperature.
type Temperature struct {
	name    string
	total   float64
	samples int
}

func NewTemperature() *Temperature {
	return &Temperature{name: "temperature"}
}

func (t *Temperature) Name() string { return t.name }

func (t *Temperature) Observe(f engine.Frame) {
	if len(f.Bodies) == 0 {
		return
	}
	t.total += kineticEnergy(f) / float64(len(f.Bodies))
	t.samples++
}

func (t *Temperature) Value() float64 {
	if t.samples == 0 {
		return 0
	}
	return t.total / float64(t.samples)
}

func (t *Temperature) Reset() {
	t.total = 0
	t.samples = 0
}

// WallPressure reports the mean momentum flux through the walls: total
// wall impulse per unit time per unit perimeter length.
type WallPressure struct {
	name      string
	perimeter float64
	impulse   float64
	first     float64
	last      float64
	samples   int
}

func NewWallPressure(width, height float64) *WallPressure {
	return &WallPressure{
		name:      "wall_pressure",
		perimeter: 2 * (width + height),
	}
}

func (p *WallPressure) Name() string { return p.name }

func (p *WallPressure) Observe(f engine.Frame) {
	if p.samples == 0 {
		p.first = f.Time
	}
	p.impulse += f.WallImpulse
	p.last = f.Time
	p.samples++
}

func (p *WallPressure) Value() float64 {
	elapsed := p.last - p.first
	if elapsed <= 0 || p.perimeter == 0 {
		return 0
	}
	return p.impulse / (elapsed * p.perimeter)
}

func (p *WallPressure) Reset() {
	p.impulse = 0
	p.first = 0
	p.last = 0
	p.samples = 0
}

// NetMomentum reports the magnitude of the net momentum of the latest
// frame. Wall reflections exchange momentum with the box, so this walks
// around during a run; pair collisions alone never change it.
type NetMomentum struct {
	name    string
	current float64
}

func NewNetMomentum() *NetMomentum {
	return &NetMomentum{name: "net_momentum"}
}

func (m *NetMomentum) Name() string { return m.name }

func (m *NetMomentum) Observe(f engine.Frame) {
	px, py := 0.0, 0.0
	for i := range f.Bodies {
		px += f.Bodies[i].VX
		py += f.Bodies[i].VY
	}
	m.current = math.Hypot(px, py)
}

func (m *NetMomentum) Value() float64 { return m.current }

func (m *NetMomentum) Reset() { m.current = 0 }
