// Package engine advances a hard-disc gas in discrete steps: integrate
// positions, rebuild the broad-phase grid, resolve contacts with elastic
// impulses, then report the completed frame to metrics and observers.
package engine

import (
	"context"
	"fmt"

	"github.com/pkozlow/gaslab/internal/grid"
	"github.com/pkozlow/gaslab/internal/world"
)

// Cell size as a multiple of body radius. Two diameters keeps every
// colliding pair within one cell step of each other with room to spare.
const cellSizeFactor = 4

type Simulator struct {
	w    *world.World
	g    *grid.Grid
	dt   float64
	time float64
	step int

	metrics   []Metric
	observers []Observer
}

func New(w *world.World, dt float64) *Simulator {
	p := w.Params
	return &Simulator{
		w:  w,
		g:  grid.New(p.Width, p.Height, cellSizeFactor*p.Radius),
		dt: dt,
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// World exposes the body store for callers that pull snapshots between
// steps (the live view).
func (s *Simulator) World() *world.World { return s.w }

func (s *Simulator) Time() float64 { return s.time }

// Step runs one full pipeline pass: advance, rebuild grid, resolve
// pairs, notify. Bodies are mutated in place; nothing may read them
// while this runs. The returned frame describes the completed step.
func (s *Simulator) Step() Frame {
	bodies := s.w.Bodies()
	p := s.w.Params

	wallImpulse := advance(bodies, p, s.dt)

	s.g.Clear()
	for i := range bodies {
		s.g.Insert(i, bodies[i].X, bodies[i].Y)
	}

	s.g.ForEachPair(func(i, j int) {
		resolve(bodies, i, j, p.Radius)
	})

	// Positional corrections can push a wall-adjacent body past the
	// boundary the integrator just clamped. Position-only clamp keeps
	// the containment invariant without touching velocities.
	for i := range bodies {
		b := &bodies[i]
		b.X = clamp(b.X, p.Radius, p.Width-p.Radius)
		b.Y = clamp(b.Y, p.Radius, p.Height-p.Radius)
	}

	s.time += s.dt
	s.step++

	f := Frame{
		Bodies:      bodies,
		Time:        s.time,
		Step:        s.step,
		WallImpulse: wallImpulse,
	}
	for _, m := range s.metrics {
		m.Observe(f)
	}
	for _, o := range s.observers {
		o.OnFrame(f)
	}
	return f
}

// Run executes cfg.Steps pipeline passes, checking the context once per
// step boundary. The per-step energy, drift and wall-pressure series are
// collected into the Result along with final metric values.
func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := validate(cfg); err != nil {
		return nil, err
	}
	s.dt = cfg.Dt

	for _, m := range s.metrics {
		m.Reset()
	}

	p := s.w.Params
	perimeter := 2 * (p.Width + p.Height)
	baseline := s.w.KineticEnergy()

	result := &Result{
		Times:    make([]float64, 0, cfg.Steps),
		Energy:   make([]float64, 0, cfg.Steps),
		Drift:    make([]float64, 0, cfg.Steps),
		Pressure: make([]float64, 0, cfg.Steps),
		Baseline: baseline,
		Metrics:  make(map[string]float64),
	}

	for i := 0; i < cfg.Steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		f := s.Step()

		e := s.w.KineticEnergy()
		result.Times = append(result.Times, f.Time)
		result.Energy = append(result.Energy, e)
		result.Drift = append(result.Drift, abs(e-baseline))
		result.Pressure = append(result.Pressure, f.WallImpulse/(s.dt*perimeter))
		result.Steps++
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

func validate(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", cfg.Dt)
	}
	if cfg.Steps <= 0 {
		return fmt.Errorf("steps must be positive, got %d", cfg.Steps)
	}
	return nil
}
