package engine

import "github.com/pkozlow/gaslab/internal/world"

// Frame is the read-only view of a completed step. Bodies aliases the
// world's backing slice and is only valid until the next Step.
type Frame struct {
	Bodies []world.Body
	Time   float64
	Step   int
	// WallImpulse is the momentum magnitude absorbed by the walls
	// during this step, for the pressure diagnostic.
	WallImpulse float64
}

// Observer is notified after each step completes. The rendering side
// hangs off this seam; it must not retain Bodies across steps.
type Observer interface {
	OnFrame(f Frame)
}

// Metric accumulates a per-run statistic from completed frames.
type Metric interface {
	Name() string
	Observe(f Frame)
	Value() float64
	Reset()
}

// Config controls one Run.
type Config struct {
	Dt    float64
	Steps int
}

// Result collects the per-step series and final metric values of a run.
type Result struct {
	Steps    int
	Times    []float64
	Energy   []float64
	Drift    []float64
	Pressure []float64
	Baseline float64
	Metrics  map[string]float64
}
