package metrics_test

import (
	"bytes"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/pkozlow/gaslab/internal/engine"
	"github.com/pkozlow/gaslab/internal/metrics"
	"github.com/pkozlow/gaslab/internal/world"
)

func frameWith(t float64, wallImpulse float64, bodies ...world.Body) engine.Frame {
	return engine.Frame{Bodies: bodies, Time: t, WallImpulse: wallImpulse}
}

var _ = Describe("EnergyDrift", func() {
	var (
		out *bytes.Buffer
		m   *metrics.EnergyDrift
	)

	BeforeEach(func() {
		out = &bytes.Buffer{}
		m = metrics.NewEnergyDrift(metrics.DriftThreshold, out)
	})

	It("captures the baseline from the first frame", func() {
		m.Observe(frameWith(1, 0, world.Body{VX: 3, VY: 4})) // E = 12.5
		Expect(m.Baseline()).To(BeNumerically("~", 12.5, 1e-12))
		Expect(m.Value()).To(BeZero())
	})

	It("tracks the maximum absolute drift", func() {
		m.Observe(frameWith(1, 0, world.Body{VX: 2}))     // E0 = 2
		m.Observe(frameWith(2, 0, world.Body{VX: 4}))     // |dE| = 6
		m.Observe(frameWith(3, 0, world.Body{VX: 3}))     // |dE| = 2.5
		Expect(m.Value()).To(BeNumerically("~", 6, 1e-12))
	})

	It("emits a diagnostic line when drift exceeds the threshold", func() {
		m.Observe(frameWith(1, 0, world.Body{VX: 2}))
		m.Observe(frameWith(2, 0, world.Body{VX: 2.001}))
		Expect(out.String()).To(ContainSubstring("energy drift"))
	})

	It("stays silent while drift is within tolerance", func() {
		m.Observe(frameWith(1, 0, world.Body{VX: 2}))
		m.Observe(frameWith(2, 0, world.Body{VX: 2}))
		Expect(out.String()).To(BeEmpty())
	})

	It("recaptures the baseline after reset", func() {
		m.Observe(frameWith(1, 0, world.Body{VX: 2}))
		m.Reset()
		m.Observe(frameWith(1, 0, world.Body{VX: 4}))
		Expect(m.Baseline()).To(BeNumerically("~", 8, 1e-12))
		Expect(m.Value()).To(BeZero())
	})
})

var _ = Describe("Temperature", func() {
	It("averages kinetic energy per body over the run", func() {
		m := metrics.NewTemperature()
		m.Observe(frameWith(1, 0, world.Body{VX: 2}, world.Body{VX: 2})) // 2 per body
		m.Observe(frameWith(2, 0, world.Body{VX: 4}, world.Body{VX: 0})) // 4 per body
		Expect(m.Value()).To(BeNumerically("~", 3, 1e-12))
	})

	It("ignores empty frames", func() {
		m := metrics.NewTemperature()
		m.Observe(engine.Frame{Time: 1})
		Expect(m.Value()).To(BeZero())
	})
})

var _ = Describe("WallPressure", func() {
	It("reports impulse per unit time per unit perimeter", func() {
		m := metrics.NewWallPressure(100, 100) // perimeter 400
		m.Observe(frameWith(1, 200))
		m.Observe(frameWith(2, 200))
		m.Observe(frameWith(3, 200))
		// 600 impulse over 2 time units and 400 length.
		Expect(m.Value()).To(BeNumerically("~", 0.75, 1e-12))
	})

	It("returns zero before enough samples", func() {
		m := metrics.NewWallPressure(100, 100)
		m.Observe(frameWith(1, 50))
		Expect(m.Value()).To(BeZero())
	})
})

var _ = Describe("NetMomentum", func() {
	It("reports the magnitude of the latest net momentum", func() {
		m := metrics.NewNetMomentum()
		m.Observe(frameWith(1, 0, world.Body{VX: 3}, world.Body{VY: 4}))
		Expect(m.Value()).To(BeNumerically("~", 5, 1e-12))
	})

	It("is unchanged by an elastic pair exchange", func() {
		m := metrics.NewNetMomentum()
		m.Observe(frameWith(1, 0, world.Body{VX: 3}, world.Body{VX: -1}))
		before := m.Value()
		m.Observe(frameWith(2, 0, world.Body{VX: -1}, world.Body{VX: 3}))
		Expect(m.Value()).To(BeNumerically("~", before, 1e-12))
	})
})
