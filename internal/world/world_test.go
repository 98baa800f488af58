package world

import (
	"math"
	"math/rand"
	"testing"
)

func TestNewRandomInBounds(t *testing.T) {
	p := Params{Width: 800, Height: 600, Radius: 5}
	rng := rand.New(rand.NewSource(1))
	w := NewRandom(p, 500, 1, 10, rng)

	for i, b := range w.Bodies() {
		if b.X < p.Radius || b.X > p.Width-p.Radius {
			t.Fatalf("body %d x=%f out of bounds", i, b.X)
		}
		if b.Y < p.Radius || b.Y > p.Height-p.Radius {
			t.Fatalf("body %d y=%f out of bounds", i, b.Y)
		}
	}
}

func TestNewRandomSpeedRange(t *testing.T) {
	p := Params{Width: 800, Height: 600, Radius: 5}
	rng := rand.New(rand.NewSource(2))
	w := NewRandom(p, 500, 1, 10, rng)

	for i, b := range w.Bodies() {
		speed := math.Hypot(b.VX, b.VY)
		if speed < 1-1e-9 || speed > 10+1e-9 {
			t.Fatalf("body %d speed %f outside [1, 10]", i, speed)
		}
	}
}

func TestNewRandomDeterministic(t *testing.T) {
	p := Params{Width: 800, Height: 600, Radius: 5}
	w1 := NewRandom(p, 100, 1, 10, rand.New(rand.NewSource(42)))
	w2 := NewRandom(p, 100, 1, 10, rand.New(rand.NewSource(42)))

	b1, b2 := w1.Bodies(), w2.Bodies()
	for i := range b1 {
		if b1[i] != b2[i] {
			t.Fatalf("body %d differs between identically seeded worlds", i)
		}
	}
}

func TestKineticEnergy(t *testing.T) {
	w := New(Params{Width: 100, Height: 100, Radius: 1}, []Body{
		{VX: 3, VY: 4},
		{VX: 0, VY: 2},
	})

	want := 0.5*(9+16) + 0.5*4
	if got := w.KineticEnergy(); math.Abs(got-want) > 1e-12 {
		t.Fatalf("kinetic energy = %f, want %f", got, want)
	}
}

func TestMomentum(t *testing.T) {
	w := New(Params{Width: 100, Height: 100, Radius: 1}, []Body{
		{VX: 3, VY: -1},
		{VX: -1, VY: 4},
	})

	px, py := w.Momentum()
	if math.Abs(px-2) > 1e-12 || math.Abs(py-3) > 1e-12 {
		t.Fatalf("momentum = (%f, %f), want (2, 3)", px, py)
	}
}
