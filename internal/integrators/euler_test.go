package integrators

import (
	"math"
	"testing"

	"github.com/san-kum/gravsim/internal/dynamo"
)

func body(t testing.TB, pos, vel, acc dynamo.Vec2) *dynamo.Body {
	t.Helper()
	b, err := dynamo.NewBody(pos, vel, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	b.Acceleration = acc
	return b
}

func TestSemiImplicitEuler_Order(t *testing.T) {
	b := body(t, dynamo.V(0, 0), dynamo.V(1, 0), dynamo.V(0, 2))

	NewSemiImplicitEuler().Step([]*dynamo.Body{b})

	// velocity first, then position from the new velocity
	if b.Velocity != dynamo.V(1, 2) {
		t.Errorf("velocity = %v, want (1, 2)", b.Velocity)
	}
	if b.Position != dynamo.V(1, 2) {
		t.Errorf("position = %v, want (1, 2)", b.Position)
	}
}

func TestSemiImplicitEuler_KeepsAcceleration(t *testing.T) {
	b := body(t, dynamo.Zero, dynamo.Zero, dynamo.V(-1, 0))
	integ := NewSemiImplicitEuler()

	integ.Step([]*dynamo.Body{b})
	integ.Step([]*dynamo.Body{b})

	// x1 = -1, x2 = -1 + (-2) = -3
	if b.Position != dynamo.V(-3, 0) {
		t.Errorf("position = %v, want (-3, 0)", b.Position)
	}
}

func TestSemiImplicitEuler_HarmonicEnergyBounded(t *testing.T) {
	// x'' = -ω²x with ω·dt = 0.05; symplectic Euler keeps the energy
	// oscillating instead of drifting.
	const w = 0.05
	b := body(t, dynamo.V(1, 0), dynamo.Zero, dynamo.Zero)
	integ := NewSemiImplicitEuler()

	energy := func() float64 {
		return 0.5*b.Velocity.X*b.Velocity.X + 0.5*w*w*b.Position.X*b.Position.X
	}
	e0 := energy()

	for i := 0; i < 20000; i++ {
		b.Acceleration = dynamo.V(-w*w*b.Position.X, 0)
		integ.Step([]*dynamo.Body{b})
		if drift := math.Abs(energy()-e0) / e0; drift > 0.05 {
			t.Fatalf("step %d: energy drift %.3f", i, drift)
		}
	}
}
