package integrators

import (
	"testing"

	"github.com/san-kum/gravsim/internal/dynamo"
)

func BenchmarkSemiImplicitEuler_100(b *testing.B) {
	bodies := make([]*dynamo.Body, 100)
	for i := range bodies {
		bodies[i] = body(b, dynamo.V(float64(i), 0), dynamo.V(0, 1), dynamo.V(-1e-3, 0))
	}
	integ := NewSemiImplicitEuler()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		integ.Step(bodies)
	}
}
