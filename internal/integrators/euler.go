package integrators

import "github.com/san-kum/gravsim/internal/dynamo"

// SemiImplicitEuler is the symplectic Euler scheme with a unit step:
// velocity is updated from the current acceleration first, then position
// from the updated velocity. The order must not be swapped.
type SemiImplicitEuler struct{}

func NewSemiImplicitEuler() *SemiImplicitEuler {
	return &SemiImplicitEuler{}
}

func (e *SemiImplicitEuler) Step(bodies []*dynamo.Body) {
	for _, b := range bodies {
		b.Velocity = b.Velocity.Add(b.Acceleration)
		b.Position = b.Position.Add(b.Velocity)
	}
}

var _ dynamo.Integrator = (*SemiImplicitEuler)(nil)
