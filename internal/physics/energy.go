package physics

import (
	"math"

	"github.com/san-kum/gravsim/internal/dynamo"
)

// Energy returns kinetic plus potential energy. Units follow the inputs:
// SI velocities with G give joules, per-step velocities with the effective
// constant give joules·step². Coincident pairs contribute no potential.
func Energy(bodies []*dynamo.Body, g float64) float64 {
	ke := 0.0
	pe := 0.0

	for i, bi := range bodies {
		v := bi.Velocity
		ke += 0.5 * bi.Mass() * v.Dot(v)

		for j := i + 1; j < len(bodies); j++ {
			r := bi.Position.Distance(bodies[j].Position)
			if r == 0 {
				continue
			}
			pe -= g * bi.Mass() * bodies[j].Mass() / r
		}
	}

	return ke + pe
}

func Momentum(bodies []*dynamo.Body) dynamo.Vec2 {
	p := dynamo.Zero
	for _, b := range bodies {
		p = p.Add(b.Velocity.Scale(b.Mass()))
	}
	return p
}

// AngularMomentum about the origin (z component).
func AngularMomentum(bodies []*dynamo.Body) float64 {
	l := 0.0
	for _, b := range bodies {
		l += b.Mass() * b.Position.Cross(b.Velocity)
	}
	return l
}

// CenterOfMass returns the mass-weighted mean position.
func CenterOfMass(bodies []*dynamo.Body) dynamo.Vec2 {
	sum := dynamo.Zero
	total := 0.0
	for _, b := range bodies {
		sum = sum.Add(b.Position.Scale(b.Mass()))
		total += b.Mass()
	}
	if total == 0 {
		return dynamo.Zero
	}
	return sum.Scale(1 / total)
}

// CircularVelocity is the speed of a circular orbit of radius r (m) around
// mass m (kg), in m/s.
func CircularVelocity(mass, r float64) float64 {
	return math.Sqrt(GravitationalConstant * mass / r)
}

// OrbitalPeriod is the period in seconds of an orbit of semi-major axis r
// around mass m.
func OrbitalPeriod(mass, r float64) float64 {
	return 2 * math.Pi * math.Sqrt(r*r*r/(GravitationalConstant*mass))
}
