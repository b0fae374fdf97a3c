package systems

import (
	"math"

	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/physics"
)

type OrbitalParams struct {
	Count              int     `yaml:"count"`
	OrbitRadius        float64 `yaml:"orbit_radius"`
	PrimaryMass        float64 `yaml:"primary_mass"`
	SatelliteMass      float64 `yaml:"satellite_mass"`
	VelocityMultiplier float64 `yaml:"velocity_multiplier"`
	PrimaryRadius      float64 `yaml:"primary_radius"`
	SatelliteRadius    float64 `yaml:"satellite_radius"`
}

// DefaultOrbitalParams places Earth-like satellites at 1 AU around a
// solar-mass primary.
func DefaultOrbitalParams() OrbitalParams {
	return OrbitalParams{
		Count:              8,
		OrbitRadius:        1.5e11,
		PrimaryMass:        1.989e30,
		SatelliteMass:      5.972e24,
		VelocityMultiplier: 1,
		PrimaryRadius:      6.957e8,
		SatelliteRadius:    6.371e6,
	}
}

func (p OrbitalParams) Validate() error {
	switch {
	case p.Count <= 0:
		return invalid("satellite count must be positive, got %d", p.Count)
	case !(p.OrbitRadius > 0) || math.IsInf(p.OrbitRadius, 0):
		return invalid("orbit radius must be positive, got %g", p.OrbitRadius)
	case math.IsNaN(p.VelocityMultiplier) || math.IsInf(p.VelocityMultiplier, 0):
		return invalid("velocity multiplier must be finite, got %g", p.VelocityMultiplier)
	}
	return nil
}

// Orbital places a primary at the origin and Count satellites evenly
// spaced on a circle of OrbitRadius. Each satellite moves tangentially at
// the two-body circular speed sqrt(G(M+m)/r) times VelocityMultiplier, so
// a multiplier other than 1 makes the orbits eccentric.
func Orbital(p OrbitalParams) (*Scenario, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	primary, err := dynamo.NewBody(dynamo.Zero, dynamo.Zero, p.PrimaryMass, p.PrimaryRadius)
	if err != nil {
		return nil, err
	}

	speed := math.Sqrt(physics.GravitationalConstant*(p.PrimaryMass+p.SatelliteMass)/p.OrbitRadius) * p.VelocityMultiplier

	bodies := make([]*dynamo.Body, 0, p.Count+1)
	bodies = append(bodies, primary)
	for i := 0; i < p.Count; i++ {
		angle := 2 * math.Pi * float64(i) / float64(p.Count)
		pos := dynamo.FromAngle(angle, p.OrbitRadius)
		vel := pos.Normalized().Rotated90().Scale(speed)

		sat, err := dynamo.NewBody(pos, vel, p.SatelliteMass, p.SatelliteRadius)
		if err != nil {
			return nil, err
		}
		bodies = append(bodies, sat)
	}

	return &Scenario{Kind: KindOrbital, Bodies: bodies, Speed: physics.Year / 3}, nil
}
