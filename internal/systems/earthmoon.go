package systems

import (
	"math"

	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/physics"
)

// Reference values for the Earth-Moon fixture.
const (
	EarthMass         = 5.972e24
	EarthRadius       = 6.371e6
	MoonMass          = 7.342e22
	MoonRadius        = 1.7374e6
	EarthMoonDistance = 3.844e8
)

// EarthMoon returns the Earth at rest at the origin and the Moon on the
// +X axis moving at the circular two-body speed (~1.02 km/s).
func EarthMoon() (*Scenario, error) {
	earth, err := dynamo.NewBody(dynamo.Zero, dynamo.Zero, EarthMass, EarthRadius)
	if err != nil {
		return nil, err
	}

	v := math.Sqrt(physics.GravitationalConstant * (EarthMass + MoonMass) / EarthMoonDistance)
	moon, err := dynamo.NewBody(dynamo.V(EarthMoonDistance, 0), dynamo.V(0, v), MoonMass, MoonRadius)
	if err != nil {
		return nil, err
	}

	return &Scenario{Kind: KindEarthMoon, Bodies: []*dynamo.Body{earth, moon}, Speed: physics.Day}, nil
}
