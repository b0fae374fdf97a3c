package systems

import (
	"math"
	"math/rand"

	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/physics"
)

// Range is a closed interval sampled uniformly.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

func (r Range) sample(rng *rand.Rand) float64 {
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// frac maps v from r onto [0, 1].
func (r Range) frac(v float64) float64 {
	if r.Max == r.Min {
		return 0
	}
	return (v - r.Min) / (r.Max - r.Min)
}

func (r Range) valid() bool {
	return r.Min > 0 && r.Max >= r.Min && !math.IsInf(r.Max, 0)
}

type CloudParams struct {
	Count int `yaml:"count"`

	PrimaryMass    Range `yaml:"primary_mass"`
	PrimaryDensity Range `yaml:"primary_density"`

	OrbitRadius      Range `yaml:"orbit_radius"`
	SatelliteMass    Range `yaml:"satellite_mass"`
	SatelliteDensity Range `yaml:"satellite_density"`

	// ReferenceDistance is where the primary's circular speed is taken;
	// every satellite gets that speed regardless of its own distance.
	ReferenceDistance float64 `yaml:"reference_distance"`

	// SpeedDivisor maps primary mass onto Year/divisor for the
	// recommended speed factor; heavier primaries play slower.
	SpeedDivisor Range `yaml:"speed_divisor"`
}

func DefaultCloudParams() CloudParams {
	return CloudParams{
		Count:             200,
		PrimaryMass:       Range{Min: 1e29, Max: 1e33},
		PrimaryDensity:    Range{Min: 0.5, Max: 1.5},
		OrbitRadius:       Range{Min: 7.5e10, Max: 2.5e11},
		SatelliteMass:     Range{Min: 1e3, Max: 1e24},
		SatelliteDensity:  Range{Min: 1, Max: 5.5},
		ReferenceDistance: 2e11,
		SpeedDivisor:      Range{Min: 1e2, Max: 1e3},
	}
}

func (p CloudParams) Validate() error {
	switch {
	case p.Count <= 0:
		return invalid("satellite count must be positive, got %d", p.Count)
	case !p.PrimaryMass.valid():
		return invalid("primary mass range %v", p.PrimaryMass)
	case !p.PrimaryDensity.valid():
		return invalid("primary density range %v", p.PrimaryDensity)
	case !p.OrbitRadius.valid():
		return invalid("orbit radius range %v", p.OrbitRadius)
	case !p.SatelliteMass.valid():
		return invalid("satellite mass range %v", p.SatelliteMass)
	case !p.SatelliteDensity.valid():
		return invalid("satellite density range %v", p.SatelliteDensity)
	case !(p.ReferenceDistance > 0):
		return invalid("reference distance must be positive, got %g", p.ReferenceDistance)
	case !p.SpeedDivisor.valid():
		return invalid("speed divisor range %v", p.SpeedDivisor)
	}
	return nil
}

// RandomCloud scatters satellites at random angle and radius around a
// primary of random mass. All satellites share the primary's circular
// speed at ReferenceDistance and point in random directions, so the cloud
// is chaotic rather than orbit-stable.
func RandomCloud(p CloudParams, rng *rand.Rand) (*Scenario, error) {
	if rng == nil {
		return nil, invalid("cloud scenario needs a random source")
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	mass := p.PrimaryMass.sample(rng)
	radius := dynamo.RadiusForDensity(mass, p.PrimaryDensity.sample(rng))
	primary, err := dynamo.NewBody(dynamo.Zero, dynamo.Zero, mass, radius)
	if err != nil {
		return nil, err
	}

	speed := physics.CircularVelocity(mass, p.ReferenceDistance)

	bodies := make([]*dynamo.Body, 0, p.Count+1)
	bodies = append(bodies, primary)
	for i := 0; i < p.Count; i++ {
		pos := dynamo.FromAngle(rng.Float64()*2*math.Pi, p.OrbitRadius.sample(rng))
		m := p.SatelliteMass.sample(rng)
		r := dynamo.RadiusForDensity(m, p.SatelliteDensity.sample(rng))
		vel := dynamo.FromAngle(rng.Float64()*2*math.Pi, speed)

		sat, err := dynamo.NewBody(pos, vel, m, r)
		if err != nil {
			return nil, err
		}
		bodies = append(bodies, sat)
	}

	div := p.SpeedDivisor.Min + p.PrimaryMass.frac(mass)*(p.SpeedDivisor.Max-p.SpeedDivisor.Min)
	return &Scenario{Kind: KindCloud, Bodies: bodies, Speed: physics.Year / div}, nil
}
