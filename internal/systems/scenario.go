package systems

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/san-kum/gravsim/internal/dynamo"
)

// Scenario kinds understood by Build.
const (
	KindOrbital   = "orbital"
	KindCloud     = "cloud"
	KindEarthMoon = "earth-moon"
)

// Scenario is a freshly built body set and its recommended speed factor.
type Scenario struct {
	Kind   string
	Bodies []*dynamo.Body
	Speed  float64
}

// Clone deep-copies the bodies so the scenario can be replayed.
func (s *Scenario) Clone() *Scenario {
	c := &Scenario{Kind: s.Kind, Speed: s.Speed, Bodies: make([]*dynamo.Body, len(s.Bodies))}
	for i, b := range s.Bodies {
		c.Bodies[i] = b.Clone()
	}
	return c
}

// Params carries the parameters of every builder; Build reads the section
// matching the kind.
type Params struct {
	Orbital OrbitalParams
	Cloud   CloudParams
}

func DefaultParams() Params {
	return Params{
		Orbital: DefaultOrbitalParams(),
		Cloud:   DefaultCloudParams(),
	}
}

type builder func(p Params, rng *rand.Rand) (*Scenario, error)

var builders = map[string]builder{
	KindOrbital:   func(p Params, _ *rand.Rand) (*Scenario, error) { return Orbital(p.Orbital) },
	KindCloud:     func(p Params, rng *rand.Rand) (*Scenario, error) { return RandomCloud(p.Cloud, rng) },
	KindEarthMoon: func(Params, *rand.Rand) (*Scenario, error) { return EarthMoon() },
}

// Build dispatches to the builder registered for kind.
func Build(kind string, p Params, rng *rand.Rand) (*Scenario, error) {
	fn, ok := builders[kind]
	if !ok {
		return nil, fmt.Errorf("unknown scenario: %s (available: %v)", kind, Kinds())
	}
	return fn(p, rng)
}

func Kinds() []string {
	names := make([]string, 0, len(builders))
	for name := range builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{dynamo.ErrInvalidConfiguration}, args...)...)
}
