package dynamo

import (
	"fmt"
	"math"
)

// Body is one point mass. Acceleration and Breakup are pure outputs of the
// gravity field and are overwritten every step.
type Body struct {
	Position     Vec2
	Velocity     Vec2
	Acceleration Vec2
	Breakup      bool

	mass    float64
	radius  float64
	density float64
}

// NewBody validates mass and radius and returns a body with its density
// already computed.
func NewBody(pos, vel Vec2, mass, radius float64) (*Body, error) {
	b := &Body{Position: pos, Velocity: vel}
	if err := b.SetMass(mass); err != nil {
		return nil, err
	}
	if err := b.SetRadius(radius); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Body) Mass() float64    { return b.mass }
func (b *Body) Radius() float64  { return b.radius }
func (b *Body) Density() float64 { return b.density }

func (b *Body) SetMass(mass float64) error {
	if !positive(mass) {
		return fmt.Errorf("%w: mass must be positive, got %g", ErrInvalidConfiguration, mass)
	}
	b.mass = mass
	b.updateDensity()
	return nil
}

func (b *Body) SetRadius(radius float64) error {
	if !positive(radius) {
		return fmt.Errorf("%w: radius must be positive, got %g", ErrInvalidConfiguration, radius)
	}
	b.radius = radius
	b.updateDensity()
	return nil
}

// Clone returns an independent copy.
func (b *Body) Clone() *Body {
	c := *b
	return &c
}

// IsFinite reports whether position and velocity hold finite values.
func (b *Body) IsFinite() bool {
	return b.Position.IsFinite() && b.Velocity.IsFinite()
}

// Density returns mass / volume in g/cm³ for a sphere of the given radius.
func Density(mass, radius float64) float64 {
	grams := mass * 1e3
	cm := radius * 1e2
	return grams / (4.0 / 3.0 * math.Pi * cm * cm * cm)
}

func (b *Body) updateDensity() {
	if b.mass > 0 && b.radius > 0 {
		b.density = Density(b.mass, b.radius)
	}
}

func positive(x float64) bool {
	return x > 0 && !math.IsInf(x, 0) && !math.IsNaN(x)
}

// RadiusForDensity inverts Density: the radius in metres of a sphere of
// the given mass (kg) and density (g/cm³).
func RadiusForDensity(mass, density float64) float64 {
	cm3 := mass * 1e3 / density
	return math.Cbrt(cm3*3/(4*math.Pi)) / 1e2
}
