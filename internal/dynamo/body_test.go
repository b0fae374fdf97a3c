package dynamo

import (
	"errors"
	"math"
	"testing"

	. "github.com/onsi/gomega"
)

func TestNewBody_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mass   float64
		radius float64
	}{
		{"zero mass", 0, 1},
		{"negative mass", -1, 1},
		{"zero radius", 1, 0},
		{"negative radius", 1, -5},
		{"NaN mass", math.NaN(), 1},
		{"infinite radius", 1, math.Inf(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBody(Zero, Zero, tt.mass, tt.radius)
			if !errors.Is(err, ErrInvalidConfiguration) {
				t.Errorf("expected ErrInvalidConfiguration, got %v", err)
			}
		})
	}
}

func TestBody_Density(t *testing.T) {
	g := NewWithT(t)

	// Earth: ~5.51 g/cm³
	earth, err := NewBody(Zero, Zero, 5.972e24, 6.371e6)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(earth.Density()).To(BeNumerically("~", 5.51, 0.01))

	// Water sphere of 1 cm radius weighs 4/3·π grams.
	drop, err := NewBody(Zero, Zero, 4.0/3.0*math.Pi*1e-3, 0.01)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(drop.Density()).To(BeNumerically("~", 1.0, 1e-9))
}

func TestBody_SettersRecomputeDensity(t *testing.T) {
	g := NewWithT(t)

	b, err := NewBody(Zero, Zero, 1000, 1)
	g.Expect(err).NotTo(HaveOccurred())
	d0 := b.Density()

	g.Expect(b.SetRadius(2)).To(Succeed())
	g.Expect(b.Density()).To(BeNumerically("~", d0/8, d0*1e-12))

	g.Expect(b.SetMass(8000)).To(Succeed())
	g.Expect(b.Density()).To(BeNumerically("~", d0, d0*1e-12))

	g.Expect(b.SetMass(-1)).To(MatchError(ErrInvalidConfiguration))
	g.Expect(b.Mass()).To(Equal(8000.0))
}

func TestBody_Clone(t *testing.T) {
	b, _ := NewBody(V(1, 2), V(3, 4), 10, 1)
	c := b.Clone()
	c.Position = V(9, 9)

	if b.Position != V(1, 2) {
		t.Error("Clone did not create independent copy")
	}
	if c.Mass() != b.Mass() || c.Density() != b.Density() {
		t.Error("Clone lost physical properties")
	}
}

func TestStepError(t *testing.T) {
	err := &StepError{Step: 12, Time: 1.5, Bodies: []int{0, 3}, Wrapped: ErrNumericOverflow}
	if !errors.Is(err, ErrNumericOverflow) {
		t.Error("StepError should unwrap to ErrNumericOverflow")
	}
	expected := "step 12 (t=1.5 s): dynamo: non-finite body state (bodies [0 3])"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
}

func TestRadiusForDensity(t *testing.T) {
	r := RadiusForDensity(5.972e24, 5.513)
	if math.Abs(r-6.371e6)/6.371e6 > 1e-3 {
		t.Errorf("RadiusForDensity = %g, want ~6.371e6", r)
	}
	if d := Density(1e20, RadiusForDensity(1e20, 2.5)); math.Abs(d-2.5) > 1e-9 {
		t.Errorf("round trip density = %g, want 2.5", d)
	}
}
