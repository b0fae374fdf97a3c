package metrics

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/gravsim/internal/dynamo"
)

// RadialDeviation follows the separation between two bodies. Value is the
// largest relative departure from the first observed separation.
type RadialDeviation struct {
	name      string
	primary   int
	satellite int
	radii     []float64
}

func NewRadialDeviation(primary, satellite int) *RadialDeviation {
	return &RadialDeviation{name: "radial_deviation", primary: primary, satellite: satellite}
}

func (r *RadialDeviation) Name() string { return r.name }

func (r *RadialDeviation) Observe(_ int, _ float64, bodies []dynamo.BodyView) {
	if r.primary >= len(bodies) || r.satellite >= len(bodies) {
		return
	}
	d := bodies[r.satellite].Position.Distance(bodies[r.primary].Position)
	if math.IsNaN(d) || math.IsInf(d, 0) {
		return
	}
	r.radii = append(r.radii, d)
}

func (r *RadialDeviation) Value() float64 {
	if len(r.radii) == 0 || r.radii[0] == 0 {
		return 0
	}
	r0 := r.radii[0]
	worst := 0.0
	for _, d := range r.radii {
		worst = math.Max(worst, math.Abs(d-r0)/r0)
	}
	return worst
}

// Mean separation in metres.
func (r *RadialDeviation) Mean() float64 {
	if len(r.radii) == 0 {
		return 0
	}
	return stat.Mean(r.radii, nil)
}

// StdDev of the separation in metres.
func (r *RadialDeviation) StdDev() float64 {
	if len(r.radii) < 2 {
		return 0
	}
	return stat.StdDev(r.radii, nil)
}

func (r *RadialDeviation) Reset() { r.radii = r.radii[:0] }
