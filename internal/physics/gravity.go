package physics

import (
	"math"

	"github.com/san-kum/gravsim/internal/dynamo"
)

// DefaultParallelThreshold is the body count from which the force loop
// fans out across goroutines.
const DefaultParallelThreshold = 256

// Pair records Satellite lying within the Roche limit of Primary.
type Pair struct {
	Primary    int
	Satellite  int
	Separation float64
	Limit      float64
}

// Report summarises one force evaluation.
type Report struct {
	// Breakups lists ordered pairs within breakup distance, sorted by
	// satellite then primary index.
	Breakups []Pair
	// Degenerate counts ordered pairs skipped because the bodies coincide.
	Degenerate int
}

// Flagged returns the set of satellite indices with at least one pair.
func (r Report) Flagged() map[int]bool {
	out := make(map[int]bool, len(r.Breakups))
	for _, p := range r.Breakups {
		out[p.Satellite] = true
	}
	return out
}

// Field computes pairwise Newtonian accelerations. It holds no body state
// and is safe to reuse across simulations.
type Field struct {
	parallelThreshold int
}

type FieldOption func(*Field)

// WithParallelThreshold sets the body count at which the outer loop is
// split across goroutines. Zero or negative disables fan-out.
func WithParallelThreshold(n int) FieldOption {
	return func(f *Field) { f.parallelThreshold = n }
}

func NewField(opts ...FieldOption) *Field {
	f := &Field{parallelThreshold: DefaultParallelThreshold}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// RocheLimit is the separation from a primary of the given radius and
// density below which a satellite of satelliteDensity would break up.
func RocheLimit(radius, density, satelliteDensity float64) float64 {
	return radius * math.Cbrt(2*density/satelliteDensity)
}

// ComputeAccelerations overwrites every body's Acceleration and Breakup
// using gravitational constant g. Breakup marks a body that lies inside
// the Roche limit of any companion. Each body is only written by the
// iteration that owns it, so the outer loop may run in parallel.
func (f *Field) ComputeAccelerations(bodies []*dynamo.Body, g float64) Report {
	n := len(bodies)
	breakups := make([][]Pair, n)
	degenerate := make([]int, n)

	work := func(start, end int) {
		for i := start; i < end; i++ {
			breakups[i], degenerate[i] = f.accumulate(bodies, i, g)
		}
	}

	if f.parallelThreshold > 0 && n >= f.parallelThreshold {
		dynamo.ParallelFor(n, 32, work)
	} else {
		work(0, n)
	}

	var rep Report
	for i := 0; i < n; i++ {
		rep.Breakups = append(rep.Breakups, breakups[i]...)
		rep.Degenerate += degenerate[i]
	}
	return rep
}

func (f *Field) accumulate(bodies []*dynamo.Body, i int, g float64) ([]Pair, int) {
	bi := bodies[i]
	acc := dynamo.Zero
	var pairs []Pair
	skipped := 0

	for j, bj := range bodies {
		if j == i {
			continue
		}

		delta := bj.Position.Sub(bi.Position)
		sep := delta.Magnitude()

		limit := RocheLimit(bj.Radius(), bj.Density(), bi.Density())
		if sep < limit {
			pairs = append(pairs, Pair{Primary: j, Satellite: i, Separation: sep, Limit: limit})
		}

		if sep == 0 {
			skipped++
			continue
		}

		force := g * bi.Mass() * bj.Mass() / (sep * sep)
		acc = acc.Add(delta.Normalized().Scale(force / bi.Mass()))
	}

	bi.Acceleration = acc
	bi.Breakup = len(pairs) > 0
	return pairs, skipped
}
