package metrics

import (
	"github.com/san-kum/gravsim/internal/dynamo"
)

// Stability is the fraction of observations in which every body stayed
// within threshold metres of the origin.
type Stability struct {
	name       string
	threshold  float64
	violations int
	samples    int
}

func NewStability(threshold float64) *Stability {
	return &Stability{
		name:      "stability",
		threshold: threshold,
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(_ int, _ float64, bodies []dynamo.BodyView) {
	s.samples++
	for _, b := range bodies {
		if !(b.Position.Magnitude() <= s.threshold) {
			s.violations++
			break
		}
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}

// BreakupCount counts observations in which at least one body was inside
// a companion's Roche limit.
type BreakupCount struct {
	name  string
	count int
}

func NewBreakupCount() *BreakupCount {
	return &BreakupCount{name: "breakup_steps"}
}

func (b *BreakupCount) Name() string { return b.name }

func (b *BreakupCount) Observe(_ int, _ float64, bodies []dynamo.BodyView) {
	for _, v := range bodies {
		if v.Breakup {
			b.count++
			return
		}
	}
}

func (b *BreakupCount) Value() float64 { return float64(b.count) }

func (b *BreakupCount) Reset() { b.count = 0 }
