package metrics

import (
	"math"

	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/physics"
)

// EnergyDrift tracks the largest relative change of total mechanical
// energy from the first observation. A simulation feeds its initial state
// as that first observation. Non-finite states are ignored.
type EnergyDrift struct {
	name    string
	initial float64
	worst   float64
	samples int
}

func NewEnergyDrift() *EnergyDrift {
	return &EnergyDrift{name: "energy_drift"}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(_ int, _ float64, bodies []dynamo.BodyView) {
	energy := TotalEnergy(bodies)
	if math.IsNaN(energy) || math.IsInf(energy, 0) {
		return
	}
	e.samples++
	if e.samples == 1 {
		e.initial = energy
		return
	}
	if e.initial == 0 {
		return
	}
	e.worst = math.Max(e.worst, math.Abs(energy-e.initial)/math.Abs(e.initial))
}

func (e *EnergyDrift) Value() float64 { return e.worst }

func (e *EnergyDrift) Reset() {
	e.initial = 0
	e.worst = 0
	e.samples = 0
}

// TotalEnergy is kinetic plus potential energy in joules.
func TotalEnergy(bodies []dynamo.BodyView) float64 {
	ke := 0.0
	pe := 0.0
	for i, bi := range bodies {
		ke += 0.5 * bi.Mass * bi.Velocity.Dot(bi.Velocity)
		for j := i + 1; j < len(bodies); j++ {
			r := bi.Position.Distance(bodies[j].Position)
			if r == 0 {
				continue
			}
			pe -= physics.GravitationalConstant * bi.Mass * bodies[j].Mass / r
		}
	}
	return ke + pe
}

// MomentumDrift tracks the largest change of total momentum relative to
// its initial magnitude. A system at rest is measured against the sum of
// the bodies' individual momenta instead.
type MomentumDrift struct {
	name    string
	initial dynamo.Vec2
	scale   float64
	worst   float64
	samples int
}

func NewMomentumDrift() *MomentumDrift {
	return &MomentumDrift{name: "momentum_drift"}
}

func (m *MomentumDrift) Name() string { return m.name }

func (m *MomentumDrift) Observe(_ int, _ float64, bodies []dynamo.BodyView) {
	p := dynamo.Zero
	for _, b := range bodies {
		p = p.Add(b.Velocity.Scale(b.Mass))
	}
	if !p.IsFinite() {
		return
	}

	m.samples++
	if m.samples == 1 {
		m.initial = p
		m.scale = p.Magnitude()
		if m.scale == 0 {
			for _, b := range bodies {
				m.scale += b.Mass * b.Velocity.Magnitude()
			}
		}
		return
	}
	if m.scale == 0 {
		return
	}
	m.worst = math.Max(m.worst, p.Sub(m.initial).Magnitude()/m.scale)
}

func (m *MomentumDrift) Value() float64 { return m.worst }

func (m *MomentumDrift) Reset() {
	m.initial = dynamo.Zero
	m.scale = 0
	m.worst = 0
	m.samples = 0
}
