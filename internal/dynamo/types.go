package dynamo

// Integrator advances every body by one unit step from its current
// Acceleration. Implementations mutate bodies in place.
type Integrator interface {
	Step(bodies []*Body)
}

// BodyView is a read-only copy of one body in SI units, handed to
// observers and renderers after a step.
type BodyView struct {
	Position Vec2    `json:"position"`
	Velocity Vec2    `json:"velocity"`
	Mass     float64 `json:"mass"`
	Radius   float64 `json:"radius"`
	Density  float64 `json:"density"`
	Breakup  bool    `json:"breakup"`
}

// Observer is notified after every completed step.
type Observer interface {
	OnStep(step int, t float64, bodies []BodyView)
}

// Metric accumulates a scalar over a run.
type Metric interface {
	Name() string
	Observe(step int, t float64, bodies []BodyView)
	Value() float64
	Reset()
}
