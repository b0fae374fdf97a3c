package sim

import (
	"context"
	"math"

	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/integrators"
	"github.com/san-kum/gravsim/internal/physics"
	"github.com/san-kum/gravsim/internal/systems"
)

// Simulation owns one body collection together with its clock, field and
// integrator. Nothing is shared between instances.
//
// Internally velocities are metres per step and accelerations metres per
// step²; every accessor converts back to SI.
type Simulation struct {
	bodies     []*dynamo.Body
	clock      *physics.Clock
	field      *physics.Field
	integrator dynamo.Integrator
	observers  []dynamo.Observer
	metrics    []dynamo.Metric
	steps      int
	last       physics.Report
}

type Option func(*Simulation)

func WithField(f *physics.Field) Option { return func(s *Simulation) { s.field = f } }

func WithIntegrator(i dynamo.Integrator) Option { return func(s *Simulation) { s.integrator = i } }

func WithObserver(o dynamo.Observer) Option {
	return func(s *Simulation) { s.observers = append(s.observers, o) }
}

func WithMetric(m dynamo.Metric) Option {
	return func(s *Simulation) { s.metrics = append(s.metrics, m) }
}

// New loads a copy of the scenario's bodies and plays it at the
// scenario's recommended speed.
func New(sc *systems.Scenario, opts ...Option) (*Simulation, error) {
	s := &Simulation{
		field:      physics.NewField(),
		integrator: integrators.NewSemiImplicitEuler(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.Reset(sc); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Simulation) AddObserver(o dynamo.Observer) { s.observers = append(s.observers, o) }

// AddMetric attaches m and hands it the current state as its baseline.
func (s *Simulation) AddMetric(m dynamo.Metric) {
	m.Reset()
	m.Observe(s.steps, s.clock.Elapsed(), s.Bodies())
	s.metrics = append(s.metrics, m)
}

// Reset replaces the whole body collection and restarts the clock.
// Metrics are reset and observe the initial state as step 0.
func (s *Simulation) Reset(sc *systems.Scenario) error {
	clock, err := physics.NewClock(sc.Speed)
	if err != nil {
		return err
	}

	dt := clock.StepSeconds()
	bodies := make([]*dynamo.Body, len(sc.Bodies))
	for i, b := range sc.Bodies {
		c := b.Clone()
		c.Velocity = c.Velocity.Scale(dt)
		c.Acceleration = dynamo.Zero
		c.Breakup = false
		bodies[i] = c
	}

	s.bodies = bodies
	s.clock = clock
	s.steps = 0
	s.last = physics.Report{}
	if len(s.metrics) > 0 {
		views := s.Bodies()
		for _, m := range s.metrics {
			m.Reset()
			m.Observe(0, 0, views)
		}
	}
	return nil
}

// Step advances the clock by realSeconds of play time and the bodies by
// one unit step: all accelerations are computed first, then every body is
// integrated. A returned *dynamo.StepError wrapping ErrNumericOverflow is
// a health warning; the step has still been fully applied.
func (s *Simulation) Step(realSeconds float64) (physics.Report, error) {
	if err := s.clock.AdvanceTime(realSeconds); err != nil {
		return physics.Report{}, err
	}

	s.last = s.field.ComputeAccelerations(s.bodies, s.clock.EffectiveG())
	s.integrator.Step(s.bodies)
	s.steps++

	if len(s.observers) > 0 || len(s.metrics) > 0 {
		views := s.Bodies()
		t := s.clock.Elapsed()
		for _, m := range s.metrics {
			m.Observe(s.steps, t, views)
		}
		for _, o := range s.observers {
			o.OnStep(s.steps, t, views)
		}
	}

	return s.last, s.health()
}

// Tick steps one reference frame of real time.
func (s *Simulation) Tick() (physics.Report, error) {
	return s.Step(1 / physics.ReferenceFrameRate)
}

func (s *Simulation) health() error {
	var bad []int
	for i, b := range s.bodies {
		if !b.IsFinite() {
			bad = append(bad, i)
		}
	}
	if len(bad) == 0 {
		return nil
	}
	return &dynamo.StepError{Step: s.steps, Time: s.clock.Elapsed(), Bodies: bad, Wrapped: dynamo.ErrNumericOverflow}
}

// SetSpeed changes the speed factor. Stored per-step velocities are
// rescaled so that physical velocities are unchanged.
func (s *Simulation) SetSpeed(speed float64) error {
	old := s.clock.StepSeconds()
	if err := s.clock.SetSpeed(speed); err != nil {
		return err
	}
	ratio := s.clock.StepSeconds() / old
	for _, b := range s.bodies {
		b.Velocity = b.Velocity.Scale(ratio)
		b.Acceleration = b.Acceleration.Scale(ratio * ratio)
	}
	return nil
}

func (s *Simulation) Speed() float64       { return s.clock.Speed() }
func (s *Simulation) SpeedString() string  { return s.clock.SpeedString() }
func (s *Simulation) EffectiveG() float64  { return s.clock.EffectiveG() }
func (s *Simulation) StepSeconds() float64 { return s.clock.StepSeconds() }
func (s *Simulation) Elapsed() float64     { return s.clock.Elapsed() }
func (s *Simulation) Steps() int           { return s.steps }
func (s *Simulation) Len() int             { return len(s.bodies) }

// LastReport is the force report of the most recent step.
func (s *Simulation) LastReport() physics.Report { return s.last }

// Body returns an SI view of body i.
func (s *Simulation) Body(i int) dynamo.BodyView {
	return s.view(s.bodies[i])
}

// Bodies returns SI views of every body in collection order.
func (s *Simulation) Bodies() []dynamo.BodyView {
	views := make([]dynamo.BodyView, len(s.bodies))
	for i, b := range s.bodies {
		views[i] = s.view(b)
	}
	return views
}

func (s *Simulation) view(b *dynamo.Body) dynamo.BodyView {
	return dynamo.BodyView{
		Position: b.Position,
		Velocity: b.Velocity.Scale(1 / s.clock.StepSeconds()),
		Mass:     b.Mass(),
		Radius:   b.Radius(),
		Density:  b.Density(),
		Breakup:  b.Breakup,
	}
}

// Energy is the total mechanical energy in joules.
func (s *Simulation) Energy() float64 {
	dt := s.clock.StepSeconds()
	return physics.Energy(s.bodies, s.clock.EffectiveG()) / (dt * dt)
}

// Momentum is the total linear momentum in kg·m/s.
func (s *Simulation) Momentum() dynamo.Vec2 {
	return physics.Momentum(s.bodies).Scale(1 / s.clock.StepSeconds())
}

// AngularMomentum about the origin in kg·m²/s.
func (s *Simulation) AngularMomentum() float64 {
	return physics.AngularMomentum(s.bodies) / s.clock.StepSeconds()
}

// Run executes cfg.Steps steps, sampling body state along the way. A
// numeric overflow stops the run and is reported in Result.Warnings.
func (s *Simulation) Run(ctx context.Context, cfg RunConfig) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	realDt := cfg.RealSecondsPerStep
	if realDt == 0 {
		realDt = 1 / physics.ReferenceFrameRate
	}

	result := &Result{
		Samples: make([]Sample, 0, sampleCapacity(cfg)),
		Metrics: make(map[string]float64),
	}
	result.Samples = append(result.Samples, s.sample())

	initialEnergy := s.Energy()

	for i := 0; i < cfg.Steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		rep, err := s.Step(realDt)
		result.StepsTaken++
		if len(rep.Breakups) > 0 {
			result.Breakups++
		}
		if err != nil {
			result.Warnings = append(result.Warnings, err)
			break
		}

		last := i == cfg.Steps-1
		if last || (cfg.SampleEvery > 0 && s.steps%cfg.SampleEvery == 0) {
			result.Samples = append(result.Samples, s.sample())
		}
	}

	// Drift and metric values stay out of the result once the state is no
	// longer finite; the overflow itself is in Warnings.
	if initialEnergy != 0 {
		if drift := math.Abs(s.Energy()-initialEnergy) / math.Abs(initialEnergy); isFinite(drift) {
			result.EnergyDrift = drift
		}
	}

	for _, m := range s.metrics {
		if v := m.Value(); isFinite(v) {
			result.Metrics[m.Name()] = v
		}
	}

	return result, nil
}

func (s *Simulation) sample() Sample {
	return Sample{Step: s.steps, Time: s.clock.Elapsed(), Bodies: s.Bodies()}
}

func sampleCapacity(cfg RunConfig) int {
	if cfg.SampleEvery == 0 {
		return 2
	}
	return cfg.Steps/cfg.SampleEvery + 2
}

func isFinite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
