package physics

import (
	"fmt"
	"math"
	"strconv"

	"github.com/san-kum/gravsim/internal/dynamo"
)

const (
	// GravitationalConstant is G in N·m²/kg².
	GravitationalConstant = 6.674e-11

	// ReferenceFrameRate is the nominal number of steps per real second.
	ReferenceFrameRate = 60.0
)

// Simulated time units in seconds.
const (
	Second = 1.0
	Minute = 60 * Second
	Hour   = 60 * Minute
	Day    = 24 * Hour
	Year   = 365.25 * Day
)

// Clock maps a speed factor (simulated seconds per real second) to the
// effective gravitational constant used by a unit-step integrator.
//
// One step stands for factor/ReferenceFrameRate simulated seconds. Scaling
// G by the square of that fraction folds the dt of Δv = aΔt and Δx = vΔt
// into the force law. Truncation error grows with the factor.
type Clock struct {
	speed      float64
	effectiveG float64
	elapsed    float64
}

func NewClock(speed float64) (*Clock, error) {
	c := &Clock{}
	if err := c.SetSpeed(speed); err != nil {
		return nil, err
	}
	return c, nil
}

// SetSpeed stores the factor and recomputes the effective constant.
func (c *Clock) SetSpeed(speed float64) error {
	if !(speed > 0) || math.IsInf(speed, 0) {
		return fmt.Errorf("%w: speed must be positive, got %g", dynamo.ErrInvalidConfiguration, speed)
	}
	c.speed = speed
	step := speed / ReferenceFrameRate
	c.effectiveG = GravitationalConstant * step * step
	return nil
}

func (c *Clock) Speed() float64      { return c.speed }
func (c *Clock) EffectiveG() float64 { return c.effectiveG }
func (c *Clock) Elapsed() float64    { return c.elapsed }

// StepSeconds is the simulated duration of one unit step.
func (c *Clock) StepSeconds() float64 { return c.speed / ReferenceFrameRate }

// AdvanceTime accumulates realSeconds·speed of simulated time.
func (c *Clock) AdvanceTime(realSeconds float64) error {
	if realSeconds < 0 || math.IsNaN(realSeconds) || math.IsInf(realSeconds, 0) {
		return fmt.Errorf("%w: elapsed real time must be finite and non-negative, got %g",
			dynamo.ErrInvalidConfiguration, realSeconds)
	}
	c.elapsed += realSeconds * c.speed
	return nil
}

func (c *Clock) SpeedString() string { return FormatSpeed(c.speed) }

// FormatSpeed renders a speed factor in the largest unit it reaches,
// e.g. "3.5 Hours/Sec". Values above 1 are rounded to two decimals.
func FormatSpeed(speed float64) string {
	var unit string
	v := speed
	switch {
	case speed < Minute:
		unit = "Sec/Sec"
	case speed < Hour:
		unit = "Min/Sec"
		v /= Minute
	case speed < Day:
		unit = "Hours/Sec"
		v /= Hour
	case speed < Year:
		unit = "Days/Sec"
		v /= Day
	default:
		unit = "Years/Sec"
		v /= Year
	}
	if v > 1 {
		v = math.Round(v*100) / 100
	}
	return strconv.FormatFloat(v, 'f', -1, 64) + " " + unit
}
