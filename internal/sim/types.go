package sim

import (
	"fmt"

	"github.com/san-kum/gravsim/internal/dynamo"
)

// RunConfig controls a batch run.
type RunConfig struct {
	Steps int
	// SampleEvery records body state every n steps (0 records only the
	// initial and final states).
	SampleEvery int
	// RealSecondsPerStep is the wall-clock time each step stands for;
	// zero means one reference frame.
	RealSecondsPerStep float64
}

func DefaultRunConfig() RunConfig {
	return RunConfig{
		Steps:       10000,
		SampleEvery: 10,
	}
}

func (c RunConfig) Validate() error {
	if c.Steps <= 0 {
		return fmt.Errorf("%w: steps must be positive, got %d", dynamo.ErrInvalidConfiguration, c.Steps)
	}
	if c.SampleEvery < 0 {
		return fmt.Errorf("%w: sample interval must not be negative, got %d", dynamo.ErrInvalidConfiguration, c.SampleEvery)
	}
	if c.RealSecondsPerStep < 0 {
		return fmt.Errorf("%w: real seconds per step must not be negative", dynamo.ErrInvalidConfiguration)
	}
	return nil
}

// Sample is the state of every body after Step steps.
type Sample struct {
	Step   int               `json:"step"`
	Time   float64           `json:"time"`
	Bodies []dynamo.BodyView `json:"bodies"`
}

type Result struct {
	Samples     []Sample
	Metrics     map[string]float64
	EnergyDrift float64
	StepsTaken  int
	Breakups    int
	Warnings    []error
}
