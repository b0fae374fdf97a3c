package sim

import (
	"context"
	"testing"

	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/systems"
)

func TestEnsemble_Run(t *testing.T) {
	p := systems.DefaultParams()
	p.Cloud.Count = 5

	e := NewEnsemble(systems.KindCloud, p, 3, 42).
		WithMetrics(func() []dynamo.Metric { return []dynamo.Metric{&stepMetric{}} })

	results, err := e.Run(context.Background(), RunConfig{Steps: 20, SampleEvery: 5})
	if err != nil {
		t.Fatalf("ensemble: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	for i, r := range results {
		if r.StepsTaken != 20 {
			t.Errorf("run %d: %d steps", i, r.StepsTaken)
		}
		if r.Metrics["steps"] != 20 {
			t.Errorf("run %d: metric saw %v steps", i, r.Metrics["steps"])
		}
	}

	if results[0].Samples[0].Bodies[0].Mass == results[1].Samples[0].Bodies[0].Mass {
		t.Error("different seeds produced the same primary")
	}
}

func TestEnsemble_UnknownKind(t *testing.T) {
	e := NewEnsemble("comet", systems.DefaultParams(), 2, 1)
	if _, err := e.Run(context.Background(), DefaultRunConfig()); err == nil {
		t.Error("expected error for unknown scenario")
	}
}
