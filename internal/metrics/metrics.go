// Package metrics holds dynamo.Metric implementations that summarise a
// run from the SI body views a simulation publishes after each step.
package metrics

import "github.com/san-kum/gravsim/internal/dynamo"

// Default returns fresh instances of the metrics recorded for every run.
func Default() []dynamo.Metric {
	return []dynamo.Metric{
		NewEnergyDrift(),
		NewMomentumDrift(),
		NewBreakupCount(),
	}
}
