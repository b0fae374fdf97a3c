// Package dynamo provides the core data model of the gravity engine.
//
// The package defines the primitives every other package builds on:
//
//   - [Vec2]: two-dimensional vector backed by gonum's r2 arithmetic
//   - [Body]: mutable physical state of one point mass
//   - [StepError]: health warning raised after a step left non-finite state
//   - [ParallelFor]: chunked fan-out used by the force loop
//
// # Units
//
// Positions are metres and masses kilograms. Scenario builders emit
// velocities in metres per second. Once a body is owned by a running
// simulation its velocity is stored in metres per step and its
// acceleration in metres per step², so that the integrator can advance
// every body with a unit step.
//
// # Thread Safety
//
// Bodies are NOT safe for concurrent mutation. A host that drives the
// engine from several goroutines must serialise whole steps.
package dynamo
