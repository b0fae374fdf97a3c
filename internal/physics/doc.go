// Package physics implements the gravitational force law and time scaling.
//
//   - [Clock]: speed factor, effective gravitational constant, elapsed time
//   - [Field]: O(n²) pairwise accelerations and Roche-limit flags
//   - [Energy], [Momentum], [AngularMomentum]: conservation diagnostics
//
// # Effective Constant
//
// Integrators advance bodies by one unit step. The clock folds the real
// step length into G instead:
//
//	clock, _ := physics.NewClock(physics.Day)
//	rep := physics.NewField().ComputeAccelerations(bodies, clock.EffectiveG())
//
// Roche flags in the returned [Report] are observational only; they never
// feed back into the dynamics.
package physics
