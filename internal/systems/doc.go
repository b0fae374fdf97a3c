// Package systems builds body sets in known configurations.
//
// Every builder returns a fresh [Scenario]: bodies with SI velocities
// (m/s) and the speed factor the scenario is meant to be played at.
//
//   - [Orbital]: satellites on circular orbits around a primary
//   - [RandomCloud]: a chaotic cloud around a random primary
//   - [EarthMoon]: the Earth-Moon pair, a regression fixture
//
// Randomised builders take an explicit *rand.Rand so runs are reproducible.
package systems
