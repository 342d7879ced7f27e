// Package dynamo provides the core value types shared by the galaxy simulation.
//
// The package defines the plain data the force-and-integration core operates on:
//
//   - [Vec2]: 2D vector used for positions, velocities and accelerations
//   - [Bounds]: the toroidal domain, immutable for a run
//   - [Star]: massless tracer particle
//   - [BlackHole]: massive body with an acceleration accumulator
//   - [Params]: per-run physics parameters with a live-tunable G
//
// It also provides batch partitioning ([Partition]) and a fork-join helper
// ([ParallelFor]) used by the step scheduler.
//
// # Thread Safety
//
// Star and BlackHole slices are not synchronized. The scheduler in package sim
// guarantees that each star index has exactly one writer per step and that
// black holes are only written single-threaded. [Params.G] is the one field
// that may be read and written from different goroutines.
package dynamo
