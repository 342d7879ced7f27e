// Package physics provides the geometry, force law and initial conditions of
// the galaxy simulation.
//
//   - [Displacement], [DistanceSq]: shortest wrapped geometry on the torus
//   - [Gravity]: acceleration on a point from the black holes, with a contact
//     policy that replaces the inverse-square law at near-zero separation
//   - [Seed]: random black holes and uniform or clustered stars
//
// # Force Law
//
// The direction of each pull is the raw wrapped displacement, not a unit
// vector, so the effective acceleration magnitude falls off as 1/r:
//
//	acc += disp * G * m_other / |disp|^2
//
// Below the contact radius the inverse-square term is skipped and the
// velocity is scaled by (1 + ContactBoost) instead.
package physics
