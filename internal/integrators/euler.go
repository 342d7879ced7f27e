package integrators

import (
	"math"

	"github.com/san-kum/galaxysim/internal/dynamo"
	"github.com/san-kum/galaxysim/internal/physics"
)

// Euler is a semi-implicit Euler step on the torus: the velocity is kicked
// first and the new velocity moves the position.
type Euler struct {
	Bounds dynamo.Bounds
}

func NewEuler(bounds dynamo.Bounds) *Euler {
	return &Euler{Bounds: bounds}
}

// Step kicks vel by acc, clamps it to maxSpeed and advances pos. It reports
// whether the speed cap was hit.
func (e *Euler) Step(pos, vel *dynamo.Vec2, acc dynamo.Vec2, maxSpeed, dt float64) bool {
	vel.X += acc.X * dt
	vel.Y += acc.Y * dt
	return e.Advance(pos, vel, maxSpeed, dt)
}

// Advance clamps an already kicked velocity and moves pos, wrapping it back
// into bounds. A maxSpeed <= 0 disables the clamp.
func (e *Euler) Advance(pos, vel *dynamo.Vec2, maxSpeed, dt float64) bool {
	clamped := Clamp(vel, maxSpeed)

	pos.X = physics.Wrap(pos.X+vel.X*dt, e.Bounds.Origin.X, e.Bounds.Size.X)
	pos.Y = physics.Wrap(pos.Y+vel.Y*dt, e.Bounds.Origin.Y, e.Bounds.Size.Y)
	return clamped
}

// Clamp rescales vel to maxSpeed when it is faster, keeping its direction.
// It reports whether the velocity was rescaled.
func Clamp(vel *dynamo.Vec2, maxSpeed float64) bool {
	if maxSpeed <= 0 {
		return false
	}
	speedSq := vel.X*vel.X + vel.Y*vel.Y
	if speedSq <= maxSpeed*maxSpeed {
		return false
	}
	scale := maxSpeed / math.Sqrt(speedSq)
	vel.X *= scale
	vel.Y *= scale
	return true
}
