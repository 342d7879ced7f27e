package physics

import (
	"math"

	"github.com/san-kum/galaxysim/internal/dynamo"
)

// Displacement returns the shortest vector from a to b on the torus defined by
// bounds. Per axis the direct difference is kept unless its magnitude exceeds
// half the extent, in which case the wrap-around path is taken.
func Displacement(a, b dynamo.Vec2, bounds dynamo.Bounds) dynamo.Vec2 {
	return dynamo.Vec2{
		X: wrapDelta(b.X-a.X, bounds.Size.X),
		Y: wrapDelta(b.Y-a.Y, bounds.Size.Y),
	}
}

// DistanceSq returns the squared wrapped distance between a and b.
func DistanceSq(a, b dynamo.Vec2, bounds dynamo.Bounds) float64 {
	dx := wrapAbs(math.Abs(b.X-a.X), bounds.Size.X)
	dy := wrapAbs(math.Abs(b.Y-a.Y), bounds.Size.Y)
	return dx*dx + dy*dy
}

func Distance(a, b dynamo.Vec2, bounds dynamo.Bounds) float64 {
	return math.Sqrt(DistanceSq(a, b, bounds))
}

// wrapDelta and wrapAbs must agree exactly: |wrapDelta(d, e)| == wrapAbs(|d|, e).
func wrapDelta(d, extent float64) float64 {
	if d > extent/2 {
		return d - extent
	}
	if d < -extent/2 {
		return d + extent
	}
	return d
}

func wrapAbs(d, extent float64) float64 {
	if d > extent/2 {
		return extent - d
	}
	return d
}

// Wrap folds x into [origin, origin+extent) by modulo, so a body that moved
// several extents in one step lands where it would on the torus rather than
// at the origin.
func Wrap(x, origin, extent float64) float64 {
	if x >= origin && x < origin+extent {
		return x
	}
	r := math.Mod(x-origin, extent)
	if r < 0 {
		r += extent
	}
	// r can round up to extent when x-origin is a tiny negative number
	if r >= extent {
		r = 0
	}
	if x = origin + r; x >= origin+extent {
		return origin
	}
	return x
}

func WrapPoint(p dynamo.Vec2, bounds dynamo.Bounds) dynamo.Vec2 {
	return dynamo.Vec2{
		X: Wrap(p.X, bounds.Origin.X, bounds.Size.X),
		Y: Wrap(p.Y, bounds.Origin.Y, bounds.Size.Y),
	}
}
