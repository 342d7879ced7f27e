package physics

import (
	"math"
	"math/rand"

	"github.com/san-kum/galaxysim/internal/dynamo"
)

type Layout string

const (
	LayoutUniform Layout = "uniform"
	LayoutCluster Layout = "cluster"
)

type SeedOptions struct {
	Stars       int
	Holes       int
	Layout      Layout
	StarSpeed   float64
	HoleSpeed   float64
	HoleMass    float64
	HoleRadius  float64
	SpawnRadius float64
	MinRadius   float64
	OrbitScale  float64
}

func DefaultSeedOptions() SeedOptions {
	return SeedOptions{
		Stars:       100000,
		Holes:       6,
		Layout:      LayoutUniform,
		StarSpeed:   1,
		HoleSpeed:   0.1,
		HoleMass:    1,
		HoleRadius:  300,
		SpawnRadius: 8000,
		MinRadius:   500,
		OrbitScale:  1,
	}
}

// Seed allocates and places the stars and black holes for a run. Holes are
// placed uniformly in bounds with a random velocity in [-HoleSpeed, HoleSpeed]
// on each axis. Stars are either placed uniformly with a random velocity in
// [-StarSpeed, StarSpeed], or clustered around a randomly chosen hole on a
// roughly circular orbit.
func Seed(opts SeedOptions, bounds dynamo.Bounds, rng *rand.Rand) ([]dynamo.Star, []dynamo.BlackHole) {
	holes := make([]dynamo.BlackHole, opts.Holes)
	for i := range holes {
		holes[i] = dynamo.BlackHole{
			Pos:    randomPoint(bounds, rng),
			Vel:    randomVec(opts.HoleSpeed, rng),
			Boost:  1,
			Mass:   opts.HoleMass,
			Radius: opts.HoleRadius,
		}
	}

	stars := make([]dynamo.Star, opts.Stars)
	if opts.Layout == LayoutCluster && len(holes) > 0 {
		seedCluster(stars, holes, opts, bounds, rng)
		return stars, holes
	}

	for i := range stars {
		stars[i] = dynamo.Star{
			Pos: randomPoint(bounds, rng),
			Vel: randomVec(opts.StarSpeed, rng),
		}
	}
	return stars, holes
}

func seedCluster(stars []dynamo.Star, holes []dynamo.BlackHole, opts SeedOptions, bounds dynamo.Bounds, rng *rand.Rand) {
	trig := dynamo.DefaultTrigTable
	minR := math.Min(opts.MinRadius, opts.SpawnRadius)

	for i := range stars {
		host := &holes[rng.Intn(len(holes))]

		angle := rng.Float64() * 2 * math.Pi
		r := minR + rng.Float64()*(opts.SpawnRadius-minR)

		offset := trig.Direction(angle).Scale(r)
		pos := WrapPoint(host.Pos.Add(offset), bounds)

		vel := trig.Tangent(angle).Scale(opts.OrbitScale * math.Sqrt(r))
		stars[i] = dynamo.Star{
			Pos: pos,
			Vel: vel.Add(host.Vel),
		}
	}
}

func randomPoint(bounds dynamo.Bounds, rng *rand.Rand) dynamo.Vec2 {
	return WrapPoint(dynamo.Vec2{
		X: bounds.Origin.X + rng.Float64()*bounds.Size.X,
		Y: bounds.Origin.Y + rng.Float64()*bounds.Size.Y,
	}, bounds)
}

func randomVec(limit float64, rng *rand.Rand) dynamo.Vec2 {
	return dynamo.Vec2{
		X: (rng.Float64()*2 - 1) * limit,
		Y: (rng.Float64()*2 - 1) * limit,
	}
}
