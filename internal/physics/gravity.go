package physics

import (
	"math"

	"github.com/san-kum/galaxysim/internal/dynamo"
)

// Pull is the net effect of the black holes on one point for one step.
type Pull struct {
	Acc   dynamo.Vec2
	Boost float64
}

// Kick applies the pull to a velocity: vel = vel*Boost + Acc*dt.
func (p Pull) Kick(vel dynamo.Vec2, dt float64) dynamo.Vec2 {
	return vel.Scale(p.Boost).Add(p.Acc.Scale(dt))
}

type Gravity struct {
	G               float64
	ContactRadiusSq float64
	ContactBoost    float64
	Bounds          dynamo.Bounds
}

func NewGravity(g float64, params *dynamo.Params, bounds dynamo.Bounds) Gravity {
	return Gravity{
		G:               g,
		ContactRadiusSq: params.ContactRadiusSq,
		ContactBoost:    params.ContactBoost,
		Bounds:          bounds,
	}
}

// Influence sums the pull of every hole on a point at pos. self is the index
// of the hole the point belongs to, or -1 for a star; that hole is skipped.
//
// The force between the point and hole j is G*selfMass*m_j/d2 along the raw
// wrapped displacement; dividing by selfMass gives the acceleration.
func (g Gravity) Influence(pos dynamo.Vec2, holes []dynamo.BlackHole, self int) Pull {
	pull := Pull{Boost: 1}
	for j := range holes {
		if j == self {
			continue
		}
		other := &holes[j]

		d2 := DistanceSq(pos, other.Pos, g.Bounds)
		if d2 == 0 || d2 < g.ContactRadiusSq {
			pull.Boost *= 1 + g.ContactBoost
			continue
		}

		dir := Displacement(pos, other.Pos, g.Bounds)
		pull.Acc = pull.Acc.Add(dir.Scale(g.G * other.Mass / d2))
	}
	return pull
}

// Force returns the force on a body of mass selfMass at pos, excluding
// contact boosts.
func (g Gravity) Force(pos dynamo.Vec2, selfMass float64, holes []dynamo.BlackHole, self int) dynamo.Vec2 {
	return g.Influence(pos, holes, self).Acc.Scale(selfMass)
}

// MaxAcceleration bounds the magnitude any single hole of the given mass can
// contribute outside the contact radius. With a zero contact radius there is
// no finite bound.
func (g Gravity) MaxAcceleration(mass float64) (float64, bool) {
	if g.ContactRadiusSq <= 0 {
		return 0, false
	}
	return g.G * mass / math.Sqrt(g.ContactRadiusSq), true
}
