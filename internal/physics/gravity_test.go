package physics

import (
	"math"
	"testing"

	"github.com/san-kum/galaxysim/internal/dynamo"
)

func scenarioGravity() Gravity {
	return Gravity{G: 1, Bounds: dynamo.NewBounds(100, 100)}
}

func TestInfluence_SingleHole(t *testing.T) {
	g := scenarioGravity()
	holes := []dynamo.BlackHole{{Pos: dynamo.Vec2{X: 50, Y: 50}, Mass: 1}}

	pull := g.Influence(dynamo.Vec2{X: 60, Y: 50}, holes, -1)

	if math.Abs(pull.Acc.X+0.1) > 1e-12 || pull.Acc.Y != 0 {
		t.Errorf("expected acceleration (-0.1, 0), got %v", pull.Acc)
	}
	if pull.Boost != 1 {
		t.Errorf("expected no contact boost, got %v", pull.Boost)
	}

	vel := pull.Kick(dynamo.Vec2{}, 1)
	if math.Abs(vel.X+0.1) > 1e-12 || vel.Y != 0 {
		t.Errorf("expected velocity (-0.1, 0), got %v", vel)
	}
}

func TestInfluence_WrapsAcrossEdge(t *testing.T) {
	g := scenarioGravity()
	holes := []dynamo.BlackHole{{Pos: dynamo.Vec2{X: 5, Y: 50}, Mass: 1}}

	// nearest image of the hole is at x=105, so the pull points +x
	pull := g.Influence(dynamo.Vec2{X: 95, Y: 50}, holes, -1)
	if pull.Acc.X <= 0 {
		t.Errorf("expected pull across the edge (+x), got %v", pull.Acc)
	}
	if math.Abs(pull.Acc.X-0.1) > 1e-12 {
		t.Errorf("expected 0.1, got %v", pull.Acc.X)
	}
}

func TestInfluence_ContactDamping(t *testing.T) {
	g := scenarioGravity()
	g.G = 1e6
	g.ContactRadiusSq = 4
	g.ContactBoost = 0.01

	holes := []dynamo.BlackHole{
		{Pos: dynamo.Vec2{X: 50, Y: 50}, Mass: 10},
		{Pos: dynamo.Vec2{X: 50.5, Y: 50}, Mass: 10},
	}

	pull := g.Influence(dynamo.Vec2{X: 50.2, Y: 50.1}, holes, -1)

	if pull.Acc != (dynamo.Vec2{}) {
		t.Errorf("inverse-square branch taken inside contact radius: %v", pull.Acc)
	}
	want := 1.01 * 1.01
	if math.Abs(pull.Boost-want) > 1e-12 {
		t.Errorf("expected boost %v, got %v", want, pull.Boost)
	}

	vel := pull.Kick(dynamo.Vec2{X: 1, Y: -2}, 1)
	if math.Abs(vel.X-want) > 1e-12 || math.Abs(vel.Y+2*want) > 1e-12 {
		t.Errorf("expected velocity scaled by %v, got %v", want, vel)
	}
}

func TestInfluence_BoundedOutsideContact(t *testing.T) {
	g := scenarioGravity()
	g.G = 1000
	g.ContactRadiusSq = 9

	ceiling, ok := g.MaxAcceleration(2)
	if !ok {
		t.Fatal("expected a finite ceiling with a contact radius")
	}

	holes := []dynamo.BlackHole{{Pos: dynamo.Vec2{X: 50, Y: 50}, Mass: 2}}
	for _, dx := range []float64{0, 1e-9, 0.5, 2.999, 3, 3.001, 10, 49} {
		pull := g.Influence(dynamo.Vec2{X: 50 + dx, Y: 50}, holes, -1)
		if pull.Acc.Len() > ceiling*(1+1e-9) {
			t.Errorf("dx=%v: acceleration %v exceeds ceiling %v", dx, pull.Acc.Len(), ceiling)
		}
		if !pull.Acc.IsValid() {
			t.Errorf("dx=%v: invalid acceleration %v", dx, pull.Acc)
		}
	}

	if _, ok := scenarioGravity().MaxAcceleration(1); ok {
		t.Error("expected no ceiling without a contact radius")
	}
}

func TestInfluence_SkipsSelf(t *testing.T) {
	g := scenarioGravity()
	holes := []dynamo.BlackHole{
		{Pos: dynamo.Vec2{X: 10, Y: 10}, Mass: 1},
		{Pos: dynamo.Vec2{X: 20, Y: 10}, Mass: 1},
	}

	pull := g.Influence(holes[0].Pos, holes, 0)
	if pull.Boost != 1 {
		t.Errorf("self treated as contact: boost %v", pull.Boost)
	}
	if math.Abs(pull.Acc.X-0.1) > 1e-12 || pull.Acc.Y != 0 {
		t.Errorf("expected (0.1, 0) from the other hole, got %v", pull.Acc)
	}
}

func TestInfluence_CoincidentWithoutContactRadius(t *testing.T) {
	g := scenarioGravity()
	holes := []dynamo.BlackHole{{Pos: dynamo.Vec2{X: 10, Y: 10}, Mass: 1}}

	pull := g.Influence(dynamo.Vec2{X: 10, Y: 10}, holes, -1)
	if !pull.Acc.IsValid() || pull.Acc != (dynamo.Vec2{}) {
		t.Errorf("expected zero acceleration at zero separation, got %v", pull.Acc)
	}
}

func TestForce_ScalesWithSelfMass(t *testing.T) {
	g := scenarioGravity()
	holes := []dynamo.BlackHole{{Pos: dynamo.Vec2{X: 50, Y: 50}, Mass: 1}}

	f := g.Force(dynamo.Vec2{X: 60, Y: 50}, 3, holes, -1)
	if math.Abs(f.X+0.3) > 1e-12 {
		t.Errorf("expected force -0.3, got %v", f.X)
	}
}

func BenchmarkInfluence(b *testing.B) {
	g := Gravity{G: 10000, ContactRadiusSq: 100, Bounds: dynamo.NewBounds(134000, 70000)}
	holes := make([]dynamo.BlackHole, 6)
	for i := range holes {
		holes[i] = dynamo.BlackHole{Pos: dynamo.Vec2{X: float64(i) * 20000, Y: float64(i) * 9000}, Mass: 1}
	}
	pos := dynamo.Vec2{X: 1234, Y: 5678}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = g.Influence(pos, holes, -1)
	}
}
