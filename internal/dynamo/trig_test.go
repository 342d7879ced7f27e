package dynamo

import (
	"math"
	"testing"
)

func TestTrigTable_SinCos(t *testing.T) {
	table := NewTrigTable(4096)
	for _, x := range []float64{0, 0.3, math.Pi / 2, 3, -1.2, 2*math.Pi - 1e-9, 10} {
		s, c := table.SinCos(x)
		if math.Abs(s-math.Sin(x)) > 1e-5 || math.Abs(c-math.Cos(x)) > 1e-5 {
			t.Errorf("SinCos(%v) = (%v, %v), want (%v, %v)", x, s, c, math.Sin(x), math.Cos(x))
		}
	}
}

func TestTrigTable_TangentPerpendicular(t *testing.T) {
	table := NewTrigTable(1024)
	for _, x := range []float64{0, 1, 2, 4.5} {
		if d := table.Direction(x).Dot(table.Tangent(x)); math.Abs(d) > 1e-12 {
			t.Errorf("direction and tangent not perpendicular at %v: dot=%v", x, d)
		}
	}
}
