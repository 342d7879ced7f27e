package dynamo

import "math"

// TrigTable provides precomputed sin/cos values for fast lookup.
// Uses linear interpolation for values between table entries.
type TrigTable struct {
	sin []float64
	cos []float64
	n   int
}

// Global default trig table (4096 entries = ~0.0015 rad resolution)
var DefaultTrigTable = NewTrigTable(4096)

func NewTrigTable(n int) *TrigTable {
	t := &TrigTable{
		sin: make([]float64, n+1),
		cos: make([]float64, n+1),
		n:   n,
	}

	for i := 0; i <= n; i++ {
		angle := float64(i) * 2 * math.Pi / float64(n)
		t.sin[i] = math.Sin(angle)
		t.cos[i] = math.Cos(angle)
	}

	return t
}

// SinCos returns interpolated sin and cos of x.
func (t *TrigTable) SinCos(x float64) (sin, cos float64) {
	x = math.Mod(x, 2*math.Pi)
	if x < 0 {
		x += 2 * math.Pi
	}

	idx := x * float64(t.n) / (2 * math.Pi)
	i := int(idx)
	if i >= t.n {
		i = t.n - 1
	}
	frac := idx - float64(i)

	sin = t.sin[i]*(1-frac) + t.sin[i+1]*frac
	cos = t.cos[i]*(1-frac) + t.cos[i+1]*frac
	return
}

// Direction returns the (approximately) unit vector at angle x.
func (t *TrigTable) Direction(x float64) Vec2 {
	s, c := t.SinCos(x)
	return Vec2{c, s}
}

// Tangent returns the direction perpendicular to Direction(x), rotated a
// quarter turn counter-clockwise.
func (t *TrigTable) Tangent(x float64) Vec2 {
	s, c := t.SinCos(x)
	return Vec2{-s, c}
}
