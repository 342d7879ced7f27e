package integrators

import (
	"testing"

	"github.com/san-kum/galaxysim/internal/dynamo"
)

func BenchmarkEulerStep(b *testing.B) {
	e := NewEuler(dynamo.NewBounds(134000, 70000))
	pos := dynamo.Vec2{X: 100, Y: 100}
	vel := dynamo.Vec2{X: 5, Y: -3}
	acc := dynamo.Vec2{X: 0.5, Y: 0.25}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e.Step(&pos, &vel, acc, 900, 1)
	}
}

func BenchmarkEulerStepClamped(b *testing.B) {
	e := NewEuler(dynamo.NewBounds(134000, 70000))
	pos := dynamo.Vec2{X: 100, Y: 100}
	acc := dynamo.Vec2{X: 5000, Y: 2500}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		vel := dynamo.Vec2{X: 5, Y: -3}
		e.Step(&pos, &vel, acc, 900, 1)
	}
}
