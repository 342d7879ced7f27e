package viz

import "github.com/charmbracelet/harmonica"

// gauge eases a displayed value toward its latest sample so per-frame noise
// does not make bars flicker.
type gauge struct {
	spring harmonica.Spring
	pos    float64
	vel    float64
}

func newGauge(fps int) gauge {
	return gauge{spring: harmonica.NewSpring(harmonica.FPS(fps), 6.0, 1.0)}
}

func (g *gauge) step(target float64) float64 {
	g.pos, g.vel = g.spring.Update(g.pos, g.vel, target)
	return g.pos
}

func (g *gauge) value() float64 { return g.pos }
