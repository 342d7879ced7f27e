package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/galaxysim/internal/dynamo"
)

// toScreen maps a world position to window pixels.
func toScreen(p dynamo.Vec2, bounds dynamo.Bounds, scale float64) (int32, int32) {
	return int32((p.X - bounds.Origin.X) * scale), int32((p.Y - bounds.Origin.Y) * scale)
}

func (a *App) Draw() {
	rl.BeginDrawing()
	defer rl.EndDrawing()

	rl.ClearBackground(ColBg)
	if !a.Sim.Flags.Draw.Load() {
		rl.DrawText("drawing off (D)", 10, 10, 20, ColText)
		return
	}

	a.drawStars()
	a.drawHoles()
	a.drawHud()
}

// drawStars plots one pixel per star with additive blending, so dense regions
// brighten.
func (a *App) drawStars() {
	w := a.Sim.World
	scale := a.Opts.Scale

	rl.BeginBlendMode(rl.BlendAdditive)
	for i := range w.Stars {
		x, y := toScreen(w.Stars[i].Pos, w.Bounds, scale)
		rl.DrawPixel(x, y, a.StarColor)
	}
	rl.EndBlendMode()
}

func (a *App) drawHoles() {
	w := a.Sim.World
	scale := a.Opts.Scale

	for i := range w.Holes {
		h := &w.Holes[i]
		x, y := toScreen(h.Pos, w.Bounds, scale)
		r := float32(h.Radius * scale)
		if r < 2 {
			r = 2
		}
		rl.DrawCircle(x, y, r, ColHole)
	}
}

func (a *App) drawHud() {
	p := a.Sim.World.Params
	status := ""
	if a.Sim.Flags.Paused.Load() {
		status = "  PAUSED"
	}
	hud := fmt.Sprintf("G %g  cap %g  step %d%s", p.G(), p.MaxSpeed, a.Sim.World.Step, status)
	rl.DrawText(hud, 10, 10, 16, ColText)
}
