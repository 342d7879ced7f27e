package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/galaxysim/internal/sim"
)

type Options struct {
	Width, Height int
	Scale         float64
	StarShade     uint8
	FPS           int
	Title         string
	TuneStep      float64
	SpeedStep     float64
}

var (
	ColBg   = rl.NewColor(0, 0, 0, 255)
	ColHole = rl.NewColor(255, 20, 255, 255)
	ColText = rl.NewColor(140, 140, 140, 255)
)

// App owns the window loop. The simulator is only touched from that loop, so
// key presses change G and the speed cap between frames.
type App struct {
	Sim       *sim.Simulator
	Opts      Options
	StarColor rl.Color
	last      sim.FrameStats
}

func initWindow(opts Options) {
	rl.InitWindow(int32(opts.Width), int32(opts.Height), opts.Title)
	if opts.FPS > 0 {
		rl.SetTargetFPS(int32(opts.FPS))
	}
}

func NewApp(s *sim.Simulator, opts Options) *App {
	shade := opts.StarShade
	return &App{
		Sim:       s,
		Opts:      opts,
		StarColor: rl.NewColor(shade, shade, shade, 255),
	}
}

// Run opens the window and blocks until it is closed.
func Run(s *sim.Simulator, opts Options) {
	initWindow(opts)
	defer rl.CloseWindow()
	NewApp(s, opts).RunLoop()
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		a.Update()
		a.Draw()
	}
}

func (a *App) Update() {
	switch {
	case rl.IsKeyPressed(rl.KeySpace):
		a.Sim.Flags.TogglePause()
	case rl.IsKeyPressed(rl.KeyD):
		a.Sim.Flags.ToggleDraw()
	case rl.IsKeyPressed(rl.KeyQ):
		a.Sim.AdjustG(a.Opts.TuneStep)
	case rl.IsKeyPressed(rl.KeyW):
		a.Sim.AdjustG(-a.Opts.TuneStep)
	case rl.IsKeyPressed(rl.KeyE):
		a.Sim.AdjustMaxSpeed(a.Opts.SpeedStep)
	case rl.IsKeyPressed(rl.KeyR):
		a.Sim.AdjustMaxSpeed(-a.Opts.SpeedStep)
	}

	a.last = a.Sim.Frame()
	rl.SetWindowTitle(Title(a.Opts.Title, a.last))
}

// Title formats the window title with the last frame time.
func Title(prefix string, stats sim.FrameStats) string {
	return fmt.Sprintf("%s %.2f ms/f", prefix, stats.MillisPerFrame())
}
