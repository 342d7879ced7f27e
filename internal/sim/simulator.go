package sim

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/san-kum/galaxysim/internal/dynamo"
)

// Flags are toggled by renderers from their own goroutine and read by the
// frame loop.
type Flags struct {
	Paused atomic.Bool
	Draw   atomic.Bool
}

func (f *Flags) TogglePause() bool { return toggle(&f.Paused) }
func (f *Flags) ToggleDraw() bool  { return toggle(&f.Draw) }

func toggle(b *atomic.Bool) bool {
	for {
		old := b.Load()
		if b.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

type Simulator struct {
	World   *dynamo.World
	Stepper *Stepper
	Flags   Flags

	metrics   []Metric
	observers []Observer
}

func New(w *dynamo.World) *Simulator {
	s := &Simulator{
		World:     w,
		Stepper:   NewStepper(),
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
	s.Flags.Draw.Store(true)
	return s
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Frame advances the world by one step unless paused. Stats are returned
// either way so renderers keep their timing.
func (s *Simulator) Frame() FrameStats {
	start := time.Now()

	var stats FrameStats
	if !s.Flags.Paused.Load() {
		stats.StepStats = s.Stepper.Advance(s.World)
		stats.Stepped = true
	} else {
		stats.G = s.World.Params.G()
	}
	stats.Step = s.World.Step
	stats.Duration = time.Since(start)

	for _, m := range s.metrics {
		m.Observe(s.World, stats)
	}
	for _, obs := range s.observers {
		obs.OnFrame(s.World, stats)
	}
	return stats
}

// Run executes frames until ctx is cancelled, frames have run (frames <= 0
// means no limit) or callback returns false.
func (s *Simulator) Run(ctx context.Context, frames int, callback func(FrameStats) bool) error {
	for _, m := range s.metrics {
		m.Reset()
	}

	for i := 0; frames <= 0 || i < frames; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		stats := s.Frame()
		if callback != nil && !callback(stats) {
			return nil
		}
	}
	return nil
}

// Metrics returns the current value of every registered metric.
func (s *Simulator) Metrics() map[string]float64 {
	out := make(map[string]float64, len(s.metrics))
	for _, m := range s.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}

func (s *Simulator) SetG(g float64) { s.World.Params.SetG(g) }

// AdjustG adds delta to G and returns the new value.
func (s *Simulator) AdjustG(delta float64) float64 {
	g := s.World.Params.G() + delta
	s.World.Params.SetG(g)
	return g
}

// SetMaxSpeed changes the star speed cap. It must be called between frames.
func (s *Simulator) SetMaxSpeed(v float64) {
	if v < 0 {
		v = 0
	}
	s.World.Params.MaxSpeed = v
}

func (s *Simulator) AdjustMaxSpeed(delta float64) float64 {
	s.SetMaxSpeed(s.World.Params.MaxSpeed + delta)
	return s.World.Params.MaxSpeed
}

func (s *Simulator) Close() {
	s.Stepper.Close()
}
