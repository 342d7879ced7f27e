package sim

import (
	"time"

	"github.com/san-kum/galaxysim/internal/dynamo"
)

// Metric accumulates a scalar over the frames of a run.
type Metric interface {
	Name() string
	Observe(w *dynamo.World, stats FrameStats)
	Value() float64
	Reset()
}

// Observer is notified after every frame, stepped or paused.
type Observer interface {
	OnFrame(w *dynamo.World, stats FrameStats)
}

// StepStats describes one call to Stepper.Advance.
type StepStats struct {
	G            float64
	Clamped      int
	HolesClamped int
}

// FrameStats describes one frame of the simulator loop.
type FrameStats struct {
	StepStats
	Step     int
	Stepped  bool
	Duration time.Duration
}

// Rate returns frames per second for this frame's duration.
func (f FrameStats) Rate() float64 {
	if f.Duration <= 0 {
		return 0
	}
	return 1 / f.Duration.Seconds()
}

func (f FrameStats) MillisPerFrame() float64 {
	return float64(f.Duration) / float64(time.Millisecond)
}
