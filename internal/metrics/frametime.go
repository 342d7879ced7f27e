package metrics

import (
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/galaxysim/internal/dynamo"
	"github.com/san-kum/galaxysim/internal/sim"
)

// FrameTime reports the mean milliseconds per frame. Paused frames are
// included.
type FrameTime struct {
	name    string
	samples []float64
	max     time.Duration
}

func NewFrameTime() *FrameTime {
	return &FrameTime{name: "ms_per_frame"}
}

func (f *FrameTime) Name() string { return f.name }

func (f *FrameTime) Observe(w *dynamo.World, stats sim.FrameStats) {
	f.samples = append(f.samples, stats.MillisPerFrame())
	if stats.Duration > f.max {
		f.max = stats.Duration
	}
}

func (f *FrameTime) Value() float64 {
	if len(f.samples) == 0 {
		return 0
	}
	return stat.Mean(f.samples, nil)
}

// StdDev is the sample standard deviation of the frame time in milliseconds.
func (f *FrameTime) StdDev() float64 {
	if len(f.samples) < 2 {
		return 0
	}
	return stat.StdDev(f.samples, nil)
}

// Quantile returns the p-quantile of the frame time in milliseconds.
func (f *FrameTime) Quantile(p float64) float64 {
	if len(f.samples) == 0 {
		return 0
	}
	sorted := append([]float64(nil), f.samples...)
	sort.Float64s(sorted)
	return stat.Quantile(p, stat.Empirical, sorted, nil)
}

func (f *FrameTime) Max() time.Duration { return f.max }

func (f *FrameTime) Reset() {
	f.samples = f.samples[:0]
	f.max = 0
}
