package analysis

import (
	"github.com/san-kum/galaxysim/internal/dynamo"
	"github.com/san-kum/galaxysim/internal/physics"
	"github.com/san-kum/galaxysim/internal/sim"
)

// SeparationRecorder is a sim.Observer that records the wrapped distance
// between holes A and B after every stepped frame.
type SeparationRecorder struct {
	A, B    int
	samples []float64
}

func NewSeparationRecorder(a, b int) *SeparationRecorder {
	return &SeparationRecorder{A: a, B: b}
}

func (r *SeparationRecorder) OnFrame(w *dynamo.World, stats sim.FrameStats) {
	if !stats.Stepped || r.A >= len(w.Holes) || r.B >= len(w.Holes) {
		return
	}
	r.samples = append(r.samples, physics.Distance(w.Holes[r.A].Pos, w.Holes[r.B].Pos, w.Bounds))
}

func (r *SeparationRecorder) Samples() []float64 { return r.samples }

func (r *SeparationRecorder) Reset() { r.samples = r.samples[:0] }
