package metrics

import (
	"github.com/san-kum/galaxysim/internal/dynamo"
	"github.com/san-kum/galaxysim/internal/sim"
)

// Saturation reports the mean fraction of stars whose speed was capped per
// stepped frame. A value near 1 means the cap, not gravity, drives the motion.
type Saturation struct {
	name    string
	total   float64
	samples int
}

func NewSaturation() *Saturation {
	return &Saturation{name: "saturation"}
}

func (s *Saturation) Name() string { return s.name }

func (s *Saturation) Observe(w *dynamo.World, stats sim.FrameStats) {
	if !stats.Stepped || len(w.Stars) == 0 {
		return
	}
	s.total += float64(stats.Clamped) / float64(len(w.Stars))
	s.samples++
}

func (s *Saturation) Value() float64 {
	if s.samples == 0 {
		return 0
	}
	return s.total / float64(s.samples)
}

func (s *Saturation) Reset() {
	s.total = 0
	s.samples = 0
}
