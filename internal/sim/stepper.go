package sim

import (
	"github.com/san-kum/galaxysim/internal/dynamo"
	"github.com/san-kum/galaxysim/internal/integrators"
	"github.com/san-kum/galaxysim/internal/physics"
)

// Stepper advances a World by one time step. Stars are split into contiguous
// batches that are integrated in parallel against the read-only holes; after
// the barrier the holes are integrated on the calling goroutine.
type Stepper struct {
	pool    *Pool
	batches []dynamo.Batch
	clamped []int

	stars, workers int
}

func NewStepper() *Stepper {
	return &Stepper{}
}

// Advance performs one step. G is read once and used for the whole step.
func (s *Stepper) Advance(w *dynamo.World) StepStats {
	p := w.Params
	g := p.G()
	stats := StepStats{G: g}

	euler := integrators.Euler{Bounds: w.Bounds}
	gravity := physics.NewGravity(g, p, w.Bounds)

	s.plan(len(w.Stars), p.Workers)
	stars, holes := w.Stars, w.Holes
	dt, maxSpeed := p.Dt, p.MaxSpeed

	work := func(worker int, b dynamo.Batch) {
		n := 0
		for i := b.Start; i < b.End; i++ {
			st := &stars[i]
			st.Vel = gravity.Influence(st.Pos, holes, -1).Kick(st.Vel, dt)
			if euler.Advance(&st.Pos, &st.Vel, maxSpeed, dt) {
				n++
			}
		}
		s.clamped[worker] = n
	}

	switch {
	case len(s.batches) == 0:
	case len(s.batches) == 1:
		work(0, s.batches[0])
	case p.Schedule == dynamo.ScheduleSpawn:
		dynamo.ParallelFor(s.batches, work)
	default:
		pool := s.ensurePool(p.Workers)
		batches := s.batches
		pool.Run(func(worker int) {
			if worker < len(batches) {
				work(worker, batches[worker])
			}
		})
	}

	for _, n := range s.clamped[:len(s.batches)] {
		stats.Clamped += n
	}

	holeG := p.BodyG
	if holeG == 0 {
		holeG = g
	}
	stats.HolesClamped = s.advanceHoles(w, physics.NewGravity(holeG, p, w.Bounds), euler)

	w.Step++
	return stats
}

func (s *Stepper) advanceHoles(w *dynamo.World, gravity physics.Gravity, euler integrators.Euler) int {
	p := w.Params
	holes := w.Holes
	clamped := 0

	integrate := func(h *dynamo.BlackHole) {
		h.Vel = physics.Pull{Acc: h.Acc, Boost: h.Boost}.Kick(h.Vel, p.Dt)
		if euler.Advance(&h.Pos, &h.Vel, p.MaxBodySpeed, p.Dt) {
			clamped++
		}
	}

	accumulate := func(i int) {
		h := &holes[i]
		h.ResetAccumulator()
		pull := gravity.Influence(h.Pos, holes, i)
		h.Acc, h.Boost = pull.Acc, pull.Boost
	}

	if p.BodyUpdate == dynamo.BodyUpdateSequential {
		for i := range holes {
			accumulate(i)
			integrate(&holes[i])
		}
		return clamped
	}

	for i := range holes {
		accumulate(i)
	}
	for i := range holes {
		integrate(&holes[i])
	}
	return clamped
}

func (s *Stepper) plan(stars, workers int) {
	if s.batches != nil && s.stars == stars && s.workers == workers {
		return
	}
	s.stars, s.workers = stars, workers
	s.batches = dynamo.Partition(stars, workers)
	if cap(s.clamped) < len(s.batches) {
		s.clamped = make([]int, len(s.batches))
	}
}

func (s *Stepper) ensurePool(workers int) *Pool {
	if s.pool != nil && s.pool.Workers() == workers {
		return s.pool
	}
	if s.pool != nil {
		s.pool.Close()
	}
	s.pool = NewPool(workers)
	return s.pool
}

// Close releases the worker pool, if one was started.
func (s *Stepper) Close() {
	if s.pool != nil {
		s.pool.Close()
		s.pool = nil
	}
}
