package sim

import (
	"context"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/galaxysim/internal/dynamo"
)

type countingMetric struct {
	frames, stepped int
}

func (m *countingMetric) Name() string { return "stepped" }
func (m *countingMetric) Observe(w *dynamo.World, stats FrameStats) {
	m.frames++
	if stats.Stepped {
		m.stepped++
	}
}
func (m *countingMetric) Value() float64 { return float64(m.stepped) }
func (m *countingMetric) Reset()         { m.frames, m.stepped = 0, 0 }

type recordingObserver struct {
	steps []int
}

func (o *recordingObserver) OnFrame(w *dynamo.World, stats FrameStats) {
	o.steps = append(o.steps, stats.Step)
}

var _ = Describe("Simulator", func() {
	var s *Simulator

	BeforeEach(func() {
		w := scenarioWorld()
		w.Holes = []dynamo.BlackHole{{Pos: dynamo.Vec2{X: 50, Y: 50}, Boost: 1, Mass: 1}}
		w.Stars = []dynamo.Star{{Pos: dynamo.Vec2{X: 60, Y: 50}}}
		w.Params.MaxBodySpeed = 0
		s = New(w)
	})

	AfterEach(func() {
		s.Close()
	})

	It("starts drawing and unpaused", func() {
		Expect(s.Flags.Draw.Load()).To(BeTrue())
		Expect(s.Flags.Paused.Load()).To(BeFalse())
	})

	It("steps the world once per frame", func() {
		stats := s.Frame()

		Expect(stats.Stepped).To(BeTrue())
		Expect(stats.Step).To(Equal(1))
		Expect(s.World.Stars[0].Pos.X).To(BeNumerically("~", 59.9, 1e-12))
	})

	It("skips the step while paused but still reports the frame", func() {
		Expect(s.Flags.TogglePause()).To(BeTrue())
		before := s.World.Stars[0]

		stats := s.Frame()

		Expect(stats.Stepped).To(BeFalse())
		Expect(stats.Step).To(Equal(0))
		Expect(s.World.Stars[0]).To(Equal(before))

		Expect(s.Flags.TogglePause()).To(BeFalse())
		Expect(s.Frame().Stepped).To(BeTrue())
	})

	It("toggles drawing without touching the world", func() {
		Expect(s.Flags.ToggleDraw()).To(BeFalse())
		s.Frame()
		Expect(s.World.Step).To(Equal(1))
		Expect(s.Flags.ToggleDraw()).To(BeTrue())
	})

	It("applies a G change on the next frame", func() {
		s.Frame()
		v1 := s.World.Stars[0].Vel.X

		s.SetG(0)
		s.Frame()
		Expect(s.World.Stars[0].Vel.X).To(Equal(v1))

		Expect(s.AdjustG(2)).To(Equal(2.0))
		stats := s.Frame()
		Expect(stats.G).To(Equal(2.0))
		Expect(s.World.Stars[0].Vel.X).To(BeNumerically("<", v1))
	})

	It("never lets the speed cap go negative", func() {
		s.SetMaxSpeed(3)
		Expect(s.AdjustMaxSpeed(4)).To(Equal(7.0))
		Expect(s.AdjustMaxSpeed(-100)).To(Equal(0.0))
	})

	Describe("Run", func() {
		It("runs the requested number of frames and feeds metrics and observers", func() {
			m := &countingMetric{}
			o := &recordingObserver{}
			s.AddMetric(m)
			s.AddObserver(o)

			Expect(s.Run(context.Background(), 5, nil)).To(Succeed())

			Expect(s.World.Step).To(Equal(5))
			Expect(o.steps).To(Equal([]int{1, 2, 3, 4, 5}))
			Expect(s.Metrics()).To(HaveKeyWithValue("stepped", 5.0))
		})

		It("stops when the callback returns false", func() {
			frames := 0
			err := s.Run(context.Background(), 0, func(stats FrameStats) bool {
				frames++
				return frames < 3
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(frames).To(Equal(3))
		})

		It("returns the context error once cancelled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			err := s.Run(ctx, 0, func(stats FrameStats) bool {
				if stats.Step == 2 {
					cancel()
				}
				return true
			})

			Expect(err).To(MatchError(context.Canceled))
			Expect(s.World.Step).To(Equal(2))
		})
	})
})

var _ = Describe("Stepper", func() {
	DescribeTable("keeps every star inside the domain",
		func(workers int, schedule dynamo.Schedule, update dynamo.BodyUpdate) {
			w := randomWorld(3, workers, schedule)
			w.Params.BodyUpdate = update
			st := NewStepper()
			defer st.Close()

			for i := 0; i < 10; i++ {
				st.Advance(w)
			}

			for _, star := range w.Stars {
				Expect(w.Bounds.Contains(star.Pos)).To(BeTrue())
				Expect(star.Vel.Len()).To(BeNumerically("<=", w.Params.MaxSpeed*(1+1e-12)))
			}
		},
		Entry("single worker", 1, dynamo.SchedulePool, dynamo.BodyUpdateSnapshot),
		Entry("pool", 6, dynamo.SchedulePool, dynamo.BodyUpdateSnapshot),
		Entry("spawn", 6, dynamo.ScheduleSpawn, dynamo.BodyUpdateSequential),
	)

	It("reuses its pool across frames", func() {
		w := randomWorld(4, 3, dynamo.SchedulePool)
		st := NewStepper()
		defer st.Close()

		st.Advance(w)
		pool := st.pool
		Expect(pool).NotTo(BeNil())

		st.Advance(w)
		Expect(st.pool).To(BeIdenticalTo(pool))

		w.Params.Workers = 5
		st.Advance(w)
		Expect(st.pool.Workers()).To(Equal(5))
	})
})

var _ = Describe("FrameStats", func() {
	It("derives rate and milliseconds from the duration", func() {
		stats := FrameStats{Duration: 20_000_000}
		Expect(stats.MillisPerFrame()).To(BeNumerically("~", 20, 1e-12))
		Expect(stats.Rate()).To(BeNumerically("~", 50, 1e-9))
		Expect(FrameStats{}.Rate()).To(Equal(0.0))
		Expect(math.IsInf(FrameStats{}.MillisPerFrame(), 0)).To(BeFalse())
	})
})
