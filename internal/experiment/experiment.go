package experiment

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/san-kum/galaxysim/internal/config"
	"github.com/san-kum/galaxysim/internal/dynamo"
	"github.com/san-kum/galaxysim/internal/physics"
	"github.com/san-kum/galaxysim/internal/sim"
)

// Result summarizes a headless run.
type Result struct {
	Frames      int
	Steps       int
	Elapsed     time.Duration
	FrameMillis []float64
	Metrics     map[string]float64
}

// StepsPerSecond is the stepping throughput over the whole run.
func (r *Result) StepsPerSecond() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Steps) / r.Elapsed.Seconds()
}

type Experiment struct {
	cfg        *config.Config
	simulator  *sim.Simulator
	randSource *rand.Rand
}

// New validates cfg and seeds a world from it.
func New(cfg *config.Config) (*Experiment, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e := &Experiment{
		cfg:        cfg,
		randSource: rand.New(rand.NewSource(cfg.Seed.Seed)),
	}

	bounds := cfg.Bounds()
	stars, holes := physics.Seed(cfg.SeedOptions(), bounds, e.randSource)
	e.simulator = sim.New(&dynamo.World{
		Bounds: bounds,
		Params: cfg.Params(),
		Stars:  stars,
		Holes:  holes,
	})
	return e, nil
}

func (e *Experiment) Setup(metrics []sim.Metric, observers ...sim.Observer) {
	for _, m := range metrics {
		e.simulator.AddMetric(m)
	}
	for _, o := range observers {
		e.simulator.AddObserver(o)
	}
}

// Run executes frames frames headless. A cancelled context returns the
// partial result along with the context error.
func (e *Experiment) Run(ctx context.Context, frames int) (*Result, error) {
	if frames <= 0 {
		return nil, fmt.Errorf("frames must be positive, got %d", frames)
	}

	result := &Result{FrameMillis: make([]float64, 0, frames)}
	start := time.Now()
	err := e.simulator.Run(ctx, frames, func(stats sim.FrameStats) bool {
		result.Frames++
		if stats.Stepped {
			result.Steps++
		}
		result.FrameMillis = append(result.FrameMillis, stats.MillisPerFrame())
		return true
	})
	result.Elapsed = time.Since(start)
	result.Metrics = e.simulator.Metrics()
	return result, err
}

func (e *Experiment) Simulator() *sim.Simulator { return e.simulator }

func (e *Experiment) Config() *config.Config { return e.cfg }

func (e *Experiment) Close() { e.simulator.Close() }
