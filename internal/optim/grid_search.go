package optim

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/galaxysim/internal/config"
	"github.com/san-kum/galaxysim/internal/experiment"
)

// Setters maps sweepable parameter names onto the config field they set.
var Setters = map[string]func(c *config.Config, v float64){
	"g":             func(c *config.Config, v float64) { c.Simulation.G = v },
	"body_g":        func(c *config.Config, v float64) { c.Simulation.BodyG = v },
	"dt":            func(c *config.Config, v float64) { c.Simulation.Dt = v },
	"max_speed":     func(c *config.Config, v float64) { c.Simulation.MaxSpeed = v },
	"contact_boost": func(c *config.Config, v float64) { c.Simulation.ContactBoost = v },
	"workers":       func(c *config.Config, v float64) { c.Simulation.Workers = int(v) },
	"stars":         func(c *config.Config, v float64) { c.Seed.Stars = int(v) },
}

func ParamNames() []string {
	names := make([]string, 0, len(Setters))
	for name := range Setters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Apply returns a copy of base with params set.
func Apply(base *config.Config, params map[string]float64) (*config.Config, error) {
	cfg := base.Clone()
	for name, v := range params {
		set, ok := Setters[name]
		if !ok {
			return nil, fmt.Errorf("unknown parameter %q", name)
		}
		set(cfg, v)
	}
	return cfg, nil
}

// Point is one evaluated grid point.
type Point struct {
	Params map[string]float64
	Value  float64
}

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Search runs every combination for frames frames and returns the point that
// minimizes metricName along with all evaluated points in grid order.
func (g *GridSearch) Search(
	ctx context.Context,
	buildExperiment func(params map[string]float64) (*experiment.Experiment, error),
	frames int,
	metricName string,
) (Point, []Point, error) {
	if len(g.paramNames) != len(g.ranges) {
		return Point{}, nil, fmt.Errorf("%d parameters but %d ranges", len(g.paramNames), len(g.ranges))
	}

	best := Point{Value: math.Inf(1)}
	var all []Point
	err := g.searchRecursive(ctx, 0, make(map[string]float64), func(params map[string]float64) error {
		exp, err := buildExperiment(params)
		if err != nil {
			return err
		}
		defer exp.Close()

		result, err := exp.Run(ctx, frames)
		if err != nil {
			return err
		}

		val, ok := result.Metrics[metricName]
		if !ok {
			return fmt.Errorf("metric %q not registered", metricName)
		}
		p := Point{Params: params, Value: val}
		all = append(all, p)
		if val < best.Value {
			best = p
		}
		return nil
	})
	if err != nil {
		return Point{}, all, err
	}
	return best, all, nil
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	evaluate func(map[string]float64) error,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if depth == len(g.paramNames) {
		return evaluate(current)
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		newParams := make(map[string]float64, len(current)+1)
		for k, v := range current {
			newParams[k] = v
		}
		newParams[paramName] = val

		if err := g.searchRecursive(ctx, depth+1, newParams, evaluate); err != nil {
			return err
		}
	}
	return nil
}
