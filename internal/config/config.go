package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/galaxysim/internal/dynamo"
	"github.com/san-kum/galaxysim/internal/physics"
)

const (
	DefaultG            = 100.0
	DefaultBodyG        = 200.0
	DefaultDt           = 1.0
	DefaultMaxSpeed     = 900.0
	DefaultMaxBodySpeed = 3.0
	DefaultContactBoost = 0.001
	DefaultWorkers      = 4
	DefaultScale        = 0.01
	DefaultStarShade    = 35
	DefaultFPS          = 120
	DefaultTitle        = "Galaxy Simulation"
)

type Config struct {
	Simulation SimulationConfig `yaml:"simulation"`
	World      WorldConfig      `yaml:"world"`
	Seed       SeedConfig       `yaml:"seed"`
	Render     RenderConfig     `yaml:"render"`
}

type SimulationConfig struct {
	G             float64 `yaml:"g"`
	BodyG         float64 `yaml:"body_g"`
	Dt            float64 `yaml:"dt"`
	MaxSpeed      float64 `yaml:"max_speed"`
	MaxBodySpeed  float64 `yaml:"max_body_speed"`
	ContactRadius float64 `yaml:"contact_radius"`
	ContactBoost  float64 `yaml:"contact_boost"`
	StarMass      float64 `yaml:"star_mass"`
	Workers       int     `yaml:"workers"`
	BodyUpdate    string  `yaml:"body_update"`
	Schedule      string  `yaml:"schedule"`
}

type WorldConfig struct {
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	OriginX float64 `yaml:"origin_x"`
	OriginY float64 `yaml:"origin_y"`
}

type SeedConfig struct {
	Stars       int     `yaml:"stars"`
	Holes       int     `yaml:"holes"`
	Layout      string  `yaml:"layout"`
	StarSpeed   float64 `yaml:"star_speed"`
	HoleSpeed   float64 `yaml:"hole_speed"`
	HoleMass    float64 `yaml:"hole_mass"`
	HoleRadius  float64 `yaml:"hole_radius"`
	SpawnRadius float64 `yaml:"spawn_radius"`
	MinRadius   float64 `yaml:"min_radius"`
	OrbitScale  float64 `yaml:"orbit_scale"`
	Seed        int64   `yaml:"seed"`
}

// RenderConfig holds settings that only affect how the world is shown.
// TuneStep and SpeedStep are the increments applied by the G and speed cap
// keys.
type RenderConfig struct {
	Scale     float64 `yaml:"scale"`
	StarShade uint8   `yaml:"star_shade"`
	FPS       int     `yaml:"fps"`
	Title     string  `yaml:"title"`
	TuneStep  float64 `yaml:"tune_step"`
	SpeedStep float64 `yaml:"speed_step"`
}

func DefaultConfig() *Config {
	seed := physics.DefaultSeedOptions()
	return &Config{
		Simulation: SimulationConfig{
			G:            DefaultG,
			BodyG:        DefaultBodyG,
			Dt:           DefaultDt,
			MaxSpeed:     DefaultMaxSpeed,
			MaxBodySpeed: DefaultMaxBodySpeed,
			ContactBoost: DefaultContactBoost,
			StarMass:     1,
			Workers:      DefaultWorkers,
			BodyUpdate:   string(dynamo.BodyUpdateSnapshot),
			Schedule:     string(dynamo.SchedulePool),
		},
		World: WorldConfig{
			Width:  1340 / DefaultScale,
			Height: 700 / DefaultScale,
		},
		Seed: SeedConfig{
			Stars:       seed.Stars,
			Holes:       seed.Holes,
			Layout:      string(seed.Layout),
			StarSpeed:   seed.StarSpeed,
			HoleSpeed:   seed.HoleSpeed,
			HoleMass:    seed.HoleMass,
			HoleRadius:  seed.HoleRadius,
			SpawnRadius: seed.SpawnRadius,
			MinRadius:   seed.MinRadius,
			OrbitScale:  seed.OrbitScale,
			Seed:        1,
		},
		Render: RenderConfig{
			Scale:     DefaultScale,
			StarShade: DefaultStarShade,
			FPS:       DefaultFPS,
			Title:     DefaultTitle,
			TuneStep:  1,
			SpeedStep: 4,
		},
	}
}

// Load reads a YAML file over the defaults, so a file only needs the keys it
// changes.
func Load(path string) (*Config, error) {
	return LoadInto(DefaultConfig(), path)
}

// LoadInto reads a YAML file over a copy of base. base is not modified.
func LoadInto(base *Config, path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := base.Clone()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Clone returns a deep copy; Config holds no references.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

func (c *Config) Validate() error {
	if !(c.World.Width > 0) || !(c.World.Height > 0) ||
		math.IsInf(c.World.Width, 0) || math.IsInf(c.World.Height, 0) ||
		math.IsNaN(c.World.OriginX) || math.IsNaN(c.World.OriginY) {
		return fmt.Errorf("world %gx%g: %w", c.World.Width, c.World.Height, dynamo.ErrInvalidBounds)
	}
	if err := c.Params().Validate(); err != nil {
		return fmt.Errorf("simulation: %w", err)
	}

	s := c.Seed
	switch {
	case s.Stars < 0:
		return fmt.Errorf("seed: %w", &dynamo.ParamError{Field: "stars", Value: float64(s.Stars), Wrapped: dynamo.ErrInvalidParams})
	case s.Holes < 0:
		return fmt.Errorf("seed: %w", &dynamo.ParamError{Field: "holes", Value: float64(s.Holes), Wrapped: dynamo.ErrInvalidParams})
	case !(s.HoleMass > 0):
		return fmt.Errorf("seed: %w", &dynamo.ParamError{Field: "hole_mass", Value: s.HoleMass, Wrapped: dynamo.ErrInvalidParams})
	case !(s.SpawnRadius >= 0):
		return fmt.Errorf("seed: %w", &dynamo.ParamError{Field: "spawn_radius", Value: s.SpawnRadius, Wrapped: dynamo.ErrInvalidParams})
	}
	switch physics.Layout(s.Layout) {
	case physics.LayoutUniform, physics.LayoutCluster:
	default:
		return fmt.Errorf("seed: layout %q: %w", s.Layout, dynamo.ErrInvalidParams)
	}

	if !(c.Render.Scale > 0) {
		return fmt.Errorf("render: %w", &dynamo.ParamError{Field: "scale", Value: c.Render.Scale, Wrapped: dynamo.ErrInvalidParams})
	}
	return nil
}

// Params builds the runtime physics parameters.
func (c *Config) Params() *dynamo.Params {
	s := c.Simulation
	p := &dynamo.Params{
		BodyG:           s.BodyG,
		Dt:              s.Dt,
		MaxSpeed:        s.MaxSpeed,
		MaxBodySpeed:    s.MaxBodySpeed,
		ContactRadiusSq: s.ContactRadius * s.ContactRadius,
		ContactBoost:    s.ContactBoost,
		StarMass:        s.StarMass,
		Workers:         s.Workers,
		BodyUpdate:      dynamo.BodyUpdate(s.BodyUpdate),
		Schedule:        dynamo.Schedule(s.Schedule),
	}
	if s.ContactRadius < 0 {
		p.ContactRadiusSq = -p.ContactRadiusSq
	}
	p.SetG(s.G)
	return p
}

func (c *Config) Bounds() dynamo.Bounds {
	return dynamo.Bounds{
		Origin: dynamo.Vec2{X: c.World.OriginX, Y: c.World.OriginY},
		Size:   dynamo.Vec2{X: c.World.Width, Y: c.World.Height},
	}
}

func (c *Config) SeedOptions() physics.SeedOptions {
	s := c.Seed
	return physics.SeedOptions{
		Stars:       s.Stars,
		Holes:       s.Holes,
		Layout:      physics.Layout(s.Layout),
		StarSpeed:   s.StarSpeed,
		HoleSpeed:   s.HoleSpeed,
		HoleMass:    s.HoleMass,
		HoleRadius:  s.HoleRadius,
		SpawnRadius: s.SpawnRadius,
		MinRadius:   s.MinRadius,
		OrbitScale:  s.OrbitScale,
	}
}

// ScreenSize returns the window size in pixels for the world at Render.Scale.
func (c *Config) ScreenSize() (int, int) {
	return int(math.Round(c.World.Width * c.Render.Scale)), int(math.Round(c.World.Height * c.Render.Scale))
}
