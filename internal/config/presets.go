package config

import (
	"fmt"
	"sort"

	"github.com/san-kum/galaxysim/internal/dynamo"
)

func preset(apply func(c *Config)) *Config {
	c := DefaultConfig()
	apply(c)
	return c
}

var Presets = map[string]*Config{
	"classic": DefaultConfig(),
	// Star pulls in the original were scaled by 0.01 and applied without a
	// time step, so fa1 = 20000 becomes G = 200 at dt = 1.
	"galaxy": preset(func(c *Config) {
		c.Simulation.G = 200
		c.Simulation.BodyG = 20
		c.Simulation.Dt = 1
		c.Simulation.MaxSpeed = 20000
		c.Simulation.Workers = 8
		c.World.Width, c.World.Height = 1920/0.01, 1080/0.01
		c.Seed.Stars, c.Seed.Holes = 600000, 3
		c.Seed.StarSpeed, c.Seed.HoleSpeed = 50, 15
		c.Render.StarShade = 30
	}),
	"orbit": preset(func(c *Config) {
		c.Simulation.G = 400
		c.Simulation.BodyG = 50
		c.Simulation.ContactRadius = 100
		c.Simulation.ContactBoost = 0.0005
		c.World.Width, c.World.Height = 1200/0.05, 800/0.05
		c.Seed.Stars, c.Seed.Holes = 20000, 2
		c.Seed.Layout = "cluster"
		c.Seed.HoleSpeed = 0.5
		c.Seed.SpawnRadius, c.Seed.MinRadius = 3000, 300
		c.Seed.OrbitScale = 0.35
		c.Render.Scale = 0.05
	}),
	"tiny": preset(func(c *Config) {
		c.Simulation.Workers = 2
		c.Simulation.ContactRadius = 20
		c.World.Width, c.World.Height = 2000, 1000
		c.Seed.Stars, c.Seed.Holes = 2000, 3
		c.Seed.HoleRadius = 20
		c.Render.Scale = 0.5
	}),
}

// GetPreset returns a copy of the named preset.
func GetPreset(name string) (*Config, error) {
	cfg, ok := Presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", dynamo.ErrUnknownPreset, name)
	}
	return cfg.Clone(), nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
