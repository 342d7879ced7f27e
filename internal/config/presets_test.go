package config

import (
	"errors"
	"math"
	"sort"
	"testing"

	"github.com/san-kum/galaxysim/internal/dynamo"
	"github.com/san-kum/galaxysim/internal/sim"
)

func TestPresetsValid(t *testing.T) {
	for _, name := range ListPresets() {
		t.Run(name, func(t *testing.T) {
			cfg, err := GetPreset(name)
			if err != nil {
				t.Fatal(err)
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("preset %s invalid: %v", name, err)
			}
		})
	}
}

func TestGetPreset(t *testing.T) {
	cfg, err := GetPreset("galaxy")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Seed.Stars != 600000 || cfg.Seed.Holes != 3 || cfg.Simulation.Dt != 1 {
		t.Errorf("unexpected galaxy preset: %+v", cfg)
	}
	if w, h := cfg.ScreenSize(); w != 1920 || h != 1080 {
		t.Errorf("expected 1920x1080, got %dx%d", w, h)
	}

	cfg.Seed.Stars = 1
	again, _ := GetPreset("galaxy")
	if again.Seed.Stars != 600000 {
		t.Error("GetPreset returned a shared config")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	cfg, err := GetPreset("nonexistent")
	if cfg != nil {
		t.Error("expected nil config")
	}
	if !errors.Is(err, dynamo.ErrUnknownPreset) {
		t.Errorf("expected ErrUnknownPreset, got %v", err)
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	if len(names) != len(Presets) {
		t.Errorf("expected %d presets, got %d", len(Presets), len(names))
	}
	if !sort.StringsAreSorted(names) {
		t.Errorf("presets not sorted: %v", names)
	}
}

// stepGalaxy advances one step of a galaxy-preset world with the speed caps
// disabled.
func stepGalaxy(t *testing.T, stars []dynamo.Star, holes []dynamo.BlackHole) {
	t.Helper()
	cfg, err := GetPreset("galaxy")
	if err != nil {
		t.Fatal(err)
	}
	p := cfg.Params()
	p.MaxSpeed, p.MaxBodySpeed = 0, 0

	st := sim.NewStepper()
	defer st.Close()
	st.Advance(&dynamo.World{Bounds: cfg.Bounds(), Params: p, Stars: stars, Holes: holes})
}

func TestGalaxyPreset_StarStep(t *testing.T) {
	// vel += disp * fa1 * 0.01 * m / d2; pos += vel, with fa1 = 20000
	const fa1, mass = 20000.0, 1.0
	disp := -100.0
	wantVel := disp * fa1 * 0.01 * mass / (disp * disp)

	stars := []dynamo.Star{{Pos: dynamo.Vec2{X: 1100, Y: 1000}}}
	holes := []dynamo.BlackHole{{Pos: dynamo.Vec2{X: 1000, Y: 1000}, Mass: mass, Boost: 1}}
	stepGalaxy(t, stars, holes)

	if math.Abs(stars[0].Vel.X-wantVel) > 1e-12 || stars[0].Vel.Y != 0 {
		t.Errorf("expected velocity (%v, 0), got %+v", wantVel, stars[0].Vel)
	}
	if math.Abs(stars[0].Pos.X-(1100+wantVel)) > 1e-9 || stars[0].Pos.Y != 1000 {
		t.Errorf("expected position (%v, 1000), got %+v", 1100+wantVel, stars[0].Pos)
	}
}

func TestGalaxyPreset_HoleStep(t *testing.T) {
	// vel += disp * fa2 * m / d2; pos += vel, with fa2 = 20
	const fa2, mass = 20.0, 1.0
	want := 100 * fa2 * mass / (100 * 100)

	holes := []dynamo.BlackHole{
		{Pos: dynamo.Vec2{X: 1000, Y: 1000}, Mass: mass, Boost: 1},
		{Pos: dynamo.Vec2{X: 1100, Y: 1000}, Mass: mass, Boost: 1},
	}
	stepGalaxy(t, nil, holes)

	if math.Abs(holes[0].Vel.X-want) > 1e-12 || math.Abs(holes[1].Vel.X+want) > 1e-12 {
		t.Errorf("expected hole velocities +/-%v, got %v and %v", want, holes[0].Vel.X, holes[1].Vel.X)
	}
	if math.Abs(holes[0].Pos.X-(1000+want)) > 1e-9 {
		t.Errorf("expected hole 0 at x=%v, got %v", 1000+want, holes[0].Pos.X)
	}
}
