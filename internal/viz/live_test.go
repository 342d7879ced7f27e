package viz

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/galaxysim/internal/dynamo"
	"github.com/san-kum/galaxysim/internal/sim"
)

func testSimulator() *sim.Simulator {
	params := dynamo.DefaultParams()
	params.SetG(10)
	params.Workers = 1
	return sim.New(&dynamo.World{
		Bounds: dynamo.NewBounds(100, 100),
		Params: params,
		Stars:  []dynamo.Star{{Pos: dynamo.Vec2{X: 10, Y: 10}}},
		Holes:  []dynamo.BlackHole{{Pos: dynamo.Vec2{X: 50, Y: 50}, Mass: 1, Boost: 1, Radius: 5}},
	})
}

func key(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func update(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestModel_Keys(t *testing.T) {
	s := testSimulator()
	defer s.Close()
	m := NewModel(s, LiveOptions{TuneStep: 2, SpeedStep: 4})

	m = update(m, key('q'))
	if s.World.Params.G() != 12 {
		t.Errorf("expected G 12 after Q, got %v", s.World.Params.G())
	}
	m = update(m, key('w'))
	m = update(m, key('w'))
	if s.World.Params.G() != 8 {
		t.Errorf("expected G 8 after W W, got %v", s.World.Params.G())
	}

	m = update(m, key('e'))
	if s.World.Params.MaxSpeed != 904 {
		t.Errorf("expected speed cap 904 after E, got %v", s.World.Params.MaxSpeed)
	}
	m = update(m, key('r'))
	if s.World.Params.MaxSpeed != 900 {
		t.Errorf("expected speed cap 900 after R, got %v", s.World.Params.MaxSpeed)
	}

	m = update(m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if !s.Flags.Paused.Load() {
		t.Error("space did not pause")
	}
	m = update(m, key('d'))
	if s.Flags.Draw.Load() {
		t.Error("d did not turn drawing off")
	}
	if !strings.Contains(m.View(), "drawing off") {
		t.Error("view does not report drawing off")
	}
}

func TestModel_TickStepsAndDraws(t *testing.T) {
	s := testSimulator()
	defer s.Close()
	m := NewModel(s, LiveOptions{Title: "Galaxy Simulation"})

	next, cmd := m.Update(TickMsg(time.Now()))
	m = next.(Model)

	if cmd == nil {
		t.Error("tick did not schedule the next tick")
	}
	if s.World.Step != 1 {
		t.Errorf("expected one step, got %d", s.World.Step)
	}
	if len(m.msHistory) != 1 || len(m.energyHistory) != 1 {
		t.Errorf("histories not recorded: %d, %d", len(m.msHistory), len(m.energyHistory))
	}

	view := m.View()
	if !strings.Contains(view, "Galaxy Simulation") || !strings.Contains(view, "ms/f") {
		t.Error("view missing title")
	}
	if !strings.Contains(view, "RUNNING") {
		t.Error("view missing run status")
	}
}

func TestModel_Quit(t *testing.T) {
	s := testSimulator()
	defer s.Close()
	m := NewModel(s, LiveOptions{})

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if next.(Model).View() != "" {
		t.Error("expected empty view after quit")
	}
}

func TestPushHistory(t *testing.T) {
	var h []float64
	for i := 0; i < historyCapacity+10; i++ {
		h = pushHistory(h, float64(i))
	}
	if len(h) != historyCapacity {
		t.Fatalf("expected %d entries, got %d", historyCapacity, len(h))
	}
	if h[0] != 10 || h[len(h)-1] != float64(historyCapacity+9) {
		t.Errorf("unexpected window [%v .. %v]", h[0], h[len(h)-1])
	}
}

func TestSparkline(t *testing.T) {
	if got := Sparkline(nil, 3); got != "───" {
		t.Errorf("expected empty line, got %q", got)
	}
	if got := Sparkline([]float64{0, 7}, 4); got != "▁█" {
		t.Errorf("expected ▁█, got %q", got)
	}
	if got := Bar(0.5, 4); got != "[==--]" {
		t.Errorf("expected half bar, got %q", got)
	}
}

func TestNextTheme(t *testing.T) {
	defer SetTheme(ThemeNebula.Name)

	SetTheme(ThemeNebula.Name)
	if NextTheme().Name != ThemeRetroGreen.Name {
		t.Error("expected retro after nebula")
	}
	SetTheme(ThemeMinimal.Name)
	if NextTheme().Name != ThemeNebula.Name {
		t.Error("expected wrap to the first theme")
	}
}

func TestGauge_SettlesOnTarget(t *testing.T) {
	g := newGauge(60)
	if g.value() != 0 {
		t.Fatalf("expected gauge to start at 0, got %v", g.value())
	}

	first := g.step(1)
	if first <= 0 || first >= 1 {
		t.Errorf("first step should move part way, got %v", first)
	}
	for i := 0; i < 300; i++ {
		g.step(1)
	}
	if diff := g.value() - 1; diff > 1e-3 || diff < -1e-3 {
		t.Errorf("gauge did not settle, got %v", g.value())
	}
}
